package model

// Decorator enriches a schema with presentation metadata after the builder
// has produced it. Decorators must not rename, add, or drop fields.
type Decorator interface {
	Decorate(*Schema) error
}

// DecoratorFunc adapts a function into a Decorator.
type DecoratorFunc func(*Schema) error

// Decorate calls the underlying function.
func (fn DecoratorFunc) Decorate(schema *Schema) error {
	return fn(schema)
}
