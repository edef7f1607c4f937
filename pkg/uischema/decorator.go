package uischema

import (
	"fmt"

	"github.com/goliatone/go-regform/pkg/model"
)

// Decorator applies overlays from a Store to a schema.
type Decorator struct {
	store *Store
	known map[string]bool
}

var _ model.Decorator = (*Decorator)(nil)

// DecoratorOption customises a Decorator.
type DecoratorOption func(*Decorator)

// WithKnownFields lists field names an overlay may configure even when the
// schema being decorated does not contain them, such as the undrawn entries
// of a sampled question pool.
func WithKnownFields(names ...string) DecoratorOption {
	return func(d *Decorator) {
		for _, name := range names {
			d.known[name] = true
		}
	}
}

// NewDecorator builds a Decorator backed by the provided store. When store is
// nil or empty, the decorator becomes a no-op.
func NewDecorator(store *Store, options ...DecoratorOption) *Decorator {
	d := &Decorator{store: store, known: map[string]bool{}}
	for _, opt := range options {
		if opt != nil {
			opt(d)
		}
	}
	return d
}

// Decorate copies configured labels, widgets and help text onto matching
// fields. An overlay naming a field that is neither in the schema nor among
// the known fields is an error.
func (d *Decorator) Decorate(schema *model.Schema) error {
	if d == nil || d.store.Empty() || schema == nil {
		return nil
	}

	seen := make(map[string]bool, len(schema.Fields))
	for i := range schema.Fields {
		field := &schema.Fields[i]
		seen[field.Name] = true
		cfg, ok := d.store.Field(field.Name)
		if !ok {
			continue
		}
		if cfg.Label != "" {
			field.Label = cfg.Label
		}
		if cfg.Widget != "" {
			field.Widget = cfg.Widget
		}
		if cfg.Help != "" {
			field.Help = cfg.Help
		}
	}

	for _, name := range d.store.Names() {
		if !seen[name] && !d.known[name] {
			cfg, _ := d.store.Field(name)
			return fmt.Errorf("uischema: %s configures unknown field %q", cfg.Source, name)
		}
	}
	return nil
}
