package model

// FieldKind classifies how a field is captured and displayed.
type FieldKind string

const (
	KindPlainText FieldKind = "text"
	KindSecret    FieldKind = "secret"
)

// Reserved field names for the credential pair every registration form
// carries ahead of its questions.
const (
	FieldUsername = "username"
	FieldPassword = "password"
)

// ConfirmSuffix is appended to a field name to form the name of its
// confirmation input (for example "password.confirm").
const ConfirmSuffix = ".confirm"

// Field describes one form input. Fields are values; the builder hands out
// copies and nothing mutates them after Build returns.
type Field struct {
	Name       string    `json:"name"`
	Kind       FieldKind `json:"kind"`
	Required   bool      `json:"required"`
	Label      string    `json:"label,omitempty"`
	Credential bool      `json:"credential,omitempty"`
	Confirm    bool      `json:"confirm,omitempty"`
	Widget     string    `json:"widget,omitempty"`
	Help       string    `json:"help,omitempty"`
}

// ConfirmName returns the submission key holding the confirmation value for
// the field, or an empty string when the field is not confirmed.
func (f Field) ConfirmName() string {
	if !f.Confirm {
		return ""
	}
	return f.Name + ConfirmSuffix
}

// Schema is the ordered list of fields that defines one form.
type Schema struct {
	Fields []Field `json:"fields"`
}

// Len reports the number of fields.
func (s Schema) Len() int {
	return len(s.Fields)
}

// Field looks up a field by name.
func (s Schema) Field(name string) (Field, bool) {
	for _, field := range s.Fields {
		if field.Name == name {
			return field, true
		}
	}
	return Field{}, false
}

// Names returns field names in schema order.
func (s Schema) Names() []string {
	names := make([]string, 0, len(s.Fields))
	for _, field := range s.Fields {
		names = append(names, field.Name)
	}
	return names
}

// Questions returns the names of the non-credential fields in schema order.
func (s Schema) Questions() []string {
	var out []string
	for _, field := range s.Fields {
		if field.Credential {
			continue
		}
		out = append(out, field.Name)
	}
	return out
}
