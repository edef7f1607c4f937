package uischema

// Store keeps the parsed field overlays keyed by field name. It is safe for
// concurrent readers when treated as immutable after construction.
type Store struct {
	fields map[string]FieldConfig
}

// FieldConfig customises how a single field is presented. Empty values leave
// the builder's choice in place.
type FieldConfig struct {
	Label  string `json:"label,omitempty" yaml:"label,omitempty"`
	Widget string `json:"widget,omitempty" yaml:"widget,omitempty"`
	Help   string `json:"help,omitempty" yaml:"help,omitempty"`

	// Source is the file the entry was read from.
	Source string `json:"-" yaml:"-"`
}

func (c FieldConfig) empty() bool {
	return c.Label == "" && c.Widget == "" && c.Help == ""
}
