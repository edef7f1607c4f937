package model

import (
	"errors"
	"fmt"
)

var (
	// ErrDuplicateField is returned when two fields would share a name, either
	// because a question repeats or because it collides with a credential.
	ErrDuplicateField = errors.New("model builder: duplicate field name")
	// ErrEmptyFieldName is returned for questions with no text.
	ErrEmptyFieldName = errors.New("model builder: field name is required")
)

func validateFields(fields []Field, reserved []string) error {
	seen := make(map[string]struct{}, len(fields)+len(reserved))
	for _, name := range reserved {
		seen[name] = struct{}{}
	}
	for idx, field := range fields {
		if field.Name == "" {
			return fmt.Errorf("%w (position %d)", ErrEmptyFieldName, idx)
		}
		if _, exists := seen[field.Name]; exists {
			return fmt.Errorf("%w: %q", ErrDuplicateField, field.Name)
		}
		seen[field.Name] = struct{}{}
	}
	return nil
}
