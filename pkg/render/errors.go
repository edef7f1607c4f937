package render

import (
	"sort"
	"strings"

	"github.com/goliatone/go-regform/pkg/model"
	"github.com/goliatone/go-regform/pkg/validation"
)

// ErrorMapping splits an error payload into field-level and form-level
// messages.
type ErrorMapping struct {
	Fields map[string][]string
	Form   []string
}

// MergeFormErrors concatenates and normalises form-level messages, trimming
// whitespace and removing duplicates while preserving order.
func MergeFormErrors(existing []string, extras ...string) []string {
	combined := make([]string, 0, len(existing)+len(extras))
	combined = append(combined, existing...)
	combined = append(combined, extras...)
	return normalizeMessages(combined)
}

// MapErrors assigns each message to the schema field it names. Keys that
// address a confirmation input ("password.confirm") land on the confirmed
// field. Unknown or form-level keys become form errors so no message is lost.
func MapErrors(schema model.Schema, errs map[string]string) ErrorMapping {
	mapping := ErrorMapping{Fields: make(map[string][]string)}
	if len(errs) == 0 {
		mapping.Fields = nil
		return mapping
	}

	keys := make([]string, 0, len(errs))
	for key := range errs {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		message := strings.TrimSpace(errs[key])
		if message == "" {
			continue
		}
		name, ok := resolveField(schema, key)
		if !ok {
			mapping.Form = append(mapping.Form, message)
			continue
		}
		mapping.Fields[name] = append(mapping.Fields[name], message)
	}

	if len(mapping.Fields) == 0 {
		mapping.Fields = nil
	}
	mapping.Form = normalizeMessages(mapping.Form)
	return mapping
}

// OptionsFromResult prepares render options for redisplaying a rejected
// submission: field errors are mapped and submitted values are carried over
// except for secret fields.
func OptionsFromResult(schema model.Schema, result validation.Result, submitted validation.Submission) RenderOptions {
	mapping := MapErrors(schema, result.Errors)

	values := make(map[string]string, len(schema.Fields))
	for _, field := range schema.Fields {
		if field.Kind == model.KindSecret {
			continue
		}
		if value := submitted.Get(field.Name); value != "" {
			values[field.Name] = value
		}
	}
	if len(values) == 0 {
		values = nil
	}

	return RenderOptions{
		Values:     values,
		Errors:     mapping.Fields,
		FormErrors: mapping.Form,
	}
}

func resolveField(schema model.Schema, key string) (string, bool) {
	if isFormLevelKey(key) {
		return "", false
	}
	if _, ok := schema.Field(key); ok {
		return key, true
	}
	if base, found := strings.CutSuffix(key, model.ConfirmSuffix); found {
		if field, ok := schema.Field(base); ok && field.Confirm {
			return field.Name, true
		}
	}
	return "", false
}

func normalizeMessages(messages []string) []string {
	if len(messages) == 0 {
		return nil
	}

	out := make([]string, 0, len(messages))
	seen := make(map[string]struct{}, len(messages))
	for _, message := range messages {
		trimmed := strings.TrimSpace(message)
		if trimmed == "" {
			continue
		}
		if _, exists := seen[trimmed]; exists {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}

	if len(out) == 0 {
		return nil
	}
	return out
}

func isFormLevelKey(key string) bool {
	switch strings.ToLower(strings.TrimSpace(key)) {
	case "", "form", "__all__", "non_field_errors":
		return true
	default:
		return false
	}
}
