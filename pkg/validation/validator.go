// Package validation checks submissions against a registration schema.
// Failing validation is a normal outcome reported through Result, never a Go
// error: callers redisplay the form with Result.Errors.
package validation

import (
	"net/url"

	"github.com/goliatone/go-regform/pkg/model"
)

// Error messages recorded per field.
const (
	MessageRequired = "required"
	MessageMismatch = "does not match"
)

// Submission maps field names to raw submitted strings. A missing key reads
// as the empty string.
type Submission map[string]string

// Get returns the submitted value for name, or "" when absent.
func (s Submission) Get(name string) string {
	if s == nil {
		return ""
	}
	return s[name]
}

// SubmissionFromValues adapts parsed form data. Only the first value of a
// repeated key is kept.
func SubmissionFromValues(values url.Values) Submission {
	out := make(Submission, len(values))
	for key, vals := range values {
		if len(vals) == 0 {
			continue
		}
		out[key] = vals[0]
	}
	return out
}

// Result is the outcome of one validation pass. A valid result holds Values
// for every schema field and nil Errors; an invalid result holds Errors keyed
// by field name and nil Values.
type Result struct {
	Values map[string]string `json:"values,omitempty"`
	Errors map[string]string `json:"errors,omitempty"`
}

// Valid reports whether no field produced an error.
func (r Result) Valid() bool {
	return len(r.Errors) == 0
}

// Option configures Validate.
type Option func(*config)

type config struct {
	skipConfirmation bool
}

// WithoutConfirmation disables the confirmation check for fields marked
// Confirm, leaving only required-ness.
func WithoutConfirmation() Option {
	return func(cfg *config) {
		cfg.skipConfirmation = true
	}
}

// Validate checks every field in schema order. Required fields whose value is
// exactly "" get MessageRequired; no trimming is applied. Fields marked
// Confirm must also match their "<name>.confirm" entry when non-empty. All
// fields are checked so a single round trip reports every problem.
func Validate(schema model.Schema, submission Submission, options ...Option) Result {
	cfg := config{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	values := make(map[string]string, len(schema.Fields))
	errs := make(map[string]string)

	for _, field := range schema.Fields {
		value := submission.Get(field.Name)
		switch {
		case field.Required && value == "":
			errs[field.Name] = MessageRequired
		case field.Confirm && !cfg.skipConfirmation && value != "" && value != submission.Get(field.ConfirmName()):
			errs[field.Name] = MessageMismatch
		default:
			values[field.Name] = value
		}
	}

	if len(errs) > 0 {
		return Result{Errors: errs}
	}
	return Result{Values: values}
}
