package model

import "github.com/goliatone/go-regform/internal/model"

// Builder converts question lists into registration schemas.
type Builder interface {
	Build(questions []string) (Schema, error)
}

// BuilderOption configures the builder behaviour.
type BuilderOption func(*builderOptions)

type builderOptions struct {
	labeler             func(string) string
	optionalCredentials bool
	confirmPassword     bool
}

// WithLabeler overrides the label generation used for the credential fields.
// Question labels always use the question text.
func WithLabeler(labeler func(string) string) BuilderOption {
	return func(opts *builderOptions) {
		opts.labeler = labeler
	}
}

// WithOptionalCredentials builds username and password as optional fields.
func WithOptionalCredentials() BuilderOption {
	return func(opts *builderOptions) {
		opts.optionalCredentials = true
	}
}

// WithConfirmedPassword marks the password field as requiring a matching
// confirmation input named "password.confirm".
func WithConfirmedPassword() BuilderOption {
	return func(opts *builderOptions) {
		opts.confirmPassword = true
	}
}

// NewBuilder returns a Builder backed by the internal implementation.
func NewBuilder(options ...BuilderOption) Builder {
	cfg := builderOptions{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	internalOpts := model.Options{
		OptionalCredentials: cfg.optionalCredentials,
		ConfirmPassword:     cfg.confirmPassword,
	}
	if cfg.labeler != nil {
		internalOpts.Labeler = cfg.labeler
	}

	return model.New(internalOpts)
}

// DefaultLabeler exposes the built-in labeler.
func DefaultLabeler(name string) string {
	return model.DefaultLabeler(name)
}
