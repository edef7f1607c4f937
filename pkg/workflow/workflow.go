// Package workflow ties the registration pieces together: the question
// source feeds the schema builder, submissions are checked by the validator,
// and valid answers are handed to the recorder.
package workflow

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/goliatone/go-regform/pkg/model"
	"github.com/goliatone/go-regform/pkg/questions"
	"github.com/goliatone/go-regform/pkg/recorder"
	"github.com/goliatone/go-regform/pkg/validation"
)

// Option configures a Registration.
type Option func(*Registration)

// WithBuilder overrides the schema builder.
func WithBuilder(builder model.Builder) Option {
	return func(r *Registration) {
		if builder != nil {
			r.builder = builder
		}
	}
}

// WithRecorder sets where validated answers go. Defaults to recorder.Discard.
func WithRecorder(rec recorder.Recorder) Option {
	return func(r *Registration) {
		if rec != nil {
			r.recorder = rec
		}
	}
}

// WithValidationOptions forwards options to every validation pass.
func WithValidationOptions(opts ...validation.Option) Option {
	return func(r *Registration) {
		r.validation = append(r.validation, opts...)
	}
}

// WithDecorators registers schema decorators applied after every build.
func WithDecorators(decorators ...model.Decorator) Option {
	return func(r *Registration) {
		for _, decorator := range decorators {
			if decorator != nil {
				r.decorators = append(r.decorators, decorator)
			}
		}
	}
}

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Registration) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// Registration runs the registration workflow. It is safe for concurrent use:
// the question list is captured once at construction and everything else is
// rebuilt per call.
type Registration struct {
	questions  []string
	builder    model.Builder
	recorder   recorder.Recorder
	validation []validation.Option
	decorators []model.Decorator
	logger     *zap.Logger
}

// Outcome is the result of one submission. Answers is only populated when
// Result is valid.
type Outcome struct {
	Result  validation.Result
	Answers []validation.Answer
}

// New captures the source's questions and builds the schema once so that
// configuration problems such as duplicate names surface at startup.
func New(source questions.Source, options ...Option) (*Registration, error) {
	if source == nil {
		source = questions.None()
	}
	r := &Registration{
		questions: append([]string(nil), source.Questions()...),
		builder:   model.NewBuilder(),
		recorder:  recorder.Discard(),
		logger:    zap.NewNop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}

	if _, err := r.Schema(); err != nil {
		return nil, err
	}
	return r, nil
}

// Questions returns a copy of the captured question list.
func (r *Registration) Questions() []string {
	return append([]string(nil), r.questions...)
}

// Schema builds a fresh schema from the captured questions and applies the
// configured decorators.
func (r *Registration) Schema() (model.Schema, error) {
	schema, err := r.builder.Build(r.questions)
	if err != nil {
		return model.Schema{}, fmt.Errorf("workflow: build schema: %w", err)
	}
	for _, decorator := range r.decorators {
		if err := decorator.Decorate(&schema); err != nil {
			return model.Schema{}, fmt.Errorf("workflow: decorate schema: %w", err)
		}
	}
	return schema, nil
}

// Submit validates the submission. An invalid submission is a normal outcome
// and returns a nil error. A valid one has each answer recorded in schema
// order; recording stops at the first failure, which is returned as a
// *recorder.StorageError.
func (r *Registration) Submit(ctx context.Context, submission validation.Submission) (Outcome, error) {
	schema, err := r.Schema()
	if err != nil {
		return Outcome{}, err
	}
	return r.SubmitSchema(ctx, schema, submission)
}

// SubmitSchema is Submit against a schema the caller already built, so that
// the page rendered on failure matches the one that was validated.
func (r *Registration) SubmitSchema(ctx context.Context, schema model.Schema, submission validation.Submission) (Outcome, error) {
	result := validation.Validate(schema, submission, r.validation...)
	if !result.Valid() {
		r.logger.Debug("submission rejected", zap.Int("errors", len(result.Errors)))
		return Outcome{Result: result}, nil
	}

	answers := validation.Answers(schema, result)
	outcome := Outcome{Result: result, Answers: answers}
	for _, answer := range answers {
		if err := r.recorder.Record(ctx, answer.Question, answer.Answer); err != nil {
			r.logger.Error("record answer failed",
				zap.String("question", answer.Question),
				zap.Error(err),
			)
			return outcome, &recorder.StorageError{Question: answer.Question, Err: err}
		}
	}

	r.logger.Debug("submission accepted", zap.Int("answers", len(answers)))
	return outcome, nil
}
