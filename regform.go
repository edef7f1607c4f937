// Package regform serves a registration form made of a username, a password
// and a configurable list of questions, and records the answers of every
// valid submission.
package regform

import (
	"context"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-regform/pkg/orchestrator"
	"github.com/goliatone/go-regform/pkg/questions"
	"github.com/goliatone/go-regform/pkg/recorder"
	"github.com/goliatone/go-regform/pkg/render"
	"github.com/goliatone/go-regform/pkg/validation"
	"github.com/goliatone/go-regform/pkg/widgets"
	"github.com/goliatone/go-regform/pkg/workflow"
)

// RenderOptions describes per-request overrides that renderers use to
// prefill values or surface validation errors.
type RenderOptions = render.RenderOptions

// Submission is the raw key/value payload of one form post.
type Submission = validation.Submission

// Request describes one page render.
type Request = orchestrator.Request

// SubmitResult is the outcome of Submit.
type SubmitResult = orchestrator.SubmitResult

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// New builds an orchestrator for the given questions whose valid answers go
// to rec. Extra options are applied after the registration is configured.
func New(source questions.Source, rec recorder.Recorder, options ...orchestrator.Option) (*orchestrator.Orchestrator, error) {
	registration, err := workflow.New(source,
		workflow.WithRecorder(rec),
		workflow.WithDecorators(widgets.NewRegistry()),
	)
	if err != nil {
		return nil, err
	}
	opts := append([]orchestrator.Option{orchestrator.WithRegistration(registration)}, options...)
	return orchestrator.New(opts...), nil
}

// GenerateHTML renders the empty registration form for the given questions
// with the default vanilla renderer.
func GenerateHTML(ctx context.Context, source questions.Source, options ...orchestrator.Option) ([]byte, error) {
	gen, err := New(source, recorder.Discard(), options...)
	if err != nil {
		return nil, err
	}
	return gen.Generate(ctx, orchestrator.Request{})
}

// WithThemeProvider builds a go-theme selector from provider and registers it
// with the orchestrator.
func WithThemeProvider(provider theme.ThemeProvider, defaultTheme, defaultVariant string) orchestrator.Option {
	return orchestrator.WithThemeProvider(provider, defaultTheme, defaultVariant)
}

// WithThemeSelector passes a go-theme selector through to the orchestrator so
// theme and variant choices are resolved ahead of rendering.
func WithThemeSelector(selector theme.ThemeSelector) orchestrator.Option {
	return orchestrator.WithThemeSelector(selector)
}
