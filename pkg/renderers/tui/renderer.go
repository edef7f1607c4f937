package tui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/goliatone/go-regform/pkg/model"
	"github.com/goliatone/go-regform/pkg/render"
	"github.com/goliatone/go-regform/pkg/validation"
	"github.com/goliatone/go-regform/pkg/widgets"
)

// Renderer collects a submission through terminal prompts, one per field in
// schema order.
type Renderer struct {
	driver  PromptDriver
	out     io.Writer
	widgets *widgets.Registry
	theme   Theme
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs a TUI renderer backed by survey unless a driver is supplied.
func New(options ...Option) (*Renderer, error) {
	r := &Renderer{
		out:   os.Stdout,
		theme: Theme{ErrorPrefix: "✗ "},
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	if r.driver == nil {
		r.driver = newSurveyDriver(r.out)
	}
	if r.widgets == nil {
		r.widgets = widgets.NewRegistry()
	}
	return r, nil
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return "tui"
}

// ContentType reports the serialization format used by Render.
func (r *Renderer) ContentType() string {
	return "application/json"
}

// Render collects a submission and returns it JSON encoded.
func (r *Renderer) Render(ctx context.Context, schema model.Schema, opts render.RenderOptions) ([]byte, error) {
	submission, err := r.Collect(ctx, schema, opts)
	if err != nil {
		return nil, err
	}
	payload, err := json.Marshal(submission)
	if err != nil {
		return nil, fmt.Errorf("tui: encode submission: %w", err)
	}
	return payload, nil
}

// Collect prompts for every field. Previous values in opts become prompt
// defaults (never for secrets) and errors are printed ahead of the prompt
// they belong to. Form-level errors are printed first.
func (r *Renderer) Collect(ctx context.Context, schema model.Schema, opts render.RenderOptions) (validation.Submission, error) {
	if ctx == nil {
		return nil, errors.New("tui: context is required")
	}

	for _, message := range opts.FormErrors {
		if err := r.driver.Info(ctx, r.theme.ErrorPrefix+message); err != nil {
			return nil, err
		}
	}

	submission := make(validation.Submission, len(schema.Fields))
	for _, field := range schema.Fields {
		for _, message := range opts.Errors[field.Name] {
			if err := r.driver.Info(ctx, fmt.Sprintf("%s%s: %s", r.theme.ErrorPrefix, promptLabel(field), message)); err != nil {
				return nil, err
			}
		}

		value, err := r.promptField(ctx, field, opts.Values[field.Name])
		if err != nil {
			return nil, fmt.Errorf("tui: prompt %q: %w", field.Name, err)
		}
		submission[field.Name] = value

		if confirm := field.ConfirmName(); confirm != "" {
			again, err := r.driver.Password(ctx, InputConfig{Message: "Confirm " + promptLabel(field)})
			if err != nil {
				return nil, fmt.Errorf("tui: prompt %q: %w", confirm, err)
			}
			submission[confirm] = again
		}
	}
	return submission, nil
}

func (r *Renderer) promptField(ctx context.Context, field model.Field, previous string) (string, error) {
	widget := field.Widget
	if widget == "" {
		widget, _ = r.widgets.Resolve(field)
	}

	help := field.Help
	if help == "" && field.Required {
		help = "required"
	}

	switch {
	case widget == widgets.WidgetPassword || field.Kind == model.KindSecret:
		return r.driver.Password(ctx, InputConfig{Message: promptLabel(field), Help: help})
	case widget == widgets.WidgetTextArea:
		return r.driver.TextArea(ctx, TextAreaConfig{Message: promptLabel(field), Default: previous, Help: help})
	default:
		return r.driver.Input(ctx, InputConfig{Message: promptLabel(field), Default: previous, Help: help})
	}
}

func promptLabel(field model.Field) string {
	if field.Label != "" {
		return field.Label
	}
	return field.Name
}
