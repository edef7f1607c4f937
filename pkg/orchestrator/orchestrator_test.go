package orchestrator

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-regform/pkg/model"
	"github.com/goliatone/go-regform/pkg/questions"
	"github.com/goliatone/go-regform/pkg/recorder"
	"github.com/goliatone/go-regform/pkg/render"
	"github.com/goliatone/go-regform/pkg/validation"
	"github.com/goliatone/go-regform/pkg/workflow"
)

type captureRenderer struct {
	schemas []model.Schema
	options []render.RenderOptions
	thanks  int
}

func (c *captureRenderer) Name() string        { return "capture" }
func (c *captureRenderer) ContentType() string { return "text/plain" }

func (c *captureRenderer) Render(_ context.Context, schema model.Schema, opts render.RenderOptions) ([]byte, error) {
	c.schemas = append(c.schemas, schema)
	c.options = append(c.options, opts)
	return []byte("form"), nil
}

func (c *captureRenderer) RenderThanks(_ context.Context, opts render.RenderOptions) ([]byte, error) {
	c.thanks++
	c.options = append(c.options, opts)
	return []byte("thanks"), nil
}

type formOnlyRenderer struct{}

func (formOnlyRenderer) Name() string        { return "form-only" }
func (formOnlyRenderer) ContentType() string { return "text/plain" }
func (formOnlyRenderer) Render(context.Context, model.Schema, render.RenderOptions) ([]byte, error) {
	return nil, nil
}

type stubThemeSelector struct {
	calls [][2]string
}

func (s *stubThemeSelector) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	s.calls = append(s.calls, [2]string{name, variant})
	return &theme.Selection{
		Theme:   "acme",
		Variant: "dark",
		Manifest: &theme.Manifest{
			Name:   "acme",
			Tokens: map[string]string{"brand": "#123456"},
		},
	}, nil
}

func newFixture(t *testing.T, rec recorder.Recorder, opts ...Option) (*Orchestrator, *captureRenderer) {
	t.Helper()
	registration, err := workflow.New(questions.Fixed("why?"), workflow.WithRecorder(rec))
	if err != nil {
		t.Fatalf("workflow: %v", err)
	}
	capture := &captureRenderer{}
	registry := render.NewRegistry()
	registry.MustRegister(capture)

	base := []Option{
		WithRegistration(registration),
		WithRegistry(registry),
		WithDefaultRenderer(capture.Name()),
	}
	return New(append(base, opts...)...), capture
}

func TestGenerate_PassesThemeConfigToRenderer(t *testing.T) {
	selector := &stubThemeSelector{}
	orch, capture := newFixture(t, recorder.Discard(), WithThemeSelector(selector))

	out, err := orch.Generate(context.Background(), Request{
		ThemeName:     "acme",
		ThemeVariant:  "dark",
		RenderOptions: render.RenderOptions{RequestID: "req-1"},
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if string(out) != "form" {
		t.Fatalf("unexpected output %q", out)
	}
	if diff := cmp.Diff([][2]string{{"acme", "dark"}}, selector.calls); diff != "" {
		t.Fatalf("selector calls mismatch (-want +got):\n%s", diff)
	}

	got := capture.options[0]
	if got.Theme == nil || got.Theme.Theme != "acme" || got.Theme.CSSVars["--brand"] != "#123456" {
		t.Fatalf("expected theme config, got %+v", got.Theme)
	}
	if got.RequestID != "req-1" {
		t.Fatalf("expected request id to pass through, got %q", got.RequestID)
	}
	if diff := cmp.Diff([]string{"username", "password", "why?"}, capture.schemas[0].Names()); diff != "" {
		t.Fatalf("schema mismatch (-want +got):\n%s", diff)
	}
}

func TestGenerate_UnknownRenderer(t *testing.T) {
	orch, _ := newFixture(t, recorder.Discard())
	if _, err := orch.Generate(context.Background(), Request{Renderer: "missing"}); !errors.Is(err, render.ErrUnknownRenderer) {
		t.Fatalf("expected ErrUnknownRenderer, got %v", err)
	}
}

func TestGenerate_CancelledContext(t *testing.T) {
	orch, _ := newFixture(t, recorder.Discard())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := orch.Generate(ctx, Request{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestSubmit_Accepted(t *testing.T) {
	mem := recorder.NewMemory()
	orch, capture := newFixture(t, mem)

	result, err := orch.Submit(context.Background(), Request{}, validation.Submission{
		"username": "alice", "password": "secret", "why?": "because",
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if !result.Accepted || result.Page != nil || result.StorageErr != nil {
		t.Fatalf("unexpected result %+v", result)
	}
	if diff := cmp.Diff([]recorder.Entry{{Question: "why?", Answer: "because"}}, mem.Entries()); diff != "" {
		t.Fatalf("entries mismatch (-want +got):\n%s", diff)
	}
	if len(capture.options) != 0 {
		t.Fatalf("expected no render on acceptance")
	}
}

func TestSubmit_RejectedRerendersWithValuesAndErrors(t *testing.T) {
	orch, capture := newFixture(t, recorder.Discard())

	result, err := orch.Submit(context.Background(), Request{
		RenderOptions: render.RenderOptions{Action: "/register", RequestID: "req-2"},
	}, validation.Submission{"username": "alice", "password": "secret"})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if result.Accepted || string(result.Page) != "form" {
		t.Fatalf("expected re-rendered form, got %+v", result)
	}

	got := capture.options[0]
	if diff := cmp.Diff(map[string][]string{"why?": {validation.MessageRequired}}, got.Errors); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(map[string]string{"username": "alice"}, got.Values); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
	if got.Action != "/register" || got.RequestID != "req-2" {
		t.Fatalf("expected request options to be kept, got %+v", got)
	}
}

func TestSubmit_StorageFailure(t *testing.T) {
	failing := recorder.Func(func(context.Context, string, string) error {
		return errors.New("disk full")
	})
	orch, capture := newFixture(t, failing)

	result, err := orch.Submit(context.Background(), Request{}, validation.Submission{
		"username": "alice", "password": "secret", "why?": "because",
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if result.Accepted || result.StorageErr == nil || result.StorageErr.Question != "why?" {
		t.Fatalf("expected storage failure, got %+v", result)
	}
	if diff := cmp.Diff([]string{StorageFailureMessage}, capture.options[0].FormErrors); diff != "" {
		t.Fatalf("form errors mismatch (-want +got):\n%s", diff)
	}
	if capture.options[0].Values["why?"] != "because" {
		t.Fatalf("expected submitted answers to be kept")
	}
}

func TestGenerateThanks(t *testing.T) {
	orch, capture := newFixture(t, recorder.Discard())
	out, err := orch.GenerateThanks(context.Background(), Request{})
	if err != nil {
		t.Fatalf("thanks: %v", err)
	}
	if string(out) != "thanks" || capture.thanks != 1 {
		t.Fatalf("unexpected thanks output %q", out)
	}

	registry := render.NewRegistry()
	registry.MustRegister(formOnlyRenderer{})
	limited := New(WithRegistry(registry), WithDefaultRenderer("form-only"))
	if _, err := limited.GenerateThanks(context.Background(), Request{}); !errors.Is(err, render.ErrNoThanksPage) {
		t.Fatalf("expected ErrNoThanksPage, got %v", err)
	}
}

func TestNew_DefaultsRenderVanillaPage(t *testing.T) {
	orch := New()
	out, err := orch.Generate(context.Background(), Request{})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	page := string(out)
	for _, question := range questions.DefaultQuestions {
		if !strings.Contains(page, question) {
			t.Fatalf("expected page to contain %q", question)
		}
	}
	if !strings.Contains(page, `type="password"`) {
		t.Fatalf("expected password input in default page")
	}
}

func TestWithThemeProvider_UsesRegistryDefaults(t *testing.T) {
	provider := theme.NewRegistry()
	if err := provider.Register(&theme.Manifest{
		Name:    "acme",
		Version: "1.0.0",
		Tokens:  map[string]string{"brand": "#123456"},
		Variants: map[string]theme.Variant{
			"dark": {Tokens: map[string]string{"brand": "#654321"}},
		},
	}); err != nil {
		t.Fatalf("register manifest: %v", err)
	}
	orch, capture := newFixture(t, recorder.Discard(), WithThemeProvider(provider, "acme", "dark"))

	if _, err := orch.Generate(context.Background(), Request{}); err != nil {
		t.Fatalf("generate: %v", err)
	}
	cfg := capture.options[0].Theme
	if cfg == nil || cfg.Theme != "acme" || cfg.Variant != "dark" {
		t.Fatalf("expected acme/dark theme config, got %+v", cfg)
	}
	if cfg.CSSVars["--brand"] != "#654321" {
		t.Fatalf("expected variant token, got %v", cfg.CSSVars)
	}
}
