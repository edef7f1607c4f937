package orchestrator

import (
	"context"
	"errors"
	"fmt"

	theme "github.com/goliatone/go-theme"
	"go.uber.org/zap"

	"github.com/goliatone/go-regform/pkg/model"
	"github.com/goliatone/go-regform/pkg/questions"
	"github.com/goliatone/go-regform/pkg/recorder"
	"github.com/goliatone/go-regform/pkg/render"
	"github.com/goliatone/go-regform/pkg/renderers/vanilla"
	"github.com/goliatone/go-regform/pkg/validation"
	"github.com/goliatone/go-regform/pkg/widgets"
	"github.com/goliatone/go-regform/pkg/workflow"
)

const defaultRendererName = "vanilla"

// StorageFailureMessage is shown above the form when validated answers could
// not be recorded.
const StorageFailureMessage = "Your answers could not be saved. Please try again."

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithRegistration injects the workflow that builds schemas and records
// answers.
func WithRegistration(registration *workflow.Registration) Option {
	return func(o *Orchestrator) {
		o.registration = registration
	}
}

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithDefaultRenderer overrides the renderer used when a request omits an
// explicit Renderer field.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.defaultRenderer = name
	}
}

// WithThemeSelector resolves request theme names into renderer
// configuration.
func WithThemeSelector(selector theme.ThemeSelector) Option {
	return func(o *Orchestrator) {
		o.themeSelector = selector
	}
}

// WithThemeProvider selects themes from provider with go-theme's selector.
// Empty request theme names fall back to defaultTheme and defaultVariant.
func WithThemeProvider(provider theme.ThemeProvider, defaultTheme, defaultVariant string) Option {
	return func(o *Orchestrator) {
		if provider == nil {
			return
		}
		o.themeSelector = render.NewThemeSelector(provider, defaultTheme, defaultVariant)
	}
}

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(o *Orchestrator) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// Orchestrator coordinates schema building, theming and rendering for the
// registration pages. Missing dependencies get the built-in implementations:
// the default question list, the widget decorator and the vanilla renderer.
type Orchestrator struct {
	registration    *workflow.Registration
	registry        *render.Registry
	defaultRenderer string
	themeSelector   theme.ThemeSelector
	logger          *zap.Logger
	initialiseErr   error
}

// New constructs an Orchestrator applying any provided options. Errors from
// default construction are reported by the first Generate or Submit call.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		defaultRenderer: defaultRendererName,
		logger:          zap.NewNop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Request describes one page render.
type Request struct {
	// Renderer names the renderer to use. If empty, the orchestrator falls back
	// to the configured default renderer.
	Renderer string

	// ThemeName and ThemeVariant select the theme. Empty values use the
	// selector defaults; without a selector no theme is applied.
	ThemeName    string
	ThemeVariant string

	// RenderOptions carries per-request values such as the form action and
	// request id. Values and errors are filled in by Submit.
	RenderOptions render.RenderOptions
}

// SubmitResult is the outcome of Submit.
type SubmitResult struct {
	Outcome workflow.Outcome
	// Accepted is true when the submission was valid and every answer was
	// recorded.
	Accepted bool
	// StorageErr is the recorder failure, if any. The page is re-rendered with
	// StorageFailureMessage in that case.
	StorageErr *recorder.StorageError
	// Page is the re-rendered form when the submission was not accepted.
	Page []byte
}

// Registration exposes the underlying workflow.
func (o *Orchestrator) Registration() *workflow.Registration {
	return o.registration
}

// Schema returns the decorated schema served by the form.
func (o *Orchestrator) Schema() (model.Schema, error) {
	if err := o.ready(); err != nil {
		return model.Schema{}, err
	}
	return o.registration.Schema()
}

// Generate renders the empty form, or the form with whatever values and
// errors req.RenderOptions carries.
func (o *Orchestrator) Generate(ctx context.Context, req Request) ([]byte, error) {
	if err := o.check(ctx); err != nil {
		return nil, err
	}
	schema, err := o.registration.Schema()
	if err != nil {
		return nil, fmt.Errorf("orchestrator: %w", err)
	}
	return o.renderForm(ctx, schema, req, req.RenderOptions)
}

// GenerateThanks renders the page shown after an accepted submission.
func (o *Orchestrator) GenerateThanks(ctx context.Context, req Request) ([]byte, error) {
	if err := o.check(ctx); err != nil {
		return nil, err
	}
	if o.registry == nil {
		return nil, errors.New("orchestrator: renderer registry is nil")
	}
	thanks, err := o.registry.Thanks(o.rendererName(req.Renderer))
	if err != nil {
		return nil, fmt.Errorf("orchestrator: %w", err)
	}

	opts := req.RenderOptions
	if opts.Theme, err = o.resolveTheme(req); err != nil {
		return nil, err
	}
	output, err := thanks.RenderThanks(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: render thanks: %w", err)
	}
	return output, nil
}

// Submit validates and records a submission against a freshly built schema.
// Rejected submissions and storage failures re-render the form with the
// submitted values and the relevant messages; they are not errors. The error
// return is reserved for failures to build or render.
func (o *Orchestrator) Submit(ctx context.Context, req Request, submission validation.Submission) (SubmitResult, error) {
	if err := o.check(ctx); err != nil {
		return SubmitResult{}, err
	}
	schema, err := o.registration.Schema()
	if err != nil {
		return SubmitResult{}, fmt.Errorf("orchestrator: %w", err)
	}

	outcome, err := o.registration.SubmitSchema(ctx, schema, submission)
	result := SubmitResult{Outcome: outcome}
	if err != nil {
		var storageErr *recorder.StorageError
		if !errors.As(err, &storageErr) {
			return result, fmt.Errorf("orchestrator: submit: %w", err)
		}
		result.StorageErr = storageErr
	}
	if result.StorageErr == nil && outcome.Result.Valid() {
		result.Accepted = true
		return result, nil
	}

	opts := render.OptionsFromResult(schema, outcome.Result, submission)
	opts.Action = req.RenderOptions.Action
	opts.RequestID = req.RenderOptions.RequestID
	opts.FormErrors = render.MergeFormErrors(req.RenderOptions.FormErrors, opts.FormErrors...)
	if result.StorageErr != nil {
		opts.FormErrors = render.MergeFormErrors(opts.FormErrors, StorageFailureMessage)
		o.logger.Warn("redisplaying form after storage failure",
			zap.String("request_id", opts.RequestID),
			zap.String("question", result.StorageErr.Question),
		)
	}

	page, err := o.renderForm(ctx, schema, req, opts)
	if err != nil {
		return result, err
	}
	result.Page = page
	return result, nil
}

func (o *Orchestrator) renderForm(ctx context.Context, schema model.Schema, req Request, opts render.RenderOptions) ([]byte, error) {
	renderer, err := o.rendererFor(req.Renderer)
	if err != nil {
		return nil, err
	}
	if opts.Theme, err = o.resolveTheme(req); err != nil {
		return nil, err
	}
	output, err := renderer.Render(ctx, schema, opts)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: render output: %w", err)
	}
	return output, nil
}

func (o *Orchestrator) resolveTheme(req Request) (*theme.RendererConfig, error) {
	if req.RenderOptions.Theme != nil {
		return req.RenderOptions.Theme, nil
	}
	if o.themeSelector == nil {
		return nil, nil
	}
	selection, err := o.themeSelector.Select(req.ThemeName, req.ThemeVariant)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: resolve theme: %w", err)
	}
	return render.ThemeConfig(selection), nil
}

func (o *Orchestrator) rendererFor(name string) (render.Renderer, error) {
	if o.registry == nil {
		return nil, errors.New("orchestrator: renderer registry is nil")
	}

	renderer, err := o.registry.Get(o.rendererName(name))
	if err != nil {
		return nil, fmt.Errorf("orchestrator: %w", err)
	}
	return renderer, nil
}

func (o *Orchestrator) rendererName(name string) string {
	if name == "" {
		return o.defaultRenderer
	}
	return name
}

func (o *Orchestrator) check(ctx context.Context) error {
	if ctx == nil {
		return errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return o.ready()
}

func (o *Orchestrator) ready() error {
	if o.initialiseErr != nil {
		return o.initialiseErr
	}
	if o.registration == nil {
		return errors.New("orchestrator: registration is nil")
	}
	return nil
}

func (o *Orchestrator) applyDefaults() {
	if o.registration == nil {
		registration, err := workflow.New(
			questions.Fixed(questions.DefaultQuestions...),
			workflow.WithDecorators(widgets.NewRegistry()),
			workflow.WithLogger(o.logger),
		)
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default registration: %w", err)
			return
		}
		o.registration = registration
	}
	if o.registry == nil {
		o.registry = render.NewRegistry()
		renderer, err := vanilla.New()
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default renderer: %w", err)
			return
		}
		o.registry.MustRegister(renderer)
	}
	if o.defaultRenderer == "" {
		o.defaultRenderer = defaultRendererName
	}
}
