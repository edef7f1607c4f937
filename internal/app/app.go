// Package app assembles the registration service from configuration.
package app

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	theme "github.com/goliatone/go-theme"
	"go.uber.org/zap"

	"github.com/goliatone/go-regform/internal/config"
	"github.com/goliatone/go-regform/pkg/model"
	"github.com/goliatone/go-regform/pkg/orchestrator"
	"github.com/goliatone/go-regform/pkg/questions"
	"github.com/goliatone/go-regform/pkg/recorder"
	"github.com/goliatone/go-regform/pkg/render"
	"github.com/goliatone/go-regform/pkg/renderers/vanilla"
	"github.com/goliatone/go-regform/pkg/uischema"
	"github.com/goliatone/go-regform/pkg/widgets"
	"github.com/goliatone/go-regform/pkg/workflow"
)

// Option adjusts how New assembles the application.
type Option func(*options)

type options struct {
	recorder recorder.Recorder
	output   io.Writer
	bankFS   fs.FS
	sample   []questions.SampleOption
}

// WithRecorder replaces the configured recorder. Sanitizing still applies
// when enabled.
func WithRecorder(rec recorder.Recorder) Option {
	return func(o *options) {
		o.recorder = rec
	}
}

// WithOutput sets the writer used by the print recorder. Defaults to stdout.
func WithOutput(out io.Writer) Option {
	return func(o *options) {
		if out != nil {
			o.output = out
		}
	}
}

// WithBankFS reads the question bank from fsys instead of the directory
// holding the configured path.
func WithBankFS(fsys fs.FS) Option {
	return func(o *options) {
		o.bankFS = fsys
	}
}

// WithSampleOptions forwards options to sampled question sources.
func WithSampleOptions(opts ...questions.SampleOption) Option {
	return func(o *options) {
		o.sample = append(o.sample, opts...)
	}
}

// App holds the wired components.
type App struct {
	Config       *config.Config
	Logger       *zap.Logger
	Widgets      *widgets.Registry
	Registration *workflow.Registration
	Themes       theme.ThemeSelector
	Renderers    *render.Registry
	Orchestrator *orchestrator.Orchestrator
}

// New wires the question source, schema builder, recorder, renderer and
// theme selector described by cfg.
func New(cfg *config.Config, logger *zap.Logger, opts ...Option) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("app: config is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	o := options{output: os.Stdout}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	source, candidates, err := questionSource(cfg.Questions, o)
	if err != nil {
		return nil, err
	}

	overlay, err := uiOverlay(cfg.Form.UISchema, candidates)
	if err != nil {
		return nil, err
	}

	widgetRegistry := widgets.NewRegistry()
	registration, err := workflow.New(source,
		workflow.WithBuilder(model.NewBuilder(builderOptions(cfg.Form)...)),
		workflow.WithRecorder(answerRecorder(cfg.Recorder, logger, o)),
		workflow.WithDecorators(overlay, widgetRegistry),
		workflow.WithLogger(logger.Named("workflow")),
	)
	if err != nil {
		return nil, fmt.Errorf("app: %w", err)
	}

	provider, err := render.NewThemeRegistry(vanilla.Manifest(cfg.Theme.Tokens))
	if err != nil {
		return nil, fmt.Errorf("app: themes: %w", err)
	}
	themes := render.NewThemeSelector(provider, cfg.Theme.Name, cfg.Theme.Variant)
	if _, err := themes.Select("", ""); err != nil {
		return nil, fmt.Errorf("app: themes: %w", err)
	}

	page, err := vanilla.New(
		vanilla.WithTitle(cfg.Form.Title),
		vanilla.WithTemplatesDir(cfg.Form.TemplatesDir),
		vanilla.WithWidgets(widgetRegistry),
	)
	if err != nil {
		return nil, fmt.Errorf("app: renderer: %w", err)
	}
	renderers := render.NewRegistry()
	if err := renderers.Register(page); err != nil {
		return nil, fmt.Errorf("app: renderer: %w", err)
	}

	orch := orchestrator.New(
		orchestrator.WithRegistration(registration),
		orchestrator.WithRegistry(renderers),
		orchestrator.WithDefaultRenderer(cfg.Renderer),
		orchestrator.WithThemeSelector(themes),
		orchestrator.WithLogger(logger.Named("orchestrator")),
	)

	logger.Info("registration configured",
		zap.String("questions_mode", cfg.Questions.Mode),
		zap.Strings("questions", registration.Questions()),
		zap.String("recorder", cfg.Recorder.Mode),
		zap.String("theme", cfg.Theme.Name),
	)

	return &App{
		Config:       cfg,
		Logger:       logger,
		Widgets:      widgetRegistry,
		Registration: registration,
		Themes:       themes,
		Renderers:    renderers,
		Orchestrator: orch,
	}, nil
}

// questionSource also returns every question the source could have produced,
// so overlays may describe pool entries that were not drawn.
func questionSource(cfg config.Questions, o options) (questions.Source, []string, error) {
	switch cfg.Mode {
	case config.QuestionsFixed:
		return questions.Fixed(cfg.List...), cfg.List, nil
	case config.QuestionsNone:
		return questions.None(), nil, nil
	case config.QuestionsSample:
		source, err := questions.NewSample(cfg.Pool, cfg.Sample, o.sample...)
		if err != nil {
			return nil, nil, fmt.Errorf("app: %w", err)
		}
		return source, cfg.Pool, nil
	case config.QuestionsBank:
		fsys, name := o.bankFS, cfg.Bank
		if fsys == nil {
			fsys, name = os.DirFS(filepath.Dir(cfg.Bank)), filepath.Base(cfg.Bank)
		}
		bank, err := questions.LoadBank(fsys, name)
		if err != nil {
			return nil, nil, fmt.Errorf("app: %w", err)
		}
		source, err := bank.Source(o.sample...)
		if err != nil {
			return nil, nil, fmt.Errorf("app: %w", err)
		}
		return source, append(append([]string(nil), bank.Questions...), bank.Pool...), nil
	default:
		return nil, nil, fmt.Errorf("app: unknown questions mode %q", cfg.Mode)
	}
}

// uiOverlay loads the optional field overlay. It runs ahead of the widget
// registry so that overlay widgets count as explicit choices.
func uiOverlay(path string, candidates []string) (model.Decorator, error) {
	if path == "" {
		return nil, nil
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("app: ui schema: %w", err)
	}

	var store *uischema.Store
	if info.IsDir() {
		store, err = uischema.LoadFS(os.DirFS(path))
	} else {
		store, err = uischema.Load(os.DirFS(filepath.Dir(path)), filepath.Base(path))
	}
	if err != nil {
		return nil, fmt.Errorf("app: %w", err)
	}
	return uischema.NewDecorator(store, uischema.WithKnownFields(candidates...)), nil
}

func builderOptions(cfg config.Form) []model.BuilderOption {
	var opts []model.BuilderOption
	if cfg.OptionalCredentials {
		opts = append(opts, model.WithOptionalCredentials())
	}
	if cfg.ConfirmPassword {
		opts = append(opts, model.WithConfirmedPassword())
	}
	return opts
}

func answerRecorder(cfg config.Recorder, logger *zap.Logger, o options) recorder.Recorder {
	rec := o.recorder
	if rec == nil {
		switch cfg.Mode {
		case config.RecorderPrint:
			rec = recorder.Writer(o.output)
		case config.RecorderLog:
			rec = recorder.Logger(logger.Named("answers"))
		default:
			rec = recorder.Discard()
		}
	}
	if cfg.Sanitize {
		rec = recorder.Sanitizing(rec)
	}
	return rec
}
