package vanilla

import (
	"context"
	"fmt"
	"io/fs"

	"github.com/goliatone/go-regform/pkg/model"
	"github.com/goliatone/go-regform/pkg/render"
	rendertemplate "github.com/goliatone/go-regform/pkg/render/template"
	gotemplate "github.com/goliatone/go-regform/pkg/render/template/gotemplate"
	"github.com/goliatone/go-regform/pkg/widgets"
)

// Page copy used when no option overrides it.
const (
	DefaultTitle         = "Register"
	DefaultSubmitLabel   = "Submit"
	DefaultThanksTitle   = "Thanks!"
	DefaultThanksMessage = "Your registration has been received."
	DefaultStylesheetURL = "/" + StylesheetName
)

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateDir      string
	templateRenderer rendertemplate.TemplateRenderer
	widgets          *widgets.Registry
	copy             pageCopy
	stylesheet       string
}

type pageCopy struct {
	title         string
	submit        string
	thanksTitle   string
	thanksMessage string
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir overrides individual templates from a directory on disk.
// Pages missing from the directory still come from the templates FS.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		cfg.templateDir = path
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithWidgets overrides the registry used for fields that carry no widget.
func WithWidgets(registry *widgets.Registry) Option {
	return func(cfg *config) {
		if registry != nil {
			cfg.widgets = registry
		}
	}
}

// WithTitle sets the form page heading and document title.
func WithTitle(title string) Option {
	return func(cfg *config) {
		if title != "" {
			cfg.copy.title = title
		}
	}
}

// WithSubmitLabel sets the submit button text.
func WithSubmitLabel(label string) Option {
	return func(cfg *config) {
		if label != "" {
			cfg.copy.submit = label
		}
	}
}

// WithThanks sets the heading and message of the thanks page.
func WithThanks(title, message string) Option {
	return func(cfg *config) {
		if title != "" {
			cfg.copy.thanksTitle = title
		}
		if message != "" {
			cfg.copy.thanksMessage = message
		}
	}
}

// WithStylesheetURL changes where pages link the base stylesheet from.
func WithStylesheetURL(url string) Option {
	return func(cfg *config) {
		if url != "" {
			cfg.stylesheet = url
		}
	}
}

// Renderer produces full HTML pages for the registration form and the thanks
// page.
type Renderer struct {
	templates  rendertemplate.TemplateRenderer
	widgets    *widgets.Registry
	copy       pageCopy
	stylesheet string
}

var (
	_ render.Renderer       = (*Renderer)(nil)
	_ render.ThanksRenderer = (*Renderer)(nil)
)

// New constructs the vanilla renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{
		templateFS: TemplatesFS(),
		copy: pageCopy{
			title:         DefaultTitle,
			submit:        DefaultSubmitLabel,
			thanksTitle:   DefaultThanksTitle,
			thanksMessage: DefaultThanksMessage,
		},
		stylesheet: DefaultStylesheetURL,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}
	if cfg.widgets == nil {
		cfg.widgets = widgets.NewRegistry()
	}

	templates := cfg.templateRenderer
	if templates == nil {
		engine, err := gotemplate.New(
			gotemplate.WithBaseDir(cfg.templateDir),
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tmpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: configure template renderer: %w", err)
		}
		templates = engine
	}

	return &Renderer{
		templates:  templates,
		widgets:    cfg.widgets,
		copy:       cfg.copy,
		stylesheet: cfg.stylesheet,
	}, nil
}

func (r *Renderer) Name() string {
	return "vanilla"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render produces the form page. Secret fields are always rendered empty.
func (r *Renderer) Render(_ context.Context, schema model.Schema, opts render.RenderOptions) ([]byte, error) {
	if r.templates == nil {
		return nil, fmt.Errorf("vanilla renderer: template renderer is nil")
	}

	action := opts.Action
	if action == "" {
		action = "/"
	}

	data := r.pageData(opts)
	data["action"] = action
	data["submit_label"] = r.copy.submit
	data["form_errors"] = opts.FormErrors
	data["fields"] = r.fieldViews(schema, opts)

	out, err := r.templates.Render("form", data)
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render form: %w", err)
	}
	return []byte(out), nil
}

// RenderThanks produces the page shown after a successful submission.
func (r *Renderer) RenderThanks(_ context.Context, opts render.RenderOptions) ([]byte, error) {
	if r.templates == nil {
		return nil, fmt.Errorf("vanilla renderer: template renderer is nil")
	}

	data := r.pageData(opts)
	data["thanks_title"] = r.copy.thanksTitle
	data["thanks_message"] = r.copy.thanksMessage

	out, err := r.templates.Render("thanks", data)
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render thanks: %w", err)
	}
	return []byte(out), nil
}

func (r *Renderer) pageData(opts render.RenderOptions) map[string]any {
	themeData := map[string]any{}
	if cfg := opts.Theme; cfg != nil {
		themeData["name"] = cfg.Theme
		themeData["variant"] = cfg.Variant
		themeData["css_vars"] = cssVarsStyle(cfg.CSSVars)
		if cfg.AssetURL != nil {
			themeData["stylesheet"] = cfg.AssetURL("stylesheet")
		}
	}
	return map[string]any{
		"title":      r.copy.title,
		"stylesheet": r.stylesheet,
		"request_id": opts.RequestID,
		"theme":      themeData,
	}
}

func (r *Renderer) fieldViews(schema model.Schema, opts render.RenderOptions) []map[string]any {
	views := make([]map[string]any, 0, len(schema.Fields))
	for idx, field := range schema.Fields {
		widget := field.Widget
		if widget == "" {
			widget, _ = r.widgets.Resolve(field)
		}

		value := opts.Values[field.Name]
		if field.Kind == model.KindSecret {
			// Secrets are always masked, whatever widget an overlay asked for.
			widget = widgets.WidgetPassword
			value = ""
		}

		label := field.Label
		if label == "" {
			label = field.Name
		}

		view := map[string]any{
			"id":         controlID(idx, field.Name),
			"name":       field.Name,
			"label":      label,
			"widget":     widget,
			"input_type": inputType(widget),
			"value":      value,
			"required":   field.Required,
			"errors":     opts.Errors[field.Name],
			"help":       field.Help,
			"help_id":    controlID(idx, field.Name) + "-help",
		}
		if confirm := field.ConfirmName(); confirm != "" {
			view["confirm_name"] = confirm
			view["confirm_id"] = controlID(idx, confirm)
			view["confirm_label"] = "Confirm " + label
		}
		views = append(views, view)
	}
	return views
}
