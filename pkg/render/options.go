package render

import theme "github.com/goliatone/go-theme"

// RenderOptions describe per-request data renderers use to customise their
// output without touching the schema.
type RenderOptions struct {
	// Action is the URL the form posts to. Renderers default to "/".
	Action string
	// Values pre-populates controls keyed by field name. Renderers never echo
	// values back into secret inputs.
	Values map[string]string
	// Errors carries field-level messages keyed by field name.
	Errors map[string][]string
	// FormErrors are messages that do not belong to a single field, for
	// example a storage failure after validation succeeded.
	FormErrors []string
	// Theme is the resolved theme configuration, usually produced by
	// ThemeConfig.
	Theme *theme.RendererConfig
	// RequestID is surfaced by page renderers for support purposes.
	RequestID string
}
