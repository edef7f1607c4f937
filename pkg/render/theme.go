package render

import (
	"fmt"
	"strings"

	theme "github.com/goliatone/go-theme"
)

// NewThemeRegistry registers manifests with a go-theme registry.
func NewThemeRegistry(manifests ...*theme.Manifest) (theme.ThemeProvider, error) {
	registry := theme.NewRegistry()
	for _, manifest := range manifests {
		if manifest == nil || strings.TrimSpace(manifest.Name) == "" {
			return nil, fmt.Errorf("render: theme manifest name is required")
		}
		if err := registry.Register(manifest); err != nil {
			return nil, fmt.Errorf("render: register theme %q: %w", manifest.Name, err)
		}
	}
	return registry, nil
}

// NewThemeSelector returns go-theme's selector over provider. Select falls
// back to defaultTheme and defaultVariant for empty arguments.
func NewThemeSelector(provider theme.ThemeProvider, defaultTheme, defaultVariant string) theme.ThemeSelector {
	return &theme.Selector{
		Registry:       provider,
		DefaultTheme:   strings.TrimSpace(defaultTheme),
		DefaultVariant: strings.TrimSpace(defaultVariant),
	}
}

// ThemeConfig flattens a selection into renderer configuration. Variant
// tokens, templates and asset files override the base manifest. Every token
// is also exposed as a CSS custom property named "--<token>".
func ThemeConfig(selection *theme.Selection) *theme.RendererConfig {
	if selection == nil || selection.Manifest == nil {
		return nil
	}
	manifest := selection.Manifest

	tokens := mergeStrings(manifest.Tokens, nil)
	partials := mergeStrings(manifest.Templates, nil)
	files := mergeStrings(manifest.Assets.Files, nil)
	prefix := manifest.Assets.Prefix

	if variant, ok := manifest.Variants[selection.Variant]; ok {
		tokens = mergeStrings(tokens, variant.Tokens)
		partials = mergeStrings(partials, variant.Templates)
		files = mergeStrings(files, variant.Assets.Files)
		if variant.Assets.Prefix != "" {
			prefix = variant.Assets.Prefix
		}
	}

	var cssVars map[string]string
	if len(tokens) > 0 {
		cssVars = make(map[string]string, len(tokens))
		for key, value := range tokens {
			cssVars["--"+key] = value
		}
	}

	return &theme.RendererConfig{
		Theme:    selection.Theme,
		Variant:  selection.Variant,
		Partials: partials,
		Tokens:   tokens,
		CSSVars:  cssVars,
		AssetURL: assetResolver(prefix, files),
	}
}

func assetResolver(prefix string, files map[string]string) func(string) string {
	prefix = strings.TrimRight(prefix, "/")
	return func(key string) string {
		file, ok := files[key]
		if !ok || file == "" {
			return ""
		}
		if prefix == "" || strings.HasPrefix(file, "/") {
			return file
		}
		return prefix + "/" + file
	}
}

func mergeStrings(base, overrides map[string]string) map[string]string {
	if len(base) == 0 && len(overrides) == 0 {
		return nil
	}
	out := make(map[string]string, len(base)+len(overrides))
	for key, value := range base {
		out[key] = value
	}
	for key, value := range overrides {
		out[key] = value
	}
	return out
}
