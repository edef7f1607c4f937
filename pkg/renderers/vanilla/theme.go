package vanilla

import theme "github.com/goliatone/go-theme"

// DefaultThemeName names the manifest returned by Manifest.
const DefaultThemeName = "regform"

// Manifest describes the built-in theme: a light variant matching the base
// tokens and a dark variant.
// Token names match the custom properties declared in styles.css. Overrides
// replace base tokens and apply to every variant unless the variant sets the
// same token.
func Manifest(overrides map[string]string) *theme.Manifest {
	tokens := map[string]string{
		"brand":   "#2b6cb0",
		"surface": "#ffffff",
		"text":    "#1a202c",
		"muted":   "#4a5568",
		"danger":  "#c53030",
		"radius":  "6px",
	}
	for key, value := range overrides {
		tokens[key] = value
	}

	return &theme.Manifest{
		Name:    DefaultThemeName,
		Version: "1.0.0",
		Tokens:  tokens,
		Variants: map[string]theme.Variant{
			"light": {},
			"dark": {
				Tokens: map[string]string{
					"surface": "#1a202c",
					"text":    "#f7fafc",
					"muted":   "#a0aec0",
				},
			},
		},
	}
}
