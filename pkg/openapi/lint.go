package openapi

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

// Hint keys accepted under ExtensionKey.
var hintKinds = map[string]string{
	"label":      "string",
	"widget":     "string",
	"credential": "bool",
}

// Violation is one unsupported or malformed presentation hint.
type Violation struct {
	Location string
	Message  string
}

func (v Violation) String() string {
	return v.Location + " -> " + v.Message
}

// Load parses and validates a JSON or YAML OpenAPI document.
func Load(ctx context.Context, data []byte) (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	loader.Context = ctx
	doc, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("openapi: load document: %w", err)
	}
	if err := doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("openapi: validate document: %w", err)
	}
	return doc, nil
}

// Lint reports request body properties whose ExtensionKey hints the form
// renderers would not understand. knownWidgets limits the widget hint; an
// empty list accepts any widget name.
func Lint(doc *openapi3.T, knownWidgets ...string) []Violation {
	if doc == nil || doc.Paths == nil {
		return nil
	}

	var result []Violation
	paths := doc.Paths.InMatchingOrder()
	sort.Strings(paths)
	for _, path := range paths {
		item := doc.Paths.Value(path)
		for method, op := range item.Operations() {
			if op == nil || op.RequestBody == nil || op.RequestBody.Value == nil {
				continue
			}
			base := []string{method, path, "requestBody"}
			types := make([]string, 0, len(op.RequestBody.Value.Content))
			for contentType := range op.RequestBody.Value.Content {
				types = append(types, contentType)
			}
			sort.Strings(types)
			for _, contentType := range types {
				media := op.RequestBody.Value.Content[contentType]
				if media == nil || media.Schema == nil || media.Schema.Value == nil {
					continue
				}
				result = append(result, lintSchema(appendPath(base, contentType), media.Schema.Value, knownWidgets)...)
			}
		}
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Location == result[j].Location {
			return result[i].Message < result[j].Message
		}
		return result[i].Location < result[j].Location
	})
	return result
}

func lintSchema(path []string, schema *openapi3.Schema, knownWidgets []string) []Violation {
	var result []Violation
	if raw, ok := schema.Extensions[ExtensionKey]; ok {
		result = append(result, lintHints(path, raw, knownWidgets)...)
	}

	keys := make([]string, 0, len(schema.Properties))
	for key := range schema.Properties {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		prop := schema.Properties[key]
		if prop == nil || prop.Value == nil {
			continue
		}
		result = append(result, lintSchema(appendPath(path, "properties."+key), prop.Value, knownWidgets)...)
	}
	return result
}

func lintHints(path []string, raw any, knownWidgets []string) []Violation {
	location := strings.Join(path, " > ")
	hints, ok := raw.(map[string]any)
	if !ok {
		return []Violation{{Location: location, Message: fmt.Sprintf("%s must be an object, found %T", ExtensionKey, raw)}}
	}

	keys := make([]string, 0, len(hints))
	for key := range hints {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var result []Violation
	for _, key := range keys {
		value := hints[key]
		kind, allowed := hintKinds[key]
		switch {
		case !allowed:
			result = append(result, Violation{Location: location, Message: fmt.Sprintf("unsupported hint %q (supported: %s)", key, supportedHints())})
		case kind == "bool":
			if _, ok := value.(bool); !ok {
				result = append(result, Violation{Location: location, Message: fmt.Sprintf("hint %q must be a boolean (got %T)", key, value)})
			}
		default:
			text, ok := value.(string)
			if !ok {
				result = append(result, Violation{Location: location, Message: fmt.Sprintf("hint %q must be a string (got %T)", key, value)})
				continue
			}
			if key == "widget" && len(knownWidgets) > 0 && !contains(knownWidgets, text) {
				result = append(result, Violation{Location: location, Message: fmt.Sprintf("unknown widget %q", text)})
			}
		}
	}
	return result
}

func supportedHints() string {
	keys := make([]string, 0, len(hintKinds))
	for key := range hintKinds {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return strings.Join(keys, ", ")
}

func contains(values []string, target string) bool {
	for _, value := range values {
		if value == target {
			return true
		}
	}
	return false
}

func appendPath(path []string, segment string) []string {
	next := append([]string(nil), path...)
	return append(next, segment)
}
