package openapi_test

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-regform/pkg/model"
	"github.com/goliatone/go-regform/pkg/openapi"
	"github.com/goliatone/go-regform/pkg/testsupport"
	"github.com/goliatone/go-regform/pkg/widgets"
)

var knownWidgets = []string{widgets.WidgetText, widgets.WidgetPassword, widgets.WidgetTextArea}

func TestLint_GeneratedDocumentIsClean(t *testing.T) {
	schema := testsupport.MustBuildSchema(t, testsupport.ScenarioQuestions, model.WithConfirmedPassword())
	if err := widgets.NewRegistry().Decorate(&schema); err != nil {
		t.Fatalf("decorate: %v", err)
	}
	doc, err := openapi.Document(context.Background(), schema, openapi.Info{})
	if err != nil {
		t.Fatalf("document: %v", err)
	}
	if got := openapi.Lint(doc, knownWidgets...); len(got) != 0 {
		t.Fatalf("expected no violations, got %v", got)
	}

	payload, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	loaded, err := openapi.Load(context.Background(), payload)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got := openapi.Lint(loaded, knownWidgets...); len(got) != 0 {
		t.Fatalf("expected no violations after round trip, got %v", got)
	}
}

func TestLint_ReportsBadHints(t *testing.T) {
	schema := testsupport.MustBuildSchema(t, []string{"why?"})
	doc, err := openapi.Document(context.Background(), schema, openapi.Info{})
	if err != nil {
		t.Fatalf("document: %v", err)
	}
	body := doc.Paths.Find("/").Post.RequestBody.Value.
		Content.Get("application/x-www-form-urlencoded").Schema.Value
	body.Properties["username"].Value.Extensions[openapi.ExtensionKey] = map[string]any{
		"label":       "Username",
		"widget":      "slider",
		"credential":  "yes",
		"placeholder": "you",
	}
	body.Properties["why?"].Value.Extensions[openapi.ExtensionKey] = "oops"

	violations := openapi.Lint(doc, knownWidgets...)
	if len(violations) != 4 {
		t.Fatalf("expected 4 violations, got %d: %v", len(violations), violations)
	}

	var messages []string
	for _, v := range violations {
		if !strings.HasPrefix(v.Location, "POST > / > requestBody") {
			t.Fatalf("unexpected location %q", v.Location)
		}
		messages = append(messages, v.Message)
	}
	joined := strings.Join(messages, "\n")
	for _, want := range []string{"must be an object", `unknown widget "slider"`, `"credential" must be a boolean`, `unsupported hint "placeholder"`} {
		if !strings.Contains(joined, want) {
			t.Fatalf("expected violation %q in:\n%s", want, joined)
		}
	}

	if got := openapi.Lint(doc); len(got) != 3 {
		t.Fatalf("expected widget names to be unchecked without a list, got %v", got)
	}
}

func TestLoad_RejectsInvalidDocuments(t *testing.T) {
	if _, err := openapi.Load(context.Background(), []byte("not: [valid")); err == nil {
		t.Fatalf("expected parse error")
	}
	if _, err := openapi.Load(context.Background(), []byte(`{"openapi":"3.0.3","paths":{}}`)); err == nil {
		t.Fatalf("expected validation error for missing info")
	}
	if got := openapi.Lint(&openapi3.T{}); got != nil {
		t.Fatalf("expected nil for empty document, got %v", got)
	}
}
