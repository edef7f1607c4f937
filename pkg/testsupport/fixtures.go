package testsupport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	pkgmodel "github.com/goliatone/go-regform/pkg/model"
)

// ScenarioQuestions is the fixed question list used across package tests.
var ScenarioQuestions = []string{
	"Where did you hear about this site?",
	"What college did you attend?",
	"What year did you graduate?",
}

// MustBuildSchema builds a schema with the default builder, failing the test
// on error.
func MustBuildSchema(t *testing.T, questions []string, options ...pkgmodel.BuilderOption) pkgmodel.Schema {
	t.Helper()

	schema, err := pkgmodel.NewBuilder(options...).Build(questions)
	if err != nil {
		t.Fatalf("build schema: %v", err)
	}
	return schema
}

// LoadSchema reads a JSON schema fixture without requiring testing.T.
func LoadSchema(path string) (pkgmodel.Schema, error) {
	if path == "" {
		return pkgmodel.Schema{}, errors.New("testsupport: schema path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return pkgmodel.Schema{}, fmt.Errorf("testsupport: read schema: %w", err)
	}
	var out pkgmodel.Schema
	if err := json.Unmarshal(data, &out); err != nil {
		return pkgmodel.Schema{}, fmt.Errorf("testsupport: unmarshal schema: %w", err)
	}
	return out, nil
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// CaptureTemplateOutput executes a render function that writes to an io.Writer,
// returning both the string result and the writer contents.
func CaptureTemplateOutput(t *testing.T, render func(io.Writer) (string, error)) (string, string) {
	t.Helper()

	var buf bytes.Buffer
	out, err := render(&buf)
	if err != nil {
		t.Fatalf("render template: %v", err)
	}

	return out, buf.String()
}
