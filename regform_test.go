package regform

import (
	"context"
	"io/fs"
	"strings"
	"testing"

	"github.com/goliatone/go-regform/pkg/questions"
	"github.com/goliatone/go-regform/pkg/recorder"
	"github.com/goliatone/go-regform/pkg/render"
	"github.com/goliatone/go-regform/pkg/renderers/vanilla"
)

func TestGenerateHTML(t *testing.T) {
	themes, err := render.NewThemeRegistry(vanilla.Manifest(nil))
	if err != nil {
		t.Fatalf("themes: %v", err)
	}
	page, err := GenerateHTML(context.Background(), questions.Fixed("why?"), WithThemeProvider(themes, vanilla.DefaultThemeName, "light"))
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	html := string(page)
	for _, want := range []string{`name="username"`, `name="password"`, `name="why?"`, "--brand:"} {
		if !strings.Contains(html, want) {
			t.Fatalf("expected %q in page", want)
		}
	}

	if _, err := GenerateHTML(context.Background(), questions.Fixed("username")); err == nil {
		t.Fatalf("expected duplicate field error")
	}
}

func TestNew_SubmitRecords(t *testing.T) {
	mem := recorder.NewMemory()
	gen, err := New(questions.Fixed("why?"), mem)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	result, err := gen.Submit(context.Background(), Request{}, Submission{
		"username": "alice", "password": "secret", "why?": "because",
	})
	if err != nil || !result.Accepted {
		t.Fatalf("expected acceptance, got %v / %+v", err, result)
	}
	if got := len(mem.Entries()); got != 1 {
		t.Fatalf("expected one recorded answer, got %d", got)
	}
}

func TestEmbeddedFS(t *testing.T) {
	for _, name := range []string{"form.tmpl", "thanks.tmpl", "layout.tmpl"} {
		if _, err := fs.Stat(EmbeddedTemplates(), name); err != nil {
			t.Fatalf("expected template %s: %v", name, err)
		}
	}
	if _, err := fs.ReadFile(AssetsFS(), vanilla.StylesheetName); err != nil {
		t.Fatalf("expected stylesheet: %v", err)
	}
}
