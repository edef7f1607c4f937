package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/goliatone/go-regform/pkg/openapi"
	"github.com/goliatone/go-regform/pkg/orchestrator"
	"github.com/goliatone/go-regform/pkg/questions"
	"github.com/goliatone/go-regform/pkg/recorder"
	"github.com/goliatone/go-regform/pkg/render"
	"github.com/goliatone/go-regform/pkg/renderers/vanilla"
	"github.com/goliatone/go-regform/pkg/widgets"
	"github.com/goliatone/go-regform/pkg/workflow"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newTestServer(t *testing.T, rec recorder.Recorder, opts ...Option) *Server {
	t.Helper()
	registration, err := workflow.New(
		questions.Fixed("What college did you attend?"),
		workflow.WithRecorder(rec),
		workflow.WithDecorators(widgets.NewRegistry()),
	)
	require.NoError(t, err)

	themes, err := render.NewThemeRegistry(vanilla.Manifest(nil))
	require.NoError(t, err)

	orch := orchestrator.New(
		orchestrator.WithRegistration(registration),
		orchestrator.WithThemeProvider(themes, vanilla.DefaultThemeName, "light"),
	)
	srv, err := New(orch, append([]Option{WithRequestIDs(func() string { return "req-fixed" })}, opts...)...)
	require.NoError(t, err)
	return srv
}

func postForm(t *testing.T, h http.Handler, values url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestGetForm(t *testing.T) {
	h := newTestServer(t, recorder.Discard()).Handler()

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "text/html; charset=utf-8", rr.Header().Get("Content-Type"))
	assert.Equal(t, "req-fixed", rr.Header().Get(RequestIDHeader))
	body := rr.Body.String()
	assert.Contains(t, body, `name="username"`)
	assert.Contains(t, body, `type="password"`)
	assert.Contains(t, body, "What college did you attend?")
	assert.Contains(t, body, `data-request-id="req-fixed"`)
}

func TestGetForm_ThemeVariantQuery(t *testing.T) {
	h := newTestServer(t, recorder.Discard()).Handler()

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/?variant=dark", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "regform--dark")

	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/?theme=unknown", nil))
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}

func TestSubmit_ValidRedirectsAndRecords(t *testing.T) {
	mem := recorder.NewMemory()
	h := newTestServer(t, mem).Handler()

	rr := postForm(t, h, url.Values{
		"username":                     {"alice"},
		"password":                     {"secret"},
		"What college did you attend?": {"MIT"},
	})

	require.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, ThanksPath, rr.Header().Get("Location"))
	assert.Equal(t, []recorder.Entry{{Question: "What college did you attend?", Answer: "MIT"}}, mem.Entries())
}

func TestSubmit_InvalidRedisplaysForm(t *testing.T) {
	mem := recorder.NewMemory()
	h := newTestServer(t, mem).Handler()

	rr := postForm(t, h, url.Values{
		"username":                     {"alice"},
		"What college did you attend?": {"MIT"},
	})

	require.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	assert.Contains(t, body, `value="alice"`)
	assert.Contains(t, body, "required")
	assert.Contains(t, body, `aria-invalid="true"`)
	assert.Empty(t, mem.Entries())
}

func TestSubmit_StorageFailureReturns500(t *testing.T) {
	failing := recorder.Func(func(context.Context, string, string) error {
		return errors.New("disk full")
	})
	h := newTestServer(t, failing).Handler()

	rr := postForm(t, h, url.Values{
		"username":                     {"alice"},
		"password":                     {"secret"},
		"What college did you attend?": {"MIT"},
	})

	require.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Contains(t, rr.Body.String(), "could not be saved")
	assert.NotContains(t, rr.Body.String(), `value="secret"`)
}

func TestThanksStylesheetAndHealth(t *testing.T) {
	h := newTestServer(t, recorder.Discard()).Handler()

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, ThanksPath, nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), vanilla.DefaultThanksTitle)

	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/styles.css", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Header().Get("Content-Type"), "text/css")
	assert.Contains(t, rr.Body.String(), "--brand")

	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "ok", rr.Body.String())

	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestOpenAPIDocument(t *testing.T) {
	h := newTestServer(t, recorder.Discard(), WithDocumentInfo(openapi.Info{Title: "Signup"})).Handler()

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/openapi.json", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	var doc struct {
		Info struct {
			Title string `json:"title"`
		} `json:"info"`
		Paths map[string]json.RawMessage `json:"paths"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &doc))
	assert.Equal(t, "Signup", doc.Info.Title)
	assert.Contains(t, doc.Paths, "/")
	assert.Contains(t, doc.Paths, ThanksPath)
}

func TestRequestIDAndAccessLog(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	h := newTestServer(t, recorder.Discard(), WithLogger(zap.New(core))).Handler()

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(RequestIDHeader, "from-client")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	assert.Equal(t, "from-client", rr.Header().Get(RequestIDHeader))
	entries := logs.FilterMessage("request").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "from-client", fields["request_id"])
	assert.Equal(t, "/healthz", fields["path"])
	assert.EqualValues(t, http.StatusOK, fields["status"])
}

func TestRun_ServesUntilCancelled(t *testing.T) {
	srv := newTestServer(t, recorder.Discard(), WithShutdownGrace(time.Second))
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx, listener) }()

	client := &http.Client{Transport: &http.Transport{DisableKeepAlives: true}}
	resp, err := client.Get("http://" + listener.Addr().String() + "/healthz")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, "ok", string(body))

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestNew_RequiresOrchestrator(t *testing.T) {
	_, err := New(nil)
	require.Error(t, err)
}
