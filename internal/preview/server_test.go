package preview

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/godocsite/internal/site"
)

func newTestServer(t *testing.T, rebuild RebuildFunc) *Server {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<html>index</html>"), 0o644))
	if rebuild == nil {
		rebuild = func(context.Context) (*site.Report, error) { return &site.Report{}, nil }
	}
	return NewServer(dir, rebuild)
}

func TestHandler_ServesGeneratedSite(t *testing.T) {
	srv := newTestServer(t, nil)
	ts := httptest.NewServer(srv.handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/index.html")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestHandler_Healthz(t *testing.T) {
	srv := newTestServer(t, nil)
	rec := httptest.NewRecorder()
	srv.handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "ok\n", rec.Body.String())
}

func TestHandler_MetricsExposesBuildCounters(t *testing.T) {
	srv := newTestServer(t, func(context.Context) (*site.Report, error) {
		return &site.Report{Pages: []site.PageResult{{Path: "ana"}, {Path: "fem", ToolFailed: true}}}, nil
	})
	require.NoError(t, srv.triggerRebuild(context.Background(), "test"))

	rec := httptest.NewRecorder()
	srv.handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	require.Contains(t, body, "godocsite_builds_total 1")
	require.Contains(t, body, "godocsite_pages_generated_total 2")
	require.Contains(t, body, "godocsite_tool_failures_total 1")
}

func TestTriggerRebuild_FailureCounted(t *testing.T) {
	calls := 0
	srv := newTestServer(t, func(context.Context) (*site.Report, error) {
		calls++
		return nil, errors.New("boom")
	})

	err := srv.triggerRebuild(context.Background(), "test")
	require.Error(t, err)
	require.Equal(t, 1, calls)

	rec := httptest.NewRecorder()
	srv.handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Contains(t, rec.Body.String(), "godocsite_builds_failed_total 1")
}

func TestStartScheduler_RegistersJob(t *testing.T) {
	srv := newTestServer(t, nil)
	scheduler, err := srv.startScheduler(50 * time.Millisecond)
	require.NoError(t, err)
	defer func() { _ = scheduler.Shutdown() }()

	jobs := scheduler.Jobs()
	require.Len(t, jobs, 1)
	require.Equal(t, "periodic-rebuild", jobs[0].Name())
}
