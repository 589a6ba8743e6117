package eventstore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/godocsite/internal/site"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func sampleReport(buildID string, started time.Time) *site.Report {
	return &site.Report{
		BuildID:    buildID,
		StartedAt:  started,
		FinishedAt: started.Add(3 * time.Second),
		OutputDir:  "doc",
		Pages: []site.PageResult{
			{Path: "ana", File: "doc/xxana.html", Bytes: 1024, Duration: 120 * time.Millisecond},
			{Path: "mdl/solid", File: "doc/xxmdl-solid.html", Bytes: 2048, ToolFailed: true, ToolStderr: "cannot find package", Duration: 80 * time.Millisecond},
		},
	}
}

func TestRecordBuild_RoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	report := sampleReport("build-1", time.Now().Add(-time.Minute))
	require.NoError(t, store.RecordBuild(ctx, report))

	builds, err := store.RecentBuilds(ctx, 10)
	require.NoError(t, err)
	require.Len(t, builds, 1)
	require.Equal(t, "build-1", builds[0].BuildID)
	require.Equal(t, 2, builds[0].Packages)
	require.Equal(t, 1, builds[0].Failures)

	pages, err := store.BuildPages(ctx, "build-1")
	require.NoError(t, err)
	require.Len(t, pages, 2)
	require.Equal(t, "ana", pages[0].Path)
	require.False(t, pages[0].ToolFailed)
	require.True(t, pages[1].ToolFailed)
	require.Equal(t, "cannot find package", pages[1].ToolStderr)
}

func TestRecentBuilds_NewestFirstAndLimited(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 5; i++ {
		report := sampleReport("build-"+string(rune('a'+i)), base.Add(time.Duration(i)*time.Minute))
		require.NoError(t, store.RecordBuild(ctx, report))
	}

	builds, err := store.RecentBuilds(ctx, 3)
	require.NoError(t, err)
	require.Len(t, builds, 3)
	require.Equal(t, "build-e", builds[0].BuildID)
	require.Equal(t, "build-d", builds[1].BuildID)
}

func TestRecordBuild_DuplicateBuildIDFails(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	report := sampleReport("build-1", time.Now())
	require.NoError(t, store.RecordBuild(ctx, report))
	require.Error(t, store.RecordBuild(ctx, report))

	// The failed duplicate must not leave partial page rows behind.
	pages, err := store.BuildPages(ctx, "build-1")
	require.NoError(t, err)
	require.Len(t, pages, 2)
}

func TestBuildPages_UnknownBuild(t *testing.T) {
	store := newTestStore(t)
	pages, err := store.BuildPages(context.Background(), "nope")
	require.NoError(t, err)
	require.Empty(t, pages)
}
