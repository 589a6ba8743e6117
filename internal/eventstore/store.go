package eventstore

import (
	"context"
	"time"

	"git.home.luguber.info/inful/godocsite/internal/site"
)

// BuildRecord is one persisted build run.
type BuildRecord struct {
	BuildID    string
	StartedAt  time.Time
	FinishedAt time.Time
	OutputDir  string
	Packages   int
	Failures   int
}

// PageRecord is one persisted package page outcome.
type PageRecord struct {
	BuildID    string
	Path       string
	File       string
	Bytes      int
	ToolFailed bool
	ToolStderr string
	DurationMS int64
}

// Store persists build reports and serves the history listing.
type Store interface {
	site.Recorder
	RecentBuilds(ctx context.Context, limit int) ([]BuildRecord, error)
	BuildPages(ctx context.Context, buildID string) ([]PageRecord, error)
	Close() error
}
