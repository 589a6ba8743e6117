package site

import (
	"context"
	"time"
)

// PageResult records the outcome of generating one package page.
type PageResult struct {
	Path        string
	Description string
	File        string
	Bytes       int
	ToolFailed  bool
	ToolStderr  string
	Duration    time.Duration
}

// Report summarizes one build run.
type Report struct {
	BuildID    string
	StartedAt  time.Time
	FinishedAt time.Time
	OutputDir  string
	IndexFile  string
	Pages      []PageResult
}

// Failures counts pages whose tool invocation exited abnormally.
func (r *Report) Failures() int {
	n := 0
	for _, p := range r.Pages {
		if p.ToolFailed {
			n++
		}
	}
	return n
}

// Duration of the whole run.
func (r *Report) Duration() time.Duration { return r.FinishedAt.Sub(r.StartedAt) }

// Recorder persists build reports. The generator uses NoopRecorder unless a
// real store is injected.
type Recorder interface {
	RecordBuild(ctx context.Context, report *Report) error
}

// NoopRecorder discards build reports.
type NoopRecorder struct{}

func (NoopRecorder) RecordBuild(context.Context, *Report) error { return nil }
