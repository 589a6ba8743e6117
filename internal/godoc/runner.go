package godoc

import (
	"bytes"
	"context"
	"log/slog"
	"os/exec"
	"strings"
	"time"
)

// Result holds the captured output of one documentation-tool invocation.
type Result struct {
	// HTML is whatever the tool wrote to stdout, possibly empty or partial
	// when the tool failed.
	HTML []byte
	// Stderr is the tool's standard error with trailing whitespace trimmed.
	Stderr string
	// ExitErr is non-nil when the tool exited non-zero or could not be
	// started. Callers treat this as a reported, non-fatal condition.
	ExitErr error
	// Duration of the invocation.
	Duration time.Duration
}

// Failed reports whether the invocation exited abnormally.
func (r Result) Failed() bool { return r.ExitErr != nil }

// DocTool produces an HTML fragment describing a package's public interface.
type DocTool interface {
	Run(ctx context.Context, importPath string) Result
}

// Runner invokes an external godoc-style binary with -html for each package.
type Runner struct {
	binary  string
	verbose bool
}

// NewRunner creates a runner for the given tool binary (e.g. "godoc").
func NewRunner(binary string) *Runner { return &Runner{binary: binary} }

// WithVerbose echoes captured streams at debug level (observability only,
// not part of the data contract).
func (r *Runner) WithVerbose(v bool) *Runner { r.verbose = v; return r }

// Run executes `<binary> -html <importPath>` and captures both streams in
// full. The exit status never aborts a build: a failing tool yields whatever
// partial stdout it produced, with the failure surfaced via Result.ExitErr.
func (r *Runner) Run(ctx context.Context, importPath string) Result {
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, r.binary, "-html", importPath)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	res := Result{
		HTML:     stdout.Bytes(),
		Stderr:   strings.TrimRight(stderr.String(), " \t\r\n"),
		ExitErr:  err,
		Duration: time.Since(start),
	}

	if r.verbose {
		slog.Debug("Documentation tool output",
			"import_path", importPath,
			"stdout_bytes", stdout.Len(),
			"stderr", res.Stderr)
	}
	if err != nil {
		slog.Warn("Documentation tool exited abnormally",
			"import_path", importPath,
			"error", err,
			"stderr", res.Stderr)
	}
	return res
}
