package site

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/godocsite/internal/config"
	"git.home.luguber.info/inful/godocsite/internal/godoc"
	"git.home.luguber.info/inful/godocsite/internal/markdown"
)

// Generator builds the documentation site: one HTML page per registry entry
// plus an index page, all written under the configured output directory.
type Generator struct {
	cfg      *config.Config
	tool     godoc.DocTool
	recorder Recorder
}

// NewGenerator creates a generator using the configured tool binary.
func NewGenerator(cfg *config.Config) *Generator {
	return &Generator{
		cfg:      cfg,
		tool:     godoc.NewRunner(cfg.Tool.Binary),
		recorder: NoopRecorder{},
	}
}

// WithTool injects a documentation tool (for testing).
func (g *Generator) WithTool(t godoc.DocTool) *Generator { g.tool = t; return g }

// WithRecorder injects a build-history recorder.
func (g *Generator) WithRecorder(r Recorder) *Generator { g.recorder = r; return g }

// Build runs the full generation sequence. Tool failures are reported per
// page and do not abort the run; a missing license file does.
func (g *Generator) Build(ctx context.Context) (*Report, error) {
	report := &Report{
		BuildID:   uuid.NewString(),
		StartedAt: time.Now(),
		OutputDir: g.cfg.Site.OutputDir,
	}

	// The license is embedded verbatim into every footer; without it no
	// well-formed page can be produced.
	license, err := os.ReadFile(g.cfg.Site.LicensePath)
	if err != nil {
		return nil, fmt.Errorf("read license file: %w", err)
	}

	tmpl, err := newTemplates(g.cfg.Site.Title, g.cfg.Site.StaticDir, license)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(g.cfg.Site.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	if g.cfg.Project.RepoURL == "" {
		slog.Warn("No repository URL configured, source links will not be rewritten")
	}

	slog.Info("Starting documentation build",
		"build_id", report.BuildID,
		"output", g.cfg.Site.OutputDir,
		"packages", len(g.cfg.Packages))

	items := make([]indexItem, 0, len(g.cfg.Packages))
	for _, pkg := range g.cfg.Packages {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		page, err := g.buildPage(ctx, tmpl, pkg)
		if err != nil {
			return nil, err
		}
		report.Pages = append(report.Pages, page)
		items = append(items, newIndexItem(pkg))
	}

	indexFile, err := g.writeIndex(tmpl, items)
	if err != nil {
		return nil, err
	}
	report.IndexFile = indexFile
	report.FinishedAt = time.Now()

	if err := g.recorder.RecordBuild(ctx, report); err != nil {
		slog.Warn("Failed to record build history", "error", err)
	}

	slog.Info("Documentation build finished",
		"build_id", report.BuildID,
		"pages", len(report.Pages),
		"tool_failures", report.Failures(),
		"duration", report.Duration())
	return report, nil
}

// buildPage generates and writes one package page.
func (g *Generator) buildPage(ctx context.Context, tmpl *templates, pkg config.Package) (PageResult, error) {
	importPath := g.cfg.Project.ImportPrefix + "/" + pkg.Path
	res := g.tool.Run(ctx, importPath)

	body, err := RewriteSourceLinks(res.HTML, g.cfg.Project.RepoURL, g.cfg.Project.Branch, pkg.Path)
	if err != nil {
		slog.Warn("Source link rewrite failed, keeping fragment as-is",
			"package", pkg.Path, "error", err)
		body = res.HTML
	}

	var buf bytes.Buffer
	if err := tmpl.renderPage(&buf, pkg, body); err != nil {
		return PageResult{}, fmt.Errorf("render page for %s: %w", pkg.Path, err)
	}

	outFile := filepath.Join(g.cfg.Site.OutputDir, PageFileName(pkg.Path))
	if err := os.WriteFile(outFile, buf.Bytes(), 0o644); err != nil {
		return PageResult{}, fmt.Errorf("write page for %s: %w", pkg.Path, err)
	}

	slog.Debug("Package page written",
		"package", pkg.Path,
		"file", outFile,
		"bytes", buf.Len(),
		"tool_failed", res.Failed())

	return PageResult{
		Path:        pkg.Path,
		Description: pkg.Description,
		File:        outFile,
		Bytes:       buf.Len(),
		ToolFailed:  res.Failed(),
		ToolStderr:  res.Stderr,
		Duration:    res.Duration,
	}, nil
}

// writeIndex renders the accumulated index items into the index page. The
// index is rendered in memory and written once, after all package pages.
func (g *Generator) writeIndex(tmpl *templates, items []indexItem) (string, error) {
	var intro template.HTML
	if g.cfg.Site.ReadmePath != "" {
		if src, err := os.ReadFile(g.cfg.Site.ReadmePath); err == nil {
			if rendered, rerr := markdown.Render(src); rerr == nil {
				intro = template.HTML(rendered)
			} else {
				slog.Warn("Failed to render readme intro", "error", rerr)
			}
		}
	}

	var buf bytes.Buffer
	if err := tmpl.renderIndex(&buf, intro, items); err != nil {
		return "", fmt.Errorf("render index: %w", err)
	}

	indexFile := filepath.Join(g.cfg.Site.OutputDir, IndexFileName)
	if err := os.WriteFile(indexFile, buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("write index: %w", err)
	}
	return indexFile, nil
}
