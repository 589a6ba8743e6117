package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/godocsite/internal/config"
	"git.home.luguber.info/inful/godocsite/internal/eventstore"
	"git.home.luguber.info/inful/godocsite/internal/git"
	"git.home.luguber.info/inful/godocsite/internal/godoc"
	"git.home.luguber.info/inful/godocsite/internal/preview"
	"git.home.luguber.info/inful/godocsite/internal/site"
)

var CLI struct {
	Config  string `short:"c" help:"Configuration file path" default:"godocsite.yaml"`
	Verbose bool   `short:"v" help:"Enable verbose logging"`

	Build struct {
		Output string `short:"o" help:"Output directory override"`
	} `cmd:"" help:"Build the documentation site for the configured packages"`

	Init struct {
		Force bool `help:"Overwrite existing configuration file"`
	} `cmd:"" help:"Initialize a new configuration file"`

	List struct{} `cmd:"" help:"List the effective package registry without building"`

	Serve struct {
		Addr     string        `help:"Listen address" default:":8080"`
		Interval time.Duration `help:"Periodic rebuild interval (0 disables)"`
		NoWatch  bool          `help:"Disable source file watching"`
	} `cmd:"" help:"Build and serve the site, rebuilding on source changes"`

	History struct {
		Limit int `short:"n" help:"Number of builds to show" default:"20"`
	} `cmd:"" help:"Show recent builds from the history store"`
}

func main() {
	ctx := kong.Parse(&CLI)

	// Set up logging
	logLevel := slog.LevelInfo
	if CLI.Verbose {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	})))

	switch ctx.Command() {
	case "build":
		cfg, err := loadConfig()
		if err != nil {
			slog.Error("Failed to load configuration", "error", err)
			os.Exit(1)
		}
		if CLI.Build.Output != "" {
			cfg.Site.OutputDir = CLI.Build.Output
		}
		if err := runBuild(context.Background(), cfg); err != nil {
			slog.Error("Build failed", "error", err)
			os.Exit(1)
		}
	case "init":
		if err := config.Init(CLI.Config, CLI.Init.Force); err != nil {
			slog.Error("Init failed", "error", err)
			os.Exit(1)
		}
		slog.Info("Configuration written", "path", CLI.Config)
	case "list":
		cfg, err := loadConfig()
		if err != nil {
			slog.Error("Failed to load configuration", "error", err)
			os.Exit(1)
		}
		runList(cfg)
	case "serve":
		cfg, err := loadConfig()
		if err != nil {
			slog.Error("Failed to load configuration", "error", err)
			os.Exit(1)
		}
		if err := runServe(cfg); err != nil {
			slog.Error("Serve failed", "error", err)
			os.Exit(1)
		}
	case "history":
		cfg, err := loadConfig()
		if err != nil {
			slog.Error("Failed to load configuration", "error", err)
			os.Exit(1)
		}
		if err := runHistory(context.Background(), cfg, CLI.History.Limit); err != nil {
			slog.Error("History failed", "error", err)
			os.Exit(1)
		}
	}
}

// loadConfig reads the configuration file, or falls back to the built-in
// registry so the tool runs with zero configuration.
func loadConfig() (*config.Config, error) {
	if _, err := os.Stat(CLI.Config); os.IsNotExist(err) {
		slog.Debug("No configuration file, using built-in registry", "path", CLI.Config)
		return config.Default(), nil
	}
	return config.Load(CLI.Config)
}

// newGenerator wires up the generator: repo URL detection, tool runner and
// the optional build-history recorder.
func newGenerator(cfg *config.Config) (*site.Generator, func(), error) {
	if cfg.Project.RepoURL == "" {
		if url, err := git.DetectRepoURL(cfg.Project.SourceDir); err == nil {
			slog.Info("Repository URL detected from origin remote", "url", url)
			cfg.Project.RepoURL = url
		} else {
			slog.Warn("Could not detect repository URL, source links will not be rewritten", "error", err)
		}
	}

	gen := site.NewGenerator(cfg).
		WithTool(godoc.NewRunner(cfg.Tool.Binary).WithVerbose(CLI.Verbose))

	cleanup := func() {}
	if cfg.History.Path != "" {
		store, err := eventstore.NewSQLiteStore(cfg.History.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("open history store: %w", err)
		}
		gen = gen.WithRecorder(store)
		cleanup = func() {
			if err := store.Close(); err != nil {
				slog.Warn("Failed to close history store", "error", err)
			}
		}
	}
	return gen, cleanup, nil
}

func runBuild(ctx context.Context, cfg *config.Config) error {
	gen, cleanup, err := newGenerator(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	report, err := gen.Build(ctx)
	if err != nil {
		return err
	}
	if n := report.Failures(); n > 0 {
		slog.Warn("Some packages were documented from partial tool output", "failures", n)
	}
	return nil
}

func runList(cfg *config.Config) {
	for _, pkg := range cfg.Packages {
		fmt.Printf("%-20s %-40s %s\n", pkg.Path, site.PageFileName(pkg.Path), pkg.Description)
	}
}

func runServe(cfg *config.Config) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	gen, cleanup, err := newGenerator(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	server := preview.NewServer(cfg.Site.OutputDir, func(ctx context.Context) (*site.Report, error) {
		return gen.Build(ctx)
	})

	opts := preview.Options{
		Addr:     CLI.Serve.Addr,
		Interval: CLI.Serve.Interval,
	}
	if !CLI.Serve.NoWatch {
		opts.WatchDir = cfg.Project.SourceDir
	}
	return server.Run(ctx, opts)
}

func runHistory(ctx context.Context, cfg *config.Config, limit int) error {
	if cfg.History.Path == "" {
		return fmt.Errorf("history.path is not configured")
	}
	store, err := eventstore.NewSQLiteStore(cfg.History.Path)
	if err != nil {
		return fmt.Errorf("open history store: %w", err)
	}
	defer func() { _ = store.Close() }()

	builds, err := store.RecentBuilds(ctx, limit)
	if err != nil {
		return err
	}
	if len(builds) == 0 {
		fmt.Println("no recorded builds")
		return nil
	}
	for _, b := range builds {
		fmt.Printf("%s  %s  packages=%d failures=%d  %s\n",
			b.BuildID,
			b.StartedAt.Format(time.RFC3339),
			b.Packages,
			b.Failures,
			b.FinishedAt.Sub(b.StartedAt).Round(time.Millisecond))
	}
	return nil
}
