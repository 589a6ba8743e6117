package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Project  ProjectConfig `yaml:"project"`
	Site     SiteConfig    `yaml:"site"`
	Tool     ToolConfig    `yaml:"tool"`
	History  HistoryConfig `yaml:"history,omitempty"`
	Packages []Package     `yaml:"packages"`
}

// Package identifies one documented package and its human-readable summary.
// The order of the packages slice is significant: it drives both the page
// generation order and the index listing order.
type Package struct {
	Path        string `yaml:"path"`
	Description string `yaml:"description"`
}

// ProjectConfig describes the Go project being documented.
type ProjectConfig struct {
	// Name of the project, used in page titles ("Gofem – package ana").
	Name string `yaml:"name"`
	// ImportPrefix is joined with each package path to form the import path
	// handed to the documentation tool (e.g. github.com/cpmech/gofem).
	ImportPrefix string `yaml:"import_prefix"`
	// RepoURL is the browsable repository root used to rewrite source links.
	// Empty means auto-detect from the local checkout's origin remote.
	RepoURL string `yaml:"repo_url,omitempty"`
	// Branch used in rewritten source links (blob/<branch>/...).
	Branch string `yaml:"branch,omitempty"`
	// SourceDir is the project checkout watched in serve mode.
	SourceDir string `yaml:"source_dir,omitempty"`
}

// SiteConfig controls the generated site layout.
type SiteConfig struct {
	Title       string `yaml:"title,omitempty"`
	OutputDir   string `yaml:"output_dir,omitempty"`
	LicensePath string `yaml:"license_path,omitempty"`
	StaticDir   string `yaml:"static_dir,omitempty"`
	ReadmePath  string `yaml:"readme_path,omitempty"`
}

// ToolConfig selects the external documentation tool.
type ToolConfig struct {
	Binary string `yaml:"binary,omitempty"`
}

// HistoryConfig enables the SQLite build-history store when Path is set.
type HistoryConfig struct {
	Path string `yaml:"path,omitempty"`
}

// Load loads configuration from the specified file.
func Load(configPath string) (*Config, error) {
	// Load .env file if it exists; absence is fine.
	_ = godotenv.Load()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("configuration file not found: %s", configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Expand environment variables in the YAML content
	expandedData := os.ExpandEnv(string(data))

	var config Config
	if err := yaml.Unmarshal([]byte(expandedData), &config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	config.applyDefaults()

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// Validate checks the registry for entries the generator cannot handle.
func (c *Config) Validate() error {
	if c.Project.ImportPrefix == "" {
		return fmt.Errorf("project.import_prefix is required")
	}
	seen := make(map[string]struct{}, len(c.Packages))
	for i, pkg := range c.Packages {
		if pkg.Path == "" {
			return fmt.Errorf("packages[%d]: path must not be empty", i)
		}
		if strings.HasPrefix(pkg.Path, "/") || strings.HasSuffix(pkg.Path, "/") {
			return fmt.Errorf("packages[%d]: path %q must not have leading or trailing slashes", i, pkg.Path)
		}
		for _, seg := range strings.Split(pkg.Path, "/") {
			if seg == "" || seg == "." || seg == ".." {
				return fmt.Errorf("packages[%d]: path %q contains invalid segment", i, pkg.Path)
			}
		}
		if pkg.Description == "" {
			return fmt.Errorf("packages[%d]: description must not be empty", i)
		}
		if _, dup := seen[pkg.Path]; dup {
			return fmt.Errorf("packages[%d]: duplicate path %q", i, pkg.Path)
		}
		seen[pkg.Path] = struct{}{}
	}
	return nil
}

// Init creates a new configuration file with the built-in registry as a
// starting point.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("configuration file already exists: %s (use --force to overwrite)", configPath)
	}

	cfg := Default()
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal default config: %w", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
