package config

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DefaultPackages is the built-in registry used when no configuration file is
// present. The order is the generation and index order.
var DefaultPackages = []Package{
	{Path: "ana", Description: "analytical solutions"},
	{Path: "shp", Description: "shape (interpolation) structures and quadrature points"},
	{Path: "mdl/generic", Description: "generic models (placeholder for parameters set)"},
	{Path: "mdl/solid", Description: "models for solids"},
	{Path: "mdl/fluid", Description: "models for fluids (liquid / gas)"},
	{Path: "mdl/conduct", Description: "models for liquid conductivity within porous media"},
	{Path: "mdl/retention", Description: "models for liquid retention within porous media"},
	{Path: "mdl/diffusion", Description: "models for diffusion applications"},
	{Path: "mdl/thermomech", Description: "models for thermo-mechanical applications"},
	{Path: "mdl/porous", Description: "models for porous media (TPM-based)"},
	{Path: "inp", Description: "input data (.sim = simulation, .mat = materials, .msh = meshes)"},
	{Path: "ele", Description: "finite elements"},
	{Path: "ele/solid", Description: "elements for solid mechanics"},
	{Path: "ele/seepage", Description: "elements for seepage problems (with liquid and/or gases)"},
	{Path: "ele/diffusion", Description: "elements for diffusion(-like) problems"},
	{Path: "ele/thermomech", Description: "elements for thermo-mechanical applications"},
	{Path: "ele/porous", Description: "elements for porous media simulations (TPM)"},
	{Path: "fem", Description: "finite element method (main, domain, solver, ...)"},
	{Path: "tests", Description: "(unit) tests of complete simulations"},
	{Path: "tests/solid", Description: "tests of solid mechanics applications"},
	{Path: "tests/seepage", Description: "tests of seepage problems"},
	{Path: "tests/diffusion", Description: "tests of diffusion problems"},
	{Path: "tests/thermomech", Description: "tests of thermo-mechanical applications"},
	{Path: "tests/porous", Description: "tests of porous media simulations"},
	{Path: "out", Description: "output routines (post-processing and plotting)"},
}

// Default returns the configuration used when no config file exists: the
// built-in package registry for the gofem project.
func Default() *Config {
	cfg := &Config{
		Project: ProjectConfig{
			Name:         "gofem",
			ImportPrefix: "github.com/cpmech/gofem",
			RepoURL:      "https://github.com/cpmech/gofem",
		},
		Packages: DefaultPackages,
	}
	cfg.applyDefaults()
	return cfg
}

// applyDefaults fills zero-valued fields with sensible defaults.
func (c *Config) applyDefaults() {
	if c.Project.Name == "" {
		c.Project.Name = "docs"
	}
	if c.Project.Branch == "" {
		c.Project.Branch = "master"
	}
	if c.Project.SourceDir == "" {
		c.Project.SourceDir = "."
	}
	if c.Site.Title == "" {
		c.Site.Title = cases.Title(language.English).String(c.Project.Name)
	}
	if c.Site.OutputDir == "" {
		c.Site.OutputDir = "doc"
	}
	if c.Site.LicensePath == "" {
		c.Site.LicensePath = "LICENSE"
	}
	if c.Site.StaticDir == "" {
		c.Site.StaticDir = "static"
	}
	if c.Site.ReadmePath == "" {
		c.Site.ReadmePath = "README.md"
	}
	if c.Tool.Binary == "" {
		c.Tool.Binary = "godoc"
	}
}
