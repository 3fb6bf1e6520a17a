// Package branding provides compile-time identity values for the CLI.
//
// The values live in branding.yaml next to this file and are baked into the
// binary with //go:embed. BuilderPackage is also the npm scope written into
// the generated architect targets.
package branding

import (
	_ "embed"
	"strings"
	"sync"

	"go.yaml.in/yaml/v3"
)

//go:embed branding.yaml
var rawBranding []byte

var (
	once     sync.Once
	defaults brand
)

type brand struct {
	CLIName        string `yaml:"cli_name"`
	DisplayName    string `yaml:"display_name"`
	Description    string `yaml:"description"`
	HomeDir        string `yaml:"home_dir"`
	EnvPrefix      string `yaml:"env_prefix"`
	GoModule       string `yaml:"go_module"`
	BuilderPackage string `yaml:"builder_package"`
}

func load() {
	once.Do(func() {
		// Hard defaults in case the embedded file is missing or empty.
		defaults = brand{
			CLIName:        "ngtron",
			DisplayName:    "ngtron",
			Description:    "Add Electron packaging to an Angular workspace",
			HomeDir:        ".ngtron",
			EnvPrefix:      "NGTRON",
			GoModule:       "github.com/richapps/ngtron",
			BuilderPackage: "@richapps/ngtron",
		}
		_ = yaml.Unmarshal(rawBranding, &defaults)
	})
}

// CLIName returns the root command name (e.g., "ngtron").
func CLIName() string { load(); return defaults.CLIName }

// DisplayName returns the human-readable product name.
func DisplayName() string { load(); return defaults.DisplayName }

// Description returns the short product description.
func Description() string { load(); return defaults.Description }

// HomeDir returns the dot-directory name under $HOME (e.g., ".ngtron").
func HomeDir() string { load(); return defaults.HomeDir }

// EnvPrefix returns the environment variable prefix (e.g., "NGTRON").
func EnvPrefix() string { load(); return defaults.EnvPrefix }

// GoModule returns the Go module path. Not consumed at runtime.
func GoModule() string { load(); return defaults.GoModule }

// BuilderPackage returns the npm package that hosts the architect builders
// (e.g., "@richapps/ngtron").
func BuilderPackage() string { load(); return defaults.BuilderPackage }

// Builder returns a fully qualified builder identifier,
// e.g., Builder("serve") → "@richapps/ngtron:serve".
func Builder(name string) string {
	load()
	return defaults.BuilderPackage + ":" + name
}

// EnvVar returns a fully qualified env var name, e.g., EnvVar("LOG_LEVEL") → "NGTRON_LOG_LEVEL".
func EnvVar(suffix string) string {
	load()
	return defaults.EnvPrefix + "_" + strings.ToUpper(suffix)
}
