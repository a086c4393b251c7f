// Package config loads a run's settings by layering, from lowest to
// highest priority: built-in defaults, an optional YAML config file
// (gopkg.in/yaml.v3), environment variables loaded via joho/godotenv
// (a .env file, same convention cmd/server/main.go uses), then CLI
// flags applied by the caller on top of the returned Config.
package config

import (
	"fmt"
	"os"

	"github.com/alexandru-savinov/cbmbench/internal/apperrors"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds every setting a run can be configured with. Zero values
// mean "not set"; cmd/cbmbench fills in its own defaults for whatever a
// config file and the environment leave unset.
type Config struct {
	DatasetPath  string   `yaml:"dataset"`
	Variants     []string `yaml:"variants"`
	Vendors      []string `yaml:"vendors"`
	Models       []string `yaml:"models"`
	Temperatures []float64 `yaml:"temperatures"`
	Repetitions  int      `yaml:"repetitions"`
	SampleCap    int      `yaml:"sample_cap"`
	OutputDir    string   `yaml:"output_dir"`
	Store        string   `yaml:"store"`
	StatusAddr   string   `yaml:"status_addr"`
	Every        string   `yaml:"every"`
	ModelsFile   string   `yaml:"models_file"`
	RateLimits   map[string]int64 `yaml:"rate_limits"`
}

// LoadEnv loads a .env file into the process environment if one exists.
// A missing file is not an error, matching godotenv.Load's use in the
// teacher's cmd/server/main.go.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		_ = err // absent .env is the common case outside local development
	}
}

// LoadFile reads a YAML config file. A zero Config is returned, not an
// error, when path is empty, so callers can always call LoadFile and then
// layer flags on top without a conditional.
func LoadFile(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path) // #nosec G304 -- path comes from CLI configuration
	if err != nil {
		return cfg, apperrors.HandleError(err, fmt.Sprintf("failed to read config file %s", path))
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, apperrors.HandleError(err, fmt.Sprintf("failed to parse config file %s", path))
	}
	return cfg, nil
}

// HasKeyFunc returns a predicate reporting whether a vendor has a non-empty
// API key in the environment, for engine.AvailableVendors.
func HasKeyFunc() func(vendor string) bool {
	envByVendor := map[string]string{
		"openai":   "OPENAI_API_KEY_CBM",
		"claude":   "ANTHROPIC_API_KEY_CBM",
		"gemini":   "GEMINI_API_KEY_CBM",
		"deepseek": "DEEPSEEK_API_KEY_CBM",
		"xai":      "XAI_API_KEY_CBM",
	}
	return func(vendor string) bool {
		env, ok := envByVendor[vendor]
		if !ok {
			return false
		}
		return os.Getenv(env) != ""
	}
}
