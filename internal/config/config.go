// Package config loads and validates runtime configuration for the
// snapshot engine.
//
// Configuration is a single YAML file validated against an embedded CUE
// schema before it is decoded, so malformed files fail with a schema error
// instead of silently producing zero values. The update-mode signal can
// also arrive through the SEMSHOT_UPDATE environment variable, which
// overrides the file.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"gopkg.in/yaml.v3"
)

// DefaultPath is consulted when no explicit config path is given.
const DefaultPath = ".semshot.yaml"

// UpdateEnvVar is the external update-mode switch: when truthy, every
// verification writes the baseline regardless of comparison outcome.
const UpdateEnvVar = "SEMSHOT_UPDATE"

// schema is the CUE contract for the config file. Unknown fields are
// rejected by the closed struct.
const schema = `
#Config: close({
	baseline_dir?: string & !=""
	artifact_dir?: string & !=""
	journal?:      string
	update?:       bool
	color?:        bool
	capture?: close({
		timeout_ms?:  int & >0
		interval_ms?: int & >0
	})
})
`

// CaptureConfig bounds locator resolution.
type CaptureConfig struct {
	Timeout  time.Duration
	Interval time.Duration
}

// Config is the resolved runtime configuration.
type Config struct {
	BaselineDir string
	ArtifactDir string

	// JournalPath is the SQLite run journal, empty to disable.
	JournalPath string

	Update  bool
	Color   bool
	Capture CaptureConfig
}

// rawConfig mirrors the YAML file shape.
type rawConfig struct {
	BaselineDir string `yaml:"baseline_dir"`
	ArtifactDir string `yaml:"artifact_dir"`
	Journal     string `yaml:"journal"`
	Update      bool   `yaml:"update"`
	Color       *bool  `yaml:"color"`
	Capture     struct {
		TimeoutMS  int `yaml:"timeout_ms"`
		IntervalMS int `yaml:"interval_ms"`
	} `yaml:"capture"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		BaselineDir: "baselines",
		ArtifactDir: "artifacts",
		Color:       true,
		Capture: CaptureConfig{
			Timeout:  5 * time.Second,
			Interval: 100 * time.Millisecond,
		},
	}
}

// Load reads configuration from path. An empty path tries DefaultPath and
// falls back to Default when it does not exist; an explicit path must
// exist. The environment update switch is applied last.
func Load(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			cfg := Default()
			applyEnv(&cfg)
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	cfg, err := parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	applyEnv(&cfg)
	return cfg, nil
}

func parse(data []byte) (Config, error) {
	// Decode generically first so the CUE schema sees the file as written,
	// including unknown fields.
	var generic map[string]any
	if err := yaml.Unmarshal(data, &generic); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := validate(generic); err != nil {
		return Config{}, err
	}

	var raw rawConfig
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	cfg := Default()
	if raw.BaselineDir != "" {
		cfg.BaselineDir = raw.BaselineDir
	}
	if raw.ArtifactDir != "" {
		cfg.ArtifactDir = raw.ArtifactDir
	}
	cfg.JournalPath = raw.Journal
	cfg.Update = raw.Update
	if raw.Color != nil {
		cfg.Color = *raw.Color
	}
	if raw.Capture.TimeoutMS > 0 {
		cfg.Capture.Timeout = time.Duration(raw.Capture.TimeoutMS) * time.Millisecond
	}
	if raw.Capture.IntervalMS > 0 {
		cfg.Capture.Interval = time.Duration(raw.Capture.IntervalMS) * time.Millisecond
	}
	return cfg, nil
}

// validate unifies the decoded file with the CUE schema.
func validate(generic map[string]any) error {
	if generic == nil {
		return nil
	}

	ctx := cuecontext.New()
	sv := ctx.CompileString(schema).LookupPath(cue.ParsePath("#Config"))
	if err := sv.Err(); err != nil {
		return fmt.Errorf("compile config schema: %w", err)
	}

	dv := ctx.Encode(generic)
	if err := dv.Err(); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}

	if err := sv.Unify(dv).Validate(cue.Concrete(true)); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// applyEnv overlays the environment update switch onto cfg.
func applyEnv(cfg *Config) {
	if v := os.Getenv(UpdateEnvVar); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Update = b
		}
	}
}

// UpdateFromEnv reports the update-mode switch alone, for callers that do
// not load a config file (the in-test entry point).
func UpdateFromEnv() bool {
	b, err := strconv.ParseBool(os.Getenv(UpdateEnvVar))
	return err == nil && b
}
