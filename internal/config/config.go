// Package config loads the settings of the weathercfg command.
//
// Settings are merged from, lowest priority first: built-in defaults, a
// weathercfg.yaml file, a .env file, and WEATHERCFG_* environment variables.
// Command-line flags are applied on top by the caller.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultFile is the settings file looked up in the working directory.
	DefaultFile = "weathercfg.yaml"
	// DotEnvFile is the optional environment file.
	DotEnvFile = ".env"

	envPrefix = "WEATHERCFG_"
)

// Settings holds all weathercfg configuration.
type Settings struct {
	// Corpus
	CorpusDir string `yaml:"corpus_dir"`
	Pattern   string `yaml:"pattern"`
	Workers   int    `yaml:"workers"`

	// Patching
	PatchFile  string `yaml:"patch_file"`
	OutputPath string `yaml:"output_path"`

	// Parsing
	Strict               bool `yaml:"strict"`
	LegacyUnclosedBlocks bool `yaml:"legacy_unclosed_blocks"`

	// Logging
	LogLevel string `yaml:"log_level"` // debug, info, warn, error

	Export ExportSettings `yaml:"export"`
}

// ExportSettings selects what the export views show. Empty lists mean the
// built-in selection.
type ExportSettings struct {
	Weathers []string `yaml:"weathers"`
	Fields   []string `yaml:"fields"`
}

// Default returns the settings used when nothing is configured. The paths
// match the layout the original tooling used.
func Default() Settings {
	return Settings{
		CorpusDir:  "config/original_chunked",
		Pattern:    "*.cfg",
		Workers:    runtime.GOMAXPROCS(0),
		PatchFile:  "patches.json",
		OutputPath: "config/patched_combined.cfg",
		LogLevel:   "info",
	}
}

// Load reads settings from path on fsys, then applies the .env file next to
// the working directory and the process environment. A missing settings file
// is not an error when path is DefaultFile.
func Load(fsys afero.Fs, path string) (Settings, error) {
	s := Default()
	if path == "" {
		path = DefaultFile
	}

	data, err := afero.ReadFile(fsys, path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &s); err != nil {
			return s, fmt.Errorf("weathercfg: parsing %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist) && path == DefaultFile:
	default:
		return s, fmt.Errorf("weathercfg: reading %s: %w", path, err)
	}

	dotenv, err := readDotEnv(fsys, DotEnvFile)
	if err != nil {
		return s, err
	}
	lookup := func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := dotenv[key]
		return v, ok
	}
	if err := s.ApplyEnv(lookup); err != nil {
		return s, err
	}
	return s, s.Validate()
}

func readDotEnv(fsys afero.Fs, path string) (map[string]string, error) {
	f, err := fsys.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("weathercfg: reading %s: %w", path, err)
	}
	defer f.Close()

	env, err := godotenv.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("weathercfg: parsing %s: %w", path, err)
	}
	return env, nil
}

// ApplyEnv overrides settings from WEATHERCFG_* variables found by lookup.
func (s *Settings) ApplyEnv(lookup func(string) (string, bool)) error {
	str := func(name string, dst *string) {
		if v, ok := lookup(envPrefix + name); ok && v != "" {
			*dst = v
		}
	}
	boolean := func(name string, dst *bool) error {
		v, ok := lookup(envPrefix + name)
		if !ok || v == "" {
			return nil
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("weathercfg: %s%s: %w", envPrefix, name, err)
		}
		*dst = b
		return nil
	}
	list := func(name string, dst *[]string) {
		if v, ok := lookup(envPrefix + name); ok && v != "" {
			*dst = splitList(v)
		}
	}

	str("CORPUS_DIR", &s.CorpusDir)
	str("PATTERN", &s.Pattern)
	str("PATCH_FILE", &s.PatchFile)
	str("OUTPUT_PATH", &s.OutputPath)
	str("LOG_LEVEL", &s.LogLevel)
	list("EXPORT_WEATHERS", &s.Export.Weathers)
	list("EXPORT_FIELDS", &s.Export.Fields)

	if v, ok := lookup(envPrefix + "WORKERS"); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("weathercfg: %sWORKERS: %w", envPrefix, err)
		}
		s.Workers = n
	}
	if err := boolean("STRICT", &s.Strict); err != nil {
		return err
	}
	return boolean("LEGACY_UNCLOSED_BLOCKS", &s.LegacyUnclosedBlocks)
}

// Validate reports settings that cannot work.
func (s Settings) Validate() error {
	if s.Workers < 1 {
		return fmt.Errorf("weathercfg: workers must be at least 1, got %d", s.Workers)
	}
	if s.Pattern == "" {
		return fmt.Errorf("weathercfg: corpus pattern must not be empty")
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
