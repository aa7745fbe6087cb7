// Package config loads cairolint.toml / .cairolint.yaml.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"cairolint/internal/lint"
	"cairolint/internal/version"
)

// Имена файлов в порядке приоритета внутри одной директории.
const (
	TOMLName = "cairolint.toml"
	YAMLName = ".cairolint.yaml"
)

var (
	// ErrNotFound means no config file exists between the start directory and the filesystem root.
	ErrNotFound = errors.New("config file not found")
	// ErrUnknownRule is wrapped when [rules] names a rule the registry does not know.
	ErrUnknownRule = errors.New("unknown rule")
	// ErrVersion is wrapped when the running cairolint does not satisfy [lint].min_version.
	ErrVersion = errors.New("cairolint version mismatch")
)

// Config is a parsed configuration file. The zero value (and nil) enables
// every rule with its default.
type Config struct {
	Path       string
	MinVersion string
	Exclude    []string
	Jobs       int
	Rules      map[string]bool
}

type fileLint struct {
	MinVersion string   `toml:"min_version" yaml:"min_version"`
	Exclude    []string `toml:"exclude" yaml:"exclude"`
	Jobs       int      `toml:"jobs" yaml:"jobs"`
}

type fileConfig struct {
	Lint  fileLint        `toml:"lint" yaml:"lint"`
	Rules map[string]bool `toml:"rules" yaml:"rules"`
}

// Enabled reports whether rule name runs: an explicit [rules] entry wins,
// otherwise def.
func (c *Config) Enabled(name string, def bool) bool {
	if c == nil {
		return def
	}
	if v, ok := c.Rules[name]; ok {
		return v
	}
	return def
}

// Excluded reports whether rel (slash-separated, relative to the config
// directory) matches one of the exclude globs. A pattern matching a
// directory excludes everything below it.
func (c *Config) Excluded(rel string) bool {
	if c == nil || len(c.Exclude) == 0 {
		return false
	}
	rel = filepath.ToSlash(rel)
	for _, pat := range c.Exclude {
		pat = strings.TrimSuffix(filepath.ToSlash(pat), "/")
		pat = strings.TrimSuffix(pat, "/**")
		for p := rel; p != "." && p != "/" && p != ""; p = path.Dir(p) {
			if ok, _ := path.Match(pat, p); ok {
				return true
			}
		}
		if ok, _ := path.Match(pat, path.Base(rel)); ok {
			return true
		}
	}
	return false
}

// Dir is the directory relative paths in the config are resolved against.
func (c *Config) Dir() string {
	if c == nil || c.Path == "" {
		return ""
	}
	return filepath.Dir(c.Path)
}

// Find walks up from startDir to locate a config file.
func Find(startDir string) (string, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve start directory: %w", err)
	}
	if st, err := os.Stat(dir); err == nil && !st.IsDir() {
		dir = filepath.Dir(dir)
	}
	for {
		for _, name := range []string{TOMLName, YAMLName} {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate, nil
			} else if !errors.Is(err, os.ErrNotExist) {
				return "", fmt.Errorf("failed to stat %q: %w", candidate, err)
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", ErrNotFound
}

// Load parses a config file; the format follows the extension.
func Load(file string) (*Config, error) {
	var (
		raw fileConfig
		err error
	)
	switch strings.ToLower(filepath.Ext(file)) {
	case ".toml":
		raw, err = decodeTOML(file)
	case ".yaml", ".yml":
		raw, err = decodeYAML(file)
	default:
		return nil, fmt.Errorf("%s: unsupported config format", file)
	}
	if err != nil {
		return nil, err
	}
	if raw.Lint.Jobs < 0 {
		return nil, fmt.Errorf("%s: [lint].jobs must not be negative", file)
	}
	return &Config{
		Path:       file,
		MinVersion: strings.TrimSpace(raw.Lint.MinVersion),
		Exclude:    raw.Lint.Exclude,
		Jobs:       raw.Lint.Jobs,
		Rules:      raw.Rules,
	}, nil
}

func decodeTOML(file string) (fileConfig, error) {
	var cfg fileConfig
	meta, err := toml.DecodeFile(file, &cfg)
	if err != nil {
		return fileConfig{}, fmt.Errorf("%s: failed to parse TOML: %w", file, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return fileConfig{}, fmt.Errorf("%s: unknown key %q", file, undecoded[0].String())
	}
	if !meta.IsDefined("rules") {
		cfg.Rules = nil
	}
	return cfg, nil
}

func decodeYAML(file string) (fileConfig, error) {
	f, err := os.Open(file)
	if err != nil {
		return fileConfig{}, fmt.Errorf("%s: %w", file, err)
	}
	defer f.Close()

	var cfg fileConfig
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return fileConfig{}, fmt.Errorf("%s: failed to parse YAML: %w", file, err)
	}
	return cfg, nil
}

// Discover finds and loads the config governing startDir. A missing file
// yields a nil Config and no error.
func Discover(startDir string) (*Config, error) {
	p, err := Find(startDir)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return Load(p)
}

// Validate checks rule names against reg and min_version against the
// running version.
func (c *Config) Validate(reg *lint.Registry) error {
	if c == nil {
		return nil
	}
	var unknown []string
	for name := range c.Rules {
		if !reg.IsAllowedName(name) {
			unknown = append(unknown, name)
		}
	}
	if len(unknown) > 0 {
		slices.Sort(unknown)
		return fmt.Errorf("%s: %w %s; valid names: %s", c.Path, ErrUnknownRule,
			strings.Join(unknown, ", "), strings.Join(reg.AllowedNames(), ", "))
	}
	if c.MinVersion != "" {
		ok, err := version.Satisfies(c.MinVersion)
		if err != nil {
			return fmt.Errorf("%s: [lint].min_version: %w", c.Path, err)
		}
		if !ok {
			return fmt.Errorf("%s: %w: have %s, need %s", c.Path, ErrVersion, version.Number, c.MinVersion)
		}
	}
	return nil
}

// Fingerprint is a stable string of every setting that changes lint
// output. Cached results keyed on it go stale when [rules] changes.
func (c *Config) Fingerprint() string {
	if c == nil || len(c.Rules) == 0 {
		return "default"
	}
	names := make([]string, 0, len(c.Rules))
	for name := range c.Rules {
		names = append(names, name)
	}
	slices.Sort(names)
	var b strings.Builder
	for _, name := range names {
		fmt.Fprintf(&b, "%s=%t;", name, c.Rules[name])
	}
	return b.String()
}
