package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"cairolint/internal/rules"
	"cairolint/internal/version"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(p, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestLoadTOML(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, TOMLName, `
[lint]
min_version = ">= 0.1"
exclude = ["target/**", "*_gen.cairo"]
jobs = 4

[rules]
panic = true
double_parens = false
`)
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Jobs != 4 || cfg.MinVersion != ">= 0.1" || len(cfg.Exclude) != 2 {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if !cfg.Enabled("panic", false) {
		t.Fatal("panic must be enabled explicitly")
	}
	if cfg.Enabled("double_parens", true) {
		t.Fatal("double_parens must be disabled explicitly")
	}
	if !cfg.Enabled("eq_op", true) || cfg.Enabled("eq_op", false) {
		t.Fatal("unset rules must follow the default")
	}
	if err := cfg.Validate(rules.Registry()); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestLoadYAML(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, YAMLName, "lint:\n  jobs: 2\nrules:\n  panic: true\n")
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Jobs != 2 || !cfg.Enabled("panic", false) {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}

func TestLoadEmptyYAML(t *testing.T) {
	p := writeFile(t, t.TempDir(), YAMLName, "")
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Rules != nil || cfg.Jobs != 0 {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name, file, content, want string
	}{
		{"bad toml", TOMLName, "[lint\n", "failed to parse TOML"},
		{"unknown toml key", TOMLName, "[lint]\nthreads = 3\n", "unknown key"},
		{"unknown yaml key", YAMLName, "lint:\n  threads: 3\n", "failed to parse YAML"},
		{"negative jobs", TOMLName, "[lint]\njobs = -1\n", "must not be negative"},
		{"unsupported", "cairolint.json", "{}", "unsupported config format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := writeFile(t, t.TempDir(), tt.file, tt.content)
			_, err := Load(p)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("err = %v, want %q", err, tt.want)
			}
		})
	}
}

func TestValidateUnknownRule(t *testing.T) {
	cfg := &Config{Path: "cairolint.toml", Rules: map[string]bool{"no_such_rule": true, "panic": true}}
	err := cfg.Validate(rules.Registry())
	if !errors.Is(err, ErrUnknownRule) {
		t.Fatalf("err = %v, want ErrUnknownRule", err)
	}
	if !strings.Contains(err.Error(), "no_such_rule") || !strings.Contains(err.Error(), "double_parens") {
		t.Fatalf("error must name the bad rule and list valid ones: %v", err)
	}
}

func TestValidateMinVersion(t *testing.T) {
	orig := version.Number
	defer func() { version.Number = orig }()
	version.Number = "0.1.0"

	cfg := &Config{Path: "cairolint.toml", MinVersion: ">= 1.0"}
	if err := cfg.Validate(rules.Registry()); !errors.Is(err, ErrVersion) {
		t.Fatalf("err = %v, want ErrVersion", err)
	}
	cfg.MinVersion = "not a constraint"
	if err := cfg.Validate(rules.Registry()); err == nil || errors.Is(err, ErrVersion) {
		t.Fatalf("malformed constraint must be a parse error, got %v", err)
	}
	cfg.MinVersion = ">= 0.1"
	if err := cfg.Validate(rules.Registry()); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestFindWalksUp(t *testing.T) {
	root := t.TempDir()
	want := writeFile(t, root, TOMLName, "")
	writeFile(t, root, YAMLName, "")
	deep := filepath.Join(root, "src", "nested")
	if err := os.MkdirAll(deep, 0o755); err != nil {
		t.Fatal(err)
	}
	got, err := Find(deep)
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	// toml важнее yaml в одной директории
	if got != want {
		t.Fatalf("Find = %q, want %q", got, want)
	}

	file := writeFile(t, root, "src/nested/main.cairo", "")
	if got, err := Find(file); err != nil || got != want {
		t.Fatalf("Find(file) = %q, %v", got, err)
	}
}

func TestDiscoverMissing(t *testing.T) {
	// выше TempDir конфиг может и найтись, проверяем только контракт
	cfg, err := Discover(t.TempDir())
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if cfg != nil && cfg.Path == "" {
		t.Fatal("a found config must carry its path")
	}
}

func TestNilConfig(t *testing.T) {
	var cfg *Config
	if !cfg.Enabled("panic", true) || cfg.Enabled("panic", false) {
		t.Fatal("nil config must return the default")
	}
	if cfg.Excluded("src/a.cairo") || cfg.Validate(rules.Registry()) != nil || cfg.Dir() != "" {
		t.Fatal("nil config must be inert")
	}
}

func TestExcluded(t *testing.T) {
	cfg := &Config{Exclude: []string{"target/**", "*_gen.cairo", "tests/fixtures"}}
	tests := map[string]bool{
		"target/dev/a.cairo":     true,
		"src/lib_gen.cairo":      true,
		"tests/fixtures/x.cairo": true,
		"tests/a.cairo":          false,
		"src/lib.cairo":          false,
	}
	for rel, want := range tests {
		if got := cfg.Excluded(rel); got != want {
			t.Errorf("Excluded(%q) = %v, want %v", rel, got, want)
		}
	}
}

func TestFingerprint(t *testing.T) {
	a := &Config{Rules: map[string]bool{"panic": true, "double_parens": false}}
	b := &Config{Rules: map[string]bool{"double_parens": false, "panic": true}}
	if a.Fingerprint() != b.Fingerprint() {
		t.Fatal("fingerprint must not depend on map order")
	}
	if a.Fingerprint() != "double_parens=false;panic=true;" {
		t.Fatalf("Fingerprint = %q", a.Fingerprint())
	}
	var none *Config
	if none.Fingerprint() != (&Config{}).Fingerprint() {
		t.Fatal("nil and empty configs lint the same way")
	}
}
