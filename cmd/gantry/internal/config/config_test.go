package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-drift/gantry/pkg/transition"
)

// TestResolve_Defaults resolves a directory with no gantry.yaml.
func TestResolve_Defaults(t *testing.T) {
	dir := t.TempDir()

	r, err := Resolve(dir)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if r.Kind != transition.CoverFromBottom {
		t.Errorf("Kind = %v, want cover-from-bottom", r.Kind)
	}
	if r.Duration != transition.DefaultDuration {
		t.Errorf("Duration = %v, want the default sentinel", r.Duration)
	}
	if r.InspectAddr != "" || r.JournalPath != "" {
		t.Errorf("expected empty inspector/journal settings, got %q / %q", r.InspectAddr, r.JournalPath)
	}
	if r.ModulePath != "" {
		t.Errorf("ModulePath = %q, want empty without go.mod", r.ModulePath)
	}
}

// TestResolve_FullConfig resolves explicit gantry.yaml values.
func TestResolve_FullConfig(t *testing.T) {
	dir := t.TempDir()
	yaml := `
demo:
  kind: cross-fade
  duration_ms: 250
inspect:
  addr: "127.0.0.1:7070"
journal:
  path: events.db
`
	if err := os.WriteFile(filepath.Join(dir, "gantry.yaml"), []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "go.mod"), []byte("module example.com/demoapp\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	r, err := Resolve(dir)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if r.Kind != transition.CrossFade {
		t.Errorf("Kind = %v, want cross-fade", r.Kind)
	}
	if r.Duration != 250*time.Millisecond {
		t.Errorf("Duration = %v, want 250ms", r.Duration)
	}
	if r.InspectAddr != "127.0.0.1:7070" {
		t.Errorf("InspectAddr = %q", r.InspectAddr)
	}
	if r.JournalPath != "events.db" {
		t.Errorf("JournalPath = %q", r.JournalPath)
	}
	if r.ModulePath != "example.com/demoapp" {
		t.Errorf("ModulePath = %q", r.ModulePath)
	}
}

// TestResolve_BadKind reports unknown transition kinds with a suggestion.
func TestResolve_BadKind(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "gantry.yaml"), []byte("demo:\n  kind: cross-fad\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := Resolve(dir)
	if err == nil {
		t.Fatal("expected an error for an unknown kind")
	}
}

// TestResolve_NegativeDuration rejects negative demo durations.
func TestResolve_NegativeDuration(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "gantry.yaml"), []byte("demo:\n  duration_ms: -5\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Resolve(dir); err == nil {
		t.Fatal("expected an error for a negative duration")
	}
}

// TestLoadOptional_Missing returns an empty config without error.
func TestLoadOptional_Missing(t *testing.T) {
	cfg, err := LoadOptional(t.TempDir())
	if err != nil {
		t.Fatalf("LoadOptional: %v", err)
	}
	if cfg.Demo.Kind != "" {
		t.Errorf("unexpected demo kind %q", cfg.Demo.Kind)
	}
}
