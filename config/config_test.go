package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("want no error, got %v", err)
	}
	if cfg != Defaults() {
		t.Errorf("want defaults, got %+v", cfg)
	}
}

func TestDefaults_ThemeDetected(t *testing.T) {
	if th := Defaults().Theme; th != "" {
		t.Errorf("want empty theme so the background is detected, got %q", th)
	}
	if err := Defaults().Validate(); err != nil {
		t.Errorf("want defaults valid, got %v", err)
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "profile")
	want := Defaults()
	want.Overscan = 5
	want.Theme = "light"
	if err := Save(dir, want); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := Load(dir)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got != want {
		t.Errorf("want %+v, got %+v", want, got)
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, filename), []byte(`{"gap": 2}`), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Gap != 2 {
		t.Errorf("want gap=2, got %d", cfg.Gap)
	}
	if cfg.Overscan != Defaults().Overscan {
		t.Errorf("want default overscan, got %d", cfg.Overscan)
	}
}

func TestLoad_MalformedFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, filename), []byte(`{`), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(dir)
	if err == nil {
		t.Fatal("want decode error")
	}
	if cfg != Defaults() {
		t.Errorf("want defaults on error, got %+v", cfg)
	}
}

func TestValidate(t *testing.T) {
	bad := []Config{
		func() Config { c := Defaults(); c.Overscan = -1; return c }(),
		func() Config { c := Defaults(); c.Gap = -1; return c }(),
		func() Config { c := Defaults(); c.EstimateHeight = 0; return c }(),
		func() Config { c := Defaults(); c.ScrollingDelayMs = -5; return c }(),
		func() Config { c := Defaults(); c.Theme = "neon"; return c }(),
	}
	for i, c := range bad {
		if err := c.Validate(); err == nil {
			t.Errorf("case %d: want error for %+v", i, c)
		}
	}
	if err := Defaults().Validate(); err != nil {
		t.Errorf("defaults must validate, got %v", err)
	}
}
