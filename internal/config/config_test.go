package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-dynform/pkg/render"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	want := Config{
		Log:    LogConfig{Level: "info"},
		Server: ServerConfig{Addr: ":8080", Prefix: "/forms"},
		Output: OutputConfig{Format: "json"},
		Render: RenderConfig{Renderer: "vanilla"},
	}
	if diff := cmp.Diff(want, *cfg); diff != "" {
		t.Fatalf("defaults mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadFileThenEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dynform.yaml")
	body := `
log:
  level: debug
server:
  addr: ":9000"
render:
  locale: es
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("DYNFORM_SERVER_ADDR", ":9100")
	t.Setenv("DYNFORM_OUTPUT_FORMAT", "pretty")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("expected file level debug, got %s", cfg.Log.Level)
	}
	if cfg.Server.Addr != ":9100" {
		t.Errorf("env should override file addr, got %s", cfg.Server.Addr)
	}
	if cfg.Output.Format != "pretty" {
		t.Errorf("expected env output format, got %s", cfg.Output.Format)
	}
	if cfg.Render.Locale != "es" {
		t.Errorf("expected file locale es, got %s", cfg.Render.Locale)
	}
	if cfg.Server.Prefix != "/forms" {
		t.Errorf("unset keys keep defaults, got %s", cfg.Server.Prefix)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestLoadCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "i18n.yaml")
	body := "es:\n  Submit: Enviar\n  \"Submitting...\": Enviando...\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write catalog: %v", err)
	}

	catalog, err := LoadCatalog(path)
	if err != nil {
		t.Fatalf("LoadCatalog failed: %v", err)
	}
	want := render.Catalog{"es": {"Submit": "Enviar", "Submitting...": "Enviando..."}}
	if diff := cmp.Diff(want, catalog); diff != "" {
		t.Fatalf("catalog mismatch (-want +got):\n%s", diff)
	}

	if _, err := catalog.Translate("fr", "Submit"); !errors.Is(err, render.ErrMissingTranslation) {
		t.Fatalf("expected missing translation for fr, got %v", err)
	}

	empty, err := LoadCatalog("")
	if err != nil || empty != nil {
		t.Fatalf("empty path should yield nil catalog, got %v, %v", empty, err)
	}
}
