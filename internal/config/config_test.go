package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadJSONCAndPrecedence(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	work := t.TempDir()
	oldwd, _ := os.Getwd()
	if err := os.Chdir(work); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(oldwd) })

	globalDir := filepath.Join(home, ".saveedit")
	if err := os.MkdirAll(globalDir, 0o755); err != nil {
		t.Fatal(err)
	}
	globalCfg := `{
  // global
  "ui": {"locale": "zh-CN"},
  "download": {"timeout_sec": 30}
}`
	if err := os.WriteFile(filepath.Join(globalDir, "config.json"), []byte(globalCfg), 0o644); err != nil {
		t.Fatal(err)
	}
	projectCfg := `{
  "ui": {"locale": "en", "confirm_writes": false},
  "saves": {"root": "` + filepath.ToSlash(work) + `"}
}`
	if err := os.WriteFile("saveedit.config.json", []byte(projectCfg), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.UI.Locale != "en" {
		t.Fatalf("locale = %q, project config must win", cfg.UI.Locale)
	}
	if cfg.UI.ConfirmWrites {
		t.Fatalf("confirm_writes expected false")
	}
	if cfg.Download.TimeoutSec != 30 {
		t.Fatalf("timeout_sec = %d, global value expected", cfg.Download.TimeoutSec)
	}
	if cfg.Saves.Root == "" {
		t.Fatalf("saves.root not applied")
	}
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("SAVEEDIT_LANG", "zh-CN")
	t.Setenv("SAVEEDIT_BASE_URL", "http://localhost:9000/templates")
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.UI.Locale != "zh-CN" {
		t.Fatalf("locale = %q", cfg.UI.Locale)
	}
	if cfg.Download.BaseURL != "http://localhost:9000/templates" {
		t.Fatalf("base_url = %q", cfg.Download.BaseURL)
	}
}

func TestEnvOverride_InvalidTimeout(t *testing.T) {
	t.Setenv("SAVEEDIT_DOWNLOAD_TIMEOUT_SEC", "zero")
	if _, err := Load(""); err == nil {
		t.Fatalf("Load() accepted an invalid timeout override")
	}
}

func TestDefaults(t *testing.T) {
	cfg := Default()
	if cfg.Download.BaseURL == "" || cfg.Download.TimeoutSec <= 0 {
		t.Fatalf("incomplete download defaults: %+v", cfg.Download)
	}
	if !cfg.UI.ConfirmWrites {
		t.Fatalf("confirm_writes should default to true")
	}
	if cfg.UI.Locale != "en" {
		t.Fatalf("locale default = %q", cfg.UI.Locale)
	}
}
