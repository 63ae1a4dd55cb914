package gamefile

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadMap_MissingFileIsEmpty(t *testing.T) {
	m, err := LoadMap(filepath.Join(t.TempDir(), "Money.json"))
	if err != nil {
		t.Fatalf("LoadMap missing: %v", err)
	}
	if len(m) != 0 {
		t.Fatalf("LoadMap missing len=%d, want 0", len(m))
	}
}

func TestLoadMap_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Rank.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	_, err := LoadMap(path)
	if err == nil {
		t.Fatal("expected ParseError for malformed file")
	}
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("error type = %T, want *ParseError", err)
	}
	if pe.File != path {
		t.Fatalf("ParseError.File=%q, want %q", pe.File, path)
	}
}

func TestSaveMap_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Money.json")
	in := map[string]any{
		"DataType":      "MoneyData",
		"OnlineBalance": Number(9999999999),
		"Networth":      Number(12345),
	}
	if err := SaveMap(path, in); err != nil {
		t.Fatalf("SaveMap: %v", err)
	}

	out, err := LoadMap(path)
	if err != nil {
		t.Fatalf("LoadMap: %v", err)
	}
	if got := Int(out, "OnlineBalance", 0); got != 9999999999 {
		t.Fatalf("OnlineBalance=%d, want 9999999999", got)
	}
	if got := Str(out, "DataType", ""); got != "MoneyData" {
		t.Fatalf("DataType=%q, want MoneyData", got)
	}

	// 文件应为 4 空格缩进的整数字面量 / File keeps 4-space indent and an
	// integer literal, as the game writes it.
	raw, _ := os.ReadFile(path)
	if !strings.Contains(string(raw), "    \"OnlineBalance\": 9999999999") {
		t.Fatalf("unexpected file body:\n%s", raw)
	}
}

func TestSaveMap_ReplacesExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Game.json")
	if err := SaveMap(path, map[string]any{"OrganisationName": "Alpha"}); err != nil {
		t.Fatalf("SaveMap initial: %v", err)
	}
	if err := SaveMap(path, map[string]any{"OrganisationName": "Beta"}); err != nil {
		t.Fatalf("SaveMap overwrite: %v", err)
	}
	m, err := LoadMap(path)
	if err != nil {
		t.Fatalf("LoadMap: %v", err)
	}
	if got := Str(m, "OrganisationName", ""); got != "Beta" {
		t.Fatalf("OrganisationName=%q, want Beta", got)
	}

	// 临时文件不应残留 / No temp files may linger.
	entries, _ := os.ReadDir(filepath.Dir(path))
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".saveedit-") {
			t.Fatalf("leftover temp file: %s", e.Name())
		}
	}
}

func TestLoadFolder_SkipsMalformed(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "a.json"), []byte(`{"Value":"True"}`), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "b.json"), []byte("oops"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	out, err := LoadFolder(dir)
	if err != nil {
		t.Fatalf("LoadFolder: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("LoadFolder len=%d, want 1", len(out))
	}
}

func TestInt_Encodings(t *testing.T) {
	m := map[string]any{
		"a": Number(7),
		"b": float64(8),
		"c": "9",
		"d": "not a number",
	}
	if got := Int(m, "a", -1); got != 7 {
		t.Fatalf("a=%d, want 7", got)
	}
	if got := Int(m, "b", -1); got != 8 {
		t.Fatalf("b=%d, want 8", got)
	}
	if got := Int(m, "c", -1); got != 9 {
		t.Fatalf("c=%d, want 9", got)
	}
	if got := Int(m, "d", -1); got != -1 {
		t.Fatalf("d=%d, want -1", got)
	}
	if got := Int(m, "missing", 42); got != 42 {
		t.Fatalf("missing=%d, want 42", got)
	}
}
