package download

import (
	"archive/zip"
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func zipArchive(t *testing.T, files map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for name, content := range files {
		f, err := w.Create(name)
		if err != nil {
			t.Fatalf("zip create %s: %v", name, err)
		}
		if _, err := f.Write([]byte(content)); err != nil {
			t.Fatalf("zip write %s: %v", name, err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("zip close: %v", err)
	}
	return buf.Bytes()
}

func newTestServer(t *testing.T, files map[string][]byte) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := strings.TrimPrefix(r.URL.Path, "/")
		data, ok := files[name]
		if !ok {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write(data)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestInstallMissing(t *testing.T) {
	archive := zipArchive(t, map[string]string{
		"NPCs/Benji/NPC.json":          `{"ID": "benji"}`,
		"NPCs/Benji/Relationship.json": `{"Unlocked": true}`,
		"NPCs/Kathy/NPC.json":          `{"ID": "kathy"}`,
	})
	srv := newTestServer(t, map[string][]byte{"NPCs.zip": archive})

	dest := t.TempDir()
	// Benji 已存在，不得被模板覆盖 / Benji exists and must not be overwritten
	if err := os.MkdirAll(filepath.Join(dest, "Benji"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dest, "Benji", "NPC.json"), []byte(`{"ID": "local"}`), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	c := NewClient(Config{BaseURL: srv.URL})
	added, err := c.InstallMissing(context.Background(), "NPCs.zip", dest)
	if err != nil {
		t.Fatalf("InstallMissing() error = %v", err)
	}
	if added != 1 {
		t.Fatalf("InstallMissing() = %d, want 1", added)
	}

	local, err := os.ReadFile(filepath.Join(dest, "Benji", "NPC.json"))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(local) != `{"ID": "local"}` {
		t.Fatalf("existing NPC overwritten: %s", local)
	}
	if _, err := os.Stat(filepath.Join(dest, "Kathy", "NPC.json")); err != nil {
		t.Fatalf("missing NPC not installed: %v", err)
	}
}

func TestInstallMissing_RejectsSlip(t *testing.T) {
	archive := zipArchive(t, map[string]string{
		"NPCs/../../evil.json": `{}`,
	})
	srv := newTestServer(t, map[string][]byte{"NPCs.zip": archive})

	dest := t.TempDir()
	c := NewClient(Config{BaseURL: srv.URL})
	if _, err := c.InstallMissing(context.Background(), "NPCs.zip", dest); err != nil {
		t.Fatalf("InstallMissing() error = %v", err)
	}
	if _, err := os.Stat(filepath.Join(filepath.Dir(dest), "evil.json")); err == nil {
		t.Fatalf("zip-slip entry escaped the destination")
	}
}

func TestExtractTo(t *testing.T) {
	archive := zipArchive(t, map[string]string{
		"SaveGame_1/Game.json":           `{"OrganisationName": "Template"}`,
		"SaveGame_1/NPCs/Benji/NPC.json": `{"ID": "benji"}`,
	})
	srv := newTestServer(t, map[string][]byte{"SaveGame_1.zip": archive})

	dest := t.TempDir()
	c := NewClient(Config{BaseURL: srv.URL})
	if err := c.ExtractTo(context.Background(), "SaveGame_1.zip", dest); err != nil {
		t.Fatalf("ExtractTo() error = %v", err)
	}
	data, err := os.ReadFile(filepath.Join(dest, "Game.json"))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != `{"OrganisationName": "Template"}` {
		t.Fatalf("Game.json = %s", data)
	}
	if _, err := os.Stat(filepath.Join(dest, "NPCs", "Benji", "NPC.json")); err != nil {
		t.Fatalf("nested file missing: %v", err)
	}
}

func TestFetchFile(t *testing.T) {
	srv := newTestServer(t, map[string][]byte{"AchievementUnlocker.dll": []byte("MZ fake dll")})

	dest := filepath.Join(t.TempDir(), "Mods", "AchievementUnlocker.dll")
	c := NewClient(Config{BaseURL: srv.URL})
	if err := c.FetchFile(context.Background(), "AchievementUnlocker.dll", dest); err != nil {
		t.Fatalf("FetchFile() error = %v", err)
	}
	data, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != "MZ fake dll" {
		t.Fatalf("FetchFile() content = %s", data)
	}
}

func TestFetch_Missing(t *testing.T) {
	srv := newTestServer(t, nil)
	c := NewClient(Config{BaseURL: srv.URL})
	if _, err := c.InstallMissing(context.Background(), "Nope.zip", t.TempDir()); err == nil {
		t.Fatalf("InstallMissing() of missing archive succeeded")
	}
}

func TestFetch_SizeCap(t *testing.T) {
	big := bytes.Repeat([]byte("a"), 2*1024*1024)
	srv := newTestServer(t, map[string][]byte{"Big.zip": big})

	c := NewClient(Config{BaseURL: srv.URL, MaxSizeMB: 1})
	if _, err := c.InstallMissing(context.Background(), "Big.zip", t.TempDir()); err == nil {
		t.Fatalf("InstallMissing() accepted an oversized response")
	}
}
