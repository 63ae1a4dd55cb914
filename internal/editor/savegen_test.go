package editor

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"saveedit/internal/download"
	"saveedit/internal/gamefile"
	"saveedit/internal/save"
)

func templateServer(t *testing.T) *httptest.Server {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range map[string]string{
		"SaveGame_1/Game.json":  `{"OrganisationName": "Template", "GameVersion": "0.3.3f11"}`,
		"SaveGame_1/Money.json": `{"OnlineBalance": 0}`,
	} {
		f, err := zw.Create(name)
		if err != nil {
			t.Fatalf("zip: %v", err)
		}
		if _, err := f.Write([]byte(content)); err != nil {
			t.Fatalf("zip: %v", err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("zip: %v", err)
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(buf.Bytes())
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestGenerateNewSave(t *testing.T) {
	root := t.TempDir()
	steamDir := filepath.Join(root, "76561198000000001")
	writeFile(t, filepath.Join(steamDir, "SaveGame_1", "Game.json"), `{"OrganisationName": "First"}`)

	loc, err := save.NewLocator(root)
	if err != nil {
		t.Fatalf("NewLocator() error = %v", err)
	}
	srv := templateServer(t)
	client := download.NewClient(download.Config{BaseURL: srv.URL})

	slotName, err := GenerateNewSave(context.Background(), loc, client, "Fresh Start")
	if err != nil {
		t.Fatalf("GenerateNewSave() error = %v", err)
	}
	if slotName != "SaveGame_2" {
		t.Fatalf("GenerateNewSave() = %q, want SaveGame_2", slotName)
	}

	game, err := gamefile.LoadMap(filepath.Join(steamDir, slotName, "Game.json"))
	if err != nil {
		t.Fatalf("LoadMap() error = %v", err)
	}
	if gamefile.Str(game, "OrganisationName", "") != "Fresh Start" {
		t.Fatalf("OrganisationName = %v", game["OrganisationName"])
	}
}

func TestGenerateNewSave_SlotsFull(t *testing.T) {
	root := t.TempDir()
	steamDir := filepath.Join(root, "76561198000000001")
	for i := 1; i <= 5; i++ {
		writeFile(t, filepath.Join(steamDir, "SaveGame_"+string(rune('0'+i)), "Game.json"), `{}`)
	}

	loc, err := save.NewLocator(root)
	if err != nil {
		t.Fatalf("NewLocator() error = %v", err)
	}
	srv := templateServer(t)
	client := download.NewClient(download.Config{BaseURL: srv.URL})

	if _, err := GenerateNewSave(context.Background(), loc, client, "Overflow"); !errors.Is(err, ErrSlotsFull) {
		t.Fatalf("GenerateNewSave() error = %v, want ErrSlotsFull", err)
	}
}

func TestGenerateNewSave_BlankName(t *testing.T) {
	loc, err := save.NewLocator(t.TempDir())
	if err != nil {
		t.Fatalf("NewLocator() error = %v", err)
	}
	var verr *ValidationError
	if _, err := GenerateNewSave(context.Background(), loc, nil, "  "); !errors.As(err, &verr) {
		t.Fatalf("GenerateNewSave() error = %v, want ValidationError", err)
	}
}

func TestInstallMod(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("MZ fake dll"))
	}))
	defer srv.Close()
	client := download.NewClient(download.Config{BaseURL: srv.URL})

	gameDir := t.TempDir()
	// 没有 Mods 目录时拒绝 / refuse without a Mods folder
	if _, err := InstallMod(context.Background(), client, gameDir, false); !errors.Is(err, ErrModsDirMissing) {
		t.Fatalf("InstallMod() error = %v, want ErrModsDirMissing", err)
	}

	if err := os.MkdirAll(filepath.Join(gameDir, "Mods"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	dest, err := InstallMod(context.Background(), client, gameDir, false)
	if err != nil {
		t.Fatalf("InstallMod() error = %v", err)
	}
	if _, err := os.Stat(dest); err != nil {
		t.Fatalf("installed DLL missing: %v", err)
	}

	// 已存在且未允许覆盖 / existing DLL without overwrite
	if _, err := InstallMod(context.Background(), client, gameDir, false); !errors.Is(err, ErrModExists) {
		t.Fatalf("InstallMod() error = %v, want ErrModExists", err)
	}
	if _, err := InstallMod(context.Background(), client, gameDir, true); err != nil {
		t.Fatalf("InstallMod(overwrite) error = %v", err)
	}
}

func TestFindGameDir(t *testing.T) {
	// 配置目录优先 / a configured directory wins
	dir := t.TempDir()
	got, err := FindGameDir(dir)
	if err != nil || got != dir {
		t.Fatalf("FindGameDir(configured) = %q, %v", got, err)
	}
	if _, err := FindGameDir(filepath.Join(dir, "missing")); !errors.Is(err, ErrGameDirNotFound) {
		t.Fatalf("FindGameDir(missing) error = %v", err)
	}
}

func TestGameDirFromVDF(t *testing.T) {
	library := t.TempDir()
	gameDir := filepath.Join(library, "steamapps", "common", "Schedule I")
	if err := os.MkdirAll(gameDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	vdf := filepath.Join(t.TempDir(), "libraryfolders.vdf")
	content := `"libraryfolders"
{
	"0"
	{
		"path"		"` + library + `"
	}
}`
	if err := os.WriteFile(vdf, []byte(content), 0o644); err != nil {
		t.Fatalf("write vdf: %v", err)
	}

	if got := gameDirFromVDF(vdf); got != gameDir {
		t.Fatalf("gameDirFromVDF() = %q, want %q", got, gameDir)
	}
	if got := gameDirFromVDF(filepath.Join(t.TempDir(), "none.vdf")); got != "" {
		t.Fatalf("gameDirFromVDF(missing) = %q", got)
	}
}
