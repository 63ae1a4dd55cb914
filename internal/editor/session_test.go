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
	"strings"
	"testing"

	"saveedit/internal/download"
	"saveedit/internal/gamefile"
	"saveedit/internal/save"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func newTestSlot(t *testing.T) string {
	t.Helper()
	slot := filepath.Join(t.TempDir(), "SaveGame_1")
	writeFile(t, filepath.Join(slot, "Game.json"), `{"OrganisationName": "Los Pollos", "GameVersion": "0.3.3f11"}`)
	writeFile(t, filepath.Join(slot, "Money.json"), `{"OnlineBalance": 100, "Networth": 200, "LifetimeEarnings": 300, "WeeklyDepositSum": 50}`)
	writeFile(t, filepath.Join(slot, "Rank.json"), `{"CurrentRank": "Street", "Rank": 1, "Tier": 2}`)
	writeFile(t, filepath.Join(slot, "Metadata.json"), `{"CreationDate": {"Year": 2025, "Month": 4, "Day": 9, "Hour": 1, "Minute": 2, "Second": 3}}`)
	return slot
}

func TestSessionApplyStats_RejectionLeavesFileUntouched(t *testing.T) {
	slot := newTestSlot(t)
	sess, err := NewSession(slot, nil)
	if err != nil {
		t.Fatalf("NewSession() error = %v", err)
	}

	edit := StatsEdit{
		Money:        save.MoneyInfo{OnlineBalance: 500},
		Rank:         save.RankInfo{CurrentRank: "Street", Rank: 1, Tier: 150},
		Organisation: "Los Pollos",
	}
	err = sess.ApplyStats(edit)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("ApplyStats() error = %v, want ValidationError", err)
	}

	snap, err := sess.Reload()
	if err != nil {
		t.Fatalf("Reload() error = %v", err)
	}
	if snap.Money.OnlineBalance != 100 || snap.Rank.Tier != 2 {
		t.Fatalf("rejected edit reached disk: %+v %+v", snap.Money, snap.Rank)
	}
}

func TestSessionApplyStats_WritesAndBacksUp(t *testing.T) {
	slot := newTestSlot(t)
	sess, err := NewSession(slot, nil)
	if err != nil {
		t.Fatalf("NewSession() error = %v", err)
	}

	edit := StatsEdit{
		Money:        save.MoneyInfo{OnlineBalance: 9999, Networth: 1, LifetimeEarnings: 2, WeeklyDepositSum: 3},
		Rank:         save.RankInfo{CurrentRank: "Kingpin", Rank: 4, Tier: 5},
		Organisation: "Heisenberg Co",
	}
	if err := sess.ApplyStats(edit); err != nil {
		t.Fatalf("ApplyStats() error = %v", err)
	}

	snap, err := sess.Reload()
	if err != nil {
		t.Fatalf("Reload() error = %v", err)
	}
	if snap.Money.OnlineBalance != 9999 || snap.Organisation != "Heisenberg Co" {
		t.Fatalf("edit not written: %+v", snap)
	}

	backups, err := sess.Backups()
	if err != nil {
		t.Fatalf("Backups() error = %v", err)
	}
	if len(backups[FeatureStats]) != 1 {
		t.Fatalf("stats backups = %v", backups)
	}

	// 回滚后恢复到编辑前 / restore returns to the pre-edit values
	if err := sess.Restore(FeatureStats, ""); err != nil {
		t.Fatalf("Restore() error = %v", err)
	}
	snap, _ = sess.Reload()
	if snap.Money.OnlineBalance != 100 || snap.Organisation != "Los Pollos" {
		t.Fatalf("restore incomplete: %+v", snap)
	}
}

func TestSessionRestoreAll_AfterEditSequence(t *testing.T) {
	slot := newTestSlot(t)
	writeFile(t, filepath.Join(slot, "Variables", "Flag.json"), `{"Value": "False"}`)
	sess, err := NewSession(slot, nil)
	if err != nil {
		t.Fatalf("NewSession() error = %v", err)
	}

	edit := StatsEdit{
		Money:        save.MoneyInfo{OnlineBalance: 1, Networth: 1, LifetimeEarnings: 1, WeeklyDepositSum: 1},
		Rank:         save.RankInfo{CurrentRank: "Dealer", Rank: 2, Tier: 3},
		Organisation: "Changed",
	}
	if err := sess.ApplyStats(edit); err != nil {
		t.Fatalf("ApplyStats() error = %v", err)
	}
	if _, err := sess.ModifyVariables(); err != nil {
		t.Fatalf("ModifyVariables() error = %v", err)
	}

	if err := sess.RestoreAll(); err != nil {
		t.Fatalf("RestoreAll() error = %v", err)
	}
	snap, err := sess.Reload()
	if err != nil {
		t.Fatalf("Reload() error = %v", err)
	}
	if snap.Money.OnlineBalance != 100 || snap.Organisation != "Los Pollos" {
		t.Fatalf("RestoreAll incomplete: %+v", snap)
	}
	flag, _ := gamefile.LoadMap(filepath.Join(slot, "Variables", "Flag.json"))
	if gamefile.Str(flag, "Value", "") != "False" {
		t.Fatalf("variable not restored: %v", flag["Value"])
	}
}

func TestSessionInitialBackup_OncePerSlot(t *testing.T) {
	slot := newTestSlot(t)
	if _, err := NewSession(slot, nil); err != nil {
		t.Fatalf("NewSession() error = %v", err)
	}
	writeFile(t, filepath.Join(slot, "Money.json"), `{"OnlineBalance": 42}`)
	// 第二次打开不得刷新初始备份 / a second open must not refresh the copy
	sess, err := NewSession(slot, nil)
	if err != nil {
		t.Fatalf("NewSession() second open error = %v", err)
	}
	if err := sess.RestoreAll(); err != nil {
		t.Fatalf("RestoreAll() error = %v", err)
	}
	m, _ := gamefile.LoadMap(filepath.Join(slot, "Money.json"))
	if gamefile.Int(m, "OnlineBalance", 0) != 100 {
		t.Fatalf("initial backup refreshed: %v", m["OnlineBalance"])
	}
}

func TestSessionImportNPCLog(t *testing.T) {
	slot := newTestSlot(t)
	sess, err := NewSession(slot, nil)
	if err != nil {
		t.Fatalf("NewSession() error = %v", err)
	}

	written, err := sess.ImportNPCLog("[ConsoleUnlockerMod] 👤 NPC Found: Benji Coleman | ID: benji_coleman")
	if err != nil {
		t.Fatalf("ImportNPCLog() error = %v", err)
	}
	if written != 1 {
		t.Fatalf("ImportNPCLog() = %d", written)
	}

	if _, err := sess.ImportNPCLog("no npc lines"); err == nil {
		t.Fatalf("ImportNPCLog() accepted an empty log")
	}
}

func TestSessionUnlockOwnership_DownloadsMissing(t *testing.T) {
	slot := newTestSlot(t)
	writeFile(t, filepath.Join(slot, "Properties", "barn", "Property.json"), `{"DataType": "PropertyData", "IsOwned": false}`)

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range map[string]string{
		"Properties/barn/Property.json":  `{"DataType": "PropertyData", "IsOwned": false}`,
		"Properties/motel/Property.json": `{"DataType": "PropertyData", "IsOwned": false}`,
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
		if strings.HasSuffix(r.URL.Path, "Properties.zip") {
			_, _ = w.Write(buf.Bytes())
			return
		}
		http.NotFound(w, r)
	}))
	defer srv.Close()

	sess, err := NewSession(slot, download.NewClient(download.Config{BaseURL: srv.URL}))
	if err != nil {
		t.Fatalf("NewSession() error = %v", err)
	}
	updated, err := sess.UnlockOwnership(context.Background(), "Properties")
	if err != nil {
		t.Fatalf("UnlockOwnership() error = %v", err)
	}
	if updated != 2 {
		t.Fatalf("UnlockOwnership() = %d, want 2 (barn + downloaded motel)", updated)
	}

	snap, err := sess.Reload()
	if err != nil {
		t.Fatalf("Reload() error = %v", err)
	}
	for _, kind := range snap.PropertyTypes {
		data, _ := gamefile.LoadMap(filepath.Join(slot, "Properties", kind, "Property.json"))
		if !gamefile.Bool(data, "IsOwned", false) {
			t.Fatalf("%s not owned after unlock", kind)
		}
	}
}

func TestSessionUnlockOwnership_UnknownKind(t *testing.T) {
	slot := newTestSlot(t)
	sess, err := NewSession(slot, nil)
	if err != nil {
		t.Fatalf("NewSession() error = %v", err)
	}
	var verr *ValidationError
	if _, err := sess.UnlockOwnership(context.Background(), "Garages"); !errors.As(err, &verr) {
		t.Fatalf("UnlockOwnership(Garages) error = %v, want ValidationError", err)
	}
}

func TestSessionDiscoverProducts_RejectsUnknown(t *testing.T) {
	slot := newTestSlot(t)
	sess, err := NewSession(slot, nil)
	if err != nil {
		t.Fatalf("NewSession() error = %v", err)
	}

	if _, err := sess.DiscoverProducts([]string{"cocaine"}); err != nil {
		t.Fatalf("DiscoverProducts(cocaine) error = %v", err)
	}
	var verr *ValidationError
	if _, err := sess.DiscoverProducts([]string{"sugar"}); !errors.As(err, &verr) {
		t.Fatalf("DiscoverProducts(sugar) error = %v, want ValidationError", err)
	}
}

func TestSessionGenerateProducts_Validates(t *testing.T) {
	slot := newTestSlot(t)
	sess, err := NewSession(slot, nil)
	if err != nil {
		t.Fatalf("NewSession() error = %v", err)
	}

	if _, err := sess.GenerateProducts(0, 10, 100, false); err == nil {
		t.Fatalf("GenerateProducts(count 0) accepted")
	}
	ids, err := sess.GenerateProducts(2, 6, 100, false)
	if err != nil {
		t.Fatalf("GenerateProducts() error = %v", err)
	}
	if len(ids) != 2 {
		t.Fatalf("GenerateProducts() = %v", ids)
	}

	deleted, err := sess.ResetGeneratedProducts()
	if err != nil {
		t.Fatalf("ResetGeneratedProducts() error = %v", err)
	}
	if deleted != 2 {
		t.Fatalf("ResetGeneratedProducts() = %d", deleted)
	}
}
