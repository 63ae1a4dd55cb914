package tui

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"saveedit/internal/save"

	tea "github.com/charmbracelet/bubbletea"
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

func newTestApp(t *testing.T) (App, string) {
	t.Helper()
	root := t.TempDir()
	slotPath := filepath.Join(root, "76561198000000001", "SaveGame_1")
	writeFile(t, filepath.Join(slotPath, "Game.json"), `{"OrganisationName": "Los Pollos", "GameVersion": "0.3.3f11"}`)
	writeFile(t, filepath.Join(slotPath, "Money.json"), `{"OnlineBalance": 1200, "Networth": 5000, "LifetimeEarnings": 9000, "WeeklyDepositSum": 300}`)
	writeFile(t, filepath.Join(slotPath, "Rank.json"), `{"CurrentRank": "Street", "Rank": 1, "Tier": 2}`)
	writeFile(t, filepath.Join(slotPath, "Metadata.json"), `{"CreationDate": {"Year": 2025, "Month": 4, "Day": 9, "Hour": 18, "Minute": 3, "Second": 41}}`)

	loc, err := save.NewLocator(root)
	if err != nil {
		t.Fatalf("NewLocator() error = %v", err)
	}
	app := NewApp(loc, nil, "")
	app.width, app.height = 100, 30
	app.relayout()
	return app, slotPath
}

func TestAppUpdate_SlotsLoaded(t *testing.T) {
	app, _ := newTestApp(t)

	slots, err := app.locator.Slots()
	if err != nil {
		t.Fatalf("Slots() error = %v", err)
	}
	m, _ := app.Update(slotsMsg{slots: slots})
	updated := m.(App)
	if len(updated.slotTable.Rows()) != 1 {
		t.Fatalf("rows = %d, want 1", len(updated.slotTable.Rows()))
	}
	if updated.slotTable.Rows()[0][1] != "Los Pollos" {
		t.Fatalf("organisation column = %q", updated.slotTable.Rows()[0][1])
	}
}

func TestAppUpdate_SessionOpensSummary(t *testing.T) {
	app, slotPath := newTestApp(t)

	msg := app.openSlotCmd(slotPath)()
	m, _ := app.Update(msg)
	updated := m.(App)
	if updated.page != pageSummary {
		t.Fatalf("page = %v, want summary", updated.page)
	}
	if updated.snap == nil || updated.snap.Organisation != "Los Pollos" {
		t.Fatalf("snapshot not loaded: %+v", updated.snap)
	}
	// 表单应已按快照播种 / forms must be seeded from the snapshot
	if got := updated.inputs[tabMoney][0].Value(); got != "1200" {
		t.Fatalf("online balance input = %q, want 1200", got)
	}
	if got := updated.inputs[tabRank][3].Value(); got != "Los Pollos" {
		t.Fatalf("organisation input = %q", got)
	}
}

func TestAppUpdate_TabSwitchAndFocus(t *testing.T) {
	app, slotPath := newTestApp(t)
	m, _ := app.Update(app.openSlotCmd(slotPath)())
	updated := m.(App)

	m, _ = updated.Update(tea.KeyMsg{Type: tea.KeyEnter}) // summary → editor
	updated = m.(App)
	if updated.page != pageEditor || updated.tab != tabMoney {
		t.Fatalf("page/tab = %v/%v", updated.page, updated.tab)
	}

	m, _ = updated.Update(tea.KeyMsg{Type: tea.KeyTab})
	updated = m.(App)
	if updated.tab != tabRank {
		t.Fatalf("tab = %v, want rank", updated.tab)
	}

	m, _ = updated.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	updated = m.(App)
	if updated.tab != tabMoney {
		t.Fatalf("tab = %v, want money", updated.tab)
	}

	// 焦点在字段间环绕 / focus wraps across the form
	m, _ = updated.Update(tea.KeyMsg{Type: tea.KeyUp})
	updated = m.(App)
	if updated.focus != len(updated.forms[tabMoney])-1 {
		t.Fatalf("focus = %d, want last field", updated.focus)
	}
	m, _ = updated.Update(tea.KeyMsg{Type: tea.KeyDown})
	updated = m.(App)
	if updated.focus != 0 {
		t.Fatalf("focus = %d, want 0", updated.focus)
	}
}

func TestAppUpdate_ApplyStatsRoundTrip(t *testing.T) {
	app, slotPath := newTestApp(t)
	m, _ := app.Update(app.openSlotCmd(slotPath)())
	updated := m.(App)
	updated.page = pageEditor
	updated.tab = tabMoney

	updated.inputs[tabMoney][0].SetValue("777777")
	updated.setFocus(len(updated.forms[tabMoney]) - 1) // Apply button

	m, cmd := updated.Update(tea.KeyMsg{Type: tea.KeyEnter})
	updated = m.(App)
	if !updated.busy || cmd == nil {
		t.Fatalf("apply should run asynchronously")
	}

	m, _ = updated.Update(cmd())
	updated = m.(App)
	if updated.busy {
		t.Fatalf("busy should clear after opDoneMsg")
	}
	if updated.lastError != "" {
		t.Fatalf("unexpected error: %q", updated.lastError)
	}

	snap, err := save.Parse(slotPath)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if snap.Money.OnlineBalance != 777777 {
		t.Fatalf("OnlineBalance = %d, want 777777", snap.Money.OnlineBalance)
	}
}

func TestAppUpdate_RejectedInputKeepsFile(t *testing.T) {
	app, slotPath := newTestApp(t)
	m, _ := app.Update(app.openSlotCmd(slotPath)())
	updated := m.(App)
	updated.page = pageEditor
	updated.tab = tabMoney

	updated.inputs[tabMoney][0].SetValue("not a number")
	updated.setFocus(len(updated.forms[tabMoney]) - 1)

	m, cmd := updated.Update(tea.KeyMsg{Type: tea.KeyEnter})
	updated = m.(App)
	if cmd != nil {
		t.Fatalf("rejected input must not start a write")
	}
	if updated.lastError == "" {
		t.Fatalf("expected a validation error")
	}

	snap, err := save.Parse(slotPath)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if snap.Money.OnlineBalance != 1200 {
		t.Fatalf("OnlineBalance = %d, file must be untouched", snap.Money.OnlineBalance)
	}
}

func TestAppUpdate_OpMessages(t *testing.T) {
	app, _ := newTestApp(t)
	app.busy = true

	m, _ := app.Update(opErrMsg{err: errors.New("boom")})
	updated := m.(App)
	if updated.busy || updated.lastError != "boom" {
		t.Fatalf("busy=%v lastError=%q", updated.busy, updated.lastError)
	}

	updated.busy = true
	m, _ = updated.Update(opDoneMsg{status: "done"})
	updated = m.(App)
	if updated.busy || updated.status != "done" || updated.lastError != "" {
		t.Fatalf("busy=%v status=%q err=%q", updated.busy, updated.status, updated.lastError)
	}
}

func TestAppUpdate_BackupRows(t *testing.T) {
	app, _ := newTestApp(t)
	m, _ := app.Update(backupsMsg{backups: map[string][]string{
		"stats":   {"20250409180500", "20250409180000"},
		"initial": {"initial"},
	}})
	updated := m.(App)
	if len(updated.backupRows) != 3 {
		t.Fatalf("backup rows = %d, want 3", len(updated.backupRows))
	}
	// feature 排序稳定 / features sort alphabetically
	if updated.backupRows[0].feature != "initial" || updated.backupRows[1].feature != "stats" {
		t.Fatalf("row order: %+v", updated.backupRows)
	}
}

func TestSplitIDs(t *testing.T) {
	got := splitIDs("ogkush, meth  cocaine,")
	if len(got) != 3 || got[0] != "ogkush" || got[2] != "cocaine" {
		t.Fatalf("splitIDs = %v", got)
	}
	if len(splitIDs("  ")) != 0 {
		t.Fatalf("blank input should yield no ids")
	}
}
