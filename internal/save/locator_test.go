package save

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
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

// newTestSlot 搭一个最小可解析的槽位 / builds a minimal parseable slot.
func newTestSlot(t *testing.T, root, steamID, slot string) string {
	t.Helper()
	slotPath := filepath.Join(root, steamID, slot)
	writeFile(t, filepath.Join(slotPath, "Game.json"), `{"OrganisationName": "Los Pollos", "GameVersion": "0.3.3f11"}`)
	writeFile(t, filepath.Join(slotPath, "Money.json"), `{"OnlineBalance": 1200, "Networth": 5000, "LifetimeEarnings": 9000, "WeeklyDepositSum": 300}`)
	writeFile(t, filepath.Join(slotPath, "Rank.json"), `{"CurrentRank": "Street", "Rank": 1, "Tier": 2}`)
	writeFile(t, filepath.Join(slotPath, "Metadata.json"), `{"CreationDate": {"Year": 2025, "Month": 4, "Day": 9, "Hour": 18, "Minute": 3, "Second": 41}}`)
	return slotPath
}

func TestLocatorSlots(t *testing.T) {
	root := t.TempDir()
	newTestSlot(t, root, "76561198000000001", "SaveGame_2")
	newTestSlot(t, root, "76561198000000001", "SaveGame_1")
	// 非槽位目录应被忽略 / non-slot folders are ignored
	writeFile(t, filepath.Join(root, "76561198000000001", "SaveGame_1_Backup", "marker"), "x")

	loc, err := NewLocator(root)
	if err != nil {
		t.Fatalf("NewLocator() error = %v", err)
	}
	slots, err := loc.Slots()
	if err != nil {
		t.Fatalf("Slots() error = %v", err)
	}
	if len(slots) != 2 {
		t.Fatalf("Slots() = %d slots, want 2", len(slots))
	}
	if slots[0].Name != "SaveGame_1" || slots[1].Name != "SaveGame_2" {
		t.Fatalf("Slots() order = %q, %q", slots[0].Name, slots[1].Name)
	}
	if slots[0].Organisation != "Los Pollos" {
		t.Fatalf("Organisation = %q", slots[0].Organisation)
	}
	if slots[0].GameVersion != "0.3.3f11" || slots[0].Networth != 5000 {
		t.Fatalf("summary = %q / %d", slots[0].GameVersion, slots[0].Networth)
	}
	if slots[0].Created != "2025-04-09 18:03:41" {
		t.Fatalf("Created = %q", slots[0].Created)
	}
}

func TestLocatorSlots_NoSteamIDFolder(t *testing.T) {
	loc, err := NewLocator(t.TempDir())
	if err != nil {
		t.Fatalf("NewLocator() error = %v", err)
	}
	if _, err := loc.Slots(); !errors.Is(err, ErrNoSaves) {
		t.Fatalf("Slots() error = %v, want ErrNoSaves", err)
	}
}

func TestLocatorNextSlotName(t *testing.T) {
	root := t.TempDir()
	newTestSlot(t, root, "76561198000000001", "SaveGame_1")
	newTestSlot(t, root, "76561198000000001", "SaveGame_3")

	loc, err := NewLocator(root)
	if err != nil {
		t.Fatalf("NewLocator() error = %v", err)
	}
	name, err := loc.NextSlotName()
	if err != nil {
		t.Fatalf("NextSlotName() error = %v", err)
	}
	if name != "SaveGame_2" {
		t.Fatalf("NextSlotName() = %q, want SaveGame_2", name)
	}
}

func TestLocatorNextSlotName_Full(t *testing.T) {
	root := t.TempDir()
	for _, slot := range []string{"SaveGame_1", "SaveGame_2", "SaveGame_3", "SaveGame_4", "SaveGame_5"} {
		newTestSlot(t, root, "76561198000000001", slot)
	}

	loc, err := NewLocator(root)
	if err != nil {
		t.Fatalf("NewLocator() error = %v", err)
	}
	name, err := loc.NextSlotName()
	if err != nil {
		t.Fatalf("NextSlotName() error = %v", err)
	}
	if name != "" {
		t.Fatalf("NextSlotName() = %q, want empty when all slots taken", name)
	}
}
