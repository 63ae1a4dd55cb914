package save

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"saveedit/internal/gamefile"
)

// Parse 读取一个槽位的全部可编辑状态。核心文件损坏时返回 *gamefile.ParseError，
// 上层应拒绝进入编辑；目录内的单个坏条目跳过（与游戏行为一致）。
// Parse reads a slot's editable state. A malformed core file surfaces as
// *gamefile.ParseError and the caller must refuse to edit; broken entries
// inside collection folders are skipped, as the game does.
func Parse(slotPath string) (*Snapshot, error) {
	if _, err := os.Stat(slotPath); err != nil {
		return nil, fmt.Errorf("stat slot: %w", err)
	}

	game, err := gamefile.LoadMap(filepath.Join(slotPath, "Game.json"))
	if err != nil {
		return nil, err
	}
	money, err := gamefile.LoadMap(filepath.Join(slotPath, "Money.json"))
	if err != nil {
		return nil, err
	}
	rank, err := gamefile.LoadMap(filepath.Join(slotPath, "Rank.json"))
	if err != nil {
		return nil, err
	}
	meta, err := gamefile.LoadMap(filepath.Join(slotPath, "Metadata.json"))
	if err != nil {
		return nil, err
	}

	snap := &Snapshot{
		SlotPath:     slotPath,
		Organisation: gamefile.Str(game, "OrganisationName", "Unknown"),
		GameVersion:  gamefile.Str(game, "GameVersion", "Unknown"),
		CreationDate: formatCreationDate(meta),
		Money: MoneyInfo{
			OnlineBalance:    gamefile.Int(money, "OnlineBalance", 0),
			Networth:         gamefile.Int(money, "Networth", 0),
			LifetimeEarnings: gamefile.Int(money, "LifetimeEarnings", 0),
			WeeklyDepositSum: gamefile.Int(money, "WeeklyDepositSum", 0),
		},
		Rank: RankInfo{
			CurrentRank: gamefile.Str(rank, "CurrentRank", "Unknown"),
			Rank:        gamefile.Int(rank, "Rank", 0),
			Tier:        gamefile.Int(rank, "Tier", 0),
		},
	}

	snap.Properties, snap.PropertyTypes = parseProperties(slotPath)
	snap.NPCs = parseNPCs(slotPath)
	snap.Variables = parseVariables(slotPath)
	return snap, nil
}

func formatCreationDate(meta map[string]any) string {
	created, ok := meta["CreationDate"].(map[string]any)
	if !ok || len(created) == 0 {
		return "Unknown"
	}
	return fmt.Sprintf("%d-%02d-%02d %02d:%02d:%02d",
		gamefile.Int(created, "Year", 0),
		gamefile.Int(created, "Month", 0),
		gamefile.Int(created, "Day", 0),
		gamefile.Int(created, "Hour", 0),
		gamefile.Int(created, "Minute", 0),
		gamefile.Int(created, "Second", 0),
	)
}

// parseProperties 遍历 Properties/<type>/Objects/**/Data.json，展开
// Contents.Items 中内嵌 JSON 字符串的物品条目。
// parseProperties walks Properties/<type>/Objects/**/Data.json and expands
// the JSON-encoded item strings inside Contents.Items.
func parseProperties(slotPath string) ([]PropertyItem, []string) {
	propertiesDir := filepath.Join(slotPath, "Properties")
	entries, err := os.ReadDir(propertiesDir)
	if err != nil {
		return nil, nil
	}

	var items []PropertyItem
	var types []string
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		types = append(types, entry.Name())
		objectsDir := filepath.Join(propertiesDir, entry.Name(), "Objects")
		_ = filepath.WalkDir(objectsDir, func(path string, d fs.DirEntry, err error) error {
			if err != nil || d.IsDir() || d.Name() != "Data.json" {
				return nil
			}
			items = append(items, parseDataFile(entry.Name(), path)...)
			return nil
		})
	}
	sort.Strings(types)
	return items, types
}

func parseDataFile(propertyType, path string) []PropertyItem {
	data, err := gamefile.LoadMap(path)
	if err != nil {
		return nil
	}
	contents, ok := data["Contents"].(map[string]any)
	if !ok {
		return nil
	}
	raw, ok := contents["Items"].([]any)
	if !ok {
		return nil
	}

	var items []PropertyItem
	for i, encoded := range raw {
		s, ok := encoded.(string)
		if !ok {
			continue
		}
		item := map[string]any{}
		if err := json.Unmarshal([]byte(s), &item); err != nil {
			continue
		}
		items = append(items, PropertyItem{
			Property:  propertyType,
			File:      path,
			Index:     i,
			DataType:  gamefile.Str(item, "DataType", ""),
			ID:        gamefile.Str(item, "ID", ""),
			Quantity:  gamefile.Int(item, "Quantity", 0),
			Quality:   gamefile.Str(item, "Quality", ""),
			Packaging: gamefile.Str(item, "PackagingID", ""),
		})
	}
	return items
}

func parseNPCs(slotPath string) []NPCRecord {
	npcsDir := filepath.Join(slotPath, "NPCs")
	entries, err := os.ReadDir(npcsDir)
	if err != nil {
		return nil
	}

	var records []NPCRecord
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		npc, err := gamefile.LoadMap(filepath.Join(npcsDir, entry.Name(), "NPC.json"))
		if err != nil {
			continue
		}
		rec := NPCRecord{
			Name:     entry.Name(),
			ID:       gamefile.Str(npc, "ID", ""),
			DataType: gamefile.Str(npc, "DataType", ""),
		}
		if v, ok := npc["Recruited"].(bool); ok {
			rec.HasRecruited = true
			rec.Recruited = v
		}
		if rel, err := gamefile.LoadMap(filepath.Join(npcsDir, entry.Name(), "Relationship.json")); err == nil {
			rec.RelationDelta = gamefile.Int(rel, "RelationDelta", 0)
			rec.Unlocked = gamefile.Bool(rel, "Unlocked", false)
		}
		records = append(records, rec)
	}
	return records
}

// parseVariables 覆盖根 Variables/ 与 Players/Player_0..9/Variables/
// parseVariables covers the root Variables/ plus Players/Player_0..9/Variables/.
func parseVariables(slotPath string) []Variable {
	var vars []Variable
	for _, dir := range variableDirs(slotPath) {
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, entry := range entries {
			if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
				continue
			}
			path := filepath.Join(dir, entry.Name())
			m, err := gamefile.LoadMap(path)
			if err != nil {
				continue
			}
			value, ok := m["Value"].(string)
			if !ok {
				continue
			}
			vars = append(vars, Variable{
				Name:  strings.TrimSuffix(entry.Name(), ".json"),
				File:  path,
				Value: value,
			})
		}
	}
	return vars
}

func variableDirs(slotPath string) []string {
	dirs := []string{filepath.Join(slotPath, "Variables")}
	for i := 0; i < 10; i++ {
		dirs = append(dirs, filepath.Join(slotPath, "Players", fmt.Sprintf("Player_%d", i), "Variables"))
	}
	var existing []string
	for _, dir := range dirs {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			existing = append(existing, dir)
		}
	}
	return existing
}
