package save

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"saveedit/internal/gamefile"
)

var (
	steamIDPattern = regexp.MustCompile(`^[0-9]{17}$`)
	slotPattern    = regexp.MustCompile(`^SaveGame_[1-9]$`)
)

// ErrNoSaves 表示未找到任何存档目录
// ErrNoSaves means no save directory could be located.
var ErrNoSaves = errors.New("no save directory found")

// maxSlots 游戏的槽位上限 / The game caps saves at five slots.
const maxSlots = 5

// Locator 枚举存档根目录下的槽位
// Locator enumerates save slots under a saves root.
type Locator struct {
	root string
}

// DefaultRoot 返回游戏默认的存档根目录
// DefaultRoot returns the game's default saves root.
func DefaultRoot() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, "AppData", "LocalLow", "TVGS", "Schedule I", "saves"), nil
}

// NewLocator 创建 Locator；root 为空时使用默认根目录
// NewLocator creates a Locator; an empty root falls back to the default.
func NewLocator(root string) (*Locator, error) {
	root = strings.TrimSpace(root)
	if root == "" {
		def, err := DefaultRoot()
		if err != nil {
			return nil, err
		}
		root = def
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("abs saves root: %w", err)
	}
	return &Locator{root: abs}, nil
}

func (l *Locator) Root() string { return l.root }

// PlayerDir 返回第一个 17 位 SteamID 目录
// PlayerDir returns the first 17-digit SteamID folder under the root.
func (l *Locator) PlayerDir() (string, error) {
	entries, err := os.ReadDir(l.root)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", ErrNoSaves
		}
		return "", fmt.Errorf("read saves root: %w", err)
	}
	for _, entry := range entries {
		if entry.IsDir() && steamIDPattern.MatchString(entry.Name()) {
			return filepath.Join(l.root, entry.Name()), nil
		}
	}
	return "", ErrNoSaves
}

// Slots 枚举 SaveGame_[1-9] 槽位，附组织名和修改时间
// Slots enumerates SaveGame_[1-9] folders with organisation name and mod time.
func (l *Locator) Slots() ([]Slot, error) {
	playerDir, err := l.PlayerDir()
	if err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(playerDir)
	if err != nil {
		return nil, fmt.Errorf("read player dir: %w", err)
	}

	var slots []Slot
	for _, entry := range entries {
		if !entry.IsDir() || !slotPattern.MatchString(entry.Name()) {
			continue
		}
		path := filepath.Join(playerDir, entry.Name())
		slot := slotSummary(entry.Name(), path)
		if info, err := entry.Info(); err == nil {
			slot.ModTime = info.ModTime()
		}
		slots = append(slots, slot)
	}
	sort.Slice(slots, func(i, j int) bool { return slots[i].Name < slots[j].Name })
	return slots, nil
}

// NextSlotName 返回 SaveGame_1..5 中第一个空位；全满返回 ""
// NextSlotName returns the first free SaveGame_1..5 name, or "" when all five
// slots are taken.
func (l *Locator) NextSlotName() (string, error) {
	playerDir, err := l.PlayerDir()
	if err != nil {
		return "", err
	}
	entries, err := os.ReadDir(playerDir)
	if err != nil {
		return "", fmt.Errorf("read player dir: %w", err)
	}

	taken := map[int]bool{}
	for _, entry := range entries {
		if !entry.IsDir() || !slotPattern.MatchString(entry.Name()) {
			continue
		}
		n, err := strconv.Atoi(strings.TrimPrefix(entry.Name(), "SaveGame_"))
		if err != nil || n > maxSlots {
			continue
		}
		taken[n] = true
	}
	for i := 1; i <= maxSlots; i++ {
		if !taken[i] {
			return fmt.Sprintf("SaveGame_%d", i), nil
		}
	}
	return "", nil
}

// slotSummary 读取列表页需要的摘要字段；单个文件损坏不阻止列出
// slotSummary reads the slot-list summary fields; a broken file does not keep
// the slot out of the list.
func slotSummary(name, slotPath string) Slot {
	slot := Slot{
		Name:         name,
		Path:         slotPath,
		Organisation: "Unknown Organization",
		GameVersion:  "Unknown",
		Created:      "Unknown",
	}
	if game, err := gamefile.LoadMap(filepath.Join(slotPath, "Game.json")); err == nil {
		slot.Organisation = gamefile.Str(game, "OrganisationName", slot.Organisation)
		slot.GameVersion = gamefile.Str(game, "GameVersion", slot.GameVersion)
	}
	if money, err := gamefile.LoadMap(filepath.Join(slotPath, "Money.json")); err == nil {
		slot.Networth = gamefile.Int(money, "Networth", 0)
	}
	if meta, err := gamefile.LoadMap(filepath.Join(slotPath, "Metadata.json")); err == nil {
		slot.Created = formatCreationDate(meta)
	}
	return slot
}
