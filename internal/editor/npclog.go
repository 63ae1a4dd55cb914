package editor

import (
	"regexp"
	"strings"

	"saveedit/internal/save"
)

// 控制台解锁模组打印的 NPC 行 / the NPC line printed by the console unlocker mod
var npcLinePattern = regexp.MustCompile(`\[ConsoleUnlockerMod\] 👤 NPC Found: (.+?) \| ID: (.+)`)

// ParseNPCLog 从粘贴的模组日志中提取 (名字, ID) 对，按出现顺序去重
// ParseNPCLog extracts (name, id) pairs from a pasted mod log, deduplicated in
// order of appearance.
func ParseNPCLog(logText string) []save.NPCEntry {
	matches := npcLinePattern.FindAllStringSubmatch(logText, -1)
	seen := map[string]bool{}
	var entries []save.NPCEntry
	for _, match := range matches {
		name := strings.TrimSpace(match[1])
		id := strings.TrimSpace(match[2])
		if name == "" || id == "" || seen[name] {
			continue
		}
		seen[name] = true
		entries = append(entries, save.NPCEntry{Name: name, ID: id})
	}
	return entries
}
