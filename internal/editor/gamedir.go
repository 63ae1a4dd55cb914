package editor

import (
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// ErrGameDirNotFound 表示找不到游戏安装目录
// ErrGameDirNotFound means the game installation could not be located.
var ErrGameDirNotFound = errors.New("game installation directory not found")

var vdfPathPattern = regexp.MustCompile(`"path"\s+"([^"]+)"`)

// FindGameDir 定位游戏安装目录：优先使用配置值，否则扫描各 Steam 库的
// libraryfolders.vdf。
// FindGameDir locates the game installation: a configured path wins, else the
// Steam libraries listed in libraryfolders.vdf are scanned.
func FindGameDir(configured string) (string, error) {
	configured = strings.TrimSpace(configured)
	if configured != "" {
		if info, err := os.Stat(configured); err == nil && info.IsDir() {
			return configured, nil
		}
		return "", ErrGameDirNotFound
	}

	for _, steamRoot := range steamRoots() {
		vdf := filepath.Join(steamRoot, "steamapps", "libraryfolders.vdf")
		if dir := gameDirFromVDF(vdf); dir != "" {
			return dir, nil
		}
	}
	return "", ErrGameDirNotFound
}

func steamRoots() []string {
	var roots []string
	if home, err := os.UserHomeDir(); err == nil {
		roots = append(roots,
			filepath.Join(home, ".steam", "steam"),
			filepath.Join(home, ".local", "share", "Steam"),
		)
	}
	roots = append(roots,
		`C:\Program Files (x86)\Steam`,
		`C:\Program Files\Steam`,
	)
	return roots
}

// gameDirFromVDF 从 libraryfolders.vdf 的 "path" 条目中找游戏目录
// gameDirFromVDF checks every "path" entry of a libraryfolders.vdf for the
// game folder.
func gameDirFromVDF(vdfPath string) string {
	data, err := os.ReadFile(vdfPath)
	if err != nil {
		return ""
	}
	for _, match := range vdfPathPattern.FindAllStringSubmatch(string(data), -1) {
		library := strings.ReplaceAll(match[1], `\\`, `\`)
		gameDir := filepath.Join(library, "steamapps", "common", "Schedule I")
		if info, err := os.Stat(gameDir); err == nil && info.IsDir() {
			return gameDir
		}
	}
	return ""
}
