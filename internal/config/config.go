package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

type SavesConfig struct {
	// Root 存档根目录；为空时使用游戏默认位置
	// Root is the saves root; empty means the game's default location.
	Root string `json:"root"`
}

type GameConfig struct {
	// Dir 游戏安装目录；为空时通过 Steam 库扫描定位
	// Dir is the game installation; empty falls back to the Steam library scan.
	Dir string `json:"dir"`
}

type DownloadConfig struct {
	BaseURL       string `json:"base_url"`
	TimeoutSec    int    `json:"timeout_sec"`
	MaxSizeMB     int    `json:"max_size_mb"`
	SkipTLSVerify bool   `json:"skip_tls_verify"`
}

type UIConfig struct {
	// Locale 界面语言（en / zh-CN）/ UI language (en / zh-CN).
	Locale string `json:"locale"`
	// ConfirmWrites 在 -cli 模式下写盘前要求确认
	// ConfirmWrites asks before each write in -cli mode.
	ConfirmWrites bool `json:"confirm_writes"`
}

type Config struct {
	Saves    SavesConfig    `json:"saves"`
	Game     GameConfig     `json:"game"`
	Download DownloadConfig `json:"download"`
	UI       UIConfig       `json:"ui"`
}

type fileUIConfig struct {
	Locale        *string `json:"locale"`
	ConfirmWrites *bool   `json:"confirm_writes"`
}

type fileDownloadConfig struct {
	BaseURL       *string `json:"base_url"`
	TimeoutSec    *int    `json:"timeout_sec"`
	MaxSizeMB     *int    `json:"max_size_mb"`
	SkipTLSVerify *bool   `json:"skip_tls_verify"`
}

type fileConfig struct {
	Saves    *SavesConfig        `json:"saves"`
	Game     *GameConfig         `json:"game"`
	Download *fileDownloadConfig `json:"download"`
	UI       *fileUIConfig       `json:"ui"`
}

func Default() Config {
	return Config{
		Download: DownloadConfig{
			BaseURL:    DefaultDownloadBaseURL,
			TimeoutSec: DefaultDownloadTimeoutSec,
			MaxSizeMB:  DefaultDownloadMaxSizeMB,
		},
		UI: UIConfig{
			Locale:        "en",
			ConfirmWrites: true,
		},
	}
}

// Load 按 默认值 → 全局配置 → 项目配置 → 环境变量 的顺序合并配置。
// path 非空时跳过项目配置查找，直接用指定文件。
// Load merges defaults, the global config, the project config and environment
// overrides, in that order. A non-empty path replaces the project lookup.
func Load(path string) (Config, error) {
	cfg := Default()

	for _, globalPath := range globalConfigPaths() {
		if err := mergeFromFile(&cfg, globalPath); err != nil {
			return Config{}, err
		}
	}

	resolvedPath := strings.TrimSpace(path)
	if envPath := strings.TrimSpace(os.Getenv("SAVEEDIT_CONFIG_PATH")); envPath != "" {
		resolvedPath = envPath
	}
	if resolvedPath == "" {
		resolvedPath = findProjectConfigPath()
	}
	if err := mergeFromFile(&cfg, resolvedPath); err != nil {
		return Config{}, err
	}

	if err := normalize(&cfg); err != nil {
		return Config{}, err
	}
	return applyEnv(cfg)
}

func globalConfigPaths() []string {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil
	}
	return []string{filepath.Join(home, ".saveedit", "config.json")}
}

func findProjectConfigPath() string {
	candidates := []string{
		"saveedit.config.json",
		".saveedit/config.json",
	}
	for _, c := range candidates {
		if _, err := os.Stat(c); err == nil {
			return c
		}
	}
	return ""
}

func mergeFromFile(cfg *Config, path string) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil
	}

	resolved, err := expandPath(path)
	if err != nil {
		return fmt.Errorf("expand config path %q: %w", path, err)
	}

	data, err := os.ReadFile(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read config %q: %w", resolved, err)
	}

	cleaned := stripJSONComments(data)
	var fileCfg fileConfig
	if err := json.Unmarshal(cleaned, &fileCfg); err != nil {
		return fmt.Errorf("parse config %q: %w", resolved, err)
	}
	applyFileConfig(cfg, fileCfg)
	return nil
}

func applyFileConfig(cfg *Config, fc fileConfig) {
	if fc.Saves != nil {
		if strings.TrimSpace(fc.Saves.Root) != "" {
			cfg.Saves.Root = fc.Saves.Root
		}
	}
	if fc.Game != nil {
		if strings.TrimSpace(fc.Game.Dir) != "" {
			cfg.Game.Dir = fc.Game.Dir
		}
	}
	if fc.Download != nil {
		if fc.Download.BaseURL != nil && strings.TrimSpace(*fc.Download.BaseURL) != "" {
			cfg.Download.BaseURL = *fc.Download.BaseURL
		}
		if fc.Download.TimeoutSec != nil && *fc.Download.TimeoutSec > 0 {
			cfg.Download.TimeoutSec = *fc.Download.TimeoutSec
		}
		if fc.Download.MaxSizeMB != nil && *fc.Download.MaxSizeMB > 0 {
			cfg.Download.MaxSizeMB = *fc.Download.MaxSizeMB
		}
		if fc.Download.SkipTLSVerify != nil {
			cfg.Download.SkipTLSVerify = *fc.Download.SkipTLSVerify
		}
	}
	if fc.UI != nil {
		if fc.UI.Locale != nil && strings.TrimSpace(*fc.UI.Locale) != "" {
			cfg.UI.Locale = *fc.UI.Locale
		}
		if fc.UI.ConfirmWrites != nil {
			cfg.UI.ConfirmWrites = *fc.UI.ConfirmWrites
		}
	}
}

func normalize(cfg *Config) error {
	if strings.TrimSpace(cfg.Download.BaseURL) == "" {
		cfg.Download.BaseURL = DefaultDownloadBaseURL
	}
	if cfg.Download.TimeoutSec <= 0 {
		cfg.Download.TimeoutSec = DefaultDownloadTimeoutSec
	}
	if cfg.Download.MaxSizeMB <= 0 {
		cfg.Download.MaxSizeMB = DefaultDownloadMaxSizeMB
	}
	if strings.TrimSpace(cfg.UI.Locale) == "" {
		cfg.UI.Locale = "en"
	}

	savesRoot, err := expandPath(cfg.Saves.Root)
	if err != nil {
		return err
	}
	cfg.Saves.Root = savesRoot

	gameDir, err := expandPath(cfg.Game.Dir)
	if err != nil {
		return err
	}
	cfg.Game.Dir = gameDir
	return nil
}

func applyEnv(cfg Config) (Config, error) {
	if v := strings.TrimSpace(os.Getenv("SAVEEDIT_SAVES_ROOT")); v != "" {
		cfg.Saves.Root = v
	}
	if v := strings.TrimSpace(os.Getenv("SAVEEDIT_GAME_DIR")); v != "" {
		cfg.Game.Dir = v
	}
	if v := strings.TrimSpace(os.Getenv("SAVEEDIT_BASE_URL")); v != "" {
		cfg.Download.BaseURL = v
	}
	if v := strings.TrimSpace(os.Getenv("SAVEEDIT_LANG")); v != "" {
		cfg.UI.Locale = v
	}
	if v := strings.TrimSpace(os.Getenv("SAVEEDIT_DOWNLOAD_TIMEOUT_SEC")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return Config{}, fmt.Errorf("invalid SAVEEDIT_DOWNLOAD_TIMEOUT_SEC: %q", v)
		}
		cfg.Download.TimeoutSec = n
	}

	return cfg, normalize(&cfg)
}

func expandPath(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", nil
	}
	if strings.HasPrefix(path, "~/") || path == "~" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		if path == "~" {
			path = home
		} else {
			path = filepath.Join(home, strings.TrimPrefix(path, "~/"))
		}
	}
	return filepath.Abs(path)
}

func stripJSONComments(data []byte) []byte {
	const (
		stateNormal = iota
		stateString
		stateLineComment
		stateBlockComment
	)

	state := stateNormal
	escaped := false
	out := bytes.Buffer{}

	for i := 0; i < len(data); i++ {
		c := data[i]
		next := byte(0)
		if i+1 < len(data) {
			next = data[i+1]
		}

		switch state {
		case stateNormal:
			if c == '"' {
				state = stateString
				out.WriteByte(c)
				continue
			}
			if c == '/' && next == '/' {
				state = stateLineComment
				i++
				continue
			}
			if c == '/' && next == '*' {
				state = stateBlockComment
				i++
				continue
			}
			out.WriteByte(c)
		case stateString:
			out.WriteByte(c)
			if escaped {
				escaped = false
				continue
			}
			if c == '\\' {
				escaped = true
				continue
			}
			if c == '"' {
				state = stateNormal
			}
		case stateLineComment:
			if c == '\n' {
				state = stateNormal
				out.WriteByte(c)
			}
		case stateBlockComment:
			if c == '*' && next == '/' {
				state = stateNormal
				i++
			}
		}
	}

	return out.Bytes()
}
