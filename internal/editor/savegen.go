package editor

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"saveedit/internal/download"
	"saveedit/internal/gamefile"
	"saveedit/internal/save"
)

// ErrSlotsFull 表示五个槽位已全部占用
// ErrSlotsFull means all five save slots are taken.
var ErrSlotsFull = errors.New("all save slots are in use")

// ErrModsDirMissing 表示游戏目录里没有 Mods 文件夹（未装 MelonLoader）
// ErrModsDirMissing means the game has no Mods folder (MelonLoader absent).
var ErrModsDirMissing = errors.New("Mods folder not found; install MelonLoader and run the game once")

// ErrModExists 表示模组 DLL 已存在且未允许覆盖
// ErrModExists means the mod DLL already exists and overwrite was not allowed.
var ErrModExists = errors.New("mod DLL already installed")

const modDLLName = "AchievementUnlocker.dll"

// GenerateNewSave 在下一个空槽位展开下载的存档模板并写入组织名，
// 返回新槽位名。
// GenerateNewSave unpacks the downloaded save template into the next free
// slot and stamps the organisation name. It returns the new slot name.
func GenerateNewSave(ctx context.Context, locator *save.Locator, client *download.Client, orgName string) (string, error) {
	if err := OrganisationName(orgName); err != nil {
		return "", err
	}
	slotName, err := locator.NextSlotName()
	if err != nil {
		return "", err
	}
	if slotName == "" {
		return "", ErrSlotsFull
	}
	playerDir, err := locator.PlayerDir()
	if err != nil {
		return "", err
	}

	slotPath := filepath.Join(playerDir, slotName)
	if err := client.ExtractTo(ctx, "SaveGame_1.zip", slotPath); err != nil {
		_ = os.RemoveAll(slotPath)
		return "", fmt.Errorf("unpack save template: %w", err)
	}

	gamePath := filepath.Join(slotPath, "Game.json")
	game, err := gamefile.LoadMap(gamePath)
	if err != nil {
		return "", err
	}
	if len(game) == 0 {
		_ = os.RemoveAll(slotPath)
		return "", fmt.Errorf("save template has no Game.json")
	}
	game["OrganisationName"] = orgName
	if err := gamefile.SaveMap(gamePath, game); err != nil {
		return "", err
	}
	return slotName, nil
}

// InstallMod 把成就解锁模组 DLL 下载到游戏的 Mods 目录。要求 Mods 目录已由
// 模组加载器创建；DLL 已存在时需要显式允许覆盖。
// InstallMod downloads the achievement unlocker DLL into the game's Mods
// folder. The folder must already exist (the mod loader creates it), and an
// existing DLL is only replaced when overwrite is set.
func InstallMod(ctx context.Context, client *download.Client, gameDir string, overwrite bool) (string, error) {
	modsDir := filepath.Join(gameDir, "Mods")
	if info, err := os.Stat(modsDir); err != nil || !info.IsDir() {
		return "", ErrModsDirMissing
	}

	dest := filepath.Join(modsDir, modDLLName)
	if _, err := os.Stat(dest); err == nil && !overwrite {
		return dest, ErrModExists
	}
	if err := client.FetchFile(ctx, modDLLName, dest); err != nil {
		return "", fmt.Errorf("install mod: %w", err)
	}
	return dest, nil
}
