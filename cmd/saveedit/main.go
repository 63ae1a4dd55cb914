package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"saveedit/internal/config"
	"saveedit/internal/download"
	"saveedit/internal/editor"
	"saveedit/internal/i18n"
	"saveedit/internal/save"
	"saveedit/internal/tui"
)

func main() {
	var (
		configPath string
		savesRoot  string
		cliMode    bool
		initConfig bool
	)
	flag.StringVar(&configPath, "config", "", "Path to config JSON/JSONC")
	flag.StringVar(&savesRoot, "saves", "", "Saves root override")
	flag.BoolVar(&cliMode, "cli", false, "Run the line-oriented interface instead of the TUI")
	flag.BoolVar(&initConfig, "init-config", false, "Write a project config scaffold and exit")
	flag.Parse()

	if initConfig {
		if err := config.InitProjectConfigScaffold(); err != nil {
			fmt.Fprintf(os.Stderr, "init config failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("wrote .saveedit/config.json")
		return
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config failed: %v\n", err)
		os.Exit(1)
	}
	i18n.Init(cfg.UI.Locale)

	root := savesRoot
	if root == "" {
		root = cfg.Saves.Root
	}
	locator, err := save.NewLocator(root)
	if err != nil {
		fmt.Fprintf(os.Stderr, "resolve saves root failed: %v\n", err)
		os.Exit(1)
	}

	downloads := download.NewClient(download.Config{
		BaseURL:       cfg.Download.BaseURL,
		TimeoutSec:    cfg.Download.TimeoutSec,
		MaxSizeMB:     cfg.Download.MaxSizeMB,
		SkipTLSVerify: cfg.Download.SkipTLSVerify,
	})

	// 游戏目录找不到不致命，只影响模组安装
	// A missing game dir is not fatal, it only blocks mod installs.
	gameDir, err := editor.FindGameDir(cfg.Game.Dir)
	if err != nil && !errors.Is(err, editor.ErrGameDirNotFound) {
		fmt.Fprintf(os.Stderr, "locate game dir: %v\n", err)
	}

	if cliMode {
		historyPath := ""
		if home, err := os.UserHomeDir(); err == nil {
			historyPath = filepath.Join(home, ".saveedit", "cli.history")
		}
		input, inputErr := newLineInput(historyPath)
		if inputErr != nil {
			fmt.Fprintf(os.Stderr, "line editor unavailable, fallback to basic input: %v\n", inputErr)
		}
		defer input.Close()

		if err := runCLI(cfg, locator, downloads, gameDir, input, os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "cli failed: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := tui.Run(locator, downloads, gameDir); err != nil {
		fmt.Fprintf(os.Stderr, "tui failed: %v\n", err)
		os.Exit(1)
	}
}
