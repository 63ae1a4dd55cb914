package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"saveedit/internal/config"
	"saveedit/internal/download"
	"saveedit/internal/editor"
	"saveedit/internal/i18n"
	"saveedit/internal/save"

	"github.com/chzyer/readline"
)

var cliCommands = []string{
	"slots                                        list save slots",
	"open <SaveGame_N>                            open a slot for editing",
	"show                                         print the open slot's summary",
	"money <online> <networth> <lifetime> <weekly>",
	"rank <name> <rank> <tier>",
	"org <name...>                                rename the organisation",
	"props <type> <quantity> <quality> <packaging> <filter>",
	"quests                                       complete all quests",
	"vars                                         maximize all variables",
	"unlockrank                                   push rank progression to max",
	"own <Properties|Businesses>                  force ownership",
	"npcs <unlock|recruit>                        unlock relationships / recruit dealers",
	"npclog <file>                                import NPCs from a player.log",
	"products <discover|remove> <ids...>",
	"generate <count> <idlen> <price> [listed]    generate random products",
	"resetproducts                                delete generated products",
	"backups                                      list feature backups",
	"restore <feature> [stamp]                    restore one feature",
	"restoreall                                   replay the initial backup",
	"purge                                        delete the slot's backups",
	"newsave <org...>                             generate a fresh save",
	"installmod [overwrite]                       install the achievement mod",
	"help                                         show this list",
	"exit                                         quit",
}

// cli 是命令行模式的会话状态 / cli holds the command-line mode state.
type cli struct {
	cfg       config.Config
	locator   *save.Locator
	downloads *download.Client
	gameDir   string
	input     lineInput
	out       io.Writer
	locale    *i18n.I18n

	session *editor.Session
}

func runCLI(cfg config.Config, locator *save.Locator, downloads *download.Client, gameDir string, input lineInput, out io.Writer) error {
	c := &cli{
		cfg:       cfg,
		locator:   locator,
		downloads: downloads,
		gameDir:   gameDir,
		input:     input,
		out:       out,
		locale:    i18n.Global(),
	}

	fmt.Fprintln(out, c.locale.T("startup.welcome", locator.Root()))
	fmt.Fprintln(out, c.locale.T("startup.cli"))
	c.printCommands()

	for {
		line, err := input.ReadLine("> ")
		if err != nil {
			switch {
			case errors.Is(err, readline.ErrInterrupt):
				fmt.Fprintln(out)
				continue
			case errors.Is(err, io.EOF):
				return nil
			default:
				return fmt.Errorf("read input: %w", err)
			}
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if c.handle(line) {
			return nil
		}
	}
}

func (c *cli) printCommands() {
	fmt.Fprintln(c.out, "commands:")
	for _, cmd := range cliCommands {
		fmt.Fprintf(c.out, "  %s\n", cmd)
	}
}

func (c *cli) printErr(err error) {
	fmt.Fprintf(c.out, "error: %v\n", err)
}

// confirm 在写盘前按配置要求确认 / confirm gates writes when configured.
func (c *cli) confirm() bool {
	if !c.cfg.UI.ConfirmWrites {
		return true
	}
	line, err := c.input.ReadLine(c.locale.T("confirm.write") + " ")
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	if answer == "y" || answer == "yes" {
		return true
	}
	fmt.Fprintln(c.out, c.locale.T("confirm.cancelled"))
	return false
}

func (c *cli) requireSession() bool {
	if c.session == nil {
		fmt.Fprintln(c.out, "no slot open, use: open <SaveGame_N>")
		return false
	}
	return true
}

// handle 执行一条命令；返回 true 表示退出
// handle runs one command; true means quit.
func (c *cli) handle(line string) bool {
	fields := strings.Fields(line)
	cmd, args := fields[0], fields[1:]

	switch cmd {
	case "exit", "quit":
		return true
	case "help":
		c.printCommands()
	case "slots":
		c.cmdSlots()
	case "open":
		c.cmdOpen(args)
	case "show":
		c.cmdShow()
	case "money":
		c.cmdMoney(args)
	case "rank":
		c.cmdRank(args)
	case "org":
		c.cmdOrg(args)
	case "props":
		c.cmdProps(args)
	case "quests":
		c.cmdQuests()
	case "vars":
		c.cmdVars()
	case "unlockrank":
		c.cmdUnlockRank()
	case "own":
		c.cmdOwn(args)
	case "npcs":
		c.cmdNPCs(args)
	case "npclog":
		c.cmdNPCLog(args)
	case "products":
		c.cmdProducts(args)
	case "generate":
		c.cmdGenerate(args)
	case "resetproducts":
		c.cmdResetProducts()
	case "backups":
		c.cmdBackups()
	case "restore":
		c.cmdRestore(args)
	case "restoreall":
		c.cmdRestoreAll()
	case "purge":
		c.cmdPurge()
	case "newsave":
		c.cmdNewSave(args)
	case "installmod":
		c.cmdInstallMod(args)
	default:
		fmt.Fprintf(c.out, "unknown command %q, try help\n", cmd)
	}
	return false
}

func (c *cli) cmdSlots() {
	slots, err := c.locator.Slots()
	if err != nil {
		c.printErr(err)
		return
	}
	if len(slots) == 0 {
		fmt.Fprintln(c.out, c.locale.T("slots.none"))
		return
	}
	for _, slot := range slots {
		fmt.Fprintf(c.out, "  %-12s %-24s %-10s %12d  %s\n",
			slot.Name, slot.Organisation, slot.GameVersion, slot.Networth, slot.Created)
	}
}

func (c *cli) cmdOpen(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(c.out, "usage: open <SaveGame_N>")
		return
	}
	slots, err := c.locator.Slots()
	if err != nil {
		c.printErr(err)
		return
	}
	for _, slot := range slots {
		if slot.Name == args[0] {
			session, err := editor.NewSession(slot.Path, c.downloads)
			if err != nil {
				c.printErr(err)
				return
			}
			c.session = session
			fmt.Fprintf(c.out, "opened %s (%s)\n", slot.Name, slot.Organisation)
			return
		}
	}
	fmt.Fprintf(c.out, "no such slot %q\n", args[0])
}

func (c *cli) cmdShow() {
	if !c.requireSession() {
		return
	}
	snap, err := c.session.Reload()
	if err != nil {
		c.printErr(err)
		return
	}
	t := c.locale.T
	fmt.Fprintf(c.out, "%s: %s\n", t("summary.organisation"), snap.Organisation)
	fmt.Fprintf(c.out, "%s: %s\n", t("summary.game_version"), snap.GameVersion)
	fmt.Fprintf(c.out, "%s: %s\n", t("summary.created"), snap.CreationDate)
	fmt.Fprintf(c.out, "%s: %d\n", t("summary.online"), snap.Money.OnlineBalance)
	fmt.Fprintf(c.out, "%s: %d\n", t("summary.networth"), snap.Money.Networth)
	fmt.Fprintf(c.out, "%s: %d\n", t("summary.lifetime"), snap.Money.LifetimeEarnings)
	fmt.Fprintf(c.out, "%s: %d\n", t("summary.weekly"), snap.Money.WeeklyDepositSum)
	fmt.Fprintf(c.out, "%s: %s (%d/%d)\n", t("summary.rank"), snap.Rank.CurrentRank, snap.Rank.Rank, snap.Rank.Tier)
	fmt.Fprintf(c.out, "%s: %s (%d items)\n", t("summary.properties"), strings.Join(snap.PropertyTypes, ", "), len(snap.Properties))
	fmt.Fprintf(c.out, "%s: %d\n", t("summary.npcs"), len(snap.NPCs))
}

func (c *cli) cmdMoney(args []string) {
	if !c.requireSession() {
		return
	}
	if len(args) != 4 {
		fmt.Fprintln(c.out, "usage: money <online> <networth> <lifetime> <weekly>")
		return
	}
	snap, err := c.session.Reload()
	if err != nil {
		c.printErr(err)
		return
	}
	edit := editor.StatsEdit{Rank: snap.Rank, Organisation: snap.Organisation}
	fieldsIn := []struct {
		name string
		dst  *int64
	}{
		{"online balance", &edit.Money.OnlineBalance},
		{"networth", &edit.Money.Networth},
		{"lifetime earnings", &edit.Money.LifetimeEarnings},
		{"weekly deposit sum", &edit.Money.WeeklyDepositSum},
	}
	for i, f := range fieldsIn {
		v, err := editor.ParseAmount(f.name, args[i])
		if err != nil {
			c.printErr(err)
			return
		}
		*f.dst = v
	}
	if !c.confirm() {
		return
	}
	if err := c.session.ApplyStats(edit); err != nil {
		c.printErr(err)
		return
	}
	fmt.Fprintln(c.out, c.locale.T("result.stats"))
}

func (c *cli) cmdRank(args []string) {
	if !c.requireSession() {
		return
	}
	if len(args) != 3 {
		fmt.Fprintln(c.out, "usage: rank <name> <rank> <tier>")
		return
	}
	snap, err := c.session.Reload()
	if err != nil {
		c.printErr(err)
		return
	}
	edit := editor.StatsEdit{Money: snap.Money, Organisation: snap.Organisation}
	edit.Rank.CurrentRank = args[0]
	if edit.Rank.Rank, err = editor.ParseAmount("rank number", args[1]); err != nil {
		c.printErr(err)
		return
	}
	if edit.Rank.Tier, err = editor.ParseAmount("tier", args[2]); err != nil {
		c.printErr(err)
		return
	}
	if !c.confirm() {
		return
	}
	if err := c.session.ApplyStats(edit); err != nil {
		c.printErr(err)
		return
	}
	fmt.Fprintln(c.out, c.locale.T("result.stats"))
}

func (c *cli) cmdOrg(args []string) {
	if !c.requireSession() {
		return
	}
	name := strings.TrimSpace(strings.Join(args, " "))
	if name == "" {
		fmt.Fprintln(c.out, "usage: org <name...>")
		return
	}
	snap, err := c.session.Reload()
	if err != nil {
		c.printErr(err)
		return
	}
	edit := editor.StatsEdit{Money: snap.Money, Rank: snap.Rank, Organisation: name}
	if !c.confirm() {
		return
	}
	if err := c.session.ApplyStats(edit); err != nil {
		c.printErr(err)
		return
	}
	fmt.Fprintln(c.out, c.locale.T("result.stats"))
}

func (c *cli) cmdProps(args []string) {
	if !c.requireSession() {
		return
	}
	if len(args) != 5 {
		fmt.Fprintln(c.out, "usage: props <type> <quantity> <quality> <packaging> <filter>")
		return
	}
	quantity, err := editor.ParseAmount("quantity", args[1])
	if err != nil {
		c.printErr(err)
		return
	}
	edit := editor.PropertyEdit{
		Type:      args[0],
		Quantity:  quantity,
		Quality:   args[2],
		Packaging: args[3],
		Filter:    args[4],
	}
	if !c.confirm() {
		return
	}
	n, err := c.session.ApplyProperties(edit)
	if err != nil {
		c.printErr(err)
		return
	}
	fmt.Fprintln(c.out, c.locale.T("result.properties", n))
}

func (c *cli) cmdQuests() {
	if !c.requireSession() || !c.confirm() {
		return
	}
	quests, objectives, err := c.session.CompleteQuests()
	if err != nil {
		c.printErr(err)
		return
	}
	fmt.Fprintln(c.out, c.locale.T("result.quests", quests, objectives))
}

func (c *cli) cmdVars() {
	if !c.requireSession() || !c.confirm() {
		return
	}
	n, err := c.session.ModifyVariables()
	if err != nil {
		c.printErr(err)
		return
	}
	fmt.Fprintln(c.out, c.locale.T("result.variables", n))
}

func (c *cli) cmdUnlockRank() {
	if !c.requireSession() || !c.confirm() {
		return
	}
	if err := c.session.UnlockRankProgress(); err != nil {
		c.printErr(err)
		return
	}
	fmt.Fprintln(c.out, c.locale.T("result.rank"))
}

func (c *cli) cmdOwn(args []string) {
	if !c.requireSession() {
		return
	}
	if len(args) != 1 {
		fmt.Fprintln(c.out, "usage: own <Properties|Businesses>")
		return
	}
	if !c.confirm() {
		return
	}
	n, err := c.session.UnlockOwnership(context.Background(), args[0])
	if err != nil {
		c.printErr(err)
		return
	}
	fmt.Fprintln(c.out, c.locale.T("result.ownership", args[0], n))
}

func (c *cli) cmdNPCs(args []string) {
	if !c.requireSession() {
		return
	}
	if len(args) != 1 {
		fmt.Fprintln(c.out, "usage: npcs <unlock|recruit>")
		return
	}
	if !c.confirm() {
		return
	}
	switch args[0] {
	case "unlock":
		n, err := c.session.UnlockNPCs(context.Background())
		if err != nil {
			c.printErr(err)
			return
		}
		fmt.Fprintln(c.out, c.locale.T("result.npcs_unlocked", n))
	case "recruit":
		n, err := c.session.RecruitDealers()
		if err != nil {
			c.printErr(err)
			return
		}
		fmt.Fprintln(c.out, c.locale.T("result.dealers", n))
	default:
		fmt.Fprintln(c.out, "usage: npcs <unlock|recruit>")
	}
}

func (c *cli) cmdNPCLog(args []string) {
	if !c.requireSession() {
		return
	}
	if len(args) != 1 {
		fmt.Fprintln(c.out, "usage: npclog <file>")
		return
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		c.printErr(err)
		return
	}
	if !c.confirm() {
		return
	}
	n, err := c.session.ImportNPCLog(string(data))
	if err != nil {
		c.printErr(err)
		return
	}
	fmt.Fprintln(c.out, c.locale.T("result.npcs_imported", n))
}

func (c *cli) cmdProducts(args []string) {
	if !c.requireSession() {
		return
	}
	if len(args) < 2 {
		fmt.Fprintln(c.out, "usage: products <discover|remove> <ids...>")
		return
	}
	ids := args[1:]
	if !c.confirm() {
		return
	}
	switch args[0] {
	case "discover":
		n, err := c.session.DiscoverProducts(ids)
		if err != nil {
			c.printErr(err)
			return
		}
		fmt.Fprintln(c.out, c.locale.T("result.discovered", n))
	case "remove":
		removed, err := c.session.UndiscoverProducts(ids)
		if err != nil {
			c.printErr(err)
			return
		}
		fmt.Fprintln(c.out, c.locale.T("result.removed", len(removed)))
	default:
		fmt.Fprintln(c.out, "usage: products <discover|remove> <ids...>")
	}
}

func (c *cli) cmdGenerate(args []string) {
	if !c.requireSession() {
		return
	}
	if len(args) < 3 {
		fmt.Fprintln(c.out, "usage: generate <count> <idlen> <price> [listed]")
		return
	}
	count, err := editor.ParseAmount("count", args[0])
	if err != nil {
		c.printErr(err)
		return
	}
	idLength, err := editor.ParseAmount("id length", args[1])
	if err != nil {
		c.printErr(err)
		return
	}
	price, err := editor.ParseAmount("price", args[2])
	if err != nil {
		c.printErr(err)
		return
	}
	listed := len(args) > 3 && args[3] == "listed"
	if !c.confirm() {
		return
	}
	ids, err := c.session.GenerateProducts(int(count), int(idLength), price, listed)
	if err != nil {
		c.printErr(err)
		return
	}
	fmt.Fprintln(c.out, c.locale.T("result.generated", len(ids)))
}

func (c *cli) cmdResetProducts() {
	if !c.requireSession() || !c.confirm() {
		return
	}
	n, err := c.session.ResetGeneratedProducts()
	if err != nil {
		c.printErr(err)
		return
	}
	fmt.Fprintln(c.out, c.locale.T("result.reset", n))
}

func (c *cli) cmdBackups() {
	if !c.requireSession() {
		return
	}
	backups, err := c.session.Backups()
	if err != nil {
		c.printErr(err)
		return
	}
	if len(backups) == 0 {
		fmt.Fprintln(c.out, c.locale.T("backup.none"))
		return
	}
	for feature, stamps := range backups {
		fmt.Fprintf(c.out, "  %s: %s\n", feature, strings.Join(stamps, ", "))
	}
}

func (c *cli) cmdRestore(args []string) {
	if !c.requireSession() {
		return
	}
	if len(args) < 1 {
		fmt.Fprintln(c.out, "usage: restore <feature> [stamp]")
		return
	}
	stamp := ""
	if len(args) > 1 {
		stamp = args[1]
	}
	if !c.confirm() {
		return
	}
	if err := c.session.Restore(args[0], stamp); err != nil {
		c.printErr(err)
		return
	}
	fmt.Fprintln(c.out, c.locale.T("result.restored", args[0]))
}

func (c *cli) cmdRestoreAll() {
	if !c.requireSession() || !c.confirm() {
		return
	}
	if err := c.session.RestoreAll(); err != nil {
		c.printErr(err)
		return
	}
	fmt.Fprintln(c.out, c.locale.T("result.restored_all"))
}

func (c *cli) cmdPurge() {
	if !c.requireSession() || !c.confirm() {
		return
	}
	if err := c.session.PurgeBackups(); err != nil {
		c.printErr(err)
		return
	}
	fmt.Fprintln(c.out, c.locale.T("result.purged"))
}

func (c *cli) cmdNewSave(args []string) {
	name := strings.TrimSpace(strings.Join(args, " "))
	if name == "" {
		fmt.Fprintln(c.out, "usage: newsave <org...>")
		return
	}
	if !c.confirm() {
		return
	}
	path, err := editor.GenerateNewSave(context.Background(), c.locator, c.downloads, name)
	if err != nil {
		c.printErr(err)
		return
	}
	fmt.Fprintln(c.out, c.locale.T("result.new_save", path))
}

func (c *cli) cmdInstallMod(args []string) {
	overwrite := len(args) > 0 && args[0] == "overwrite"
	if !c.confirm() {
		return
	}
	path, err := editor.InstallMod(context.Background(), c.downloads, c.gameDir, overwrite)
	if err != nil {
		c.printErr(err)
		return
	}
	fmt.Fprintln(c.out, c.locale.T("result.mod_installed", path))
}
