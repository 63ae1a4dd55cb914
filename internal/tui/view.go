package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (a App) View() string {
	if a.width == 0 || a.height == 0 {
		return "Initializing..."
	}
	if a.showHelp {
		return RenderHelp(a.width - 4)
	}

	var body string
	switch a.page {
	case pageSlots:
		body = a.viewSlots()
	case pageNewSave:
		body = a.viewNewSave()
	case pageSummary:
		body = a.viewSummary()
	case pageEditor:
		body = a.viewEditor()
	}

	statusBar := a.renderStatusBar(a.width)
	gap := a.height - lipgloss.Height(body) - 1
	if gap > 0 {
		body += strings.Repeat("\n", gap)
	}
	return lipgloss.JoinVertical(lipgloss.Left, body, statusBar)
}

func (a App) viewSlots() string {
	var parts []string
	parts = append(parts, a.theme.TitleStyle.Render(" "+a.locale.T("slots.title")))
	parts = append(parts, "")
	if len(a.slots) == 0 {
		parts = append(parts, a.theme.MutedStyle.Render("  "+a.locale.T("slots.none")))
	} else {
		parts = append(parts, a.slotTable.View())
	}
	parts = append(parts, "")
	parts = append(parts, a.theme.MutedStyle.Render("  "+a.locale.T("slots.hint")))
	return strings.Join(parts, "\n")
}

func (a App) viewNewSave() string {
	var parts []string
	parts = append(parts, a.theme.TitleStyle.Render(" "+a.locale.T("action.new_save")))
	parts = append(parts, "")
	parts = append(parts, "  "+a.theme.LabelStyle.Render(a.locale.T("field.organisation")))
	parts = append(parts, "  "+a.newSaveInput.View())
	parts = append(parts, "")
	parts = append(parts, a.theme.MutedStyle.Render("  "+a.locale.T("keys.apply")+" · "+a.locale.T("keys.back")))
	return strings.Join(parts, "\n")
}

func (a App) viewSummary() string {
	if a.snap == nil {
		return a.theme.MutedStyle.Render("  " + a.locale.T("status.working"))
	}
	snap := a.snap

	line := func(labelKey, value string) string {
		return "  " + a.theme.LabelStyle.Render(a.locale.T(labelKey)) + a.theme.ValueStyle.Render(value)
	}

	recruited := 0
	for _, npc := range snap.NPCs {
		if npc.Recruited {
			recruited++
		}
	}

	var parts []string
	parts = append(parts, a.theme.TitleStyle.Render(" "+a.locale.T("summary.title")+" — "+filepath.Base(snap.SlotPath)))
	parts = append(parts, "")
	parts = append(parts, line("summary.organisation", snap.Organisation))
	parts = append(parts, line("summary.game_version", snap.GameVersion))
	parts = append(parts, line("summary.created", snap.CreationDate))
	parts = append(parts, "")
	parts = append(parts, line("summary.online", fmt.Sprintf("%d", snap.Money.OnlineBalance)))
	parts = append(parts, line("summary.networth", fmt.Sprintf("%d", snap.Money.Networth)))
	parts = append(parts, line("summary.lifetime", fmt.Sprintf("%d", snap.Money.LifetimeEarnings)))
	parts = append(parts, line("summary.weekly", fmt.Sprintf("%d", snap.Money.WeeklyDepositSum)))
	parts = append(parts, "")
	parts = append(parts, line("summary.rank", fmt.Sprintf("%s (%d)", snap.Rank.CurrentRank, snap.Rank.Rank)))
	parts = append(parts, line("summary.tier", fmt.Sprintf("%d", snap.Rank.Tier)))
	parts = append(parts, "")
	parts = append(parts, line("summary.properties", fmt.Sprintf("%s (%d items)", strings.Join(snap.PropertyTypes, ", "), len(snap.Properties))))
	parts = append(parts, line("summary.npcs", fmt.Sprintf("%d (%d recruited)", len(snap.NPCs), recruited)))
	parts = append(parts, "")
	parts = append(parts, a.theme.MutedStyle.Render("  "+a.locale.T("summary.hint")))
	return strings.Join(parts, "\n")
}

func (a App) viewEditor() string {
	tabs := a.renderTabs()
	var content string
	switch a.tab {
	case tabNPCs:
		content = a.viewNPCsTab()
	case tabBackups:
		content = a.viewBackupsTab()
	default:
		content = a.viewFormTab()
	}
	return lipgloss.JoinVertical(lipgloss.Left, tabs, "", content)
}

func (a App) renderTabs() string {
	names := []string{
		a.locale.T("tab.money"),
		a.locale.T("tab.rank"),
		a.locale.T("tab.properties"),
		a.locale.T("tab.products"),
		a.locale.T("tab.unlocks"),
		a.locale.T("tab.npcs"),
		a.locale.T("tab.misc"),
		a.locale.T("tab.backups"),
	}
	var parts []string
	for i, name := range names {
		style := a.theme.InactiveTabStyle
		if tabID(i) == a.tab {
			style = a.theme.ActiveTabStyle
		}
		parts = append(parts, style.Render(name))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (a App) viewFormTab() string {
	var parts []string
	for i, field := range a.forms[a.tab] {
		focused := i == a.focus
		switch field.kind {
		case fieldInput:
			label := a.theme.LabelStyle.Render(a.locale.T(field.label))
			parts = append(parts, "  "+label+a.inputs[a.tab][field.input].View())
		case fieldToggle:
			mark := "[ ]"
			if a.toggleValue(field.action) {
				mark = "[x]"
			}
			style := a.theme.ValueStyle
			if focused {
				style = a.theme.TitleStyle
			}
			parts = append(parts, "  "+style.Render(mark+" "+a.locale.T(field.label)))
		case fieldButton:
			style := a.theme.ButtonStyle
			if focused {
				style = a.theme.ActiveButtonStyle
			}
			parts = append(parts, "  "+style.Render(a.locale.T(field.label)))
		}
	}
	parts = append(parts, "")
	parts = append(parts, a.theme.MutedStyle.Render("  "+a.locale.T("keys.tabs")+" · "+a.locale.T("keys.apply")+" · "+a.locale.T("keys.back")))
	return strings.Join(parts, "\n")
}

func (a App) viewNPCsTab() string {
	var parts []string
	parts = append(parts, "  "+a.theme.LabelStyle.Render(a.locale.T("action.import_npc_log")))
	parts = append(parts, a.npcLog.View())
	parts = append(parts, "")
	parts = append(parts, a.theme.MutedStyle.Render("  ctrl+s "+a.locale.T("action.import_npc_log")))
	return strings.Join(parts, "\n")
}

func (a App) viewBackupsTab() string {
	var parts []string
	if len(a.backupRows) == 0 {
		parts = append(parts, a.theme.MutedStyle.Render("  "+a.locale.T("backup.none")))
	} else {
		parts = append(parts, a.backupTable.View())
	}
	parts = append(parts, "")
	hint := fmt.Sprintf("  enter %s · a %s · x %s",
		a.locale.T("action.restore"),
		a.locale.T("action.restore_all"),
		a.locale.T("action.purge_backups"))
	parts = append(parts, a.theme.MutedStyle.Render(hint))
	return strings.Join(parts, "\n")
}

func (a App) toggleValue(act actionID) bool {
	switch act {
	case actToggleListed:
		return a.listed
	case actToggleOverwrite:
		return a.overwrite
	}
	return false
}

func (a App) renderStatusBar(width int) string {
	left := " " + a.locale.T("status.ready")
	if a.busy {
		left = " " + a.locale.T("status.working")
	} else if a.lastError != "" {
		left = " " + a.theme.ErrorStyle.Render(a.lastError)
	} else if a.status != "" {
		left = " " + a.status
	}

	right := a.locator.Root() + "  "
	if a.session != nil {
		right = filepath.Base(a.session.Slot()) + "  "
	}

	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}
	bar := left + strings.Repeat(" ", gap) + right
	return a.theme.StatusBarStyle.Width(width).Render(bar)
}
