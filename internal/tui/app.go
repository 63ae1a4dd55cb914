package tui

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"saveedit/internal/download"
	"saveedit/internal/editor"
	"saveedit/internal/i18n"
	"saveedit/internal/save"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// page 页面标识 / page identifies a screen
type page int

const (
	pageSlots page = iota
	pageNewSave
	pageSummary
	pageEditor
)

// tabID 编辑页标签 / tabID identifies an editor tab
type tabID int

const (
	tabMoney tabID = iota
	tabRank
	tabProperties
	tabProducts
	tabUnlocks
	tabNPCs
	tabMisc
	tabBackups
	tabCount
)

// actionID 可触发的操作 / actionID identifies a triggerable operation
type actionID int

const (
	actApplyStats actionID = iota
	actUnlockRank
	actApplyProperties
	actGenerateProducts
	actDiscoverProducts
	actRemoveProducts
	actResetProducts
	actToggleListed
	actCompleteQuests
	actModifyVariables
	actOwnProperties
	actOwnBusinesses
	actUnlockNPCs
	actRecruitDealers
	actToggleOverwrite
	actInstallMod
)

type fieldKind int

const (
	fieldInput fieldKind = iota
	fieldButton
	fieldToggle
)

// formField 是编辑页的一个可聚焦元素：输入框、按钮或开关
// formField is one focusable editor element: an input, a button or a toggle.
type formField struct {
	kind   fieldKind
	label  string // i18n key
	action actionID
	input  int // index into the tab's input slice
}

// backupRef 把备份表格的一行定位到 (feature, stamp)
// backupRef locates one backup table row as (feature, stamp).
type backupRef struct {
	feature string
	stamp   string
}

// --- Tea Messages ---

type slotsMsg struct {
	slots []save.Slot
	err   error
}

type sessionMsg struct {
	session *editor.Session
	snap    *save.Snapshot
	err     error
}

type snapshotMsg struct {
	snap *save.Snapshot
	err  error
}

type backupsMsg struct {
	backups map[string][]string
	err     error
}

// opDoneMsg 操作完成；reload 为真时重新解析槽位
// opDoneMsg reports a finished operation; reload re-parses the slot.
type opDoneMsg struct {
	status string
	reload bool
}

type opErrMsg struct{ err error }

// App Bubble Tea 主 Model
// App is the main Bubble Tea model
type App struct {
	// 布局 / Layout
	width  int
	height int

	// 依赖 / Dependencies
	locator   *save.Locator
	downloads *download.Client
	gameDir   string

	// 会话 / Session
	session *editor.Session
	snap    *save.Snapshot

	// 页面 / Pages
	page page
	tab  tabID

	slots     []save.Slot
	slotTable table.Model

	inputs [][]textinput.Model
	forms  [][]formField
	focus  int
	seeded bool

	listed    bool
	overwrite bool

	npcLog textarea.Model

	backupTable table.Model
	backupRows  []backupRef

	newSaveInput textinput.Model

	// 状态 / State
	busy      bool
	status    string
	lastError string
	showHelp  bool

	// 配置 / Config
	theme  Theme
	keys   KeyMap
	locale *i18n.I18n
}

// NewApp 创建 TUI 应用；downloads 可为 nil（离线模式）
// NewApp creates the TUI application; downloads may be nil (offline mode).
func NewApp(locator *save.Locator, downloads *download.Client, gameDir string) App {
	loc := i18n.Global()

	slotTable := table.New(
		table.WithColumns([]table.Column{
			{Title: loc.T("slots.col_slot"), Width: 12},
			{Title: loc.T("slots.col_org"), Width: 24},
			{Title: loc.T("slots.col_version"), Width: 10},
			{Title: loc.T("slots.col_networth"), Width: 14},
			{Title: loc.T("slots.col_created"), Width: 20},
		}),
		table.WithFocused(true),
		table.WithHeight(8),
	)

	backupTable := table.New(
		table.WithColumns([]table.Column{
			{Title: loc.T("backup.col_feature"), Width: 16},
			{Title: loc.T("backup.col_stamp"), Width: 20},
		}),
		table.WithFocused(true),
		table.WithHeight(10),
	)

	npcLog := textarea.New()
	npcLog.Placeholder = loc.T("field.npc_log")
	npcLog.CharLimit = 0
	npcLog.SetHeight(10)

	newSaveInput := textinput.New()
	newSaveInput.Placeholder = loc.T("field.organisation")
	newSaveInput.CharLimit = 64

	a := App{
		locator:      locator,
		downloads:    downloads,
		gameDir:      gameDir,
		page:         pageSlots,
		slotTable:    slotTable,
		backupTable:  backupTable,
		npcLog:       npcLog,
		newSaveInput: newSaveInput,
		listed:       true,
		theme:        DarkTheme(),
		keys:         DefaultKeyMap(),
		locale:       loc,
	}
	a.buildForms()
	return a
}

// buildForms 搭建每个标签页的表单 / buildForms lays out every tab's form.
func (a *App) buildForms() {
	a.inputs = make([][]textinput.Model, tabCount)
	a.forms = make([][]formField, tabCount)

	newInput := func(width int) textinput.Model {
		ti := textinput.New()
		ti.CharLimit = 64
		ti.Width = width
		return ti
	}

	addInputs := func(tab tabID, labels ...string) {
		for i, label := range labels {
			a.inputs[tab] = append(a.inputs[tab], newInput(32))
			a.forms[tab] = append(a.forms[tab], formField{kind: fieldInput, label: label, input: i})
		}
	}
	addButton := func(tab tabID, label string, act actionID) {
		a.forms[tab] = append(a.forms[tab], formField{kind: fieldButton, label: label, action: act})
	}
	addToggle := func(tab tabID, label string, act actionID) {
		a.forms[tab] = append(a.forms[tab], formField{kind: fieldToggle, label: label, action: act})
	}

	addInputs(tabMoney, "field.online", "field.networth", "field.lifetime", "field.weekly")
	addButton(tabMoney, "action.apply", actApplyStats)

	addInputs(tabRank, "field.rank_name", "field.rank_value", "field.tier", "field.organisation")
	addButton(tabRank, "action.apply", actApplyStats)
	addButton(tabRank, "action.unlock_rank", actUnlockRank)

	addInputs(tabProperties, "field.prop_type", "field.quantity", "field.quality", "field.packaging", "field.filter")
	addButton(tabProperties, "action.apply", actApplyProperties)

	addInputs(tabProducts, "field.count", "field.id_length", "field.price", "field.product_ids")
	addToggle(tabProducts, "field.listed", actToggleListed)
	addButton(tabProducts, "action.generate", actGenerateProducts)
	addButton(tabProducts, "action.discover", actDiscoverProducts)
	addButton(tabProducts, "action.remove", actRemoveProducts)
	addButton(tabProducts, "action.reset_generated", actResetProducts)

	addButton(tabUnlocks, "action.complete_quests", actCompleteQuests)
	addButton(tabUnlocks, "action.modify_variables", actModifyVariables)
	addButton(tabUnlocks, "action.own_properties", actOwnProperties)
	addButton(tabUnlocks, "action.own_businesses", actOwnBusinesses)
	addButton(tabUnlocks, "action.unlock_npcs", actUnlockNPCs)
	addButton(tabUnlocks, "action.recruit_dealers", actRecruitDealers)

	addToggle(tabMisc, "field.overwrite", actToggleOverwrite)
	addButton(tabMisc, "action.install_mod", actInstallMod)
}

func (a App) Init() tea.Cmd {
	return a.loadSlotsCmd()
}

// --- Commands ---

func (a App) loadSlotsCmd() tea.Cmd {
	loc := a.locator
	return func() tea.Msg {
		slots, err := loc.Slots()
		return slotsMsg{slots: slots, err: err}
	}
}

func (a App) openSlotCmd(path string) tea.Cmd {
	downloads := a.downloads
	return func() tea.Msg {
		session, err := editor.NewSession(path, downloads)
		if err != nil {
			return sessionMsg{err: err}
		}
		snap, err := session.Reload()
		if err != nil {
			return sessionMsg{err: err}
		}
		return sessionMsg{session: session, snap: snap}
	}
}

func (a App) refreshSnapshotCmd() tea.Cmd {
	session := a.session
	return func() tea.Msg {
		snap, err := session.Reload()
		return snapshotMsg{snap: snap, err: err}
	}
}

func (a App) loadBackupsCmd() tea.Cmd {
	session := a.session
	return func() tea.Msg {
		backups, err := session.Backups()
		return backupsMsg{backups: backups, err: err}
	}
}

func (a App) createSaveCmd(orgName string) tea.Cmd {
	loc := a.locator
	downloads := a.downloads
	locale := a.locale
	return func() tea.Msg {
		path, err := editor.GenerateNewSave(context.Background(), loc, downloads, orgName)
		if err != nil {
			return opErrMsg{err: err}
		}
		return opDoneMsg{status: locale.T("result.new_save", path)}
	}
}

// opCmd 在后台执行一个写操作 / opCmd runs one write operation off the UI loop.
func (a App) opCmd(run func() (string, error)) tea.Cmd {
	return func() tea.Msg {
		status, err := run()
		if err != nil {
			return opErrMsg{err: err}
		}
		return opDoneMsg{status: status, reload: true}
	}
}

// --- Update ---

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.relayout()
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)

	case slotsMsg:
		if msg.err != nil {
			a.lastError = msg.err.Error()
			return a, nil
		}
		a.lastError = ""
		a.slots = msg.slots
		rows := make([]table.Row, 0, len(msg.slots))
		for _, slot := range msg.slots {
			rows = append(rows, table.Row{
				slot.Name,
				slot.Organisation,
				slot.GameVersion,
				fmt.Sprintf("%d", slot.Networth),
				slot.Created,
			})
		}
		a.slotTable.SetRows(rows)
		return a, nil

	case sessionMsg:
		a.busy = false
		if msg.err != nil {
			a.lastError = a.locale.T("error.load", msg.err.Error())
			return a, nil
		}
		a.lastError = ""
		a.session = msg.session
		a.snap = msg.snap
		a.seeded = false
		a.seedForms()
		a.page = pageSummary
		a.status = a.locale.T("status.ready")
		return a, nil

	case snapshotMsg:
		if msg.err != nil {
			a.lastError = a.locale.T("error.load", msg.err.Error())
			return a, nil
		}
		a.snap = msg.snap
		a.seedForms()
		return a, nil

	case backupsMsg:
		if msg.err != nil {
			a.lastError = a.locale.T("error.backup", msg.err.Error())
			return a, nil
		}
		a.setBackupRows(msg.backups)
		return a, nil

	case opDoneMsg:
		a.busy = false
		a.lastError = ""
		a.status = msg.status
		var cmds []tea.Cmd
		if msg.reload && a.session != nil {
			cmds = append(cmds, a.refreshSnapshotCmd())
			if a.tab == tabBackups {
				cmds = append(cmds, a.loadBackupsCmd())
			}
		}
		if a.page == pageNewSave {
			a.page = pageSlots
			cmds = append(cmds, a.loadSlotsCmd())
		}
		return a, tea.Batch(cmds...)

	case opErrMsg:
		a.busy = false
		a.lastError = msg.err.Error()
		a.status = ""
		return a, nil
	}

	return a.updateFocused(msg)
}

func (a App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return a, tea.Quit
	}
	if a.showHelp {
		a.showHelp = false
		return a, nil
	}

	switch a.page {
	case pageSlots:
		return a.handleSlotsKey(msg)
	case pageNewSave:
		return a.handleNewSaveKey(msg)
	case pageSummary:
		return a.handleSummaryKey(msg)
	case pageEditor:
		return a.handleEditorKey(msg)
	}
	return a, nil
}

func (a App) handleSlotsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return a, tea.Quit
	case "?":
		a.showHelp = true
		return a, nil
	case "n":
		a.page = pageNewSave
		a.newSaveInput.SetValue("")
		a.newSaveInput.Focus()
		return a, textinput.Blink
	case "enter":
		row := a.slotTable.SelectedRow()
		if row == nil {
			return a, nil
		}
		for _, slot := range a.slots {
			if slot.Name == row[0] {
				a.busy = true
				a.status = a.locale.T("status.working")
				return a, a.openSlotCmd(slot.Path)
			}
		}
		return a, nil
	}
	var cmd tea.Cmd
	a.slotTable, cmd = a.slotTable.Update(msg)
	return a, cmd
}

func (a App) handleNewSaveKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.page = pageSlots
		return a, nil
	case "enter":
		if a.busy {
			return a, nil
		}
		a.busy = true
		a.status = a.locale.T("status.working")
		return a, a.createSaveCmd(a.newSaveInput.Value())
	}
	var cmd tea.Cmd
	a.newSaveInput, cmd = a.newSaveInput.Update(msg)
	return a, cmd
}

func (a App) handleSummaryKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		a.page = pageSlots
		a.session = nil
		a.snap = nil
		return a, a.loadSlotsCmd()
	case "?":
		a.showHelp = true
		return a, nil
	case "enter":
		a.page = pageEditor
		a.tab = tabMoney
		a.setFocus(0)
		return a, nil
	}
	return a, nil
}

func (a App) handleEditorKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.page = pageSummary
		return a, a.refreshSnapshotCmd()
	case "tab":
		return a.switchTab((a.tab + 1) % tabCount)
	case "shift+tab":
		return a.switchTab((a.tab + tabCount - 1) % tabCount)
	case "ctrl+r":
		return a, a.refreshSnapshotCmd()
	}

	switch a.tab {
	case tabNPCs:
		return a.handleNPCsKey(msg)
	case tabBackups:
		return a.handleBackupsKey(msg)
	}

	switch msg.String() {
	case "up":
		a.moveFocus(-1)
		return a, nil
	case "down":
		a.moveFocus(1)
		return a, nil
	case "enter":
		return a.activateFocused()
	}

	return a.updateFocused(msg)
}

func (a App) handleNPCsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		if a.busy {
			return a, nil
		}
		session := a.session
		logText := a.npcLog.Value()
		locale := a.locale
		a.busy = true
		return a, a.opCmd(func() (string, error) {
			n, err := session.ImportNPCLog(logText)
			if err != nil {
				return "", err
			}
			return locale.T("result.npcs_imported", n), nil
		})
	}
	var cmd tea.Cmd
	a.npcLog, cmd = a.npcLog.Update(msg)
	return a, cmd
}

func (a App) handleBackupsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.busy {
		return a, nil
	}
	session := a.session
	locale := a.locale

	switch msg.String() {
	case "enter":
		idx := a.backupTable.Cursor()
		if idx < 0 || idx >= len(a.backupRows) {
			return a, nil
		}
		ref := a.backupRows[idx]
		a.busy = true
		return a, a.opCmd(func() (string, error) {
			if err := session.Restore(ref.feature, ref.stamp); err != nil {
				return "", err
			}
			return locale.T("result.restored", ref.feature+"/"+ref.stamp), nil
		})
	case "a":
		a.busy = true
		return a, a.opCmd(func() (string, error) {
			if err := session.RestoreAll(); err != nil {
				return "", err
			}
			return locale.T("result.restored_all"), nil
		})
	case "x":
		a.busy = true
		return a, a.opCmd(func() (string, error) {
			if err := session.PurgeBackups(); err != nil {
				return "", err
			}
			return locale.T("result.purged"), nil
		})
	}

	var cmd tea.Cmd
	a.backupTable, cmd = a.backupTable.Update(msg)
	return a, cmd
}

func (a App) switchTab(next tabID) (tea.Model, tea.Cmd) {
	a.tab = next
	a.setFocus(0)
	if next == tabNPCs {
		a.npcLog.Focus()
	} else {
		a.npcLog.Blur()
	}
	if next == tabBackups && a.session != nil {
		return a, a.loadBackupsCmd()
	}
	return a, nil
}

// moveFocus 在当前标签页内移动焦点 / moveFocus moves focus within the tab.
func (a *App) moveFocus(delta int) {
	fields := a.forms[a.tab]
	if len(fields) == 0 {
		return
	}
	next := a.focus + delta
	if next < 0 {
		next = len(fields) - 1
	}
	if next >= len(fields) {
		next = 0
	}
	a.setFocus(next)
}

func (a *App) setFocus(idx int) {
	a.focus = idx
	fields := a.forms[a.tab]
	for i, field := range fields {
		if field.kind != fieldInput {
			continue
		}
		if i == idx {
			a.inputs[a.tab][field.input].Focus()
		} else {
			a.inputs[a.tab][field.input].Blur()
		}
	}
}

// activateFocused 触发当前焦点：输入框前进，按钮执行
// activateFocused advances on inputs and fires buttons and toggles.
func (a App) activateFocused() (tea.Model, tea.Cmd) {
	fields := a.forms[a.tab]
	if a.focus < 0 || a.focus >= len(fields) {
		return a, nil
	}
	field := fields[a.focus]
	switch field.kind {
	case fieldInput:
		a.moveFocus(1)
		return a, nil
	case fieldToggle:
		switch field.action {
		case actToggleListed:
			a.listed = !a.listed
		case actToggleOverwrite:
			a.overwrite = !a.overwrite
		}
		return a, nil
	default:
		if a.busy {
			return a, nil
		}
		return a.dispatch(field.action)
	}
}

func (a App) updateFocused(msg tea.Msg) (tea.Model, tea.Cmd) {
	if a.page == pageNewSave {
		var cmd tea.Cmd
		a.newSaveInput, cmd = a.newSaveInput.Update(msg)
		return a, cmd
	}
	if a.page != pageEditor {
		return a, nil
	}
	switch a.tab {
	case tabNPCs:
		var cmd tea.Cmd
		a.npcLog, cmd = a.npcLog.Update(msg)
		return a, cmd
	case tabBackups:
		var cmd tea.Cmd
		a.backupTable, cmd = a.backupTable.Update(msg)
		return a, cmd
	}

	fields := a.forms[a.tab]
	if a.focus < 0 || a.focus >= len(fields) || fields[a.focus].kind != fieldInput {
		return a, nil
	}
	idx := fields[a.focus].input
	var cmd tea.Cmd
	a.inputs[a.tab][idx], cmd = a.inputs[a.tab][idx].Update(msg)
	return a, cmd
}

func (a *App) relayout() {
	tableWidth := a.width - 4
	if tableWidth < 40 {
		tableWidth = 40
	}
	a.slotTable.SetWidth(tableWidth)
	a.backupTable.SetWidth(tableWidth / 2)

	tableHeight := a.height - 8
	if tableHeight < 4 {
		tableHeight = 4
	}
	if tableHeight > 12 {
		tableHeight = 12
	}
	a.slotTable.SetHeight(tableHeight)
	a.backupTable.SetHeight(tableHeight)

	a.npcLog.SetWidth(tableWidth)
}

func (a *App) setBackupRows(backups map[string][]string) {
	features := make([]string, 0, len(backups))
	for feature := range backups {
		features = append(features, feature)
	}
	// map 无序，排序保证稳定展示 / map order is random, sort for display
	sort.Strings(features)

	a.backupRows = a.backupRows[:0]
	rows := []table.Row{}
	for _, feature := range features {
		for _, stamp := range backups[feature] {
			a.backupRows = append(a.backupRows, backupRef{feature: feature, stamp: stamp})
			rows = append(rows, table.Row{feature, stamp})
		}
	}
	a.backupTable.SetRows(rows)
}

// seedForms 用快照数据填充表单；批量参数只在首次播种时给默认值
// seedForms fills the forms from the snapshot; bulk parameters get their
// defaults on the first seed only.
func (a *App) seedForms() {
	if a.snap == nil {
		return
	}
	snap := a.snap

	set := func(tab tabID, idx int, value string) {
		a.inputs[tab][idx].SetValue(value)
	}
	set(tabMoney, 0, fmt.Sprintf("%d", snap.Money.OnlineBalance))
	set(tabMoney, 1, fmt.Sprintf("%d", snap.Money.Networth))
	set(tabMoney, 2, fmt.Sprintf("%d", snap.Money.LifetimeEarnings))
	set(tabMoney, 3, fmt.Sprintf("%d", snap.Money.WeeklyDepositSum))

	set(tabRank, 0, snap.Rank.CurrentRank)
	set(tabRank, 1, fmt.Sprintf("%d", snap.Rank.Rank))
	set(tabRank, 2, fmt.Sprintf("%d", snap.Rank.Tier))
	set(tabRank, 3, snap.Organisation)

	if !a.seeded {
		set(tabProperties, 0, "all")
		set(tabProperties, 1, "20")
		set(tabProperties, 2, "Heavenly")
		set(tabProperties, 3, "baggie")
		set(tabProperties, 4, "both")

		set(tabProducts, 0, "20")
		set(tabProducts, 1, "10")
		set(tabProducts, 2, "1000")
		set(tabProducts, 3, "")
		a.seeded = true
	}
}

// --- Action dispatch ---

func (a App) dispatch(act actionID) (tea.Model, tea.Cmd) {
	session := a.session
	locale := a.locale

	switch act {
	case actApplyStats:
		edit, err := a.buildStatsEdit()
		if err != nil {
			a.lastError = err.Error()
			return a, nil
		}
		a.busy = true
		return a, a.opCmd(func() (string, error) {
			if err := session.ApplyStats(edit); err != nil {
				return "", err
			}
			return locale.T("result.stats"), nil
		})

	case actUnlockRank:
		a.busy = true
		return a, a.opCmd(func() (string, error) {
			if err := session.UnlockRankProgress(); err != nil {
				return "", err
			}
			return locale.T("result.rank"), nil
		})

	case actApplyProperties:
		edit, err := a.buildPropertyEdit()
		if err != nil {
			a.lastError = err.Error()
			return a, nil
		}
		a.busy = true
		return a, a.opCmd(func() (string, error) {
			n, err := session.ApplyProperties(edit)
			if err != nil {
				return "", err
			}
			return locale.T("result.properties", n), nil
		})

	case actGenerateProducts:
		count, err := editor.ParseAmount("count", a.inputs[tabProducts][0].Value())
		if err != nil {
			a.lastError = err.Error()
			return a, nil
		}
		idLength, err := editor.ParseAmount("id length", a.inputs[tabProducts][1].Value())
		if err != nil {
			a.lastError = err.Error()
			return a, nil
		}
		price, err := editor.ParseAmount("price", a.inputs[tabProducts][2].Value())
		if err != nil {
			a.lastError = err.Error()
			return a, nil
		}
		listed := a.listed
		a.busy = true
		return a, a.opCmd(func() (string, error) {
			ids, err := session.GenerateProducts(int(count), int(idLength), price, listed)
			if err != nil {
				return "", err
			}
			return locale.T("result.generated", len(ids)), nil
		})

	case actDiscoverProducts:
		ids := splitIDs(a.inputs[tabProducts][3].Value())
		a.busy = true
		return a, a.opCmd(func() (string, error) {
			n, err := session.DiscoverProducts(ids)
			if err != nil {
				return "", err
			}
			return locale.T("result.discovered", n), nil
		})

	case actRemoveProducts:
		ids := splitIDs(a.inputs[tabProducts][3].Value())
		a.busy = true
		return a, a.opCmd(func() (string, error) {
			removed, err := session.UndiscoverProducts(ids)
			if err != nil {
				return "", err
			}
			return locale.T("result.removed", len(removed)), nil
		})

	case actResetProducts:
		a.busy = true
		return a, a.opCmd(func() (string, error) {
			n, err := session.ResetGeneratedProducts()
			if err != nil {
				return "", err
			}
			return locale.T("result.reset", n), nil
		})

	case actCompleteQuests:
		a.busy = true
		return a, a.opCmd(func() (string, error) {
			quests, objectives, err := session.CompleteQuests()
			if err != nil {
				return "", err
			}
			return locale.T("result.quests", quests, objectives), nil
		})

	case actModifyVariables:
		a.busy = true
		return a, a.opCmd(func() (string, error) {
			n, err := session.ModifyVariables()
			if err != nil {
				return "", err
			}
			return locale.T("result.variables", n), nil
		})

	case actOwnProperties, actOwnBusinesses:
		kind := "Properties"
		if act == actOwnBusinesses {
			kind = "Businesses"
		}
		a.busy = true
		a.status = a.locale.T("status.downloading", kind+".zip")
		return a, a.opCmd(func() (string, error) {
			n, err := session.UnlockOwnership(context.Background(), kind)
			if err != nil {
				return "", err
			}
			return locale.T("result.ownership", kind, n), nil
		})

	case actUnlockNPCs:
		a.busy = true
		a.status = a.locale.T("status.downloading", "NPCs.zip")
		return a, a.opCmd(func() (string, error) {
			n, err := session.UnlockNPCs(context.Background())
			if err != nil {
				return "", err
			}
			return locale.T("result.npcs_unlocked", n), nil
		})

	case actRecruitDealers:
		a.busy = true
		return a, a.opCmd(func() (string, error) {
			n, err := session.RecruitDealers()
			if err != nil {
				return "", err
			}
			return locale.T("result.dealers", n), nil
		})

	case actInstallMod:
		downloads := a.downloads
		gameDir := a.gameDir
		overwrite := a.overwrite
		a.busy = true
		return a, a.opCmd(func() (string, error) {
			path, err := editor.InstallMod(context.Background(), downloads, gameDir, overwrite)
			if err != nil {
				return "", err
			}
			return locale.T("result.mod_installed", path), nil
		})
	}

	return a, nil
}

func (a App) buildStatsEdit() (editor.StatsEdit, error) {
	var edit editor.StatsEdit
	var err error

	money := a.inputs[tabMoney]
	if edit.Money.OnlineBalance, err = editor.ParseAmount("online balance", money[0].Value()); err != nil {
		return edit, err
	}
	if edit.Money.Networth, err = editor.ParseAmount("networth", money[1].Value()); err != nil {
		return edit, err
	}
	if edit.Money.LifetimeEarnings, err = editor.ParseAmount("lifetime earnings", money[2].Value()); err != nil {
		return edit, err
	}
	if edit.Money.WeeklyDepositSum, err = editor.ParseAmount("weekly deposit sum", money[3].Value()); err != nil {
		return edit, err
	}

	rank := a.inputs[tabRank]
	edit.Rank.CurrentRank = strings.TrimSpace(rank[0].Value())
	if edit.Rank.Rank, err = editor.ParseAmount("rank number", rank[1].Value()); err != nil {
		return edit, err
	}
	if edit.Rank.Tier, err = editor.ParseAmount("tier", rank[2].Value()); err != nil {
		return edit, err
	}
	edit.Organisation = strings.TrimSpace(rank[3].Value())
	return edit, nil
}

func (a App) buildPropertyEdit() (editor.PropertyEdit, error) {
	inputs := a.inputs[tabProperties]
	quantity, err := editor.ParseAmount("quantity", inputs[1].Value())
	if err != nil {
		return editor.PropertyEdit{}, err
	}
	return editor.PropertyEdit{
		Type:      strings.TrimSpace(inputs[0].Value()),
		Quantity:  quantity,
		Quality:   strings.TrimSpace(inputs[2].Value()),
		Packaging: strings.TrimSpace(inputs[3].Value()),
		Filter:    strings.TrimSpace(inputs[4].Value()),
	}, nil
}

func splitIDs(value string) []string {
	parts := strings.FieldsFunc(value, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	ids := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			ids = append(ids, p)
		}
	}
	return ids
}

// Run 启动 Bubble Tea TUI
// Run starts the Bubble Tea TUI application
func Run(locator *save.Locator, downloads *download.Client, gameDir string) error {
	app := NewApp(locator, downloads, gameDir)
	p := tea.NewProgram(app, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
