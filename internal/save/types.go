package save

import "time"

// Slot 是一个可编辑的存档槽位（SaveGame_N 目录），附列表页展示的摘要字段
// Slot is one editable save folder (a SaveGame_N directory) with the summary
// fields shown in the slot list.
type Slot struct {
	Name         string
	Path         string
	Organisation string
	GameVersion  string
	Networth     int64
	Created      string
	ModTime      time.Time
}

// MoneyInfo 是 Money.json 中可编辑的四个字段
// MoneyInfo holds the four editable Money.json fields.
type MoneyInfo struct {
	OnlineBalance    int64
	Networth         int64
	LifetimeEarnings int64
	WeeklyDepositSum int64
}

// RankInfo 是 Rank.json 中可编辑的字段
// RankInfo holds the editable Rank.json fields.
type RankInfo struct {
	CurrentRank string
	Rank        int64
	Tier        int64
}

// PropertyItem 是某个物业存储格中的一条物品记录。File/Index 记录它在
// Data.json 的 Contents.Items 中的位置，写回时按原位替换。
// PropertyItem is one stored item inside a property. File/Index locate it
// inside Data.json's Contents.Items so the writer can replace it in place.
type PropertyItem struct {
	Property  string // property directory name (barn, rv, ...)
	File      string // absolute path of the owning Data.json
	Index     int    // position within Contents.Items
	DataType  string // "WeedData" or "ItemData"
	ID        string
	Quantity  int64
	Quality   string
	Packaging string
}

// NPCRecord 是一个 NPC 的关系/招募状态
// NPCRecord is one NPC's relationship and recruitment state.
type NPCRecord struct {
	Name          string // NPC folder name
	ID            string
	DataType      string
	Recruited     bool
	HasRecruited  bool // NPC.json carries a Recruited key at all
	RelationDelta int64
	Unlocked      bool
}

// NPCEntry 是从日志解析或模板生成的 (名字, ID) 对
// NPCEntry is a (name, id) pair parsed from a log or template.
type NPCEntry struct {
	Name string
	ID   string
}

// Variable 是 Variables 目录中的一个键值文件
// Variable is one key/value file under a Variables directory.
type Variable struct {
	Name  string // file stem
	File  string // absolute path
	Value string
}

// Snapshot 是一个槽位解析后的内存视图；编辑会话独占持有，
// 取消时整体丢弃。
// Snapshot is the parsed in-memory view of one slot, owned exclusively by the
// active editing session and discarded wholesale on cancel.
type Snapshot struct {
	SlotPath      string
	Organisation  string
	GameVersion   string
	CreationDate  string
	Money         MoneyInfo
	Rank          RankInfo
	Properties    []PropertyItem
	PropertyTypes []string
	NPCs          []NPCRecord
	Variables     []Variable
}
