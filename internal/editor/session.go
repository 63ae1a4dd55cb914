package editor

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"saveedit/internal/backup"
	"saveedit/internal/defaults"
	"saveedit/internal/download"
	"saveedit/internal/save"
)

// 功能备份的标签；Restore 按标签回滚
// Feature backup tags; Restore rolls back per tag.
const (
	FeatureStats     = "stats"
	FeatureProperty  = "properties"
	FeatureProducts  = "products"
	FeatureNPCs      = "npcs"
	FeatureQuests    = "quests"
	FeatureVariables = "variables"
	FeatureUnlocks   = "unlocks"
)

// Session 是一个槽位的编辑会话：校验 → 写前按功能留底 → 落盘。
// 初始备份在创建会话时保证存在。
// Session is one slot's editing session: validate, take a pre-write feature
// backup, then write. The initial backup is guaranteed when the session opens.
type Session struct {
	slot      string
	writer    *save.Writer
	backups   *backup.Manager
	downloads *download.Client
}

// NewSession 打开槽位编辑会话并确保初始备份存在
// NewSession opens a slot for editing and ensures the initial backup exists.
func NewSession(slotPath string, downloads *download.Client) (*Session, error) {
	writer, err := save.NewWriter(slotPath)
	if err != nil {
		return nil, err
	}
	backups, err := backup.NewManager(slotPath)
	if err != nil {
		return nil, err
	}
	if _, err := backups.EnsureInitial(); err != nil {
		return nil, fmt.Errorf("initial backup: %w", err)
	}
	return &Session{
		slot:      writer.Slot(),
		writer:    writer,
		backups:   backups,
		downloads: downloads,
	}, nil
}

// Slot 返回槽位路径 / Slot returns the slot path.
func (s *Session) Slot() string { return s.slot }

// Reload 重新解析槽位 / Reload re-parses the slot from disk.
func (s *Session) Reload() (*save.Snapshot, error) {
	return save.Parse(s.slot)
}

func (s *Session) preserve(feature string, paths []string) error {
	_, err := s.backups.Snapshot(feature, paths)
	if err != nil && !errors.Is(err, backup.ErrNoBackup) {
		return fmt.Errorf("backup %s: %w", feature, err)
	}
	return nil
}

// StatsEdit 汇总统计页的全部改动，Apply 时整批校验、整批写回
// StatsEdit stages the stats page edits; Apply validates and writes the batch.
type StatsEdit struct {
	Money        save.MoneyInfo
	Rank         save.RankInfo
	Organisation string
}

// Validate 校验整批字段，返回第一个被拒绝的
// Validate checks the whole batch and returns the first rejection.
func (e StatsEdit) Validate() error {
	if err := MoneyAmount("online balance", e.Money.OnlineBalance); err != nil {
		return err
	}
	if err := MoneyAmount("networth", e.Money.Networth); err != nil {
		return err
	}
	if err := MoneyAmount("lifetime earnings", e.Money.LifetimeEarnings); err != nil {
		return err
	}
	if err := MoneyAmount("weekly deposit sum", e.Money.WeeklyDepositSum); err != nil {
		return err
	}
	if err := RankName(e.Rank.CurrentRank); err != nil {
		return err
	}
	if err := RankValue("rank number", e.Rank.Rank); err != nil {
		return err
	}
	if err := RankValue("tier", e.Rank.Tier); err != nil {
		return err
	}
	return OrganisationName(e.Organisation)
}

// ApplyStats 校验并写回统计页改动
// ApplyStats validates and writes the stats page edits.
func (s *Session) ApplyStats(edit StatsEdit) error {
	if err := edit.Validate(); err != nil {
		return err
	}
	if err := s.preserve(FeatureStats, []string{"Money.json", "Rank.json", "Game.json"}); err != nil {
		return err
	}
	if err := s.writer.SetMoney(edit.Money); err != nil {
		return err
	}
	if err := s.writer.SetRank(edit.Rank); err != nil {
		return err
	}
	return s.writer.SetOrganisationName(edit.Organisation)
}

// PropertyEdit 是物业批量更新的参数
// PropertyEdit parameterizes a bulk property update.
type PropertyEdit struct {
	Type      string // property folder name, or "all"
	Quantity  int64
	Quality   string
	Packaging string
	Filter    string
}

// Validate 校验批量更新参数 / Validate checks the bulk update parameters.
func (e PropertyEdit) Validate() error {
	if err := Quantity(e.Quantity); err != nil {
		return err
	}
	if err := Quality(e.Quality); err != nil {
		return err
	}
	if err := Packaging(e.Packaging); err != nil {
		return err
	}
	return ItemFilter(e.Filter)
}

// ApplyProperties 批量更新物业物品，返回改写的文件数
// ApplyProperties bulk-updates property items and returns the number of files
// rewritten.
func (s *Session) ApplyProperties(edit PropertyEdit) (int, error) {
	if err := edit.Validate(); err != nil {
		return 0, err
	}
	if err := s.preserve(FeatureProperty, []string{"Properties"}); err != nil {
		return 0, err
	}
	return s.writer.UpdateProperties(edit.Type, edit.Quantity, edit.Packaging, edit.Filter, edit.Quality)
}

// CompleteQuests 完成全部任务与目标 / CompleteQuests finishes every quest and
// objective. It returns (quests, objectives).
func (s *Session) CompleteQuests() (int, int, error) {
	if err := s.preserve(FeatureQuests, []string{"Quests"}); err != nil {
		return 0, 0, err
	}
	return s.writer.CompleteQuests()
}

// ModifyVariables 翻转全部变量 / ModifyVariables flips every variable file.
func (s *Session) ModifyVariables() (int, error) {
	if err := s.preserve(FeatureVariables, []string{"Variables", "Players"}); err != nil {
		return 0, err
	}
	return s.writer.ModifyVariables()
}

// RecruitDealers 招募全部经销商 / RecruitDealers recruits every dealer.
func (s *Session) RecruitDealers() (int, error) {
	if err := s.preserve(FeatureNPCs, []string{"NPCs"}); err != nil {
		return 0, err
	}
	return s.writer.RecruitDealers()
}

// ImportNPCLog 解析模组日志并生成对应的 NPC 文件，返回生成数
// ImportNPCLog parses a mod log and generates the matching NPC files.
func (s *Session) ImportNPCLog(logText string) (int, error) {
	entries := ParseNPCLog(logText)
	if len(entries) == 0 {
		return 0, &ValidationError{Field: "npc log", Reason: "no NPC lines found"}
	}
	if err := s.preserve(FeatureNPCs, []string{"NPCs"}); err != nil {
		return 0, err
	}
	return s.writer.GenerateNPCFiles(entries)
}

// UnlockRankProgress 把段位与层级提到 999
// UnlockRankProgress pushes rank and tier to 999.
func (s *Session) UnlockRankProgress() error {
	if err := s.preserve(FeatureUnlocks, []string{"Rank.json"}); err != nil {
		return err
	}
	return s.writer.UnlockRankProgress()
}

// UnlockOwnership 解锁全部物业或商铺：先从模板库补齐缺失目录，再强制
// 所有权。kind 为 "Properties" 或 "Businesses"。
// UnlockOwnership unlocks every property or business: missing type folders
// come from the template repository first, then ownership is forced. kind is
// "Properties" or "Businesses".
func (s *Session) UnlockOwnership(ctx context.Context, kind string) (int, error) {
	if kind != "Properties" && kind != "Businesses" {
		return 0, &ValidationError{Field: "kind", Reason: fmt.Sprintf("unknown ownership kind %q", kind)}
	}
	if err := s.preserve(FeatureUnlocks, []string{kind}); err != nil {
		return 0, err
	}
	if s.downloads != nil {
		if _, err := s.downloads.InstallMissing(ctx, kind+".zip", filepath.Join(s.slot, kind)); err != nil {
			return 0, fmt.Errorf("install %s templates: %w", kind, err)
		}
	}
	return s.writer.ForceOwnership(kind)
}

// UnlockNPCs 解锁全部 NPC 关系：补齐缺失 NPC 目录后拉满关系并招募经销商
// UnlockNPCs unlocks every NPC relationship: missing NPC folders come from
// the template repository, then relationships are maxed and dealers recruited.
func (s *Session) UnlockNPCs(ctx context.Context) (int, error) {
	if err := s.preserve(FeatureNPCs, []string{"NPCs"}); err != nil {
		return 0, err
	}
	if s.downloads != nil {
		if _, err := s.downloads.InstallMissing(ctx, "NPCs.zip", filepath.Join(s.slot, "NPCs")); err != nil {
			return 0, fmt.Errorf("install NPC templates: %w", err)
		}
	}
	return s.writer.UnlockRelationships()
}

// DiscoverProducts 标记内置产品为已发现
// DiscoverProducts marks built-in products as discovered.
func (s *Session) DiscoverProducts(ids []string) (int, error) {
	for _, id := range ids {
		if !inSet(id, defaults.BuiltinProducts) {
			return 0, &ValidationError{Field: "product", Reason: fmt.Sprintf("unknown built-in product %q", id)}
		}
	}
	if err := s.preserve(FeatureProducts, []string{"Products"}); err != nil {
		return 0, err
	}
	return s.writer.AddDiscoveredProducts(ids)
}

// UndiscoverProducts 撤销产品发现 / UndiscoverProducts un-discovers products.
func (s *Session) UndiscoverProducts(ids []string) ([]string, error) {
	if err := s.preserve(FeatureProducts, []string{"Products"}); err != nil {
		return nil, err
	}
	return s.writer.RemoveDiscoveredProducts(ids)
}

// GenerateProducts 生成随机产品 / GenerateProducts creates random products.
func (s *Session) GenerateProducts(count, idLength int, price int64, addToListed bool) ([]string, error) {
	if err := ProductParams(count, idLength, price); err != nil {
		return nil, err
	}
	if err := s.preserve(FeatureProducts, []string{"Products"}); err != nil {
		return nil, err
	}
	return s.writer.GenerateProducts(count, idLength, price, addToListed)
}

// ResetGeneratedProducts 删除全部生成的产品
// ResetGeneratedProducts removes every generated product.
func (s *Session) ResetGeneratedProducts() (int, error) {
	if err := s.preserve(FeatureProducts, []string{"Products"}); err != nil {
		return 0, err
	}
	return s.writer.DeleteGeneratedProducts()
}

// --- 备份入口 / backup surface ---

// Backups 按功能列出备份时间戳（新的在前）
// Backups lists backup stamps per feature, newest first.
func (s *Session) Backups() (map[string][]string, error) {
	return s.backups.List()
}

// Restore 回滚某功能到指定（或最新）备份
// Restore rolls one feature back to the given (or newest) backup.
func (s *Session) Restore(feature, stamp string) error {
	return s.backups.Restore(feature, stamp)
}

// RestoreAll 整体回放初始备份 / RestoreAll replays the initial backup.
func (s *Session) RestoreAll() error {
	return s.backups.RestoreAll()
}

// PurgeBackups 删除槽位的整棵备份树
// PurgeBackups deletes the slot's whole backup tree.
func (s *Session) PurgeBackups() error {
	return s.backups.Purge()
}
