package backup

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"saveedit/internal/security"
)

// ErrNoBackup 表示请求的功能没有任何备份
// ErrNoBackup means no backup exists for the requested feature.
var ErrNoBackup = errors.New("no backup found")

// IOError 表示备份复制过程中的文件系统失败
// IOError reports a filesystem failure during backup copying.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("backup %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

const (
	initialDir  = "initial"
	featuresDir = "feature_backups"
	ledgerFile  = "backups.db"
	stampLayout = "20060102150405"
)

// Manager 管理一个槽位的备份树：
//
//	<slot>_Backup/initial/              首次加载时的完整副本
//	<slot>_Backup/feature_backups/<feature>/<时间戳>/   每次写前的按功能快照
//	<slot>_Backup/backups.db            sqlite 台账
//
// Manager owns one slot's backup tree:
//
//	<slot>_Backup/initial/              full copy taken on first load
//	<slot>_Backup/feature_backups/<feature>/<stamp>/   pre-write snapshots
//	<slot>_Backup/backups.db            sqlite ledger
type Manager struct {
	slot      string
	backupDir string
	slotRoot  *security.SaveRoot
	now       func() time.Time
}

// NewManager 创建备份管理器；不触盘，目录在首次备份时建立
// NewManager builds the manager; nothing touches disk until the first backup.
func NewManager(slotPath string) (*Manager, error) {
	root, err := security.NewSaveRoot(slotPath)
	if err != nil {
		return nil, err
	}
	return &Manager{
		slot:      root.Root(),
		backupDir: root.Root() + "_Backup",
		slotRoot:  root,
		now:       time.Now,
	}, nil
}

// Dir 返回备份树根 / Dir returns the backup tree root.
func (m *Manager) Dir() string { return m.backupDir }

// HasInitial 报告初始备份是否已存在
// HasInitial reports whether the initial backup exists.
func (m *Manager) HasInitial() bool {
	info, err := os.Stat(filepath.Join(m.backupDir, initialDir))
	return err == nil && info.IsDir()
}

// EnsureInitial 在首次调用时把整个槽位复制到 initial/；此后为幂等空操作。
// 返回本次是否真正创建了备份。
// EnsureInitial copies the whole slot into initial/ the first time it runs and
// is an idempotent no-op afterwards. It reports whether a copy was taken.
func (m *Manager) EnsureInitial() (bool, error) {
	if m.HasInitial() {
		return false, nil
	}
	dest := filepath.Join(m.backupDir, initialDir)
	if err := copyTree(m.slot, dest); err != nil {
		_ = os.RemoveAll(dest)
		return false, err
	}
	m.record(Entry{Feature: initialDir, Stamp: m.now().Format(stampLayout)})
	return true, nil
}

// Snapshot 为一次写操作留底：把给定路径（槽位内的文件或目录）复制到
// feature_backups/<feature>/<时间戳>/，保持槽位内相对结构。返回时间戳。
// Snapshot preserves the given slot paths (files or directories) under
// feature_backups/<feature>/<stamp>/, keeping their slot-relative layout.
// It returns the stamp.
func (m *Manager) Snapshot(feature string, paths []string) (string, error) {
	feature = strings.TrimSpace(feature)
	if feature == "" || feature == initialDir {
		return "", fmt.Errorf("invalid backup feature %q", feature)
	}

	stamp := m.now().Format(stampLayout)
	dest := filepath.Join(m.backupDir, featuresDir, feature, stamp)

	copied := 0
	for _, path := range paths {
		resolved, err := m.slotRoot.Resolve(path)
		if err != nil {
			return "", err
		}
		rel, err := filepath.Rel(m.slot, resolved)
		if err != nil {
			return "", &IOError{Op: "relativize", Path: path, Err: err}
		}

		info, err := os.Stat(resolved)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue // 尚不存在的文件无需留底 / nothing to preserve yet
			}
			return "", &IOError{Op: "stat", Path: resolved, Err: err}
		}
		target := filepath.Join(dest, rel)
		if info.IsDir() {
			if err := copyTree(resolved, target); err != nil {
				return "", err
			}
		} else {
			if err := copyFile(resolved, target); err != nil {
				return "", err
			}
		}
		copied++
	}

	if copied == 0 {
		return "", ErrNoBackup
	}
	m.record(Entry{Feature: feature, Stamp: stamp, Files: copied})
	return stamp, nil
}

// Entry 是一条备份记录 / Entry is one backup record.
type Entry struct {
	Feature   string
	Stamp     string
	Files     int
	CreatedAt string
}

// List 扫描备份树，按功能返回时间戳（新的在前）。文件系统是权威来源，
// 台账只用于补充元数据。
// List scans the backup tree and returns stamps per feature, newest first.
// The filesystem is authoritative; the ledger only adds metadata.
func (m *Manager) List() (map[string][]string, error) {
	featureRoot := filepath.Join(m.backupDir, featuresDir)
	entries, err := os.ReadDir(featureRoot)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return map[string][]string{}, nil
		}
		return nil, &IOError{Op: "list", Path: featureRoot, Err: err}
	}

	out := map[string][]string{}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		stampDirs, err := os.ReadDir(filepath.Join(featureRoot, entry.Name()))
		if err != nil {
			continue
		}
		var stamps []string
		for _, stampDir := range stampDirs {
			if stampDir.IsDir() {
				stamps = append(stamps, stampDir.Name())
			}
		}
		if len(stamps) == 0 {
			continue
		}
		sort.Sort(sort.Reverse(sort.StringSlice(stamps)))
		out[entry.Name()] = stamps
	}
	return out, nil
}

// Restore 把某功能的一份备份复制回槽位；stamp 为空时取最新。
// Restore copies one feature backup back over the slot; an empty stamp picks
// the newest.
func (m *Manager) Restore(feature, stamp string) error {
	featureDir := filepath.Join(m.backupDir, featuresDir, feature)
	if stamp == "" {
		backups, err := m.List()
		if err != nil {
			return err
		}
		stamps := backups[feature]
		if len(stamps) == 0 {
			return ErrNoBackup
		}
		stamp = stamps[0]
	}

	src := filepath.Join(featureDir, stamp)
	if info, err := os.Stat(src); err != nil || !info.IsDir() {
		return ErrNoBackup
	}

	// 先删再拷，避免合并出备份后新增的文件
	// Remove-then-copy so files created after the backup do not survive.
	return filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return &IOError{Op: "walk", Path: path, Err: err}
		}
		rel, relErr := filepath.Rel(src, path)
		if relErr != nil || rel == "." {
			return nil
		}
		live := filepath.Join(m.slot, rel)
		if d.IsDir() {
			// 备份里的顶层目录整体替换 / top-level dirs are replaced wholesale
			if filepath.Dir(rel) == "." {
				if err := os.RemoveAll(live); err != nil {
					return &IOError{Op: "remove", Path: live, Err: err}
				}
				if err := copyTree(path, live); err != nil {
					return err
				}
				return fs.SkipDir
			}
			return nil
		}
		return copyFile(path, live)
	})
}

// RestoreAll 丢弃槽位当前内容，整体回放初始备份
// RestoreAll throws away the slot's current contents and replays the initial
// backup wholesale.
func (m *Manager) RestoreAll() error {
	src := filepath.Join(m.backupDir, initialDir)
	if !m.HasInitial() {
		return ErrNoBackup
	}
	if err := os.RemoveAll(m.slot); err != nil {
		return &IOError{Op: "remove", Path: m.slot, Err: err}
	}
	return copyTree(src, m.slot)
}

// Purge 删除整棵备份树，不可逆
// Purge deletes the whole backup tree. Irreversible.
func (m *Manager) Purge() error {
	if err := os.RemoveAll(m.backupDir); err != nil {
		return &IOError{Op: "purge", Path: m.backupDir, Err: err}
	}
	return nil
}

// record 尽力写台账；台账失败不影响备份本身
// record appends to the ledger best-effort; a ledger failure never fails the
// backup itself.
func (m *Manager) record(entry Entry) {
	ledger, err := OpenLedger(filepath.Join(m.backupDir, ledgerFile))
	if err != nil {
		return
	}
	defer func() { _ = ledger.Close() }()
	_ = ledger.Record(entry)
}

// LedgerEntries 读取全部台账记录，新的在前
// LedgerEntries reads the full ledger, newest first.
func (m *Manager) LedgerEntries() ([]Entry, error) {
	ledger, err := OpenLedger(filepath.Join(m.backupDir, ledgerFile))
	if err != nil {
		return nil, err
	}
	defer func() { _ = ledger.Close() }()
	return ledger.List()
}

// --- 复制辅助 / copy helpers ---

func copyTree(src, dest string) error {
	return filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return &IOError{Op: "walk", Path: path, Err: err}
		}
		rel, relErr := filepath.Rel(src, path)
		if relErr != nil {
			return &IOError{Op: "relativize", Path: path, Err: relErr}
		}
		target := filepath.Join(dest, rel)
		if d.IsDir() {
			if err := os.MkdirAll(target, 0o755); err != nil {
				return &IOError{Op: "mkdir", Path: target, Err: err}
			}
			return nil
		}
		return copyFile(path, target)
	})
}

func copyFile(src, dest string) error {
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return &IOError{Op: "mkdir", Path: filepath.Dir(dest), Err: err}
	}
	in, err := os.Open(src)
	if err != nil {
		return &IOError{Op: "open", Path: src, Err: err}
	}
	defer func() { _ = in.Close() }()

	out, err := os.Create(dest)
	if err != nil {
		return &IOError{Op: "create", Path: dest, Err: err}
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return &IOError{Op: "copy", Path: dest, Err: err}
	}
	if err := out.Close(); err != nil {
		return &IOError{Op: "close", Path: dest, Err: err}
	}
	return nil
}
