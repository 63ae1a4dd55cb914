package backup

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// Ledger 基于 SQLite (WAL 模式) 的备份台账
// Ledger records backup history in SQLite with WAL mode.
type Ledger struct {
	db   *sql.DB
	path string
}

// OpenLedger 打开（必要时创建）台账数据库
// OpenLedger opens the ledger database, creating it when needed.
func OpenLedger(dbPath string) (*Ledger, error) {
	dbPath = strings.TrimSpace(dbPath)
	if dbPath == "" {
		return nil, fmt.Errorf("ledger db path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("exec %q: %w", p, err)
		}
	}

	ledger := &Ledger{db: db, path: dbPath}
	if err := ledger.ensureSchema(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	return ledger, nil
}

func (l *Ledger) ensureSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS backups (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		feature    TEXT NOT NULL,
		stamp      TEXT NOT NULL,
		files      INTEGER NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_backups_feature ON backups(feature, stamp);
	`
	_, err := l.db.Exec(schema)
	return err
}

// Close 关闭数据库连接 / Close the database connection.
func (l *Ledger) Close() error {
	if l.db == nil {
		return nil
	}
	return l.db.Close()
}

// Record 追加一条备份记录 / Record appends one backup row.
func (l *Ledger) Record(entry Entry) error {
	if strings.TrimSpace(entry.CreatedAt) == "" {
		entry.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	}
	_, err := l.db.Exec(`
		INSERT INTO backups (feature, stamp, files, created_at)
		VALUES (?, ?, ?, ?)`,
		entry.Feature, entry.Stamp, entry.Files, entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert backup row: %w", err)
	}
	return nil
}

// List 返回全部记录，新的在前 / List returns every row, newest first.
func (l *Ledger) List() ([]Entry, error) {
	rows, err := l.db.Query(`
		SELECT feature, stamp, files, created_at
		FROM backups ORDER BY stamp DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("query backups: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var entry Entry
		if err := rows.Scan(&entry.Feature, &entry.Stamp, &entry.Files, &entry.CreatedAt); err != nil {
			continue
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}
