package gamefile

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

// ParseError 表示某个存档文件无法读取或解析
// ParseError reports a save file that could not be read or parsed
type ParseError struct {
	File  string
	Field string
	Err   error
}

func (e *ParseError) Error() string {
	if strings.TrimSpace(e.Field) != "" {
		return fmt.Sprintf("parse %s: field %q: %v", e.File, e.Field, e.Err)
	}
	return fmt.Sprintf("parse %s: %v", e.File, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// LoadMap 读取一个 JSON 存档文件为 map；文件不存在时返回空 map（游戏对缺失文件同样宽容）
// LoadMap reads one JSON save file into a map; a missing file yields an empty
// map, matching how the game itself tolerates absent files.
func LoadMap(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return map[string]any{}, nil
		}
		return nil, &ParseError{File: path, Err: err}
	}

	out := map[string]any{}
	dec := json.NewDecoder(bytes.NewReader(data))
	// 保留数字的原始表示，写回时不丢精度 / Keep original number text so
	// round-tripping large balances loses no precision.
	dec.UseNumber()
	if err := dec.Decode(&out); err != nil {
		return nil, &ParseError{File: path, Err: err}
	}
	return out, nil
}

// LoadFolder 读取目录下所有 *.json；坏文件跳过
// LoadFolder reads every *.json in dir; malformed files are skipped.
func LoadFolder(dir string) ([]map[string]any, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, &ParseError{File: dir, Err: err}
	}

	var out []map[string]any
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		m, err := LoadMap(filepath.Join(dir, entry.Name()))
		if err != nil {
			continue
		}
		out = append(out, m)
	}
	return out, nil
}

// SaveMap 以游戏自身的格式（4 空格缩进）写回文件；同目录临时文件 + rename，
// 避免常见情况下的半写文件。
// SaveMap writes the map back in the game's own format (4-space indent) via a
// same-directory temp file + rename, so the common case never leaves a
// half-written file behind.
func SaveMap(path string, m map[string]any) error {
	data, err := json.MarshalIndent(m, "", "    ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return writeAtomic(path, data)
}

func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create dir %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, ".saveedit-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}

// --- 字段访问辅助 / Field access helpers ---

// Str 取字符串字段；缺失或类型不符返回 fallback
// Str returns a string field, or fallback when absent or mistyped.
func Str(m map[string]any, key, fallback string) string {
	if v, ok := m[key].(string); ok {
		return v
	}
	return fallback
}

// Int 取整数字段；兼容 json.Number 与 float64
// Int returns an integer field, accepting json.Number and float64 encodings.
func Int(m map[string]any, key string, fallback int64) int64 {
	switch v := m[key].(type) {
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return n
		}
		if f, err := v.Float64(); err == nil {
			return int64(f)
		}
	case float64:
		return int64(v)
	case int64:
		return v
	case int:
		return int64(v)
	case string:
		if n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

// Bool 取布尔字段 / Bool returns a boolean field.
func Bool(m map[string]any, key string, fallback bool) bool {
	if v, ok := m[key].(bool); ok {
		return v
	}
	return fallback
}

// Number 把 int64 包装为 json.Number，保持写回文件中的整数字面量
// Number wraps an int64 as json.Number so the written file keeps an integer
// literal.
func Number(n int64) json.Number {
	return json.Number(strconv.FormatInt(n, 10))
}
