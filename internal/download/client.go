package download

import (
	"archive/zip"
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"
)

// Config 控制模板下载行为 / Config controls template downloads.
type Config struct {
	BaseURL       string
	TimeoutSec    int
	MaxSizeMB     int
	SkipTLSVerify bool
}

// Client 从模板仓库拉取解锁用的档案（NPC、物业、商铺、新存档模板与模组 DLL）
// Client pulls unlock archives (NPC, property, business, fresh-save template
// and the mod DLL) from the template repository.
type Client struct {
	cfg  Config
	http *http.Client
}

// NewClient 创建下载客户端 / NewClient builds a download client.
func NewClient(cfg Config) *Client {
	timeout := cfg.TimeoutSec
	if timeout <= 0 {
		timeout = 60
	}
	if cfg.MaxSizeMB <= 0 {
		cfg.MaxSizeMB = 50
	}
	transport := &http.Transport{
		TLSClientConfig: &tls.Config{InsecureSkipVerify: cfg.SkipTLSVerify},
	}
	return &Client{
		cfg: cfg,
		http: &http.Client{
			Transport: transport,
			Timeout:   time.Duration(timeout) * time.Second,
		},
	}
}

// fetch 下载一个文件到内存，带大小上限
// fetch downloads one file into memory with a size cap.
func (c *Client) fetch(ctx context.Context, name string) ([]byte, error) {
	base := strings.TrimRight(strings.TrimSpace(c.cfg.BaseURL), "/")
	if base == "" {
		return nil, fmt.Errorf("download base URL is empty")
	}
	target := base + "/" + url.PathEscape(name)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: unexpected status %d", name, resp.StatusCode)
	}

	maxBytes := int64(c.cfg.MaxSizeMB) * 1024 * 1024
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	if int64(len(data)) > maxBytes {
		return nil, fmt.Errorf("fetch %s: response exceeds %d MB", name, c.cfg.MaxSizeMB)
	}
	return data, nil
}

// InstallMissing 下载 <archive>（zip，顶层目录为去掉 .zip 的同名目录），把其中
// destDir 尚不存在的顶层子目录解压进去。已有子目录原样保留。返回新增的子目录数。
// InstallMissing downloads <archive> (a zip whose top folder matches the
// archive name without .zip) and extracts only the top-level subfolders that
// destDir does not already have. Existing subfolders are left alone. It
// returns the number of subfolders added.
func (c *Client) InstallMissing(ctx context.Context, archive, destDir string) (int, error) {
	data, err := c.fetch(ctx, archive)
	if err != nil {
		return 0, err
	}
	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return 0, fmt.Errorf("open %s: %w", archive, err)
	}

	existing := map[string]bool{}
	if entries, err := os.ReadDir(destDir); err == nil {
		for _, entry := range entries {
			if entry.IsDir() {
				existing[entry.Name()] = true
			}
		}
	}

	stem := strings.TrimSuffix(archive, ".zip")
	added := map[string]bool{}
	for _, file := range reader.File {
		rel, ok := archiveRel(file.Name, stem)
		if !ok || file.FileInfo().IsDir() {
			continue
		}
		top, _, _ := strings.Cut(rel, "/")
		if top == "" || existing[top] {
			continue
		}
		if err := extractFile(file, filepath.Join(destDir, filepath.FromSlash(rel))); err != nil {
			return len(added), err
		}
		added[top] = true
	}
	return len(added), nil
}

// ExtractTo 把 <archive> 的全部内容（剥去顶层目录）解压到 destDir
// ExtractTo unpacks the whole archive, minus its top folder, into destDir.
func (c *Client) ExtractTo(ctx context.Context, archive, destDir string) error {
	data, err := c.fetch(ctx, archive)
	if err != nil {
		return err
	}
	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return fmt.Errorf("open %s: %w", archive, err)
	}

	stem := strings.TrimSuffix(archive, ".zip")
	for _, file := range reader.File {
		rel, ok := archiveRel(file.Name, stem)
		if !ok || file.FileInfo().IsDir() {
			continue
		}
		if err := extractFile(file, filepath.Join(destDir, filepath.FromSlash(rel))); err != nil {
			return err
		}
	}
	return nil
}

// FetchFile 下载单个文件到 destPath（临时文件 + rename）
// FetchFile downloads one file to destPath via temp file + rename.
func (c *Client) FetchFile(ctx context.Context, name, destPath string) error {
	data, err := c.fetch(ctx, name)
	if err != nil {
		return err
	}
	dir := filepath.Dir(destPath)
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
		return fmt.Errorf("write %s: %w", destPath, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, destPath); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("replace %s: %w", destPath, err)
	}
	return nil
}

// archiveRel 返回条目在顶层目录下的相对路径，并拦截 zip-slip
// archiveRel yields the entry path under the top folder and rejects zip-slip.
func archiveRel(name, stem string) (string, bool) {
	clean := path.Clean(strings.ReplaceAll(name, "\\", "/"))
	if strings.HasPrefix(clean, "../") || clean == ".." || path.IsAbs(clean) {
		return "", false
	}
	rel, ok := strings.CutPrefix(clean, stem+"/")
	if !ok || rel == "" {
		return "", false
	}
	return rel, true
}

func extractFile(file *zip.File, dest string) error {
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("create dir %s: %w", filepath.Dir(dest), err)
	}
	in, err := file.Open()
	if err != nil {
		return fmt.Errorf("open zip entry %s: %w", file.Name, err)
	}
	defer func() { _ = in.Close() }()

	out, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("create %s: %w", dest, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return fmt.Errorf("extract %s: %w", dest, err)
	}
	return out.Close()
}
