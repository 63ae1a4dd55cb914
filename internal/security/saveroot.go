package security

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var ErrPathOutsideSaves = errors.New("path outside save tree")

// SaveRoot confines all editor writes to one save tree. Every path the
// writer or backup manager touches is resolved through it, so a crafted
// property-type name or backup label can never escape the save directory.
type SaveRoot struct {
	root string
}

func NewSaveRoot(root string) (*SaveRoot, error) {
	if strings.TrimSpace(root) == "" {
		return nil, errors.New("save root is empty")
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("abs save root: %w", err)
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		// A fresh save dir may not exist yet; keep the abs path.
		resolved = abs
	}
	return &SaveRoot{root: resolved}, nil
}

func (s *SaveRoot) Root() string {
	return s.root
}

func (s *SaveRoot) Resolve(path string) (string, error) {
	target := path
	if strings.TrimSpace(target) == "" {
		target = s.root
	}

	if !filepath.IsAbs(target) {
		target = filepath.Join(s.root, target)
	}

	clean := filepath.Clean(target)
	resolved, err := resolveWithParentSymlink(clean)
	if err != nil {
		return "", err
	}

	rel, err := filepath.Rel(s.root, resolved)
	if err != nil {
		return "", fmt.Errorf("relative path check: %w", err)
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(os.PathSeparator)) {
		return "", ErrPathOutsideSaves
	}
	return resolved, nil
}

func resolveWithParentSymlink(path string) (string, error) {
	resolved, err := filepath.EvalSymlinks(path)
	if err == nil {
		return resolved, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("resolve symlink: %w", err)
	}

	parent := filepath.Dir(path)
	base := filepath.Base(path)
	parentResolved, perr := filepath.EvalSymlinks(parent)
	if perr != nil {
		if errors.Is(perr, os.ErrNotExist) {
			parentResolved = parent
		} else {
			return "", fmt.Errorf("resolve parent symlink: %w", perr)
		}
	}
	return filepath.Join(parentResolved, base), nil
}
