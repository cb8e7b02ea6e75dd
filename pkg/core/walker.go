package core

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar"

	"github.com/nodewee/doc-translate/pkg/logger"
	"github.com/nodewee/doc-translate/pkg/types"
	"github.com/nodewee/doc-translate/pkg/utils"
)

// Walker lists the files and directories below a root in lexical order,
// filtered by doublestar include and exclude patterns. Patterns without a
// slash also match the base name at any depth, so "*.pdf" selects every PDF.
// Hidden entries (dot names such as .git) are never listed or descended into.
type Walker struct {
	root     string
	include  []string
	exclude  []string
	skipDirs []string
	logger   *logger.Logger
}

// NewWalker validates the patterns and creates a walker for root
func NewWalker(root string, include, exclude []string, log *logger.Logger) (*Walker, error) {
	for _, pattern := range append(append([]string(nil), include...), exclude...) {
		if err := validatePattern(pattern); err != nil {
			return nil, utils.NewValidationError(fmt.Sprintf("invalid pattern %q", pattern), err)
		}
	}
	return &Walker{root: root, include: include, exclude: exclude, logger: log}, nil
}

// SkipDir excludes a directory and everything below it
func (w *Walker) SkipDir(dir string) {
	w.skipDirs = append(w.skipDirs, filepath.Clean(dir))
}

// Files returns every regular file that passes the filters
func (w *Walker) Files(ctx context.Context) ([]*types.FileInfo, error) {
	var files []*types.FileInfo
	err := w.walk(ctx, func(path, rel string, d fs.DirEntry) error {
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}
		if !w.selected(rel) {
			return nil
		}
		info, err := utils.GetFileInfo(w.root, path)
		if err != nil {
			return utils.WrapError(err, utils.ErrorTypeIO, fmt.Sprintf("failed to inspect %s", rel))
		}
		files = append(files, info)
		return nil
	})
	return files, err
}

// Dirs returns every directory below the root that is not excluded, deepest
// first and lexical within the same depth
func (w *Walker) Dirs(ctx context.Context) ([]string, error) {
	var dirs []string
	err := w.walk(ctx, func(path, rel string, d fs.DirEntry) error {
		if d.IsDir() && !w.excluded(rel) {
			dirs = append(dirs, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(dirs, func(i, j int) bool {
		return depth(dirs[i]) > depth(dirs[j])
	})
	return dirs, nil
}

func (w *Walker) walk(ctx context.Context, visit func(path, rel string, d fs.DirEntry) error) error {
	return filepath.WalkDir(w.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if os.IsPermission(err) {
				w.logger.Warn("Skipping unreadable %s: %v", path, err)
				if d != nil && d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return utils.WrapError(ctxErr, utils.ErrorTypeTimeout, "directory walk cancelled")
		}
		if path == w.root {
			return nil
		}
		if strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			for _, skip := range w.skipDirs {
				if utils.IsSubPath(skip, path) {
					return filepath.SkipDir
				}
			}
		}

		rel, err := filepath.Rel(w.root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() && w.excluded(rel) {
			return filepath.SkipDir
		}
		return visit(path, rel, d)
	})
}

// selected reports whether a file's relative slash path passes the filters
func (w *Walker) selected(rel string) bool {
	if w.excluded(rel) {
		return false
	}
	if len(w.include) == 0 {
		return true
	}
	return matchAny(w.include, rel)
}

func (w *Walker) excluded(rel string) bool {
	return matchAny(w.exclude, rel)
}

func matchAny(patterns []string, rel string) bool {
	base := rel[strings.LastIndex(rel, "/")+1:]
	for _, pattern := range patterns {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
		if !strings.Contains(pattern, "/") {
			if ok, _ := doublestar.Match(pattern, base); ok {
				return true
			}
		}
	}
	return false
}

// validatePattern checks every path component of a doublestar pattern
func validatePattern(pattern string) error {
	if pattern == "" {
		return path.ErrBadPattern
	}
	for _, component := range strings.Split(pattern, "/") {
		if component == "**" {
			continue
		}
		if _, err := path.Match(component, ""); err != nil {
			return err
		}
	}
	return nil
}

func depth(path string) int {
	return strings.Count(filepath.ToSlash(filepath.Clean(path)), "/")
}

// resolveDir returns the absolute path of an existing directory
func resolveDir(dir, role string) (string, error) {
	if dir == "" {
		return "", utils.NewValidationError(role+" directory is required", nil)
	}
	expanded, err := utils.ExpandPath(dir)
	if err != nil {
		return "", utils.NewValidationError(fmt.Sprintf("invalid %s directory", role), err)
	}
	abs, err := filepath.Abs(expanded)
	if err != nil {
		return "", utils.NewValidationError(fmt.Sprintf("invalid %s directory", role), err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return "", utils.NewNotFoundError(fmt.Sprintf("%s directory not found: %s", role, dir), err)
		}
		return "", utils.WrapError(err, "", fmt.Sprintf("cannot access %s directory", role))
	}
	if !info.IsDir() {
		return "", utils.NewValidationError(fmt.Sprintf("%s is not a directory: %s", role, dir), nil)
	}
	return abs, nil
}
