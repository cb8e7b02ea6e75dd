package core

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/hashicorp/go-multierror"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/unicode/norm"

	"github.com/nodewee/doc-translate/pkg/config"
	"github.com/nodewee/doc-translate/pkg/constants"
	"github.com/nodewee/doc-translate/pkg/interfaces"
	"github.com/nodewee/doc-translate/pkg/logger"
	"github.com/nodewee/doc-translate/pkg/types"
	"github.com/nodewee/doc-translate/pkg/utils"
)

const maxNameBytes = 255

// RenameReport summarizes a filenames run
type RenameReport struct {
	Planned   int
	Renamed   int
	Unchanged int
	Failed    int
	Plans     []types.RenamePlan
}

// FilenameTranslator renames files (and optionally directories) in place
// to the translation of their names
type FilenameTranslator struct {
	config     *config.Config
	translator interfaces.Translator
	logger     *logger.Logger
	out        io.Writer
}

// NewFilenameTranslator creates a renamer printing "old -> new" lines to out
func NewFilenameTranslator(cfg *config.Config, translator interfaces.Translator, log *logger.Logger, out io.Writer) *FilenameTranslator {
	return &FilenameTranslator{config: cfg, translator: translator, logger: log, out: out}
}

// entry is a file or directory whose name may be translated
type entry struct {
	path  string
	isDir bool
	stem  string
	ext   string
	err   error
	trans string
}

// Run plans and applies the renames below sourceDir. With DryRun set the
// plan is printed but nothing is renamed.
func (t *FilenameTranslator) Run(ctx context.Context, sourceDir string) (*RenameReport, error) {
	report, err := t.Plan(ctx, sourceDir)
	if err != nil {
		return nil, err
	}

	var errs *multierror.Error
	for _, plan := range report.Plans {
		fmt.Fprintf(t.out, "%s -> %s\n", plan.OldPath, plan.NewPath)
		if t.config.DryRun {
			continue
		}
		if err := ctx.Err(); err != nil {
			return report, utils.WrapError(err, utils.ErrorTypeTimeout, "renaming interrupted")
		}
		if err := renameNoClobber(plan.OldPath, plan.NewPath); err != nil {
			report.Failed++
			t.logger.Error("Failed to rename %s: %v", plan.OldPath, err)
			errs = multierror.Append(errs, err)
			continue
		}
		report.Renamed++
	}
	return report, errs.ErrorOrNil()
}

// Plan translates every selected name and returns the renames to apply, in
// order: files first, then directories deepest first
func (t *FilenameTranslator) Plan(ctx context.Context, sourceDir string) (*RenameReport, error) {
	root, err := resolveDir(sourceDir, "source")
	if err != nil {
		return nil, err
	}

	walker, err := NewWalker(root, t.config.Include, t.config.Exclude, t.logger)
	if err != nil {
		return nil, err
	}

	files, err := walker.Files(ctx)
	if err != nil {
		return nil, utils.WrapError(err, "", "failed to list source files")
	}

	var entries []*entry
	for _, info := range files {
		stem, ext := SplitName(info.Name)
		entries = append(entries, &entry{path: info.Path, stem: stem, ext: ext})
	}
	if t.config.RenameDirs {
		dirs, err := walker.Dirs(ctx)
		if err != nil {
			return nil, utils.WrapError(err, "", "failed to list source directories")
		}
		for _, dir := range dirs {
			entries = append(entries, &entry{path: dir, isDir: true, stem: filepath.Base(dir)})
		}
	}

	if err := t.translateNames(ctx, entries); err != nil {
		return nil, err
	}

	report := &RenameReport{}
	taken := newNameIndex()
	for _, e := range entries {
		if e.err != nil {
			report.Failed++
			t.logger.Warn("Could not translate name of %s: %v", e.path, e.err)
			continue
		}

		newStem := cleanStem(e.trans)
		if newStem == "" || newStem == e.stem {
			report.Unchanged++
			continue
		}

		dir := filepath.Dir(e.path)
		oldName := filepath.Base(e.path)
		newName, err := taken.reserve(dir, oldName, newStem, e.ext)
		if err != nil {
			report.Failed++
			t.logger.Warn("Cannot rename %s: %v", e.path, err)
			continue
		}
		if newName == oldName {
			report.Unchanged++
			continue
		}

		rel, _ := filepath.Rel(root, e.path)
		report.Plans = append(report.Plans, types.RenamePlan{
			OldPath: e.path,
			NewPath: filepath.Join(dir, newName),
			IsDir:   e.isDir,
			Depth:   strings.Count(filepath.ToSlash(rel), "/"),
		})
	}
	report.Planned = len(report.Plans)
	return report, nil
}

// translateNames translates all stems concurrently, recording per-entry
// failures instead of aborting
func (t *FilenameTranslator) translateNames(ctx context.Context, entries []*entry) error {
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(max(t.config.MaxConcurrency, 1))

	for _, e := range entries {
		if strings.TrimSpace(e.stem) == "" {
			e.trans = e.stem
			continue
		}
		group.Go(func() error {
			translated, err := t.translator.Translate(groupCtx, e.stem)
			if err != nil {
				if ctxErr := groupCtx.Err(); ctxErr != nil {
					return utils.WrapError(ctxErr, utils.ErrorTypeTimeout, "name translation cancelled")
				}
				e.err = err
				return nil
			}
			e.trans = translated
			return nil
		})
	}
	return group.Wait()
}

// SplitName splits a file name into stem and extension, keeping compound
// extensions such as .tar.gz whole. Dot files have no stem.
func SplitName(name string) (string, string) {
	lower := strings.ToLower(name)
	for _, compound := range constants.CompoundExtensions {
		if strings.HasSuffix(lower, compound) && len(name) > len(compound) {
			cut := len(name) - len(compound)
			return name[:cut], name[cut:]
		}
	}

	ext := filepath.Ext(name)
	if ext == name {
		return "", name
	}
	return strings.TrimSuffix(name, ext), ext
}

// cleanStem normalizes a translated name into a usable file name stem
func cleanStem(translated string) string {
	return utils.SanitizeFileName(norm.NFC.String(translated))
}

// nameIndex tracks the names in use per directory, case-insensitively so
// that renames are also safe on case-insensitive file systems
type nameIndex struct {
	mu   sync.Mutex
	dirs map[string]map[string]bool
}

func newNameIndex() *nameIndex {
	return &nameIndex{dirs: make(map[string]map[string]bool)}
}

func (n *nameIndex) names(dir string) (map[string]bool, error) {
	if names, ok := n.dirs[dir]; ok {
		return names, nil
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, utils.WrapError(err, utils.ErrorTypeIO, "failed to read directory")
	}
	names := make(map[string]bool, len(entries))
	for _, entry := range entries {
		names[strings.ToLower(entry.Name())] = true
	}
	n.dirs[dir] = names
	return names, nil
}

// reserve picks a free name for stem+ext in dir, appending " (n)" on
// collision, and moves oldName's reservation to it
func (n *nameIndex) reserve(dir, oldName, stem, ext string) (string, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	names, err := n.names(dir)
	if err != nil {
		return "", err
	}

	oldKey := strings.ToLower(oldName)
	for i := 0; ; i++ {
		candidate := fitName(stem, ext, i)
		key := strings.ToLower(candidate)
		if key == oldKey || !names[key] {
			delete(names, oldKey)
			names[key] = true
			return candidate, nil
		}
		if i > 9999 {
			return "", utils.NewValidationError(fmt.Sprintf("no free name for %q", stem+ext), nil)
		}
	}
}

// fitName builds "stem (n).ext", shortening the stem to keep the whole name
// within the file system limit
func fitName(stem, ext string, n int) string {
	suffix := ext
	if n > 0 {
		suffix = fmt.Sprintf(" (%d)%s", n, ext)
	}
	limit := maxNameBytes - len(suffix)
	if len(stem) > limit {
		cut := 0
		for i := range stem {
			if i > limit {
				break
			}
			cut = i
		}
		stem = strings.TrimSpace(stem[:cut])
	}
	return stem + suffix
}

// renameNoClobber renames oldPath unless newPath already exists. A target
// that differs only in case from the source is the same entry.
func renameNoClobber(oldPath, newPath string) error {
	if _, err := os.Lstat(newPath); err == nil && !strings.EqualFold(oldPath, newPath) {
		return utils.NewValidationError(fmt.Sprintf("target already exists: %s", newPath), nil)
	}
	if err := os.Rename(oldPath, newPath); err != nil {
		return utils.WrapError(err, utils.ErrorTypeIO, "rename failed")
	}
	return nil
}

// Print logs the rename totals
func (r *RenameReport) Print(log *logger.Logger, dryRun bool) {
	if dryRun {
		log.ProgressAlways("📊", "Dry run: %d renames planned, %d unchanged, %d failed", r.Planned, r.Unchanged, r.Failed)
		return
	}
	log.ProgressAlways("📊", "Renamed %d of %d, %d unchanged, %d failed", r.Renamed, r.Planned, r.Unchanged, r.Failed)
}
