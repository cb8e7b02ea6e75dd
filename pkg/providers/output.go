package providers

import (
	"path/filepath"
	"strings"

	"github.com/nodewee/doc-translate/pkg/constants"
	"github.com/nodewee/doc-translate/pkg/types"
	"github.com/nodewee/doc-translate/pkg/utils"
)

// outputDirFor mirrors the file's sub-directory below the destination root
func outputDirFor(job *types.Job) string {
	return filepath.Join(job.OutputDir, filepath.Dir(job.Info.RelPath))
}

// textOutputPath names the translated text of a single-output file: the
// full input name plus .txt
func textOutputPath(job *types.Job) string {
	return filepath.Join(outputDirFor(job), job.Info.Name+constants.TranslatedTextExtension)
}

// allExist reports whether every path exists
func allExist(paths ...string) bool {
	for _, path := range paths {
		if !utils.FileExists(path) {
			return false
		}
	}
	return len(paths) > 0
}

// writeOutput creates the parent directory and writes text atomically
func writeOutput(path, text string) error {
	if err := utils.EnsureDir(filepath.Dir(path)); err != nil {
		return utils.WrapError(err, utils.ErrorTypeIO, "failed to create output directory")
	}
	if err := utils.WriteFileAtomic(path, []byte(text)); err != nil {
		return utils.WrapError(err, utils.ErrorTypeIO, "failed to write output")
	}
	return nil
}

// lowerStem returns the lower-cased file name without its extension
func lowerStem(name string) string {
	lower := strings.ToLower(name)
	return strings.TrimSuffix(lower, filepath.Ext(lower))
}

// supportsExtension reports whether the file's extension is in exts
func supportsExtension(fileInfo *types.FileInfo, exts ...string) bool {
	for _, ext := range exts {
		if fileInfo.Extension == ext {
			return true
		}
	}
	return false
}
