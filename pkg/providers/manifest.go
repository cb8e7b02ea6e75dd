package providers

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/nodewee/doc-translate/pkg/constants"
	"github.com/nodewee/doc-translate/pkg/types"
	"github.com/nodewee/doc-translate/pkg/utils"
)

// pageManifest records how many pages a rendered PDF had, so a later run
// can tell whether all page outputs exist without rendering it again
type pageManifest struct {
	Source   string `yaml:"source"`
	Size     int64  `yaml:"size"`
	Modified int64  `yaml:"modified"`
	Pages    int    `yaml:"pages"`
}

func manifestPath(outDir, stem string) string {
	return filepath.Join(outDir, fmt.Sprintf(constants.PDFManifestPattern, stem))
}

// readPageCount returns the recorded page count, or 0 when there is no
// manifest or the source changed since it was written
func readPageCount(path string, info *types.FileInfo) int {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0
	}
	var manifest pageManifest
	if err := yaml.Unmarshal(data, &manifest); err != nil {
		return 0
	}
	if manifest.Size != info.Size || manifest.Modified != info.ModTime.UnixNano() {
		return 0
	}
	return manifest.Pages
}

func writePageCount(path string, info *types.FileInfo, pages int) error {
	data, err := yaml.Marshal(&pageManifest{
		Source:   info.Name,
		Size:     info.Size,
		Modified: info.ModTime.UnixNano(),
		Pages:    pages,
	})
	if err != nil {
		return utils.NewError(utils.ErrorTypeSystem, "failed to encode page manifest", err)
	}
	return utils.WriteFileAtomic(path, data)
}
