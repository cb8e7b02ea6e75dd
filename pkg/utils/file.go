package utils

import (
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/nodewee/doc-translate/pkg/constants"
	"github.com/nodewee/doc-translate/pkg/types"
)

var (
	imageExtensions = toSet(constants.ImageExtensions)
	textExtensions  = toSet(constants.TextExtensions)
	htmlExtensions  = toSet(constants.HTMLExtensions)
)

// GetFileInfo collects information about a file below root
func GetFileInfo(root, filePath string) (*types.FileInfo, error) {
	stat, err := os.Stat(filePath)
	if err != nil {
		return nil, fmt.Errorf("error getting file stats: %w", err)
	}
	if stat.IsDir() {
		return nil, fmt.Errorf("%s is a directory", filePath)
	}

	relPath, err := filepath.Rel(root, filePath)
	if err != nil {
		return nil, fmt.Errorf("error resolving relative path: %w", err)
	}

	extension := FileExtension(filePath)

	mimeType, err := detectMimeType(filePath, extension)
	if err != nil {
		return nil, fmt.Errorf("error getting MIME type: %w", err)
	}

	return &types.FileInfo{
		Path:      filePath,
		RelPath:   relPath,
		Name:      filepath.Base(filePath),
		Extension: extension,
		MimeType:  mimeType,
		Size:      stat.Size(),
		ModTime:   stat.ModTime(),
		MediaType: determineMediaType(extension, mimeType),
	}, nil
}

// FileExtension returns the lower-case extension without the dot
func FileExtension(path string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
}

// IsImageFile determines if an extension is a supported image format
func IsImageFile(extension string) bool {
	return imageExtensions[strings.ToLower(extension)]
}

// IsTextFile determines if an extension is a plain text format
func IsTextFile(extension string) bool {
	return textExtensions[strings.ToLower(extension)]
}

// IsHTMLFile determines if an extension is an HTML document
func IsHTMLFile(extension string) bool {
	return htmlExtensions[strings.ToLower(extension)]
}

// detectMimeType prefers the extension table and falls back to content sniffing
func detectMimeType(filePath, extension string) (string, error) {
	if extension != "" {
		if byExt := mime.TypeByExtension("." + extension); byExt != "" {
			return byExt, nil
		}
	}

	file, err := os.Open(filePath)
	if err != nil {
		return "", err
	}
	defer file.Close()

	head := make([]byte, 512)
	n, err := io.ReadFull(file, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return "", err
	}
	return http.DetectContentType(head[:n]), nil
}

func determineMediaType(extension, mimeType string) types.MediaType {
	switch {
	case IsImageFile(extension) || strings.HasPrefix(mimeType, "image/"):
		return types.ImageMediaType
	case IsTextFile(extension) || IsHTMLFile(extension):
		return types.TextMediaType
	case extension == "pdf" || extension == "docx":
		return types.DocumentMediaType
	case strings.HasPrefix(mimeType, "text/"):
		return types.TextMediaType
	default:
		return types.OtherMediaType
	}
}

// WriteFileAtomic writes data to a temp file next to path and renames it into place
func WriteFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := EnsureDir(dir); err != nil {
		return NewIOError("failed to create output directory", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return NewIOError("failed to create temporary file", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return NewIOError("failed to write temporary file", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return NewIOError("failed to close temporary file", err)
	}
	if err := os.Chmod(tmpName, constants.DefaultFilePermission); err != nil {
		os.Remove(tmpName)
		return NewIOError("failed to set file permissions", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return NewIOError(fmt.Sprintf("failed to move output into place: %s", path), err)
	}
	return nil
}

// FileExists reports whether path exists and is a regular file
func FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

func toSet(values []string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return set
}
