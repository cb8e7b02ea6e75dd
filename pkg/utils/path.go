package utils

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/mitchellh/go-homedir"

	"github.com/nodewee/doc-translate/pkg/constants"
)

// Maximum file name length in bytes on common file systems
const maxFileNameBytes = 255

// EnsureDir creates directory if it doesn't exist
func EnsureDir(dirPath string) error {
	if dirPath == "" {
		return fmt.Errorf("directory path cannot be empty")
	}
	return os.MkdirAll(dirPath, constants.DefaultDirPermission)
}

// ExpandPath expands a leading ~ and cleans the path
func ExpandPath(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	expanded, err := homedir.Expand(path)
	if err != nil {
		return "", fmt.Errorf("failed to expand path %q: %w", path, err)
	}
	return filepath.Clean(expanded), nil
}

// IsSubPath reports whether child is parent or lies below it
func IsSubPath(parent, child string) bool {
	rel, err := filepath.Rel(parent, child)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}

// SanitizeFileName turns arbitrary text into a single valid path element
func SanitizeFileName(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r == '/' || r == '\\' || r == 0:
			b.WriteRune('_')
		case constants.IsWindows() && strings.ContainsRune(`<>:"|?*`, r):
			b.WriteRune('_')
		case unicode.IsControl(r):
			b.WriteRune(' ')
		default:
			b.WriteRune(r)
		}
	}

	cleaned := strings.Join(strings.Fields(b.String()), " ")
	cleaned = strings.TrimRight(cleaned, ". ")
	if cleaned == "." || cleaned == ".." {
		return ""
	}
	return truncateUTF8(cleaned, maxFileNameBytes)
}

// truncateUTF8 cuts s to at most n bytes without splitting a rune
func truncateUTF8(s string, n int) string {
	if len(s) <= n {
		return s
	}
	cut := 0
	for i := range s {
		if i > n {
			break
		}
		cut = i
	}
	return strings.TrimSpace(s[:cut])
}

// FindExecutable resolves the first usable candidate, trying configured first.
// Candidates may be bare names looked up in PATH or absolute paths with globs.
func FindExecutable(configured string, candidates []string) (string, error) {
	if configured != "" {
		expanded, err := ExpandPath(configured)
		if err != nil {
			return "", err
		}
		if path, err := exec.LookPath(expanded); err == nil {
			return path, nil
		}
		return "", NewNotFoundError(fmt.Sprintf("configured executable not found: %s", configured), nil)
	}

	for _, candidate := range candidates {
		if filepath.IsAbs(candidate) && strings.Contains(candidate, "*") {
			matches, err := filepath.Glob(candidate)
			if err != nil {
				continue
			}
			for _, match := range matches {
				if path, err := exec.LookPath(match); err == nil {
					return path, nil
				}
			}
			continue
		}
		if path, err := exec.LookPath(candidate); err == nil {
			return path, nil
		}
	}

	return "", NewNotFoundError(fmt.Sprintf("none of %v found", candidates), nil)
}

// FirstExistingDir returns the first directory in dirs that exists
func FirstExistingDir(dirs []string) string {
	for _, dir := range dirs {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return dir
		}
	}
	return ""
}
