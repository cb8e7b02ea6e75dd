package constants

import (
	"runtime"
)

// PlatformConfig lists where external tools are usually installed
type PlatformConfig struct {
	GhostscriptPaths []string
	TesseractPaths   []string
	TessdataDirs     []string
	TempDirPrefix    string
}

// GetPlatformConfig returns platform-specific tool locations
func GetPlatformConfig() *PlatformConfig {
	switch runtime.GOOS {
	case "windows":
		return &PlatformConfig{
			GhostscriptPaths: []string{
				"gswin64c.exe",
				"gswin32c.exe",
				"gs.exe",
				"C:\\Program Files\\gs\\gs*\\bin\\gswin64c.exe",
				"C:\\Program Files (x86)\\gs\\gs*\\bin\\gswin32c.exe",
			},
			TesseractPaths: []string{
				"tesseract.exe",
				"C:\\Program Files\\Tesseract-OCR\\tesseract.exe",
				"C:\\Program Files (x86)\\Tesseract-OCR\\tesseract.exe",
			},
			TessdataDirs: []string{
				"C:\\Program Files\\Tesseract-OCR\\tessdata",
			},
			TempDirPrefix: "doc-translate-",
		}
	case "darwin":
		return &PlatformConfig{
			GhostscriptPaths: []string{
				"gs",
				"/opt/homebrew/bin/gs",
				"/usr/local/bin/gs",
			},
			TesseractPaths: []string{
				"tesseract",
				"/opt/homebrew/bin/tesseract",
				"/usr/local/bin/tesseract",
			},
			TessdataDirs: []string{
				"/opt/homebrew/share/tessdata",
				"/usr/local/share/tessdata",
			},
			TempDirPrefix: "doc-translate-",
		}
	default: // Linux and other Unix-like systems
		return &PlatformConfig{
			GhostscriptPaths: []string{
				"gs",
				"/usr/bin/gs",
				"/usr/local/bin/gs",
			},
			TesseractPaths: []string{
				"tesseract",
				"/usr/bin/tesseract",
				"/usr/local/bin/tesseract",
			},
			TessdataDirs: []string{
				"/usr/share/tesseract-ocr/5/tessdata",
				"/usr/share/tesseract-ocr/4.00/tessdata",
				"/usr/share/tessdata",
				"/usr/local/share/tessdata",
			},
			TempDirPrefix: "doc-translate-",
		}
	}
}

// IsWindows returns true if running on Windows
func IsWindows() bool {
	return runtime.GOOS == "windows"
}
