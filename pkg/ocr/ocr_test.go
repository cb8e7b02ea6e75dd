package ocr

import (
	"context"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nodewee/doc-translate/pkg/logger"
	"github.com/nodewee/doc-translate/pkg/utils"
)

// writeScript writes an executable shell script standing in for an external tool
func writeScript(t *testing.T, name, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell scripts are not executable on windows")
	}
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0755))
	return path
}

func TestTesseractLanguage(t *testing.T) {
	tests := map[string]string{
		"ru":          "rus",
		"en":          "eng",
		"de":          "deu",
		"zh":          "chi_sim",
		"zh-Hant":     "chi_tra",
		"ru+en":       "rus+eng",
		"rus":         "rus",
		"chi_sim":     "chi_sim",
		"rus+chi_sim": "rus+chi_sim",
	}
	for in, want := range tests {
		assert.Equal(t, want, TesseractLanguage(in), in)
	}
}

func TestSplitBlocks(t *testing.T) {
	text := "Заголовок\n\nпервая строка\nвторая строка\n\n\f"
	assert.Equal(t, []string{"Заголовок", "первая строка\nвторая строка"}, SplitBlocks(text))
	assert.Nil(t, SplitBlocks("\f"))
}

func TestPreparePageRotatesLandscape(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 200, 100))
	prepared := PreparePage(img, 50)
	assert.Equal(t, 25, prepared.Bounds().Dx())
	assert.Equal(t, 50, prepared.Bounds().Dy())
}

func TestPreparePageScalesPortrait(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 100, 400))
	prepared := PreparePage(img, 2000)
	assert.Equal(t, 500, prepared.Bounds().Dx())
	assert.Equal(t, 2000, prepared.Bounds().Dy())

	same := image.NewRGBA(image.Rect(0, 0, 1000, 2000))
	assert.Same(t, same, PreparePage(same, 2000))
}

func TestRotate90(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 1))
	blue := color.RGBA{B: 255, A: 255}
	img.Set(1, 0, blue)

	rotated := rotate90(img)
	assert.Equal(t, image.Rect(0, 0, 1, 2), rotated.Bounds())
	assert.Equal(t, blue, rotated.At(0, 1))
}

func TestImageRoundTrip(t *testing.T) {
	dir := t.TempDir()
	img := image.NewRGBA(image.Rect(0, 0, 8, 4))

	data, err := EncodePNG(img)
	require.NoError(t, err)
	pngPath := filepath.Join(dir, "in.png")
	require.NoError(t, os.WriteFile(pngPath, data, 0644))

	decoded, format, err := DecodeImageFile(pngPath)
	require.NoError(t, err)
	assert.Equal(t, "png", format)
	assert.Equal(t, img.Bounds(), decoded.Bounds())

	jpgPath := filepath.Join(dir, "out.jpg")
	require.NoError(t, WriteJPEG(jpgPath, decoded, 90))
	_, format, err = DecodeImageFile(jpgPath)
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.png"), []byte("nope"), 0644))
	_, _, err = DecodeImageFile(filepath.Join(dir, "bad.png"))
	assert.Equal(t, utils.ErrorTypeConversion, utils.GetErrorType(err))
}

func TestTesseractCLIEngine(t *testing.T) {
	script := writeScript(t, "tesseract", `
[ "$1" = "stdin" ] || exit 2
[ "$2" = "stdout" ] || exit 2
[ "$4" = "rus" ] || exit 3
cat > /dev/null
printf 'Первый блок\n\nВторой блок\nещё строка\n\f'
`)
	engine := NewTesseractCLIEngine(script, "rus", "", logger.Discard())
	assert.Equal(t, "tesseract-cli", engine.Name())

	blocks, err := engine.RecognizeBlocks(context.Background(), []byte("png"))
	require.NoError(t, err)
	assert.Equal(t, []string{"Первый блок", "Второй блок\nещё строка"}, blocks)
}

func TestTesseractCLIEngineFailure(t *testing.T) {
	script := writeScript(t, "tesseract", "echo 'Failed loading language' >&2\nexit 1\n")
	engine := NewTesseractCLIEngine(script, "xyz", "", logger.Discard())

	_, err := engine.RecognizeBlocks(context.Background(), []byte("png"))
	require.Error(t, err)
	assert.Equal(t, utils.ErrorTypeOCR, utils.GetErrorType(err))
	assert.Contains(t, err.Error(), "Failed loading language")
}

func TestGhostscriptRenderer(t *testing.T) {
	script := writeScript(t, "gs", `
for arg in "$@"; do
  case "$arg" in
    -sOutputFile=*) pattern="${arg#-sOutputFile=}" ;;
  esac
done
for i in 1 2 3; do
  printf 'png' > "$(printf "$pattern" "$i")"
done
`)
	outDir := filepath.Join(t.TempDir(), "pages")
	renderer := NewGhostscriptRenderer(script, 150, logger.Discard())

	pages, err := renderer.RenderPages(context.Background(), "in.pdf", outDir)
	require.NoError(t, err)
	require.Len(t, pages, 3)
	assert.Equal(t, filepath.Join(outDir, "page-1.png"), pages[0])
	assert.Equal(t, filepath.Join(outDir, "page-3.png"), pages[2])
}

func TestGhostscriptRendererNoPages(t *testing.T) {
	script := writeScript(t, "gs", "exit 0\n")
	renderer := NewGhostscriptRenderer(script, 150, logger.Discard())

	_, err := renderer.RenderPages(context.Background(), "in.pdf", t.TempDir())
	require.Error(t, err)
	assert.Equal(t, utils.ErrorTypeRender, utils.GetErrorType(err))
}
