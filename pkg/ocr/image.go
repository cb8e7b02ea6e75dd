package ocr

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	"image/png"
	"os"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/nodewee/doc-translate/pkg/utils"
)

// DecodeImageFile decodes any registered image format and returns the
// format name alongside the image
func DecodeImageFile(path string) (image.Image, string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, "", utils.WrapError(err, utils.ErrorTypeIO, "failed to open image")
	}
	defer file.Close()

	img, format, err := image.Decode(file)
	if err != nil {
		return nil, "", utils.NewConversionError(fmt.Sprintf("failed to decode image %s", path), err)
	}
	return img, format, nil
}

// PreparePage turns landscape pages upright and scales the result so that
// neither side exceeds maxDim while the longer side reaches it
func PreparePage(img image.Image, maxDim int) image.Image {
	bounds := img.Bounds()
	if bounds.Dx() > bounds.Dy() {
		img = rotate90(img)
		bounds = img.Bounds()
	}
	if maxDim <= 0 || bounds.Dx() == 0 || bounds.Dy() == 0 {
		return img
	}

	scale := min(float64(maxDim)/float64(bounds.Dx()), float64(maxDim)/float64(bounds.Dy()))
	width := int(float64(bounds.Dx())*scale + 0.5)
	height := int(float64(bounds.Dy())*scale + 0.5)
	if width == bounds.Dx() && height == bounds.Dy() {
		return img
	}

	dst := image.NewRGBA(image.Rect(0, 0, max(width, 1), max(height, 1)))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Src, nil)
	return dst
}

// rotate90 rotates an image a quarter turn clockwise
func rotate90(img image.Image) image.Image {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	dst := image.NewRGBA(image.Rect(0, 0, h, w))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			dst.Set(h-1-y, x, img.At(bounds.Min.X+x, bounds.Min.Y+y))
		}
	}
	return dst
}

// EncodePNG encodes img as PNG, the input format OCR engines expect
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, utils.NewConversionError("failed to encode PNG", err)
	}
	return buf.Bytes(), nil
}

// WriteJPEG writes img to path as a JPEG of the given quality
func WriteJPEG(path string, img image.Image, quality int) error {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return utils.NewConversionError("failed to encode JPEG", err)
	}
	if err := utils.WriteFileAtomic(path, buf.Bytes()); err != nil {
		return utils.WrapError(err, utils.ErrorTypeIO, "failed to write JPEG")
	}
	return nil
}
