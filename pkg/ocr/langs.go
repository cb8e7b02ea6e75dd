package ocr

import (
	"strings"

	"golang.org/x/text/language"
)

// Tesseract traineddata names that differ from ISO 639-2/T codes
var tesseractOverrides = map[string]string{
	"zh":      "chi_sim",
	"zh-Hans": "chi_sim",
	"zh-Hant": "chi_tra",
	"sr-Latn": "srp_latn",
	"az-Cyrl": "aze_cyrl",
	"uz-Cyrl": "uzb_cyrl",
}

// TesseractLanguage maps a BCP 47 code such as "ru" to the traineddata
// name Tesseract expects ("rus"). Multi-language values joined by "+" are
// mapped element-wise. Values that do not parse are passed through.
func TesseractLanguage(code string) string {
	parts := strings.Split(code, "+")
	for i, part := range parts {
		parts[i] = tesseractCode(strings.TrimSpace(part))
	}
	return strings.Join(parts, "+")
}

func tesseractCode(code string) string {
	tag, err := language.Parse(code)
	if err != nil {
		return code
	}
	if override, ok := tesseractOverrides[tag.String()]; ok {
		return override
	}

	base, _ := tag.Base()
	if iso3 := base.ISO3(); iso3 != "" && iso3 != "und" {
		return iso3
	}
	return code
}
