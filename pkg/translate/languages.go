package translate

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"

	"github.com/nodewee/doc-translate/pkg/utils"
)

// NormalizeLanguage canonicalizes a BCP 47 tag into the form LibreTranslate
// expects. Plain languages collapse to their base code ("RU" -> "ru"), while
// script or region variants keep their canonical tag ("zh-hant" -> "zh-Hant").
func NormalizeLanguage(code string) (string, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return "", utils.NewValidationError("language code is empty", nil)
	}

	tag, err := language.Parse(code)
	if err != nil {
		return "", utils.NewValidationError(fmt.Sprintf("invalid language code: %q", code), err)
	}

	base, script, region := tag.Raw()
	if script.String() == "Zzzz" && region.String() == "ZZ" {
		return base.String(), nil
	}
	return tag.String(), nil
}

// LanguageName returns the English name of a language code, or the code
// itself when it cannot be parsed
func LanguageName(code string) string {
	tag, err := language.Parse(code)
	if err != nil {
		return code
	}
	if name := display.English.Tags().Name(tag); name != "" {
		return name
	}
	return code
}
