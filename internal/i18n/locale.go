package i18n

import (
	"strings"

	"golang.org/x/text/language"
)

// NormalizeLocale reduces a platform language code to its base language,
// e.g. "en-US" and "EN" become "en". Codes that cannot be parsed are only
// lower-cased.
func NormalizeLocale(code string) string {
	code = strings.TrimSpace(code)
	if code == "" {
		return ""
	}

	tag, err := language.Parse(code)
	if err != nil {
		return strings.ToLower(code)
	}

	base, _ := tag.Base()
	return base.String()
}
