package i18n

import (
	"embed"
	"io/fs"
)

//go:embed locales/*.yaml
var embeddedLocales embed.FS

// LoadEmbedded loads the locales shipped with the binary.
func LoadEmbedded(defaultLocale string) (*Catalog, error) {
	sub, err := fs.Sub(embeddedLocales, "locales")
	if err != nil {
		return nil, err
	}
	return Load(sub, defaultLocale)
}
