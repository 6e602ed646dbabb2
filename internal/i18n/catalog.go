// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package i18n

import (
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"path"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

var (
	// ErrNoDefaultLocale is returned when the default locale has no
	// translations in the catalog.
	ErrNoDefaultLocale = errors.New("default locale is missing from catalog")

	// ErrLoadingLocale is returned when a locale file cannot be read or
	// decoded.
	ErrLoadingLocale = errors.New("error loading locale")
)

// Catalog is the read-only set of translations of every supported locale.
// It is safe for concurrent use once built.
type Catalog struct {
	locales       map[string]Translations
	defaultLocale string
}

// NewCatalog builds a catalog. defaultLocale must be one of the locales.
func NewCatalog(defaultLocale string, locales map[string]Translations) (*Catalog, error) {
	defaultLocale = NormalizeLocale(defaultLocale)
	if _, ok := locales[defaultLocale]; !ok {
		return nil, fmt.Errorf("%w: %q", ErrNoDefaultLocale, defaultLocale)
	}

	return &Catalog{
		locales:       maps.Clone(locales),
		defaultLocale: defaultLocale,
	}, nil
}

// Load reads every *.yaml file in the root of fsys. The file name without
// extension is the locale code.
func Load(fsys fs.FS, defaultLocale string) (*Catalog, error) {
	files, err := fs.Glob(fsys, "*.yaml")
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadingLocale, err)
	}

	locales := make(map[string]Translations, len(files))
	for _, file := range files {
		raw, err := fs.ReadFile(fsys, file)
		if err != nil {
			return nil, fmt.Errorf("%w %s: %w", ErrLoadingLocale, file, err)
		}

		var t Translations
		if err = yaml.Unmarshal(raw, &t); err != nil {
			return nil, fmt.Errorf("%w %s: %w", ErrLoadingLocale, file, err)
		}

		locale := NormalizeLocale(strings.TrimSuffix(path.Base(file), path.Ext(file)))
		locales[locale] = t
	}

	return NewCatalog(defaultLocale, locales)
}

// Lookup returns the translations of locale. The locale is normalised
// first, so "en-US" finds "en".
func (c *Catalog) Lookup(locale string) (Translations, bool) {
	t, ok := c.locales[NormalizeLocale(locale)]
	return t, ok
}

// Has reports whether locale is supported.
func (c *Catalog) Has(locale string) bool {
	_, ok := c.Lookup(locale)
	return ok
}

// Default returns the translations of the default locale.
func (c *Catalog) Default() Translations {
	return c.locales[c.defaultLocale]
}

func (c *Catalog) DefaultLocale() string {
	return c.defaultLocale
}

// Locales returns the supported locale codes in sorted order.
func (c *Catalog) Locales() []string {
	return slices.Sorted(maps.Keys(c.locales))
}
