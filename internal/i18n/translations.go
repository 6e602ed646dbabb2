// Package i18n holds the translation catalog of the bot and resolves the
// translation set of an acting user.
package i18n

import "fmt"

// Translations maps message keys of one locale to their templates.
type Translations map[string]string

// Get returns the template of key. A missing key is reported through the
// second result, never as a panic or error, so callers can apply their own
// fallback text.
func (t Translations) Get(key string) (string, bool) {
	if t == nil {
		return "", false
	}
	v, ok := t[key]
	return v, ok
}

// GetOr returns the template of key or fallback when it is missing.
func (t Translations) GetOr(key, fallback string) string {
	if v, ok := t.Get(key); ok {
		return v
	}
	return fallback
}

// Text returns the template of key, or the key itself when it is missing.
func (t Translations) Text(key string) string {
	return t.GetOr(key, key)
}

// Format renders the template of key with fmt verbs. A missing key renders
// as the key itself.
func (t Translations) Format(key string, args ...any) string {
	return fmt.Sprintf(t.Text(key), args...)
}
