// Package i18n holds the user-facing message catalog. Strings are looked up by
// key; a key with no translation is returned unchanged so plain text passes through.
package i18n

import (
	"embed"
	"fmt"
	"sync"

	"github.com/leonelquinteros/gotext"
)

// DefaultLanguage is used when no language is configured
const DefaultLanguage = "en"

//go:embed locales/*.po
var locales embed.FS

var (
	mu      sync.RWMutex
	current *gotext.Po
	lang    string
)

func init() {
	if err := Use(DefaultLanguage); err != nil {
		panic(err)
	}
}

// Use switches the active catalog
func Use(language string) error {
	po, err := load(language)
	if err != nil {
		return err
	}
	mu.Lock()
	current, lang = po, language
	mu.Unlock()
	return nil
}

// Language returns the active catalog language
func Language() string {
	mu.RLock()
	defer mu.RUnlock()
	return lang
}

// Get translates key, formatting it with vars when given
func Get(key string, vars ...interface{}) string {
	mu.RLock()
	po := current
	mu.RUnlock()
	return po.Get(key, vars...)
}

// Available lists the embedded catalog languages
func Available() []string {
	entries, _ := locales.ReadDir("locales")
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		out = append(out, name[:len(name)-len(".po")])
	}
	return out
}

func load(language string) (*gotext.Po, error) {
	data, err := locales.ReadFile("locales/" + language + ".po")
	if err != nil {
		return nil, fmt.Errorf("no catalog for language %q", language)
	}
	po := gotext.NewPo()
	po.Parse(data)
	return po, nil
}
