// Package i18n localizes the player-facing messages produced by the rules
// engine. Catalogs are YAML files embedded per locale; lookups fall back to
// the base locale so a missing translation never drops a message.
package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// BaseLocale is the canonical source locale for catalogs.
const BaseLocale = "en-US"

//go:embed locales/*/*.yaml
var embeddedCatalogFS embed.FS

var defaultBundle = mustLoadEmbedded()

// Bundle contains all locale catalogs loaded from an embedded filesystem.
type Bundle struct {
	locales map[string]map[string]string
	tags    []language.Tag
	names   []string
	matcher language.Matcher
}

// Default returns the process-wide embedded catalog bundle.
func Default() *Bundle {
	return defaultBundle
}

func mustLoadEmbedded() *Bundle {
	bundle, err := LoadFromFS(embeddedCatalogFS)
	if err != nil {
		panic(fmt.Sprintf("load embedded catalogs: %v", err))
	}
	return bundle
}

// LoadFromFS loads catalog files from the provided filesystem. Files are
// laid out as locales/<locale>/<namespace>.yaml holding flat key/value maps.
func LoadFromFS(catalogFS fs.FS) (*Bundle, error) {
	paths, err := fs.Glob(catalogFS, "locales/*/*.yaml")
	if err != nil {
		return nil, fmt.Errorf("glob locale catalogs: %w", err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no catalog files found")
	}
	sort.Strings(paths)

	bundle := &Bundle{locales: map[string]map[string]string{}}

	for _, file := range paths {
		locale := path.Base(path.Dir(file))
		data, err := fs.ReadFile(catalogFS, file)
		if err != nil {
			return nil, fmt.Errorf("read catalog %s: %w", file, err)
		}
		messages := map[string]string{}
		if err := yaml.Unmarshal(data, &messages); err != nil {
			return nil, fmt.Errorf("parse catalog %s: %w", file, err)
		}
		if bundle.locales[locale] == nil {
			bundle.locales[locale] = map[string]string{}
		}
		for key, value := range messages {
			bundle.locales[locale][key] = value
		}
	}

	if bundle.locales[BaseLocale] == nil {
		return nil, fmt.Errorf("base locale %s catalog is missing", BaseLocale)
	}

	// The base locale must be first so the matcher falls back to it.
	bundle.names = append(bundle.names, BaseLocale)
	bundle.tags = append(bundle.tags, language.MustParse(BaseLocale))
	for name := range bundle.locales {
		if name == BaseLocale {
			continue
		}
		tag, err := language.Parse(name)
		if err != nil {
			return nil, fmt.Errorf("parse locale %s: %w", name, err)
		}
		bundle.names = append(bundle.names, name)
		bundle.tags = append(bundle.tags, tag)
	}
	bundle.matcher = language.NewMatcher(bundle.tags)

	return bundle, nil
}

// Locales returns the locales available in the bundle, base locale first.
func (b *Bundle) Locales() []string {
	out := make([]string, len(b.names))
	copy(out, b.names)
	return out
}

// Printer resolves messages for the best match of the requested locale.
type Printer struct {
	messages map[string]string
	fallback map[string]string
}

// Printer returns a message printer for the requested locale. Unknown or
// empty locales resolve to the base locale.
func (b *Bundle) Printer(locale string) *Printer {
	name := BaseLocale
	if locale != "" {
		if _, index := language.MatchStrings(b.matcher, locale); index < len(b.names) {
			name = b.names[index]
		}
	}
	return &Printer{
		messages: b.locales[name],
		fallback: b.locales[BaseLocale],
	}
}

// T renders the message for a key, formatting args with the catalog
// template. Unknown keys render as the key itself so they surface in tests.
func (p *Printer) T(key string, args ...any) string {
	template, ok := p.messages[key]
	if !ok {
		template, ok = p.fallback[key]
	}
	if !ok {
		return key
	}
	if len(args) == 0 {
		return template
	}
	return fmt.Sprintf(template, args...)
}
