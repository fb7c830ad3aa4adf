package recipe

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed locales.yaml
var embeddedLocales []byte

// Term maps an English brewing word to its localized form.
type Term struct {
	From string `yaml:"from"`
	To   string `yaml:"to"`
}

// Locale controls the language of human-readable step text.
type Locale struct {
	Code          string   `yaml:"-"`
	Language      string   `yaml:"language"`
	Terms         []Term   `yaml:"terms"`
	BloomKeywords []string `yaml:"bloom_keywords"`
}

// LocaleSet is an immutable set of locales with a default.
type LocaleSet struct {
	def     string
	locales map[string]Locale
}

type localeFile struct {
	Default string            `yaml:"default"`
	Locales map[string]Locale `yaml:"locales"`
}

// LoadLocales parses the embedded locale table.
func LoadLocales() (*LocaleSet, error) {
	return ParseLocales(embeddedLocales)
}

// ParseLocales parses a YAML locale table.
func ParseLocales(data []byte) (*LocaleSet, error) {
	var f localeFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse locales: %w", err)
	}
	if len(f.Locales) == 0 {
		return nil, fmt.Errorf("parse locales: no locales defined")
	}
	set := &LocaleSet{def: strings.ToLower(strings.TrimSpace(f.Default)), locales: make(map[string]Locale, len(f.Locales))}
	for code, loc := range f.Locales {
		code = strings.ToLower(strings.TrimSpace(code))
		loc.Code = code
		if len(loc.BloomKeywords) == 0 {
			loc.BloomKeywords = []string{"bloom"}
		}
		set.locales[code] = loc
	}
	if _, ok := set.locales[set.def]; !ok {
		return nil, fmt.Errorf("parse locales: default locale %q is not defined", f.Default)
	}
	return set, nil
}

// Lookup returns the requested locale or the default one.
func (s *LocaleSet) Lookup(code string) Locale {
	if loc, ok := s.locales[strings.ToLower(strings.TrimSpace(code))]; ok {
		return loc
	}
	return s.locales[s.def]
}

// Default returns the default locale code.
func (s *LocaleSet) Default() string {
	return s.def
}

func (l Locale) isBloom(action string) bool {
	a := strings.ToLower(action)
	for _, kw := range l.BloomKeywords {
		if kw != "" && strings.Contains(a, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}
