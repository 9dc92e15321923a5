package i18n

import (
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"golang.org/x/text/language"
)

const catalogPattern = "active.*.toml"

// Value is one catalog entry: a single template, or a bank of variants
// from which one is picked per lookup.
type Value struct {
	Text     string
	Variants []string
}

// IsBank reports whether v holds variants.
func (v Value) IsBank() bool {
	return len(v.Variants) > 0
}

// Store is the immutable locale -> key -> value catalog set.
type Store struct {
	catalogs map[language.Tag]map[string]Value
	tags     []language.Tag
}

// NewStore copies catalogs (keyed by locale code) into a Store.
func NewStore(catalogs map[string]map[string]Value) (*Store, error) {
	s := &Store{catalogs: make(map[language.Tag]map[string]Value, len(catalogs))}
	for locale, entries := range catalogs {
		tag, err := language.Parse(locale)
		if err != nil {
			return nil, fmt.Errorf("i18n: invalid locale %q: %w", locale, err)
		}
		if _, dup := s.catalogs[tag]; dup {
			return nil, fmt.Errorf("i18n: duplicate catalog for locale %s", tag)
		}
		copied := make(map[string]Value, len(entries))
		for key, v := range entries {
			if v.IsBank() {
				v.Variants = append([]string(nil), v.Variants...)
			}
			copied[key] = v
		}
		s.catalogs[tag] = copied
		s.tags = append(s.tags, tag)
	}
	sort.Slice(s.tags, func(i, j int) bool { return s.tags[i].String() < s.tags[j].String() })
	return s, nil
}

// LoadFS reads every active.<locale>.toml file at the root of fsys.
func LoadFS(fsys fs.FS) (*Store, error) {
	files, err := fs.Glob(fsys, catalogPattern)
	if err != nil {
		return nil, fmt.Errorf("i18n: glob catalogs: %w", err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("i18n: no catalog matching %s", catalogPattern)
	}
	sort.Strings(files)

	catalogs := make(map[string]map[string]Value, len(files))
	for _, file := range files {
		data, err := fs.ReadFile(fsys, file)
		if err != nil {
			return nil, fmt.Errorf("i18n: read %s: %w", file, err)
		}
		entries, err := ParseCatalog(data)
		if err != nil {
			return nil, fmt.Errorf("i18n: parse %s: %w", file, err)
		}
		catalogs[localeFromFile(file)] = entries
	}
	return NewStore(catalogs)
}

// ParseCatalog decodes a flat TOML catalog where each key maps to a string
// or an array of strings.
func ParseCatalog(data []byte) (map[string]Value, error) {
	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	entries := make(map[string]Value, len(raw))
	for key, v := range raw {
		switch tv := v.(type) {
		case string:
			entries[key] = Value{Text: tv}
		case []any:
			if len(tv) == 0 {
				return nil, fmt.Errorf("key %s: empty array", key)
			}
			variants := make([]string, 0, len(tv))
			for i, item := range tv {
				s, ok := item.(string)
				if !ok {
					return nil, fmt.Errorf("key %s: element %d is %T, want string", key, i, item)
				}
				variants = append(variants, s)
			}
			entries[key] = Value{Variants: variants}
		default:
			return nil, fmt.Errorf("key %s: unsupported value type %T", key, v)
		}
	}
	return entries, nil
}

// active.en-US.toml -> en-US
func localeFromFile(file string) string {
	name := strings.TrimSuffix(path.Base(file), ".toml")
	return strings.TrimPrefix(name, "active.")
}

// Tags lists the locales that have a catalog.
func (s *Store) Tags() []language.Tag {
	return append([]language.Tag(nil), s.tags...)
}

// Match resolves a request locale to a catalog locale: the exact tag first,
// then its base language.
func (s *Store) Match(locale string) (language.Tag, bool) {
	tag, err := language.Parse(locale)
	if err != nil {
		return language.Und, false
	}
	if _, ok := s.catalogs[tag]; ok {
		return tag, true
	}
	base, conf := tag.Base()
	if conf == language.No {
		return language.Und, false
	}
	baseTag, err := language.Compose(base)
	if err != nil {
		return language.Und, false
	}
	if _, ok := s.catalogs[baseTag]; ok {
		return baseTag, true
	}
	return language.Und, false
}

// Lookup returns the entry for key in the catalog of tag.
// Banks are returned as copies.
func (s *Store) Lookup(tag language.Tag, key string) (Value, bool) {
	entries, ok := s.catalogs[tag]
	if !ok {
		return Value{}, false
	}
	v, ok := entries[key]
	if ok && v.IsBank() {
		v.Variants = append([]string(nil), v.Variants...)
	}
	return v, ok
}

// each calls fn for every entry of every catalog.
func (s *Store) each(fn func(tag language.Tag, key string, v Value) error) error {
	for _, tag := range s.tags {
		keys := make([]string, 0, len(s.catalogs[tag]))
		for k := range s.catalogs[tag] {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if err := fn(tag, k, s.catalogs[tag][k]); err != nil {
				return err
			}
		}
	}
	return nil
}
