package i18n

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"factskill/internal/domain"
	"factskill/internal/ports/output"
)

//go:embed active.*.toml
var localeFS embed.FS

// Ensure Translator implements the output.Translator port.
var _ output.Translator = (*Translator)(nil)

// EmbeddedCatalogs exposes the catalogs compiled into the binary.
func EmbeddedCatalogs() fs.FS {
	return localeFS
}

// Translator is a thin wrapper around go-i18n's Bundle plus the fact banks
// go-i18n cannot represent.
type Translator struct {
	store           *Store
	bundle          *i18n.Bundle
	defaultLanguage language.Tag
	random          RandomSource
}

type Option func(*Translator)

// WithRandomSource replaces the source used to pick bank variants.
func WithRandomSource(r RandomSource) Option {
	return func(t *Translator) {
		if r != nil {
			t.random = r
		}
	}
}

// NewTranslator builds a Translator over store. defaultLocale must have a
// catalog; it is the fallback target for keys missing elsewhere.
func NewTranslator(store *Store, defaultLocale string, opts ...Option) (*Translator, error) {
	tag, ok := store.Match(defaultLocale)
	if !ok {
		return nil, fmt.Errorf("%w: default locale %q has no catalog", domain.ErrUnsupportedLocale, defaultLocale)
	}

	bundle := i18n.NewBundle(tag)
	err := store.each(func(t language.Tag, key string, v Value) error {
		if v.IsBank() {
			return nil
		}
		if err := bundle.AddMessages(t, &i18n.Message{ID: key, Other: v.Text}); err != nil {
			return fmt.Errorf("i18n: add %s/%s: %w", t, key, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	tr := &Translator{
		store:           store,
		bundle:          bundle,
		defaultLanguage: tag,
		random:          DefaultRandomSource(),
	}
	for _, opt := range opts {
		opt(tr)
	}
	return tr, nil
}

// NewEmbeddedTranslator loads the embedded catalogs.
func NewEmbeddedTranslator(defaultLocale string, opts ...Option) (*Translator, error) {
	store, err := LoadFS(localeFS)
	if err != nil {
		return nil, err
	}
	return NewTranslator(store, defaultLocale, opts...)
}

func (t *Translator) DefaultLocale() string {
	return t.defaultLanguage.String()
}

// Locales lists the catalog locales, sorted.
func (t *Translator) Locales() []string {
	tags := t.store.Tags()
	locales := make([]string, len(tags))
	for i, tag := range tags {
		locales[i] = tag.String()
	}
	return locales
}

// Bind returns a Localizer for locale. A fresh one is built on each call.
func (t *Translator) Bind(locale string) (output.Localizer, error) {
	tag, ok := t.store.Match(locale)
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedLocale, locale)
	}
	return &Localizer{
		translator: t,
		tag:        tag,
		localizer:  i18n.NewLocalizer(t.bundle, tag.String()),
		printer:    message.NewPrinter(tag),
	}, nil
}

// Resolve renders key for locale.
func (t *Translator) Resolve(locale, key string, args ...any) (string, error) {
	l, err := t.Bind(locale)
	if err != nil {
		return "", err
	}
	return l.T(key, args...)
}

func (t *Translator) lookup(tag language.Tag, key string) (Value, bool) {
	if v, ok := t.store.Lookup(tag, key); ok {
		return v, true
	}
	if tag == t.defaultLanguage {
		return Value{}, false
	}
	return t.store.Lookup(t.defaultLanguage, key)
}

// Localizer renders messages for one locale.
type Localizer struct {
	translator *Translator
	tag        language.Tag
	localizer  *i18n.Localizer
	printer    *message.Printer
}

func (l *Localizer) Locale() string {
	return l.tag.String()
}

// T renders key. Banks yield one random variant. args replace printf-style
// placeholders (%s, %d) in order of appearance.
func (l *Localizer) T(key string, args ...any) (string, error) {
	v, ok := l.translator.lookup(l.tag, key)
	if !ok {
		return "", fmt.Errorf("%w: %q (locale %s)", domain.ErrMissingKey, key, l.tag)
	}

	text := ""
	if v.IsBank() {
		text = v.Variants[pickIndex(l.translator.random, len(v.Variants))]
	} else {
		msg, err := l.localizer.Localize(&i18n.LocalizeConfig{MessageID: key})
		if err != nil {
			// go-i18n reports a default-language fallback as not found
			// while still returning its text.
			var notFound *i18n.MessageNotFoundErr
			if !errors.As(err, &notFound) {
				return "", fmt.Errorf("i18n: localize %q: %w", key, err)
			}
			if msg == "" {
				return "", fmt.Errorf("%w: %q (locale %s)", domain.ErrMissingKey, key, l.tag)
			}
		}
		text = msg
	}

	if len(args) == 0 {
		return text, nil
	}
	return l.printer.Sprintf(text, args...), nil
}
