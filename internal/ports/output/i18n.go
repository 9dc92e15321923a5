package output

// Translator exposes the i18n contract for spoken messages.
// Implementations provide message lookup + templating for a given locale.
type Translator interface {
	// Resolve renders the message identified by key for the given locale.
	// args fill positional placeholders in order of appearance.
	Resolve(locale, key string, args ...any) (string, error)
	// Bind returns a Localizer fixed to locale, fresh for each request.
	Bind(locale string) (Localizer, error)
	// DefaultLocale is the locale used as the fallback target.
	DefaultLocale() string
}

// Localizer is a Translator bound to one request's locale.
type Localizer interface {
	Locale() string
	T(key string, args ...any) (string, error)
}
