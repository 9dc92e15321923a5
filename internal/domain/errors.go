package domain

import "errors"

// Domain errors.
var (
	ErrUnsupportedLocale = errors.New("unsupported locale")
	ErrMissingKey        = errors.New("missing localization key")
	ErrNoHandlerMatched  = errors.New("no handler matched the request")
	ErrExternalService   = errors.New("external service failure")
	ErrInvalidRequest    = errors.New("invalid request envelope")
	ErrHandlerPanic      = errors.New("handler panicked")
)

var codes = []struct {
	err  error
	code string
}{
	{ErrUnsupportedLocale, "unsupported_locale"},
	{ErrMissingKey, "missing_key"},
	{ErrNoHandlerMatched, "no_handler_matched"},
	{ErrExternalService, "external_service_failure"},
	{ErrInvalidRequest, "invalid_request"},
	{ErrHandlerPanic, "handler_panic"},
}

// Code returns the stable code of the first domain error wrapped by err,
// "internal" for any other error and "" for nil.
func Code(err error) string {
	if err == nil {
		return ""
	}
	for _, c := range codes {
		if errors.Is(err, c.err) {
			return c.code
		}
	}
	return "internal"
}
