package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"factskill/internal/domain"
	"factskill/internal/ports/output"
)

// Spoken when even the default catalog cannot render ERROR_MESSAGE.
const builtinErrorMessage = "Sorry, an error occurred."

// PanicError carries a recovered handler panic and its stack.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("%v: %v", domain.ErrHandlerPanic, e.Value)
}

func (e *PanicError) Unwrap() error {
	return domain.ErrHandlerPanic
}

// ErrorInterceptor turns any pipeline failure into a spoken error message.
type ErrorInterceptor struct {
	translator output.Translator
	logger     *slog.Logger
}

func NewErrorInterceptor(translator output.Translator, logger *slog.Logger) *ErrorInterceptor {
	if logger == nil {
		logger = slog.Default()
	}
	return &ErrorInterceptor{translator: translator, logger: logger}
}

// OnError logs err and returns the generic error response with a matching
// reprompt, or a silent session end for SessionEndedRequest. It never fails.
func (e *ErrorInterceptor) OnError(_ context.Context, req domain.Request, rc *RequestContext, err error) (resp domain.Response) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("error interceptor recovered", slog.Any("panic", r))
			resp = domain.Ask(builtinErrorMessage, builtinErrorMessage)
		}
	}()

	if err == nil {
		err = errors.New("unknown error")
	}
	attrs := []any{
		slog.String("error", err.Error()),
		slog.String("code", domain.Code(err)),
		slog.String("request_id", req.RequestID),
		slog.String("request_type", string(req.Type)),
		slog.String("intent", req.IntentName),
		slog.String("locale", req.Locale),
	}
	if rc != nil && rc.HandlerName != "" {
		attrs = append(attrs, slog.String("handler", rc.HandlerName))
	}
	var pe *PanicError
	if errors.As(err, &pe) {
		attrs = append(attrs, slog.String("stack", string(pe.Stack)))
	}
	e.logger.Error("error handled", attrs...)

	// The platform has already closed the session; nothing can be spoken.
	if req.Type == domain.RequestSessionEnded {
		return domain.Response{ShouldEndSession: true}
	}

	msg := e.message(req, rc)
	return domain.Ask(msg, msg)
}

// message tries the request's localizer, then the request locale, then the
// default locale.
func (e *ErrorInterceptor) message(req domain.Request, rc *RequestContext) string {
	if msg, err := rc.T(KeyErrorMessage); err == nil {
		return msg
	}
	if e.translator == nil {
		return builtinErrorMessage
	}
	if msg, err := e.translator.Resolve(req.Locale, KeyErrorMessage); err == nil {
		return msg
	}
	if msg, err := e.translator.Resolve(e.translator.DefaultLocale(), KeyErrorMessage); err == nil {
		return msg
	}
	return builtinErrorMessage
}
