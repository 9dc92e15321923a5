package application

import (
	"context"
	"fmt"

	"factskill/internal/domain"
)

// Dispatcher routes a request to the first registered Handler that accepts
// it. Registration order matters: catch-all handlers go last.
type Dispatcher struct {
	handlers []Handler
}

func NewDispatcher(handlers ...Handler) *Dispatcher {
	return &Dispatcher{handlers: append([]Handler(nil), handlers...)}
}

// Match returns the first handler accepting req.
func (d *Dispatcher) Match(req domain.Request) (Handler, bool) {
	for _, h := range d.handlers {
		if h.CanHandle(req) {
			return h, true
		}
	}
	return nil, false
}

// Dispatch runs the matched handler and returns its result unchanged.
// With no match it returns domain.ErrNoHandlerMatched.
func (d *Dispatcher) Dispatch(ctx context.Context, req domain.Request, rc *RequestContext) (domain.Response, error) {
	h, ok := d.Match(req)
	if !ok {
		return domain.Response{}, fmt.Errorf("%w: type=%s intent=%q", domain.ErrNoHandlerMatched, req.Type, req.IntentName)
	}
	rc.HandlerName = h.Name()
	return h.Handle(ctx, req, rc)
}

// Names lists the registered handlers in order.
func (d *Dispatcher) Names() []string {
	names := make([]string, 0, len(d.handlers))
	for _, h := range d.handlers {
		names = append(names, h.Name())
	}
	return names
}
