package application

import (
	"context"
	"log/slog"
	"runtime/debug"
	"time"

	"github.com/google/uuid"

	"factskill/internal/domain"
	"factskill/internal/ports/input"
	"factskill/internal/ports/output"
)

var _ input.SkillUseCase = (*Pipeline)(nil)

// Pipeline handles one request end to end: bind a Localizer for the
// request locale, dispatch, and hand any failure to the ErrorInterceptor.
type Pipeline struct {
	translator  output.Translator
	dispatcher  *Dispatcher
	interceptor *ErrorInterceptor
	journal     *Journal
	logger      *slog.Logger
}

// NewPipeline wires the pipeline. journal may be nil.
func NewPipeline(
	translator output.Translator,
	dispatcher *Dispatcher,
	interceptor *ErrorInterceptor,
	journal *Journal,
	logger *slog.Logger,
) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		translator:  translator,
		dispatcher:  dispatcher,
		interceptor: interceptor,
		journal:     journal,
		logger:      logger,
	}
}

func (p *Pipeline) Handle(ctx context.Context, req domain.Request) domain.Response {
	if req.RequestID == "" {
		req.RequestID = uuid.NewString()
	}
	start := time.Now()
	rc := &RequestContext{}

	resp, err := p.run(ctx, req, rc)
	if err != nil {
		resp = p.interceptor.OnError(ctx, req, rc, err)
	}

	handler := rc.HandlerName
	if handler == "" {
		handler = "none"
	}
	outcome := domain.Code(err)
	if outcome == "" {
		outcome = "ok"
	}
	requestsTotal.WithLabelValues(handler, outcome).Inc()
	requestDuration.WithLabelValues(handler).Observe(time.Since(start).Seconds())

	p.logger.Debug("request handled",
		slog.String("request_id", req.RequestID),
		slog.String("handler", handler),
		slog.String("outcome", outcome),
		slog.Duration("elapsed", time.Since(start)),
	)

	p.journal.Record(ctx, req, rc, err)
	return resp
}

func (p *Pipeline) run(ctx context.Context, req domain.Request, rc *RequestContext) (resp domain.Response, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &PanicError{Value: r, Stack: debug.Stack()}
		}
	}()

	if err := req.Validate(); err != nil {
		return domain.Response{}, err
	}
	localizer, err := p.translator.Bind(req.Locale)
	if err != nil {
		return domain.Response{}, err
	}
	rc.Localizer = localizer

	return p.dispatcher.Dispatch(ctx, req, rc)
}
