package application

import (
	"context"
	"log/slog"

	"factskill/internal/domain"
	"factskill/pkg/ssml"
)

// Intent names sent by the platform. The short forms are accepted as well.
const (
	IntentGetNewFact = "GetNewFactIntent"
	IntentHelp       = "AMAZON.HelpIntent"
	IntentFallback   = "AMAZON.FallbackIntent"
	IntentCancel     = "AMAZON.CancelIntent"
	IntentStop       = "AMAZON.StopIntent"
)

// Catalog keys.
const (
	KeySkillName            = "SKILL_NAME"
	KeyGetFactMessage       = "GET_FACT_MESSAGE"
	KeyRecommendationPrefix = "RECOMMENDATION_PREFIX"
	KeyFacts                = "FACTS"
	KeyHelpMessage          = "HELP_MESSAGE"
	KeyHelpReprompt         = "HELP_REPROMPT"
	KeyFallbackMessage      = "FALLBACK_MESSAGE"
	KeyFallbackReprompt     = "FALLBACK_REPROMPT"
	KeyStopMessage          = "STOP_MESSAGE"
	KeyErrorMessage         = "ERROR_MESSAGE"
)

// Handler is one conversational behaviour.
type Handler interface {
	Name() string
	CanHandle(req domain.Request) bool
	Handle(ctx context.Context, req domain.Request, rc *RequestContext) (domain.Response, error)
}

// DefaultHandlers returns the skill's handlers in registration order.
func DefaultHandlers(recommender *Recommender, logger *slog.Logger) []Handler {
	return []Handler{
		NewFactHandler{recommender: recommender},
		HelpHandler{},
		ExitHandler{recommender: recommender},
		FallbackHandler{},
		SessionEndedHandler{logger: logger},
	}
}

// NewFactHandler speaks a random fact behind the recommendation prefix.
type NewFactHandler struct {
	recommender *Recommender
}

func (NewFactHandler) Name() string { return "new_fact" }

func (NewFactHandler) CanHandle(req domain.Request) bool {
	return req.Type == domain.RequestLaunch || req.IsIntent(IntentGetNewFact, "GetNewFact")
}

func (h NewFactHandler) Handle(ctx context.Context, _ domain.Request, rc *RequestContext) (domain.Response, error) {
	// Read before notifying: this request speaks the previous call's level.
	level := h.recommender.Level()

	fact, err := rc.T(KeyFacts)
	if err != nil {
		return domain.Response{}, err
	}
	rc.Fact = fact
	h.recommender.Notify(ctx, NodeNewFact)

	prefix, err := rc.T(KeyRecommendationPrefix, level)
	if err != nil {
		return domain.Response{}, err
	}
	intro, err := rc.T(KeyGetFactMessage)
	if err != nil {
		return domain.Response{}, err
	}
	reprompt, err := rc.T(KeyHelpReprompt)
	if err != nil {
		return domain.Response{}, err
	}
	title, err := rc.T(KeySkillName)
	if err != nil {
		return domain.Response{}, err
	}

	speech := ssml.Prosody(level, prefix+intro+fact)
	return domain.Ask(speech, reprompt).WithCard(title, fact), nil
}

type HelpHandler struct{}

func (HelpHandler) Name() string { return "help" }

func (HelpHandler) CanHandle(req domain.Request) bool {
	return req.IsIntent(IntentHelp, "Help")
}

func (HelpHandler) Handle(_ context.Context, _ domain.Request, rc *RequestContext) (domain.Response, error) {
	return ask(rc, KeyHelpMessage, KeyHelpReprompt)
}

type FallbackHandler struct{}

func (FallbackHandler) Name() string { return "fallback" }

func (FallbackHandler) CanHandle(req domain.Request) bool {
	return req.IsIntent(IntentFallback, "Fallback")
}

func (FallbackHandler) Handle(_ context.Context, _ domain.Request, rc *RequestContext) (domain.Response, error) {
	return ask(rc, KeyFallbackMessage, KeyFallbackReprompt)
}

// ExitHandler says goodbye and ends the session.
type ExitHandler struct {
	recommender *Recommender
}

func (ExitHandler) Name() string { return "exit" }

func (ExitHandler) CanHandle(req domain.Request) bool {
	return req.IsIntent(IntentCancel, IntentStop, "Cancel", "Stop")
}

func (h ExitHandler) Handle(ctx context.Context, _ domain.Request, rc *RequestContext) (domain.Response, error) {
	h.recommender.Notify(ctx, NodeExit)

	speech, err := rc.T(KeyStopMessage)
	if err != nil {
		return domain.Response{}, err
	}
	return domain.Tell(speech), nil
}

// SessionEndedHandler acknowledges the platform closing the session.
type SessionEndedHandler struct {
	logger *slog.Logger
}

func (SessionEndedHandler) Name() string { return "session_ended" }

func (SessionEndedHandler) CanHandle(req domain.Request) bool {
	return req.Type == domain.RequestSessionEnded
}

func (h SessionEndedHandler) Handle(_ context.Context, req domain.Request, _ *RequestContext) (domain.Response, error) {
	logger := h.logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("session ended",
		slog.String("request_id", req.RequestID),
		slog.String("reason", req.Reason),
	)
	return domain.Response{ShouldEndSession: true}, nil
}

func ask(rc *RequestContext, speechKey, repromptKey string) (domain.Response, error) {
	speech, err := rc.T(speechKey)
	if err != nil {
		return domain.Response{}, err
	}
	reprompt, err := rc.T(repromptKey)
	if err != nil {
		return domain.Response{}, err
	}
	return domain.Ask(speech, reprompt), nil
}
