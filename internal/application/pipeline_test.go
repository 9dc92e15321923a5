package application

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/suite"

	"factskill/internal/domain"
	"factskill/internal/infrastructure/i18n"
)

const (
	factIntro    = "Here's a Gyst Fun Fact: "
	helpMessage  = "You can say tell me a space fact, or, you can say exit... What can I help you with?"
	helpReprompt = "What can I help you with?"
	errorMessage = "Sorry, an error occurred."
)

var configuredFacts = []string{
	"A year on Mercury is just 88 days long.",
	"Despite being farther from the Sun, Venus experiences higher temperatures than Mercury.",
	"On Mars, the Sun appears about half the size as it does on Earth.",
	"Jupiter has the shortest day of all of the planets.",
	"The Sun is an almost perfect sphere.",
}

type PipelineTestSuite struct {
	suite.Suite
	translator *i18n.Translator
	scorer     *fakeScorer
	cell       *RecommendationCell
	repo       *memoryRepo
	pipeline   *Pipeline
}

func TestPipelineSuite(t *testing.T) {
	suite.Run(t, &PipelineTestSuite{})
}

func (s *PipelineTestSuite) SetupTest() {
	tr, err := i18n.NewEmbeddedTranslator("en", i18n.WithRandomSource(i18n.NewSeededSource(3)))
	s.Require().NoError(err)
	s.translator = tr
	s.scorer = &fakeScorer{level: 150}
	s.cell = NewRecommendationCell(DefaultRecommendationLevel)
	s.repo = &memoryRepo{}
	s.pipeline = s.build(DefaultHandlers(NewRecommender(s.cell, s.scorer, inlineRunner{}, discardLogger()), discardLogger())...)
}

func (s *PipelineTestSuite) build(handlers ...Handler) *Pipeline {
	logger := discardLogger()
	return NewPipeline(
		s.translator,
		NewDispatcher(handlers...),
		NewErrorInterceptor(s.translator, logger),
		NewJournal(s.repo, inlineRunner{}, s.cell, logger),
		logger,
	)
}

func intentRequest(name, locale string) domain.Request {
	return domain.Request{Type: domain.RequestIntent, IntentName: name, Locale: locale}
}

func (s *PipelineTestSuite) assertGenericError(resp domain.Response) {
	s.Equal(errorMessage, resp.SpeechText)
	s.Equal(errorMessage, resp.RepromptText)
	s.False(resp.ShouldEndSession)
}

func (s *PipelineTestSuite) TestLaunchSpeaksAFact() {
	resp := s.pipeline.Handle(context.Background(), domain.Request{Type: domain.RequestLaunch, Locale: "en"})

	prefix := `<prosody rate="100%">Gyst active at 100 percent. ` + factIntro
	s.True(strings.HasPrefix(resp.SpeechText, prefix), resp.SpeechText)
	s.True(strings.HasSuffix(resp.SpeechText, "</prosody>"), resp.SpeechText)

	fact := strings.TrimSuffix(strings.TrimPrefix(resp.SpeechText, prefix), "</prosody>")
	s.Contains(configuredFacts, fact)

	s.Equal(helpReprompt, resp.RepromptText)
	s.Equal("Gyst Fun Facts", resp.CardTitle)
	s.Equal(fact, resp.CardBody)
	s.False(resp.ShouldEndSession)
}

func (s *PipelineTestSuite) TestGetNewFactIntentUsesRegionalLocale() {
	resp := s.pipeline.Handle(context.Background(), intentRequest(IntentGetNewFact, "en-US"))
	s.Contains(resp.SpeechText, factIntro)
	s.NotEmpty(resp.CardBody)
}

func (s *PipelineTestSuite) TestHelp() {
	resp := s.pipeline.Handle(context.Background(), intentRequest(IntentHelp, "en"))
	s.Equal(helpMessage, resp.SpeechText)
	s.Equal(helpReprompt, resp.RepromptText)
	s.Empty(resp.CardTitle)
	s.Empty(resp.CardBody)
	s.False(resp.ShouldEndSession)
}

func (s *PipelineTestSuite) TestFallback() {
	resp := s.pipeline.Handle(context.Background(), intentRequest(IntentFallback, "en"))
	s.Contains(resp.SpeechText, "can't help you with that")
	s.Equal(helpReprompt, resp.RepromptText)
}

func (s *PipelineTestSuite) TestExitEndsSessionAndScores() {
	for _, intent := range []string{IntentStop, IntentCancel} {
		resp := s.pipeline.Handle(context.Background(), intentRequest(intent, "en"))
		s.Equal("Thanks for checking out the Gyst Fun Facts skill. Goodbye!", resp.SpeechText)
		s.Empty(resp.RepromptText)
		s.True(resp.ShouldEndSession)
	}
	s.Equal([]string{NodeExit, NodeExit}, s.scorer.nodes())
}

func (s *PipelineTestSuite) TestSessionEnded() {
	resp := s.pipeline.Handle(context.Background(), domain.Request{
		Type:   domain.RequestSessionEnded,
		Locale: "en",
		Reason: "USER_INITIATED",
	})
	s.Empty(resp.SpeechText)
	s.True(resp.ShouldEndSession)
	s.Empty(s.scorer.nodes())
}

func (s *PipelineTestSuite) TestUnknownIntentRoutesToErrorInterceptor() {
	resp := s.pipeline.Handle(context.Background(), intentRequest("UnknownIntent", "en"))
	s.assertGenericError(resp)

	recorded := s.repo.all()
	s.Require().Len(recorded, 1)
	s.Equal("no_handler_matched", recorded[0].ErrorCode)
	s.Empty(recorded[0].Handler)
}

func (s *PipelineTestSuite) TestUnsupportedLocaleSpeaksDefaultError() {
	resp := s.pipeline.Handle(context.Background(), intentRequest(IntentHelp, "fr"))
	s.assertGenericError(resp)
	s.Equal("unsupported_locale", s.repo.all()[0].ErrorCode)
}

func (s *PipelineTestSuite) TestInvalidEnvelope() {
	testCases := []struct {
		name string
		req  domain.Request
	}{
		{"intent without name", domain.Request{Type: domain.RequestIntent, Locale: "en"}},
		{"launch with intent name", domain.Request{Type: domain.RequestLaunch, IntentName: IntentHelp, Locale: "en"}},
		{"unknown type", domain.Request{Type: "CanFulfillIntentRequest", Locale: "en"}},
		{"missing locale", domain.Request{Type: domain.RequestLaunch}},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.assertGenericError(s.pipeline.Handle(context.Background(), tc.req))
		})
	}
}

func (s *PipelineTestSuite) TestHandlerPanicIsRecovered() {
	p := s.build(panicHandler{})
	resp := p.Handle(context.Background(), domain.Request{Type: domain.RequestLaunch, Locale: "en"})
	s.assertGenericError(resp)
	s.Equal("handler_panic", s.repo.all()[0].ErrorCode)
}

func (s *PipelineTestSuite) TestRecommendationIsLaggedByOneRequest() {
	launch := domain.Request{Type: domain.RequestLaunch, Locale: "en"}

	first := s.pipeline.Handle(context.Background(), launch)
	s.Contains(first.SpeechText, `<prosody rate="100%">Gyst active at 100 percent. `)
	s.Equal(int64(150), s.cell.Load())

	s.scorer.level = 120
	second := s.pipeline.Handle(context.Background(), launch)
	s.Contains(second.SpeechText, `<prosody rate="150%">Gyst active at 150 percent. `)
	s.Equal(int64(120), s.cell.Load())

	s.Equal([]string{NodeNewFact, NodeNewFact}, s.scorer.nodes())
}

func (s *PipelineTestSuite) TestScoringFailureKeepsLevel() {
	s.scorer.err = domain.ErrExternalService
	resp := s.pipeline.Handle(context.Background(), domain.Request{Type: domain.RequestLaunch, Locale: "en"})

	s.Contains(resp.SpeechText, factIntro)
	s.Equal(DefaultRecommendationLevel, s.cell.Load())
}

func (s *PipelineTestSuite) TestDroppedScoringCallDoesNotFailRequest() {
	rec := NewRecommender(s.cell, s.scorer, inlineRunner{err: errors.New("pool overloaded")}, discardLogger())
	p := s.build(DefaultHandlers(rec, discardLogger())...)

	resp := p.Handle(context.Background(), domain.Request{Type: domain.RequestLaunch, Locale: "en"})
	s.Contains(resp.SpeechText, factIntro)
	s.Empty(s.scorer.nodes())
}

func (s *PipelineTestSuite) TestJournalRecordsInteraction() {
	s.cell.Store(130)
	s.pipeline.Handle(context.Background(), domain.Request{
		RequestID:  "req-1",
		Type:       domain.RequestIntent,
		IntentName: IntentHelp,
		Locale:     "en-US",
	})

	recorded := s.repo.all()
	s.Require().Len(recorded, 1)
	got := recorded[0]
	s.NotEmpty(got.ID)
	s.Equal("req-1", got.RequestID)
	s.Equal("IntentRequest", got.RequestType)
	s.Equal(IntentHelp, got.IntentName)
	s.Equal("en-US", got.Locale)
	s.Equal("help", got.Handler)
	s.Empty(got.ErrorCode)
	s.Equal(int64(130), got.RecommendationLevel)
	s.False(got.CreatedAt.IsZero())
}

func (s *PipelineTestSuite) TestRequestIDIsAssigned() {
	s.pipeline.Handle(context.Background(), intentRequest(IntentHelp, "en"))
	s.NotEmpty(s.repo.all()[0].RequestID)
}

func (s *PipelineTestSuite) TestMissingKeyRoutesToErrorInterceptor() {
	store, err := i18n.NewStore(map[string]map[string]i18n.Value{
		"en": {
			"HELP_MESSAGE":  {Text: "help"},
			"ERROR_MESSAGE": {Text: "custom error"},
		},
	})
	s.Require().NoError(err)
	s.translator, err = i18n.NewTranslator(store, "en")
	s.Require().NoError(err)

	resp := s.build(HelpHandler{}).Handle(context.Background(), intentRequest(IntentHelp, "en"))
	s.Equal("custom error", resp.SpeechText)
	s.Equal("custom error", resp.RepromptText)
	s.Equal("missing_key", s.repo.all()[0].ErrorCode)
}

func (s *PipelineTestSuite) TestRepromptMissingFromLocaleUsesDefault() {
	store, err := i18n.NewStore(map[string]map[string]i18n.Value{
		"en": {
			"HELP_MESSAGE":  {Text: "help"},
			"HELP_REPROMPT": {Text: "reprompt"},
			"ERROR_MESSAGE": {Text: "error"},
		},
		"de": {
			"HELP_MESSAGE":  {Text: "Hilfe"},
			"ERROR_MESSAGE": {Text: "Fehler"},
		},
	})
	s.Require().NoError(err)
	s.translator, err = i18n.NewTranslator(store, "en")
	s.Require().NoError(err)

	resp := s.build(HelpHandler{}).Handle(context.Background(), intentRequest(IntentHelp, "de"))
	s.Equal("Hilfe", resp.SpeechText)
	s.Equal("reprompt", resp.RepromptText)
	s.Empty(s.repo.all()[0].ErrorCode)
}

func (s *PipelineTestSuite) TestSessionEndedWithUnsupportedLocaleStaysSilent() {
	resp := s.pipeline.Handle(context.Background(), domain.Request{
		Type:   domain.RequestSessionEnded,
		Locale: "fr",
		Reason: "ERROR",
	})
	s.Empty(resp.SpeechText)
	s.Empty(resp.RepromptText)
	s.True(resp.ShouldEndSession)
	s.Equal("unsupported_locale", s.repo.all()[0].ErrorCode)
}

func (s *PipelineTestSuite) TestConcurrentRequests() {
	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			req := domain.Request{Type: domain.RequestLaunch, Locale: "en"}
			if i%2 == 0 {
				req = intentRequest(IntentStop, "en")
			}
			resp := s.pipeline.Handle(context.Background(), req)
			s.NotEmpty(resp.SpeechText)
		}()
	}
	wg.Wait()
	s.Len(s.repo.all(), 50)
}

type panicHandler struct{}

func (panicHandler) Name() string { return "panic" }

func (panicHandler) CanHandle(domain.Request) bool { return true }

func (panicHandler) Handle(context.Context, domain.Request, *RequestContext) (domain.Response, error) {
	panic("boom")
}
