package domain

import (
	"fmt"
	"strings"
)

// RequestType classifies an incoming request.
type RequestType string

const (
	RequestLaunch       RequestType = "LaunchRequest"
	RequestIntent       RequestType = "IntentRequest"
	RequestSessionEnded RequestType = "SessionEndedRequest"
)

// Request is the inbound envelope as delivered by the voice platform.
type Request struct {
	RequestID  string      `json:"requestId,omitempty"`
	Type       RequestType `json:"requestType"`
	IntentName string      `json:"intentName,omitempty"`
	Locale     string      `json:"locale"`
	// Reason is only set on SessionEndedRequest.
	Reason string `json:"reason,omitempty"`
}

// IsIntent reports whether r is an IntentRequest for one of names.
func (r Request) IsIntent(names ...string) bool {
	if r.Type != RequestIntent {
		return false
	}
	for _, n := range names {
		if r.IntentName == n {
			return true
		}
	}
	return false
}

// Validate checks the envelope invariants: a known type, a locale, and an
// intent name present if and only if the request is an IntentRequest.
func (r Request) Validate() error {
	switch r.Type {
	case RequestLaunch, RequestIntent, RequestSessionEnded:
	default:
		return fmt.Errorf("%w: unknown request type %q", ErrInvalidRequest, r.Type)
	}
	if strings.TrimSpace(r.Locale) == "" {
		return fmt.Errorf("%w: locale is required", ErrInvalidRequest)
	}
	hasIntent := strings.TrimSpace(r.IntentName) != ""
	if r.Type == RequestIntent && !hasIntent {
		return fmt.Errorf("%w: intentName is required for %s", ErrInvalidRequest, r.Type)
	}
	if r.Type != RequestIntent && hasIntent {
		return fmt.Errorf("%w: intentName is only allowed for %s", ErrInvalidRequest, RequestIntent)
	}
	return nil
}

// Response is the outbound envelope.
type Response struct {
	SpeechText       string `json:"speechText"`
	RepromptText     string `json:"repromptText,omitempty"`
	// Card shown in the companion app; both empty means no card.
	CardTitle        string `json:"cardTitle,omitempty"`
	CardBody         string `json:"cardBody,omitempty"`
	ShouldEndSession bool   `json:"shouldEndSession"`
}

// Ask builds a response that keeps the session open with a reprompt.
func Ask(speech, reprompt string) Response {
	return Response{SpeechText: speech, RepromptText: reprompt}
}

// Tell builds a response that ends the session.
func Tell(speech string) Response {
	return Response{SpeechText: speech, ShouldEndSession: true}
}

// WithCard attaches a simple card.
func (r Response) WithCard(title, body string) Response {
	r.CardTitle = title
	r.CardBody = body
	return r
}
