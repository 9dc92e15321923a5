package entities

import "time"

// Interaction is the journal record of one handled request.
type Interaction struct {
	ID                  string
	RequestID           string
	RequestType         string
	IntentName          string
	Locale              string
	Handler             string
	ErrorCode           string
	RecommendationLevel int64
	CreatedAt           time.Time
}
