package output

import "context"

// ScoreRequest is the fixed-shape payload sent to the recommendation service.
type ScoreRequest struct {
	PortNumber   string `json:"portNumber"`
	NodeNumber   string `json:"nodeNumber"`
	NodeResponse string `json:"nodeResponse"`
	NodeModality string `json:"nodeModality"`
}

// Scorer calls the external recommendation-scoring service and returns the
// recommended level.
type Scorer interface {
	Score(ctx context.Context, req ScoreRequest) (int64, error)
}
