package application

import (
	"context"
	"log/slog"
	"sync/atomic"

	"factskill/internal/domain"
	"factskill/internal/ports/output"
)

// DefaultRecommendationLevel is the normal speaking rate, in percent.
const DefaultRecommendationLevel int64 = 100

// Node numbers identify the skill step to the scoring service.
const (
	NodeNewFact = "1"
	NodeExit    = "1002"
)

// RecommendationCell holds the last level returned by the scoring service.
// It is shared by all requests; reads never block.
type RecommendationCell struct {
	level atomic.Int64
}

func NewRecommendationCell(initial int64) *RecommendationCell {
	c := &RecommendationCell{}
	c.level.Store(initial)
	return c
}

func (c *RecommendationCell) Load() int64 {
	return c.level.Load()
}

func (c *RecommendationCell) Store(level int64) {
	c.level.Store(level)
	recommendationLevel.Set(float64(level))
}

// Recommender fires scoring calls in the background and feeds the results
// into the cell. A result is only visible to requests that start after it
// arrives.
type Recommender struct {
	cell   *RecommendationCell
	scorer output.Scorer
	tasks  output.TaskRunner
	logger *slog.Logger
}

// NewRecommender wires the scoring side channel. A nil scorer disables the
// calls; the level then stays at its initial value.
func NewRecommender(cell *RecommendationCell, scorer output.Scorer, tasks output.TaskRunner, logger *slog.Logger) *Recommender {
	if logger == nil {
		logger = slog.Default()
	}
	return &Recommender{cell: cell, scorer: scorer, tasks: tasks, logger: logger}
}

// Level is the last known recommendation level.
func (r *Recommender) Level() int64 {
	if r == nil || r.cell == nil {
		return DefaultRecommendationLevel
	}
	return r.cell.Load()
}

// Notify submits a scoring call for node and returns immediately.
func (r *Recommender) Notify(ctx context.Context, node string) {
	if r == nil || r.scorer == nil || r.tasks == nil {
		return
	}
	req := output.ScoreRequest{
		PortNumber:   "1",
		NodeNumber:   node,
		NodeResponse: "0",
		NodeModality: "1",
	}
	// The call outlives the request that triggered it.
	bg := context.WithoutCancel(ctx)

	err := r.tasks.Submit(bg, func() {
		level, err := r.scorer.Score(bg, req)
		if err != nil {
			recommendationCalls.WithLabelValues("error").Inc()
			r.logger.Warn("recommendation call failed, keeping previous level",
				slog.String("node", node),
				slog.String("code", domain.Code(err)),
				slog.String("error", err.Error()),
			)
			return
		}
		recommendationCalls.WithLabelValues("ok").Inc()
		r.cell.Store(level)
		r.logger.Debug("recommendation level updated",
			slog.String("node", node),
			slog.Int64("level", level),
		)
	})
	if err != nil {
		recommendationCalls.WithLabelValues("dropped").Inc()
		r.logger.Warn("recommendation call dropped",
			slog.String("node", node),
			slog.String("error", err.Error()),
		)
	}
}
