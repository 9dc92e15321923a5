package application

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"factskill/internal/domain"
	"factskill/internal/domain/entities"
	"factskill/internal/ports/output"
)

const journalWriteTimeout = 5 * time.Second

// Journal records handled requests off the request path. Failures are
// logged and dropped.
type Journal struct {
	repo   output.InteractionRepository
	tasks  output.TaskRunner
	cell   *RecommendationCell
	logger *slog.Logger
}

func NewJournal(repo output.InteractionRepository, tasks output.TaskRunner, cell *RecommendationCell, logger *slog.Logger) *Journal {
	if logger == nil {
		logger = slog.Default()
	}
	return &Journal{repo: repo, tasks: tasks, cell: cell, logger: logger}
}

// Record submits the interaction for req. A nil Journal records nothing.
func (j *Journal) Record(ctx context.Context, req domain.Request, rc *RequestContext, handleErr error) {
	if j == nil || j.repo == nil || j.tasks == nil {
		return
	}

	interaction := &entities.Interaction{
		ID:          uuid.NewString(),
		RequestID:   req.RequestID,
		RequestType: string(req.Type),
		IntentName:  req.IntentName,
		Locale:      req.Locale,
		ErrorCode:   domain.Code(handleErr),
		CreatedAt:   time.Now().UTC(),
	}
	if rc != nil {
		interaction.Handler = rc.HandlerName
	}
	if j.cell != nil {
		interaction.RecommendationLevel = j.cell.Load()
	}

	bg := context.WithoutCancel(ctx)
	err := j.tasks.Submit(bg, func() {
		wctx, cancel := context.WithTimeout(bg, journalWriteTimeout)
		defer cancel()
		if err := j.repo.Create(wctx, interaction); err != nil {
			j.logger.Warn("journal write failed",
				slog.String("request_id", interaction.RequestID),
				slog.String("error", err.Error()),
			)
		}
	})
	if err != nil {
		j.logger.Warn("journal write dropped",
			slog.String("request_id", interaction.RequestID),
			slog.String("error", err.Error()),
		)
	}
}
