package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"factskill/internal/domain/entities"
	"factskill/internal/ports/output"
)

var _ output.InteractionRepository = (*InteractionRepository)(nil)

// DB is the subset of pgxpool.Pool used by the repository.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

const insertInteraction = `
INSERT INTO interactions (
    id, request_id, request_type, intent_name, locale,
    handler, error_code, recommendation_level, created_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, COALESCE($9, now()))`

// InteractionRepository implements output.InteractionRepository using pgx.
type InteractionRepository struct {
	db DB
}

// NewInteractionRepository creates an InteractionRepository.
func NewInteractionRepository(db DB) *InteractionRepository {
	return &InteractionRepository{db: db}
}

func (r *InteractionRepository) Create(ctx context.Context, interaction *entities.Interaction) error {
	args, err := interactionArgs(interaction)
	if err != nil {
		return fmt.Errorf("create interaction: %w", err)
	}
	if _, err := r.db.Exec(ctx, insertInteraction, args...); err != nil {
		return fmt.Errorf("create interaction: %w", err)
	}
	return nil
}
