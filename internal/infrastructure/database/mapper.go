package database

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"

	"factskill/internal/domain/entities"
)

// timeToPgtypeTimestamptz maps the zero time to NULL.
func timeToPgtypeTimestamptz(t time.Time) pgtype.Timestamptz {
	if t.IsZero() {
		return pgtype.Timestamptz{}
	}
	return pgtype.Timestamptz{Time: t, Valid: true}
}

func stringToPgtypeUUID(s string) (pgtype.UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return pgtype.UUID{}, fmt.Errorf("invalid interaction id %q: %w", s, err)
	}
	return pgtype.UUID{Bytes: id, Valid: true}, nil
}

func interactionArgs(i *entities.Interaction) ([]any, error) {
	id, err := stringToPgtypeUUID(i.ID)
	if err != nil {
		return nil, err
	}
	return []any{
		id,
		i.RequestID,
		i.RequestType,
		i.IntentName,
		i.Locale,
		i.Handler,
		i.ErrorCode,
		i.RecommendationLevel,
		timeToPgtypeTimestamptz(i.CreatedAt),
	}, nil
}
