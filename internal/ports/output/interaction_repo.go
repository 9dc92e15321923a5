package output

import (
	"context"

	"factskill/internal/domain/entities"
)

type InteractionRepository interface {
	Create(ctx context.Context, interaction *entities.Interaction) error
}
