package input

import (
	"context"

	"factskill/internal/domain"
)

type SkillUseCase interface {
	// Handle always yields a response; failures are turned into a spoken
	// error message.
	Handle(ctx context.Context, req domain.Request) domain.Response
}
