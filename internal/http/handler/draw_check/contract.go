package drawcheck

import (
	"context"

	"gift-exchange-service/internal/domain"
)

type UseCase interface {
	PreviewCheck(ctx context.Context, participants []domain.Participant) (domain.Feasibility, error)
}
