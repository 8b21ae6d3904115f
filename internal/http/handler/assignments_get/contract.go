package assignmentsget

import (
	"context"

	"gift-exchange-service/internal/domain"
)

type UseCase interface {
	Assignments(ctx context.Context, exchangeID string) ([]domain.Assignment, error)
}
