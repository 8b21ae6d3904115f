package groupadd

import (
	"context"

	"gift-exchange-service/internal/domain"
)

type UseCase interface {
	CreateGroup(ctx context.Context, exchangeID, label string) (domain.Group, error)
}
