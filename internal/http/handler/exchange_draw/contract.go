package exchangedraw

import (
	"context"

	"gift-exchange-service/internal/domain"
)

type UseCase interface {
	Draw(ctx context.Context, exchangeID string) (domain.Exchange, error)
}
