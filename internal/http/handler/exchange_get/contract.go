package exchangeget

import (
	"context"

	"gift-exchange-service/internal/domain"
)

type UseCase interface {
	GetExchange(ctx context.Context, exchangeID string) (domain.Exchange, error)
}
