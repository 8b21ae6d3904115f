package exchangecheck

import (
	"context"

	"gift-exchange-service/internal/domain"
)

type UseCase interface {
	Summary(ctx context.Context, exchangeID string) (domain.ExchangeSummary, error)
}
