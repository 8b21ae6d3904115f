package exchangecreate

import (
	"context"

	"gift-exchange-service/internal/domain"
)

type UseCase interface {
	CreateExchange(ctx context.Context, title string) (domain.Exchange, error)
}
