package exchangedelete

import "context"

type UseCase interface {
	DeleteExchange(ctx context.Context, exchangeID string) error
}
