package revealget

import (
	"context"

	"gift-exchange-service/internal/service"
)

type UseCase interface {
	RevealSequence(ctx context.Context, exchangeID, giverID string, count int) (service.RevealResult, error)
}
