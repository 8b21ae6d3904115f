package drawpreview

import (
	"context"

	"gift-exchange-service/internal/domain"
	"gift-exchange-service/internal/service"
)

type UseCase interface {
	PreviewDraw(ctx context.Context, participants []domain.Participant, maxAttempts int) (service.DrawResult, error)
}
