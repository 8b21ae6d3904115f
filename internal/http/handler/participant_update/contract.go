package participantupdate

import (
	"context"

	"gift-exchange-service/internal/domain"
	"gift-exchange-service/internal/service"
)

type UseCase interface {
	UpdateParticipant(ctx context.Context, exchangeID, participantID string, update service.ParticipantUpdate) (domain.Participant, error)
}
