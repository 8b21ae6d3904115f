package participantadd

import (
	"context"

	"gift-exchange-service/internal/domain"
)

type UseCase interface {
	AddParticipant(ctx context.Context, exchangeID, name string) (domain.Participant, error)
}
