package participantremove

import "context"

type UseCase interface {
	RemoveParticipant(ctx context.Context, exchangeID, participantID string) error
}
