package exchange

import (
	"errors"
	"fmt"

	"gift-exchange-service/internal/domain"
)

// ErrInvalidAssignment набор назначений нарушает ограничения.
var ErrInvalidAssignment = errors.New("invalid assignment set")

// Validate проверяет, что assignments является корректной перестановкой participants:
// у каждого участника ровно один получатель, каждый получает ровно один раз,
// нет самоназначений и пар внутри группы.
func Validate(participants []domain.Participant, assignments []domain.Assignment) error {
	if len(assignments) != len(participants) {
		return fmt.Errorf("%w: got %d assignments for %d participants", ErrInvalidAssignment, len(assignments), len(participants))
	}
	groups := make(map[string]string, len(participants))
	for _, p := range participants {
		groups[p.ID] = p.GroupID
	}
	givers := make(map[string]struct{}, len(assignments))
	receivers := make(map[string]struct{}, len(assignments))
	for _, a := range assignments {
		giverGroup, ok := groups[a.GiverID]
		if !ok {
			return fmt.Errorf("%w: unknown giver %s", ErrInvalidAssignment, a.GiverID)
		}
		receiverGroup, ok := groups[a.ReceiverID]
		if !ok {
			return fmt.Errorf("%w: unknown receiver %s", ErrInvalidAssignment, a.ReceiverID)
		}
		if a.GiverID == a.ReceiverID {
			return fmt.Errorf("%w: %s gives to self", ErrInvalidAssignment, a.GiverID)
		}
		if giverGroup == receiverGroup {
			return fmt.Errorf("%w: %s and %s share group %s", ErrInvalidAssignment, a.GiverID, a.ReceiverID, giverGroup)
		}
		if _, dup := givers[a.GiverID]; dup {
			return fmt.Errorf("%w: %s gives twice", ErrInvalidAssignment, a.GiverID)
		}
		if _, dup := receivers[a.ReceiverID]; dup {
			return fmt.Errorf("%w: %s receives twice", ErrInvalidAssignment, a.ReceiverID)
		}
		givers[a.GiverID] = struct{}{}
		receivers[a.ReceiverID] = struct{}{}
	}
	return nil
}
