package exchange

import "gift-exchange-service/internal/domain"

// CheckFeasibility быстро отсекает заведомо невыполнимые конфигурации, не запуская выборку.
//
// Проверки идут по порядку до первого провала:
//  1. меньше двух участников;
//  2. все участники в одной группе;
//  3. самая большая группа больше floor(n/2).
//
// Условие необходимое, но не достаточное: положительный вердикт окончательно
// подтверждает только Generator.
func CheckFeasibility(participants []domain.Participant) domain.Feasibility {
	n := len(participants)
	if n < 2 {
		return domain.Feasibility{Reason: domain.ReasonTooFewParticipants}
	}
	sizes := GroupSizes(participants)
	if len(sizes) == 1 {
		return domain.Feasibility{Reason: domain.ReasonSingleGroup}
	}
	var largest int
	for _, size := range sizes {
		largest = max(largest, size)
	}
	if largest > n/2 {
		return domain.Feasibility{Reason: domain.ReasonOversizedGroup}
	}
	return domain.Feasibility{Feasible: true, Reason: domain.ReasonProvisionallyFeasible}
}
