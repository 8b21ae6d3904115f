package exchange

import (
	"gift-exchange-service/internal/domain"
	"gift-exchange-service/internal/infrastructure/randomizer"
)

// Result подробный итог генерации.
type Result struct {
	Assignments []domain.Assignment
	Attempts    int
	OK          bool
}

// Generator подбирает назначения методом отбраковки: перемешивает получателей
// и принимает первую перестановку, прошедшую все ограничения.
type Generator struct {
	randomizer randomizer.Randomizer
}

func NewGenerator(randomizer randomizer.Randomizer) *Generator {
	return &Generator{randomizer: randomizer}
}

// Generate возвращает полный набор назначений или (nil, false), если за
// maxAttempts попыток решение не найдено. maxAttempts <= 0 означает значение по умолчанию.
// Предусловие: CheckFeasibility вернул Feasible, иначе успех не ожидается.
func (g *Generator) Generate(participants []domain.Participant, maxAttempts int) ([]domain.Assignment, bool) {
	res := g.GenerateDetailed(participants, maxAttempts)
	return res.Assignments, res.OK
}

// GenerateDetailed аналог Generate, дополнительно сообщающий число потраченных попыток.
func (g *Generator) GenerateDetailed(participants []domain.Participant, maxAttempts int) Result {
	if maxAttempts <= 0 {
		maxAttempts = domain.DefaultMaxAttempts
	}
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		receivers := Shuffle(g.randomizer, participants)
		if !acceptable(participants, receivers) {
			continue
		}
		assignments := make([]domain.Assignment, len(participants))
		for i, giver := range participants {
			assignments[i] = domain.Assignment{GiverID: giver.ID, ReceiverID: receivers[i].ID}
		}
		return Result{Assignments: assignments, Attempts: attempt, OK: true}
	}
	return Result{Attempts: maxAttempts}
}

// acceptable проверяет позиции попарно: нельзя дарить себе и своей группе.
func acceptable(givers, receivers []domain.Participant) bool {
	for i := range givers {
		if givers[i].ID == receivers[i].ID || givers[i].GroupID == receivers[i].GroupID {
			return false
		}
	}
	return true
}
