package domain

import (
	"errors"
	"fmt"
)

// Доменные ошибки, используемые для обработки бизнес-логики.
// Эти ошибки преобразуются в HTTP-ответы в слое обработчиков.
var (
	ErrValidation          = errors.New("validation failed")                         // Базовая ошибка для некорректных входных данных.
	ErrExchangeNotFound    = errors.New("exchange not found")                        // Возникает при обращении к несуществующему обмену.
	ErrParticipantNotFound = errors.New("participant not found")                     // Возникает при обращении к несуществующему участнику.
	ErrGroupNotFound       = errors.New("group not found")                           // Возникает при переносе участника в несуществующую группу.
	ErrDuplicateName       = errors.New("participant name already taken")            // Возникает при добавлении участника с уже занятым именем.
	ErrNotDrawn            = errors.New("exchange is not drawn yet")                 // Возникает при запросе результата до жеребьёвки.
	ErrInfeasible          = errors.New("exchange is structurally infeasible")       // Базовая ошибка для InfeasibleError.
	ErrGenerationExhausted = errors.New("no valid assignment found within attempts") // Проверка пройдена, но выборка не нашла решения. Можно повторить.
)

// InfeasibleError сообщает причину структурной невозможности жеребьёвки.
type InfeasibleError struct {
	Reason FeasibilityReason
}

func (e *InfeasibleError) Error() string {
	return fmt.Sprintf("%s: %s", ErrInfeasible.Error(), e.Reason)
}

// Is позволяет сравнивать через errors.Is(err, ErrInfeasible).
func (e *InfeasibleError) Is(target error) bool {
	return target == ErrInfeasible
}

// NewInfeasibleError создаёт ошибку для причины reason.
func NewInfeasibleError(reason FeasibilityReason) error {
	return &InfeasibleError{Reason: reason}
}
