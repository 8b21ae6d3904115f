package repository

import (
	"context"

	"gift-exchange-service/internal/domain"
)

// Repository объединяет все доменные репозитории.
type Repository interface {
	ExchangeRepository
	ParticipantRepository
	GroupRepository
	AssignmentRepository
}

// ExchangeRepository содержит операции для работы с обменами.
type ExchangeRepository interface {
	CreateExchange(ctx context.Context, exchange domain.Exchange) (domain.Exchange, error)
	GetExchange(ctx context.Context, exchangeID string) (domain.Exchange, error)
	// GetExchangeForUpdate вызывается только внутри транзакции: строка обмена блокируется до её конца.
	GetExchangeForUpdate(ctx context.Context, exchangeID string) (domain.Exchange, error)
	DeleteExchange(ctx context.Context, exchangeID string) error
}

// ParticipantRepository содержит операции для работы с участниками.
// ListParticipants возвращает участников в порядке добавления: это порядок дарителей.
type ParticipantRepository interface {
	AddParticipant(ctx context.Context, exchangeID string, participant domain.Participant) (domain.Participant, error)
	UpdateParticipant(ctx context.Context, exchangeID string, participant domain.Participant) (domain.Participant, error)
	RemoveParticipant(ctx context.Context, exchangeID, participantID string) error
	ListParticipants(ctx context.Context, exchangeID string) ([]domain.Participant, error)
}

// GroupRepository содержит операции для работы с группами исключений.
type GroupRepository interface {
	CreateGroup(ctx context.Context, exchangeID string, group domain.Group) (domain.Group, error)
	GroupExists(ctx context.Context, exchangeID, groupID string) (bool, error)
	ListGroups(ctx context.Context, exchangeID string) ([]domain.Group, error)
}

// AssignmentRepository хранит результат жеребьёвки. Набор назначений заменяется целиком.
type AssignmentRepository interface {
	ReplaceAssignments(ctx context.Context, exchangeID string, assignments []domain.Assignment) error
	ClearAssignments(ctx context.Context, exchangeID string) error
	ListAssignments(ctx context.Context, exchangeID string) ([]domain.Assignment, error)
}

// HealthChecker описывает метод проверки соединения.
type HealthChecker interface {
	Ping(ctx context.Context) error
}
