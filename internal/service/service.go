package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	trm "github.com/avito-tech/go-transaction-manager/trm/v2"
	"github.com/google/uuid"

	"gift-exchange-service/internal/config"
	"gift-exchange-service/internal/domain"
	"gift-exchange-service/internal/exchange"
	"gift-exchange-service/internal/infrastructure/randomizer"
	"gift-exchange-service/internal/logging"
	"gift-exchange-service/internal/metrics"
	"gift-exchange-service/internal/repository"
)

const (
	// DefaultOperationTimeout таймаут по умолчанию для обычных операций
	DefaultOperationTimeout = 30 * time.Second
	// DefaultLongOperationTimeout таймаут по умолчанию для длительных операций
	DefaultLongOperationTimeout = 60 * time.Second
)

// Repository описывает операции, которые требуются сервису.
type Repository interface {
	repository.Repository
}

// Service агрегирует бизнес-логику приложения.
type Service struct {
	repo       Repository
	health     repository.HealthChecker
	cfg        config.Config
	trMgr      trm.Manager
	randomizer randomizer.Randomizer
	generator  *exchange.Generator
	newID      func() string
}

func New(repo Repository, cfg config.Config, trMgr trm.Manager, randomizer randomizer.Randomizer) *Service {
	svc := &Service{
		repo:       repo,
		cfg:        cfg,
		trMgr:      trMgr,
		randomizer: randomizer,
		generator:  exchange.NewGenerator(randomizer),
		newID:      uuid.NewString,
	}
	if svc.cfg.Timeouts.Operation <= 0 {
		svc.cfg.Timeouts.Operation = DefaultOperationTimeout
	}
	if svc.cfg.Timeouts.LongOperation <= 0 {
		svc.cfg.Timeouts.LongOperation = DefaultLongOperationTimeout
	}
	if svc.cfg.Exchange.MaxAttempts <= 0 {
		svc.cfg.Exchange.MaxAttempts = domain.DefaultMaxAttempts
	}
	if svc.cfg.Exchange.RevealLength <= 0 {
		svc.cfg.Exchange.RevealLength = 30
	}
	if checker, ok := repo.(repository.HealthChecker); ok {
		svc.health = checker
	}
	return svc
}

// ParticipantUpdate описывает частичное изменение участника. nil-поля не меняются.
type ParticipantUpdate struct {
	Name    *string
	GroupID *string
}

// DrawResult итог жеребьёвки без сохранения.
type DrawResult struct {
	Assignments []domain.Assignment `json:"assignments"`
	Attempts    int                 `json:"attempts"`
}

// RevealResult лента для анимации розыгрыша и итоговый получатель.
type RevealResult struct {
	GiverID  string             `json:"giver_id"`
	Sequence []string           `json:"sequence"`
	Receiver domain.Participant `json:"receiver"`
}

// CreateExchange создаёт пустой обмен в статусе DRAFT.
func (s *Service) CreateExchange(ctx context.Context, title string) (domain.Exchange, error) {
	ctx, cancel := s.shortOperationContext(ctx)
	defer cancel()

	if err := ValidateTitle(title); err != nil {
		return domain.Exchange{}, err
	}
	created, err := s.repo.CreateExchange(ctx, domain.Exchange{
		ID:    s.newID(),
		Title: strings.TrimSpace(title),
	})
	if err != nil {
		return domain.Exchange{}, err
	}
	metrics.IncExchangesCreated()
	slog.InfoContext(logging.WithLogExchangeID(ctx, created.ID), "exchange created")
	return created, nil
}

// GetExchange возвращает обмен вместе с участниками, группами и назначениями.
func (s *Service) GetExchange(ctx context.Context, exchangeID string) (domain.Exchange, error) {
	ctx, cancel := s.shortOperationContext(ctx)
	defer cancel()

	if err := ValidateID("exchange_id", exchangeID); err != nil {
		return domain.Exchange{}, err
	}
	return s.repo.GetExchange(ctx, exchangeID)
}

// DeleteExchange удаляет обмен целиком.
func (s *Service) DeleteExchange(ctx context.Context, exchangeID string) error {
	ctx, cancel := s.shortOperationContext(ctx)
	defer cancel()

	if err := ValidateID("exchange_id", exchangeID); err != nil {
		return err
	}
	if err := s.repo.DeleteExchange(ctx, exchangeID); err != nil {
		return err
	}
	slog.InfoContext(logging.WithLogExchangeID(ctx, exchangeID), "exchange deleted")
	return nil
}

// Summary возвращает вычисляемые свойства обмена: дубли имён, размер групп и вердикт проверки.
func (s *Service) Summary(ctx context.Context, exchangeID string) (domain.ExchangeSummary, error) {
	ctx, cancel := s.shortOperationContext(ctx)
	defer cancel()

	if err := ValidateID("exchange_id", exchangeID); err != nil {
		return domain.ExchangeSummary{}, err
	}
	ex, err := s.repo.GetExchange(ctx, exchangeID)
	if err != nil {
		return domain.ExchangeSummary{}, err
	}
	return summarize(ex.Participants), nil
}

// AddParticipant добавляет участника в одиночную группу.
func (s *Service) AddParticipant(ctx context.Context, exchangeID, name string) (domain.Participant, error) {
	ctx, cancel := s.shortOperationContext(ctx)
	defer cancel()

	if err := ValidateID("exchange_id", exchangeID); err != nil {
		return domain.Participant{}, err
	}
	if err := ValidateName("name", name); err != nil {
		return domain.Participant{}, err
	}
	ctx = logging.WithLogExchangeID(ctx, exchangeID)

	id := "p_" + s.newID()
	participant := domain.Participant{ID: id, Name: strings.TrimSpace(name), GroupID: id}
	err := s.trMgr.Do(ctx, func(ctx context.Context) error {
		ex, err := s.repo.GetExchangeForUpdate(ctx, exchangeID)
		if err != nil {
			return err
		}
		if nameTaken(ex.Participants, participant.Name, "") {
			return domain.ErrDuplicateName
		}
		if participant, err = s.repo.AddParticipant(ctx, exchangeID, participant); err != nil {
			return err
		}
		return s.resetIfDrawn(ctx, ex)
	})
	if err != nil {
		return domain.Participant{}, logging.WrapError(ctx, err)
	}
	metrics.AddParticipantsAdded(1)
	slog.InfoContext(logging.WithLogParticipantID(ctx, participant.ID), "participant added")
	return participant, nil
}

// UpdateParticipant переименовывает участника и/или переносит его в другую группу.
// Пустой GroupID возвращает участника в одиночную группу.
func (s *Service) UpdateParticipant(ctx context.Context, exchangeID, participantID string, update ParticipantUpdate) (domain.Participant, error) {
	ctx, cancel := s.shortOperationContext(ctx)
	defer cancel()

	if err := ValidateID("exchange_id", exchangeID); err != nil {
		return domain.Participant{}, err
	}
	if err := ValidateID("participant_id", participantID); err != nil {
		return domain.Participant{}, err
	}
	if update.Name != nil {
		if err := ValidateName("name", *update.Name); err != nil {
			return domain.Participant{}, err
		}
	}
	ctx = logging.WithLogParticipantID(logging.WithLogExchangeID(ctx, exchangeID), participantID)
	if update.GroupID != nil && *update.GroupID != "" {
		ctx = logging.WithLogGroupID(ctx, *update.GroupID)
	}

	var updated domain.Participant
	err := s.trMgr.Do(ctx, func(ctx context.Context) error {
		ex, err := s.repo.GetExchangeForUpdate(ctx, exchangeID)
		if err != nil {
			return err
		}
		current, ok := findParticipant(ex.Participants, participantID)
		if !ok {
			return domain.ErrParticipantNotFound
		}
		updated = current
		if update.Name != nil {
			name := strings.TrimSpace(*update.Name)
			if nameTaken(ex.Participants, name, participantID) {
				return domain.ErrDuplicateName
			}
			updated.Name = name
		}
		if update.GroupID != nil {
			groupID := strings.TrimSpace(*update.GroupID)
			if groupID == "" {
				groupID = participantID
			} else {
				exists, err := s.repo.GroupExists(ctx, exchangeID, groupID)
				if err != nil {
					return err
				}
				if !exists {
					return domain.ErrGroupNotFound
				}
			}
			updated.GroupID = groupID
		}
		if updated == current {
			return nil
		}
		if updated, err = s.repo.UpdateParticipant(ctx, exchangeID, updated); err != nil {
			return err
		}
		return s.resetIfDrawn(ctx, ex)
	})
	if err != nil {
		return domain.Participant{}, logging.WrapError(ctx, err)
	}
	return updated, nil
}

// RenameParticipant меняет имя участника.
func (s *Service) RenameParticipant(ctx context.Context, exchangeID, participantID, name string) (domain.Participant, error) {
	return s.UpdateParticipant(ctx, exchangeID, participantID, ParticipantUpdate{Name: &name})
}

// MoveParticipantToGroup переносит участника в группу groupID.
func (s *Service) MoveParticipantToGroup(ctx context.Context, exchangeID, participantID, groupID string) (domain.Participant, error) {
	return s.UpdateParticipant(ctx, exchangeID, participantID, ParticipantUpdate{GroupID: &groupID})
}

// RemoveParticipant удаляет участника из обмена.
func (s *Service) RemoveParticipant(ctx context.Context, exchangeID, participantID string) error {
	ctx, cancel := s.shortOperationContext(ctx)
	defer cancel()

	if err := ValidateID("exchange_id", exchangeID); err != nil {
		return err
	}
	if err := ValidateID("participant_id", participantID); err != nil {
		return err
	}
	ctx = logging.WithLogParticipantID(logging.WithLogExchangeID(ctx, exchangeID), participantID)

	err := s.trMgr.Do(ctx, func(ctx context.Context) error {
		ex, err := s.repo.GetExchangeForUpdate(ctx, exchangeID)
		if err != nil {
			return err
		}
		if err := s.repo.RemoveParticipant(ctx, exchangeID, participantID); err != nil {
			return err
		}
		return s.resetIfDrawn(ctx, ex)
	})
	if err != nil {
		return logging.WrapError(ctx, err)
	}
	slog.InfoContext(ctx, "participant removed")
	return nil
}

// CreateGroup создаёт группу исключений.
func (s *Service) CreateGroup(ctx context.Context, exchangeID, label string) (domain.Group, error) {
	ctx, cancel := s.shortOperationContext(ctx)
	defer cancel()

	if err := ValidateID("exchange_id", exchangeID); err != nil {
		return domain.Group{}, err
	}
	if err := ValidateName("label", label); err != nil {
		return domain.Group{}, err
	}
	group := domain.Group{ID: "g_" + s.newID(), Label: strings.TrimSpace(label)}
	ctx = logging.WithLogGroupID(logging.WithLogExchangeID(ctx, exchangeID), group.ID)

	created, err := s.repo.CreateGroup(ctx, exchangeID, group)
	if err != nil {
		return domain.Group{}, logging.WrapError(ctx, err)
	}
	slog.InfoContext(ctx, "group created")
	return created, nil
}

// Draw проводит жеребьёвку и атомарно сохраняет результат.
func (s *Service) Draw(ctx context.Context, exchangeID string) (domain.Exchange, error) {
	ctx, cancel := s.longOperationContext(ctx)
	defer cancel()

	if err := ValidateID("exchange_id", exchangeID); err != nil {
		return domain.Exchange{}, err
	}
	ctx = logging.WithLogExchangeID(ctx, exchangeID)

	var drawn domain.Exchange
	err := s.trMgr.Do(ctx, func(ctx context.Context) error {
		ex, err := s.repo.GetExchangeForUpdate(ctx, exchangeID)
		if err != nil {
			return err
		}
		res, err := s.draw(ctx, ex.Participants, s.cfg.Exchange.MaxAttempts)
		if err != nil {
			return err
		}
		if err := s.repo.ReplaceAssignments(ctx, exchangeID, res.Assignments); err != nil {
			return err
		}
		drawn, err = s.repo.GetExchange(ctx, exchangeID)
		return err
	})
	if err != nil {
		return domain.Exchange{}, logging.WrapError(ctx, err)
	}
	return drawn, nil
}

// Assignments возвращает сохранённый результат жеребьёвки.
func (s *Service) Assignments(ctx context.Context, exchangeID string) ([]domain.Assignment, error) {
	ctx, cancel := s.shortOperationContext(ctx)
	defer cancel()

	if err := ValidateID("exchange_id", exchangeID); err != nil {
		return nil, err
	}
	ex, err := s.repo.GetExchange(ctx, exchangeID)
	if err != nil {
		return nil, err
	}
	if ex.Status != domain.ExchangeStatusDrawn {
		return nil, domain.ErrNotDrawn
	}
	return ex.Assignments, nil
}

// RevealSequence строит ленту имён для анимации, которая заканчивается получателем giverID.
// count <= 0 означает длину из конфигурации.
func (s *Service) RevealSequence(ctx context.Context, exchangeID, giverID string, count int) (RevealResult, error) {
	ctx, cancel := s.shortOperationContext(ctx)
	defer cancel()

	if err := ValidateID("exchange_id", exchangeID); err != nil {
		return RevealResult{}, err
	}
	if err := ValidateID("giver_id", giverID); err != nil {
		return RevealResult{}, err
	}
	if err := ValidateRevealCount(count); err != nil {
		return RevealResult{}, err
	}
	if count == 0 {
		count = s.cfg.Exchange.RevealLength
	}
	ex, err := s.repo.GetExchange(ctx, exchangeID)
	if err != nil {
		return RevealResult{}, err
	}
	if ex.Status != domain.ExchangeStatusDrawn {
		return RevealResult{}, domain.ErrNotDrawn
	}
	var receiverID string
	for _, a := range ex.Assignments {
		if a.GiverID == giverID {
			receiverID = a.ReceiverID
			break
		}
	}
	receiver, ok := findParticipant(ex.Participants, receiverID)
	if !ok {
		return RevealResult{}, domain.ErrParticipantNotFound
	}

	dummies := exchange.DummyList(s.randomizer, ex.Participants, count, receiver.ID, func(p domain.Participant) string {
		return p.ID
	})
	sequence := make([]string, 0, len(dummies)+1)
	for _, p := range dummies {
		sequence = append(sequence, p.Name)
	}
	sequence = append(sequence, receiver.Name)
	return RevealResult{GiverID: giverID, Sequence: sequence, Receiver: receiver}, nil
}

// PreviewCheck выполняет предварительную проверку для произвольного списка без сохранения.
func (s *Service) PreviewCheck(ctx context.Context, participants []domain.Participant) (domain.Feasibility, error) {
	if err := ValidateParticipants(participants); err != nil {
		return domain.Feasibility{}, err
	}
	return exchange.CheckFeasibility(exchange.Normalize(participants)), nil
}

// PreviewDraw проводит жеребьёвку для произвольного списка без сохранения.
// maxAttempts == 0 означает лимит из конфигурации.
func (s *Service) PreviewDraw(ctx context.Context, participants []domain.Participant, maxAttempts int) (DrawResult, error) {
	ctx, cancel := s.longOperationContext(ctx)
	defer cancel()

	if err := ValidateParticipants(participants); err != nil {
		return DrawResult{}, err
	}
	if err := ValidateMaxAttempts(maxAttempts); err != nil {
		return DrawResult{}, err
	}
	if maxAttempts == 0 {
		maxAttempts = s.cfg.Exchange.MaxAttempts
	}
	return s.draw(ctx, participants, maxAttempts)
}

// HealthCheck возвращает состояние зависимостей сервиса.
func (s *Service) HealthCheck(ctx context.Context) error {
	if s.health == nil {
		return nil
	}
	ctx, cancel := s.shortOperationContext(ctx)
	defer cancel()
	return s.health.Ping(ctx)
}

// draw общий путь жеребьёвки: нормализация, проверка, выборка, контроль результата.
func (s *Service) draw(ctx context.Context, participants []domain.Participant, maxAttempts int) (DrawResult, error) {
	normalized := exchange.Normalize(participants)
	ctx = logging.WithLogParticipantsCount(ctx, len(normalized))

	verdict := exchange.CheckFeasibility(normalized)
	if !verdict.Feasible {
		metrics.IncDrawInfeasible(string(verdict.Reason))
		slog.InfoContext(ctx, "draw rejected by pre-check", "reason", verdict.Reason)
		return DrawResult{}, domain.NewInfeasibleError(verdict.Reason)
	}

	res := s.generator.GenerateDetailed(normalized, maxAttempts)
	ctx = logging.WithLogDrawAttempts(ctx, res.Attempts)
	if !res.OK {
		metrics.ObserveDrawExhausted(res.Attempts)
		slog.WarnContext(ctx, "draw exhausted attempt budget")
		return DrawResult{}, domain.ErrGenerationExhausted
	}
	if err := exchange.Validate(normalized, res.Assignments); err != nil {
		slog.ErrorContext(ctx, "generator produced invalid assignment set", "error", err)
		return DrawResult{}, fmt.Errorf("validate assignments: %w", err)
	}
	metrics.ObserveDrawSucceeded(res.Attempts)
	slog.InfoContext(ctx, "draw succeeded")
	return DrawResult{Assignments: res.Assignments, Attempts: res.Attempts}, nil
}

// resetIfDrawn сбрасывает устаревший результат после изменения состава.
func (s *Service) resetIfDrawn(ctx context.Context, ex domain.Exchange) error {
	if ex.Status != domain.ExchangeStatusDrawn {
		return nil
	}
	slog.InfoContext(ctx, "roster changed, assignments cleared")
	return s.repo.ClearAssignments(ctx, ex.ID)
}

// shortOperationContext создаёт контекст с таймаутом для обычных операций.
func (s *Service) shortOperationContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.cfg.Timeouts.Operation)
}

// longOperationContext создаёт контекст с таймаутом для длительных операций.
func (s *Service) longOperationContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.cfg.Timeouts.LongOperation)
}

func summarize(participants []domain.Participant) domain.ExchangeSummary {
	normalized := exchange.Normalize(participants)
	duplicates := exchange.DuplicateNames(normalized)
	return domain.ExchangeSummary{
		ParticipantCount:     len(normalized),
		MaxGroupSize:         exchange.MaxGroupSize(normalized),
		DuplicateNames:       duplicates,
		CanProceedToGrouping: len(normalized) >= 2 && len(duplicates) == 0,
		Feasibility:          exchange.CheckFeasibility(normalized),
	}
}

func findParticipant(participants []domain.Participant, id string) (domain.Participant, bool) {
	for _, p := range participants {
		if p.ID == id {
			return p, true
		}
	}
	return domain.Participant{}, false
}

// nameTaken ищет совпадение нормализованного имени среди участников, кроме exceptID.
func nameTaken(participants []domain.Participant, name, exceptID string) bool {
	normalized := exchange.NormalizeName(name)
	for _, p := range participants {
		if p.ID != exceptID && exchange.NormalizeName(p.Name) == normalized {
			return true
		}
	}
	return false
}
