package repository

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/Masterminds/squirrel"
	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/jackc/pgx/v5"

	"gift-exchange-service/internal/domain"
	"gift-exchange-service/internal/infrastructure/nower"
)

type pgxPool interface {
	trmpgx.Tr
	Close()
	Ping(ctx context.Context) error
}

// Storage инкапсулирует работу с PostgreSQL.
// Все запросы выполняются через ctxGetter, поэтому автоматически попадают
// в транзакцию, открытую transaction manager'ом выше по стеку.
type Storage struct {
	pool   pgxPool
	getter *trmpgx.CtxGetter
	nower  nower.Nower
	sb     squirrel.StatementBuilderType
}

// New создаёт новый слой хранения.
func New(pool pgxPool, nower nower.Nower) *Storage {
	return &Storage{
		pool:   pool,
		getter: trmpgx.DefaultCtxGetter,
		nower:  nower,
		sb:     squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Close освобождает соединения пула.
func (s *Storage) Close() {
	s.pool.Close()
}

// Ping проверяет доступность подключения к БД.
func (s *Storage) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// conn возвращает текущую транзакцию из контекста или пул.
func (s *Storage) conn(ctx context.Context) trmpgx.Tr {
	return s.getter.DefaultTrOrDB(ctx, s.pool)
}

// CreateExchange сохраняет новый обмен.
func (s *Storage) CreateExchange(ctx context.Context, exchange domain.Exchange) (domain.Exchange, error) {
	now := s.nower.Now()
	insertSQL, args, err := s.sb.
		Insert("exchanges").
		Columns("exchange_id", "title", "status", "created_at").
		Values(exchange.ID, exchange.Title, string(domain.ExchangeStatusDraft), now).
		ToSql()
	if err != nil {
		slog.ErrorContext(ctx, "failed to build insert exchange query", "error", err)
		return domain.Exchange{}, buildErr(err)
	}
	if _, err := s.conn(ctx).Exec(ctx, insertSQL, args...); err != nil {
		slog.ErrorContext(ctx, "failed to insert exchange", "error", err)
		return domain.Exchange{}, execErr(err)
	}
	exchange.Status = domain.ExchangeStatusDraft
	exchange.CreatedAt = now
	exchange.DrawnAt = nil
	exchange.Participants = []domain.Participant{}
	exchange.Groups = []domain.Group{}
	exchange.Assignments = nil
	return exchange, nil
}

// GetExchange возвращает обмен со всеми участниками, группами и назначениями.
func (s *Storage) GetExchange(ctx context.Context, exchangeID string) (domain.Exchange, error) {
	return s.getExchange(ctx, exchangeID, false)
}

// GetExchangeForUpdate читает обмен, блокируя его строку до конца текущей транзакции.
// Изменения состава и жеребьёвка одного обмена так выполняются строго по очереди.
func (s *Storage) GetExchangeForUpdate(ctx context.Context, exchangeID string) (domain.Exchange, error) {
	return s.getExchange(ctx, exchangeID, true)
}

func (s *Storage) getExchange(ctx context.Context, exchangeID string, lock bool) (domain.Exchange, error) {
	query := s.sb.
		Select("exchange_id", "title", "status", "created_at", "drawn_at").
		From("exchanges").
		Where(squirrel.Eq{"exchange_id": exchangeID})
	if lock {
		query = query.Suffix("FOR UPDATE")
	}
	selectSQL, args, err := query.ToSql()
	if err != nil {
		return domain.Exchange{}, buildErr(err)
	}

	var ex domain.Exchange
	var drawnAt *time.Time
	err = s.conn(ctx).QueryRow(ctx, selectSQL, args...).
		Scan(&ex.ID, &ex.Title, &ex.Status, &ex.CreatedAt, &drawnAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Exchange{}, domain.ErrExchangeNotFound
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to scan exchange", "error", err)
		return domain.Exchange{}, scanErr(err)
	}
	ex.DrawnAt = drawnAt

	if ex.Participants, err = s.ListParticipants(ctx, exchangeID); err != nil {
		return domain.Exchange{}, err
	}
	if ex.Groups, err = s.ListGroups(ctx, exchangeID); err != nil {
		return domain.Exchange{}, err
	}
	if ex.Assignments, err = s.ListAssignments(ctx, exchangeID); err != nil {
		return domain.Exchange{}, err
	}
	return ex, nil
}

// DeleteExchange удаляет обмен. Участники, группы и назначения удаляются каскадно.
func (s *Storage) DeleteExchange(ctx context.Context, exchangeID string) error {
	deleteSQL, args, err := s.sb.
		Delete("exchanges").
		Where(squirrel.Eq{"exchange_id": exchangeID}).
		ToSql()
	if err != nil {
		return buildErr(err)
	}
	cmd, err := s.conn(ctx).Exec(ctx, deleteSQL, args...)
	if err != nil {
		slog.ErrorContext(ctx, "failed to delete exchange", "error", err)
		return execErr(err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrExchangeNotFound
	}
	return nil
}

// AddParticipant добавляет участника в конец списка обмена.
func (s *Storage) AddParticipant(ctx context.Context, exchangeID string, participant domain.Participant) (domain.Participant, error) {
	insertSQL, args, err := s.sb.
		Insert("participants").
		Columns("participant_id", "exchange_id", "name", "group_id", "position", "created_at").
		Values(
			participant.ID,
			exchangeID,
			participant.Name,
			participant.GroupID,
			squirrel.Expr("(SELECT COALESCE(MAX(position), 0) + 1 FROM participants WHERE exchange_id = ?)", exchangeID),
			s.nower.Now(),
		).
		ToSql()
	if err != nil {
		slog.ErrorContext(ctx, "failed to build insert participant query", "error", err)
		return domain.Participant{}, buildErr(err)
	}
	if _, err := s.conn(ctx).Exec(ctx, insertSQL, args...); err != nil {
		if isForeignKeyViolation(err) {
			return domain.Participant{}, domain.ErrExchangeNotFound
		}
		slog.ErrorContext(ctx, "failed to insert participant", "error", err, "participant_id", participant.ID)
		return domain.Participant{}, execErr(err)
	}
	return participant, nil
}

// UpdateParticipant обновляет имя и группу участника.
func (s *Storage) UpdateParticipant(ctx context.Context, exchangeID string, participant domain.Participant) (domain.Participant, error) {
	updateSQL, args, err := s.sb.
		Update("participants").
		Set("name", participant.Name).
		Set("group_id", participant.GroupID).
		Where(squirrel.Eq{"exchange_id": exchangeID, "participant_id": participant.ID}).
		ToSql()
	if err != nil {
		return domain.Participant{}, buildErr(err)
	}
	cmd, err := s.conn(ctx).Exec(ctx, updateSQL, args...)
	if err != nil {
		slog.ErrorContext(ctx, "failed to update participant", "error", err, "participant_id", participant.ID)
		return domain.Participant{}, execErr(err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.Participant{}, domain.ErrParticipantNotFound
	}
	return participant, nil
}

// RemoveParticipant удаляет участника из обмена.
func (s *Storage) RemoveParticipant(ctx context.Context, exchangeID, participantID string) error {
	deleteSQL, args, err := s.sb.
		Delete("participants").
		Where(squirrel.Eq{"exchange_id": exchangeID, "participant_id": participantID}).
		ToSql()
	if err != nil {
		return buildErr(err)
	}
	cmd, err := s.conn(ctx).Exec(ctx, deleteSQL, args...)
	if err != nil {
		slog.ErrorContext(ctx, "failed to delete participant", "error", err, "participant_id", participantID)
		return execErr(err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrParticipantNotFound
	}
	return nil
}

// ListParticipants возвращает участников в порядке добавления.
func (s *Storage) ListParticipants(ctx context.Context, exchangeID string) ([]domain.Participant, error) {
	selectSQL, args, err := s.sb.
		Select("participant_id", "name", "group_id").
		From("participants").
		Where(squirrel.Eq{"exchange_id": exchangeID}).
		OrderBy("position ASC").
		ToSql()
	if err != nil {
		return nil, buildErr(err)
	}
	rows, err := s.conn(ctx).Query(ctx, selectSQL, args...)
	if err != nil {
		slog.ErrorContext(ctx, "failed to query participants", "error", err)
		return nil, execErr(err)
	}
	defer rows.Close()

	participants := []domain.Participant{}
	for rows.Next() {
		var p domain.Participant
		if err := rows.Scan(&p.ID, &p.Name, &p.GroupID); err != nil {
			return nil, scanErr(err)
		}
		participants = append(participants, p)
	}
	return participants, rows.Err()
}

// CreateGroup сохраняет группу исключений.
func (s *Storage) CreateGroup(ctx context.Context, exchangeID string, group domain.Group) (domain.Group, error) {
	insertSQL, args, err := s.sb.
		Insert("exchange_groups").
		Columns("group_id", "exchange_id", "label", "created_at").
		Values(group.ID, exchangeID, group.Label, s.nower.Now()).
		ToSql()
	if err != nil {
		return domain.Group{}, buildErr(err)
	}
	if _, err := s.conn(ctx).Exec(ctx, insertSQL, args...); err != nil {
		if isForeignKeyViolation(err) {
			return domain.Group{}, domain.ErrExchangeNotFound
		}
		slog.ErrorContext(ctx, "failed to insert group", "error", err, "group_id", group.ID)
		return domain.Group{}, execErr(err)
	}
	return group, nil
}

// GroupExists проверяет, что группа принадлежит обмену.
func (s *Storage) GroupExists(ctx context.Context, exchangeID, groupID string) (bool, error) {
	existsSQL, args, err := s.sb.
		Select("1").
		From("exchange_groups").
		Where(squirrel.Eq{"exchange_id": exchangeID, "group_id": groupID}).
		ToSql()
	if err != nil {
		return false, buildErr(err)
	}
	var exists bool
	if err := s.conn(ctx).QueryRow(ctx, "SELECT EXISTS("+existsSQL+")", args...).Scan(&exists); err != nil {
		return false, execErr(err)
	}
	return exists, nil
}

// ListGroups возвращает группы обмена, включая пустые.
func (s *Storage) ListGroups(ctx context.Context, exchangeID string) ([]domain.Group, error) {
	selectSQL, args, err := s.sb.
		Select("group_id", "label").
		From("exchange_groups").
		Where(squirrel.Eq{"exchange_id": exchangeID}).
		OrderBy("created_at ASC", "group_id ASC").
		ToSql()
	if err != nil {
		return nil, buildErr(err)
	}
	rows, err := s.conn(ctx).Query(ctx, selectSQL, args...)
	if err != nil {
		return nil, execErr(err)
	}
	defer rows.Close()

	groups := []domain.Group{}
	for rows.Next() {
		var g domain.Group
		if err := rows.Scan(&g.ID, &g.Label); err != nil {
			return nil, scanErr(err)
		}
		groups = append(groups, g)
	}
	return groups, rows.Err()
}

// ReplaceAssignments заменяет набор назначений целиком и помечает обмен как разыгранный.
// Вызывающий обязан выполнять метод внутри транзакции, иначе атомарность не гарантируется.
func (s *Storage) ReplaceAssignments(ctx context.Context, exchangeID string, assignments []domain.Assignment) error {
	conn := s.conn(ctx)
	if err := s.deleteAssignments(ctx, conn, exchangeID); err != nil {
		return err
	}

	batch := &pgx.Batch{}
	for _, a := range assignments {
		batch.Queue(`
			INSERT INTO assignments (exchange_id, giver_id, receiver_id)
			VALUES ($1,$2,$3)
		`, exchangeID, a.GiverID, a.ReceiverID)
	}
	if err := conn.SendBatch(ctx, batch).Close(); err != nil {
		slog.ErrorContext(ctx, "failed to insert assignments", "error", err)
		return execErr(err)
	}
	return s.setStatus(ctx, conn, exchangeID, domain.ExchangeStatusDrawn, s.nower.Now())
}

// ClearAssignments удаляет результат жеребьёвки и возвращает обмен в черновик.
func (s *Storage) ClearAssignments(ctx context.Context, exchangeID string) error {
	conn := s.conn(ctx)
	if err := s.deleteAssignments(ctx, conn, exchangeID); err != nil {
		return err
	}
	return s.setStatus(ctx, conn, exchangeID, domain.ExchangeStatusDraft, squirrel.Expr("NULL"))
}

// ListAssignments возвращает назначения в порядке дарителей.
func (s *Storage) ListAssignments(ctx context.Context, exchangeID string) ([]domain.Assignment, error) {
	selectSQL, args, err := s.sb.
		Select("a.giver_id", "a.receiver_id").
		From("assignments a").
		Join("participants p ON p.exchange_id = a.exchange_id AND p.participant_id = a.giver_id").
		Where(squirrel.Eq{"a.exchange_id": exchangeID}).
		OrderBy("p.position ASC").
		ToSql()
	if err != nil {
		return nil, buildErr(err)
	}
	rows, err := s.conn(ctx).Query(ctx, selectSQL, args...)
	if err != nil {
		return nil, execErr(err)
	}
	defer rows.Close()

	var assignments []domain.Assignment
	for rows.Next() {
		var a domain.Assignment
		if err := rows.Scan(&a.GiverID, &a.ReceiverID); err != nil {
			return nil, scanErr(err)
		}
		assignments = append(assignments, a)
	}
	return assignments, rows.Err()
}

func (s *Storage) deleteAssignments(ctx context.Context, conn trmpgx.Tr, exchangeID string) error {
	deleteSQL, args, err := s.sb.
		Delete("assignments").
		Where(squirrel.Eq{"exchange_id": exchangeID}).
		ToSql()
	if err != nil {
		return buildErr(err)
	}
	if _, err := conn.Exec(ctx, deleteSQL, args...); err != nil {
		slog.ErrorContext(ctx, "failed to delete assignments", "error", err)
		return execErr(err)
	}
	return nil
}

func (s *Storage) setStatus(ctx context.Context, conn trmpgx.Tr, exchangeID string, status domain.ExchangeStatus, drawnAt any) error {
	updateSQL, args, err := s.sb.
		Update("exchanges").
		Set("status", string(status)).
		Set("drawn_at", drawnAt).
		Where(squirrel.Eq{"exchange_id": exchangeID}).
		ToSql()
	if err != nil {
		return buildErr(err)
	}
	cmd, err := conn.Exec(ctx, updateSQL, args...)
	if err != nil {
		slog.ErrorContext(ctx, "failed to update exchange status", "error", err)
		return execErr(err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrExchangeNotFound
	}
	return nil
}
