package repository

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// Ошибки слоя хранения. Конкретная причина дописывается текстом после них.
var (
	ErrBuildQuery   = errors.New("failed to build SQL query")
	ErrExecuteQuery = errors.New("failed to execute query")
	ErrScanResult   = errors.New("failed to scan result")
)

// pgForeignKeyViolation код ошибки PostgreSQL при нарушении внешнего ключа.
const pgForeignKeyViolation = "23503"

func buildErr(err error) error {
	return fmt.Errorf("%w: %v", ErrBuildQuery, err)
}

func execErr(err error) error {
	return fmt.Errorf("%w: %v", ErrExecuteQuery, err)
}

func scanErr(err error) error {
	return fmt.Errorf("%w: %v", ErrScanResult, err)
}

// isForeignKeyViolation сообщает, что строка ссылается на несуществующий обмен.
func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation
}
