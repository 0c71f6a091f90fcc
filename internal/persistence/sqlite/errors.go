package sqlite

import (
	"database/sql"
	"errors"
	"strings"

	"github.com/burakcelikkiran/bilimsel-program-sub003/internal/persistence"
)

// mapError translates driver errors into the persistence sentinels so the
// application layer never depends on SQLite specifics.
func mapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		return persistence.ErrNotFound
	}

	msg := err.Error()
	switch {
	case strings.Contains(msg, "UNIQUE constraint failed"):
		return persistence.ErrDuplicate
	case strings.Contains(msg, "FOREIGN KEY constraint failed"),
		strings.Contains(msg, "foreign key constraint"):
		return persistence.ErrForeignKeyViolation
	case strings.Contains(msg, "CHECK constraint failed"),
		strings.Contains(msg, "constraint failed"):
		return persistence.ErrConstraintViolation
	}

	return err
}

// requireRow converts a zero-row update or delete into ErrNotFound.
func requireRow(result sql.Result) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return persistence.ErrNotFound
	}
	return nil
}
