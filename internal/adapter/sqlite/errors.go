package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	sqlitelib "modernc.org/sqlite"
	sqlitelib3 "modernc.org/sqlite/lib"

	"github.com/heartmarshall/wordnet-engine/internal/domain"
)

// MapError converts database/sql and modernc.org/sqlite errors to domain errors.
// context.DeadlineExceeded and context.Canceled are NOT mapped — they pass through.
func MapError(err error, entity string, id string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s %s: %w", entity, id, err)
	}

	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s %s: %w", entity, id, domain.ErrNotFound)
	}

	var sqliteErr *sqlitelib.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlitelib3.SQLITE_CONSTRAINT_PRIMARYKEY, sqlitelib3.SQLITE_CONSTRAINT_UNIQUE:
			return fmt.Errorf("%s %s: %w", entity, id, domain.ErrLexiconExists)
		case sqlitelib3.SQLITE_CONSTRAINT_FOREIGNKEY:
			return fmt.Errorf("%s %s: %w", entity, id, domain.ErrNotFound)
		case sqlitelib3.SQLITE_BUSY:
			return fmt.Errorf("%s %s: %w", entity, id, domain.ErrBusy)
		}
	}

	// modernc.org/sqlite sometimes surfaces busy/locked purely in the message
	// (e.g. wrapped through database/sql's driver.ErrBadConn path).
	if strings.Contains(err.Error(), "SQLITE_BUSY") || strings.Contains(err.Error(), "database is locked") {
		return fmt.Errorf("%s %s: %w", entity, id, domain.ErrBusy)
	}

	return fmt.Errorf("%s %s: %w", entity, id, err)
}
