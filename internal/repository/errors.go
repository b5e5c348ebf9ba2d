package repository

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
)

// Names of the unique indexes declared on models.Application.
const (
	indexActiveDraw           = "idx_applications_active_draw"
	indexConfirmationCode     = "idx_applications_confirmation_code"
	indexValidatedTransaction = "idx_applications_validated_transaction"
)

// pgUniqueViolation is the SQLSTATE for unique_violation.
const pgUniqueViolation = "23505"

// SQLite reports the indexed columns instead of the index name.
var sqliteUniqueColumns = map[string]string{
	"applications.draw":              indexActiveDraw,
	"applications.confirmation_code": indexConfirmationCode,
	"applications.transaction_id":    indexValidatedTransaction,
}

// uniqueViolation reports whether err is a unique constraint violation and,
// when it can be told, which of the application indexes was hit.
func uniqueViolation(err error) (string, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code != pgUniqueViolation {
			return "", false
		}
		return pgErr.ConstraintName, true
	}

	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		if sqliteErr.ExtendedCode != sqlite3.ErrConstraintUnique {
			return "", false
		}
		msg := sqliteErr.Error()
		for column, index := range sqliteUniqueColumns {
			if strings.Contains(msg, column) {
				return index, true
			}
		}
		return "", true
	}

	return "", false
}
