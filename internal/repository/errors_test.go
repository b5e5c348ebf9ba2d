package repository

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/argab/lottery/internal/models"
	"github.com/argab/lottery/pkg/logger"
)

func TestUniqueViolation(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		wantIndex string
		wantOK    bool
	}{
		{
			name:      "postgres draw index",
			err:       fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505", ConstraintName: indexActiveDraw}),
			wantIndex: indexActiveDraw,
			wantOK:    true,
		},
		{
			name:      "postgres validated transaction index",
			err:       &pgconn.PgError{Code: "23505", ConstraintName: indexValidatedTransaction},
			wantIndex: indexValidatedTransaction,
			wantOK:    true,
		},
		{
			name:   "postgres other error",
			err:    &pgconn.PgError{Code: "23502", ConstraintName: "applications_full_name_not_null"},
			wantOK: false,
		},
		{
			name:   "plain error",
			err:    errors.New("connection refused"),
			wantOK: false,
		},
		{
			name:   "sqlite busy",
			err:    sqlite3.Error{Code: sqlite3.ErrBusy},
			wantOK: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			index, ok := uniqueViolation(tt.err)
			if ok != tt.wantOK || index != tt.wantIndex {
				t.Fatalf("uniqueViolation() = %q, %v; want %q, %v", index, ok, tt.wantIndex, tt.wantOK)
			}
		})
	}
}

func newMockPostgresDB(t *testing.T) (*GormDB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })

	conn, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	if err != nil {
		t.Fatalf("gorm.Open: %v", err)
	}
	db := &GormDB{
		Conn:   conn,
		codes:  &sequenceGenerator{codes: []string{"AAAAAAAAAAA", "BBBBBBBBBBB"}},
		logger: logger.NewNopLogger(),
		now:    time.Now,
	}
	return db, mock
}

func TestCreatePostgresDrawTaken(t *testing.T) {
	db, mock := newMockPostgresDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "applications"`)).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: indexActiveDraw})
	mock.ExpectRollback()

	err := db.Create(context.Background(), newApplication(17, ""))
	if !errors.Is(err, models.ErrDrawTaken) {
		t.Fatalf("expected ErrDrawTaken, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreatePostgresCodeCollision(t *testing.T) {
	db, mock := newMockPostgresDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "applications"`)).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: indexConfirmationCode})
	mock.ExpectRollback()
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "applications"`)).
		WillReturnRows(sqlmock.NewRows([]string{"transaction_validated", "id"}).AddRow(false, 7))
	mock.ExpectCommit()

	app := newApplication(17, "")
	if err := db.Create(context.Background(), app); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if app.ID != 7 || app.ConfirmationCode != "BBBBBBBBBBB" {
		t.Fatalf("unexpected application: id=%d code=%q", app.ID, app.ConfirmationCode)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
