package repository

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/argab/lottery/internal/models"
	"github.com/argab/lottery/pkg/confirmation"
	"github.com/argab/lottery/pkg/logger"
)

// PoolOptions bounds the connection pool shared by all requests.
type PoolOptions struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

var _ models.Repository = (*GormDB)(nil)

type GormDB struct {
	logger *logger.Logger
	codes  confirmation.Generator
	now    func() time.Time

	Conn *gorm.DB
}

func NewPostgresDB(user, password, dbname, host string, port int, pool PoolOptions, codes confirmation.Generator, logger *logger.Logger) (*GormDB, error) {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=disable",
		host, user, password, dbname, port)

	db, err := openGormDB(postgres.Open(dsn), pool, codes, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}
	logger.Info("Successfully connected to PostgreSQL!")
	return db, nil
}

// NewSQLiteDB opens a SQLite database. dsn is a file path or a sqlite URI
// such as "file:lottery?mode=memory&cache=shared".
func NewSQLiteDB(dsn string, pool PoolOptions, codes confirmation.Generator, logger *logger.Logger) (*GormDB, error) {
	db, err := openGormDB(sqlite.Open(dsn), pool, codes, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}
	logger.Infow("Successfully opened SQLite database", "dsn", dsn)
	return db, nil
}

func openGormDB(dialector gorm.Dialector, pool PoolOptions, codes confirmation.Generator, logger *logger.Logger) (*GormDB, error) {
	// Configure GORM logger to suppress "record not found" messages
	gormLogger := gormLogger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags), // Use standard logger
		gormLogger.Config{
			SlowThreshold:             200 * time.Millisecond, // Log queries slower than this
			LogLevel:                  gormLogger.Warn,        // Only log warnings or errors
			IgnoreRecordNotFoundError: true,                   // Suppress "record not found" errors
			Colorful:                  true,                   // Enable colorful logs
		},
	)
	conn, err := gorm.Open(dialector, &gorm.Config{Logger: gormLogger})
	if err != nil {
		return nil, err
	}

	sqlDB, err := conn.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database connection: %w", err)
	}
	if pool.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(pool.MaxOpenConns)
	}
	if pool.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(pool.MaxIdleConns)
	}
	if pool.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(pool.ConnMaxLifetime)
	}

	if err := conn.AutoMigrate(&models.Application{}); err != nil {
		return nil, fmt.Errorf("failed to auto-migrate models: %w", err)
	}

	if codes == nil {
		codes = confirmation.NewGenerator()
	}
	return &GormDB{Conn: conn, codes: codes, logger: logger, now: time.Now}, nil
}

func (db *GormDB) Close() error {
	sqlDB, err := db.Conn.DB()
	if err != nil {
		return fmt.Errorf("failed to get database connection: %w", err)
	}
	return sqlDB.Close()
}

func (db *GormDB) Ping(ctx context.Context) error {
	sqlDB, err := db.Conn.DB()
	if err != nil {
		return fmt.Errorf("failed to get database connection: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}
	return nil
}
