package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/argab/lottery/internal/models"
)

// maxCodeAttempts bounds confirmation code regeneration on collision.
const maxCodeAttempts = 5

// Create inserts a new pending application with a fresh confirmation code.
// Draw exclusivity is decided by the active-draw unique index at insert time.
func (db *GormDB) Create(ctx context.Context, app *models.Application) error {
	app.Status = models.StatusPending
	app.TicketPrice = models.TicketPrice
	app.TransactionValidated = false

	for attempt := 1; attempt <= maxCodeAttempts; attempt++ {
		code, err := db.codes.Generate()
		if err != nil {
			return fmt.Errorf("failed to generate confirmation code: %w", err)
		}
		app.ID = 0
		app.ConfirmationCode = code
		app.CreatedAt = db.now()
		app.UpdatedAt = app.CreatedAt

		err = db.Conn.WithContext(ctx).Create(app).Error
		if err == nil {
			return nil
		}

		index, unique := uniqueViolation(err)
		switch {
		case unique && index == indexActiveDraw:
			return fmt.Errorf("draw %d: %w", app.Draw, models.ErrDrawTaken)
		case unique && index == indexConfirmationCode:
			db.logger.Warnw("Confirmation code collision, regenerating", "attempt", attempt)
			continue
		default:
			return fmt.Errorf("failed to create application: %w", err)
		}
	}

	app.ConfirmationCode = ""
	return fmt.Errorf("failed to create application after %d attempts: %w", maxCodeAttempts, models.ErrDuplicateCode)
}

func (db *GormDB) Get(ctx context.Context, id int64) (*models.Application, error) {
	var app models.Application
	if err := db.Conn.WithContext(ctx).First(&app, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("application %d: %w", id, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get application: %w", err)
	}
	return &app, nil
}

func (db *GormDB) GetByConfirmationCode(ctx context.Context, code string) (*models.Application, error) {
	var app models.Application
	code = strings.ToUpper(strings.TrimSpace(code))
	if err := db.Conn.WithContext(ctx).Where("confirmation_code = ?", code).First(&app).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("confirmation code %s: %w", code, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get application by confirmation code: %w", err)
	}
	return &app, nil
}

// FindByTransactionID returns the oldest application carrying transactionID.
func (db *GormDB) FindByTransactionID(ctx context.Context, transactionID string) (*models.Application, error) {
	var app models.Application
	if err := db.Conn.WithContext(ctx).Where("transaction_id = ?", transactionID).Order("id").First(&app).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("transaction %s: %w", transactionID, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find application by transaction id: %w", err)
	}
	return &app, nil
}

// ListAll returns every application, most recent first.
func (db *GormDB) ListAll(ctx context.Context) ([]*models.Application, error) {
	var apps []*models.Application
	if err := db.Conn.WithContext(ctx).Order("created_at DESC").Order("id DESC").Find(&apps).Error; err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	return apps, nil
}

// TakenDraws returns the draws held by active applications in ascending order.
func (db *GormDB) TakenDraws(ctx context.Context) ([]int, error) {
	var draws []int
	if err := db.Conn.WithContext(ctx).
		Model(&models.Application{}).
		Where("status <> ?", models.StatusCancelled).
		Order("draw").
		Pluck("draw", &draws).Error; err != nil {
		return nil, fmt.Errorf("failed to get taken draws: %w", err)
	}
	return draws, nil
}

// UpdateStatus moves an application to status if the lifecycle allows it.
// The update is conditional on the status that was read, so a concurrent
// change between read and write is reported instead of overwritten.
func (db *GormDB) UpdateStatus(ctx context.Context, id int64, status models.Status) (*models.Application, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("unknown status %q", status)
	}

	var app models.Application
	err := db.Conn.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&app, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("application %d: %w", id, models.ErrNotFound)
			}
			return err
		}
		if !app.Status.CanTransitionTo(status) {
			return models.TransitionError{From: app.Status, To: status}
		}

		now := db.now()
		res := tx.Model(&models.Application{}).
			Where("id = ? AND status = ?", id, app.Status).
			Updates(map[string]interface{}{"status": status, "updated_at": now})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return models.TransitionError{From: app.Status, To: status}
		}
		app.Status = status
		app.UpdatedAt = now
		return nil
	})
	if err != nil {
		if errors.Is(err, models.ErrNotFound) || errors.Is(err, models.ErrIllegalTransition) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update application status: %w", err)
	}
	return &app, nil
}

// IsTransactionValidated reports whether any application has transactionID validated.
func (db *GormDB) IsTransactionValidated(ctx context.Context, transactionID string) (bool, error) {
	var count int64
	if err := db.Conn.WithContext(ctx).
		Model(&models.Application{}).
		Where("transaction_id = ? AND transaction_validated = ?", transactionID, true).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check transaction: %w", err)
	}
	return count > 0, nil
}

// MarkTransactionValidated flags the oldest unvalidated application holding
// transactionID and returns the number of rows updated (0 or 1). When a
// racing validation got there first, ErrTransactionAlreadyUsed is returned.
func (db *GormDB) MarkTransactionValidated(ctx context.Context, transactionID string) (int64, error) {
	candidate := db.Conn.Model(&models.Application{}).
		Select("id").
		Where("transaction_id = ? AND transaction_validated = ?", transactionID, false).
		Order("id").
		Limit(1)

	res := db.Conn.WithContext(ctx).
		Model(&models.Application{}).
		Where("id = (?) AND transaction_validated = ?", candidate, false).
		Updates(map[string]interface{}{"transaction_validated": true, "updated_at": db.now()})
	if res.Error != nil {
		if index, unique := uniqueViolation(res.Error); unique && index == indexValidatedTransaction {
			return 0, fmt.Errorf("transaction %s: %w", transactionID, models.ErrTransactionAlreadyUsed)
		}
		return 0, fmt.Errorf("failed to mark transaction validated: %w", res.Error)
	}
	if res.RowsAffected > 0 {
		return res.RowsAffected, nil
	}

	validated, err := db.IsTransactionValidated(ctx, transactionID)
	if err != nil {
		return 0, err
	}
	if validated {
		return 0, fmt.Errorf("transaction %s: %w", transactionID, models.ErrTransactionAlreadyUsed)
	}
	return 0, nil
}
