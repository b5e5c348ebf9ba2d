package lottery

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"strings"
	"sync"
	"time"

	"github.com/argab/lottery/internal/models"
	"github.com/argab/lottery/pkg/logger"
	"github.com/argab/lottery/pkg/validation"
)

const (
	// notifyTimeout bounds a single notification dispatch.
	notifyTimeout = 10 * time.Second
)

var _ models.LotteryI = (*Lottery)(nil)

// Lottery allocates draws to applicants and drives their payment through
// verification. It serves all business logic behind the HTTP surface.
type Lottery struct {
	logger *logger.Logger

	repo        models.Repository
	notificator models.NotificationService

	// inflight tracks notification goroutines so shutdown can drain them.
	inflight sync.WaitGroup
}

// NewLottery creates a new Lottery instance
func NewLottery(repo models.Repository, notificator models.NotificationService, logger *logger.Logger) *Lottery {
	return &Lottery{
		repo:        repo,
		notificator: notificator,
		logger:      logger,
	}
}

// AvailableDraws returns the ordered draw numbers not held by an active application.
func (l *Lottery) AvailableDraws(ctx context.Context) ([]int, error) {
	taken, err := l.repo.TakenDraws(ctx)
	if err != nil {
		return nil, err
	}
	held := make(map[int]bool, len(taken))
	for _, draw := range taken {
		held[draw] = true
	}
	available := make([]int, 0, models.MaxDraw-len(held))
	for draw := models.MinDraw; draw <= models.MaxDraw; draw++ {
		if !held[draw] {
			available = append(available, draw)
		}
	}
	return available, nil
}

// Apply validates the submission, stores a pending application and sends the
// applicant their confirmation code.
func (l *Lottery) Apply(ctx context.Context, req models.ApplyRequest) (*models.Application, error) {
	app, err := newApplication(req)
	if err != nil {
		return nil, err
	}

	// Early answer for the common case. The unique index decides races.
	available, err := l.isDrawAvailable(ctx, app.Draw)
	if err != nil {
		return nil, err
	}
	if !available {
		return nil, fmt.Errorf("draw %d: %w", app.Draw, models.ErrDrawTaken)
	}

	if err := l.repo.Create(ctx, app); err != nil {
		if !errors.Is(err, models.ErrDrawTaken) {
			l.logger.Errorw("Failed to create application", "draw", app.Draw, "error", err)
		}
		return nil, err
	}
	l.logger.Infow("Application created", "id", app.ID, "draw", app.Draw, "payment_method", app.PaymentMethod)

	l.notify(app.Phone, fmt.Sprintf(smsApplied, app.ConfirmationCode, app.Draw, app.TicketPrice))
	return app, nil
}

func newApplication(req models.ApplyRequest) (*models.Application, error) {
	fullName := strings.TrimSpace(req.FullName)
	if err := validation.ValidateFullName(fullName); err != nil {
		return nil, models.ValidationError{Field: "full_name", Msg: err.Error()}
	}
	phone, err := validation.ValidateAndNormalizePhone(req.Phone)
	if err != nil {
		return nil, models.ValidationError{Field: "phone", Msg: err.Error()}
	}
	if req.Draw < models.MinDraw || req.Draw > models.MaxDraw {
		return nil, models.ValidationError{Field: "draw", Msg: fmt.Sprintf("must be between %d and %d", models.MinDraw, models.MaxDraw)}
	}
	if !req.PaymentMethod.Valid() {
		return nil, models.ValidationError{Field: "payment_method", Msg: fmt.Sprintf("unknown payment method %q", req.PaymentMethod)}
	}

	return &models.Application{
		FullName:      fullName,
		Phone:         phone,
		Draw:          req.Draw,
		PaymentMethod: req.PaymentMethod,
		TransactionID: validation.NormalizeTransactionID(req.TransactionID),
	}, nil
}

func (l *Lottery) isDrawAvailable(ctx context.Context, draw int) (bool, error) {
	taken, err := l.repo.TakenDraws(ctx)
	if err != nil {
		return false, err
	}
	for _, d := range taken {
		if d == draw {
			return false, nil
		}
	}
	return true, nil
}

func (l *Lottery) GetApplication(ctx context.Context, id int64) (*models.Application, error) {
	return l.repo.Get(ctx, id)
}

func (l *Lottery) GetApplicationByCode(ctx context.Context, code string) (*models.Application, error) {
	return l.repo.GetByConfirmationCode(ctx, code)
}

func (l *Lottery) ListApplications(ctx context.Context) ([]*models.Application, error) {
	return l.repo.ListAll(ctx)
}

// VerifyPayment moves a pending application to verified.
func (l *Lottery) VerifyPayment(ctx context.Context, id int64) (*models.Application, error) {
	return l.transition(ctx, id, models.StatusVerified, smsVerified)
}

// MarkPaid moves a verified application to paid.
func (l *Lottery) MarkPaid(ctx context.Context, id int64) (*models.Application, error) {
	return l.transition(ctx, id, models.StatusPaid, smsPaid)
}

// Cancel releases the draw of a pending or verified application.
func (l *Lottery) Cancel(ctx context.Context, id int64) (*models.Application, error) {
	return l.transition(ctx, id, models.StatusCancelled, smsCancelled)
}

func (l *Lottery) transition(ctx context.Context, id int64, status models.Status, smsFormat string) (*models.Application, error) {
	log := l.logger.With("id", id, "status", status)
	app, err := l.repo.UpdateStatus(ctx, id, status)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) || errors.Is(err, models.ErrIllegalTransition) {
			log.Warnw("Status change rejected", "error", err)
		} else {
			log.Errorw("Failed to update application status", "error", err)
		}
		return nil, err
	}
	log.Infow("Application status changed", "draw", app.Draw)

	l.notify(app.Phone, fmt.Sprintf(smsFormat, app.Draw))
	return app, nil
}

// ValidateTransaction checks the reference format, then that it was never
// validated before, then that an application carries it. Only a reference
// that passes all three is marked as used.
func (l *Lottery) ValidateTransaction(ctx context.Context, transactionID string, method models.PaymentMethod) models.ValidationResult {
	normalized, err := validation.ValidateAndNormalizeTransactionID(transactionID, string(method))
	if err != nil {
		result := models.ValidationResult{
			Reason:      models.ReasonInvalidFormat,
			Message:     msgTransactionInvalid,
			Suggestions: []string{},
		}
		var formatErr *validation.FormatError
		if errors.As(err, &formatErr) && formatErr.Hint != "" {
			result.Suggestions = append(result.Suggestions, formatErr.Hint)
		}
		l.logger.Debugw("Transaction reference rejected", "transaction_id", transactionID, "error", err)
		return result
	}
	transactionID = normalized

	used, err := l.repo.IsTransactionValidated(ctx, transactionID)
	if err != nil {
		return l.internalFailure(transactionID, err)
	}
	if used {
		return alreadyUsed()
	}

	n, err := l.repo.MarkTransactionValidated(ctx, transactionID)
	if errors.Is(err, models.ErrTransactionAlreadyUsed) {
		return alreadyUsed()
	}
	if err != nil {
		return l.internalFailure(transactionID, err)
	}
	if n == 0 {
		return models.ValidationResult{
			Reason:      models.ReasonUnassociated,
			Message:     msgTransactionUnassociated,
			Suggestions: []string{suggestCheckForm},
		}
	}

	l.logger.Infow("Transaction validated", "transaction_id", transactionID, "payment_method", method)
	return models.ValidationResult{
		Valid:       true,
		Message:     msgTransactionValid[method],
		Suggestions: []string{},
	}
}

func alreadyUsed() models.ValidationResult {
	return models.ValidationResult{
		Reason:      models.ReasonAlreadyUsed,
		Message:     msgTransactionAlreadyUsed,
		Suggestions: []string{suggestNewTransaction},
	}
}

func (l *Lottery) internalFailure(transactionID string, err error) models.ValidationResult {
	l.logger.Errorw("Failed to validate transaction", "transaction_id", transactionID, "error", err)
	return models.ValidationResult{
		Reason:      models.ReasonInternal,
		Message:     msgTransactionInternal,
		Suggestions: []string{},
	}
}

func (l *Lottery) Ping(ctx context.Context) error {
	return l.repo.Ping(ctx)
}

// notify dispatches a message in the background. Delivery failures and
// panics are logged and never reach the caller.
func (l *Lottery) notify(phone, message string) {
	l.inflight.Add(1)
	go func() {
		defer l.inflight.Done()
		defer func() {
			if r := recover(); r != nil {
				l.logger.Errorw("Notification panicked", "panic", r, "stack", string(debug.Stack()))
			}
		}()

		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()
		if !l.notificator.Send(ctx, phone, message) {
			l.logger.Warnw("Notification not delivered", "phone", phone)
		}
	}()
}

// Wait blocks until in-flight notifications finish or ctx is done.
func (l *Lottery) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		l.inflight.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
