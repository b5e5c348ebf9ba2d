package models

import "context"

// Repository is the durable store of applications. Exclusivity of draws,
// confirmation codes and validated transaction references is enforced by
// the store's unique indexes.
type Repository interface {
	Create(ctx context.Context, app *Application) error
	Get(ctx context.Context, id int64) (*Application, error)
	GetByConfirmationCode(ctx context.Context, code string) (*Application, error)
	FindByTransactionID(ctx context.Context, transactionID string) (*Application, error)
	ListAll(ctx context.Context) ([]*Application, error)
	TakenDraws(ctx context.Context) ([]int, error)

	UpdateStatus(ctx context.Context, id int64, status Status) (*Application, error)

	IsTransactionValidated(ctx context.Context, transactionID string) (bool, error)
	MarkTransactionValidated(ctx context.Context, transactionID string) (int64, error)

	Ping(ctx context.Context) error
}
