package service_interfaces

import (
	"context"

	"github.com/api-sage/ledger-engine/src/internal/domain"
	"github.com/shopspring/decimal"
)

type AccountService interface {
	Create(ctx context.Context, firstName, lastName string, initialDeposit decimal.Decimal) (*domain.Account, error)
	List(ctx context.Context) ([]*domain.Account, error)
	Get(ctx context.Context, accountNumber string) (*domain.Account, error)
}
