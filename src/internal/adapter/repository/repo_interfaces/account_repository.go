package repo_interfaces

import (
	"context"

	"github.com/api-sage/ledger-engine/src/internal/domain"
)

type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) error
	GetByAccountNumber(ctx context.Context, accountNumber string) (*domain.Account, error)
	ExistsByAccountNumber(ctx context.Context, accountNumber string) (bool, error)
	List(ctx context.Context) ([]*domain.Account, error)
}
