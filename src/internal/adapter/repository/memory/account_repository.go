package memory

import (
	"context"
	"sync"

	"github.com/api-sage/ledger-engine/src/internal/domain"
)

// AccountRepository keeps accounts in creation order with an index by number.
type AccountRepository struct {
	mu       sync.RWMutex
	accounts []*domain.Account
	byNumber map[string]*domain.Account
}

func NewAccountRepository() *AccountRepository {
	return &AccountRepository{byNumber: make(map[string]*domain.Account)}
}

func (r *AccountRepository) Create(_ context.Context, account *domain.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byNumber[account.AccountNumber]; exists {
		return domain.ErrDuplicateAccountNumber
	}

	r.accounts = append(r.accounts, account)
	r.byNumber[account.AccountNumber] = account
	return nil
}

func (r *AccountRepository) GetByAccountNumber(_ context.Context, accountNumber string) (*domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	account, ok := r.byNumber[accountNumber]
	if !ok {
		return nil, domain.NewNotFoundError("Account %s not found", accountNumber)
	}
	return account, nil
}

func (r *AccountRepository) ExistsByAccountNumber(_ context.Context, accountNumber string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.byNumber[accountNumber]
	return ok, nil
}

func (r *AccountRepository) List(_ context.Context) ([]*domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.Account, len(r.accounts))
	copy(out, r.accounts)
	return out, nil
}
