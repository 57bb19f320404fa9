package service_interfaces

import (
	"github.com/api-sage/ledger-engine/src/internal/domain"
	"github.com/shopspring/decimal"
)

type LedgerService interface {
	Deposit(account *domain.Account, amount decimal.Decimal) (*domain.Account, error)
	Withdraw(account *domain.Account, amount decimal.Decimal) (domain.AccountSummary, error)
	Transfer(from, to *domain.Account, amount decimal.Decimal) (domain.AccountSummary, domain.AccountSummary, error)
	RetrieveInRange(account *domain.Account, filter domain.TransactionFilter) ([]domain.Transaction, error)
}
