package service_interfaces

import (
	"github.com/api-sage/ledger-engine/src/internal/domain"
	"github.com/shopspring/decimal"
)

type SecurityService interface {
	UpdateAccountStatus(account *domain.Account, action string, managerID string) (*domain.Account, error)
	AssertNotFrozen(account *domain.Account) error
	WithdrawWithDailyLimit(account *domain.Account, amount decimal.Decimal) (domain.AccountSummary, error)
	DepositSafe(account *domain.Account, amount decimal.Decimal) (*domain.Account, error)
	TransferSafe(from, to *domain.Account, amount decimal.Decimal) (domain.AccountSummary, domain.AccountSummary, error)
	ValidatePassword(password string) domain.PasswordCheck
	ValidatePasswordValue(value any) domain.PasswordCheck
	SetPassword(account *domain.Account, password string) (domain.PasswordCheck, error)
	VerifyPassword(account *domain.Account, password string) (bool, error)
	CheckSuspiciousActivity(account *domain.Account) domain.ActivityReport
}
