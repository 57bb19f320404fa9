package services

import (
	"context"

	"github.com/api-sage/ledger-engine/src/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/ledger-engine/src/internal/domain"
	"github.com/api-sage/ledger-engine/src/internal/logger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	interestBalanceThreshold = decimal.NewFromInt(500)
	monthlyInterestRate      = decimal.RequireFromString("0.00167")
)

type InterestService struct {
	accountRepo repo_interfaces.AccountRepository
	clock       domain.Clock
}

func NewInterestService(accountRepo repo_interfaces.AccountRepository, clock domain.Clock) *InterestService {
	if clock == nil {
		clock = domain.SystemClock{}
	}
	return &InterestService{accountRepo: accountRepo, clock: clock}
}

// AccrueInterest applies one period of simple interest when the balance is
// above the threshold. Repeated calls compound. No rounding is applied.
func (s *InterestService) AccrueInterest(account *domain.Account) (domain.InterestResult, error) {
	if account == nil {
		return domain.InterestResult{}, domain.NewValidationError("account is required")
	}

	account.Lock()
	defer account.Unlock()

	return s.accrueLocked(account), nil
}

func (s *InterestService) accrueLocked(account *domain.Account) domain.InterestResult {
	if account.Balance.LessThanOrEqual(interestBalanceThreshold) {
		logger.Info("interest service balance below threshold", logger.Fields{
			"accountNumber": account.AccountNumber,
			"balance":       account.Balance.String(),
		})
		return domain.InterestResult{
			AccountNumber: account.AccountNumber,
			Balance:       account.Balance,
			Message:       "Balance must be greater than " + interestBalanceThreshold.StringFixed(2) + " to earn interest",
		}
	}

	interest := account.Balance.Mul(monthlyInterestRate)
	newBalance := account.Balance.Add(interest)
	account.Transactions = append(account.Transactions, domain.Transaction{
		ID:         uuid.NewString(),
		Type:       domain.TransactionTypeInterest,
		Amount:     interest,
		Date:       s.clock.Now(),
		NewBalance: newBalance,
	})
	account.Balance = newBalance

	logger.Info("interest service interest applied", logger.Fields{
		"accountNumber": account.AccountNumber,
		"interest":      interest.String(),
		"balance":       newBalance.String(),
	})

	return domain.InterestResult{
		AccountNumber:   account.AccountNumber,
		Balance:         newBalance,
		InterestApplied: &interest,
	}
}

// AccrueAll runs one interest period over every account in creation order.
// Frozen accounts are skipped.
func (s *InterestService) AccrueAll(ctx context.Context) ([]domain.InterestResult, error) {
	accounts, err := s.accountRepo.List(ctx)
	if err != nil {
		logger.Error("interest service list accounts failed", err, nil)
		return nil, err
	}

	results := make([]domain.InterestResult, 0, len(accounts))
	for _, account := range accounts {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		account.Lock()
		if account.Status == domain.AccountStatusFrozen {
			account.Unlock()
			logger.Info("interest service skipped frozen account", logger.Fields{
				"accountNumber": account.AccountNumber,
			})
			continue
		}
		results = append(results, s.accrueLocked(account))
		account.Unlock()
	}

	logger.Info("interest service accrual run completed", logger.Fields{
		"accounts": len(results),
	})
	return results, nil
}
