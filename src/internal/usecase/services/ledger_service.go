package services

import (
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/api-sage/ledger-engine/src/internal/commons"
	"github.com/api-sage/ledger-engine/src/internal/domain"
	"github.com/api-sage/ledger-engine/src/internal/logger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var overdraftPenalty = decimal.NewFromInt(5)

var calendarDatePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

type LedgerService struct {
	clock domain.Clock
}

func NewLedgerService(clock domain.Clock) *LedgerService {
	if clock == nil {
		clock = domain.SystemClock{}
	}
	return &LedgerService{clock: clock}
}

func (s *LedgerService) Deposit(account *domain.Account, amount decimal.Decimal) (*domain.Account, error) {
	if account == nil {
		return nil, domain.NewValidationError("account is required")
	}
	if err := commons.RequirePositiveAmount("amount", amount); err != nil {
		logger.Error("ledger service deposit validation failed", err, logger.Fields{
			"accountNumber": account.AccountNumber,
		})
		return nil, err
	}

	account.Lock()
	defer account.Unlock()

	s.depositLocked(account, amount)
	return account, nil
}

func (s *LedgerService) depositLocked(account *domain.Account, amount decimal.Decimal) {
	newBalance := account.Balance.Add(amount)
	account.Transactions = append(account.Transactions, domain.Transaction{
		ID:         uuid.NewString(),
		Type:       domain.TransactionTypeDeposit,
		Amount:     amount,
		Date:       s.clock.Now(),
		NewBalance: newBalance,
	})
	account.Balance = newBalance

	logger.Info("ledger service deposit success", logger.Fields{
		"accountNumber": account.AccountNumber,
		"amount":        amount.String(),
		"balance":       newBalance.String(),
	})
}

// Withdraw never fails for insufficient funds: the request is recorded as an
// OVERDRAFT_ATTEMPT and only the fixed penalty is charged.
func (s *LedgerService) Withdraw(account *domain.Account, amount decimal.Decimal) (domain.AccountSummary, error) {
	if account == nil {
		return domain.AccountSummary{}, domain.NewValidationError("account is required")
	}
	if err := commons.RequirePositiveAmount("amount", amount); err != nil {
		logger.Error("ledger service withdraw validation failed", err, logger.Fields{
			"accountNumber": account.AccountNumber,
		})
		return domain.AccountSummary{}, err
	}

	account.Lock()
	defer account.Unlock()

	s.withdrawLocked(account, amount)
	return account.SummaryLocked(), nil
}

func (s *LedgerService) withdrawLocked(account *domain.Account, amount decimal.Decimal) {
	now := s.clock.Now()

	if amount.GreaterThan(account.Balance) {
		penalty := overdraftPenalty
		newBalance := account.Balance.Sub(penalty)
		account.Transactions = append(account.Transactions, domain.Transaction{
			ID:         uuid.NewString(),
			Type:       domain.TransactionTypeOverdraftAttempt,
			Amount:     amount,
			Penalty:    &penalty,
			Date:       now,
			NewBalance: newBalance,
		})
		account.Balance = newBalance

		logger.Warn("ledger service withdraw overdraft attempt", logger.Fields{
			"accountNumber": account.AccountNumber,
			"amount":        amount.String(),
			"penalty":       penalty.String(),
			"balance":       newBalance.String(),
		})
		return
	}

	newBalance := account.Balance.Sub(amount)
	account.Transactions = append(account.Transactions, domain.Transaction{
		ID:         uuid.NewString(),
		Type:       domain.TransactionTypeWithdrawal,
		Amount:     amount,
		Date:       now,
		NewBalance: newBalance,
	})
	account.Balance = newBalance

	logger.Info("ledger service withdraw success", logger.Fields{
		"accountNumber": account.AccountNumber,
		"amount":        amount.String(),
		"balance":       newBalance.String(),
	})
}

// Transfer has no overdraft fallback: an amount above the source balance is
// rejected and neither account changes.
func (s *LedgerService) Transfer(from, to *domain.Account, amount decimal.Decimal) (domain.AccountSummary, domain.AccountSummary, error) {
	if err := validateTransfer(from, to, amount); err != nil {
		return domain.AccountSummary{}, domain.AccountSummary{}, err
	}

	unlock := domain.LockPair(from, to)
	defer unlock()

	return s.transferLocked(from, to, amount)
}

func validateTransfer(from, to *domain.Account, amount decimal.Decimal) error {
	if from == nil || to == nil {
		err := domain.NewValidationError("Both source and destination accounts are required")
		logger.Error("ledger service transfer validation failed", err, nil)
		return err
	}
	if strings.TrimSpace(from.AccountNumber) == "" || strings.TrimSpace(to.AccountNumber) == "" {
		err := domain.NewValidationError("Both accounts must have an account number")
		logger.Error("ledger service transfer validation failed", err, nil)
		return err
	}
	if err := commons.RequirePositiveAmount("amount", amount); err != nil {
		logger.Error("ledger service transfer validation failed", err, logger.Fields{
			"fromAccountNumber": from.AccountNumber,
			"toAccountNumber":   to.AccountNumber,
		})
		return err
	}
	return nil
}

// transferLocked expects both accounts to be locked by the caller.
func (s *LedgerService) transferLocked(from, to *domain.Account, amount decimal.Decimal) (domain.AccountSummary, domain.AccountSummary, error) {
	if amount.GreaterThan(from.Balance) {
		err := domain.NewValidationError("insufficient funds for transfer")
		logger.Error("ledger service transfer insufficient funds", err, logger.Fields{
			"fromAccountNumber": from.AccountNumber,
			"amount":            amount.String(),
			"balance":           from.Balance.String(),
		})
		return domain.AccountSummary{}, domain.AccountSummary{}, err
	}

	now := s.clock.Now()

	fromBalance := from.Balance.Sub(amount)
	from.Transactions = append(from.Transactions, domain.Transaction{
		ID:         uuid.NewString(),
		Type:       domain.TransactionTypeTransferOut,
		Amount:     amount,
		To:         to.AccountNumber,
		Date:       now,
		NewBalance: fromBalance,
	})
	from.Balance = fromBalance

	toBalance := to.Balance.Add(amount)
	to.Transactions = append(to.Transactions, domain.Transaction{
		ID:         uuid.NewString(),
		Type:       domain.TransactionTypeTransferIn,
		Amount:     amount,
		From:       from.AccountNumber,
		Date:       now,
		NewBalance: toBalance,
	})
	to.Balance = toBalance

	logger.Info("ledger service transfer success", logger.Fields{
		"fromAccountNumber": from.AccountNumber,
		"toAccountNumber":   to.AccountNumber,
		"amount":            amount.String(),
	})

	return from.SummaryLocked(), to.SummaryLocked(), nil
}

// RetrieveInRange returns a new slice of the account's transactions matching
// the filter, most recent first. The account is not modified.
func (s *LedgerService) RetrieveInRange(account *domain.Account, filter domain.TransactionFilter) ([]domain.Transaction, error) {
	if account == nil {
		return nil, domain.NewValidationError("account is required")
	}

	start, hasStart, err := parseBound(filter.StartDate, false)
	if err != nil {
		return nil, err
	}
	end, hasEnd, err := parseBound(filter.EndDate, true)
	if err != nil {
		return nil, err
	}
	if hasStart && hasEnd && start.After(end) {
		return nil, domain.NewValidationError("startDate must be before or equal to endDate")
	}

	txType := domain.TransactionType(strings.ToUpper(strings.TrimSpace(filter.Type)))

	account.Lock()
	out := make([]domain.Transaction, 0, len(account.Transactions))
	for _, tx := range account.Transactions {
		if txType != "" && tx.Type != txType {
			continue
		}
		if tx.Date.IsZero() {
			continue
		}
		if hasStart && tx.Date.Before(start) {
			continue
		}
		if hasEnd && tx.Date.After(end) {
			continue
		}
		out = append(out, tx)
	}
	account.Unlock()

	slices.SortStableFunc(out, func(a, b domain.Transaction) int {
		return b.Date.Compare(a.Date)
	})
	return out, nil
}

// parseBound resolves a bare calendar date to the start or the inclusive end
// of that UTC day; anything else must be an absolute timestamp.
func parseBound(raw string, endOfDay bool) (time.Time, bool, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return time.Time{}, false, nil
	}

	if calendarDatePattern.MatchString(value) {
		day, err := time.ParseInLocation("2006-01-02", value, time.UTC)
		if err != nil {
			return time.Time{}, false, domain.NewValidationError("Invalid date: %s", raw)
		}
		if endOfDay {
			return day.Add(24*time.Hour - time.Millisecond), true, nil
		}
		return day, true, nil
	}

	for _, layout := range timestampLayouts {
		if parsed, err := time.ParseInLocation(layout, value, time.UTC); err == nil {
			return parsed.UTC(), true, nil
		}
	}
	return time.Time{}, false, domain.NewValidationError("Invalid date: %s", raw)
}
