package services

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/api-sage/ledger-engine/src/internal/commons"
	"github.com/api-sage/ledger-engine/src/internal/domain"
	"github.com/api-sage/ledger-engine/src/internal/logger"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

const (
	minimumPasswordLength   = 12
	rapidWithdrawalCount    = 3
	rapidWithdrawalWindow   = 5 * time.Minute
	rapidWithdrawalMaxValue = 500
)

var (
	dailyWithdrawalLimit = decimal.NewFromInt(500)
	highValueThreshold   = decimal.NewFromInt(10000)
)

var commonPasswords = map[string]struct{}{
	"password":    {},
	"password1":   {},
	"password123": {},
	"123456":      {},
	"12345678":    {},
	"123456789":   {},
	"1234567890":  {},
	"qwerty":      {},
	"qwerty123":   {},
	"abc123":      {},
	"111111":      {},
	"letmein":     {},
	"welcome":     {},
	"admin":       {},
	"iloveyou":    {},
	"monkey":      {},
	"dragon":      {},
	"sunshine":    {},
}

type SecurityService struct {
	ledger *LedgerService
	clock  domain.Clock
}

func NewSecurityService(ledger *LedgerService, clock domain.Clock) *SecurityService {
	if clock == nil {
		clock = domain.SystemClock{}
	}
	return &SecurityService{ledger: ledger, clock: clock}
}

// UpdateAccountStatus drives the ACTIVE/FROZEN state machine. Freezing needs a
// manager id; unfreezing records the manager id when given, else "system".
// Requesting the current state appends nothing.
func (s *SecurityService) UpdateAccountStatus(account *domain.Account, action string, managerID string) (*domain.Account, error) {
	if account == nil {
		return nil, domain.NewValidationError("account is required")
	}

	normalized := domain.StatusAction(strings.ToUpper(strings.TrimSpace(action)))
	manager := strings.TrimSpace(managerID)

	var target domain.AccountStatus
	by := manager
	switch normalized {
	case domain.StatusActionFreeze:
		if manager == "" {
			err := domain.NewValidationError("Manager approval is required to freeze an account.")
			logger.Error("security service freeze rejected", err, logger.Fields{
				"accountNumber": account.AccountNumber,
			})
			return nil, err
		}
		target = domain.AccountStatusFrozen
	case domain.StatusActionUnfreeze:
		if by == "" {
			by = domain.SystemActor
		}
		target = domain.AccountStatusActive
	default:
		return nil, domain.NewValidationError("Invalid action: %s. Use FREEZE or UNFREEZE", strings.TrimSpace(action))
	}

	account.Lock()
	defer account.Unlock()

	if account.Status == target {
		return account, nil
	}

	account.Status = target
	account.StatusHistory = append(account.StatusHistory, domain.StatusChange{
		Action: normalized,
		By:     by,
		Date:   s.clock.Now(),
	})

	logger.Info("security service account status updated", logger.Fields{
		"accountNumber": account.AccountNumber,
		"status":        string(target),
		"by":            by,
	})
	return account, nil
}

func (s *SecurityService) AssertNotFrozen(account *domain.Account) error {
	if account == nil {
		return domain.NewValidationError("account is required")
	}

	account.Lock()
	defer account.Unlock()
	return assertNotFrozenLocked(account)
}

func assertNotFrozenLocked(account *domain.Account) error {
	if account.Status == domain.AccountStatusFrozen {
		return domain.NewFrozenAccountError(account.AccountNumber)
	}
	return nil
}

// WithdrawWithDailyLimit caps the requested amounts of today's (UTC) plain
// withdrawals. The cap is checked against the request, so an overdraft
// outcome still counts as allowed.
func (s *SecurityService) WithdrawWithDailyLimit(account *domain.Account, amount decimal.Decimal) (domain.AccountSummary, error) {
	if account == nil {
		return domain.AccountSummary{}, domain.NewValidationError("account is required")
	}

	account.Lock()
	defer account.Unlock()

	if err := assertNotFrozenLocked(account); err != nil {
		logger.Error("security service limited withdraw rejected", err, logger.Fields{
			"accountNumber": account.AccountNumber,
		})
		return domain.AccountSummary{}, err
	}

	withdrawnToday := s.withdrawnTodayLocked(account)
	if withdrawnToday.Add(amount).GreaterThan(dailyWithdrawalLimit) {
		err := domain.NewDailyLimitExceededError(
			"Daily withdrawal limit of %s exceeded: %s already withdrawn today, %s requested",
			dailyWithdrawalLimit.StringFixed(2),
			withdrawnToday.StringFixed(2),
			amount.StringFixed(2),
		)
		logger.Error("security service daily limit exceeded", err, logger.Fields{
			"accountNumber": account.AccountNumber,
		})
		return domain.AccountSummary{}, err
	}

	if err := commons.RequirePositiveAmount("amount", amount); err != nil {
		return domain.AccountSummary{}, err
	}

	s.ledger.withdrawLocked(account, amount)
	return account.SummaryLocked(), nil
}

func (s *SecurityService) withdrawnTodayLocked(account *domain.Account) decimal.Decimal {
	year, month, day := s.clock.Now().UTC().Date()
	total := decimal.Zero
	for _, tx := range account.Transactions {
		if tx.Type != domain.TransactionTypeWithdrawal {
			continue
		}
		y, m, d := tx.Date.UTC().Date()
		if y == year && m == month && d == day {
			total = total.Add(tx.Amount)
		}
	}
	return total
}

func (s *SecurityService) DepositSafe(account *domain.Account, amount decimal.Decimal) (*domain.Account, error) {
	if account == nil {
		return nil, domain.NewValidationError("account is required")
	}

	account.Lock()
	defer account.Unlock()

	if err := assertNotFrozenLocked(account); err != nil {
		logger.Error("security service safe deposit rejected", err, logger.Fields{
			"accountNumber": account.AccountNumber,
		})
		return nil, err
	}
	if err := commons.RequirePositiveAmount("amount", amount); err != nil {
		return nil, err
	}

	s.ledger.depositLocked(account, amount)
	return account, nil
}

func (s *SecurityService) TransferSafe(from, to *domain.Account, amount decimal.Decimal) (domain.AccountSummary, domain.AccountSummary, error) {
	if from == nil || to == nil {
		return domain.AccountSummary{}, domain.AccountSummary{}, domain.NewValidationError("Both source and destination accounts are required")
	}

	unlock := domain.LockPair(from, to)
	defer unlock()

	for _, account := range []*domain.Account{from, to} {
		if err := assertNotFrozenLocked(account); err != nil {
			logger.Error("security service safe transfer rejected", err, logger.Fields{
				"accountNumber": account.AccountNumber,
			})
			return domain.AccountSummary{}, domain.AccountSummary{}, err
		}
	}
	if err := validateTransfer(from, to, amount); err != nil {
		return domain.AccountSummary{}, domain.AccountSummary{}, err
	}

	return s.ledger.transferLocked(from, to, amount)
}

// ValidatePasswordValue accepts a decoded JSON value; anything but a string
// is rejected with a single reason.
func (s *SecurityService) ValidatePasswordValue(value any) domain.PasswordCheck {
	password, ok := value.(string)
	if !ok {
		return domain.PasswordCheck{Valid: false, Reasons: []string{"Password must be a string"}}
	}
	return s.ValidatePassword(password)
}

// ValidatePassword reports every failed rule, not just the first.
func (s *SecurityService) ValidatePassword(password string) domain.PasswordCheck {
	var reasons []string

	if utf8.RuneCountInString(password) < minimumPasswordLength {
		reasons = append(reasons, fmt.Sprintf("Password must be at least %d characters long", minimumPasswordLength))
	}

	var hasUpper, hasLower, hasDigit, hasSymbol bool
	for _, ch := range password {
		switch {
		case ch >= 'A' && ch <= 'Z':
			hasUpper = true
		case ch >= 'a' && ch <= 'z':
			hasLower = true
		case ch >= '0' && ch <= '9':
			hasDigit = true
		default:
			hasSymbol = true
		}
	}
	if !hasUpper {
		reasons = append(reasons, "Password must contain at least one uppercase letter")
	}
	if !hasLower {
		reasons = append(reasons, "Password must contain at least one lowercase letter")
	}
	if !hasDigit {
		reasons = append(reasons, "Password must contain at least one number")
	}
	if !hasSymbol {
		reasons = append(reasons, "Password must contain at least one special character")
	}

	lowered := strings.ToLower(password)
	if _, common := commonPasswords[lowered]; common || strings.Contains(lowered, "password") {
		reasons = append(reasons, "Password is too common")
	}

	if len(reasons) > 0 {
		return domain.PasswordCheck{Valid: false, Reasons: reasons}
	}
	return domain.PasswordCheck{Valid: true}
}

// SetPassword stores a bcrypt hash of the password once it passes the
// strength rules. The returned check explains a rejection.
func (s *SecurityService) SetPassword(account *domain.Account, password string) (domain.PasswordCheck, error) {
	if account == nil {
		return domain.PasswordCheck{}, domain.NewValidationError("account is required")
	}

	check := s.ValidatePassword(password)
	if !check.Valid {
		err := domain.NewValidationError("Password is too weak: %s", strings.Join(check.Reasons, "; "))
		logger.Error("security service set password rejected", err, logger.Fields{
			"accountNumber": account.AccountNumber,
		})
		return check, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		wrappedErr := fmt.Errorf("hash account password: %w", err)
		logger.Error("security service hash password failed", wrappedErr, logger.Fields{
			"accountNumber": account.AccountNumber,
		})
		return check, wrappedErr
	}

	account.Lock()
	account.PasswordHash = string(hashed)
	account.Unlock()

	logger.Info("security service password updated", logger.Fields{
		"accountNumber": account.AccountNumber,
	})
	return check, nil
}

func (s *SecurityService) VerifyPassword(account *domain.Account, password string) (bool, error) {
	if account == nil {
		return false, domain.NewValidationError("account is required")
	}

	account.Lock()
	hash := account.PasswordHash
	account.Unlock()

	if hash == "" {
		return false, domain.NewValidationError("No password is set for account %s", account.AccountNumber)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			logger.Info("security service verify password mismatch", logger.Fields{
				"accountNumber": account.AccountNumber,
			})
			return false, nil
		}
		return false, fmt.Errorf("verify account password: %w", err)
	}
	return true, nil
}

// CheckSuspiciousActivity flags every transaction above the high-value
// threshold, plus at most one alert for the first cluster of small
// withdrawals inside the rapid-withdrawal window.
func (s *SecurityService) CheckSuspiciousActivity(account *domain.Account) domain.ActivityReport {
	report := domain.ActivityReport{Alerts: []string{}}
	if account == nil {
		return report
	}

	account.Lock()
	txs := make([]domain.Transaction, len(account.Transactions))
	copy(txs, account.Transactions)
	account.Unlock()

	for _, tx := range txs {
		if tx.Amount.GreaterThan(highValueThreshold) {
			report.Alerts = append(report.Alerts, fmt.Sprintf("High-value %s detected: %s", transactionCategory(tx.Type), tx.Amount.StringFixed(2)))
		}
	}

	if alert, found := rapidWithdrawalAlert(txs); found {
		report.Alerts = append(report.Alerts, alert)
	}

	report.IsSuspicious = len(report.Alerts) > 0
	if report.IsSuspicious {
		logger.Warn("security service suspicious activity detected", logger.Fields{
			"accountNumber": account.AccountNumber,
			"alerts":        report.Alerts,
		})
	}
	return report
}

func rapidWithdrawalAlert(txs []domain.Transaction) (string, bool) {
	maxValue := decimal.NewFromInt(rapidWithdrawalMaxValue)

	small := make([]domain.Transaction, 0, len(txs))
	for _, tx := range txs {
		if tx.Type == domain.TransactionTypeWithdrawal && tx.Amount.LessThanOrEqual(maxValue) {
			small = append(small, tx)
		}
	}
	slices.SortStableFunc(small, func(a, b domain.Transaction) int {
		return a.Date.Compare(b.Date)
	})

	for i := range small {
		for j := i + rapidWithdrawalCount - 1; j < len(small); j++ {
			span := small[j].Date.Sub(small[i].Date)
			if span > rapidWithdrawalWindow {
				break
			}
			minutes := int(math.Round(span.Minutes()))
			if minutes < 1 {
				minutes = 1
			}
			return fmt.Sprintf("Rapid withdrawals detected: %d withdrawals within %d minute(s)", j-i+1, minutes), true
		}
	}
	return "", false
}

func transactionCategory(txType domain.TransactionType) string {
	name := string(txType)
	switch {
	case strings.Contains(name, "DEPOSIT"):
		return "deposit"
	case strings.Contains(name, "WITHDRAWAL"):
		return "withdrawal"
	case strings.Contains(name, "TRANSFER"):
		return "transfer"
	default:
		return "transaction"
	}
}
