package services

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/api-sage/ledger-engine/src/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/ledger-engine/src/internal/commons"
	"github.com/api-sage/ledger-engine/src/internal/domain"
	"github.com/api-sage/ledger-engine/src/internal/logger"
	"github.com/shopspring/decimal"
)

var minimumOpeningDeposit = decimal.NewFromInt(50)

// AccountNumberGenerator returns a candidate 10-digit account number.
type AccountNumberGenerator func() string

type AccountService struct {
	accountRepo    repo_interfaces.AccountRepository
	clock          domain.Clock
	generateNumber AccountNumberGenerator
}

func NewAccountService(
	accountRepo repo_interfaces.AccountRepository,
	clock domain.Clock,
	generateNumber AccountNumberGenerator,
) *AccountService {
	if clock == nil {
		clock = domain.SystemClock{}
	}
	if generateNumber == nil {
		generateNumber = RandomAccountNumber
	}
	return &AccountService{
		accountRepo:    accountRepo,
		clock:          clock,
		generateNumber: generateNumber,
	}
}

func (s *AccountService) Create(ctx context.Context, firstName, lastName string, initialDeposit decimal.Decimal) (*domain.Account, error) {
	logger.Info("account service create account request", logger.Fields{
		"firstName":      firstName,
		"lastName":       lastName,
		"initialDeposit": initialDeposit.String(),
	})

	first, err := commons.RequireNonEmptyString("firstName", firstName)
	if err != nil {
		logger.Error("account service create account validation failed", err, nil)
		return nil, err
	}
	last, err := commons.RequireNonEmptyString("lastName", lastName)
	if err != nil {
		logger.Error("account service create account validation failed", err, nil)
		return nil, err
	}
	if initialDeposit.LessThan(minimumOpeningDeposit) {
		err := domain.NewValidationError("initialDeposit must be at least %s", minimumOpeningDeposit.String())
		logger.Error("account service create account validation failed", err, nil)
		return nil, err
	}

	for {
		accountNumber, err := s.uniqueAccountNumber(ctx)
		if err != nil {
			logger.Error("account service create account number lookup failed", err, nil)
			return nil, err
		}

		account := domain.NewAccount(accountNumber, first, last, initialDeposit, s.clock.Now())
		err = s.accountRepo.Create(ctx, account)
		if err == nil {
			logger.Info("account service create account success", logger.Fields{
				"accountNumber": account.AccountNumber,
				"balance":       account.Balance.String(),
			})
			return account, nil
		}
		if !errors.Is(err, domain.ErrDuplicateAccountNumber) {
			logger.Error("account service create account repository failed", err, logger.Fields{
				"accountNumber": accountNumber,
			})
			return nil, err
		}
	}
}

func (s *AccountService) List(ctx context.Context) ([]*domain.Account, error) {
	accounts, err := s.accountRepo.List(ctx)
	if err != nil {
		logger.Error("account service list accounts failed", err, nil)
		return nil, err
	}
	return accounts, nil
}

func (s *AccountService) Get(ctx context.Context, accountNumber string) (*domain.Account, error) {
	accountNumber = strings.TrimSpace(accountNumber)
	if !commons.IsTenDigitAccountNumber(accountNumber) {
		return nil, domain.NewValidationError("accountNumber must be exactly 10 digits")
	}

	account, err := s.accountRepo.GetByAccountNumber(ctx, accountNumber)
	if err != nil {
		logger.Error("account service get account failed", err, logger.Fields{
			"accountNumber": accountNumber,
		})
		return nil, err
	}
	return account, nil
}

// uniqueAccountNumber samples until the repository reports no collision. The
// space is large enough that the loop is unbounded.
func (s *AccountService) uniqueAccountNumber(ctx context.Context) (string, error) {
	for {
		candidate := s.generateNumber()
		exists, err := s.accountRepo.ExistsByAccountNumber(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
	}
}

func RandomAccountNumber() string {
	return fmt.Sprintf("%010d", rand.Int64N(10_000_000_000))
}
