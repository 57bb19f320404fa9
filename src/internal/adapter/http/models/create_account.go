package models

import (
	"errors"
	"strings"
	"time"

	"github.com/api-sage/ledger-engine/src/internal/commons"
	"github.com/api-sage/ledger-engine/src/internal/domain"
	"github.com/shopspring/decimal"
)

type CreateAccountRequest struct {
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	InitialDeposit string `json:"initialDeposit"`
}

func (r CreateAccountRequest) Validate() error {
	var errs []string

	if strings.TrimSpace(r.FirstName) == "" {
		errs = append(errs, "firstName is required")
	}
	if strings.TrimSpace(r.LastName) == "" {
		errs = append(errs, "lastName is required")
	}

	if _, err := commons.ParseAmount("initialDeposit", r.InitialDeposit); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

// InitialDepositAmount must only be called after Validate succeeds.
func (r CreateAccountRequest) InitialDepositAmount() decimal.Decimal {
	amount, _ := commons.ParseAmount("initialDeposit", r.InitialDeposit)
	return amount
}

type StatusChangeResponse struct {
	Action string `json:"action"`
	By     string `json:"by"`
	Date   string `json:"date"`
}

type AccountResponse struct {
	AccountNumber  string                 `json:"accountNumber"`
	FirstName      string                 `json:"firstName"`
	LastName       string                 `json:"lastName"`
	OpeningBalance string                 `json:"openingBalance"`
	Balance        string                 `json:"balance"`
	Status         string                 `json:"status"`
	HasPassword    bool                   `json:"hasPassword"`
	CreatedAt      string                 `json:"createdAt"`
	Transactions   []TransactionResponse  `json:"transactions"`
	StatusHistory  []StatusChangeResponse `json:"statusHistory"`
}

// NewAccountResponse maps a detached snapshot; callers must not pass a live
// registry account.
func NewAccountResponse(account *domain.Account) AccountResponse {
	history := make([]StatusChangeResponse, 0, len(account.StatusHistory))
	for _, change := range account.StatusHistory {
		history = append(history, StatusChangeResponse{
			Action: string(change.Action),
			By:     change.By,
			Date:   formatTime(change.Date),
		})
	}

	return AccountResponse{
		AccountNumber:  account.AccountNumber,
		FirstName:      account.FirstName,
		LastName:       account.LastName,
		OpeningBalance: account.OpeningBalance.String(),
		Balance:        account.Balance.String(),
		Status:         string(account.Status),
		HasPassword:    account.PasswordHash != "",
		CreatedAt:      formatTime(account.CreatedAt),
		Transactions:   NewTransactionResponses(account.Transactions),
		StatusHistory:  history,
	}
}

type AccountListItem struct {
	AccountNumber string `json:"accountNumber"`
	AccountName   string `json:"accountName"`
	Balance       string `json:"balance"`
	Status        string `json:"status"`
}

func NewAccountListItem(account *domain.Account) AccountListItem {
	return AccountListItem{
		AccountNumber: account.AccountNumber,
		AccountName:   strings.TrimSpace(account.FirstName + " " + account.LastName),
		Balance:       account.Balance.String(),
		Status:        string(account.Status),
	}
}

type AccountSummaryResponse struct {
	AccountNumber string                `json:"accountNumber"`
	Balance       string                `json:"balance"`
	Transactions  []TransactionResponse `json:"transactions"`
}

func NewAccountSummaryResponse(summary domain.AccountSummary) AccountSummaryResponse {
	return AccountSummaryResponse{
		AccountNumber: summary.AccountNumber,
		Balance:       summary.Balance.String(),
		Transactions:  NewTransactionResponses(summary.Transactions),
	}
}

type InterestResponse struct {
	AccountNumber   string `json:"accountNumber"`
	Balance         string `json:"balance"`
	InterestApplied string `json:"interestApplied,omitempty"`
	Message         string `json:"message,omitempty"`
}

func NewInterestResponse(result domain.InterestResult) InterestResponse {
	response := InterestResponse{
		AccountNumber: result.AccountNumber,
		Balance:       result.Balance.String(),
		Message:       result.Message,
	}
	if result.InterestApplied != nil {
		response.InterestApplied = result.InterestApplied.String()
	}
	return response
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}
