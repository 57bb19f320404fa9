package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TransactionTypeDeposit          TransactionType = "DEPOSIT"
	TransactionTypeWithdrawal       TransactionType = "WITHDRAWAL"
	TransactionTypeOverdraftAttempt TransactionType = "OVERDRAFT_ATTEMPT"
	TransactionTypeTransferOut      TransactionType = "TRANSFER_OUT"
	TransactionTypeTransferIn       TransactionType = "TRANSFER_IN"
	TransactionTypeInterest         TransactionType = "INTEREST"
)

// Transaction is immutable once appended to an account. Penalty is only set on
// OVERDRAFT_ATTEMPT, To on TRANSFER_OUT and From on TRANSFER_IN.
type Transaction struct {
	ID         string           `json:"id"`
	Type       TransactionType  `json:"type"`
	Amount     decimal.Decimal  `json:"amount"`
	Penalty    *decimal.Decimal `json:"penalty,omitempty"`
	To         string           `json:"to,omitempty"`
	From       string           `json:"from,omitempty"`
	Date       time.Time        `json:"date"`
	NewBalance decimal.Decimal  `json:"newBalance"`
}

// BalanceEffect is the signed amount the transaction applied to its account.
func (t Transaction) BalanceEffect() decimal.Decimal {
	switch t.Type {
	case TransactionTypeDeposit, TransactionTypeTransferIn, TransactionTypeInterest:
		return t.Amount
	case TransactionTypeWithdrawal, TransactionTypeTransferOut:
		return t.Amount.Neg()
	case TransactionTypeOverdraftAttempt:
		if t.Penalty == nil {
			return decimal.Zero
		}
		return t.Penalty.Neg()
	default:
		return decimal.Zero
	}
}

type TransactionFilter struct {
	StartDate string
	EndDate   string
	Type      string
}
