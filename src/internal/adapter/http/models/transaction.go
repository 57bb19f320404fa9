package models

import (
	"github.com/api-sage/ledger-engine/src/internal/commons"
	"github.com/api-sage/ledger-engine/src/internal/domain"
	"github.com/shopspring/decimal"
)

// AmountRequest is the body of deposit and withdraw calls. Positivity is
// enforced by the services so that policy checks keep their order.
type AmountRequest struct {
	Amount string `json:"amount"`
}

func (r AmountRequest) Validate() error {
	_, err := commons.ParseAmount("amount", r.Amount)
	return err
}

func (r AmountRequest) Value() decimal.Decimal {
	amount, _ := commons.ParseAmount("amount", r.Amount)
	return amount
}

type TransactionResponse struct {
	ID         string `json:"id"`
	Type       string `json:"type"`
	Amount     string `json:"amount"`
	Penalty    string `json:"penalty,omitempty"`
	To         string `json:"to,omitempty"`
	From       string `json:"from,omitempty"`
	Date       string `json:"date"`
	NewBalance string `json:"newBalance"`
}

func NewTransactionResponses(txs []domain.Transaction) []TransactionResponse {
	out := make([]TransactionResponse, 0, len(txs))
	for _, tx := range txs {
		item := TransactionResponse{
			ID:         tx.ID,
			Type:       string(tx.Type),
			Amount:     tx.Amount.String(),
			To:         tx.To,
			From:       tx.From,
			Date:       formatTime(tx.Date),
			NewBalance: tx.NewBalance.String(),
		}
		if tx.Penalty != nil {
			item.Penalty = tx.Penalty.String()
		}
		out = append(out, item)
	}
	return out
}
