package models

import (
	"errors"
	"strings"

	"github.com/api-sage/ledger-engine/src/internal/commons"
	"github.com/shopspring/decimal"
)

type TransferRequest struct {
	FromAccountNumber string `json:"fromAccountNumber"`
	ToAccountNumber   string `json:"toAccountNumber"`
	Amount            string `json:"amount"`
}

func (r TransferRequest) Validate() error {
	var errs []string

	if !commons.IsTenDigitAccountNumber(strings.TrimSpace(r.FromAccountNumber)) {
		errs = append(errs, "fromAccountNumber must be exactly 10 digits")
	}
	if !commons.IsTenDigitAccountNumber(strings.TrimSpace(r.ToAccountNumber)) {
		errs = append(errs, "toAccountNumber must be exactly 10 digits")
	}

	if _, err := commons.ParseAmount("amount", r.Amount); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

func (r TransferRequest) AmountValue() decimal.Decimal {
	amount, _ := commons.ParseAmount("amount", r.Amount)
	return amount
}

type TransferResponse struct {
	From AccountSummaryResponse `json:"from"`
	To   AccountSummaryResponse `json:"to"`
}
