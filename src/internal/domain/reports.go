package domain

import "github.com/shopspring/decimal"

type InterestResult struct {
	AccountNumber   string           `json:"accountNumber"`
	Balance         decimal.Decimal  `json:"balance"`
	InterestApplied *decimal.Decimal `json:"interestApplied,omitempty"`
	Message         string           `json:"message,omitempty"`
}

type PasswordCheck struct {
	Valid   bool     `json:"valid"`
	Reasons []string `json:"reasons,omitempty"`
}

type ActivityReport struct {
	IsSuspicious bool     `json:"isSuspicious"`
	Alerts       []string `json:"alerts"`
}
