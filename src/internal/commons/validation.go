package commons

import (
	"strings"

	"github.com/api-sage/ledger-engine/src/internal/domain"
	"github.com/shopspring/decimal"
)

func RequireNonEmptyString(field, value string) (string, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", domain.NewValidationError("%s is required", field)
	}
	return trimmed, nil
}

func RequirePositiveAmount(field string, amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return domain.NewValidationError("%s must be greater than zero", field)
	}
	return nil
}

// ParseAmount reads a decimal amount from raw input. Sign is not checked here;
// callers apply RequirePositiveAmount where the rule order allows it.
func ParseAmount(field, raw string) (decimal.Decimal, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return decimal.Zero, domain.NewValidationError("%s is required", field)
	}
	amount, err := decimal.NewFromString(trimmed)
	if err != nil {
		return decimal.Zero, domain.NewValidationError("%s must be a number", field)
	}
	return amount, nil
}

func IsTenDigitAccountNumber(accountNumber string) bool {
	if len(accountNumber) != 10 {
		return false
	}

	for _, ch := range accountNumber {
		if ch < '0' || ch > '9' {
			return false
		}
	}

	return true
}
