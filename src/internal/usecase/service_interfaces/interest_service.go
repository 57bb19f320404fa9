package service_interfaces

import (
	"context"

	"github.com/api-sage/ledger-engine/src/internal/domain"
)

type InterestService interface {
	AccrueInterest(account *domain.Account) (domain.InterestResult, error)
	AccrueAll(ctx context.Context) ([]domain.InterestResult, error)
}
