package models

import (
	"errors"
	"strings"

	"github.com/api-sage/ledger-engine/src/internal/domain"
)

type UpdateStatusRequest struct {
	Action    string `json:"action"`
	ManagerID string `json:"managerId"`
}

func (r UpdateStatusRequest) Validate() error {
	if strings.TrimSpace(r.Action) == "" {
		return errors.New("action is required")
	}
	return nil
}

type SetPasswordRequest struct {
	Password string `json:"password"`
}

// ValidatePasswordRequest accepts any JSON value; non-strings are reported as
// invalid rather than rejected at decode time.
type ValidatePasswordRequest struct {
	Password any `json:"password"`
}

type PasswordCheckResponse struct {
	Valid   bool     `json:"valid"`
	Reasons []string `json:"reasons"`
}

func NewPasswordCheckResponse(check domain.PasswordCheck) PasswordCheckResponse {
	reasons := check.Reasons
	if reasons == nil {
		reasons = []string{}
	}
	return PasswordCheckResponse{Valid: check.Valid, Reasons: reasons}
}

type ActivityResponse struct {
	AccountNumber string   `json:"accountNumber"`
	IsSuspicious  bool     `json:"isSuspicious"`
	Alerts        []string `json:"alerts"`
}
