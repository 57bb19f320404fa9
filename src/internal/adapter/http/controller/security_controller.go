package controller

import (
	"net/http"
	"time"

	"github.com/api-sage/ledger-engine/src/internal/adapter/http/models"
	"github.com/api-sage/ledger-engine/src/internal/domain"
	"github.com/api-sage/ledger-engine/src/internal/usecase/service_interfaces"
	"github.com/go-chi/chi/v5"
)

type SecurityController struct {
	accounts service_interfaces.AccountService
	security service_interfaces.SecurityService
}

func NewSecurityController(accounts service_interfaces.AccountService, security service_interfaces.SecurityService) *SecurityController {
	return &SecurityController{accounts: accounts, security: security}
}

func (c *SecurityController) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Post("/passwords/validate", c.validatePassword)

	protected := withAuth(r, authMiddleware)
	protected.Post("/accounts/{accountNumber}/status", c.updateStatus)
	protected.Post("/accounts/{accountNumber}/password", c.setPassword)
	protected.Get("/accounts/{accountNumber}/activity", c.checkActivity)
}

func (c *SecurityController) updateStatus(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.UpdateStatusRequest
	if err := decodeBody(w, r, &req); err != nil {
		respondBadRequest[models.AccountResponse](w, r, "invalid request body", err, start)
		return
	}
	logRequest(r, req)

	if err := req.Validate(); err != nil {
		respondBadRequest[models.AccountResponse](w, r, "validation failed", err, start)
		return
	}

	account, err := c.accounts.Get(r.Context(), chi.URLParam(r, accountNumberParam))
	if err != nil {
		respondFailure[models.AccountResponse](w, r, err, start)
		return
	}

	updated, err := c.security.UpdateAccountStatus(account, req.Action, req.ManagerID)
	if err != nil {
		respondFailure[models.AccountResponse](w, r, err, start)
		return
	}

	respondSuccess(w, r, http.StatusOK, "account status updated", models.NewAccountResponse(updated.Snapshot()), start)
}

func (c *SecurityController) setPassword(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.SetPasswordRequest
	if err := decodeBody(w, r, &req); err != nil {
		respondBadRequest[models.PasswordCheckResponse](w, r, "invalid request body", err, start)
		return
	}
	logRequest(r, req)

	account, err := c.accounts.Get(r.Context(), chi.URLParam(r, accountNumberParam))
	if err != nil {
		respondFailure[models.PasswordCheckResponse](w, r, err, start)
		return
	}

	check, err := c.security.SetPassword(account, req.Password)
	if err != nil {
		if domain.KindOf(err) == domain.ErrorKindValidation {
			response := models.NewPasswordCheckResponse(check)
			logError(r, err, nil)
			writeJSON(w, http.StatusBadRequest, failureWithData(err, response))
			logResponse(r, http.StatusBadRequest, response, start)
			return
		}
		respondFailure[models.PasswordCheckResponse](w, r, err, start)
		return
	}

	respondSuccess(w, r, http.StatusOK, "password updated", models.NewPasswordCheckResponse(check), start)
}

func (c *SecurityController) validatePassword(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.ValidatePasswordRequest
	if err := decodeBody(w, r, &req); err != nil {
		respondBadRequest[models.PasswordCheckResponse](w, r, "invalid request body", err, start)
		return
	}
	logRequest(r, req)

	check := c.security.ValidatePasswordValue(req.Password)
	respondSuccess(w, r, http.StatusOK, "password checked", models.NewPasswordCheckResponse(check), start)
}

func (c *SecurityController) checkActivity(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	account, err := c.accounts.Get(r.Context(), chi.URLParam(r, accountNumberParam))
	if err != nil {
		respondFailure[models.ActivityResponse](w, r, err, start)
		return
	}

	report := c.security.CheckSuspiciousActivity(account)
	respondSuccess(w, r, http.StatusOK, "activity checked", models.ActivityResponse{
		AccountNumber: account.AccountNumber,
		IsSuspicious:  report.IsSuspicious,
		Alerts:        report.Alerts,
	}, start)
}
