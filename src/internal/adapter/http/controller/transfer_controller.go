package controller

import (
	"net/http"
	"time"

	"github.com/api-sage/ledger-engine/src/internal/adapter/http/models"
	"github.com/api-sage/ledger-engine/src/internal/logger"
	"github.com/api-sage/ledger-engine/src/internal/usecase/service_interfaces"
	"github.com/go-chi/chi/v5"
)

// TransferController moves money. Every route goes through the policy-guarded
// operations so frozen accounts and the daily limit are always enforced.
type TransferController struct {
	accounts service_interfaces.AccountService
	security service_interfaces.SecurityService
}

func NewTransferController(accounts service_interfaces.AccountService, security service_interfaces.SecurityService) *TransferController {
	return &TransferController{accounts: accounts, security: security}
}

func (c *TransferController) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	protected := withAuth(r, authMiddleware)
	protected.Post("/accounts/{accountNumber}/deposit", c.deposit)
	protected.Post("/accounts/{accountNumber}/withdraw", c.withdraw)
	protected.Post("/transfers", c.transfer)
}

func (c *TransferController) deposit(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.AmountRequest
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

	updated, err := c.security.DepositSafe(account, req.Value())
	if err != nil {
		respondFailure[models.AccountResponse](w, r, err, start)
		return
	}

	respondSuccess(w, r, http.StatusOK, "deposit successful", models.NewAccountResponse(updated.Snapshot()), start)
}

func (c *TransferController) withdraw(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.AmountRequest
	if err := decodeBody(w, r, &req); err != nil {
		respondBadRequest[models.AccountSummaryResponse](w, r, "invalid request body", err, start)
		return
	}
	logRequest(r, req)

	if err := req.Validate(); err != nil {
		respondBadRequest[models.AccountSummaryResponse](w, r, "validation failed", err, start)
		return
	}

	account, err := c.accounts.Get(r.Context(), chi.URLParam(r, accountNumberParam))
	if err != nil {
		respondFailure[models.AccountSummaryResponse](w, r, err, start)
		return
	}

	summary, err := c.security.WithdrawWithDailyLimit(account, req.Value())
	if err != nil {
		respondFailure[models.AccountSummaryResponse](w, r, err, start)
		return
	}

	respondSuccess(w, r, http.StatusOK, "withdrawal processed", models.NewAccountSummaryResponse(summary), start)
}

func (c *TransferController) transfer(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.TransferRequest
	if err := decodeBody(w, r, &req); err != nil {
		respondBadRequest[models.TransferResponse](w, r, "invalid request body", err, start)
		return
	}
	logRequest(r, req)

	if err := req.Validate(); err != nil {
		respondBadRequest[models.TransferResponse](w, r, "validation failed", err, start)
		return
	}

	from, err := c.accounts.Get(r.Context(), req.FromAccountNumber)
	if err != nil {
		logError(r, err, logger.Fields{"side": "from"})
		respondFailure[models.TransferResponse](w, r, err, start)
		return
	}
	to, err := c.accounts.Get(r.Context(), req.ToAccountNumber)
	if err != nil {
		logError(r, err, logger.Fields{"side": "to"})
		respondFailure[models.TransferResponse](w, r, err, start)
		return
	}

	fromSummary, toSummary, err := c.security.TransferSafe(from, to, req.AmountValue())
	if err != nil {
		respondFailure[models.TransferResponse](w, r, err, start)
		return
	}

	respondSuccess(w, r, http.StatusOK, "transfer successful", models.TransferResponse{
		From: models.NewAccountSummaryResponse(fromSummary),
		To:   models.NewAccountSummaryResponse(toSummary),
	}, start)
}
