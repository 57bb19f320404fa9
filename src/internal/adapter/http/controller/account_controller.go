package controller

import (
	"net/http"
	"time"

	"github.com/api-sage/ledger-engine/src/internal/adapter/http/models"
	"github.com/api-sage/ledger-engine/src/internal/domain"
	"github.com/api-sage/ledger-engine/src/internal/usecase/service_interfaces"
	"github.com/go-chi/chi/v5"
)

const accountNumberParam = "accountNumber"

type AccountController struct {
	accounts service_interfaces.AccountService
	ledger   service_interfaces.LedgerService
	interest service_interfaces.InterestService
}

func NewAccountController(
	accounts service_interfaces.AccountService,
	ledger service_interfaces.LedgerService,
	interest service_interfaces.InterestService,
) *AccountController {
	return &AccountController{accounts: accounts, ledger: ledger, interest: interest}
}

func (c *AccountController) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Get("/accounts", c.listAccounts)
	r.Get("/accounts/{accountNumber}", c.getAccount)
	r.Get("/accounts/{accountNumber}/transactions", c.getTransactions)

	protected := withAuth(r, authMiddleware)
	protected.Post("/accounts", c.createAccount)
	protected.Post("/accounts/{accountNumber}/interest", c.accrueInterest)
}

func (c *AccountController) createAccount(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.CreateAccountRequest
	if err := decodeBody(w, r, &req); err != nil {
		respondBadRequest[models.AccountResponse](w, r, "invalid request body", err, start)
		return
	}
	logRequest(r, req)

	if err := req.Validate(); err != nil {
		respondBadRequest[models.AccountResponse](w, r, "validation failed", err, start)
		return
	}

	account, err := c.accounts.Create(r.Context(), req.FirstName, req.LastName, req.InitialDepositAmount())
	if err != nil {
		respondFailure[models.AccountResponse](w, r, err, start)
		return
	}

	respondSuccess(w, r, http.StatusCreated, "account created", models.NewAccountResponse(account.Snapshot()), start)
}

func (c *AccountController) listAccounts(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	accounts, err := c.accounts.List(r.Context())
	if err != nil {
		respondFailure[[]models.AccountListItem](w, r, err, start)
		return
	}

	items := make([]models.AccountListItem, 0, len(accounts))
	for _, account := range accounts {
		items = append(items, models.NewAccountListItem(account.Snapshot()))
	}
	respondSuccess(w, r, http.StatusOK, "accounts retrieved", items, start)
}

func (c *AccountController) getAccount(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	account, err := c.accounts.Get(r.Context(), chi.URLParam(r, accountNumberParam))
	if err != nil {
		respondFailure[models.AccountResponse](w, r, err, start)
		return
	}

	respondSuccess(w, r, http.StatusOK, "account retrieved", models.NewAccountResponse(account.Snapshot()), start)
}

func (c *AccountController) getTransactions(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	query := r.URL.Query()
	filter := domain.TransactionFilter{
		StartDate: query.Get("startDate"),
		EndDate:   query.Get("endDate"),
		Type:      query.Get("type"),
	}
	logRequest(r, filter)

	account, err := c.accounts.Get(r.Context(), chi.URLParam(r, accountNumberParam))
	if err != nil {
		respondFailure[[]models.TransactionResponse](w, r, err, start)
		return
	}

	txs, err := c.ledger.RetrieveInRange(account, filter)
	if err != nil {
		respondFailure[[]models.TransactionResponse](w, r, err, start)
		return
	}

	respondSuccess(w, r, http.StatusOK, "transactions retrieved", models.NewTransactionResponses(txs), start)
}

func (c *AccountController) accrueInterest(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	account, err := c.accounts.Get(r.Context(), chi.URLParam(r, accountNumberParam))
	if err != nil {
		respondFailure[models.InterestResponse](w, r, err, start)
		return
	}

	result, err := c.interest.AccrueInterest(account)
	if err != nil {
		respondFailure[models.InterestResponse](w, r, err, start)
		return
	}

	message := "interest applied"
	if result.InterestApplied == nil {
		message = "interest not applied"
	}
	respondSuccess(w, r, http.StatusOK, message, models.NewInterestResponse(result), start)
}

func withAuth(r chi.Router, authMiddleware func(http.Handler) http.Handler) chi.Router {
	if authMiddleware == nil {
		return r
	}
	return r.With(authMiddleware)
}
