package domain

import (
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

type AccountStatus string

const (
	AccountStatusActive AccountStatus = "ACTIVE"
	AccountStatusFrozen AccountStatus = "FROZEN"
)

type StatusAction string

const (
	StatusActionFreeze   StatusAction = "FREEZE"
	StatusActionUnfreeze StatusAction = "UNFREEZE"
)

// SystemActor is recorded as the author of status changes made without a manager.
const SystemActor = "system"

type StatusChange struct {
	Action StatusAction `json:"action"`
	By     string       `json:"by"`
	Date   time.Time    `json:"date"`
}

// Account is shared by pointer between the registry and its callers. Services
// hold the account lock for every read-modify-write of the fields below.
type Account struct {
	mu sync.Mutex

	AccountNumber  string          `json:"accountNumber"`
	FirstName      string          `json:"firstName"`
	LastName       string          `json:"lastName"`
	OpeningBalance decimal.Decimal `json:"openingBalance"`
	Balance        decimal.Decimal `json:"balance"`
	CreatedAt      time.Time       `json:"createdAt"`
	Transactions   []Transaction   `json:"transactions"`
	Status         AccountStatus   `json:"status"`
	StatusHistory  []StatusChange  `json:"statusHistory"`
	PasswordHash   string          `json:"-"`
}

func NewAccount(accountNumber, firstName, lastName string, openingBalance decimal.Decimal, createdAt time.Time) *Account {
	return &Account{
		AccountNumber:  accountNumber,
		FirstName:      firstName,
		LastName:       lastName,
		OpeningBalance: openingBalance,
		Balance:        openingBalance,
		CreatedAt:      createdAt.UTC(),
		Transactions:   []Transaction{},
		Status:         AccountStatusActive,
		StatusHistory:  []StatusChange{},
	}
}

func (a *Account) Lock()   { a.mu.Lock() }
func (a *Account) Unlock() { a.mu.Unlock() }

// Snapshot returns a detached copy of the account taken under its lock.
func (a *Account) Snapshot() *Account {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.copyLocked()
}

func (a *Account) copyLocked() *Account {
	cp := &Account{
		AccountNumber:  a.AccountNumber,
		FirstName:      a.FirstName,
		LastName:       a.LastName,
		OpeningBalance: a.OpeningBalance,
		Balance:        a.Balance,
		CreatedAt:      a.CreatedAt,
		Transactions:   make([]Transaction, len(a.Transactions)),
		Status:         a.Status,
		StatusHistory:  make([]StatusChange, len(a.StatusHistory)),
		PasswordHash:   a.PasswordHash,
	}
	copy(cp.Transactions, a.Transactions)
	copy(cp.StatusHistory, a.StatusHistory)
	return cp
}

// SummaryLocked must be called with the account lock held.
func (a *Account) SummaryLocked() AccountSummary {
	txs := make([]Transaction, len(a.Transactions))
	copy(txs, a.Transactions)
	return AccountSummary{
		AccountNumber: a.AccountNumber,
		Balance:       a.Balance,
		Transactions:  txs,
	}
}

// LockPair locks both accounts in ascending account-number order and returns
// the matching unlock. The same account passed twice is locked once.
func LockPair(a, b *Account) func() {
	if a == b {
		a.mu.Lock()
		return a.mu.Unlock
	}
	first, second := a, b
	if second.AccountNumber < first.AccountNumber {
		first, second = second, first
	}
	first.mu.Lock()
	second.mu.Lock()
	return func() {
		second.mu.Unlock()
		first.mu.Unlock()
	}
}

type AccountSummary struct {
	AccountNumber string          `json:"accountNumber"`
	Balance       decimal.Decimal `json:"balance"`
	Transactions  []Transaction   `json:"transactions"`
}
