package services_test

import (
	"errors"
	"math/rand/v2"
	"sync"
	"testing"
	"time"

	"github.com/api-sage/ledger-engine/src/internal/domain"
	"github.com/api-sage/ledger-engine/src/internal/usecase/services"
	"github.com/shopspring/decimal"
)

func TestLedgerServiceDeposit(t *testing.T) {
	now := time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)
	svc := services.NewLedgerService(newTestClock(now))
	account := newTestAccount("0000000001", 100)

	updated, err := svc.Deposit(account, dec(t, "25.50"))
	if err != nil {
		t.Fatalf("Deposit err=%v", err)
	}
	if updated != account {
		t.Fatal("Deposit must return the same account")
	}
	if !account.Balance.Equal(dec(t, "125.50")) {
		t.Fatalf("balance=%s", account.Balance)
	}

	tx := account.Transactions[0]
	if tx.Type != domain.TransactionTypeDeposit || !tx.NewBalance.Equal(account.Balance) || !tx.Date.Equal(now) || tx.ID == "" {
		t.Fatalf("unexpected transaction %+v", tx)
	}
}

func TestLedgerServiceDepositRejectsNonPositive(t *testing.T) {
	svc := services.NewLedgerService(nil)
	account := newTestAccount("0000000001", 100)

	for _, amount := range []decimal.Decimal{decimal.Zero, decimal.NewFromInt(-5)} {
		if _, err := svc.Deposit(account, amount); !errors.Is(err, domain.ErrValidation) {
			t.Fatalf("amount %s: expected validation error, got %v", amount, err)
		}
	}
	if len(account.Transactions) != 0 || !account.Balance.Equal(decimal.NewFromInt(100)) {
		t.Fatal("rejected deposit must not change the account")
	}
}

func TestLedgerServiceWithdrawOverdraftChargesPenalty(t *testing.T) {
	svc := services.NewLedgerService(nil)
	account := newTestAccount("0000000001", 100)

	summary, err := svc.Withdraw(account, decimal.NewFromInt(150))
	if err != nil {
		t.Fatalf("Withdraw err=%v", err)
	}
	if !summary.Balance.Equal(decimal.NewFromInt(95)) {
		t.Fatalf("balance=%s want=95", summary.Balance)
	}

	tx := summary.Transactions[0]
	if tx.Type != domain.TransactionTypeOverdraftAttempt {
		t.Fatalf("type=%s want=OVERDRAFT_ATTEMPT", tx.Type)
	}
	if !tx.Amount.Equal(decimal.NewFromInt(150)) || tx.Penalty == nil || !tx.Penalty.Equal(decimal.NewFromInt(5)) {
		t.Fatalf("unexpected overdraft record %+v", tx)
	}
	assertBalanceMatchesHistory(t, account)
}

func TestLedgerServiceWithdrawExactBalance(t *testing.T) {
	svc := services.NewLedgerService(nil)
	account := newTestAccount("0000000001", 100)

	summary, err := svc.Withdraw(account, decimal.NewFromInt(100))
	if err != nil {
		t.Fatalf("Withdraw err=%v", err)
	}
	if !summary.Balance.IsZero() {
		t.Fatalf("balance=%s want=0", summary.Balance)
	}

	tx := summary.Transactions[0]
	if tx.Type != domain.TransactionTypeWithdrawal || !tx.Amount.Equal(decimal.NewFromInt(100)) || tx.Penalty != nil {
		t.Fatalf("unexpected withdrawal record %+v", tx)
	}
}

func TestLedgerServiceWithdrawSummaryIsDetached(t *testing.T) {
	svc := services.NewLedgerService(nil)
	account := newTestAccount("0000000001", 100)

	summary, err := svc.Withdraw(account, decimal.NewFromInt(10))
	if err != nil {
		t.Fatalf("Withdraw err=%v", err)
	}
	summary.Transactions[0].Amount = decimal.NewFromInt(999)

	if !account.Transactions[0].Amount.Equal(decimal.NewFromInt(10)) {
		t.Fatal("summary transactions must not alias the account history")
	}
}

func TestLedgerServiceTransfer(t *testing.T) {
	svc := services.NewLedgerService(nil)
	from := newTestAccount("0000000001", 300)
	to := newTestAccount("0000000002", 100)

	fromSummary, toSummary, err := svc.Transfer(from, to, decimal.NewFromInt(25))
	if err != nil {
		t.Fatalf("Transfer err=%v", err)
	}
	if !fromSummary.Balance.Equal(decimal.NewFromInt(275)) || !toSummary.Balance.Equal(decimal.NewFromInt(125)) {
		t.Fatalf("balances from=%s to=%s", fromSummary.Balance, toSummary.Balance)
	}

	out := from.Transactions[0]
	in := to.Transactions[0]
	if out.Type != domain.TransactionTypeTransferOut || out.To != "0000000002" {
		t.Fatalf("unexpected outgoing record %+v", out)
	}
	if in.Type != domain.TransactionTypeTransferIn || in.From != "0000000001" {
		t.Fatalf("unexpected incoming record %+v", in)
	}
	if !out.Date.Equal(in.Date) {
		t.Fatal("both legs of a transfer share one timestamp")
	}
}

func TestLedgerServiceTransferInsufficientFunds(t *testing.T) {
	svc := services.NewLedgerService(nil)
	from := newTestAccount("0000000001", 300)
	to := newTestAccount("0000000002", 100)

	_, _, err := svc.Transfer(from, to, decimal.NewFromInt(1000))
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if err.Error() != "insufficient funds for transfer" {
		t.Fatalf("message=%q", err.Error())
	}
	if !from.Balance.Equal(decimal.NewFromInt(300)) || !to.Balance.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("balances changed: from=%s to=%s", from.Balance, to.Balance)
	}
	if len(from.Transactions) != 0 || len(to.Transactions) != 0 {
		t.Fatal("failed transfer must not append records")
	}
}

func TestLedgerServiceTransferValidation(t *testing.T) {
	svc := services.NewLedgerService(nil)
	account := newTestAccount("0000000001", 300)

	if _, _, err := svc.Transfer(nil, account, decimal.NewFromInt(1)); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error for nil source, got %v", err)
	}
	if _, _, err := svc.Transfer(account, newTestAccount("", 0), decimal.NewFromInt(1)); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error for missing number, got %v", err)
	}
	if _, _, err := svc.Transfer(account, newTestAccount("0000000002", 0), decimal.Zero); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error for zero amount, got %v", err)
	}
}

func TestLedgerServiceSelfTransferNetsToZero(t *testing.T) {
	svc := services.NewLedgerService(nil)
	account := newTestAccount("0000000001", 300)

	if _, _, err := svc.Transfer(account, account, decimal.NewFromInt(50)); err != nil {
		t.Fatalf("Transfer err=%v", err)
	}
	if !account.Balance.Equal(decimal.NewFromInt(300)) || len(account.Transactions) != 2 {
		t.Fatalf("balance=%s transactions=%d", account.Balance, len(account.Transactions))
	}
	assertBalanceMatchesHistory(t, account)
}

func retrievalFixture(t *testing.T) (*services.LedgerService, *domain.Account) {
	t.Helper()
	clock := newTestClock(time.Date(2023, 11, 15, 9, 30, 0, 0, time.UTC))
	svc := services.NewLedgerService(clock)
	account := newTestAccount("0000000001", 500)

	if _, err := svc.Deposit(account, decimal.NewFromInt(200)); err != nil {
		t.Fatalf("Deposit err=%v", err)
	}
	clock.Set(time.Date(2023, 11, 20, 18, 45, 0, 0, time.UTC))
	if _, err := svc.Withdraw(account, decimal.NewFromInt(50)); err != nil {
		t.Fatalf("Withdraw err=%v", err)
	}
	return svc, account
}

func TestLedgerServiceRetrieveInRangeByType(t *testing.T) {
	svc, account := retrievalFixture(t)

	txs, err := svc.RetrieveInRange(account, domain.TransactionFilter{
		StartDate: "2023-11-01",
		EndDate:   "2023-11-30",
		Type:      "DEPOSIT",
	})
	if err != nil {
		t.Fatalf("RetrieveInRange err=%v", err)
	}
	if len(txs) != 1 || txs[0].Type != domain.TransactionTypeDeposit {
		t.Fatalf("unexpected result %+v", txs)
	}
}

func TestLedgerServiceRetrieveInRangeNewestFirst(t *testing.T) {
	svc, account := retrievalFixture(t)

	txs, err := svc.RetrieveInRange(account, domain.TransactionFilter{})
	if err != nil {
		t.Fatalf("RetrieveInRange err=%v", err)
	}
	if len(txs) != 2 {
		t.Fatalf("expected 2 transactions, got %d", len(txs))
	}
	if txs[0].Type != domain.TransactionTypeWithdrawal || txs[1].Type != domain.TransactionTypeDeposit {
		t.Fatalf("expected newest first, got %s then %s", txs[0].Type, txs[1].Type)
	}
	if account.Transactions[0].Type != domain.TransactionTypeDeposit {
		t.Fatal("retrieval must not reorder the account history")
	}
}

func TestLedgerServiceRetrieveInRangeEndDateIsInclusiveDay(t *testing.T) {
	svc, account := retrievalFixture(t)

	txs, err := svc.RetrieveInRange(account, domain.TransactionFilter{EndDate: "2023-11-20"})
	if err != nil {
		t.Fatalf("RetrieveInRange err=%v", err)
	}
	if len(txs) != 2 {
		t.Fatalf("a withdrawal late on the end date must be included, got %d", len(txs))
	}

	txs, err = svc.RetrieveInRange(account, domain.TransactionFilter{StartDate: "2023-11-16T00:00:00Z"})
	if err != nil {
		t.Fatalf("RetrieveInRange err=%v", err)
	}
	if len(txs) != 1 || txs[0].Type != domain.TransactionTypeWithdrawal {
		t.Fatalf("unexpected result %+v", txs)
	}
}

func TestLedgerServiceRetrieveInRangeTypeIsCaseInsensitive(t *testing.T) {
	svc, account := retrievalFixture(t)

	txs, err := svc.RetrieveInRange(account, domain.TransactionFilter{Type: "withdrawal"})
	if err != nil {
		t.Fatalf("RetrieveInRange err=%v", err)
	}
	if len(txs) != 1 || txs[0].Type != domain.TransactionTypeWithdrawal {
		t.Fatalf("unexpected result %+v", txs)
	}
}

func TestLedgerServiceRetrieveInRangeInvalidInput(t *testing.T) {
	svc, account := retrievalFixture(t)

	_, err := svc.RetrieveInRange(account, domain.TransactionFilter{StartDate: "yesterday"})
	if !errors.Is(err, domain.ErrValidation) || err.Error() != "Invalid date: yesterday" {
		t.Fatalf("expected invalid date error, got %v", err)
	}

	_, err = svc.RetrieveInRange(account, domain.TransactionFilter{StartDate: "2023-11-30", EndDate: "2023-11-01"})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error for inverted range, got %v", err)
	}
}

func TestLedgerServiceBalanceMatchesHistoryForRandomSequences(t *testing.T) {
	clock := newTestClock(time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC))
	ledger := services.NewLedgerService(clock)
	interest := services.NewInterestService(nil, clock)

	for seed := uint64(1); seed <= 20; seed++ {
		rng := rand.New(rand.NewPCG(seed, seed*31))
		accounts := []*domain.Account{
			newTestAccount("0000000001", 50+rng.Int64N(2000)),
			newTestAccount("0000000002", 50+rng.Int64N(2000)),
			newTestAccount("0000000003", 50+rng.Int64N(2000)),
		}

		for step := 0; step < 200; step++ {
			clock.Advance(time.Duration(rng.IntN(120)) * time.Minute)
			account := accounts[rng.IntN(len(accounts))]
			amount := decimal.New(rng.Int64N(100_000)+1, -2)

			switch rng.IntN(4) {
			case 0:
				_, _ = ledger.Deposit(account, amount)
			case 1:
				_, _ = ledger.Withdraw(account, amount)
			case 2:
				other := accounts[rng.IntN(len(accounts))]
				_, _, _ = ledger.Transfer(account, other, amount)
			case 3:
				_, _ = interest.AccrueInterest(account)
			}
		}

		for _, account := range accounts {
			assertBalanceMatchesHistory(t, account)
		}
	}
}

func TestLedgerServiceConcurrentTransfersPreserveTotal(t *testing.T) {
	svc := services.NewLedgerService(nil)
	accounts := []*domain.Account{
		newTestAccount("0000000001", 1000),
		newTestAccount("0000000002", 1000),
		newTestAccount("0000000003", 1000),
		newTestAccount("0000000004", 1000),
	}

	var wg sync.WaitGroup
	for worker := 0; worker < 8; worker++ {
		wg.Add(1)
		go func(seed uint64) {
			defer wg.Done()
			rng := rand.New(rand.NewPCG(seed, seed+7))
			for i := 0; i < 200; i++ {
				from := accounts[rng.IntN(len(accounts))]
				to := accounts[rng.IntN(len(accounts))]
				_, _, err := svc.Transfer(from, to, decimal.NewFromInt(rng.Int64N(50)+1))
				if err != nil && !errors.Is(err, domain.ErrValidation) {
					t.Errorf("unexpected transfer error: %v", err)
				}
			}
		}(uint64(worker + 1))
	}
	wg.Wait()

	total := decimal.Zero
	for _, account := range accounts {
		assertBalanceMatchesHistory(t, account)
		total = total.Add(account.Snapshot().Balance)
	}
	if !total.Equal(decimal.NewFromInt(4000)) {
		t.Fatalf("total=%s want=4000", total)
	}
}
