package services_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/api-sage/ledger-engine/src/internal/domain"
	"github.com/shopspring/decimal"
)

type testClock struct {
	now time.Time
}

func newTestClock(now time.Time) *testClock {
	return &testClock{now: now}
}

func (c *testClock) Now() time.Time { return c.now }

func (c *testClock) Set(now time.Time) { c.now = now }

func (c *testClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func dec(t *testing.T, value string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(value)
	if err != nil {
		t.Fatalf("bad decimal %q: %v", value, err)
	}
	return d
}

func newTestAccount(number string, balance int64) *domain.Account {
	return domain.NewAccount(number, "Test", "Holder", decimal.NewFromInt(balance), time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
}

func sequentialNumbers(numbers ...string) func() string {
	i := 0
	return func() string {
		if i < len(numbers) {
			n := numbers[i]
			i++
			return n
		}
		i++
		return fmt.Sprintf("%010d", 9_000_000_000+i)
	}
}

// assertBalanceMatchesHistory checks balance = opening balance + signed transaction effects.
func assertBalanceMatchesHistory(t *testing.T, account *domain.Account) {
	t.Helper()
	snapshot := account.Snapshot()
	total := snapshot.OpeningBalance
	for _, tx := range snapshot.Transactions {
		total = total.Add(tx.BalanceEffect())
	}
	if !total.Equal(snapshot.Balance) {
		t.Fatalf("account %s balance=%s history=%s", snapshot.AccountNumber, snapshot.Balance, total)
	}
}
