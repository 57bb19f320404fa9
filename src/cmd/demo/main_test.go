package main

import (
	"context"
	"io"
	"os"
	"testing"
	"time"

	"github.com/api-sage/ledger-engine/src/internal/logger"
	"github.com/shopspring/decimal"
)

func TestDemoRunsToCompletion(t *testing.T) {
	logger.SetOutput(io.Discard)
	t.Cleanup(func() { logger.SetOutput(os.Stdout) })

	d := newDemo(time.Date(2026, 5, 4, 9, 0, 0, 0, time.UTC))
	if err := d.run(context.Background()); err != nil {
		t.Fatalf("run err=%v", err)
	}

	accounts, err := d.accounts.List(context.Background())
	if err != nil {
		t.Fatalf("List err=%v", err)
	}
	if len(accounts) != 2 {
		t.Fatalf("expected 2 accounts, got %d", len(accounts))
	}

	for _, account := range accounts {
		snapshot := account.Snapshot()
		total := snapshot.OpeningBalance
		for _, tx := range snapshot.Transactions {
			total = total.Add(tx.BalanceEffect())
		}
		if !total.Equal(snapshot.Balance) {
			t.Fatalf("%s balance %s does not match history %s", snapshot.AccountNumber, snapshot.Balance, total)
		}
	}
}

func TestMoneyUsesGroupingSeparators(t *testing.T) {
	d := newDemo(time.Now())
	if got := d.money(decimal.RequireFromString("12500.5")); got != "$12,500.50" {
		t.Fatalf("money=%q", got)
	}
}
