package main

import (
	"context"
	"flag"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/api-sage/ledger-engine/src/internal/adapter/repository/memory"
	"github.com/api-sage/ledger-engine/src/internal/domain"
	"github.com/api-sage/ledger-engine/src/internal/logger"
	"github.com/api-sage/ledger-engine/src/internal/usecase/services"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

type demo struct {
	p        *message.Printer
	now      time.Time
	accounts *services.AccountService
	ledger   *services.LedgerService
	interest *services.InterestService
	security *services.SecurityService
}

func main() {
	verbose := flag.Bool("verbose", false, "print structured service logs to stderr")
	flag.Parse()

	if *verbose {
		logger.SetOutput(os.Stderr)
	} else {
		logger.SetOutput(io.Discard)
	}

	if err := newDemo(time.Now().UTC()).run(context.Background()); err != nil {
		log.Fatalf("demo failed: %v", err)
	}
}

func newDemo(start time.Time) *demo {
	d := &demo{
		p:   message.NewPrinter(language.English),
		now: start,
	}
	clock := domain.ClockFunc(func() time.Time { return d.now })

	repo := memory.NewAccountRepository()
	d.accounts = services.NewAccountService(repo, clock, nil)
	d.ledger = services.NewLedgerService(clock)
	d.interest = services.NewInterestService(repo, clock)
	d.security = services.NewSecurityService(d.ledger, clock)
	return d
}

func (d *demo) advance(by time.Duration) {
	d.now = d.now.Add(by)
}

func (d *demo) money(amount decimal.Decimal) string {
	return d.p.Sprintf("$%.2f", amount.InexactFloat64())
}

func (d *demo) section(title string) {
	d.p.Printf("\n== %s ==\n", title)
}

func (d *demo) run(ctx context.Context) error {
	d.section("Open accounts")
	ada, err := d.accounts.Create(ctx, "Ada", "Lovelace", decimal.NewFromInt(1000))
	if err != nil {
		return err
	}
	grace, err := d.accounts.Create(ctx, "Grace", "Hopper", decimal.NewFromInt(300))
	if err != nil {
		return err
	}
	d.printAccount(ada)
	d.printAccount(grace)

	d.section("Deposit")
	if _, err := d.ledger.Deposit(ada, decimal.NewFromInt(12500)); err != nil {
		return err
	}
	d.printAccount(ada)

	d.section("Overdraft attempt")
	summary, err := d.ledger.Withdraw(grace, decimal.NewFromInt(2000))
	if err != nil {
		return err
	}
	d.p.Printf("%s balance after penalty: %s\n", summary.AccountNumber, d.money(summary.Balance))

	d.section("Transfer")
	fromSummary, toSummary, err := d.ledger.Transfer(ada, grace, decimal.NewFromInt(100))
	if err != nil {
		return err
	}
	d.p.Printf("%s -> %s: %s / %s\n", fromSummary.AccountNumber, toSummary.AccountNumber, d.money(fromSummary.Balance), d.money(toSummary.Balance))
	if _, _, err := d.ledger.Transfer(grace, ada, decimal.NewFromInt(10000)); err != nil {
		d.p.Printf("rejected: %v\n", err)
	}

	d.section("Interest")
	for _, account := range []*domain.Account{ada, grace} {
		result, err := d.interest.AccrueInterest(account)
		if err != nil {
			return err
		}
		if result.InterestApplied != nil {
			d.p.Printf("%s earned %s, balance %s\n", result.AccountNumber, d.money(*result.InterestApplied), d.money(result.Balance))
			continue
		}
		d.p.Printf("%s: %s\n", result.AccountNumber, result.Message)
	}

	d.section("Transaction history")
	today := d.now.Format("2006-01-02")
	txs, err := d.ledger.RetrieveInRange(ada, domain.TransactionFilter{StartDate: today, EndDate: today})
	if err != nil {
		return err
	}
	for _, tx := range txs {
		d.p.Printf("%-14s %12s  balance %s\n", tx.Type, d.money(tx.Amount), d.money(tx.NewBalance))
	}

	d.section("Freeze")
	if _, err := d.security.UpdateAccountStatus(grace, string(domain.StatusActionFreeze), "MGR-001"); err != nil {
		return err
	}
	if _, err := d.security.DepositSafe(grace, decimal.NewFromInt(50)); err != nil {
		d.p.Printf("rejected: %v\n", err)
	}
	if _, err := d.security.UpdateAccountStatus(grace, string(domain.StatusActionUnfreeze), ""); err != nil {
		return err
	}
	d.printAccount(grace)

	d.section("Daily withdrawal limit")
	for _, amount := range []int64{100, 150, 200, 100} {
		d.advance(time.Minute)
		summary, err := d.security.WithdrawWithDailyLimit(ada, decimal.NewFromInt(amount))
		if err != nil {
			d.p.Printf("rejected: %v\n", err)
			continue
		}
		d.p.Printf("withdrew %s, balance %s\n", d.money(decimal.NewFromInt(amount)), d.money(summary.Balance))
	}

	d.section("Passwords")
	for _, candidate := range []string{"short", "password123456", "Str0ng!Pass#2026"} {
		check := d.security.ValidatePassword(candidate)
		if check.Valid {
			d.p.Printf("%q is strong\n", candidate)
			continue
		}
		d.p.Printf("%q is weak: %s\n", candidate, strings.Join(check.Reasons, "; "))
	}
	if _, err := d.security.SetPassword(ada, "Str0ng!Pass#2026"); err != nil {
		return err
	}
	ok, err := d.security.VerifyPassword(ada, "Str0ng!Pass#2026")
	if err != nil {
		return err
	}
	d.p.Printf("password verified: %t\n", ok)

	d.section("Suspicious activity")
	report := d.security.CheckSuspiciousActivity(ada)
	d.p.Printf("suspicious: %t\n", report.IsSuspicious)
	for _, alert := range report.Alerts {
		d.p.Printf("- %s\n", alert)
	}

	d.section("Registry")
	accounts, err := d.accounts.List(ctx)
	if err != nil {
		return err
	}
	for _, account := range accounts {
		d.printAccount(account)
	}
	return nil
}

func (d *demo) printAccount(account *domain.Account) {
	snapshot := account.Snapshot()
	d.p.Printf("%s %s %s  %s  %s  (%d transactions)\n",
		snapshot.AccountNumber,
		snapshot.FirstName,
		snapshot.LastName,
		snapshot.Status,
		d.money(snapshot.Balance),
		len(snapshot.Transactions),
	)
}
