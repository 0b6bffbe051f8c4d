package coinage_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	coinage "github.com/xraph/coinage"
	"github.com/xraph/coinage/account"
	"github.com/xraph/coinage/denylist"
	"github.com/xraph/coinage/event"
	"github.com/xraph/coinage/fee"
	"github.com/xraph/coinage/id"
	"github.com/xraph/coinage/store/memory"
	"github.com/xraph/coinage/types"
)

// fixture holds a started ledger with a funded treasury.
type fixture struct {
	ledger   *coinage.Ledger
	admin    id.AccountID
	treasury id.AccountID
}

func newFixture(t *testing.T, ceiling, initial types.Amount, opts ...coinage.Option) *fixture {
	t.Helper()
	ctx := context.Background()

	f := &fixture{
		admin:    id.NewAccountID(),
		treasury: id.NewAccountID(),
	}
	f.ledger = coinage.New(memory.New(), opts...)
	if err := f.ledger.Start(ctx); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = f.ledger.Stop() })

	_, err := f.ledger.Initialize(ctx, coinage.Genesis{
		Name:          "Test Coin",
		Symbol:        "TST",
		Ceiling:       ceiling,
		InitialSupply: initial,
		Recipient:     f.treasury,
		Admin:         f.admin,
	})
	if err != nil {
		t.Fatal(err)
	}
	return f
}

// fund moves amount from the treasury to a fresh holder.
func (f *fixture) fund(t *testing.T, amount types.Amount) id.AccountID {
	t.Helper()
	holder := id.NewAccountID()
	if _, err := f.ledger.Transfer(context.Background(), f.treasury, holder, amount); err != nil {
		t.Fatal(err)
	}
	return holder
}

func (f *fixture) balance(t *testing.T, holder id.AccountID) types.Amount {
	t.Helper()
	b, err := f.ledger.BalanceOf(context.Background(), holder)
	if err != nil {
		t.Fatal(err)
	}
	return b
}

// enableFee configures an active fee policy and returns the collector.
func (f *fixture) enableFee(t *testing.T, rate types.BasisPoints) id.AccountID {
	t.Helper()
	ctx := context.Background()
	collector := id.NewAccountID()
	if err := f.ledger.SetFeeCollector(ctx, f.admin, collector); err != nil {
		t.Fatal(err)
	}
	if err := f.ledger.SetFeeRate(ctx, f.admin, rate); err != nil {
		t.Fatal(err)
	}
	if err := f.ledger.SetFeeEnabled(ctx, f.admin, true); err != nil {
		t.Fatal(err)
	}
	return collector
}

// ──────────────────────────────────────────────────
// Initialization
// ──────────────────────────────────────────────────

func TestInitialize(t *testing.T) {
	ctx := context.Background()

	t.Run("OnceOnly", func(t *testing.T) {
		f := newFixture(t, 1000, 100)

		_, err := f.ledger.Initialize(ctx, coinage.Genesis{
			Ceiling:   500,
			Recipient: f.treasury,
			Admin:     f.admin,
		})
		if !errors.Is(err, coinage.ErrAlreadyInitialized) {
			t.Fatalf("second initialize: got %v, want ErrAlreadyInitialized", err)
		}
	})

	t.Run("SeedsState", func(t *testing.T) {
		f := newFixture(t, 1000, 100)

		if got := f.balance(t, f.treasury); got != 100 {
			t.Fatalf("treasury = %d, want 100", got)
		}
		issued, err := f.ledger.TotalIssued(ctx)
		if err != nil {
			t.Fatal(err)
		}
		if issued != 100 {
			t.Fatalf("issued = %d, want 100", issued)
		}
		remaining, err := f.ledger.RemainingMintable(ctx)
		if err != nil {
			t.Fatal(err)
		}
		if remaining != 900 {
			t.Fatalf("remaining = %d, want 900", remaining)
		}
		admin, err := f.ledger.Admin(ctx)
		if err != nil {
			t.Fatal(err)
		}
		if !admin.Equal(f.admin) {
			t.Fatal("admin mismatch")
		}
		a, err := f.ledger.Asset(ctx)
		if err != nil {
			t.Fatal(err)
		}
		if a.Symbol != "TST" || a.Ceiling != 1000 {
			t.Fatalf("asset = %+v", a)
		}
	})

	t.Run("InitialSupplyAboveCeiling", func(t *testing.T) {
		l := coinage.New(memory.New())
		_, err := l.Initialize(ctx, coinage.Genesis{
			Ceiling:       100,
			InitialSupply: 101,
			Recipient:     id.NewAccountID(),
			Admin:         id.NewAccountID(),
		})
		if !errors.Is(err, coinage.ErrCeilingExceeded) {
			t.Fatalf("got %v, want ErrCeilingExceeded", err)
		}
	})

	t.Run("NilAdmin", func(t *testing.T) {
		l := coinage.New(memory.New())
		_, err := l.Initialize(ctx, coinage.Genesis{
			Ceiling:   100,
			Recipient: id.NewAccountID(),
		})
		if !errors.Is(err, coinage.ErrInvalidIdentity) {
			t.Fatalf("got %v, want ErrInvalidIdentity", err)
		}
	})

	t.Run("OperationsBeforeInitialize", func(t *testing.T) {
		l := coinage.New(memory.New())
		_, err := l.Transfer(ctx, id.NewAccountID(), id.NewAccountID(), 10)
		if !errors.Is(err, coinage.ErrNotInitialized) {
			t.Fatalf("transfer: got %v, want ErrNotInitialized", err)
		}
		_, err = l.TotalIssued(ctx)
		if !errors.Is(err, coinage.ErrNotInitialized) {
			t.Fatalf("total issued: got %v, want ErrNotInitialized", err)
		}
	})
}

// ──────────────────────────────────────────────────
// Transfers
// ──────────────────────────────────────────────────

func TestTransfer(t *testing.T) {
	ctx := context.Background()

	t.Run("MovesBalance", func(t *testing.T) {
		f := newFixture(t, 1000, 500)
		bob := id.NewAccountID()

		receipt, err := f.ledger.Transfer(ctx, f.treasury, bob, 200)
		if err != nil {
			t.Fatal(err)
		}
		if receipt.Gross != 200 || receipt.Fee != 0 || receipt.Net != 200 {
			t.Fatalf("receipt = %+v", receipt)
		}
		if got := f.balance(t, f.treasury); got != 300 {
			t.Fatalf("treasury = %d, want 300", got)
		}
		if got := f.balance(t, bob); got != 200 {
			t.Fatalf("bob = %d, want 200", got)
		}
	})

	t.Run("InsufficientBalance", func(t *testing.T) {
		f := newFixture(t, 1000, 100)
		alice := f.fund(t, 50)
		bob := id.NewAccountID()

		_, err := f.ledger.Transfer(ctx, alice, bob, 51)
		if !errors.Is(err, coinage.ErrInsufficientBalance) {
			t.Fatalf("got %v, want ErrInsufficientBalance", err)
		}

		// No partial state: sender untouched, recipient still unknown.
		if got := f.balance(t, alice); got != 50 {
			t.Fatalf("alice = %d, want 50", got)
		}
		if got := f.balance(t, bob); got != 0 {
			t.Fatalf("bob = %d, want 0", got)
		}
	})

	t.Run("NilEndpoints", func(t *testing.T) {
		f := newFixture(t, 1000, 100)

		if _, err := f.ledger.Transfer(ctx, id.Nil, f.treasury, 10); !errors.Is(err, coinage.ErrInvalidIdentity) {
			t.Fatalf("nil sender: got %v", err)
		}
		if _, err := f.ledger.Transfer(ctx, f.treasury, id.Nil, 10); !errors.Is(err, coinage.ErrInvalidIdentity) {
			t.Fatalf("nil recipient: got %v", err)
		}
	})

	t.Run("ZeroAmount", func(t *testing.T) {
		f := newFixture(t, 1000, 100)
		bob := id.NewAccountID()

		receipt, err := f.ledger.Transfer(ctx, f.treasury, bob, 0)
		if err != nil {
			t.Fatal(err)
		}
		if receipt.Gross != 0 || receipt.Net != 0 {
			t.Fatalf("receipt = %+v", receipt)
		}
		// A zero credit does not materialize a balance row.
		if got := f.balance(t, bob); got != 0 {
			t.Fatalf("bob = %d, want 0", got)
		}
	})

	t.Run("ConservesSupply", func(t *testing.T) {
		f := newFixture(t, 10_000, 5_000)
		f.enableFee(t, 250)

		alice := f.fund(t, 1_000)
		bob := f.fund(t, 500)

		for _, amt := range []types.Amount{1, 99, 250, 333} {
			if _, err := f.ledger.Transfer(ctx, alice, bob, amt); err != nil {
				t.Fatal(err)
			}
		}

		balances, err := f.ledger.Balances(ctx, account.ListOpts{})
		if err != nil {
			t.Fatal(err)
		}
		var sum types.Amount
		for _, b := range balances {
			s, ok := sum.Add(b.Amount)
			if !ok {
				t.Fatal("sum overflow")
			}
			sum = s
		}
		issued, err := f.ledger.TotalIssued(ctx)
		if err != nil {
			t.Fatal(err)
		}
		if sum != issued {
			t.Fatalf("balance sum %d != issued %d", sum, issued)
		}
	})
}

// ──────────────────────────────────────────────────
// Fee split
// ──────────────────────────────────────────────────

func TestFeeSplit(t *testing.T) {
	ctx := context.Background()

	t.Run("ExactSplit", func(t *testing.T) {
		f := newFixture(t, 10_000, 1_000)
		alice := f.fund(t, 200)
		collector := f.enableFee(t, 500) // 5%
		bob := id.NewAccountID()

		receipt, err := f.ledger.Transfer(ctx, alice, bob, 200)
		if err != nil {
			t.Fatal(err)
		}
		if receipt.Gross != 200 || receipt.Fee != 10 || receipt.Net != 190 {
			t.Fatalf("receipt = %+v, want gross 200 fee 10 net 190", receipt)
		}
		if got := f.balance(t, alice); got != 0 {
			t.Fatalf("alice = %d, want 0", got)
		}
		if got := f.balance(t, bob); got != 190 {
			t.Fatalf("bob = %d, want 190", got)
		}
		if got := f.balance(t, collector); got != 10 {
			t.Fatalf("collector = %d, want 10", got)
		}
	})

	t.Run("TruncatesTowardZero", func(t *testing.T) {
		f := newFixture(t, 10_000, 1_000)
		alice := f.fund(t, 199)
		collector := f.enableFee(t, 500)
		bob := id.NewAccountID()

		receipt, err := f.ledger.Transfer(ctx, alice, bob, 199)
		if err != nil {
			t.Fatal(err)
		}
		// floor(199 * 500 / 10000) = 9, principal 190, total still 199.
		if receipt.Fee != 9 || receipt.Net != 190 {
			t.Fatalf("receipt = %+v, want fee 9 net 190", receipt)
		}
		if f.balance(t, bob)+f.balance(t, collector) != 199 {
			t.Fatal("fee split lost units")
		}
	})

	t.Run("CollectorEndpointsUntaxed", func(t *testing.T) {
		f := newFixture(t, 10_000, 1_000)
		alice := f.fund(t, 100)
		collector := f.enableFee(t, 500)

		// Paying the collector directly is not taxed.
		receipt, err := f.ledger.Transfer(ctx, alice, collector, 100)
		if err != nil {
			t.Fatal(err)
		}
		if receipt.Fee != 0 || receipt.Net != 100 {
			t.Fatalf("to collector: receipt = %+v", receipt)
		}

		// Collector payouts are not taxed either.
		bob := id.NewAccountID()
		receipt, err = f.ledger.Transfer(ctx, collector, bob, 40)
		if err != nil {
			t.Fatal(err)
		}
		if receipt.Fee != 0 || receipt.Net != 40 {
			t.Fatalf("from collector: receipt = %+v", receipt)
		}
	})

	t.Run("DisabledPolicyChargesNothing", func(t *testing.T) {
		f := newFixture(t, 10_000, 1_000)
		collector := f.enableFee(t, 500)
		if err := f.ledger.SetFeeEnabled(ctx, f.admin, false); err != nil {
			t.Fatal(err)
		}

		alice := f.fund(t, 100)
		bob := id.NewAccountID()

		receipt, err := f.ledger.Transfer(ctx, alice, bob, 100)
		if err != nil {
			t.Fatal(err)
		}
		if receipt.Fee != 0 {
			t.Fatalf("fee = %d, want 0", receipt.Fee)
		}
		if got := f.balance(t, collector); got != 0 {
			t.Fatalf("collector = %d, want 0", got)
		}
	})

	t.Run("SelfTransferPaysOnlyFee", func(t *testing.T) {
		f := newFixture(t, 10_000, 1_000)
		alice := f.fund(t, 200)
		collector := f.enableFee(t, 500)

		receipt, err := f.ledger.Transfer(ctx, alice, alice, 100)
		if err != nil {
			t.Fatal(err)
		}
		if receipt.Fee != 5 || receipt.Net != 95 {
			t.Fatalf("receipt = %+v", receipt)
		}
		if got := f.balance(t, alice); got != 195 {
			t.Fatalf("alice = %d, want 195", got)
		}
		if got := f.balance(t, collector); got != 5 {
			t.Fatalf("collector = %d, want 5", got)
		}
	})

	t.Run("ComputeFeePreview", func(t *testing.T) {
		f := newFixture(t, 10_000, 1_000)
		f.enableFee(t, 500)

		got, err := f.ledger.ComputeFee(ctx, 200)
		if err != nil {
			t.Fatal(err)
		}
		if got != 10 {
			t.Fatalf("preview = %d, want 10", got)
		}
	})
}

// ──────────────────────────────────────────────────
// Fee policy administration
// ──────────────────────────────────────────────────

func TestFeePolicyAdmin(t *testing.T) {
	ctx := context.Background()

	t.Run("RateAboveMaximum", func(t *testing.T) {
		f := newFixture(t, 1000, 100)
		f.enableFee(t, 500)

		err := f.ledger.SetFeeRate(ctx, f.admin, fee.MaxRateBps+1)
		if !errors.Is(err, coinage.ErrRateTooHigh) {
			t.Fatalf("got %v, want ErrRateTooHigh", err)
		}

		// Rejected update leaves the policy untouched.
		policy, err := f.ledger.FeePolicy(ctx)
		if err != nil {
			t.Fatal(err)
		}
		if policy.Rate != 500 {
			t.Fatalf("rate = %d, want 500", policy.Rate)
		}
	})

	t.Run("MaxRateAccepted", func(t *testing.T) {
		f := newFixture(t, 1000, 100)
		if err := f.ledger.SetFeeRate(ctx, f.admin, fee.MaxRateBps); err != nil {
			t.Fatal(err)
		}
	})

	t.Run("NilCollectorRejected", func(t *testing.T) {
		f := newFixture(t, 1000, 100)
		err := f.ledger.SetFeeCollector(ctx, f.admin, id.Nil)
		if !errors.Is(err, coinage.ErrInvalidIdentity) {
			t.Fatalf("got %v, want ErrInvalidIdentity", err)
		}
	})

	t.Run("NonAdminRejected", func(t *testing.T) {
		f := newFixture(t, 1000, 100)
		stranger := id.NewAccountID()

		if err := f.ledger.SetFeeRate(ctx, stranger, 100); !errors.Is(err, coinage.ErrNotAuthorized) {
			t.Fatalf("set rate: got %v", err)
		}
		if err := f.ledger.SetFeeEnabled(ctx, stranger, true); !errors.Is(err, coinage.ErrNotAuthorized) {
			t.Fatalf("toggle: got %v", err)
		}
	})
}

// ──────────────────────────────────────────────────
// Deny-list
// ──────────────────────────────────────────────────

func TestDenyList(t *testing.T) {
	ctx := context.Background()

	t.Run("BlocksSending", func(t *testing.T) {
		f := newFixture(t, 1000, 500)
		alice := f.fund(t, 100)
		bob := id.NewAccountID()

		if err := f.ledger.AddToDenyList(ctx, f.admin, alice, "fraud"); err != nil {
			t.Fatal(err)
		}

		_, err := f.ledger.Transfer(ctx, alice, bob, 10)
		if !errors.Is(err, coinage.ErrSenderDenied) {
			t.Fatalf("got %v, want ErrSenderDenied", err)
		}

		// Balance is frozen, not seized.
		if got := f.balance(t, alice); got != 100 {
			t.Fatalf("alice = %d, want 100", got)
		}

		// Removal restores movement.
		if err := f.ledger.RemoveFromDenyList(ctx, f.admin, alice); err != nil {
			t.Fatal(err)
		}
		if _, err := f.ledger.Transfer(ctx, alice, bob, 10); err != nil {
			t.Fatal(err)
		}
	})

	t.Run("BlocksReceiving", func(t *testing.T) {
		f := newFixture(t, 1000, 500)
		bob := id.NewAccountID()

		if err := f.ledger.AddToDenyList(ctx, f.admin, bob, ""); err != nil {
			t.Fatal(err)
		}

		_, err := f.ledger.Transfer(ctx, f.treasury, bob, 10)
		if !errors.Is(err, coinage.ErrRecipientDenied) {
			t.Fatalf("transfer: got %v, want ErrRecipientDenied", err)
		}

		_, err = f.ledger.Mint(ctx, f.admin, bob, 10)
		if !errors.Is(err, coinage.ErrRecipientDenied) {
			t.Fatalf("mint: got %v, want ErrRecipientDenied", err)
		}
	})

	t.Run("BlocksBurning", func(t *testing.T) {
		f := newFixture(t, 1000, 500)
		alice := f.fund(t, 100)

		if err := f.ledger.AddToDenyList(ctx, f.admin, alice, ""); err != nil {
			t.Fatal(err)
		}

		_, err := f.ledger.Burn(ctx, alice, 10)
		if !errors.Is(err, coinage.ErrSenderDenied) {
			t.Fatalf("got %v, want ErrSenderDenied", err)
		}
	})

	t.Run("NonIdempotent", func(t *testing.T) {
		f := newFixture(t, 1000, 100)
		alice := id.NewAccountID()

		if err := f.ledger.AddToDenyList(ctx, f.admin, alice, ""); err != nil {
			t.Fatal(err)
		}
		if err := f.ledger.AddToDenyList(ctx, f.admin, alice, ""); !errors.Is(err, coinage.ErrAlreadyDenied) {
			t.Fatalf("double add: got %v", err)
		}
		denied, err := f.ledger.IsDenied(ctx, alice)
		if err != nil {
			t.Fatal(err)
		}
		if !denied {
			t.Fatal("expected alice denied")
		}
		entries, err := f.ledger.DenyList(ctx, denylist.ListOpts{})
		if err != nil {
			t.Fatal(err)
		}
		if len(entries) != 1 || !entries[0].Holder.Equal(alice) {
			t.Fatalf("deny-list = %+v", entries)
		}
		if err := f.ledger.RemoveFromDenyList(ctx, f.admin, alice); err != nil {
			t.Fatal(err)
		}
		if err := f.ledger.RemoveFromDenyList(ctx, f.admin, alice); !errors.Is(err, coinage.ErrNotDenied) {
			t.Fatalf("double remove: got %v", err)
		}
		if denied, err = f.ledger.IsDenied(ctx, alice); err != nil || denied {
			t.Fatalf("after removal: denied=%v err=%v", denied, err)
		}
	})

	t.Run("AdminGated", func(t *testing.T) {
		f := newFixture(t, 1000, 100)
		stranger := id.NewAccountID()

		err := f.ledger.AddToDenyList(ctx, stranger, id.NewAccountID(), "")
		if !errors.Is(err, coinage.ErrNotAuthorized) {
			t.Fatalf("got %v, want ErrNotAuthorized", err)
		}
	})
}

// ──────────────────────────────────────────────────
// Supply
// ──────────────────────────────────────────────────

func TestMint(t *testing.T) {
	ctx := context.Background()

	t.Run("UpToCeiling", func(t *testing.T) {
		f := newFixture(t, 1000, 100)
		alice := id.NewAccountID()

		if _, err := f.ledger.Mint(ctx, f.admin, alice, 900); err != nil {
			t.Fatal(err)
		}

		remaining, err := f.ledger.RemainingMintable(ctx)
		if err != nil {
			t.Fatal(err)
		}
		if remaining != 0 {
			t.Fatalf("remaining = %d, want 0", remaining)
		}

		_, err = f.ledger.Mint(ctx, f.admin, alice, 1)
		if !errors.Is(err, coinage.ErrCeilingExceeded) {
			t.Fatalf("got %v, want ErrCeilingExceeded", err)
		}

		// Rejected mint leaves supply untouched.
		issued, err := f.ledger.TotalIssued(ctx)
		if err != nil {
			t.Fatal(err)
		}
		if issued != 1000 {
			t.Fatalf("issued = %d, want 1000", issued)
		}
	})

	t.Run("AdminGated", func(t *testing.T) {
		f := newFixture(t, 1000, 100)
		stranger := id.NewAccountID()

		_, err := f.ledger.Mint(ctx, stranger, stranger, 10)
		if !errors.Is(err, coinage.ErrNotAuthorized) {
			t.Fatalf("got %v, want ErrNotAuthorized", err)
		}
	})
}

func TestBurn(t *testing.T) {
	ctx := context.Background()

	t.Run("FreesHeadroom", func(t *testing.T) {
		f := newFixture(t, 1000, 1000)

		if _, err := f.ledger.Burn(ctx, f.treasury, 400); err != nil {
			t.Fatal(err)
		}

		if got := f.balance(t, f.treasury); got != 600 {
			t.Fatalf("treasury = %d, want 600", got)
		}
		issued, err := f.ledger.TotalIssued(ctx)
		if err != nil {
			t.Fatal(err)
		}
		if issued != 600 {
			t.Fatalf("issued = %d, want 600", issued)
		}

		// Burned headroom is mintable again.
		if _, err := f.ledger.Mint(ctx, f.admin, f.treasury, 400); err != nil {
			t.Fatal(err)
		}
	})

	t.Run("InsufficientBalance", func(t *testing.T) {
		f := newFixture(t, 1000, 100)
		alice := f.fund(t, 50)

		_, err := f.ledger.Burn(ctx, alice, 51)
		if !errors.Is(err, coinage.ErrInsufficientBalance) {
			t.Fatalf("got %v, want ErrInsufficientBalance", err)
		}
	})
}

// ──────────────────────────────────────────────────
// Administrator role
// ──────────────────────────────────────────────────

func TestTransferAdmin(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 1000, 100)

	next := id.NewAccountID()
	if err := f.ledger.TransferAdmin(ctx, f.admin, next); err != nil {
		t.Fatal(err)
	}

	// The old admin loses all rights immediately.
	if _, err := f.ledger.Mint(ctx, f.admin, f.treasury, 1); !errors.Is(err, coinage.ErrNotAuthorized) {
		t.Fatalf("old admin mint: got %v", err)
	}
	if err := f.ledger.TransferAdmin(ctx, f.admin, f.admin); !errors.Is(err, coinage.ErrNotAuthorized) {
		t.Fatalf("old admin reclaim: got %v", err)
	}

	// The new admin holds them.
	if _, err := f.ledger.Mint(ctx, next, f.treasury, 1); err != nil {
		t.Fatal(err)
	}
}

// ──────────────────────────────────────────────────
// Event journal
// ──────────────────────────────────────────────────

func TestEventJournal(t *testing.T) {
	ctx := context.Background()
	fixed := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	f := newFixture(t, 10_000, 1_000, coinage.WithClock(func() time.Time { return fixed }))
	alice := f.fund(t, 200)
	f.enableFee(t, 500)
	bob := id.NewAccountID()

	receipt, err := f.ledger.Transfer(ctx, alice, bob, 200)
	if err != nil {
		t.Fatal(err)
	}

	// A fee-split transfer journals two records, fee leg first.
	if len(receipt.Events) != 2 {
		t.Fatalf("expected 2 receipt events, got %d", len(receipt.Events))
	}
	if receipt.Events[0].Kind != event.KindFeeCollected || receipt.Events[0].Amount != 10 {
		t.Fatalf("fee record = %+v", receipt.Events[0])
	}
	if receipt.Events[1].Kind != event.KindTransfer || receipt.Events[1].Amount != 190 {
		t.Fatalf("transfer record = %+v", receipt.Events[1])
	}
	if !receipt.Events[0].At.Equal(fixed) {
		t.Fatalf("record At = %v, want injected clock time", receipt.Events[0].At)
	}

	fees, err := f.ledger.Events(ctx, event.QueryOpts{Kind: event.KindFeeCollected})
	if err != nil {
		t.Fatal(err)
	}
	if len(fees) != 1 || !fees[0].From.Matches(alice) {
		t.Fatalf("fee query = %+v", fees)
	}

	bobs, err := f.ledger.Events(ctx, event.QueryOpts{Holder: bob})
	if err != nil {
		t.Fatal(err)
	}
	if len(bobs) != 1 || bobs[0].Kind != event.KindTransfer {
		t.Fatalf("holder query = %+v", bobs)
	}

	// Rejected operations journal nothing.
	before, err := f.ledger.Events(ctx, event.QueryOpts{})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.ledger.Transfer(ctx, bob, alice, 1_000_000); !errors.Is(err, coinage.ErrInsufficientBalance) {
		t.Fatal(err)
	}
	after, err := f.ledger.Events(ctx, event.QueryOpts{})
	if err != nil {
		t.Fatal(err)
	}
	if len(after) != len(before) {
		t.Fatalf("rejected transfer journaled: %d -> %d records", len(before), len(after))
	}
}

func TestJournalParties(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 1000, 100)

	mint, err := f.ledger.Mint(ctx, f.admin, f.treasury, 50)
	if err != nil {
		t.Fatal(err)
	}
	if !mint.Events[0].From.IsMint() || !mint.Events[0].To.Matches(f.treasury) {
		t.Fatalf("mint record endpoints = %v -> %v", mint.Events[0].From, mint.Events[0].To)
	}

	burn, err := f.ledger.Burn(ctx, f.treasury, 25)
	if err != nil {
		t.Fatal(err)
	}
	if !burn.Events[0].From.Matches(f.treasury) || !burn.Events[0].To.IsBurn() {
		t.Fatalf("burn record endpoints = %v -> %v", burn.Events[0].From, burn.Events[0].To)
	}

	// Administrative records carry no settlement endpoints.
	if err := f.ledger.SetFeeEnabled(ctx, f.admin, true); err != nil {
		t.Fatal(err)
	}
	recs, err := f.ledger.Events(ctx, event.QueryOpts{Kind: event.KindFeeToggled})
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 1 || recs[0].From.IsHolder() || recs[0].To.IsHolder() {
		t.Fatalf("policy record = %+v", recs)
	}

	// Genesis issuance is recorded from the mint source.
	genesis, err := f.ledger.Events(ctx, event.QueryOpts{Kind: event.KindInitialized})
	if err != nil {
		t.Fatal(err)
	}
	if len(genesis) != 1 || !genesis[0].From.IsMint() {
		t.Fatalf("genesis record = %+v", genesis)
	}
}

// TestTransferOverflowGuard feeds the engine a store snapshot whose
// balances no longer sum to issued supply. A credit that would wrap the
// recipient's balance must reject, not truncate.
func TestTransferOverflowGuard(t *testing.T) {
	ctx := context.Background()
	st := memory.New()
	l := coinage.New(st)

	admin := id.NewAccountID()
	alice := id.NewAccountID()
	bob := id.NewAccountID()

	if _, err := l.Initialize(ctx, coinage.Genesis{
		Ceiling:       types.MaxAmount,
		InitialSupply: types.MaxAmount,
		Recipient:     alice,
		Admin:         admin,
	}); err != nil {
		t.Fatal(err)
	}

	// Corrupt the snapshot behind the engine's back: bob also holds the
	// maximum, so any credit to him overflows.
	if err := st.ApplySettlement(ctx, []account.BalanceUpdate{{Holder: bob, Amount: types.MaxAmount}}); err != nil {
		t.Fatal(err)
	}

	_, err := l.Transfer(ctx, alice, bob, 1)
	if !errors.Is(err, coinage.ErrAmountOverflow) {
		t.Fatalf("got %v, want ErrAmountOverflow", err)
	}

	// The rejected settlement touched nothing.
	got, err := l.BalanceOf(ctx, alice)
	if err != nil {
		t.Fatal(err)
	}
	if got != types.MaxAmount {
		t.Fatalf("alice = %d, want untouched balance", got)
	}
}

// ──────────────────────────────────────────────────
// Plugins
// ──────────────────────────────────────────────────

// recordingPlugin captures hook invocations for assertions.
type recordingPlugin struct {
	mu        sync.Mutex
	settled   []*event.Record
	fees      []*event.Record
	rejected  []error
	denyAdds  []id.AccountID
	policyUps int
}

func (p *recordingPlugin) Name() string { return "recording" }

func (p *recordingPlugin) OnTransferred(_ context.Context, rec *event.Record) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.settled = append(p.settled, rec)
	return nil
}

func (p *recordingPlugin) OnFeeCollected(_ context.Context, rec *event.Record) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.fees = append(p.fees, rec)
	return nil
}

func (p *recordingPlugin) OnTransferRejected(_ context.Context, _, _ account.Party, _ types.Amount, cause error) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.rejected = append(p.rejected, cause)
	return nil
}

func (p *recordingPlugin) OnDenyListAdded(_ context.Context, holder id.AccountID, _ string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.denyAdds = append(p.denyAdds, holder)
	return nil
}

func (p *recordingPlugin) OnPolicyUpdated(_ context.Context, _, _ *fee.Policy) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.policyUps++
	return nil
}

func TestPluginHooks(t *testing.T) {
	ctx := context.Background()
	rec := &recordingPlugin{}

	f := newFixture(t, 10_000, 1_000, coinage.WithPlugin(rec))
	alice := f.fund(t, 200)
	f.enableFee(t, 500)
	bob := id.NewAccountID()

	if _, err := f.ledger.Transfer(ctx, alice, bob, 200); err != nil {
		t.Fatal(err)
	}
	if _, err := f.ledger.Transfer(ctx, bob, alice, 1_000_000); !errors.Is(err, coinage.ErrInsufficientBalance) {
		t.Fatal(err)
	}
	if err := f.ledger.AddToDenyList(ctx, f.admin, bob, "test"); err != nil {
		t.Fatal(err)
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()

	// fund() plus the taxed transfer.
	if len(rec.settled) != 2 {
		t.Fatalf("settled hooks = %d, want 2", len(rec.settled))
	}
	if len(rec.fees) != 1 || rec.fees[0].Amount != 10 {
		t.Fatalf("fee hooks = %+v", rec.fees)
	}
	if len(rec.rejected) != 1 || !errors.Is(rec.rejected[0], coinage.ErrInsufficientBalance) {
		t.Fatalf("rejected hooks = %+v", rec.rejected)
	}
	if len(rec.denyAdds) != 1 || !rec.denyAdds[0].Equal(bob) {
		t.Fatalf("deny hooks = %+v", rec.denyAdds)
	}
	// enableFee performs three policy mutations.
	if rec.policyUps != 3 {
		t.Fatalf("policy hooks = %d, want 3", rec.policyUps)
	}
}

// flatFee charges a constant fee regardless of amount.
type flatFee struct {
	amount types.Amount
}

func (f *flatFee) Name() string         { return "flat-fee" }
func (f *flatFee) StrategyName() string { return "flat" }
func (f *flatFee) ComputeFee(amount types.Amount, _ *fee.Policy) types.Amount {
	return f.amount.Min(amount)
}

func TestFeeStrategyPlugin(t *testing.T) {
	ctx := context.Background()

	f := newFixture(t, 10_000, 1_000,
		coinage.WithPlugin(&flatFee{amount: 7}),
		coinage.WithFeeStrategy("flat"),
	)
	alice := f.fund(t, 200)
	collector := f.enableFee(t, 500)
	bob := id.NewAccountID()

	receipt, err := f.ledger.Transfer(ctx, alice, bob, 200)
	if err != nil {
		t.Fatal(err)
	}
	if receipt.Fee != 7 || receipt.Net != 193 {
		t.Fatalf("receipt = %+v, want flat fee 7", receipt)
	}
	if got := f.balance(t, collector); got != 7 {
		t.Fatalf("collector = %d, want 7", got)
	}
}
