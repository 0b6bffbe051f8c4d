// Package coinage provides an embeddable ledger engine for a single
// capped-supply fungible asset.
//
// Coinage is designed as a library, not a service. Import it directly into
// your Go application for maximum performance and flexibility. It provides:
//
//   - Per-holder balances with implicit account lifecycle
//   - A fixed supply ceiling with admin-gated minting and holder burning
//   - Deny-list gating on both endpoints of every settlement
//   - An automatic basis-point fee split to a collector account
//   - An append-only event journal for every mutating operation
//   - Pluggable storage (memory, PostgreSQL, SQLite, MongoDB via Grove)
//   - Lifecycle plugins for metrics, audit trails, and custom fee strategies
//
// # Quick Start
//
// Create a ledger instance with your preferred store:
//
//	import (
//	    "github.com/xraph/coinage"
//	    "github.com/xraph/coinage/store/memory"
//	)
//
//	l := coinage.New(memory.New())
//	if err := l.Start(ctx); err != nil {
//	    log.Fatal(err)
//	}
//	defer l.Stop()
//
//	admin := id.NewAccountID()
//	treasury := id.NewAccountID()
//
//	_, err := l.Initialize(ctx, coinage.Genesis{
//	    Name:          "Acme Credits",
//	    Symbol:        "ACR",
//	    Ceiling:       1_000_000,
//	    InitialSupply: 100_000,
//	    Recipient:     treasury,
//	    Admin:         admin,
//	})
//
// # Settlement
//
// Transfers deduct the full amount from the sender and split it between the
// recipient and the fee collector. The split is exact: principal plus fee
// always equals the deduction, with the fee rounded down.
//
//	receipt, err := l.Transfer(ctx, alice, bob, 200)
//	// receipt.Gross == 200, receipt.Fee + receipt.Net == 200
//
// Every settlement is atomic. A rejected transfer — deny-listed endpoint,
// insufficient balance, overflow — leaves no partial state behind.
//
// # Supply
//
// Outstanding supply never exceeds the ceiling fixed at initialization.
// Burning returns headroom to the mintable pool:
//
//	l.Mint(ctx, admin, alice, 500)   // admin only
//	l.Burn(ctx, alice, 200)          // holder burns their own balance
//
// All amounts are unsigned 64-bit integers in the asset's smallest unit;
// arithmetic is overflow-checked, never wrapping.
//
// # TypeID
//
// All entities use TypeID for globally unique, type-safe identifiers:
//
//	acct_01h2xcejqtf2nbrexx3vqjhp41   // Holder account ID
//	asset_01h2xcejqtf2nbrexx3vqjhp41  // Asset ID
//	evt_01h455vb4pex5vsknk084sn02q    // Event ID
//
// TypeIDs are K-sortable, making them ideal for database indexes and
// providing natural time-ordering of entities.
package coinage
