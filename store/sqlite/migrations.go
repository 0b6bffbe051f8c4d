package sqlite

import (
	"context"

	"github.com/xraph/grove/migrate"
)

// Migrations is the grove migration group for the Coinage store (SQLite).
var Migrations = migrate.NewGroup("coinage")

func init() {
	Migrations.MustRegister(
		&migrate.Migration{
			Name:    "create_coinage_asset",
			Version: "20250101000001",
			Up: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `
CREATE TABLE IF NOT EXISTS coinage_asset (
    slot       TEXT PRIMARY KEY,
    id         TEXT NOT NULL,
    name       TEXT NOT NULL DEFAULT '',
    symbol     TEXT NOT NULL DEFAULT '',
    decimals   INTEGER NOT NULL DEFAULT 0,
    ceiling    TEXT NOT NULL DEFAULT '0',
    issued     TEXT NOT NULL DEFAULT '0',
    admin_id   TEXT NOT NULL DEFAULT '',
    created_at TEXT NOT NULL DEFAULT (datetime('now')),
    updated_at TEXT NOT NULL DEFAULT (datetime('now'))
);
`)
				return err
			},
			Down: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `DROP TABLE IF EXISTS coinage_asset`)
				return err
			},
		},
		&migrate.Migration{
			Name:    "create_coinage_balances",
			Version: "20250101000002",
			Up: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `
CREATE TABLE IF NOT EXISTS coinage_balances (
    holder     TEXT PRIMARY KEY,
    amount     TEXT NOT NULL DEFAULT '0',
    created_at TEXT NOT NULL DEFAULT (datetime('now')),
    updated_at TEXT NOT NULL DEFAULT (datetime('now'))
);
`)
				return err
			},
			Down: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `DROP TABLE IF EXISTS coinage_balances`)
				return err
			},
		},
		&migrate.Migration{
			Name:    "create_coinage_denylist",
			Version: "20250101000003",
			Up: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `
CREATE TABLE IF NOT EXISTS coinage_denylist (
    holder     TEXT PRIMARY KEY,
    reason     TEXT NOT NULL DEFAULT '',
    created_at TEXT NOT NULL DEFAULT (datetime('now')),
    updated_at TEXT NOT NULL DEFAULT (datetime('now'))
);
`)
				return err
			},
			Down: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `DROP TABLE IF EXISTS coinage_denylist`)
				return err
			},
		},
		&migrate.Migration{
			Name:    "create_coinage_fee_policy",
			Version: "20250101000004",
			Up: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `
CREATE TABLE IF NOT EXISTS coinage_fee_policy (
    slot       TEXT PRIMARY KEY,
    rate_bps   INTEGER NOT NULL DEFAULT 0,
    collector  TEXT NOT NULL DEFAULT '',
    enabled    INTEGER NOT NULL DEFAULT 0,
    created_at TEXT NOT NULL DEFAULT (datetime('now')),
    updated_at TEXT NOT NULL DEFAULT (datetime('now'))
);
`)
				return err
			},
			Down: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `DROP TABLE IF EXISTS coinage_fee_policy`)
				return err
			},
		},
		&migrate.Migration{
			Name:    "create_coinage_events",
			Version: "20250101000005",
			Up: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `
CREATE TABLE IF NOT EXISTS coinage_events (
    id      TEXT PRIMARY KEY,
    kind    TEXT NOT NULL,
    from_id TEXT NOT NULL DEFAULT '',
    to_id   TEXT NOT NULL DEFAULT '',
    amount  TEXT NOT NULL DEFAULT '0',
    at      TEXT NOT NULL,
    meta    TEXT NOT NULL DEFAULT '{}'
);

CREATE INDEX IF NOT EXISTS idx_coinage_events_kind ON coinage_events (kind);
CREATE INDEX IF NOT EXISTS idx_coinage_events_from ON coinage_events (from_id);
CREATE INDEX IF NOT EXISTS idx_coinage_events_to ON coinage_events (to_id);
CREATE INDEX IF NOT EXISTS idx_coinage_events_at ON coinage_events (at);
`)
				return err
			},
			Down: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `DROP TABLE IF EXISTS coinage_events`)
				return err
			},
		},
	)
}
