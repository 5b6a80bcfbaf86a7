package importer

import (
	"context"
	"time"

	"github.com/spojenet/kb-pohoda-sync/internal/kb"
	"github.com/spojenet/kb-pohoda-sync/internal/pohoda"
)

// BankAPI is the bank-side collaborator: fetch one page of transactions for
// an account within a window.
type BankAPI interface {
	Transactions(ctx context.Context, accessToken string, sel kb.Selection) (*kb.TransactionPage, error)
}

// Ledger is the accounting-side collaborator. Submit covers the ledger's
// add-and-commit lifecycle and returns the interpreted response.
type Ledger interface {
	ExistingNotes(ctx context.Context, since time.Time) ([]string, error)
	Submit(ctx context.Context, rec *pohoda.Record) (*pohoda.Response, error)
	AutomaticLiquidation(ctx context.Context, producedNumber string) error
}

// CursorStore persists the high-water mark consulted by the auto scope.
// Implementations report found=false when no cursor has been stored yet.
type CursorStore interface {
	LastSync(ctx context.Context, account string) (ts time.Time, found bool, err error)
	SetLastSync(ctx context.Context, account string, ts time.Time) error
}

// Engine is the per-bank import capability. One concrete implementation
// exists per bank source, selected at construction time; Runner drives any
// of them the same way.
type Engine interface {
	// ResolveScope turns a scope expression into the window to import.
	ResolveScope(ctx context.Context, scope string, now time.Time) (Window, error)

	// Fetch returns every transaction in the window, in source order.
	// An error here is fatal for the whole run.
	Fetch(ctx context.Context, w Window) ([]kb.Transaction, error)

	// Map projects one transaction into a fresh ledger record draft.
	Map(tx kb.Transaction) *pohoda.Record

	// Submit runs the draft through duplicate detection and the ledger,
	// classifying the result. Expected failures are Outcome values, not
	// errors.
	Submit(ctx context.Context, tx kb.Transaction, draft *pohoda.Record) Outcome
}
