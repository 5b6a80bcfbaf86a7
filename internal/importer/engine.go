package importer

import (
	"context"
	"fmt"
	"time"

	"github.com/spojenet/kb-pohoda-sync/internal/logger"
)

// Options configures a KB import engine.
type Options struct {
	// AccountID is the bank-side account to read transactions from.
	AccountID string
	// AccessToken authenticates each bank API call.
	AccessToken string
	// BankIDS is the ledger's code-list identifier of the bank account the
	// records are filed under.
	BankIDS string
	// JobID labels the run in every produced record's note field.
	JobID string
	// HomeCurrency decides the home/foreign amount split in the mapper.
	HomeCurrency string
	// Cursor, when set, lets the auto scope start at the persisted
	// high-water mark instead of the rolling lookback.
	Cursor CursorStore
}

// KB imports Komerční banka transactions into the Pohoda ledger. It
// implements Engine and is not safe for concurrent use.
type KB struct {
	bank   BankAPI
	ledger Ledger
	guard  *DuplicateGuard
	opts   Options
}

// NewKB builds the engine. HomeCurrency defaults to CZK.
func NewKB(bank BankAPI, ledger Ledger, opts Options) *KB {
	if opts.HomeCurrency == "" {
		opts.HomeCurrency = "CZK"
	}
	return &KB{
		bank:   bank,
		ledger: ledger,
		guard:  NewDuplicateGuard(ledger),
		opts:   opts,
	}
}

// ResolveScope resolves the scope expression. For auto with a configured
// cursor store, the persisted last-sync timestamp replaces the rolling
// lookback as the window start.
func (e *KB) ResolveScope(ctx context.Context, scope string, now time.Time) (Window, error) {
	w, err := ResolveScope(scope, now)
	if err != nil {
		return Window{}, err
	}

	if scope == "auto" && e.opts.Cursor != nil {
		ts, found, err := e.opts.Cursor.LastSync(ctx, e.opts.AccountID)
		if err != nil {
			return Window{}, fmt.Errorf("reading sync cursor: %w", err)
		}
		if found {
			w.Since = ts
		} else {
			log := logger.FromContext(ctx)
			log.Warn().
				Str("account", e.opts.AccountID).
				Msgf("No sync cursor yet, using %d-day lookback", autoLookbackDays)
		}
	}

	return w, nil
}
