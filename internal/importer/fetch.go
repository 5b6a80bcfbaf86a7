package importer

import (
	"context"
	"fmt"

	"github.com/spojenet/kb-pohoda-sync/internal/kb"
	"github.com/spojenet/kb-pohoda-sync/internal/logger"
)

// Fetch pulls every transaction in the window, page by page, in the order
// the bank returns them. The result is either complete or an error; a fetch
// failure means the candidate set itself is unknown, so the caller must
// abort the run rather than import a partial window.
func (e *KB) Fetch(ctx context.Context, w Window) ([]kb.Transaction, error) {
	log := logger.FromContext(ctx)
	log.Debug().
		Time("since", w.Since).
		Time("until", w.Until).
		Str("account", e.opts.AccountID).
		Msg("Requesting transactions")

	var output []kb.Transaction
	for page := 0; ; page++ {
		result, err := e.bank.Transactions(ctx, e.opts.AccessToken, kb.Selection{
			AccountID: e.opts.AccountID,
			Page:      page,
			FromDate:  w.Since,
			ToDate:    w.Until,
		})
		if err != nil {
			return nil, fmt.Errorf("fetching transaction page %d: %w", page, err)
		}

		if result.Empty {
			log.Info().
				Time("since", w.Since).
				Time("until", w.Until).
				Msg("No transactions in window")
			return nil, nil
		}

		output = append(output, result.Content...)

		if result.Last {
			break
		}
	}

	return output, nil
}
