package importer

import (
	"context"
	"errors"

	"github.com/spojenet/kb-pohoda-sync/internal/kb"
	"github.com/spojenet/kb-pohoda-sync/internal/logger"
	"github.com/spojenet/kb-pohoda-sync/internal/pohoda"
)

// Outcome is the classified result of one transaction's submission. Expected
// failures (duplicate, rejected, not added) are values of this type, not
// errors; only the surrounding run loop decides what they mean for the
// process exit code.
type Outcome struct {
	EntryReference string
	Success        bool
	Code           Code

	ProducedID     string
	ProducedNumber string
	ProducedAction string
	// Liquidated reports whether the post-insert auto-matching succeeded.
	Liquidated bool

	Messages []string
}

// Submit runs the draft through the duplicate guard and the ledger. A
// failure here never aborts the run: other transactions are independent and
// still get their attempt.
func (e *KB) Submit(ctx context.Context, tx kb.Transaction, draft *pohoda.Record) Outcome {
	log := logger.FromContext(ctx)

	if e.guard.IsDuplicate(tx.EntryReference) {
		log.Warn().
			Str("reference", tx.EntryReference).
			Msg("Transaction already present in ledger, skipping")
		return Outcome{EntryReference: tx.EntryReference, Code: CodeDuplicate}
	}

	resp, err := e.ledger.Submit(ctx, draft)
	if err != nil {
		log.Error().
			Err(err).
			Str("reference", tx.EntryReference).
			Msg("Ledger submission failed")
		return Outcome{
			EntryReference: tx.EntryReference,
			Code:           classifyConnectorError(err),
			Messages:       []string{err.Error()},
		}
	}

	if resp.Produced != nil {
		outcome := Outcome{
			EntryReference: tx.EntryReference,
			Success:        true,
			Code:           CodeOK,
			ProducedID:     resp.Produced.ID,
			ProducedNumber: resp.Produced.Number,
			ProducedAction: resp.Produced.Action,
		}

		// Liquidation is best effort; the record is already committed.
		if err := e.ledger.AutomaticLiquidation(ctx, resp.Produced.Number); err != nil {
			log.Warn().
				Err(err).
				Str("number", resp.Produced.Number).
				Msg("Automatic liquidation failed")
		} else {
			outcome.Liquidated = true
		}

		log.Info().
			Str("id", outcome.ProducedID).
			Str("number", outcome.ProducedNumber).
			Str("action", outcome.ProducedAction).
			Msg("Bank record produced")

		return outcome
	}

	if len(resp.Errors) > 0 {
		log.Error().
			Strs("errors", resp.Errors).
			Str("reference", tx.EntryReference).
			Msg("Ledger rejected record")
		return Outcome{
			EntryReference: tx.EntryReference,
			Code:           CodeNotProcessed,
			Messages:       resp.Errors,
		}
	}

	log.Error().
		Str("reference", tx.EntryReference).
		Msg("Ledger commit added nothing")
	return Outcome{EntryReference: tx.EntryReference, Code: CodeNotAdded}
}

// classifyConnectorError maps a transport fault to an outcome code. An HTTP
// status carried by the connector is preserved, anything else is Unknown.
func classifyConnectorError(err error) Code {
	var connErr *pohoda.ConnectorError
	if errors.As(err, &connErr) && connErr.StatusCode != 0 {
		return Code(connErr.StatusCode)
	}
	return CodeUnknown
}
