package importer

import (
	"context"
	"fmt"
	"time"

	"github.com/spojenet/kb-pohoda-sync/internal/logger"
)

// Summary aggregates one run. ExitCode is the code of the last non-success
// outcome other than a duplicate skip; a run of only successes and
// duplicates exits zero.
type Summary struct {
	Scope      string
	Window     Window
	Total      int
	Succeeded  int
	Duplicates int
	Failed     int
	ExitCode   Code
	Outcomes   []Outcome
	DryRun     bool
}

// Runner drives one engine through a full import run, strictly sequentially:
// one page fetch at a time, one transaction mapped and submitted at a time.
// The ledger connector shares mutable working state across calls, so there
// is no fan-out, and ordering stays deterministic for auditing.
type Runner struct {
	engine Engine
	// guard loading is part of the run so the key set belongs to exactly
	// one run.
	guard *DuplicateGuard
}

// NewRunner wires a Runner around the KB engine.
func NewRunner(engine *KB) *Runner {
	return &Runner{engine: engine, guard: engine.guard}
}

// Run resolves the scope, fetches the window and imports every transaction.
// Scope and fetch failures are returned as errors and abort the run; per
// transaction failures only shape the summary.
func (r *Runner) Run(ctx context.Context, scope string, now time.Time, dryRun bool) (*Summary, error) {
	log := logger.FromContext(ctx)

	window, err := r.engine.ResolveScope(ctx, scope, now)
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("scope", scope).
		Time("since", window.Since).
		Time("until", window.Until).
		Bool("dry_run", dryRun).
		Msg("Starting import")

	transactions, err := r.engine.Fetch(ctx, window)
	if err != nil {
		return nil, fmt.Errorf("fetch failed: %w", err)
	}

	log.Info().Int("count", len(transactions)).Msg("Transactions obtained via API")

	summary := &Summary{Scope: scope, Window: window, Total: len(transactions), DryRun: dryRun}

	if len(transactions) == 0 {
		return summary, nil
	}

	// The duplicate set is unknowable if this query fails, and importing
	// without it could double-book records, so the failure is fatal like a
	// fetch failure.
	if err := r.guard.Load(ctx, window.Since); err != nil {
		return nil, err
	}

	for _, tx := range transactions {
		draft := r.engine.Map(tx)

		if dryRun {
			log.Info().
				Str("reference", tx.EntryReference).
				Bool("duplicate", r.guard.IsDuplicate(tx.EntryReference)).
				Msg("[DRY RUN] Would import transaction")
			continue
		}

		outcome := r.engine.Submit(ctx, tx, draft)
		summary.Outcomes = append(summary.Outcomes, outcome)

		switch {
		case outcome.Success:
			summary.Succeeded++
		case outcome.Code == CodeDuplicate:
			summary.Duplicates++
		default:
			summary.Failed++
			summary.ExitCode = outcome.Code
		}
	}

	log.Info().
		Int("succeeded", summary.Succeeded).
		Int("duplicates", summary.Duplicates).
		Int("failed", summary.Failed).
		Int("total", summary.Total).
		Int("exit_code", int(summary.ExitCode)).
		Msg("Import done")

	return summary, nil
}
