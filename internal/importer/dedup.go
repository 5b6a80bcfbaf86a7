package importer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spojenet/kb-pohoda-sync/internal/logger"
)

// DuplicateGuard decides whether a candidate transaction is already present
// in the ledger. The ledger has no structured external-id field, so the
// free-text intNote carries the natural key; the guard derives the key set
// from the notes of all records on or after the window start.
//
// The set is loaded at most once per run and owned by this guard, never by
// package state, so repeated runs and tests cannot leak keys into each
// other.
type DuplicateGuard struct {
	ledger Ledger
	keys   map[string]struct{}
	loaded bool
}

// NewDuplicateGuard returns an unloaded guard bound to the ledger.
func NewDuplicateGuard(ledger Ledger) *DuplicateGuard {
	return &DuplicateGuard{ledger: ledger}
}

// Load queries the ledger once for the existing natural keys in the window.
// Subsequent calls are no-ops.
func (g *DuplicateGuard) Load(ctx context.Context, since time.Time) error {
	if g.loaded {
		return nil
	}

	notes, err := g.ledger.ExistingNotes(ctx, since)
	if err != nil {
		return fmt.Errorf("querying existing ledger records: %w", err)
	}

	g.keys = make(map[string]struct{}, len(notes))
	for _, note := range notes {
		if key := naturalKeyFromNote(note); key != "" {
			g.keys[key] = struct{}{}
		}
	}
	g.loaded = true

	log := logger.FromContext(ctx)
	log.Debug().
		Int("existing_keys", len(g.keys)).
		Time("since", since).
		Msg("Loaded ledger duplicate set")

	return nil
}

// IsDuplicate reports whether the natural key is already in the ledger.
// Load must have succeeded first.
func (g *DuplicateGuard) IsDuplicate(key string) bool {
	_, ok := g.keys[key]
	return ok
}

// naturalKeyFromNote recovers the natural key embedded by the mapper's note
// template: the key is the note's last whitespace-separated token. Notes
// written by other agendas yield tokens that never collide with an
// account-servicer reference.
func naturalKeyFromNote(note string) string {
	fields := strings.Fields(note)
	if len(fields) == 0 {
		return ""
	}
	return fields[len(fields)-1]
}
