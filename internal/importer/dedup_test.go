package importer

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestDuplicateGuard_LoadOnce(t *testing.T) {
	ledger := &mockLedger{
		notes: []string{
			ImportNote("KB-1"),
			ImportNote("KB-2"),
			ImportNote("KB-1"), // repeated notes collapse into the set
			"manual booking without import note",
		},
	}
	guard := NewDuplicateGuard(ledger)
	since := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		if err := guard.Load(context.Background(), since); err != nil {
			t.Fatalf("Load failed: %v", err)
		}
	}

	if ledger.notesQueries != 1 {
		t.Errorf("expected exactly one ledger query, got %d", ledger.notesQueries)
	}

	if !guard.IsDuplicate("KB-1") || !guard.IsDuplicate("KB-2") {
		t.Error("expected imported references to be duplicates")
	}
	if guard.IsDuplicate("KB-3") {
		t.Error("KB-3 was never imported, must not be a duplicate")
	}
}

func TestDuplicateGuard_LoadError(t *testing.T) {
	ledger := &mockLedger{notesErr: errors.New("mServer unavailable")}
	guard := NewDuplicateGuard(ledger)

	err := guard.Load(context.Background(), time.Now())
	if err == nil {
		t.Fatal("expected error, got nil")
	}

	// A failed load must not mark the guard as loaded.
	ledger.notesErr = nil
	ledger.notes = []string{ImportNote("KB-1")}
	if err := guard.Load(context.Background(), time.Now()); err != nil {
		t.Fatalf("retry Load failed: %v", err)
	}
	if !guard.IsDuplicate("KB-1") {
		t.Error("expected guard to load keys on retry")
	}
}

func TestNaturalKeyFromNote(t *testing.T) {
	tests := []struct {
		note string
		want string
	}{
		{ImportNote("KB-20240105-0001"), "KB-20240105-0001"},
		{"some manual note", "note"},
		{"", ""},
		{"   ", ""},
	}

	for _, tt := range tests {
		if got := naturalKeyFromNote(tt.note); got != tt.want {
			t.Errorf("naturalKeyFromNote(%q) = %q, want %q", tt.note, got, tt.want)
		}
	}
}
