package report

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spojenet/kb-pohoda-sync/internal/importer"
)

func TestFromSummary(t *testing.T) {
	summary := &importer.Summary{
		Scope: "yesterday",
		Window: importer.Window{
			Since: time.Date(2024, 1, 4, 0, 0, 0, 0, time.UTC),
			Until: time.Date(2024, 1, 4, 23, 59, 59, 999000000, time.UTC),
		},
		Total:      3,
		Succeeded:  1,
		Duplicates: 1,
		Failed:     1,
		ExitCode:   importer.CodeNotProcessed,
		Outcomes: []importer.Outcome{
			{EntryReference: "KB-1", Success: true, ProducedNumber: "KB0010001", Liquidated: true},
			{EntryReference: "KB-2", Code: importer.CodeDuplicate},
			{EntryReference: "KB-3", Code: importer.CodeNotProcessed, Messages: []string{"bad date"}},
		},
	}

	rep := FromSummary(summary, "123456789", "job-7")

	if rep.ExitCode != 401 {
		t.Errorf("expected exit code 401, got %d", rep.ExitCode)
	}
	if len(rep.Entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(rep.Entries))
	}
	if rep.Entries[0].Status != "success" {
		t.Errorf("expected first entry success, got %q", rep.Entries[0].Status)
	}
	if rep.Entries[1].Status != "duplicate" {
		t.Errorf("expected second entry duplicate, got %q", rep.Entries[1].Status)
	}
	if rep.Entries[2].Status != "not_processed" {
		t.Errorf("expected third entry not_processed, got %q", rep.Entries[2].Status)
	}
}

func TestWriteFile(t *testing.T) {
	rep := FromSummary(&importer.Summary{Scope: "today", Total: 0}, "acc", "job")
	path := filepath.Join(t.TempDir(), "report.json")

	if err := rep.WriteFile(path); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading report: %v", err)
	}

	var decoded Report
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("report is not valid JSON: %v", err)
	}
	if decoded.Account != "acc" {
		t.Errorf("expected account 'acc', got %q", decoded.Account)
	}
}
