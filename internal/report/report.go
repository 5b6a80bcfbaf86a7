// Package report serializes the result of one import run to a JSON file for
// operators and scheduled-job monitoring.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spojenet/kb-pohoda-sync/internal/importer"
)

// Entry is one transaction's outcome in the report.
type Entry struct {
	Reference      string   `json:"reference"`
	Status         string   `json:"status"`
	Code           int      `json:"code"`
	ProducedID     string   `json:"producedId,omitempty"`
	ProducedNumber string   `json:"producedNumber,omitempty"`
	Liquidated     bool     `json:"liquidated,omitempty"`
	Messages       []string `json:"messages,omitempty"`
}

// Report is the full run report.
type Report struct {
	Account     string    `json:"account"`
	Scope       string    `json:"scope"`
	Since       time.Time `json:"since"`
	Until       time.Time `json:"until"`
	JobID       string    `json:"jobId"`
	DryRun      bool      `json:"dryRun,omitempty"`
	Total       int       `json:"total"`
	Succeeded   int       `json:"succeeded"`
	Duplicates  int       `json:"duplicates"`
	Failed      int       `json:"failed"`
	ExitCode    int       `json:"exitCode"`
	GeneratedAt time.Time `json:"generatedAt"`
	Entries     []Entry   `json:"transactions"`
}

// FromSummary builds a report from a run summary.
func FromSummary(summary *importer.Summary, account, jobID string) *Report {
	rep := &Report{
		Account:     account,
		Scope:       summary.Scope,
		Since:       summary.Window.Since,
		Until:       summary.Window.Until,
		JobID:       jobID,
		DryRun:      summary.DryRun,
		Total:       summary.Total,
		Succeeded:   summary.Succeeded,
		Duplicates:  summary.Duplicates,
		Failed:      summary.Failed,
		ExitCode:    int(summary.ExitCode),
		GeneratedAt: time.Now().UTC(),
	}

	for _, outcome := range summary.Outcomes {
		status := "success"
		if !outcome.Success {
			status = outcome.Code.String()
		}
		rep.Entries = append(rep.Entries, Entry{
			Reference:      outcome.EntryReference,
			Status:         status,
			Code:           int(outcome.Code),
			ProducedID:     outcome.ProducedID,
			ProducedNumber: outcome.ProducedNumber,
			Liquidated:     outcome.Liquidated,
			Messages:       outcome.Messages,
		})
	}

	return rep
}

// WriteFile writes the report as indented JSON.
func (r *Report) WriteFile(path string) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling report: %w", err)
	}

	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("writing report file: %w", err)
	}

	return nil
}
