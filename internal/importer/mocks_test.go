package importer

import (
	"context"
	"time"

	"github.com/spojenet/kb-pohoda-sync/internal/kb"
	"github.com/spojenet/kb-pohoda-sync/internal/pohoda"
)

// mockBank serves canned transaction pages and records the page indexes it
// was asked for.
type mockBank struct {
	pages      []*kb.TransactionPage
	err        error
	pagesAsked []int
}

func (m *mockBank) Transactions(_ context.Context, _ string, sel kb.Selection) (*kb.TransactionPage, error) {
	m.pagesAsked = append(m.pagesAsked, sel.Page)
	if m.err != nil {
		return nil, m.err
	}
	if sel.Page >= len(m.pages) {
		return &kb.TransactionPage{Empty: true, Last: true}, nil
	}
	return m.pages[sel.Page], nil
}

// mockLedger implements Ledger with per-reference scripted responses.
type mockLedger struct {
	notes    []string
	notesErr error
	// notesQueries counts ExistingNotes calls to assert memoization.
	notesQueries int

	// responses keys on the draft's symPar (the entry reference). A nil map
	// entry falls through to the default produced response.
	responses map[string]*pohoda.Response
	submitErr error

	submitted    []*pohoda.Record
	liquidations []string
	liquidateErr error
}

func (m *mockLedger) ExistingNotes(context.Context, time.Time) ([]string, error) {
	m.notesQueries++
	if m.notesErr != nil {
		return nil, m.notesErr
	}
	return m.notes, nil
}

func (m *mockLedger) Submit(_ context.Context, rec *pohoda.Record) (*pohoda.Response, error) {
	if m.submitErr != nil {
		return nil, m.submitErr
	}
	m.submitted = append(m.submitted, rec)

	ref := rec.String(pohoda.FieldSymPar)
	if resp, ok := m.responses[ref]; ok {
		return resp, nil
	}
	return &pohoda.Response{
		Produced: &pohoda.ProducedDetails{ID: "1", Number: "KB001" + ref, Action: "add"},
	}, nil
}

func (m *mockLedger) AutomaticLiquidation(_ context.Context, number string) error {
	if m.liquidateErr != nil {
		return m.liquidateErr
	}
	m.liquidations = append(m.liquidations, number)
	return nil
}

func czk(value string) kb.Amount {
	return amount(value, "CZK")
}

func amount(value, currency string) kb.Amount {
	return kb.Amount{Value: mustDecimal(value), Currency: currency}
}

func tx(reference string, a kb.Amount, direction kb.CreditDebit) kb.Transaction {
	updated := time.Date(2024, 1, 5, 10, 0, 0, 0, time.UTC)
	return kb.Transaction{
		EntryReference:       reference,
		CreditDebitIndicator: direction,
		Amount:               a,
		LastUpdated:          updated,
	}
}
