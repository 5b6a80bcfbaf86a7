package pohoda

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ProducedDetails identifies the document the ledger created for a submitted
// record.
type ProducedDetails struct {
	ID     string `xml:"id"`
	Number string `xml:"number"`
	Action string `xml:"actionType"`
}

// Response is the interpreted outcome of one submit exchange.
type Response struct {
	// Produced is non-nil when the ledger reports a created document.
	Produced *ProducedDetails
	// Errors lists the error messages reported by the ledger, field-level
	// details first.
	Errors []string
}

type responseDetail struct {
	State string `xml:"state"`
	Errno string `xml:"errno"`
	Note  string `xml:"note"`
}

// parseSubmitResponse interprets the responsePack of a dataPack exchange.
// The walk is token based and matches local element names only: mServer
// nests producedDetails and importDetails a level deeper for every agenda,
// and the depth must not matter here.
func parseSubmitResponse(body []byte) (*Response, error) {
	decoder := xml.NewDecoder(bytes.NewReader(body))

	resp := &Response{}
	var stateErrors []string

	for {
		tok, err := decoder.Token()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("parsing responsePack: %w", err)
		}

		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}

		switch start.Name.Local {
		case "producedDetails":
			var produced ProducedDetails
			if err := decoder.DecodeElement(&produced, &start); err != nil {
				return nil, fmt.Errorf("parsing producedDetails: %w", err)
			}
			if produced.ID != "" || produced.Number != "" {
				resp.Produced = &produced
			}

		case "detail":
			var detail responseDetail
			if err := decoder.DecodeElement(&detail, &start); err != nil {
				return nil, fmt.Errorf("parsing importDetails detail: %w", err)
			}
			if strings.EqualFold(detail.State, "error") {
				msg := detail.Note
				if detail.Errno != "" {
					msg = detail.Errno + ": " + msg
				}
				resp.Errors = append(resp.Errors, msg)
			}

		case "responsePack", "responsePackItem":
			var state, note string
			for _, attr := range start.Attr {
				switch attr.Name.Local {
				case "state":
					state = attr.Value
				case "note":
					note = attr.Value
				}
			}
			if strings.EqualFold(state, "error") && note != "" {
				stateErrors = append(stateErrors, note)
			}
		}
	}

	// Field-level details are the actionable part, envelope notes follow.
	resp.Errors = append(resp.Errors, stateErrors...)

	return resp, nil
}

// parseIntNotes walks a listBank response and collects every intNote value.
func parseIntNotes(body []byte) ([]string, error) {
	decoder := xml.NewDecoder(bytes.NewReader(body))

	var notes []string
	for {
		tok, err := decoder.Token()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("parsing listBank response: %w", err)
		}

		start, ok := tok.(xml.StartElement)
		if !ok || start.Name.Local != "intNote" {
			continue
		}

		var note string
		if err := decoder.DecodeElement(&note, &start); err != nil {
			return nil, fmt.Errorf("parsing intNote: %w", err)
		}
		if note != "" {
			notes = append(notes, note)
		}
	}

	return notes, nil
}
