package pohoda

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/spojenet/kb-pohoda-sync/internal/logger"
)

const appName = "kb-pohoda-sync"

// pairingRuleID selects the Pohoda document-pairing rule applied during
// automatic liquidation. Rule 1 pairs by variable symbol.
const pairingRuleID = "1"

const dateFormat = "2006-01-02"

// ConnectorError is returned for any transport or protocol failure while
// talking to mServer. The submitter maps it to the Unknown outcome class.
type ConnectorError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *ConnectorError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("pohoda connector: %s: %v", e.Message, e.Err)
	}
	return fmt.Sprintf("pohoda connector: %s", e.Message)
}

func (e *ConnectorError) Unwrap() error { return e.Err }

// Connector talks to one Pohoda mServer instance. Not safe for concurrent
// use; the importer drives it strictly sequentially.
type Connector struct {
	baseURL    string
	username   string
	password   string
	ico        string
	httpClient *http.Client
}

// NewConnector creates a Connector for the mServer at baseURL. ico is the
// company identifier stamped on every dataPack envelope.
func NewConnector(baseURL, username, password, ico string) *Connector {
	return &Connector{
		baseURL:  baseURL,
		username: username,
		password: password,
		ico:      ico,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// ExistingNotes returns the intNote values of all bank records with a
// payment date on or after since. The importer's duplicate guard derives its
// natural-key set from these.
func (c *Connector) ExistingNotes(ctx context.Context, since time.Time) ([]string, error) {
	request := listBankRequest{
		Version:     "2.0",
		BankVersion: "2.0",
		Request: requestBankElem{
			Filter: listFilter{DateFrom: since.Format(dateFormat)},
		},
	}

	body, err := c.exchange(ctx, newDataPack(c.ico, request))
	if err != nil {
		return nil, err
	}

	notes, err := parseIntNotes(body)
	if err != nil {
		return nil, &ConnectorError{Message: "reading listBank response", Err: err}
	}

	return notes, nil
}

// Submit sends one bank record draft to the ledger and interprets the
// committed result. A non-nil Response with no Produced document means the
// ledger accepted the exchange but created nothing.
func (c *Connector) Submit(ctx context.Context, rec *Record) (*Response, error) {
	body, err := c.exchange(ctx, newDataPack(c.ico, bankElementFromRecord(rec)))
	if err != nil {
		return nil, err
	}

	resp, err := parseSubmitResponse(body)
	if err != nil {
		return nil, &ConnectorError{Message: "reading submit response", Err: err}
	}

	return resp, nil
}

// AutomaticLiquidation asks the ledger to pair open counter-records against
// the produced document number.
func (c *Connector) AutomaticLiquidation(ctx context.Context, producedNumber string) error {
	request := automaticLiquidation{
		Version: "2.0",
		Record: liquidationRecord{
			Filter: liquidationFilter{
				SelectedNumbers: selectedNumbers{
					Number: filterNumber{NumberRequested: producedNumber},
				},
			},
		},
		Rule: ruleOfPairing{ID: pairingRuleID},
	}

	log := logger.FromContext(ctx)
	log.Debug().Str("number", producedNumber).Msg("Requesting automatic liquidation")

	body, err := c.exchange(ctx, newDataPack(c.ico, request))
	if err != nil {
		return err
	}

	resp, err := parseSubmitResponse(body)
	if err != nil {
		return &ConnectorError{Message: "reading liquidation response", Err: err}
	}
	if len(resp.Errors) > 0 {
		return &ConnectorError{Message: fmt.Sprintf("liquidation rejected: %v", resp.Errors)}
	}

	return nil
}

// exchange posts one dataPack to the /xml endpoint and returns the raw
// response body.
func (c *Connector) exchange(ctx context.Context, pack dataPack) ([]byte, error) {
	payload, err := marshalDataPack(pack)
	if err != nil {
		return nil, &ConnectorError{Message: "building request", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/xml", bytes.NewReader(payload))
	if err != nil {
		return nil, &ConnectorError{Message: "building request", Err: err}
	}

	req.SetBasicAuth(c.username, c.password)
	req.Header.Set("Content-Type", "text/xml")
	req.Header.Set("STW-Application", appName)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &ConnectorError{Message: "posting dataPack", Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &ConnectorError{Message: "reading response body", Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &ConnectorError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("unexpected status %d: %s", resp.StatusCode, string(body)),
		}
	}

	return body, nil
}
