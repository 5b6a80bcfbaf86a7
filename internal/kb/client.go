package kb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// dateTimeFormat is the timestamp layout the API expects, e.g.
// 2021-08-01T10:00:00.0Z.
const dateTimeFormat = "2006-01-02T15:04:05.0Z"

// ClientError is returned for any transport or protocol failure while
// talking to the bank API. The importer treats it as fatal for the run.
type ClientError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *ClientError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("kb client: %s: %v", e.Message, e.Err)
	}
	return fmt.Sprintf("kb client: %s", e.Message)
}

func (e *ClientError) Unwrap() error { return e.Err }

// Client talks to the KB accounts API. It is safe for sequential use only.
type Client struct {
	baseURL    string
	clientID   string
	httpClient *http.Client
}

// NewClient creates a Client for the given API base URL. clientID is the
// x-ibm-client-id value issued with the API subscription.
func NewClient(baseURL, clientID string) *Client {
	return &Client{
		baseURL:  baseURL,
		clientID: clientID,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Transactions fetches one page of transactions for the selection. The
// access token is passed per call because tokens rotate independently of the
// client's lifetime.
func (c *Client) Transactions(ctx context.Context, accessToken string, sel Selection) (*TransactionPage, error) {
	endpoint := fmt.Sprintf("%s/accounts/%s/transactions", c.baseURL, url.PathEscape(sel.AccountID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, &ClientError{Message: "building request", Err: err}
	}

	q := req.URL.Query()
	q.Set("page", strconv.Itoa(sel.Page))
	q.Set("fromDateTime", sel.FromDate.UTC().Format(dateTimeFormat))
	q.Set("toDateTime", sel.ToDate.UTC().Format(dateTimeFormat))
	req.URL.RawQuery = q.Encode()

	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Accept", "application/json")
	if c.clientID != "" {
		req.Header.Set("x-ibm-client-id", c.clientID)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &ClientError{Message: "requesting transaction page", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, &ClientError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("unexpected status %d: %s", resp.StatusCode, string(body)),
		}
	}

	var page TransactionPage
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, &ClientError{Message: "decoding transaction page", Err: err}
	}

	return &page, nil
}
