// Package kb is a thin client for the KB accounts API (ADAA). It exposes the
// one operation the importer needs: fetch a single page of transactions for
// an account within a date-time window.
package kb

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreditDebit tells the direction of a transaction from the account's view.
type CreditDebit string

const (
	// Credit is money arriving at the account.
	Credit CreditDebit = "CREDIT"
	// Debit is money leaving the account.
	Debit CreditDebit = "DEBIT"
)

// Amount is a signed monetary value with its currency code.
type Amount struct {
	Value    decimal.Decimal `json:"value"`
	Currency string          `json:"currency"`
}

// References bundles the payment symbols and free-text descriptions attached
// to a transaction.
type References struct {
	Variable      string `json:"variable,omitempty"`
	Constant      string `json:"constant,omitempty"`
	Specific      string `json:"specific,omitempty"`
	MyDescription string `json:"myDescription,omitempty"`
}

// CounterParty identifies the other side of the transaction. Any of the
// fields may be missing for card and fee movements.
type CounterParty struct {
	Name      string `json:"name,omitempty"`
	AccountNo string `json:"accountNo,omitempty"`
	BankCode  string `json:"bankCode,omitempty"`
}

// BankTransactionCode is the bank's classification of the movement.
type BankTransactionCode struct {
	Code string `json:"code,omitempty"`
}

// Transaction is one booked account movement as returned by the API. It is
// never mutated after decoding; EntryReference is the natural key used for
// duplicate detection downstream.
type Transaction struct {
	EntryReference       string               `json:"entryReference"`
	CreditDebitIndicator CreditDebit          `json:"creditDebitIndicator"`
	Amount               Amount               `json:"amount"`
	BookingDate          *time.Time           `json:"bookingDate,omitempty"`
	ValueDate            *time.Time           `json:"valueDate,omitempty"`
	LastUpdated          time.Time            `json:"lastUpdated"`
	References           *References          `json:"references,omitempty"`
	CounterParty         *CounterParty        `json:"counterParty,omitempty"`
	BankTransactionCode  *BankTransactionCode `json:"bankTransactionCode,omitempty"`
}

// TransactionPage is one page of the paginated transaction listing.
type TransactionPage struct {
	Content []Transaction `json:"content"`
	Empty   bool          `json:"empty"`
	Last    bool          `json:"last"`
}

// Selection describes which page of which account's transactions to fetch.
// The window is half open: [FromDate, ToDate).
type Selection struct {
	AccountID string
	Page      int
	FromDate  time.Time
	ToDate    time.Time
}
