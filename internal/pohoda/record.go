// Package pohoda is a thin connector for the Stormware Pohoda mServer XML
// API. It covers the three operations the importer needs: query existing
// bank records, submit a new bank record, and request automatic liquidation
// of a produced document.
package pohoda

// Ledger schema field names accepted by Record.Set. Nested values use the
// dedicated types below.
const (
	FieldBankType        = "bankType"
	FieldAccount         = "account"
	FieldDatePayment     = "datePayment"
	FieldDateStatement   = "dateStatement"
	FieldStatementNumber = "statementNumber"
	FieldSymVar          = "symVar"
	FieldSymConst        = "symConst"
	FieldSymSpec         = "symSpec"
	FieldSymPar          = "symPar"
	FieldText            = "text"
	FieldNote            = "note"
	FieldIntNote         = "intNote"
	FieldPartnerName     = "partnerName"
	FieldPaymentAccount  = "paymentAccount"
	FieldHomeCurrency    = "homeCurrency"
	FieldForeignCurrency = "foreignCurrency"
)

// PaymentAccount is the counterparty bank account pair.
type PaymentAccount struct {
	AccountNo string
	BankCode  string
}

// CurrencyAmount is a price in either the home or a foreign currency.
// Currency is only set for foreign amounts.
type CurrencyAmount struct {
	PriceNone string
	Currency  string
}

// Record is a mutable field bag for one bank record draft. A fresh Record is
// built per transaction and discarded after submission.
type Record struct {
	fields map[string]any
}

// NewRecord returns an empty draft.
func NewRecord() *Record {
	return &Record{fields: make(map[string]any)}
}

// Set stores a field value under its ledger schema name. Setting the same
// field twice overwrites the previous value.
func (r *Record) Set(field string, value any) {
	r.fields[field] = value
}

// Value returns the stored value for a field, if any.
func (r *Record) Value(field string) (any, bool) {
	v, ok := r.fields[field]
	return v, ok
}

// String returns the stored value as a string, or "" when absent or of
// another type.
func (r *Record) String(field string) string {
	if v, ok := r.fields[field]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// Len reports how many fields are set.
func (r *Record) Len() int {
	return len(r.fields)
}
