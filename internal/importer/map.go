package importer

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spojenet/kb-pohoda-sync/internal/kb"
	"github.com/spojenet/kb-pohoda-sync/internal/pohoda"
)

const ledgerDateFormat = "2006-01-02"

// ImportNote is the idempotency-note template. The natural key sits at the
// end so the duplicate guard can recover it from the ledger's note values.
func ImportNote(entryReference string) string {
	return "Imported: kb-pohoda-sync " + entryReference
}

// Map projects one bank transaction into a fresh ledger record draft. Pure
// apart from the engine's job-identifier context; optional source fields are
// never written as empty placeholders.
func (e *KB) Map(tx kb.Transaction) *pohoda.Record {
	rec := pohoda.NewRecord()

	bankType := "receipt"
	if tx.CreditDebitIndicator == kb.Debit {
		bankType = "expense"
	}
	rec.Set(pohoda.FieldBankType, bankType)
	rec.Set(pohoda.FieldAccount, e.opts.BankIDS)

	rec.Set(pohoda.FieldDatePayment, paymentDate(tx).Format(ledgerDateFormat))

	rec.Set(pohoda.FieldIntNote, ImportNote(tx.EntryReference))
	rec.Set(pohoda.FieldSymPar, tx.EntryReference)
	rec.Set(pohoda.FieldNote, "Import Job "+e.opts.JobID)

	if tx.BankTransactionCode != nil && tx.BankTransactionCode.Code != "" {
		rec.Set(pohoda.FieldStatementNumber, tx.BankTransactionCode.Code)
	}

	if refs := tx.References; refs != nil {
		if refs.Variable != "" {
			rec.Set(pohoda.FieldSymVar, refs.Variable)
		}
		if refs.Specific != "" {
			rec.Set(pohoda.FieldSymSpec, refs.Specific)
		}
		if constant, err := strconv.Atoi(refs.Constant); err == nil && constant != 0 {
			rec.Set(pohoda.FieldSymConst, fmt.Sprintf("%04d", constant))
		}
		if refs.MyDescription != "" {
			rec.Set(pohoda.FieldText, refs.MyDescription)
		}
	}

	if cp := tx.CounterParty; cp != nil {
		if cp.Name != "" {
			rec.Set(pohoda.FieldPartnerName, cp.Name)
		}
		if cp.AccountNo != "" || cp.BankCode != "" {
			rec.Set(pohoda.FieldPaymentAccount, pohoda.PaymentAccount{
				AccountNo: cp.AccountNo,
				BankCode:  cp.BankCode,
			})
		}
	}

	amount := tx.Amount.Value.Abs().String()
	if tx.Amount.Currency == e.opts.HomeCurrency {
		rec.Set(pohoda.FieldHomeCurrency, pohoda.CurrencyAmount{PriceNone: amount})
	} else {
		rec.Set(pohoda.FieldForeignCurrency, pohoda.CurrencyAmount{
			PriceNone: amount,
			Currency:  tx.Amount.Currency,
		})
	}

	return rec
}

// paymentDate is the value date, falling back to the booking date, falling
// back to the last-updated timestamp.
func paymentDate(tx kb.Transaction) time.Time {
	if tx.ValueDate != nil {
		return *tx.ValueDate
	}
	if tx.BookingDate != nil {
		return *tx.BookingDate
	}
	return tx.LastUpdated
}
