package pohoda

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalDataPack_Liquidation(t *testing.T) {
	request := automaticLiquidation{
		Version: "2.0",
		Record: liquidationRecord{
			Filter: liquidationFilter{
				SelectedNumbers: selectedNumbers{
					Number: filterNumber{NumberRequested: "KB0010003"},
				},
			},
		},
		Rule: ruleOfPairing{ID: pairingRuleID},
	}

	payload, err := marshalDataPack(newDataPack("12345678", request))
	require.NoError(t, err)
	doc := string(payload)

	// The element chain Pohoda requires, in nesting order.
	for _, elem := range []string{
		"<dat:dataPack",
		"<dat:dataPackItem",
		"<lqd:automaticLiquidation",
		"<lqd:record>",
		"<ftr:filter>",
		"<ftr:selectedNumbers>",
		"<ftr:number>",
		"<typ:numberRequested>KB0010003</typ:numberRequested>",
		"<lqd:ruleOfPairing>",
		"<typ:id>1</typ:id>",
	} {
		assert.Contains(t, doc, elem)
	}

	assert.Contains(t, doc, `ico="12345678"`)
	assert.Contains(t, doc, nsLqd)
	assert.Contains(t, doc, nsFilter)

	// Nesting sanity: the requested number sits inside the filter, the rule after the record.
	assert.Less(t, strings.Index(doc, "<ftr:filter>"), strings.Index(doc, "<typ:numberRequested>"))
	assert.Less(t, strings.Index(doc, "</lqd:record>"), strings.Index(doc, "<lqd:ruleOfPairing>"))
}

func TestBankElementFromRecord(t *testing.T) {
	rec := NewRecord()
	rec.Set(FieldBankType, "receipt")
	rec.Set(FieldAccount, "KB")
	rec.Set(FieldDatePayment, "2024-01-05")
	rec.Set(FieldSymVar, "20240001")
	rec.Set(FieldSymConst, "0308")
	rec.Set(FieldIntNote, "Imported: kb-pohoda-sync KB-1")
	rec.Set(FieldPartnerName, "ACME s.r.o.")
	rec.Set(FieldPaymentAccount, PaymentAccount{AccountNo: "123456789", BankCode: "0100"})
	rec.Set(FieldHomeCurrency, CurrencyAmount{PriceNone: "150"})

	elem := bankElementFromRecord(rec)

	assert.Equal(t, "receipt", elem.Header.BankType)
	require.NotNil(t, elem.Header.Account)
	assert.Equal(t, "KB", elem.Header.Account.IDs)
	assert.Equal(t, "2024-01-05", elem.Header.DatePayment)
	assert.Equal(t, "0308", elem.Header.SymConst)
	require.NotNil(t, elem.Header.PartnerIdentity)
	assert.Equal(t, "ACME s.r.o.", elem.Header.PartnerIdentity.Address.Name)
	require.NotNil(t, elem.Header.PaymentAccount)
	assert.Equal(t, "0100", elem.Header.PaymentAccount.BankCode)
	require.NotNil(t, elem.Header.HomeCurrency)
	assert.Equal(t, "150", elem.Header.HomeCurrency.PriceNone)
	assert.Nil(t, elem.Header.ForeignCurrency)
}

func TestBankElementFromRecord_ForeignCurrency(t *testing.T) {
	rec := NewRecord()
	rec.Set(FieldBankType, "expense")
	rec.Set(FieldForeignCurrency, CurrencyAmount{PriceNone: "75.5", Currency: "EUR"})

	elem := bankElementFromRecord(rec)

	assert.Nil(t, elem.Header.HomeCurrency)
	require.NotNil(t, elem.Header.ForeignCurrency)
	assert.Equal(t, "75.5", elem.Header.ForeignCurrency.PriceNone)
	require.NotNil(t, elem.Header.ForeignCurrency.Currency)
	assert.Equal(t, "EUR", elem.Header.ForeignCurrency.Currency.IDs)
}

func TestBankElementFromRecord_OptionalFieldsOmitted(t *testing.T) {
	rec := NewRecord()
	rec.Set(FieldBankType, "receipt")

	payload, err := marshalDataPack(newDataPack("1", bankElementFromRecord(rec)))
	require.NoError(t, err)
	doc := string(payload)

	assert.Contains(t, doc, "<bnk:bankType>receipt</bnk:bankType>")
	assert.NotContains(t, doc, "symVar")
	assert.NotContains(t, doc, "paymentAccount")
	assert.NotContains(t, doc, "homeCurrency")
}
