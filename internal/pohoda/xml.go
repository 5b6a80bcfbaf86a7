package pohoda

import (
	"encoding/xml"
	"fmt"
)

// Stormware schema namespaces, version 2.
const (
	nsData   = "http://www.stormware.cz/schema/version_2/data.xsd"
	nsBank   = "http://www.stormware.cz/schema/version_2/bank.xsd"
	nsType   = "http://www.stormware.cz/schema/version_2/type.xsd"
	nsFilter = "http://www.stormware.cz/schema/version_2/filter.xsd"
	nsList   = "http://www.stormware.cz/schema/version_2/list.xsd"
	nsLqd    = "http://www.stormware.cz/schema/version_2/automaticLiquidation.xsd"
)

// dataPack is the request envelope. Prefixed element names are written
// literally; the xmlns attributes bind the prefixes.
type dataPack struct {
	XMLName    xml.Name `xml:"dat:dataPack"`
	XmlnsDat   string   `xml:"xmlns:dat,attr"`
	XmlnsBnk   string   `xml:"xmlns:bnk,attr,omitempty"`
	XmlnsLst   string   `xml:"xmlns:lst,attr,omitempty"`
	XmlnsLqd   string   `xml:"xmlns:lqd,attr,omitempty"`
	XmlnsFtr   string   `xml:"xmlns:ftr,attr,omitempty"`
	XmlnsTyp   string   `xml:"xmlns:typ,attr"`
	Version    string   `xml:"version,attr"`
	ID         string   `xml:"id,attr"`
	ICO        string   `xml:"ico,attr"`
	Application string  `xml:"application,attr"`
	Note       string   `xml:"note,attr,omitempty"`
	Items      []dataPackItem
}

type dataPackItem struct {
	XMLName xml.Name `xml:"dat:dataPackItem"`
	Version string   `xml:"version,attr"`
	ID      string   `xml:"id,attr"`
	Body    any
}

func newDataPack(ico string, body any) dataPack {
	pack := dataPack{
		XmlnsDat:    nsData,
		XmlnsTyp:    nsType,
		Version:     "2.0",
		ID:          "01",
		ICO:         ico,
		Application: appName,
		Items: []dataPackItem{
			{Version: "2.0", ID: "001", Body: body},
		},
	}

	switch body.(type) {
	case bankElement:
		pack.XmlnsBnk = nsBank
	case listBankRequest:
		pack.XmlnsLst = nsList
		pack.XmlnsFtr = nsFilter
	case automaticLiquidation:
		pack.XmlnsLqd = nsLqd
		pack.XmlnsFtr = nsFilter
	}

	return pack
}

func marshalDataPack(pack dataPack) ([]byte, error) {
	body, err := xml.MarshalIndent(pack, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling dataPack: %w", err)
	}
	return append([]byte(xml.Header), body...), nil
}

// typeIDs is the typ:ids selector used for code-list references.
type typeIDs struct {
	IDs string `xml:"typ:ids"`
}

// bankElement is the bnk:bank document built from a Record field bag.
type bankElement struct {
	XMLName xml.Name   `xml:"bnk:bank"`
	Version string     `xml:"version,attr"`
	Header  bankHeader `xml:"bnk:bankHeader"`
}

type bankHeader struct {
	BankType        string              `xml:"bnk:bankType,omitempty"`
	Account         *typeIDs            `xml:"bnk:account,omitempty"`
	StatementNumber *statementNumber    `xml:"bnk:statementNumber,omitempty"`
	SymVar          string              `xml:"bnk:symVar,omitempty"`
	DatePayment     string              `xml:"bnk:datePayment,omitempty"`
	DateStatement   string              `xml:"bnk:dateStatement,omitempty"`
	Text            string              `xml:"bnk:text,omitempty"`
	PartnerIdentity *partnerIdentity    `xml:"bnk:partnerIdentity,omitempty"`
	PaymentAccount  *paymentAccountElem `xml:"bnk:paymentAccount,omitempty"`
	SymConst        string              `xml:"bnk:symConst,omitempty"`
	SymSpec         string              `xml:"bnk:symSpec,omitempty"`
	SymPar          string              `xml:"bnk:symPar,omitempty"`
	Note            string              `xml:"bnk:note,omitempty"`
	IntNote         string              `xml:"bnk:intNote,omitempty"`
	HomeCurrency    *currencyElem       `xml:"bnk:homeCurrency,omitempty"`
	ForeignCurrency *foreignCurrencyElem `xml:"bnk:foreignCurrency,omitempty"`
}

type statementNumber struct {
	StatementNumber string `xml:"typ:statementNumber,omitempty"`
}

type partnerIdentity struct {
	Address *partnerAddress `xml:"typ:address,omitempty"`
}

type partnerAddress struct {
	Name string `xml:"typ:name,omitempty"`
}

type paymentAccountElem struct {
	AccountNo string `xml:"typ:accountNo,omitempty"`
	BankCode  string `xml:"typ:bankCode,omitempty"`
}

type currencyElem struct {
	PriceNone string `xml:"typ:priceNone,omitempty"`
}

type foreignCurrencyElem struct {
	Currency  *typeIDs `xml:"typ:currency,omitempty"`
	PriceNone string   `xml:"typ:priceNone,omitempty"`
}

// bankElementFromRecord projects the field bag into the bnk:bank schema.
func bankElementFromRecord(rec *Record) bankElement {
	header := bankHeader{
		BankType:      rec.String(FieldBankType),
		SymVar:        rec.String(FieldSymVar),
		SymConst:      rec.String(FieldSymConst),
		SymSpec:       rec.String(FieldSymSpec),
		SymPar:        rec.String(FieldSymPar),
		DatePayment:   rec.String(FieldDatePayment),
		DateStatement: rec.String(FieldDateStatement),
		Text:          rec.String(FieldText),
		Note:          rec.String(FieldNote),
		IntNote:       rec.String(FieldIntNote),
	}

	if account := rec.String(FieldAccount); account != "" {
		header.Account = &typeIDs{IDs: account}
	}

	if number := rec.String(FieldStatementNumber); number != "" {
		header.StatementNumber = &statementNumber{StatementNumber: number}
	}

	if name := rec.String(FieldPartnerName); name != "" {
		header.PartnerIdentity = &partnerIdentity{Address: &partnerAddress{Name: name}}
	}

	if v, ok := rec.Value(FieldPaymentAccount); ok {
		if pa, ok := v.(PaymentAccount); ok {
			header.PaymentAccount = &paymentAccountElem{AccountNo: pa.AccountNo, BankCode: pa.BankCode}
		}
	}

	if v, ok := rec.Value(FieldHomeCurrency); ok {
		if amount, ok := v.(CurrencyAmount); ok {
			header.HomeCurrency = &currencyElem{PriceNone: amount.PriceNone}
		}
	}

	if v, ok := rec.Value(FieldForeignCurrency); ok {
		if amount, ok := v.(CurrencyAmount); ok {
			fc := &foreignCurrencyElem{PriceNone: amount.PriceNone}
			if amount.Currency != "" {
				fc.Currency = &typeIDs{IDs: amount.Currency}
			}
			header.ForeignCurrency = fc
		}
	}

	return bankElement{Version: "2.0", Header: header}
}

// listBankRequest asks for existing bank records with a payment date on or
// after dateFrom. Only the intNote values are consumed from the response.
type listBankRequest struct {
	XMLName     xml.Name        `xml:"lst:listBankRequest"`
	Version     string          `xml:"version,attr"`
	BankVersion string          `xml:"bankVersion,attr"`
	Request     requestBankElem `xml:"lst:requestBank"`
}

type requestBankElem struct {
	Filter listFilter `xml:"ftr:filter"`
}

type listFilter struct {
	DateFrom string `xml:"ftr:dateFrom,omitempty"`
}

// automaticLiquidation instructs Pohoda to pair open counter-records against
// one produced document number using a fixed pairing rule.
type automaticLiquidation struct {
	XMLName xml.Name          `xml:"lqd:automaticLiquidation"`
	Version string            `xml:"version,attr"`
	Record  liquidationRecord `xml:"lqd:record"`
	Rule    ruleOfPairing     `xml:"lqd:ruleOfPairing"`
}

type liquidationRecord struct {
	Filter liquidationFilter `xml:"ftr:filter"`
}

type liquidationFilter struct {
	SelectedNumbers selectedNumbers `xml:"ftr:selectedNumbers"`
}

type selectedNumbers struct {
	Number filterNumber `xml:"ftr:number"`
}

type filterNumber struct {
	NumberRequested string `xml:"typ:numberRequested"`
}

type ruleOfPairing struct {
	ID string `xml:"typ:id"`
}
