package pohoda

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const submitOKResponse = `<?xml version="1.0" encoding="Windows-1250"?>
<rsp:responsePack xmlns:rsp="http://www.stormware.cz/schema/version_2/response.xsd" state="ok" version="2.0" id="01">
  <rsp:responsePackItem state="ok" version="2.0" id="001">
    <bnk:bankResponse xmlns:bnk="http://www.stormware.cz/schema/version_2/bank.xsd" state="ok">
      <rdc:producedDetails xmlns:rdc="http://www.stormware.cz/schema/version_2/documentresponse.xsd">
        <rdc:id>123</rdc:id>
        <rdc:number>KB0010003</rdc:number>
        <rdc:actionType>add</rdc:actionType>
      </rdc:producedDetails>
    </bnk:bankResponse>
  </rsp:responsePackItem>
</rsp:responsePack>`

const submitErrorResponse = `<?xml version="1.0" encoding="Windows-1250"?>
<rsp:responsePack xmlns:rsp="http://www.stormware.cz/schema/version_2/response.xsd" state="ok" version="2.0" id="01">
  <rsp:responsePackItem state="error" version="2.0" id="001" note="record rejected">
    <rdc:importDetails xmlns:rdc="http://www.stormware.cz/schema/version_2/documentresponse.xsd">
      <rdc:detail>
        <rdc:state>error</rdc:state>
        <rdc:errno>11</rdc:errno>
        <rdc:note>Datum plateb. neni platne.</rdc:note>
      </rdc:detail>
    </rdc:importDetails>
  </rsp:responsePackItem>
</rsp:responsePack>`

func TestParseSubmitResponse_Produced(t *testing.T) {
	resp, err := parseSubmitResponse([]byte(submitOKResponse))
	require.NoError(t, err)

	require.NotNil(t, resp.Produced)
	assert.Equal(t, "123", resp.Produced.ID)
	assert.Equal(t, "KB0010003", resp.Produced.Number)
	assert.Equal(t, "add", resp.Produced.Action)
	assert.Empty(t, resp.Errors)
}

func TestParseSubmitResponse_FieldErrors(t *testing.T) {
	resp, err := parseSubmitResponse([]byte(submitErrorResponse))
	require.NoError(t, err)

	assert.Nil(t, resp.Produced)
	require.Len(t, resp.Errors, 2)
	assert.Equal(t, "11: Datum plateb. neni platne.", resp.Errors[0])
	assert.Equal(t, "record rejected", resp.Errors[1])
}

func TestParseIntNotes(t *testing.T) {
	body := `<?xml version="1.0"?>
<rsp:responsePack xmlns:rsp="http://www.stormware.cz/schema/version_2/response.xsd" state="ok">
  <rsp:responsePackItem state="ok">
    <lst:listBank xmlns:lst="http://www.stormware.cz/schema/version_2/list.xsd">
      <lst:bank>
        <bnk:bankHeader xmlns:bnk="http://www.stormware.cz/schema/version_2/bank.xsd">
          <bnk:intNote>Imported: kb-pohoda-sync KB-1</bnk:intNote>
        </bnk:bankHeader>
      </lst:bank>
      <lst:bank>
        <bnk:bankHeader xmlns:bnk="http://www.stormware.cz/schema/version_2/bank.xsd">
          <bnk:intNote>Imported: kb-pohoda-sync KB-2</bnk:intNote>
        </bnk:bankHeader>
      </lst:bank>
    </lst:listBank>
  </rsp:responsePackItem>
</rsp:responsePack>`

	notes, err := parseIntNotes([]byte(body))
	require.NoError(t, err)
	assert.Equal(t, []string{
		"Imported: kb-pohoda-sync KB-1",
		"Imported: kb-pohoda-sync KB-2",
	}, notes)
}

func TestParseIntNotes_Empty(t *testing.T) {
	notes, err := parseIntNotes([]byte(`<responsePack state="ok"></responsePack>`))
	require.NoError(t, err)
	assert.Empty(t, notes)
}
