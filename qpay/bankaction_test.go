package qpay

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateResultKeepsUnknownFields(t *testing.T) {
	body := []byte(`{
		"invoice_id": "INV-9",
		"amount": "1500",
		"payment_line": [{"bank_name":"Khanbank","account_number":"123"}],
		"charge_line": [{"charge_type":"FEE","charge_amount":"10"}]
	}`)

	var result CreateResult
	require.NoError(t, json.Unmarshal(body, &result))
	require.Len(t, result.PaymentLine, 1)
	require.Len(t, result.ChargeLine, 1)
	assert.Contains(t, result.Extra, "invoice_id")
	assert.Contains(t, result.Extra, "amount")

	out, err := json.Marshal(result)
	require.NoError(t, err)

	var roundTrip map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(out, &roundTrip))
	assert.JSONEq(t, `"INV-9"`, string(roundTrip["invoice_id"]))
	assert.JSONEq(t, `"1500"`, string(roundTrip["amount"]))
	assert.JSONEq(t, `[{"bank_name":"Khanbank","account_number":"123"}]`, string(roundTrip["payment_line"]))
}

func TestSettlementLineMarshalEmitsStatusMsgWithStatusCode(t *testing.T) {
	line := SettlementLine{
		Extra: map[string]json.RawMessage{"bank_name": json.RawMessage(`"Khanbank"`)},
	}

	// before settlement fields are set nothing extra appears
	out, err := json.Marshal(line)
	require.NoError(t, err)
	assert.JSONEq(t, `{"bank_name":"Khanbank"}`, string(out))

	line.BankTransactionID = "1"
	line.BankTransactionDate = "2021-04-17 01:01:01"
	line.ExchangeRate = "1"
	line.StatusCode = "0"
	line.StatusMsg = ""

	out, err = json.Marshal(line)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"bank_name":"Khanbank",
		"bank_transaction_id":"1",
		"bank_transaction_date":"2021-04-17 01:01:01",
		"exchange_rate":"1",
		"status_code":"0",
		"status_msg":""
	}`, string(out))
}

func TestConfirmPayloadMergesStatusDefaults(t *testing.T) {
	var result CreateResult
	require.NoError(t, json.Unmarshal([]byte(`{"invoice_id":"INV-9","payment_line":[],"charge_line":[]}`), &result))

	payload := ConfirmPayload{LangCode: "MON", StatusCode: "0", StatusMsg: "", Result: result}
	out, err := json.Marshal(payload)
	require.NoError(t, err)

	var m map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(out, &m))
	assert.JSONEq(t, `"MON"`, string(m["lang_code"]))
	assert.JSONEq(t, `"0"`, string(m["status_code"]))
	assert.JSONEq(t, `""`, string(m["status_msg"]))
	assert.JSONEq(t, `"INV-9"`, string(m["invoice_id"]))
}
