package qpay

import (
	"encoding/json"
)

// SettlementLine is one payment or charge line of a create response. The
// confirm phase resubmits these lines with settlement fields filled in,
// so any line field this client does not model is kept in Extra and
// survives the round trip untouched.
type SettlementLine struct {
	BankTransactionID   string
	BankTransactionDate string
	ExchangeRate        string
	StatusCode          string
	StatusMsg           string

	Extra map[string]json.RawMessage
}

func (l *SettlementLine) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	popString(raw, "bank_transaction_id", &l.BankTransactionID)
	popString(raw, "bank_transaction_date", &l.BankTransactionDate)
	popString(raw, "exchange_rate", &l.ExchangeRate)
	popString(raw, "status_code", &l.StatusCode)
	popString(raw, "status_msg", &l.StatusMsg)
	l.Extra = raw
	return nil
}

func (l SettlementLine) MarshalJSON() ([]byte, error) {
	out := make(map[string]json.RawMessage, len(l.Extra)+5)
	for k, v := range l.Extra {
		out[k] = v
	}
	putString(out, "bank_transaction_id", l.BankTransactionID, false)
	putString(out, "bank_transaction_date", l.BankTransactionDate, false)
	putString(out, "exchange_rate", l.ExchangeRate, false)
	putString(out, "status_code", l.StatusCode, false)
	// status_msg is reset to the empty string during normalization and
	// must still appear on the wire once the status code is set.
	putString(out, "status_msg", l.StatusMsg, l.StatusCode != "")
	return json.Marshal(out)
}

// CreateResult is the json_data of a create (type "1") response. Unknown
// top-level fields pass through Extra so the confirm payload carries the
// full response body back to the service.
type CreateResult struct {
	PaymentLine []SettlementLine
	ChargeLine  []SettlementLine

	Extra map[string]json.RawMessage
}

func (r *CreateResult) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if v, ok := raw["payment_line"]; ok {
		if err := json.Unmarshal(v, &r.PaymentLine); err != nil {
			return err
		}
		delete(raw, "payment_line")
	}
	if v, ok := raw["charge_line"]; ok {
		if err := json.Unmarshal(v, &r.ChargeLine); err != nil {
			return err
		}
		delete(raw, "charge_line")
	}
	r.Extra = raw
	return nil
}

func (r CreateResult) MarshalJSON() ([]byte, error) {
	out := make(map[string]json.RawMessage, len(r.Extra)+2)
	for k, v := range r.Extra {
		out[k] = v
	}
	pl, err := json.Marshal(r.PaymentLine)
	if err != nil {
		return nil, err
	}
	out["payment_line"] = pl
	cl, err := json.Marshal(r.ChargeLine)
	if err != nil {
		return nil, err
	}
	out["charge_line"] = cl
	return json.Marshal(out)
}

// ConfirmPayload is the json_data of a confirm (type "2") request: the
// normalized create result with the status fields reset to success
// defaults.
type ConfirmPayload struct {
	LangCode   string
	StatusCode string
	StatusMsg  string
	Result     CreateResult
}

func (p ConfirmPayload) MarshalJSON() ([]byte, error) {
	data, err := json.Marshal(p.Result)
	if err != nil {
		return nil, err
	}
	var out map[string]json.RawMessage
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	putString(out, "lang_code", p.LangCode, true)
	putString(out, "status_code", p.StatusCode, true)
	putString(out, "status_msg", p.StatusMsg, true)
	return json.Marshal(out)
}

func popString(raw map[string]json.RawMessage, key string, dst *string) {
	v, ok := raw[key]
	if !ok {
		return
	}
	if json.Unmarshal(v, dst) == nil {
		delete(raw, key)
	}
}

func putString(out map[string]json.RawMessage, key, value string, force bool) {
	if value == "" && !force {
		return
	}
	data, _ := json.Marshal(value)
	out[key] = data
}
