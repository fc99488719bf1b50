package qpay

import (
	"encoding/json"
)

// ActionRequest is the envelope every qPay endpoint accepts.
type ActionRequest struct {
	Type                 string      `json:"type"`
	BankCode             string      `json:"bank_code"`
	BankVerificationCode string      `json:"bank_verification_code"`
	CustomerCode         string      `json:"customer_code"`
	JSONData             interface{} `json:"json_data"`
}

// ActionResponse is the envelope every qPay endpoint returns. A result
// code of "0" denotes business success regardless of the HTTP status.
type ActionResponse struct {
	ResultCode string          `json:"result_code"`
	ResultMsg  string          `json:"result_msg"`
	JSONData   json.RawMessage `json:"json_data"`
	HTMLData   string          `json:"html_data"`
}

// EmptyPayload reports whether json_data is absent, null or an empty
// object.
func (r *ActionResponse) EmptyPayload() bool {
	if len(r.JSONData) == 0 {
		return true
	}
	var m map[string]json.RawMessage
	if err := json.Unmarshal(r.JSONData, &m); err != nil {
		return false
	}
	return len(m) == 0
}

// DecryptPayload is the json_data of a qPay_decryptInfo request.
type DecryptPayload struct {
	QRCode              string `json:"qPay_QRcode"`
	TransactionBankCode string `json:"transaction_bank_code"`
}

// AdditionalValue is a filled-in additional field submitted with a create
// action.
type AdditionalValue struct {
	FieldType  string `json:"field_type"`
	FieldValue string `json:"field_value"`
}

// CreatePayload is the json_data of a create (type "1") bank action.
type CreatePayload struct {
	TransactionBankCode string            `json:"transaction_bank_code"`
	TransactionType     string            `json:"transaction_type"`
	LangCode            string            `json:"lang_code"`
	QRCode              string            `json:"qPay_QRcode"`
	ObjectType          string            `json:"object_type"`
	ObjectID            string            `json:"object_id"`
	Amount              string            `json:"amount"`
	Description         string            `json:"description"`
	AdditionalFields    []AdditionalValue `json:"additional_fields"`
}

// HistoryPayload is the json_data of a history (type "5") customer
// action. page_limit is a string on the wire while page_number is numeric.
type HistoryPayload struct {
	LangCode   string `json:"lang_code"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
	PageLimit  string `json:"page_limit"`
	PageNumber int    `json:"page_number"`
}

// PaymentRow is one history record as returned by qPay_customerAction.
type PaymentRow struct {
	InvoiceID     string      `json:"invoice_id"`
	PaymentID     string      `json:"payment_id"`
	PaymentStatus string      `json:"payment_status"`
	PaymentName   string      `json:"payment_name"`
	CurrencyCode  string      `json:"currency_code"`
	PaymentAmount json.Number `json:"payment_amount"`
	Description   string      `json:"description"`
	PaymentDate   string      `json:"payment_date"`
	ColorCode     string      `json:"color_code"`
	ObjectType    string      `json:"object_type"`
	ObjectID      string      `json:"object_id"`
}

// HistoryResult is the json_data of a history response.
type HistoryResult struct {
	PaymentLine []PaymentRow `json:"payment_line"`
}
