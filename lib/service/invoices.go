package service

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/getsentry/sentry-go"

	"github.com/qpaymn/bankapp.go/common"
	"github.com/qpaymn/bankapp.go/lib/responses"
	"github.com/qpaymn/bankapp.go/qpay"
)

// Invoice is a resolved, displayable payment request derived from a
// scanned QR code. Read-only after resolution except the additional
// field values and, when partial payment is allowed, the amount.
type Invoice struct {
	InvoiceNo          string            `json:"invoice_no"`
	MerchantName       string            `json:"merchant_name"`
	Amount             string            `json:"amount"`
	CurrencyCode       string            `json:"currency_code"`
	Description        string            `json:"description"`
	PaymentDescription string            `json:"payment_description"`
	ExpireDate         string            `json:"expire_date"`
	StatusText         string            `json:"status_text"`
	PartialFlag        string            `json:"payment_partial_flag"`
	PaymentLines       []PaymentLine     `json:"payment_line"`
	AdditionalFields   []AdditionalField `json:"additional_fields"`
	HTMLData           string            `json:"html_data"`
}

type PaymentLine struct {
	BankName      string `json:"bank_name"`
	AccountNumber string `json:"account_number"`
	AccountName   string `json:"account_name"`
	ObjectType    string `json:"object_type"`
	ObjectID      string `json:"object_id"`
	Selected      string `json:"selected"`
}

type AdditionalField struct {
	FieldType     string `json:"field_type"`
	PlaceHolder   string `json:"place_holder"`
	Required      string `json:"required"`
	CheckRequired string `json:"check_required"`
	Expression    string `json:"expression"`
	ValueType     string `json:"value_type"`
	FieldValue    string `json:"field_value"`
}

// ActivePaymentLine returns the line flagged selected, or the first one
// when none is flagged. Nil for an invoice without payment lines.
func (inv *Invoice) ActivePaymentLine() *PaymentLine {
	for i := range inv.PaymentLines {
		if inv.PaymentLines[i].Selected == "1" {
			return &inv.PaymentLines[i]
		}
	}
	if len(inv.PaymentLines) > 0 {
		return &inv.PaymentLines[0]
	}
	return nil
}

// DecryptQR resolves a scanned QR payload into an Invoice through the
// remote decrypt call. Exactly one request is issued per call and the
// call is never retried. Duplicate scan callbacks arriving while a
// resolve is in flight are dropped: both return values are nil.
func (svc *BankAppService) DecryptQR(ctx context.Context, qrCode string) (inv *Invoice, errRes *responses.ErrorResponse) {
	if !svc.scanGuard.Begin() {
		return nil, nil
	}
	defer svc.scanGuard.End()

	defer func() {
		if r := recover(); r != nil {
			svc.Logger.Errorf("Decrypt panicked: %v", r)
			captureException(r)
			inv, errRes = nil, &responses.GeneralExceptionError
		}
	}()

	snap := svc.ConfigSnapshot()
	res, err := svc.Gateway.PostAction(ctx, common.PathDecryptInfo, &qpay.ActionRequest{
		Type:                 common.ActionTypeDecrypt,
		BankCode:             snap.BankCode,
		BankVerificationCode: common.VerificationCode,
		CustomerCode:         snap.CustomerCode,
		JSONData: qpay.DecryptPayload{
			QRCode:              qrCode,
			TransactionBankCode: snap.BankCode,
		},
	})
	if err != nil {
		svc.Logger.Errorf("Decrypt failed: %v", err)
		return nil, classifyGatewayError(err)
	}

	if res.ResultCode != common.StatusCodeOK {
		return nil, responses.BusinessError(res.ResultCode, res.ResultMsg)
	}
	if res.EmptyPayload() {
		return nil, &responses.EmptyJSONError
	}

	var invoice Invoice
	if err := json.Unmarshal(res.JSONData, &invoice); err != nil {
		svc.Logger.Errorf("Decrypt payload did not parse: %v", err)
		return nil, &responses.InvalidJSONError
	}
	invoice.HTMLData = res.HTMLData
	return &invoice, nil
}

// classifyGatewayError maps a transport failure onto the user-facing
// error taxonomy, in the priority order HTML page, invalid JSON,
// embedded business code, generic connectivity.
func classifyGatewayError(err error) *responses.ErrorResponse {
	if errors.Is(err, qpay.ErrNoBaseURL) {
		return &responses.ConfigMissingError
	}
	var qerr *qpay.Error
	if errors.As(err, &qerr) {
		switch qerr.Kind {
		case qpay.ErrorKindHTML:
			return &responses.EndpointHTMLError
		case qpay.ErrorKindInvalidJSON:
			return &responses.InvalidJSONError
		case qpay.ErrorKindBusiness:
			return responses.BusinessError(qerr.ResultCode, qerr.ResultMsg)
		}
	}
	return &responses.NetworkError
}

func captureException(r interface{}) {
	hub := sentry.CurrentHub()
	if hub.Client() == nil {
		return
	}
	hub.Recover(r)
}
