package service

import (
	"context"
	"encoding/json"
	"regexp"
	"strconv"
	"strings"

	"github.com/qpaymn/bankapp.go/common"
	"github.com/qpaymn/bankapp.go/lib/responses"
	"github.com/qpaymn/bankapp.go/qpay"
)

// TransactionRequest is the user-editable view of an Invoice immediately
// before submission.
type TransactionRequest struct {
	Invoice     *Invoice
	Amount      string
	FieldValues map[string]string
}

// NewTransactionRequest seeds the editable state from a resolved
// invoice.
func NewTransactionRequest(inv *Invoice) *TransactionRequest {
	values := make(map[string]string, len(inv.AdditionalFields))
	for _, f := range inv.AdditionalFields {
		if f.FieldType != "" {
			values[f.FieldType] = f.FieldValue
		}
	}
	return &TransactionRequest{Invoice: inv, Amount: inv.Amount, FieldValues: values}
}

// Validate enforces the pre-submission invariants: a positive amount,
// no amount edits unless the invoice allows partial payment, required
// additional fields filled in, and expression checks passing.
func (req *TransactionRequest) Validate() *responses.ErrorResponse {
	amount := cleanAmount(req.Amount)
	if n, err := strconv.ParseFloat(amount, 64); err != nil || n <= 0 {
		return responses.ValidationError("Заавал оруулна уу")
	}
	if req.Invoice.PartialFlag != common.PartialPaymentAllowed && amount != cleanAmount(req.Invoice.Amount) {
		return &responses.AmountLockedError
	}

	for _, f := range req.Invoice.AdditionalFields {
		value := strings.TrimSpace(req.FieldValues[f.FieldType])
		if f.Required == "1" && value == "" {
			return responses.ValidationError(fieldMessage(f, "Заавал оруулна уу"))
		}
		if f.CheckRequired == "1" && f.Expression != "" && value != "" {
			re, err := regexp.Compile(f.Expression)
			if err != nil {
				// server-supplied patterns that do not compile are skipped
				continue
			}
			if !re.MatchString(value) {
				return responses.ValidationError(fieldMessage(f, "Буруу формат"))
			}
		}
	}
	return nil
}

// Submit executes the two-phase create/confirm protocol. Phase 2 runs
// only when phase 1 produced a business payload, neither phase is ever
// retried, and a phase-2 failure after a successful phase 1 is reported
// as-is: the remote side may be left created but unconfirmed, which this
// client cannot repair.
func (svc *BankAppService) Submit(ctx context.Context, req *TransactionRequest) (errRes *responses.ErrorResponse) {
	defer func() {
		if r := recover(); r != nil {
			svc.Logger.Errorf("Submit panicked: %v", r)
			captureException(r)
			errRes = &responses.GeneralExceptionError
		}
	}()

	if errRes := req.Validate(); errRes != nil {
		return errRes
	}
	line := req.Invoice.ActivePaymentLine()
	if line == nil {
		return responses.ValidationError("Төлбөрийн мэдээлэл олдсонгүй")
	}

	snap := svc.ConfigSnapshot()
	amount := cleanAmount(req.Amount)

	// field values are submitted in the order the invoice declared them
	fields := make([]qpay.AdditionalValue, 0, len(req.Invoice.AdditionalFields))
	for _, f := range req.Invoice.AdditionalFields {
		if f.FieldType == "" {
			continue
		}
		fields = append(fields, qpay.AdditionalValue{FieldType: f.FieldType, FieldValue: req.FieldValues[f.FieldType]})
	}

	createRes, err := svc.Gateway.PostAction(ctx, common.PathBankAction, &qpay.ActionRequest{
		Type:         common.ActionTypeCreate,
		BankCode:     snap.BankCode,
		CustomerCode: snap.CustomerCode,
		JSONData: qpay.CreatePayload{
			TransactionBankCode: snap.BankCode,
			TransactionType:     common.TransactionTypePurchase,
			LangCode:            snap.LangCode,
			ObjectType:          line.ObjectType,
			ObjectID:            line.ObjectID,
			Amount:              amount,
			Description:         req.Invoice.Description,
			AdditionalFields:    fields,
		},
	})
	if err != nil || createRes.EmptyPayload() {
		svc.Logger.Errorf("Create phase failed for invoice %s: %v", req.Invoice.InvoiceNo, err)
		return &responses.CreateFailedError
	}

	var created qpay.CreateResult
	if err := json.Unmarshal(createRes.JSONData, &created); err != nil {
		svc.Logger.Errorf("Create response did not parse: %v", err)
		return &responses.CreateFailedError
	}

	confirmRes, err := svc.Gateway.PostAction(ctx, common.PathBankAction, &qpay.ActionRequest{
		Type:         common.ActionTypeConfirm,
		BankCode:     snap.BankCode,
		CustomerCode: snap.CustomerCode,
		JSONData:     normalizeForConfirm(&created, snap.LangCode),
	})
	if err != nil || confirmRes.ResultCode != common.StatusCodeOK {
		svc.Logger.Errorf("Confirm phase failed for invoice %s: %v", req.Invoice.InvoiceNo, err)
		return &responses.ConfirmFailedError
	}

	svc.Logger.Infof("Payment confirmed: invoice %s amount %s", req.Invoice.InvoiceNo, amount)
	return nil
}

// normalizeForConfirm turns a create response into the confirm request
// payload. The confirm endpoint expects a body shaped like an already
// settled response, so fixed placeholder settlement values go onto every
// payment line, charge lines get success status fields, and the top
// level status is reset to success defaults. The input is not modified.
func normalizeForConfirm(created *qpay.CreateResult, langCode string) *qpay.ConfirmPayload {
	out := *created

	out.PaymentLine = make([]qpay.SettlementLine, len(created.PaymentLine))
	for i, l := range created.PaymentLine {
		l.BankTransactionID = common.SettlementTransactionID
		l.BankTransactionDate = common.SettlementTransactionDate
		l.ExchangeRate = common.SettlementExchangeRate
		l.StatusCode = common.StatusCodeOK
		l.StatusMsg = ""
		out.PaymentLine[i] = l
	}

	out.ChargeLine = make([]qpay.SettlementLine, len(created.ChargeLine))
	for i, l := range created.ChargeLine {
		l.StatusCode = common.StatusCodeOK
		l.StatusMsg = ""
		out.ChargeLine[i] = l
	}

	return &qpay.ConfirmPayload{
		LangCode:   langCode,
		StatusCode: common.StatusCodeOK,
		StatusMsg:  "",
		Result:     out,
	}
}

func cleanAmount(amount string) string {
	return strings.ReplaceAll(strings.TrimSpace(amount), ",", "")
}

func fieldMessage(f AdditionalField, fallback string) string {
	if f.PlaceHolder != "" {
		return f.PlaceHolder
	}
	return fallback
}
