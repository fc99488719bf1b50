package service

import (
	"context"
	"encoding/json"
	"strconv"
	"sync"
	"time"

	"github.com/qpaymn/bankapp.go/common"
	"github.com/qpaymn/bankapp.go/lib/responses"
	"github.com/qpaymn/bankapp.go/qpay"
)

// DateRange bounds a history query, inclusive on both ends.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// DefaultDateRange covers the last seven days.
func DefaultDateRange(now time.Time) DateRange {
	return DateRange{Start: now.AddDate(0, 0, -7), End: now}
}

// SyncCursor is the pagination state of the history list: how many pages
// have completed, whether more may exist, and the active date range.
type SyncCursor struct {
	PagesDone int
	HasMore   bool
	Range     DateRange
}

// PaymentRecord is one row of transaction history, immutable once mapped
// from the wire response.
type PaymentRecord struct {
	InvoiceID    string
	PaymentID    string
	Status       string
	StatusColor  string
	Name         string
	Description  string
	CurrencyCode string
	Amount       string
	Date         string
	ObjectType   string
	ObjectID     string
}

type historyState int

const (
	historyIdle historyState = iota
	historyLoading
	historyLoadingMore
)

// PaymentHistory owns the paginated transaction list. Loads are
// cooperative: any call that finds the engine busy is a silent no-op,
// never queued. Pages are appended in request order and records keep the
// server-returned order; duplicates across pages are not filtered.
type PaymentHistory struct {
	svc *BankAppService

	mu      sync.Mutex
	state   historyState
	items   []PaymentRecord
	cursor  SyncCursor
	lastErr *responses.ErrorResponse
}

// NewPaymentHistory starts with an empty list over the default date
// range.
func (svc *BankAppService) NewPaymentHistory() *PaymentHistory {
	return &PaymentHistory{
		svc:    svc,
		cursor: SyncCursor{HasMore: true, Range: DefaultDateRange(time.Now())},
	}
}

// LoadInitial replaces the list with the first page of the active date
// range. A failure clears the list and records the error; a concurrent
// call while any load is running is a no-op.
func (h *PaymentHistory) LoadInitial(ctx context.Context) {
	h.mu.Lock()
	if h.state != historyIdle {
		h.mu.Unlock()
		return
	}
	h.state = historyLoading
	h.lastErr = nil
	h.cursor.PagesDone = 0
	rng := h.cursor.Range
	h.mu.Unlock()

	records, errRes := h.fetchPage(ctx, rng, 1)

	h.mu.Lock()
	defer h.mu.Unlock()
	h.state = historyIdle
	if errRes != nil {
		h.items = nil
		h.cursor.HasMore = false
		h.lastErr = errRes
		return
	}
	h.items = records
	h.cursor.PagesDone = 1
	h.cursor.HasMore = len(records) >= common.HistoryPageSize
}

// LoadMore appends the next page. It is a no-op while any load is
// running or when the last page was already reached, and a failure stops
// silently: the caller retries through a later LoadMore or Refresh.
func (h *PaymentHistory) LoadMore(ctx context.Context) {
	h.mu.Lock()
	if h.state != historyIdle || !h.cursor.HasMore {
		h.mu.Unlock()
		return
	}
	h.state = historyLoadingMore
	page := h.cursor.PagesDone + 1
	rng := h.cursor.Range
	h.mu.Unlock()

	records, errRes := h.fetchPage(ctx, rng, page)

	h.mu.Lock()
	defer h.mu.Unlock()
	h.state = historyIdle
	if errRes != nil {
		return
	}
	h.items = append(h.items, records...)
	h.cursor.PagesDone = page
	h.cursor.HasMore = len(records) >= common.HistoryPageSize
}

// Refresh rewinds the cursor and reloads the first page, replacing the
// list wholesale.
func (h *PaymentHistory) Refresh(ctx context.Context) {
	h.mu.Lock()
	if h.state != historyIdle {
		h.mu.Unlock()
		return
	}
	h.cursor.PagesDone = 0
	h.cursor.HasMore = true
	h.mu.Unlock()

	h.LoadInitial(ctx)
}

// SetDateRange replaces the active range and reloads from scratch.
func (h *PaymentHistory) SetDateRange(ctx context.Context, rng DateRange) {
	h.mu.Lock()
	if h.state != historyIdle {
		h.mu.Unlock()
		return
	}
	h.cursor.Range = rng
	h.cursor.PagesDone = 0
	h.cursor.HasMore = true
	h.mu.Unlock()

	h.LoadInitial(ctx)
}

func (h *PaymentHistory) fetchPage(ctx context.Context, rng DateRange, page int) ([]PaymentRecord, *responses.ErrorResponse) {
	snap := h.svc.ConfigSnapshot()
	res, err := h.svc.Gateway.PostAction(ctx, common.PathCustomerAction, &qpay.ActionRequest{
		Type:                 common.ActionTypeHistory,
		BankCode:             snap.BankCode,
		BankVerificationCode: common.VerificationCode,
		CustomerCode:         snap.CustomerCode,
		JSONData: qpay.HistoryPayload{
			LangCode:   snap.LangCode,
			StartDate:  rng.Start.Format(common.DateLayout),
			EndDate:    rng.End.Format(common.DateLayout),
			PageLimit:  strconv.Itoa(common.HistoryPageSize),
			PageNumber: page,
		},
	})
	if err != nil {
		h.svc.Logger.Errorf("History page %d failed: %v", page, err)
		return nil, classifyGatewayError(err)
	}

	var result qpay.HistoryResult
	if !res.EmptyPayload() {
		if err := json.Unmarshal(res.JSONData, &result); err != nil {
			h.svc.Logger.Errorf("History payload did not parse: %v", err)
			return nil, &responses.InvalidJSONError
		}
	}

	records := make([]PaymentRecord, 0, len(result.PaymentLine))
	for _, row := range result.PaymentLine {
		records = append(records, PaymentRecord{
			InvoiceID:    row.InvoiceID,
			PaymentID:    row.PaymentID,
			Status:       row.PaymentStatus,
			StatusColor:  row.ColorCode,
			Name:         row.PaymentName,
			Description:  row.Description,
			CurrencyCode: row.CurrencyCode,
			Amount:       row.PaymentAmount.String(),
			Date:         row.PaymentDate,
			ObjectType:   row.ObjectType,
			ObjectID:     row.ObjectID,
		})
	}
	return records, nil
}

// Items returns a copy of the current record list.
func (h *PaymentHistory) Items() []PaymentRecord {
	h.mu.Lock()
	defer h.mu.Unlock()
	items := make([]PaymentRecord, len(h.items))
	copy(items, h.items)
	return items
}

func (h *PaymentHistory) Cursor() SyncCursor {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.cursor
}

func (h *PaymentHistory) IsLoading() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.state == historyLoading
}

func (h *PaymentHistory) IsLoadingMore() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.state == historyLoadingMore
}

// Err returns the error recorded by the last initial load, nil after a
// success. LoadMore failures never surface here.
func (h *PaymentHistory) Err() *responses.ErrorResponse {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.lastErr
}
