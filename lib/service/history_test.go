package service

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qpaymn/bankapp.go/common"
	"github.com/qpaymn/bankapp.go/qpay"
)

// historyPage builds a type-"5" response with count records, numbered
// from first.
func historyPage(first, count int) *qpay.ActionResponse {
	rows := make([]map[string]interface{}, 0, count)
	for i := 0; i < count; i++ {
		rows = append(rows, map[string]interface{}{
			"invoice_id":     fmt.Sprintf("INV-%d", first+i),
			"payment_id":     fmt.Sprintf("PAY-%d", first+i),
			"payment_status": "PAID",
			"payment_name":   "Coffee Corner",
			"currency_code":  "MNT",
			"payment_amount": 4500,
			"payment_date":   "2026-08-30 12:00:00",
			"color_code":     "#00AA00",
		})
	}
	data, _ := json.Marshal(map[string]interface{}{"payment_line": rows})
	return &qpay.ActionResponse{ResultCode: "0", JSONData: data}
}

func TestLoadInitialThenLoadMore(t *testing.T) {
	svc, gateway := newTestService(t)
	history := svc.NewPaymentHistory()

	var pages []qpay.HistoryPayload
	gateway.EXPECT().
		PostAction(gomock.Any(), common.PathCustomerAction, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, req *qpay.ActionRequest) (*qpay.ActionResponse, error) {
			payload := req.JSONData.(qpay.HistoryPayload)
			pages = append(pages, payload)
			if payload.PageNumber == 1 {
				return historyPage(0, 20), nil
			}
			return historyPage(20, 7), nil
		}).
		Times(2)

	history.LoadInitial(context.Background())
	assert.Len(t, history.Items(), 20)
	assert.True(t, history.Cursor().HasMore)
	assert.Equal(t, 1, history.Cursor().PagesDone)
	assert.False(t, history.IsLoading())
	assert.Nil(t, history.Err())

	history.LoadMore(context.Background())
	items := history.Items()
	assert.Len(t, items, 27)
	assert.False(t, history.Cursor().HasMore)
	assert.Equal(t, 2, history.Cursor().PagesDone)

	// server order is preserved across the page boundary
	assert.Equal(t, "INV-19", items[19].InvoiceID)
	assert.Equal(t, "INV-20", items[20].InvoiceID)
	assert.Equal(t, "4500", items[0].Amount)

	// hasMore is exhausted: another LoadMore must not hit the gateway
	history.LoadMore(context.Background())
	assert.Len(t, history.Items(), 27)

	require.Len(t, pages, 2)
	assert.Equal(t, "20", pages[0].PageLimit)
	assert.Equal(t, 1, pages[0].PageNumber)
	assert.Equal(t, 2, pages[1].PageNumber)
}

func TestLoadInitialFailureClearsList(t *testing.T) {
	svc, gateway := newTestService(t)
	history := svc.NewPaymentHistory()

	gomock.InOrder(
		gateway.EXPECT().
			PostAction(gomock.Any(), common.PathCustomerAction, gomock.Any()).
			Return(historyPage(0, 5), nil),
		gateway.EXPECT().
			PostAction(gomock.Any(), common.PathCustomerAction, gomock.Any()).
			Return(nil, &qpay.Error{Kind: qpay.ErrorKindNetwork}),
	)

	history.LoadInitial(context.Background())
	require.Len(t, history.Items(), 5)

	history.Refresh(context.Background())
	assert.Empty(t, history.Items())
	assert.False(t, history.Cursor().HasMore)
	require.NotNil(t, history.Err())
	assert.Equal(t, "NETWORK_ERROR", history.Err().Code)
	assert.False(t, history.IsLoading())
}

func TestLoadMoreFailureIsSilent(t *testing.T) {
	svc, gateway := newTestService(t)
	history := svc.NewPaymentHistory()

	gomock.InOrder(
		gateway.EXPECT().
			PostAction(gomock.Any(), common.PathCustomerAction, gomock.Any()).
			Return(historyPage(0, 20), nil),
		gateway.EXPECT().
			PostAction(gomock.Any(), common.PathCustomerAction, gomock.Any()).
			Return(nil, &qpay.Error{Kind: qpay.ErrorKindNetwork}),
		gateway.EXPECT().
			PostAction(gomock.Any(), common.PathCustomerAction, gomock.Any()).
			Return(historyPage(20, 3), nil),
	)

	history.LoadInitial(context.Background())
	history.LoadMore(context.Background())

	// the list is untouched, no error surfaces, and the page stays
	// retriable
	assert.Len(t, history.Items(), 20)
	assert.Nil(t, history.Err())
	assert.True(t, history.Cursor().HasMore)
	assert.False(t, history.IsLoadingMore())

	history.LoadMore(context.Background())
	assert.Len(t, history.Items(), 23)
}

func TestLoadMoreSuppressesDuplicateCalls(t *testing.T) {
	svc, gateway := newTestService(t)
	history := svc.NewPaymentHistory()

	gateway.EXPECT().
		PostAction(gomock.Any(), common.PathCustomerAction, gomock.Any()).
		Return(historyPage(0, 20), nil)
	history.LoadInitial(context.Background())

	entered := make(chan struct{})
	release := make(chan struct{})
	gateway.EXPECT().
		PostAction(gomock.Any(), common.PathCustomerAction, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, _ *qpay.ActionRequest) (*qpay.ActionResponse, error) {
			close(entered)
			<-release
			return historyPage(20, 2), nil
		}).
		Times(1)

	done := make(chan struct{})
	go func() {
		defer close(done)
		history.LoadMore(context.Background())
	}()

	<-entered
	// second call before the first resolves: exactly one request stays
	// outstanding
	history.LoadMore(context.Background())

	close(release)
	<-done
	assert.Len(t, history.Items(), 22)
	assert.Equal(t, 2, history.Cursor().PagesDone)
}

func TestRefreshMatchesFreshLoadInitial(t *testing.T) {
	svc, gateway := newTestService(t)

	gateway.EXPECT().
		PostAction(gomock.Any(), common.PathCustomerAction, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, req *qpay.ActionRequest) (*qpay.ActionResponse, error) {
			if req.JSONData.(qpay.HistoryPayload).PageNumber == 1 {
				return historyPage(0, 20), nil
			}
			return historyPage(20, 4), nil
		}).
		AnyTimes()

	loaded := svc.NewPaymentHistory()
	loaded.LoadInitial(context.Background())
	loaded.LoadMore(context.Background())
	require.Len(t, loaded.Items(), 24)

	loaded.Refresh(context.Background())

	fresh := svc.NewPaymentHistory()
	fresh.LoadInitial(context.Background())

	assert.Equal(t, fresh.Items(), loaded.Items())
	assert.Equal(t, fresh.Cursor().PagesDone, loaded.Cursor().PagesDone)
	assert.Equal(t, fresh.Cursor().HasMore, loaded.Cursor().HasMore)
}

func TestSetDateRangeReloads(t *testing.T) {
	svc, gateway := newTestService(t)
	history := svc.NewPaymentHistory()

	var got qpay.HistoryPayload
	gateway.EXPECT().
		PostAction(gomock.Any(), common.PathCustomerAction, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, req *qpay.ActionRequest) (*qpay.ActionResponse, error) {
			got = req.JSONData.(qpay.HistoryPayload)
			return historyPage(0, 3), nil
		})

	rng := DateRange{
		Start: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC),
	}
	history.SetDateRange(context.Background(), rng)

	assert.Equal(t, "2026-08-01", got.StartDate)
	assert.Equal(t, "2026-08-31", got.EndDate)
	assert.Equal(t, 1, got.PageNumber)
	assert.Equal(t, rng, history.Cursor().Range)
	assert.Len(t, history.Items(), 3)
}
