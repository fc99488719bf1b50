package qpay

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qpaymn/bankapp.go/common"
)

type staticSource Config

func (s staticSource) GatewayConfig() Config {
	return Config(s)
}

func newTestClient(baseURL, environment string) *Client {
	return NewClient(staticSource{BaseURL: baseURL, Environment: environment})
}

func TestPostActionSuccess(t *testing.T) {
	var gotReq ActionRequest
	var gotPath, gotLang, gotUser, gotPass string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotLang = r.Header.Get("Accept-Language")
		gotUser, gotPass, _ = r.BasicAuth()
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"result_code":"0","result_msg":"SUCCESS","json_data":{"amount":"1500"},"html_data":"<b>x</b>"}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL, common.EnvDev)
	res, err := client.PostAction(context.Background(), common.PathDecryptInfo, &ActionRequest{
		Type:                 common.ActionTypeDecrypt,
		BankCode:             "050000",
		BankVerificationCode: common.VerificationCode,
		CustomerCode:         "cust-1",
		JSONData:             DecryptPayload{QRCode: "qr-data", TransactionBankCode: "050000"},
	})
	require.NoError(t, err)

	assert.Equal(t, "/WebServiceQPayBank.asmx/qPay_decryptInfo", gotPath)
	assert.Equal(t, "mn", gotLang)
	assert.Equal(t, "test_bank", gotUser)
	assert.Equal(t, "1234", gotPass)
	assert.Equal(t, common.ActionTypeDecrypt, gotReq.Type)
	assert.Equal(t, "050000", gotReq.BankCode)

	assert.Equal(t, "0", res.ResultCode)
	assert.Equal(t, "SUCCESS", res.ResultMsg)
	assert.Equal(t, "<b>x</b>", res.HTMLData)
	assert.False(t, res.EmptyPayload())
}

func TestPostActionProd2Password(t *testing.T) {
	var gotPass string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, gotPass, _ = r.BasicAuth()
		w.Write([]byte(`{"result_code":"0"}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL, common.EnvProd2)
	_, err := client.PostAction(context.Background(), common.PathBankAction, &ActionRequest{})
	require.NoError(t, err)
	assert.Equal(t, "1234kjsdfhKJDfskdjf", gotPass)
}

func TestPostActionNoBaseURL(t *testing.T) {
	client := newTestClient("", common.EnvDev)
	_, err := client.PostAction(context.Background(), common.PathDecryptInfo, &ActionRequest{})
	assert.True(t, errors.Is(err, ErrNoBaseURL))
}

func TestPostActionHTMLBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("<html><body>502 Bad Gateway</body></html>"))
	}))
	defer server.Close()

	client := newTestClient(server.URL, common.EnvDev)
	_, err := client.PostAction(context.Background(), common.PathDecryptInfo, &ActionRequest{})

	var qerr *Error
	require.True(t, errors.As(err, &qerr))
	assert.Equal(t, ErrorKindHTML, qerr.Kind)
}

func TestPostActionInvalidJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("result_code=0"))
	}))
	defer server.Close()

	client := newTestClient(server.URL, common.EnvDev)
	_, err := client.PostAction(context.Background(), common.PathDecryptInfo, &ActionRequest{})

	var qerr *Error
	require.True(t, errors.As(err, &qerr))
	assert.Equal(t, ErrorKindInvalidJSON, qerr.Kind)
}

func TestPostActionErrorStatusWithBusinessBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"result_code":"31","result_msg":"Invalid QR"}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL, common.EnvDev)
	_, err := client.PostAction(context.Background(), common.PathDecryptInfo, &ActionRequest{})

	var qerr *Error
	require.True(t, errors.As(err, &qerr))
	assert.Equal(t, ErrorKindBusiness, qerr.Kind)
	assert.Equal(t, "31", qerr.ResultCode)
	assert.Equal(t, "Invalid QR", qerr.ResultMsg)
}

func TestPostActionErrorStatusWithoutResultCode(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL, common.EnvDev)
	_, err := client.PostAction(context.Background(), common.PathDecryptInfo, &ActionRequest{})

	var qerr *Error
	require.True(t, errors.As(err, &qerr))
	assert.Equal(t, ErrorKindNetwork, qerr.Kind)
}

func TestPostActionConnectionFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := newTestClient(server.URL, common.EnvDev)
	_, err := client.PostAction(context.Background(), common.PathDecryptInfo, &ActionRequest{})

	var qerr *Error
	require.True(t, errors.As(err, &qerr))
	assert.Equal(t, ErrorKindNetwork, qerr.Kind)
}

func TestEmptyPayload(t *testing.T) {
	assert.True(t, (&ActionResponse{}).EmptyPayload())
	assert.True(t, (&ActionResponse{JSONData: []byte(`null`)}).EmptyPayload())
	assert.True(t, (&ActionResponse{JSONData: []byte(`{}`)}).EmptyPayload())
	assert.False(t, (&ActionResponse{JSONData: []byte(`{"amount":"1"}`)}).EmptyPayload())
}
