package integration_tests

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"

	"github.com/labstack/echo/v4"

	"github.com/qpaymn/bankapp.go/common"
	"github.com/qpaymn/bankapp.go/qpay"
)

// recordedRequest is one call captured by the mock qPay service.
type recordedRequest struct {
	Path     string
	Envelope qpay.ActionRequest
	RawJSON  json.RawMessage
	Username string
	Password string
}

// mockQPayService fakes the three qPay endpoints on a local listener.
// Responses are queued per endpoint path and served in order; once a
// queue drains the endpoint answers with an empty success envelope.
type mockQPayService struct {
	server *httptest.Server

	mu        sync.Mutex
	requests  []recordedRequest
	responses map[string][]mockResponse
}

type mockResponse struct {
	status int
	body   string
}

func newMockQPayService() *mockQPayService {
	m := &mockQPayService{
		responses: map[string][]mockResponse{},
	}
	e := echo.New()
	e.HideBanner = true
	for _, path := range []string{common.PathDecryptInfo, common.PathBankAction, common.PathCustomerAction} {
		e.POST(common.ServicePath+path, m.handle(path))
	}
	m.server = httptest.NewServer(e)
	return m
}

func (m *mockQPayService) handle(path string) echo.HandlerFunc {
	return func(c echo.Context) error {
		rec := recordedRequest{Path: path}
		rec.Username, rec.Password, _ = c.Request().BasicAuth()
		if err := json.NewDecoder(c.Request().Body).Decode(&rec.Envelope); err != nil {
			return c.String(http.StatusBadRequest, err.Error())
		}
		if rec.Envelope.JSONData != nil {
			raw, err := json.Marshal(rec.Envelope.JSONData)
			if err != nil {
				return c.String(http.StatusBadRequest, err.Error())
			}
			rec.RawJSON = raw
		}

		m.mu.Lock()
		m.requests = append(m.requests, rec)
		queue := m.responses[path]
		resp := mockResponse{status: http.StatusOK, body: `{"result_code":"0","result_msg":"success","json_data":{}}`}
		if len(queue) > 0 {
			resp = queue[0]
			m.responses[path] = queue[1:]
		}
		m.mu.Unlock()

		return c.Blob(resp.status, echo.MIMEApplicationJSON, []byte(resp.body))
	}
}

// Queue appends a canned response for an endpoint path.
func (m *mockQPayService) Queue(path string, status int, body string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses[path] = append(m.responses[path], mockResponse{status: status, body: body})
}

// QueuePayload wraps json_data into a successful envelope and queues it.
func (m *mockQPayService) QueuePayload(path string, jsonData string) {
	m.Queue(path, http.StatusOK, `{"result_code":"0","result_msg":"success","json_data":`+jsonData+`}`)
}

// Requests returns a copy of every request captured so far.
func (m *mockQPayService) Requests() []recordedRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]recordedRequest, len(m.requests))
	copy(out, m.requests)
	return out
}

// RequestsFor filters captured requests by endpoint path.
func (m *mockQPayService) RequestsFor(path string) []recordedRequest {
	var out []recordedRequest
	for _, r := range m.Requests() {
		if r.Path == path {
			out = append(out, r)
		}
	}
	return out
}

func (m *mockQPayService) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests = nil
	m.responses = map[string][]mockResponse{}
}

func (m *mockQPayService) URL() string {
	return m.server.URL
}

func (m *mockQPayService) Close() {
	m.server.Close()
}
