package qpay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/qpaymn/bankapp.go/common"
)

const (
	basicAuthUser = "test_bank"
	// Static, non-rotating credentials baked into the test gateway.
	// This is not a security boundary.
	basicAuthPassword      = "1234"
	basicAuthPasswordProd2 = "1234kjsdfhKJDfskdjf"

	defaultTimeout = 30 * time.Second
)

// Client issues authenticated POST requests against the qPay bank web
// service.
type Client struct {
	source ConfigSource
	client *http.Client
}

func NewClient(source ConfigSource) *Client {
	return &Client{
		source: source,
		client: &http.Client{Timeout: defaultTimeout},
	}
}

func (c *Client) PostAction(ctx context.Context, path string, req *ActionRequest) (res *ActionResponse, err error) {
	result := "ok"
	defer func() {
		requestsTotal.WithLabelValues(path, result).Inc()
	}()

	cfg := c.source.GatewayConfig()
	if cfg.BaseURL == "" {
		result = "config_missing"
		return nil, ErrNoBaseURL
	}

	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	url := cfg.BaseURL + common.ServicePath + path

	body, err := json.Marshal(req)
	if err != nil {
		result = ErrorKindNetwork.String()
		return nil, &Error{Kind: ErrorKindNetwork, Err: err}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		result = ErrorKindNetwork.String()
		return nil, &Error{Kind: ErrorKindNetwork, Err: err}
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept-Language", "mn")
	httpReq.SetBasicAuth(basicAuthUser, passwordFor(cfg.Environment))

	httpRes, err := c.client.Do(httpReq)
	if err != nil {
		result = ErrorKindNetwork.String()
		return nil, &Error{Kind: ErrorKindNetwork, Err: err}
	}
	defer httpRes.Body.Close()

	data, err := io.ReadAll(httpRes.Body)
	if err != nil {
		result = ErrorKindNetwork.String()
		return nil, &Error{Kind: ErrorKindNetwork, Err: err}
	}

	trimmed := bytes.TrimSpace(data)
	if bytes.HasPrefix(trimmed, []byte("<")) {
		result = ErrorKindHTML.String()
		return nil, &Error{Kind: ErrorKindHTML, Err: fmt.Errorf("status %d", httpRes.StatusCode)}
	}

	var out ActionResponse
	if err := json.Unmarshal(trimmed, &out); err != nil {
		result = ErrorKindInvalidJSON.String()
		return nil, &Error{Kind: ErrorKindInvalidJSON, Err: err}
	}

	if httpRes.StatusCode < 200 || httpRes.StatusCode >= 300 {
		// error bodies often carry a qPay result code worth surfacing
		if out.ResultCode != "" {
			result = ErrorKindBusiness.String()
			return nil, &Error{Kind: ErrorKindBusiness, ResultCode: out.ResultCode, ResultMsg: out.ResultMsg}
		}
		result = ErrorKindNetwork.String()
		return nil, &Error{Kind: ErrorKindNetwork, Err: fmt.Errorf("unexpected status %d", httpRes.StatusCode)}
	}

	return &out, nil
}

func passwordFor(environment string) string {
	if environment == common.EnvProd2 {
		return basicAuthPasswordProd2
	}
	return basicAuthPassword
}
