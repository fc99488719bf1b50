package qpay

import (
	"errors"
	"fmt"
)

// ErrNoBaseURL is returned before any request is made when no base URL
// can be resolved for the current environment.
var ErrNoBaseURL = errors.New("qpay: no base url configured")

type ErrorKind int

const (
	// ErrorKindNetwork covers connectivity failures and unexpected HTTP
	// statuses without a parseable business body.
	ErrorKindNetwork ErrorKind = iota
	// ErrorKindHTML means the endpoint answered with an HTML page
	// (reverse-proxy error pages, wrong environment).
	ErrorKindHTML
	// ErrorKindInvalidJSON means the body was neither HTML nor valid JSON.
	ErrorKindInvalidJSON
	// ErrorKindBusiness means a transport-level failure carried an
	// embedded qPay result code.
	ErrorKindBusiness
)

func (k ErrorKind) String() string {
	switch k {
	case ErrorKindHTML:
		return "html_error"
	case ErrorKindInvalidJSON:
		return "invalid_json"
	case ErrorKindBusiness:
		return "business_error"
	default:
		return "network_error"
	}
}

// Error is a classified transport failure. Business failures carry the
// remote result code and message verbatim.
type Error struct {
	Kind       ErrorKind
	ResultCode string
	ResultMsg  string
	Err        error
}

func (e *Error) Error() string {
	if e.Kind == ErrorKindBusiness {
		return fmt.Sprintf("qpay: %s: %s (%s)", e.Kind, e.ResultMsg, e.ResultCode)
	}
	if e.Err != nil {
		return fmt.Sprintf("qpay: %s: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("qpay: %s", e.Kind)
}

func (e *Error) Unwrap() error {
	return e.Err
}
