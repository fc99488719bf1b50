package qpay

import (
	"context"
)

//go:generate mockgen -destination=mocks/mock_gateway.go -package=mock_qpay github.com/qpaymn/bankapp.go/qpay GatewayWrapper

// GatewayWrapper is the single entry point to the remote qPay service.
// Implementations never panic past this boundary: every failure comes
// back as an error, classified as *Error where possible.
type GatewayWrapper interface {
	PostAction(ctx context.Context, path string, req *ActionRequest) (*ActionResponse, error)
}

// Config is the connection settings for a single request, read once at
// the start of every call so a configuration change never affects a
// request already in flight.
type Config struct {
	BaseURL     string
	Environment string
}

// ConfigSource yields the current gateway configuration.
type ConfigSource interface {
	GatewayConfig() Config
}
