package service

import (
	"github.com/qpaymn/bankapp.go/common"
)

type Config struct {
	Environment      string `envconfig:"ENVIRONMENT" default:"dev"`
	BaseURL          string `envconfig:"BASE_URL"`
	LogFilePath      string `envconfig:"LOG_FILE_PATH"`
	SentryDSN        string `envconfig:"SENTRY_DSN"`
	EnablePrometheus bool   `envconfig:"ENABLE_PROMETHEUS" default:"false"`
	PrometheusPort   int    `envconfig:"PROMETHEUS_PORT" default:"9092"`
	DataDir          string `envconfig:"DATA_DIR" default:"."`
}

var envBaseURLs = map[string]string{
	common.EnvDev:     "https://dev-bankapp.qpay.mn",
	common.EnvSandbox: "https://bankapp-sandbox.qpay.mn",
	common.EnvProd2:   "https://bankapp2.qpay.mn",
}

// BaseURLFor maps an environment to its service URL. An explicit
// BASE_URL overrides the map; an unknown environment yields "" and
// every call fails fast with CONFIG_MISSING.
func (c *Config) BaseURLFor(environment string) string {
	if c.BaseURL != "" {
		return c.BaseURL
	}
	return envBaseURLs[environment]
}

// KnownEnvironment reports whether env names one of the deployed qPay
// environments.
func KnownEnvironment(env string) bool {
	_, ok := envBaseURLs[env]
	return ok
}
