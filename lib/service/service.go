package service

import (
	"sync"

	"github.com/google/uuid"
	"github.com/ziflex/lecho/v3"

	"github.com/qpaymn/bankapp.go/common"
	"github.com/qpaymn/bankapp.go/lib/security"
	"github.com/qpaymn/bankapp.go/qpay"
)

const (
	storeKeyEnvironment  = "ENVIRONMENT"
	storeKeyBankCode     = "BANK_CODE"
	storeKeyLangCode     = "LANG_CODE"
	storeKeyCustomerCode = "CUSTOMER_CODE"
)

type BankAppService struct {
	Config  *Config
	Gateway qpay.GatewayWrapper
	Logger  *lecho.Logger
	Store   security.Store

	mu           sync.Mutex
	environment  string
	bankCode     string
	langCode     string
	customerCode string

	scanGuard opGuard
}

// Snapshot is the configuration captured at the start of an operation.
// A profile or environment change after capture never affects an
// operation already in flight.
type Snapshot struct {
	Environment  string
	BaseURL      string
	BankCode     string
	CustomerCode string
	LangCode     string
}

func (svc *BankAppService) ConfigSnapshot() Snapshot {
	svc.mu.Lock()
	defer svc.mu.Unlock()
	env := svc.environment
	if env == "" {
		env = svc.Config.Environment
	}
	lang := svc.langCode
	if lang == "" {
		lang = common.DefaultLangCode
	}
	return Snapshot{
		Environment:  env,
		BaseURL:      svc.Config.BaseURLFor(env),
		BankCode:     svc.bankCode,
		CustomerCode: svc.customerCode,
		LangCode:     lang,
	}
}

// GatewayConfig implements qpay.ConfigSource.
func (svc *BankAppService) GatewayConfig() qpay.Config {
	snap := svc.ConfigSnapshot()
	return qpay.Config{BaseURL: snap.BaseURL, Environment: snap.Environment}
}

// InitConfig loads the stored profile, filling in defaults on first run:
// the language code defaults to MON and a missing customer code is
// generated and persisted.
func (svc *BankAppService) InitConfig() error {
	env, err := svc.Store.Get(storeKeyEnvironment)
	if err != nil {
		return err
	}
	if env == "" || !KnownEnvironment(env) {
		env = svc.Config.Environment
	}

	bankCode, err := svc.Store.Get(storeKeyBankCode)
	if err != nil {
		return err
	}

	langCode, err := svc.Store.Get(storeKeyLangCode)
	if err != nil {
		return err
	}
	if langCode == "" {
		langCode = common.DefaultLangCode
		if err := svc.Store.Set(storeKeyLangCode, langCode); err != nil {
			return err
		}
	}

	customerCode, err := svc.Store.Get(storeKeyCustomerCode)
	if err != nil {
		return err
	}
	if customerCode == "" {
		customerCode = uuid.NewString()
		if err := svc.Store.Set(storeKeyCustomerCode, customerCode); err != nil {
			return err
		}
	}

	svc.mu.Lock()
	svc.environment = env
	svc.bankCode = bankCode
	svc.langCode = langCode
	svc.customerCode = customerCode
	svc.mu.Unlock()

	svc.Logger.Infof("Config initialized: environment %s, bank code %q", env, bankCode)
	return nil
}

// BankCodeRequired reports whether the profile still needs a bank code
// before any operation can run.
func (svc *BankAppService) BankCodeRequired() bool {
	svc.mu.Lock()
	defer svc.mu.Unlock()
	return svc.bankCode == ""
}

// SaveProfile persists the bank and language code and reloads the
// profile.
func (svc *BankAppService) SaveProfile(bankCode, langCode string) error {
	if name, ok := common.BankName(bankCode, langCode); ok {
		svc.Logger.Infof("Saving profile for %s", name)
	} else {
		svc.Logger.Infof("Saving profile for unrecognized bank code %q", bankCode)
	}
	if err := svc.Store.Set(storeKeyBankCode, bankCode); err != nil {
		return err
	}
	if err := svc.Store.Set(storeKeyLangCode, langCode); err != nil {
		return err
	}
	return svc.InitConfig()
}

// SetEnvironment switches the active environment and persists the
// choice. Operations already in flight keep the snapshot they started
// with.
func (svc *BankAppService) SetEnvironment(env string) error {
	if !KnownEnvironment(env) {
		return &UnknownEnvironmentError{Environment: env}
	}
	if err := svc.Store.Set(storeKeyEnvironment, env); err != nil {
		return err
	}
	svc.mu.Lock()
	svc.environment = env
	svc.mu.Unlock()
	return nil
}

// ResetProfile clears the stored profile keeping the environment, then
// re-runs first-time initialization.
func (svc *BankAppService) ResetProfile() error {
	for _, key := range []string{storeKeyBankCode, storeKeyLangCode, storeKeyCustomerCode} {
		if err := svc.Store.Remove(key); err != nil {
			return err
		}
	}
	svc.mu.Lock()
	svc.bankCode = ""
	svc.langCode = ""
	svc.customerCode = ""
	svc.mu.Unlock()
	return svc.InitConfig()
}

type UnknownEnvironmentError struct {
	Environment string
}

func (e *UnknownEnvironmentError) Error() string {
	return "unknown environment: " + e.Environment
}
