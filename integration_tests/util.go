package integration_tests

import (
	"io"

	"github.com/ziflex/lecho/v3"

	"github.com/qpaymn/bankapp.go/common"
	"github.com/qpaymn/bankapp.go/lib/security"
	"github.com/qpaymn/bankapp.go/lib/service"
	"github.com/qpaymn/bankapp.go/qpay"
)

const testBankCode = "050000"

func bankAppTestServiceInit(baseURL string) (*service.BankAppService, error) {
	c := &service.Config{
		Environment: common.EnvDev,
		BaseURL:     baseURL,
	}
	svc := &service.BankAppService{
		Config: c,
		Logger: lecho.New(io.Discard),
		Store:  security.NewMemoryStore(),
	}
	svc.Gateway = qpay.NewClient(svc)
	if err := svc.InitConfig(); err != nil {
		return nil, err
	}
	if err := svc.SaveProfile(testBankCode, common.DefaultLangCode); err != nil {
		return nil, err
	}
	return svc, nil
}
