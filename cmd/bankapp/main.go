package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/qpaymn/bankapp.go/common"
	"github.com/qpaymn/bankapp.go/lib/logging"
	"github.com/qpaymn/bankapp.go/lib/responses"
	"github.com/qpaymn/bankapp.go/lib/security"
	"github.com/qpaymn/bankapp.go/lib/service"
	"github.com/qpaymn/bankapp.go/qpay"
)

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: bankapp <command> [args]

Commands:
  profile <bank_code> [lang_code]   save the bank profile (lang defaults to %s)
  env <dev|sandbox|prod2>           switch the active environment
  reset                             clear the stored profile
  resolve <qr>                      decrypt a scanned QR code
  pay <qr> [amount]                 resolve and pay, optionally overriding the amount
  history [start end]               list payments, dates as YYYY-MM-DD
  banks                             list the recognized bank codes
`, common.DefaultLangCode)
	os.Exit(2)
}

func main() {
	c := &service.Config{}

	// Load configuration from environment variables
	err := godotenv.Load(".env")
	if err != nil {
		fmt.Println("Failed to load .env file")
	}
	err = envconfig.Process("", c)
	if err != nil {
		log.Fatalf("Error loading environment variables: %v", err)
	}

	// Setup logging to STDOUT or a configured log file
	logger := logging.Logger(c.LogFilePath)

	// Setup exception tracking with Sentry if configured
	if c.SentryDSN != "" {
		if err = sentry.Init(sentry.ClientOptions{
			Dsn: c.SentryDSN,
		}); err != nil {
			logger.Errorf("sentry init error: %v", err)
		}
		defer sentry.Flush(2 * time.Second)
	}

	svc := &service.BankAppService{
		Config: c,
		Logger: logger,
		Store:  security.NewFileStore(c.DataDir),
	}
	svc.Gateway = qpay.NewClient(svc)

	if err := svc.InitConfig(); err != nil {
		logger.Fatalf("Error initializing config: %v", err)
	}

	if c.EnablePrometheus {
		go func() {
			addr := fmt.Sprintf(":%d", c.PrometheusPort)
			logger.Infof("Prometheus listening on %s", addr)
			if err := http.ListenAndServe(addr, promhttp.Handler()); err != nil {
				logger.Errorf("prometheus listener: %v", err)
			}
		}()
	}

	if len(os.Args) < 2 {
		usage()
	}

	ctx := context.Background()
	switch os.Args[1] {
	case "profile":
		runProfile(svc, os.Args[2:])
	case "env":
		runEnv(svc, os.Args[2:])
	case "reset":
		fatalOnErr(svc.ResetProfile())
		fmt.Println("profile cleared")
	case "resolve":
		runResolve(ctx, svc, os.Args[2:])
	case "pay":
		runPay(ctx, svc, os.Args[2:])
	case "history":
		runHistory(ctx, svc, os.Args[2:])
	case "banks":
		for _, code := range common.KnownBankCodes() {
			name, _ := common.BankName(code, common.DefaultLangCode)
			fmt.Printf("%-8s %s\n", code, name)
		}
	default:
		usage()
	}
}

func runProfile(svc *service.BankAppService, args []string) {
	if len(args) < 1 {
		usage()
	}
	langCode := common.DefaultLangCode
	if len(args) > 1 {
		langCode = args[1]
	}
	fatalOnErr(svc.SaveProfile(args[0], langCode))
	fmt.Println("profile saved")
}

func runEnv(svc *service.BankAppService, args []string) {
	if len(args) < 1 {
		usage()
	}
	fatalOnErr(svc.SetEnvironment(args[0]))
	fmt.Printf("environment set to %s\n", args[0])
}

func runResolve(ctx context.Context, svc *service.BankAppService, args []string) {
	if len(args) < 1 {
		usage()
	}
	inv := resolve(ctx, svc, args[0])
	out, _ := json.MarshalIndent(inv, "", "  ")
	fmt.Println(string(out))
}

func runPay(ctx context.Context, svc *service.BankAppService, args []string) {
	if len(args) < 1 {
		usage()
	}
	inv := resolve(ctx, svc, args[0])
	req := service.NewTransactionRequest(inv)
	if len(args) > 1 {
		req.Amount = args[1]
	}
	for _, f := range inv.AdditionalFields {
		if f.Required == "1" && req.FieldValues[f.FieldType] == "" {
			fatal(responses.ValidationError(f.PlaceHolder))
		}
	}
	if errRes := svc.Submit(ctx, req); errRes != nil {
		fatal(errRes)
	}
	fmt.Printf("paid invoice %s, amount %s %s\n", inv.InvoiceNo, req.Amount, inv.CurrencyCode)
}

func runHistory(ctx context.Context, svc *service.BankAppService, args []string) {
	h := svc.NewPaymentHistory()
	if len(args) >= 2 {
		start, err := time.Parse(common.DateLayout, args[0])
		if err != nil {
			log.Fatalf("bad start date: %v", err)
		}
		end, err := time.Parse(common.DateLayout, args[1])
		if err != nil {
			log.Fatalf("bad end date: %v", err)
		}
		h.SetDateRange(ctx, service.DateRange{Start: start, End: end})
	} else {
		h.LoadInitial(ctx)
	}
	if errRes := h.Err(); errRes != nil {
		fatal(errRes)
	}
	for h.Cursor().HasMore {
		before := len(h.Items())
		h.LoadMore(ctx)
		if len(h.Items()) == before {
			break
		}
	}
	for _, rec := range h.Items() {
		fmt.Printf("%s  %-12s %10s %s  %s\n", rec.Date, rec.InvoiceID, rec.Amount, rec.CurrencyCode, rec.Name)
	}
	fmt.Printf("%d payments\n", len(h.Items()))
}

func resolve(ctx context.Context, svc *service.BankAppService, qr string) *service.Invoice {
	if svc.BankCodeRequired() {
		fmt.Fprintln(os.Stderr, "no bank profile configured, run: bankapp profile <bank_code>")
		os.Exit(1)
	}
	inv, errRes := svc.DecryptQR(ctx, qr)
	if errRes != nil {
		fatal(errRes)
	}
	return inv
}

func fatal(errRes *responses.ErrorResponse) {
	fmt.Fprintf(os.Stderr, "%s: %s\n", errRes.Code, errRes.Message)
	os.Exit(1)
}

func fatalOnErr(err error) {
	if err != nil {
		log.Fatal(err)
	}
}
