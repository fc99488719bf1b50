package common

const (
	// ServicePath is appended to the environment base URL before the
	// endpoint path.
	ServicePath = "/WebServiceQPayBank.asmx"

	PathDecryptInfo    = "/qPay_decryptInfo"
	PathBankAction     = "/qPay_bankAction"
	PathCustomerAction = "/qPay_customerAction"

	ActionTypeDecrypt = "01"
	ActionTypeCreate  = "1"
	ActionTypeConfirm = "2"
	ActionTypeHistory = "5"

	// VerificationCode is sent on decrypt and history requests. Bank
	// actions (create/confirm) send an empty verification code.
	VerificationCode = "1005"

	TransactionTypePurchase = "PRCH"

	DefaultLangCode = "MON"

	DateLayout = "2006-01-02"

	HistoryPageSize = 20

	StatusCodeOK = "0"

	// Placeholder settlement values injected between the create and the
	// confirm phase. The confirm endpoint expects a request body shaped
	// like a response that has already been partially settled.
	SettlementTransactionID   = "1"
	SettlementTransactionDate = "2021-04-17 01:01:01"
	SettlementExchangeRate    = "1"

	PartialPaymentAllowed = "1"

	EnvDev     = "dev"
	EnvSandbox = "sandbox"
	EnvProd2   = "prod2"
)
