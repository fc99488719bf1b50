package responses

// ErrorResponse is a classified, ready-to-display failure. Code is either
// one of the client-side classifications below or a business result code
// echoed verbatim from the remote service.
type ErrorResponse struct {
	Error   bool   `json:"error"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

var ConfigMissingError = ErrorResponse{
	Error:   true,
	Code:    "CONFIG_MISSING",
	Message: "Үйлчилгээний хаяг тохируулаагүй байна. Та орчноо сонгоно уу.",
}

var EndpointHTMLError = ErrorResponse{
	Error:   true,
	Code:    "ENDPOINT_HTML_ERROR",
	Message: "Сервер алдаатай HTML хуудас буцаалаа. Та орчноо зөв сонгоно уу.",
}

var InvalidJSONError = ErrorResponse{
	Error:   true,
	Code:    "INVALID_JSON",
	Message: "Серверээс буруу бүтэцтэй өгөгдөл ирлээ.",
}

var NetworkError = ErrorResponse{
	Error:   true,
	Code:    "NETWORK_ERROR",
	Message: "Сервертэй холбогдох боломжгүй. Та утасныхаа интернет болон VPN-ээ асаана уу!",
}

var EmptyJSONError = ErrorResponse{
	Error:   true,
	Code:    "EMPTY_JSON",
	Message: "QR мэдээлэл хоосон байна",
}

var CreateFailedError = ErrorResponse{
	Error:   true,
	Code:    "CREATE_FAILED",
	Message: "Гүйлгээ эхлүүлэхэд алдаа гарлаа.",
}

var ConfirmFailedError = ErrorResponse{
	Error:   true,
	Code:    "CONFIRM_FAILED",
	Message: "Гүйлгээг баталгаажуулахад алдаа гарлаа.",
}

var AmountLockedError = ErrorResponse{
	Error:   true,
	Code:    "AMOUNT_LOCKED",
	Message: "Гүйлгээний дүнг өөрчлөх боломжгүй.",
}

var GeneralExceptionError = ErrorResponse{
	Error:   true,
	Code:    "EXCEPTION",
	Message: "Алдаа гарлаа. Та дахин оролдоно уу.",
}

// BusinessError wraps a result code and message echoed from the remote
// service, with fallbacks for blank fields.
func BusinessError(code, message string) *ErrorResponse {
	if code == "" {
		code = "UNKNOWN"
	}
	if message == "" {
		message = "Алдаа гарлаа"
	}
	return &ErrorResponse{Error: true, Code: code, Message: message}
}

// ValidationError is a pre-submission form failure with a field-specific
// message.
func ValidationError(message string) *ErrorResponse {
	return &ErrorResponse{Error: true, Code: "VALIDATION_ERROR", Message: message}
}
