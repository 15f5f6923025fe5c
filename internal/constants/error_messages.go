package constants

const MessageErrorFormat = "The '%s' format is invalid"

const (
	ErrCodePaymentTimeout       = "PAYMENT_TIMEOUT"
	ErrCodePaymentTransport     = "PAYMENT_TRANSPORT_ERROR"
	ErrCodePaymentResponse      = "PAYMENT_RESPONSE_ERROR"
	ErrCodeValidationFailed     = "VALIDATION_FAILED"
	ErrCodeInvalidRequestBody   = "INVALID_REQUEST_BODY"
	ErrCodeInternalError        = "INTERNAL_ERROR"
	ErrCodeGatewayNotConfigured = "GATEWAY_NOT_CONFIGURED"
)

const (
	ErrMsgPaymentTimeout       = "payment gateway did not respond in time"
	ErrMsgPaymentTransport     = "payment gateway unreachable"
	ErrMsgPaymentResponse      = "payment gateway response could not be read"
	ErrMsgValidationFailed     = "validation failed"
	ErrMsgInvalidRequestBody   = "failed to parse request body"
	ErrMsgInternalError        = "Internal server error"
	ErrMsgGatewayNotConfigured = "payment gateway credentials are not configured"
)

const MsgPaymentSubmitted = "direct payment submitted"

var errorMessages = map[string]string{
	ErrCodePaymentTimeout:       ErrMsgPaymentTimeout,
	ErrCodePaymentTransport:     ErrMsgPaymentTransport,
	ErrCodePaymentResponse:      ErrMsgPaymentResponse,
	ErrCodeValidationFailed:     ErrMsgValidationFailed,
	ErrCodeInvalidRequestBody:   ErrMsgInvalidRequestBody,
	ErrCodeInternalError:        ErrMsgInternalError,
	ErrCodeGatewayNotConfigured: ErrMsgGatewayNotConfigured,
}

func GetErrorMessage(code string) string {
	if msg, exists := errorMessages[code]; exists {
		return msg
	}
	return ErrMsgInternalError
}

func GetHTTPStatus(code string) int {
	switch code {
	case ErrCodeInvalidRequestBody:
		return 400
	case ErrCodeValidationFailed:
		return 422
	case ErrCodePaymentTransport, ErrCodePaymentResponse:
		return 502
	case ErrCodeGatewayNotConfigured:
		return 503
	case ErrCodePaymentTimeout:
		return 504
	default:
		return 500
	}
}
