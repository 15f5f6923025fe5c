package v1

type DirectPaymentResponse struct {
	StatusCode int    `json:"status_code"`
	Body       string `json:"body"`
}
