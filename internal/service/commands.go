package service

import "github.com/Behyna/directpayment/pkg/nvp"

type DirectPaymentCommand struct {
	TrackID     string
	RemoteAddr  string
	Transaction nvp.TransactionFields
}

type DirectPaymentResponse struct {
	TrackID    string
	Body       string
	StatusCode int
}
