package mocks

import (
	"context"

	"github.com/Behyna/directpayment/internal/service"
	"github.com/stretchr/testify/mock"
)

type PaymentService struct {
	mock.Mock
}

func (p *PaymentService) DirectPayment(ctx context.Context, cmd service.DirectPaymentCommand) (service.DirectPaymentResponse, error) {
	args := p.Called(ctx, cmd)
	return args.Get(0).(service.DirectPaymentResponse), args.Error(1)
}
