package service

import (
	"context"
	"time"

	"github.com/Behyna/directpayment/internal/config"
	"github.com/Behyna/directpayment/internal/constants"
	"github.com/Behyna/directpayment/internal/metrics"
	"github.com/Behyna/directpayment/pkg/httpclient"
	"github.com/Behyna/directpayment/pkg/nvp"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type PaymentService interface {
	DirectPayment(ctx context.Context, cmd DirectPaymentCommand) (DirectPaymentResponse, error)
}

type Payment struct {
	client  httpclient.HTTPClient
	gateway config.Gateway
	metrics *metrics.Metrics
	logger  *zap.Logger
}

func NewPaymentService(client httpclient.HTTPClient, cfg *config.Config, metrics *metrics.Metrics,
	logger *zap.Logger) PaymentService {
	return &Payment{client: client, gateway: cfg.Gateway, metrics: metrics, logger: logger}
}

// DirectPayment submits a single sale. The gateway's answer is returned
// untouched, including declines; only transport failures become errors.
func (p *Payment) DirectPayment(ctx context.Context, cmd DirectPaymentCommand) (DirectPaymentResponse, error) {
	trackID := cmd.TrackID
	if trackID == "" {
		trackID = uuid.NewString()
	}

	if p.gateway.User == "" || p.gateway.Password == "" || p.gateway.Signature == "" {
		p.logger.Error("Gateway credentials missing", zap.String("trackID", trackID))
		return DirectPaymentResponse{}, NewServiceError(constants.ErrCodeGatewayNotConfigured, ErrGatewayNotConfigured)
	}

	environment := environmentName(p.gateway.Sandbox)
	requester := nvp.NewDirectPayment(p.client, p.gateway.GatewayConfig(), cmd.Transaction,
		nvp.WithSandbox(p.gateway.Sandbox),
		nvp.WithRemoteAddr(cmd.RemoteAddr),
		nvp.WithLogger(p.logger.With(zap.String("trackID", trackID))))

	start := time.Now()
	result := requester.Do(ctx)
	duration := time.Since(start)

	p.recordResult(environment, result, duration)

	if !result.OK() {
		p.logger.Error("Direct payment submission failed",
			zap.String("trackID", trackID),
			zap.String("environment", environment),
			zap.Stringer("failure", result.Failure),
			zap.Duration("duration", duration),
			zap.Error(result.Err))

		return DirectPaymentResponse{}, NewServiceError(failureCode(result.Failure), result.Err)
	}

	p.logger.Info("Direct payment submitted",
		zap.String("trackID", trackID),
		zap.String("environment", environment),
		zap.Int("statusCode", result.StatusCode),
		zap.Strings("defaulted", result.Defaulted),
		zap.Duration("duration", duration))

	return DirectPaymentResponse{TrackID: trackID, Body: result.Body, StatusCode: result.StatusCode}, nil
}

func (p *Payment) recordResult(environment string, result nvp.Result, duration time.Duration) {
	if p.metrics == nil {
		return
	}

	outcome := "success"
	if !result.OK() {
		outcome = result.Failure.String()
	}

	p.metrics.RecordGatewayRequest(environment, outcome, duration, len(result.Body))
	for _, field := range result.Defaulted {
		p.metrics.RecordDefaultApplied(field)
	}
}

func environmentName(sandbox bool) string {
	if sandbox {
		return "sandbox"
	}
	return "production"
}

func failureCode(kind nvp.FailureKind) string {
	switch kind {
	case nvp.FailureTimeout:
		return constants.ErrCodePaymentTimeout
	case nvp.FailureResponse:
		return constants.ErrCodePaymentResponse
	default:
		return constants.ErrCodePaymentTransport
	}
}
