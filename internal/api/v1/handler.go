package v1

import (
	"time"

	"github.com/Behyna/directpayment/internal/api/contract"
	"github.com/Behyna/directpayment/internal/api/validator"
	"github.com/Behyna/directpayment/internal/constants"
	"github.com/Behyna/directpayment/internal/service"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Handler struct {
	logger         *zap.Logger
	paymentService service.PaymentService
	XValidator     validator.IXValidator
}

func NewHandler(logger *zap.Logger, paymentService service.PaymentService, XValidator validator.IXValidator) *Handler {
	return &Handler{logger: logger, paymentService: paymentService, XValidator: XValidator}
}

func (h *Handler) Pong(c *fiber.Ctx) error {
	return c.SendString("pong")
}

func (h *Handler) DirectPayment(c *fiber.Ctx) error {
	start := time.Now()
	trackID := uuid.NewString()

	var request DirectPaymentRequest
	responseError := h.XValidator.Validator(&request, constants.MessageErrorFormat, c)
	if responseError.Code != "" {
		h.logger.Warn("Direct payment request rejected",
			zap.String("trackID", trackID),
			zap.String("code", responseError.Code),
			zap.String("message", responseError.Message))

		responseError.TrackID = trackID
		return c.JSON(responseError)
	}

	cmd := service.DirectPaymentCommand{
		TrackID:     trackID,
		RemoteAddr:  c.IP(),
		Transaction: request.TransactionFields(),
	}

	resp, err := h.paymentService.DirectPayment(c.UserContext(), cmd)
	if err != nil {
		h.logger.Error("Failed to submit direct payment",
			zap.String("trackID", trackID),
			zap.String("amount", request.Amount),
			zap.Error(err))

		return err
	}

	h.logger.Info("Direct payment forwarded",
		zap.String("trackID", trackID),
		zap.String("amount", request.Amount),
		zap.Duration("duration", time.Since(start)))

	return c.JSON(contract.Response{
		Successful: true,
		Code:       "success",
		Message:    constants.MsgPaymentSubmitted,
		TrackID:    resp.TrackID,
		Result:     DirectPaymentResponse{StatusCode: resp.StatusCode, Body: resp.Body},
	})
}
