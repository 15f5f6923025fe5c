package api

import (
	v1 "github.com/Behyna/directpayment/internal/api/v1"
	"github.com/gofiber/fiber/v2"
)

const prefixV1 = "/api/v1/"

func SetupRoutes(app *fiber.App, handler *v1.Handler, metricsHandler fiber.Handler) {
	app.Get("/ping", handler.Pong)
	app.Get("/metrics", metricsHandler)
	app.Post(prefixV1+"payments/direct", handler.DirectPayment)
}
