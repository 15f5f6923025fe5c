package main

import (
	"context"

	"github.com/Behyna/directpayment/internal/api"
	v1 "github.com/Behyna/directpayment/internal/api/v1"
	"github.com/Behyna/directpayment/internal/api/validator"
	"github.com/Behyna/directpayment/internal/config"
	apperrors "github.com/Behyna/directpayment/internal/errors"
	"github.com/Behyna/directpayment/internal/metrics"
	"github.com/Behyna/directpayment/internal/service"
	"github.com/Behyna/directpayment/pkg/httpclient"
	playground "github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const version = "1.0.0"

func main() {
	fx.New(
		fx.Provide(
			config.Load,
			zap.NewProduction,
			NewRegistry,
			NewMetrics,
			NewHTTPClient,
			NewFiberApp,
			playground.New,
			validator.NewXValidator,
			service.NewPaymentService,
			v1.NewHandler,
		),
		fx.Invoke(startServer),
	).Run()
}

func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	return reg
}

func NewMetrics(reg *prometheus.Registry) *metrics.Metrics {
	return metrics.NewMetrics(reg)
}

func NewHTTPClient(cfg *config.Config, logger *zap.Logger) httpclient.HTTPClient {
	if cfg.Gateway.HTTP.InsecureSkipVerify {
		logger.Warn("Gateway certificate verification is disabled",
			zap.Bool("sandbox", cfg.Gateway.Sandbox))
	}

	return httpclient.NewHTTPClient(cfg.Gateway.HTTP)
}

func NewFiberApp(m *metrics.Metrics, logger *zap.Logger) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: apperrors.ErrorHandler()})
	app.Use(metrics.HealthCheckMiddleware())
	app.Use(metrics.HTTPMetricsMiddleware(m, logger))
	return app
}

func startServer(app *fiber.App, handler *v1.Handler, cfg *config.Config, reg *prometheus.Registry,
	m *metrics.Metrics, logger *zap.Logger, lc fx.Lifecycle) {
	api.SetupRoutes(app, handler, adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))
	collector := metrics.NewSystemCollector(m, logger)

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			collector.Start(cfg.Metrics.CollectInterval, version)

			go func() {
				if err := app.Listen(cfg.API.Port); err != nil {
					logger.Error("HTTP server stopped", zap.Error(err))
				}
			}()

			logger.Info("Direct payment API started",
				zap.String("port", cfg.API.Port),
				zap.Bool("sandbox", cfg.Gateway.Sandbox))
			return nil
		},
		OnStop: func(ctx context.Context) error {
			collector.Stop()
			return app.ShutdownWithContext(ctx)
		},
	})
}
