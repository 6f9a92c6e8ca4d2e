package api

import (
	v1 "github.com/aurora-energy/kplcgateway/internal/api/v1"
	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func SetupRoutes(app *fiber.App, handler *v1.Handler) {
	app.Get("/ping", handler.Pong)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	app.Post("/v1/balance", handler.Balance)
	app.Post("/v1/units", handler.Units)
	app.Post("/v1/payments/last", handler.LastPayment)
	app.Post("/v1/tokens", handler.Purchase)

	app.Post("/v1/inquiries", handler.CreateInquiry)
	app.Get("/v1/inquiries/:id", handler.GetInquiry)

	app.Post("/v1/webhooks/sms", handler.InboundSMS)
}
