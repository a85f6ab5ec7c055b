package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/Ayushkalathiya945/investment--sub001/internal/api/handlers"
	custommiddleware "github.com/Ayushkalathiya945/investment--sub001/internal/api/middleware"
	"github.com/Ayushkalathiya945/investment--sub001/internal/config"
	"github.com/Ayushkalathiya945/investment--sub001/internal/service"
)

// Services bundles the service dependencies of the router.
type Services struct {
	System    *service.SystemService
	Client    *service.ClientService
	Stock     *service.StockService
	Trade     *service.TradeService
	Brokerage *service.BrokerageService
	Config    *service.ConfigService
	Payment   *service.PaymentService
}

// NewRouter creates and configures the HTTP router
func NewRouter(svc Services, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS middleware
	corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
	r.Use(corsMiddleware.Handler)

	// API routes
	r.Route("/api", func(r chi.Router) {
		// System namespace
		r.Route("/system", func(r chi.Router) {
			systemHandler := handlers.NewSystemHandler(svc.System)
			r.Get("/health", systemHandler.Health)
			r.Get("/version", systemHandler.Version)
		})

		r.Route("/client", func(r chi.Router) {
			clientHandler := handlers.NewClientHandler(svc.Client)
			r.Get("/", clientHandler.AllClients)
			r.Post("/", clientHandler.CreateClient)
			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Get("/", clientHandler.GetClient)
				r.Put("/", clientHandler.UpdateClient)
				r.Delete("/", clientHandler.DeleteClient)
			})
		})

		r.Route("/stock", func(r chi.Router) {
			stockHandler := handlers.NewStockHandler(svc.Stock)
			r.Get("/", stockHandler.AllStocks)
			r.Post("/", stockHandler.CreateStock)
			r.Post("/import", stockHandler.ImportStocks)
			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Get("/", stockHandler.GetStock)
				r.Put("/price", stockHandler.UpdatePrice)
			})
		})

		r.Route("/trade", func(r chi.Router) {
			tradeHandler := handlers.NewTradeHandler(svc.Trade)
			r.Get("/", tradeHandler.AllTrades)
			r.Post("/", tradeHandler.CreateTrade)
			r.Route("/client/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Get("/", tradeHandler.TradesPerClient)
			})
			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Delete("/", tradeHandler.DeleteTrade)
			})
		})

		r.Route("/brokerage", func(r chi.Router) {
			brokerageHandler := handlers.NewBrokerageHandler(svc.Brokerage)
			r.Post("/calculate", brokerageHandler.Calculate)
			r.Post("/calculate-all", brokerageHandler.CalculateAll)
			r.Route("/month/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Get("/", brokerageHandler.MonthSummary)
			})
			r.Route("/quarter/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Get("/", brokerageHandler.QuarterSummary)
			})
		})

		r.Route("/config", func(r chi.Router) {
			configHandler := handlers.NewConfigHandler(svc.Config)
			r.Get("/quarter", configHandler.GetQuarterConfig)
			r.Put("/quarter", configHandler.SetQuarterConfig)
			r.Get("/rate", configHandler.GetRate)
			r.Put("/rate", configHandler.SetRate)
		})

		// Payment recording mutates externally-owned financial state and is
		// restricted to internal callers holding the shared API key.
		r.Route("/payment", func(r chi.Router) {
			paymentHandler := handlers.NewPaymentHandler(svc.Payment)
			r.With(custommiddleware.APIKeyMiddleware).Post("/quarter", paymentHandler.RecordPayment)
		})
	})

	return r
}
