package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"foodmarket-delivery/internal/http/handlers"
	"foodmarket-delivery/internal/http/middleware"
	"foodmarket-delivery/internal/http/middleware/ratelimit"
	"foodmarket-delivery/internal/logx"
)

// Deps holds everything the router mounts.
type Deps struct {
	Handlers  *handlers.Handlers
	Delivery  *handlers.DeliveryHandler
	Auth      *middleware.Auth
	RateLimit *ratelimit.Middleware
	Logger    logx.Logger
}

// New constructs a chi-based http.Handler with base middleware and routes.
func New(d Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(5 * time.Second))
	r.Use(middleware.Observability(d.Logger))
	if d.RateLimit != nil {
		r.Use(d.RateLimit.Handler())
	}

	r.Get("/ping", d.Handlers.Ping)
	r.Method(http.MethodHead, "/healthcheck", http.HandlerFunc(d.Handlers.HealthcheckHead))
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/delivery", func(r chi.Router) {
		r.Use(d.Auth.Handler())

		r.With(middleware.RequireRole(middleware.RoleSeller, middleware.RoleAdmin)).
			Put("/track/{orderID}", d.Delivery.Track)
		r.Get("/track/{orderID}", d.Delivery.Get)
		r.Post("/verify-qr", d.Delivery.VerifyQR)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(middleware.RoleAdmin))
			r.Get("/admin/all", d.Delivery.AdminList)
			r.Put("/admin/complete/{deliveryID}", d.Delivery.AdminComplete)
			r.Post("/test-qr/{orderID}", d.Delivery.IssueTestQR)
			r.Put("/test-regular/{orderID}", d.Delivery.SimulateRegular)
		})
	})

	r.NotFound(http.HandlerFunc(d.Handlers.NotFound))

	return r
}
