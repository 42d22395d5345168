package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/mstgnz/interkassa/handler"
	"github.com/mstgnz/interkassa/infra/metrics"
	"github.com/mstgnz/interkassa/infra/middle"
	"github.com/mstgnz/interkassa/infra/response"
	v1 "github.com/mstgnz/interkassa/router/v1"

	// Import for side-effect registration
	_ "github.com/mstgnz/interkassa/provider/interkassa"
)

// Dependencies holds what the routes need to be served
type Dependencies struct {
	PaymentHandler      *handler.PaymentHandler
	HealthHandler       *handler.HealthHandler
	RateLimiter         *middle.RateLimiter
	CallbackIPWhitelist []string
}

// Routes registers all routes of the service
func Routes(r chi.Router, deps Dependencies) {
	if deps.HealthHandler != nil {
		r.Get("/health", deps.HealthHandler.CheckHealth)
	}

	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; version=0.0.4")
		metrics.WritePrometheus(w)
	})

	// Gateway callbacks, no rate limit so notifications are never dropped.
	// Only the status route is whitelisted, buyers' browsers hit the return routes.
	r.Route("/callback", func(r chi.Router) {
		r.With(middle.IPWhitelistMiddleware(deps.CallbackIPWhitelist)).
			Post("/{provider}/status", deps.PaymentHandler.HandleStatus)
		r.Get("/{provider}/{outcome}", deps.PaymentHandler.HandleReturn)
		r.Post("/{provider}/{outcome}", deps.PaymentHandler.HandleReturn)
	})

	r.Route("/v1", func(r chi.Router) {
		if deps.RateLimiter != nil {
			r.Use(middle.RateLimitMiddleware(deps.RateLimiter))
		}

		v1.Routes(r, deps.PaymentHandler)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		response.Error(w, http.StatusNotFound, "Not Found", nil)
	})
}
