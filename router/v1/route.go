package v1

import (
	"github.com/go-chi/chi/v5"
	"github.com/mstgnz/interkassa/handler"
)

// Routes registers the checkout API routes
func Routes(r chi.Router, paymentHandler *handler.PaymentHandler) {
	r.Route("/checkout", func(r chi.Router) {
		r.Post("/{provider}", paymentHandler.CreateCheckout)
		r.Get("/{provider}/form", paymentHandler.CheckoutForm)
	})
}
