// Package handler provides the HTTP handlers of the Interkassa checkout service.
//
// # Payment Handler
//
// PaymentHandler builds checkout forms and receives gateway callbacks:
//
//	paymentHandler := handler.NewPaymentHandler(paymentService, validator)
//
//	r.Post("/v1/checkout/{provider}", paymentHandler.CreateCheckout)
//	r.Get("/v1/checkout/{provider}/form", paymentHandler.CheckoutForm)
//	r.Post("/callback/{provider}/status", paymentHandler.HandleStatus)
//	r.HandleFunc("/callback/{provider}/{outcome}", paymentHandler.HandleReturn)
//
// A checkout request is JSON:
//
//	POST /v1/checkout/interkassa
//	{
//	  "id": "ID_4233",
//	  "amount": "12.52",
//	  "description": "Order #4233",
//	  "paysystemAlias": "visa_usd"
//	}
//
// The response carries the form action, method and the ordered ik_* fields.
// CheckoutForm accepts the same fields as query parameters and renders an
// HTML page that posts the form to the gateway on load.
//
// # Status Notifications
//
// HandleStatus answers 200 only for notifications that were accepted. Any
// validation or verification failure is answered with 400 so the gateway
// retries. A notification without ik_sign_hash is accepted but reported as
// unverified; callers must not mark orders as paid on such notifications.
//
// # Health
//
// HealthHandler reports the configured providers and basic process stats.
package handler
