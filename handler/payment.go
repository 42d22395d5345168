package handler

import (
	"context"
	"encoding/json"
	"errors"
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/mstgnz/interkassa/infra/logger"
	"github.com/mstgnz/interkassa/infra/metrics"
	"github.com/mstgnz/interkassa/infra/response"
	"github.com/mstgnz/interkassa/infra/validate"
	"github.com/mstgnz/interkassa/provider"
)

// PaymentServiceInterface defines the interface for payment service operations
type PaymentServiceInterface interface {
	CreateCheckout(ctx context.Context, providerName string, request provider.CheckoutRequest) (*provider.CheckoutForm, error)
	ValidateNotification(ctx context.Context, providerName string, data map[string]string) (*provider.Notification, error)
}

// PaymentHandler handles checkout and gateway callback requests
type PaymentHandler struct {
	paymentService PaymentServiceInterface
	validate       *validator.Validate
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(paymentService PaymentServiceInterface, validate *validator.Validate) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
		validate:       validate,
	}
}

var checkoutFormTemplate = template.Must(template.New("checkout").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>Redirecting to payment</title></head>
<body onload="document.forms[0].submit()">
<form action="{{.Action}}" method="{{.Method}}">
{{- range .Fields}}
<input type="hidden" name="{{.Name}}" value="{{.Value}}"/>
{{- end}}
<noscript><button type="submit">Continue to payment</button></noscript>
</form>
</body>
</html>
`))

// CreateCheckout builds a checkout form from a JSON request and returns it as JSON
func (h *PaymentHandler) CreateCheckout(w http.ResponseWriter, r *http.Request) {
	var req provider.CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	form, status, err := h.createCheckout(r, req)
	if err != nil {
		response.Error(w, status, "Checkout could not be created", err)
		return
	}

	response.Success(w, http.StatusOK, "Checkout created", form)
}

// CheckoutForm renders an auto-submitting HTML form built from query parameters
func (h *PaymentHandler) CheckoutForm(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := provider.CheckoutRequest{
		ID:             q.Get("id"),
		Amount:         q.Get("amount"),
		Description:    q.Get("description"),
		PaysystemAlias: q.Get("paysystemAlias"),
		Baggage:        q.Get("baggage"),
		SuccessURL:     q.Get("successUrl"),
		SuccessMethod:  q.Get("successMethod"),
		FailURL:        q.Get("failUrl"),
		FailMethod:     q.Get("failMethod"),
		StatusURL:      q.Get("statusUrl"),
		StatusMethod:   q.Get("statusMethod"),
	}

	form, status, err := h.createCheckout(r, req)
	if err != nil {
		response.Error(w, status, "Checkout could not be created", err)
		return
	}

	if err := response.HTML(w, http.StatusOK, checkoutFormTemplate, form); err != nil {
		logger.Error("Failed to render checkout form", err, logger.LogContext{
			Provider:  chi.URLParam(r, "provider"),
			RequestID: middleware.GetReqID(r.Context()),
		})
	}
}

func (h *PaymentHandler) createCheckout(r *http.Request, req provider.CheckoutRequest) (*provider.CheckoutForm, int, error) {
	providerName := chi.URLParam(r, "provider")

	if req.ID == "" {
		req.ID = uuid.New().String()
	}

	if err := validate.Struct(h.validate, req); err != nil {
		metrics.IncCheckout(providerName, true)
		return nil, http.StatusBadRequest, err
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	form, err := h.paymentService.CreateCheckout(ctx, providerName, req)
	if err != nil {
		metrics.IncCheckout(providerName, true)
		if errors.Is(err, provider.ErrProviderNotConfigured) {
			return nil, http.StatusNotFound, err
		}
		return nil, http.StatusBadRequest, err
	}

	metrics.IncCheckout(providerName, false)
	return form, http.StatusOK, nil
}

// HandleStatus receives the signed status notification the gateway posts to the status URL.
// Every failure is answered with a non-2xx code so the gateway repeats the notification.
func (h *PaymentHandler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	startTime := time.Now()
	providerName := chi.URLParam(r, "provider")
	log := logger.WithProvider(providerName).SetRequestID(middleware.GetReqID(r.Context()))

	data, err := parseCallbackData(r)
	if err != nil {
		metrics.IncNotification(providerName, metrics.ResultRejected)
		log.Error("Invalid status notification body", err)
		response.Error(w, http.StatusBadRequest, "Invalid notification data", err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	notification, err := h.paymentService.ValidateNotification(ctx, providerName, data)
	metrics.ObserveNotificationDuration(providerName, startTime)
	if err != nil {
		metrics.IncNotification(providerName, metrics.ResultRejected)
		log.Error("Status notification rejected", err)
		status := http.StatusBadRequest
		if errors.Is(err, provider.ErrProviderNotConfigured) {
			status = http.StatusNotFound
		}
		response.Error(w, status, "Notification validation failed", err)
		return
	}

	log.AddField("payment_id", notification.PaymentID).
		AddField("state", string(notification.State)).
		AddField("transaction_id", notification.TransactionID)

	if notification.Verified {
		metrics.IncNotification(providerName, metrics.ResultVerified)
		log.Info("Verified status notification received")
	} else {
		// unsigned notifications must not be used alone to mark an order as paid
		metrics.IncNotification(providerName, metrics.ResultUnverified)
		log.Warn("Unsigned status notification received")
	}

	response.Success(w, http.StatusOK, "Notification accepted", notification)
}

// HandleReturn handles the buyer returning from the gateway to the success or fail URL.
// These requests are not signed, so the result is informational only.
func (h *PaymentHandler) HandleReturn(w http.ResponseWriter, r *http.Request) {
	providerName := chi.URLParam(r, "provider")
	outcome := chi.URLParam(r, "outcome")
	if outcome != "success" && outcome != "fail" {
		response.Error(w, http.StatusNotFound, "Unknown return outcome", nil)
		return
	}

	data, err := parseCallbackData(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid return data", err)
		return
	}

	notification, err := h.paymentService.ValidateNotification(r.Context(), providerName, data)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Return data validation failed", err)
		return
	}

	message := "Payment completed"
	if outcome == "fail" {
		message = "Payment failed"
	}

	response.Success(w, http.StatusOK, message, notification)
}

// parseCallbackData reads callback fields from a query string, a form body or a JSON body
func parseCallbackData(r *http.Request) (map[string]string, error) {
	data := make(map[string]string)

	if strings.Contains(r.Header.Get("Content-Type"), "application/json") {
		if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
			return nil, err
		}
		return data, nil
	}

	if err := r.ParseForm(); err != nil {
		return nil, err
	}
	for key, values := range r.Form {
		if len(values) > 0 {
			data[key] = values[0]
		}
	}

	return data, nil
}
