// Package provider defines the abstraction over hosted payment page gateways.
//
// A FormProvider never talks to its gateway directly. It builds the form that
// redirects the buyer to the payment page and validates the notification the
// gateway sends back afterwards.
//
// # Core Concepts
//
//   - FormProvider: the interface every gateway package implements
//   - ProviderRegistry: name to factory mapping, filled by the init functions of gateway packages
//   - PaymentService: holds initialized providers and logs checkout and notification events
//   - CheckoutRequest, CheckoutForm, Notification: gateway independent data types
//
// # Basic Usage
//
//	import _ "github.com/mstgnz/interkassa/provider/interkassa" // registers "interkassa"
//
//	service := provider.NewPaymentService(nil)
//
//	err := service.AddProvider("interkassa", map[string]string{
//	    "shopId":    "your-shop-id",
//	    "secretKey": "your-secret-key",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	form, err := service.CreateCheckout(ctx, "interkassa", provider.CheckoutRequest{
//	    ID:          "ORDER-1001",
//	    Amount:      "12.50",
//	    Description: "Order #1001",
//	})
//
// Later, on the status URL:
//
//	notification, err := service.ValidateNotification(ctx, "interkassa", fields)
//	if err != nil {
//	    // answer with a non-2xx status so the gateway retries
//	}
//	if !notification.Verified {
//	    // unsigned, do not mark the order as paid on this alone
//	}
//
// # Configuration Validation
//
// Each provider describes its configuration with GetRequiredConfig.
// ValidateConfigFields checks presence, type ("string", "number", "url",
// "boolean"), pattern and length before the provider is initialized.
package provider
