// Package interkassa is a merchant side integration service for the Interkassa
// v1 payment gateway. It builds the HTML checkout form that sends a buyer to
// the hosted payment page and validates the status notifications Interkassa
// sends back.
//
// # Overview
//
// The payment flow follows this pattern:
//
//	┌─────────────────┐  checkout  ┌─────────────────┐   form POST   ┌─────────────────┐
//	│                 │───────────►│                 │──────────────►│                 │
//	│    Your Shop    │            │   This Service  │               │   Interkassa    │
//	│                 │◄───────────│                 │◄──────────────│                 │
//	└─────────────────┘  verified  └─────────────────┘  status POST  └─────────────────┘
//
// # Checkout
//
// A checkout request carries the payment id, amount and description plus the
// optional paysystem alias, baggage and success/fail/status URLs:
//
//	POST /v1/checkout/interkassa
//	{
//	  "id": "ORDER-1001",
//	  "amount": "12.5",
//	  "description": "Order #1001"
//	}
//
// The answer is the form action, method and ordered ik_* fields. The same form
// is served as an auto-submitting HTML page at GET /v1/checkout/interkassa/form.
//
// # Status Notifications
//
// Interkassa posts the payment result to /callback/interkassa/status. The shop
// id is compared case-insensitively and ik_sign_hash, when present, must equal
// the upper-case MD5 of the signed fields and the secret key. Notifications
// without a signature are accepted but reported as unverified.
//
// # Configuration
//
// The service is configured through environment variables (a .env file is
// loaded when present):
//
//	APP_PORT=9999
//	APP_URL=https://shop.example.com
//	INTERKASSA_SHOP_ID=your-shop-id
//	INTERKASSA_SECRET_KEY=your-secret-key
//	INTERKASSA_FORM_ACTION=                  # optional endpoint override
//	CALLBACK_IP_WHITELIST=1.2.3.4,5.6.7.8    # optional
//	TRUST_PROXY_HEADERS=false                # true only behind a proxy that sets X-Forwarded-For
//	ENABLE_OPENSEARCH_LOGGING=true
//	OPENSEARCH_URL=http://localhost:9200
//	METRICS_PUSH_URL=                        # optional VictoriaMetrics push endpoint
//
// # Packages
//
//   - provider/interkassa: the Interkassa client (shop, payment, status, signature)
//   - provider: provider registry, configuration validation and payment service
//   - handler, router: HTTP surface
//   - infra/...: configuration, logging, OpenSearch, metrics and middleware
package interkassa
