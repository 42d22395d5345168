package interkassa

import "github.com/mstgnz/interkassa/provider"

// Register Interkassa provider with the gateway registry
func init() {
	provider.Register(providerName, NewProvider)
}
