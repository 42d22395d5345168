package provider

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateConfigFields(t *testing.T) {
	fields := []ConfigField{
		{Key: "shopId", Required: true, Type: "string", MinLength: 3, MaxLength: 8},
		{Key: "timeout", Required: false, Type: "number"},
		{Key: "callback", Required: false, Type: "url"},
		{Key: "sandbox", Required: false, Type: "boolean"},
		{Key: "code", Required: false, Type: "string", Pattern: `^[A-Z]{2}$`},
	}

	tests := []struct {
		name    string
		config  map[string]string
		wantErr string
	}{
		{
			name:   "Only required field",
			config: map[string]string{"shopId": "SHOP1"},
		},
		{
			name: "All fields valid",
			config: map[string]string{
				"shopId":   "SHOP1",
				"timeout":  "30",
				"callback": "https://shop.example.com/cb",
				"sandbox":  "true",
				"code":     "UA",
			},
		},
		{
			name:   "Blank optional fields are skipped",
			config: map[string]string{"shopId": "SHOP1", "timeout": "", "callback": "  "},
		},
		{
			name:    "Missing required field",
			config:  map[string]string{},
			wantErr: "required field 'shopId' is missing",
		},
		{
			name:    "Blank required field",
			config:  map[string]string{"shopId": "   "},
			wantErr: "required field 'shopId' cannot be empty",
		},
		{
			name:    "Too short",
			config:  map[string]string{"shopId": "S1"},
			wantErr: "at least 3 characters",
		},
		{
			name:    "Too long",
			config:  map[string]string{"shopId": "SHOP123456"},
			wantErr: "must not exceed 8 characters",
		},
		{
			name:    "Invalid number",
			config:  map[string]string{"shopId": "SHOP1", "timeout": "soon"},
			wantErr: "must be a number",
		},
		{
			name:    "Relative url",
			config:  map[string]string{"shopId": "SHOP1", "callback": "/callback"},
			wantErr: "absolute http(s) URL",
		},
		{
			name:    "Unsupported url scheme",
			config:  map[string]string{"shopId": "SHOP1", "callback": "ftp://shop.example.com"},
			wantErr: "absolute http(s) URL",
		},
		{
			name:    "Invalid boolean",
			config:  map[string]string{"shopId": "SHOP1", "sandbox": "yes"},
			wantErr: "must be 'true' or 'false'",
		},
		{
			name:    "Pattern mismatch",
			config:  map[string]string{"shopId": "SHOP1", "code": "ukr"},
			wantErr: "does not match required pattern",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateConfigFields("test", tt.config, fields)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
			assert.Contains(t, err.Error(), "test:")
		})
	}
}

func TestValidateConfigFields_InvalidPattern(t *testing.T) {
	fields := []ConfigField{{Key: "code", Required: true, Pattern: `([`}}

	err := ValidateConfigFields("test", map[string]string{"code": "x"}, fields)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid pattern")
}
