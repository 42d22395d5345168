package opensearch

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/mstgnz/interkassa/infra/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEvent struct {
	Provider string            `json:"provider"`
	Type     string            `json:"type"`
	Fields   map[string]string `json:"fields"`
}

func TestLogger_LogPaymentEvent(t *testing.T) {
	fake, srv := newFakeOpenSearch(t)

	client, err := NewClient(&config.AppConfig{OpenSearchURL: srv.URL, EnableLogging: true})
	require.NoError(t, err)
	logger := NewLogger(client)

	event := testEvent{
		Provider: "interkassa",
		Type:     "notification",
		Fields: map[string]string{
			"ik_payment_id": "1",
			"ik_sign_hash":  "BDF8E8C75C5667EFA2BD7E64466FBE9C",
		},
	}
	require.NoError(t, logger.LogPaymentEvent(context.Background(), "interkassa", event))

	fake.mu.Lock()
	bodies := fake.bodies["interkassa-interkassa-events"]
	fake.mu.Unlock()
	require.Len(t, bodies, 1)

	var stored testEvent
	require.NoError(t, json.Unmarshal([]byte(bodies[0]), &stored))
	assert.Equal(t, "notification", stored.Type)
	assert.Equal(t, "1", stored.Fields["ik_payment_id"])
	assert.Equal(t, "***", stored.Fields["ik_sign_hash"])
}

func TestLogger_LogSystemEvent(t *testing.T) {
	fake, srv := newFakeOpenSearch(t)

	client, err := NewClient(&config.AppConfig{OpenSearchURL: srv.URL, EnableLogging: true})
	require.NoError(t, err)

	require.NoError(t, NewLogger(client).LogSystemEvent(context.Background(), map[string]any{"message": "started"}))
	assert.Equal(t, 1, fake.count("POST /interkassa-system-logs/_doc"))
}

func TestLogger_ErrorResponse(t *testing.T) {
	fake, srv := newFakeOpenSearch(t)
	fake.failDocs = true

	client, err := NewClient(&config.AppConfig{OpenSearchURL: srv.URL, EnableLogging: true})
	require.NoError(t, err)

	err = NewLogger(client).LogPaymentEvent(context.Background(), "interkassa", testEvent{Type: "checkout"})
	assert.Error(t, err)
}

func TestLogger_DisabledLogging(t *testing.T) {
	fake, srv := newFakeOpenSearch(t)

	client, err := NewClient(&config.AppConfig{OpenSearchURL: srv.URL, EnableLogging: false})
	require.NoError(t, err)
	logger := NewLogger(client)

	assert.NoError(t, logger.LogPaymentEvent(context.Background(), "interkassa", testEvent{}))
	assert.NoError(t, logger.LogSystemEvent(context.Background(), testEvent{}))
	assert.Equal(t, 0, fake.count(""))
}

func TestSanitizeDocument(t *testing.T) {
	tests := []struct {
		name     string
		input    any
		expected string
	}{
		{
			name:     "top_level_secret",
			input:    map[string]any{"secretKey": "abc", "shopId": "SHOP1"},
			expected: `{"secretKey":"***","shopId":"SHOP1"}`,
		},
		{
			name: "nested_signature",
			input: map[string]any{
				"fields": map[string]any{"ik_sign_hash": "ABC", "ik_payment_id": "1"},
			},
			expected: `{"fields":{"ik_payment_id":"1","ik_sign_hash":"***"}}`,
		},
		{
			name: "inside_array",
			input: map[string]any{
				"items": []any{map[string]any{"secret_key": "x", "n": 1}},
			},
			expected: `{"items":[{"n":1,"secret_key":"***"}]}`,
		},
		{
			name:     "struct_input",
			input:    testEvent{Provider: "interkassa", Fields: map[string]string{"ik_sign_hash": "X"}},
			expected: `{"fields":{"ik_sign_hash":"***"},"provider":"interkassa","type":""}`,
		},
		{
			name:     "non_sensitive",
			input:    map[string]any{"amount": "12.52"},
			expected: `{"amount":"12.52"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := SanitizeDocument(tt.input)
			require.NoError(t, err)
			assert.JSONEq(t, tt.expected, string(out))
		})
	}
}

func TestSanitizeDocument_Unmarshalable(t *testing.T) {
	_, err := SanitizeDocument(map[string]any{"ch": make(chan int)})
	assert.Error(t, err)
}
