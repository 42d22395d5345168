package opensearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/opensearch-project/opensearch-go/v2/opensearchapi"
)

// sensitiveFields are masked before a document leaves the process
var sensitiveFields = map[string]bool{
	"ik_sign_hash": true,
	"secretKey":    true,
	"secret_key":   true,
}

// Logger handles OpenSearch logging operations
type Logger struct {
	client *Client
}

// NewLogger creates a new OpenSearch logger
func NewLogger(client *Client) *Logger {
	return &Logger{
		client: client,
	}
}

// LogPaymentEvent indexes a checkout or notification event into the provider's event index
func (l *Logger) LogPaymentEvent(ctx context.Context, provider string, event any) error {
	if !l.client.IsEnabled() {
		return nil
	}

	return l.index(ctx, l.client.GetEventIndexName(provider), event)
}

// LogSystemEvent indexes a system log entry
func (l *Logger) LogSystemEvent(ctx context.Context, entry any) error {
	if !l.client.IsEnabled() {
		return nil
	}

	return l.index(ctx, l.client.GetSystemIndexName(), entry)
}

func (l *Logger) index(ctx context.Context, indexName string, doc any) error {
	body, err := SanitizeDocument(doc)
	if err != nil {
		return err
	}

	req := opensearchapi.IndexRequest{
		Index: indexName,
		Body:  bytes.NewReader(body),
	}

	res, err := req.Do(ctx, l.client.GetClient())
	if err != nil {
		return fmt.Errorf("failed to index document: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("opensearch error: %s", res.String())
	}

	return nil
}

// SanitizeDocument marshals doc to JSON and masks sensitive keys at any depth
func SanitizeDocument(doc any) ([]byte, error) {
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal document: %w", err)
	}

	var generic any
	if err := json.Unmarshal(raw, &generic); err != nil {
		return nil, fmt.Errorf("failed to decode document: %w", err)
	}

	return json.Marshal(mask(generic))
}

func mask(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, val := range t {
			if sensitiveFields[k] {
				t[k] = "***"
				continue
			}
			t[k] = mask(val)
		}
		return t
	case []any:
		for i, val := range t {
			t[i] = mask(val)
		}
		return t
	default:
		return v
	}
}
