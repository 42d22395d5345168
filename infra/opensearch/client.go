package opensearch

import (
	"context"
	"crypto/tls"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/mstgnz/interkassa/infra/config"
	"github.com/opensearch-project/opensearch-go/v2"
	"github.com/opensearch-project/opensearch-go/v2/opensearchapi"
)

const indexPrefix = "interkassa"

// Client wraps the OpenSearch client
type Client struct {
	client *opensearch.Client
	config *config.AppConfig
}

// NewClient creates a new OpenSearch client
func NewClient(cfg *config.AppConfig) (*Client, error) {
	opensearchConfig := opensearch.Config{
		Addresses: []string{cfg.OpenSearchURL},
		Transport: &http.Transport{
			TLSClientConfig: &tls.Config{
				InsecureSkipVerify: cfg.Environment != "production",
			},
		},
		MaxRetries:    3,
		RetryOnStatus: []int{502, 503, 504, 429},
		RetryBackoff: func(i int) time.Duration {
			return time.Duration(i) * 100 * time.Millisecond
		},
	}

	if cfg.OpenSearchUser != "" && cfg.OpenSearchPass != "" {
		opensearchConfig.Username = cfg.OpenSearchUser
		opensearchConfig.Password = cfg.OpenSearchPass
	}

	client, err := opensearch.NewClient(opensearchConfig)
	if err != nil {
		return nil, err
	}

	return &Client{
		client: client,
		config: cfg,
	}, nil
}

// GetClient returns the underlying OpenSearch client
func (c *Client) GetClient() *opensearch.Client {
	return c.client
}

// SetupIndices creates the system log index and one event index per provider
func (c *Client) SetupIndices(ctx context.Context, providers []string) error {
	indices := []string{c.GetSystemIndexName()}
	for _, provider := range providers {
		indices = append(indices, c.GetEventIndexName(provider))
	}

	for _, indexName := range indices {
		exists, err := c.indexExists(ctx, indexName)
		if err != nil {
			return fmt.Errorf("failed to check index %s: %w", indexName, err)
		}
		if exists {
			continue
		}

		if err := c.createIndex(ctx, indexName); err != nil {
			return fmt.Errorf("failed to create index %s: %w", indexName, err)
		}
		log.Printf("Created OpenSearch index: %s", indexName)
	}

	return nil
}

// indexExists checks if an index exists
func (c *Client) indexExists(ctx context.Context, indexName string) (bool, error) {
	req := opensearchapi.IndicesExistsRequest{
		Index: []string{indexName},
	}

	res, err := req.Do(ctx, c.client)
	if err != nil {
		return false, err
	}
	defer res.Body.Close()

	return res.StatusCode == http.StatusOK, nil
}

// createIndex creates an index with the mapping shared by event and system logs
func (c *Client) createIndex(ctx context.Context, indexName string) error {
	mapping := `{
		"mappings": {
			"properties": {
				"timestamp":     {"type": "date", "format": "strict_date_optional_time||epoch_millis"},
				"provider":      {"type": "keyword"},
				"type":          {"type": "keyword"},
				"level":         {"type": "keyword"},
				"payment_id":    {"type": "keyword"},
				"amount":        {"type": "keyword"},
				"state":         {"type": "keyword"},
				"verified":      {"type": "boolean"},
				"message":       {"type": "text"},
				"error":         {"type": "text"},
				"processing_ms": {"type": "integer"}
			}
		},
		"settings": {
			"number_of_shards": 1,
			"number_of_replicas": 0
		}
	}`

	req := opensearchapi.IndicesCreateRequest{
		Index: indexName,
		Body:  strings.NewReader(mapping),
	}

	res, err := req.Do(ctx, c.client)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("index creation error: %s", res.String())
	}

	return nil
}

// GetEventIndexName returns the index name for a provider's checkout and notification events
func (c *Client) GetEventIndexName(provider string) string {
	return indexPrefix + "-" + strings.ToLower(provider) + "-events"
}

// GetSystemIndexName returns the index name of system logs
func (c *Client) GetSystemIndexName() string {
	return indexPrefix + "-system-logs"
}

// IsEnabled returns whether OpenSearch logging is enabled
func (c *Client) IsEnabled() bool {
	return c.config.EnableLogging
}
