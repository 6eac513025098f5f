package config

import (
	"fmt"

	"github.com/elastic/go-elasticsearch/v8"
)

// NewElasticsearch builds a client for the products index. It does not
// contact the cluster.
func NewElasticsearch(cfg ElasticsearchConfig) (*elasticsearch.Client, error) {
	es, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: cfg.Addresses,
		Username:  cfg.Username,
		Password:  cfg.Password,
	})
	if err != nil {
		return nil, fmt.Errorf("elasticsearch client: %w", err)
	}
	return es, nil
}
