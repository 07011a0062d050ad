package audit

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/elastic/go-elasticsearch/v8"

	"voicedetect/common/config"
	"voicedetect/common/models"
)

// ElasticsearchSink writes detection records to one index.
type ElasticsearchSink struct {
	client *elasticsearch.Client
	index  string
}

// NewElasticsearchSink connects a client for cfg. No request is made until
// the first record or [ElasticsearchSink.Ping].
func NewElasticsearchSink(cfg config.AuditConfig) (*ElasticsearchSink, error) {
	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: cfg.Addresses,
		Username:  cfg.Username,
		Password:  cfg.Password,
	})
	if err != nil {
		return nil, fmt.Errorf("audit: create elasticsearch client: %w", err)
	}
	return &ElasticsearchSink{client: client, index: cfg.Index}, nil
}

// Index stores rec using its ID as the document id, so a retried submit
// overwrites instead of duplicating.
func (s *ElasticsearchSink) Index(ctx context.Context, rec models.DetectionRecord) error {
	body, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("audit: encode record: %w", err)
	}
	res, err := s.client.Index(s.index, bytes.NewReader(body),
		s.client.Index.WithDocumentID(rec.ID),
		s.client.Index.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("audit: index %s: %w", rec.ID, err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("audit: index %s: %s", rec.ID, res.String())
	}
	return nil
}

// Ping checks that the cluster answers. Used by the readiness probe.
func (s *ElasticsearchSink) Ping(ctx context.Context) error {
	res, err := s.client.Info(s.client.Info.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("audit: ping: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("audit: ping: %s", res.String())
	}
	return nil
}
