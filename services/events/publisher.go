// Package events publishes storefront search activity to Kafka for
// downstream analytics.
package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/Heritage-Craft/artisan-marketplace-backend/models"
)

// SearchEvent summarises one combined search. It never carries result bodies.
type SearchEvent struct {
	ID                  uuid.UUID          `json:"id"`
	SessionID           string             `json:"sessionId,omitempty"`
	Query               string             `json:"query"`
	Role                models.Role        `json:"role"`
	Filters             models.FilterState `json:"filters"`
	CatalogCount        int                `json:"catalogCount"`
	GeneratedCount      int                `json:"generatedCount"`
	CatalogError        bool               `json:"catalogError"`
	GeneratedError      bool               `json:"generatedError"`
	GeneratedValidation bool               `json:"generatedValidation"`
	Retryable           bool               `json:"retryable"`
	OccurredAt          time.Time          `json:"occurredAt"`
}

func NewSearchEvent(rs *models.AggregatedResultSet, filters models.FilterState, sessionID string, at time.Time) SearchEvent {
	return SearchEvent{
		ID:                  uuid.New(),
		SessionID:           sessionID,
		Query:               rs.Query,
		Role:                rs.ActingRole,
		Filters:             filters,
		CatalogCount:        len(rs.Catalog),
		GeneratedCount:      len(rs.Generated),
		CatalogError:        rs.CatalogError,
		GeneratedError:      rs.GeneratedError,
		GeneratedValidation: rs.GeneratedValidation,
		Retryable:           rs.Retryable,
		OccurredAt:          at.UTC(),
	}
}

type Publisher interface {
	PublishSearch(ctx context.Context, evt SearchEvent) error
	Close() error
}

// NewPublisher returns a Kafka publisher, or a no-op one when no brokers are configured.
func NewPublisher(brokers []string, topic string, log *zap.Logger) Publisher {
	if len(brokers) == 0 {
		log.Info("no kafka brokers configured, search events disabled")
		return NopPublisher{}
	}
	return NewKafkaPublisher(brokers, topic, log)
}

type KafkaPublisher struct {
	writer *kafka.Writer
	log    *zap.Logger
}

func NewKafkaPublisher(brokers []string, topic string, log *zap.Logger) *KafkaPublisher {
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.LeastBytes{},
			RequiredAcks: kafka.RequireOne,
			Async:        true,
			BatchTimeout: 50 * time.Millisecond,
			Completion: func(msgs []kafka.Message, err error) {
				if err != nil {
					log.Warn("search events not delivered", zap.Int("count", len(msgs)), zap.Error(err))
				}
			},
		},
		log: log,
	}
}

func (p *KafkaPublisher) PublishSearch(ctx context.Context, evt SearchEvent) error {
	msg, err := searchMessage(evt)
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(ctx, msg)
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// searchMessage keys by session so one shopper's searches stay on one
// partition. Sessionless searches fall back to the event ID.
func searchMessage(evt SearchEvent) (kafka.Message, error) {
	data, err := json.Marshal(evt)
	if err != nil {
		return kafka.Message{}, err
	}

	key := evt.SessionID
	if key == "" {
		key = evt.ID.String()
	}
	return kafka.Message{
		Key:   []byte(key),
		Value: data,
		Time:  evt.OccurredAt,
		Headers: []kafka.Header{
			{Key: "event-type", Value: []byte("search.performed")},
		},
	}, nil
}

type NopPublisher struct{}

func (NopPublisher) PublishSearch(context.Context, SearchEvent) error { return nil }
func (NopPublisher) Close() error { return nil }
