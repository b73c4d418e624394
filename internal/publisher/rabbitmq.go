package publisher

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"review_collector/internal/domain"
)

const ActionCreate = "create"

type RabbitMQ struct {
	conn       *amqp.Connection
	channel    *amqp.Channel
	exchange   string
	routingKey string
	logger     *slog.Logger
}

type Config struct {
	URL        string
	Exchange   string
	RoutingKey string
	QueueName  string
}

// NewRabbitMQ connects and declares a durable direct exchange bound to a
// durable queue.
func NewRabbitMQ(cfg Config, logger *slog.Logger) (*RabbitMQ, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("connect to rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	fail := func(step string, err error) (*RabbitMQ, error) {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("%s: %w", step, err)
	}

	if err := ch.ExchangeDeclare(cfg.Exchange, "direct", true, false, false, false, nil); err != nil {
		return fail("declare exchange", err)
	}

	q, err := ch.QueueDeclare(cfg.QueueName, true, false, false, false, nil)
	if err != nil {
		return fail("declare queue", err)
	}

	if err := ch.QueueBind(q.Name, cfg.RoutingKey, cfg.Exchange, false, nil); err != nil {
		return fail("bind queue", err)
	}

	logger.Info("connected to rabbitmq",
		"exchange", cfg.Exchange,
		"queue", cfg.QueueName,
		"routing_key", cfg.RoutingKey,
	)

	return &RabbitMQ{
		conn:       conn,
		channel:    ch,
		exchange:   cfg.Exchange,
		routingKey: cfg.RoutingKey,
		logger:     logger,
	}, nil
}

type ShoePayload struct {
	ID        string `json:"id"`
	Brand     string `json:"brand"`
	ModelName string `json:"modelName"`
}

type SourcePayload struct {
	ID           string         `json:"id"`
	ShoeID       string         `json:"shoeId"`
	Type         string         `json:"type"`
	Platform     string         `json:"platform"`
	Title        string         `json:"title"`
	URL          string         `json:"url"`
	Author       *string        `json:"author,omitempty"`
	Excerpt      *string        `json:"excerpt,omitempty"`
	ThumbnailURL *string        `json:"thumbnailUrl,omitempty"`
	Language     string         `json:"language"`
	Country      string         `json:"country"`
	Reliability  float64        `json:"reliability"`
	Metadata     map[string]any `json:"metadata,omitempty"`
}

type SourceMessage struct {
	Action    string        `json:"action"`
	Source    SourcePayload `json:"source"`
	Shoe      ShoePayload   `json:"shoe"`
	Timestamp time.Time     `json:"timestamp"`
}

func NewSourceMessage(shoe domain.Shoe, src domain.CuratedSource, now time.Time) SourceMessage {
	return SourceMessage{
		Action: ActionCreate,
		Source: SourcePayload{
			ID:           src.ID,
			ShoeID:       src.ShoeID,
			Type:         string(src.Type),
			Platform:     src.Platform,
			Title:        src.Title,
			URL:          src.URL,
			Author:       src.Author,
			Excerpt:      src.Excerpt,
			ThumbnailURL: src.ThumbnailURL,
			Language:     src.Language,
			Country:      src.Country,
			Reliability:  src.Reliability,
			Metadata:     src.Metadata,
		},
		Shoe: ShoePayload{
			ID:        shoe.ID,
			Brand:     shoe.Brand,
			ModelName: shoe.ModelName,
		},
		Timestamp: now.UTC(),
	}
}

// Publish announces a newly recorded curated source.
func (r *RabbitMQ) Publish(ctx context.Context, shoe domain.Shoe, src domain.CuratedSource) error {
	now := time.Now()

	body, err := json.Marshal(NewSourceMessage(shoe, src, now))
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	err = r.channel.PublishWithContext(
		ctx,
		r.exchange,
		r.routingKey,
		false,
		false,
		amqp.Publishing{
			DeliveryMode: amqp.Persistent,
			ContentType:  "application/json",
			Body:         body,
			Timestamp:    now,
		},
	)
	if err != nil {
		return fmt.Errorf("publish message: %w", err)
	}

	r.logger.Debug("published source",
		"source_id", src.ID,
		"shoe_id", shoe.ID,
		"url", src.URL,
	)

	return nil
}

func (r *RabbitMQ) Close() error {
	if r.channel != nil {
		r.channel.Close()
	}
	if r.conn != nil {
		return r.conn.Close()
	}
	return nil
}
