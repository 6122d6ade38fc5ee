package rabbitmq

import (
	"context"
	"fmt"
	"time"

	"github.com/OluSmartDev/3mtt-module3-miniprojects/pkg/utilities"

	amqp "github.com/rabbitmq/amqp091-go"
)

type PublisherAlias string

type IRabbitmqPublisher interface {
	Publish(ctx context.Context, body utilities.Serializable) error
}

// PublisherRegistry owns one channel per configured publisher.
type PublisherRegistry struct {
	publishers map[PublisherAlias]*RabbitmqPublisher
}

// NewPublisherRegistry opens a channel for every publisher and declares its exchange.
func NewPublisherRegistry(conn *amqp.Connection, publisherConfig []RabbitmqPublishersConfig) (*PublisherRegistry, error) {
	registry := &PublisherRegistry{publishers: make(map[PublisherAlias]*RabbitmqPublisher, len(publisherConfig))}

	for _, publisher := range publisherConfig {
		channel, err := conn.Channel()
		if err != nil {
			registry.Close()
			return nil, fmt.Errorf("open channel for publisher %s: %w", publisher.PublisherAlias, err)
		}

		err = channel.ExchangeDeclare(
			publisher.Exchange,
			publisher.ExchangeKind,
			true,  // durable
			false, // auto-deleted
			false, // internal
			false, // no-wait
			nil,   // args
		)
		if err != nil {
			_ = channel.Close()
			registry.Close()
			return nil, fmt.Errorf("declare exchange %s: %w", publisher.Exchange, err)
		}

		registry.publishers[publisher.PublisherAlias] = NewPublisher(channel, publisher.Exchange, publisher.RoutingKey)
	}

	return registry, nil
}

func (r *PublisherRegistry) Get(alias PublisherAlias) (IRabbitmqPublisher, error) {
	publisher, ok := r.publishers[alias]
	if !ok {
		return nil, fmt.Errorf("publisher %s is not configured", alias)
	}
	return publisher, nil
}

func (r *PublisherRegistry) Close() {
	for _, p := range r.publishers {
		_ = p.Channel.Close()
	}
}

type channelPublisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

type RabbitmqPublisher struct {
	Channel    channelPublisher
	Exchange   string
	RoutingKey string
}

func NewPublisher(ch channelPublisher, exchange, routingKey string) *RabbitmqPublisher {
	return &RabbitmqPublisher{
		Channel:    ch,
		Exchange:   exchange,
		RoutingKey: routingKey,
	}
}

func (rp *RabbitmqPublisher) Publish(ctx context.Context, body utilities.Serializable) error {
	payload, err := body.Serialize()
	if err != nil {
		return err
	}

	return rp.Channel.PublishWithContext(
		ctx,
		rp.Exchange,
		rp.RoutingKey,
		false, false,
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         payload,
			Timestamp:    time.Now(),
			DeliveryMode: amqp.Persistent,
		},
	)
}
