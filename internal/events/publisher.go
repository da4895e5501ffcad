// Package events publishes booking lifecycle events to a RabbitMQ topic
// exchange.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/wb-go/wbf/rabbitmq"
	"github.com/wb-go/wbf/retry"
)

const (
	connectionName  = "artchaos-bot"
	contentTypeJSON = "application/json"
)

type messagePublisher interface {
	Publish(ctx context.Context, body []byte, routingKey string, opts ...rabbitmq.PublishOption) error
}

// Publisher sends JSON messages to one exchange. The underlying client
// redials in the background after the broker drops the connection, and every
// publish opens a fresh channel, so a restart of the broker only fails the
// messages sent while it is down.
type Publisher struct {
	client *rabbitmq.RabbitClient
	pub    messagePublisher
}

func clientConfig(url string) rabbitmq.ClientConfig {
	return rabbitmq.ClientConfig{
		URL:            url,
		ConnectionName: connectionName,
		ConnectTimeout: 5 * time.Second,
		Heartbeat:      10 * time.Second,
		// redial until closed, at a fixed pace
		ReconnectStrat: retry.Strategy{Attempts: 0, Delay: 2 * time.Second, Backoff: 1},
		ProducingStrat: retry.Strategy{Attempts: 4, Delay: 250 * time.Millisecond, Backoff: 2},
	}
}

func NewPublisher(url, exchange string) (*Publisher, error) {
	client, err := rabbitmq.NewClient(clientConfig(url))
	if err != nil {
		return nil, fmt.Errorf("connect rabbitmq: %w", err)
	}

	if err = client.DeclareExchange(exchange, "topic", true, false, false, nil); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}

	return &Publisher{
		client: client,
		pub:    rabbitmq.NewPublisher(client, exchange, contentTypeJSON),
	}, nil
}

func (p *Publisher) PublishJSON(ctx context.Context, key string, v any) error {
	body, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	if err = p.pub.Publish(ctx, body, key, persistent); err != nil {
		return fmt.Errorf("publish %s: %w", key, err)
	}
	return nil
}

func (p *Publisher) Close() error {
	if p.client == nil {
		return nil
	}
	return p.client.Close()
}

func persistent(m *amqp.Publishing) {
	m.DeliveryMode = amqp.Persistent
}
