package rabbitmq

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	amqp "github.com/streadway/amqp"
)

// Event is the message body published for every catalog change.
type Event struct {
	Event      string    `json:"event"` // e.g. "gem.created"
	GemID      string    `json:"gem_id,omitempty"`
	Name       string    `json:"name,omitempty"`
	Count      int       `json:"count,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Channel is the subset of *amqp.Channel the client needs.
type Channel interface {
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error)
	Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// Client holds the RabbitMQ connection and channel.
type Client struct {
	conn    *amqp.Connection
	channel Channel
	queue   string
	mu      sync.Mutex // amqp channels are not safe for concurrent publishing
}

// Config holds RabbitMQ connection details.
type Config struct {
	URL   string
	Queue string
}

// NewClient connects to RabbitMQ, opens a channel and declares the event
// queue.
func NewClient(cfg Config) (*Client, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	c, err := newClient(ch, cfg.Queue)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, err
	}
	c.conn = conn
	return c, nil
}

// newClient wraps an already open channel.
func newClient(ch Channel, queue string) (*Client, error) {
	if queue == "" {
		queue = "gem_events"
	}
	_, err := ch.QueueDeclare(
		queue, // name
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		return nil, fmt.Errorf("failed to declare %s: %w", queue, err)
	}
	return &Client{channel: ch, queue: queue}, nil
}

// Queue returns the name of the queue events are published to.
func (c *Client) Queue() string { return c.queue }

// Close closes the RabbitMQ connection and channel.
func (c *Client) Close() error {
	var errs []error
	if c.channel != nil {
		if err := c.channel.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close channel: %w", err))
		}
	}
	if c.conn != nil {
		if err := c.conn.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close connection: %w", err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("errors closing RabbitMQ client: %v", errs)
	}
	return nil
}

// PublishEvent publishes ev as a persistent JSON message on the event
// queue.
func (c *Client) PublishEvent(ev Event) error {
	if c.channel == nil {
		return fmt.Errorf("RabbitMQ channel is not available")
	}
	if ev.OccurredAt.IsZero() {
		ev.OccurredAt = time.Now().UTC()
	}

	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	err = c.channel.Publish(
		"",      // default exchange
		c.queue, // routing key: the queue name
		false,   // mandatory
		false,   // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Type:         ev.Event,
			Body:         body,
			DeliveryMode: amqp.Persistent,
			Timestamp:    ev.OccurredAt,
		})
	if err != nil {
		return fmt.Errorf("failed to publish %s: %w", ev.Event, err)
	}
	return nil
}
