package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Publisher sends events to a RabbitMQ broker. Each publish dials a fresh
// connection: the event volume is one message per ticket sale, far below the
// point where connection reuse matters, and a fresh dial means a broker
// restart never leaves the service holding a dead channel.
type Publisher struct {
	url string
}

// NewPublisher constructs a Publisher for the given AMQP URL.
func NewPublisher(url string) *Publisher {
	return &Publisher{url: url}
}

// PublishTicketIssued delivers a TicketIssuedEvent to the ticket.issued
// queue as a persistent JSON message. The queue is declared durable on every
// publish (idempotent). Errors are returned for the caller to log; callers
// must not fail the purchase over them.
func (p *Publisher) PublishTicketIssued(ctx context.Context, event TicketIssuedEvent) error {
	conn, err := amqp.Dial(p.url)
	if err != nil {
		return fmt.Errorf("queue.Publisher: dial: %w", err)
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("queue.Publisher: channel: %w", err)
	}
	defer ch.Close()

	if _, err := ch.QueueDeclare(
		TicketIssuedQueue,
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,
	); err != nil {
		return fmt.Errorf("queue.Publisher: declare: %w", err)
	}

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("queue.Publisher: marshal: %w", err)
	}

	err = ch.PublishWithContext(ctx,
		"",                // default exchange
		TicketIssuedQueue, // routing key = queue name
		false,             // mandatory
		false,             // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now().UTC(),
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("queue.Publisher: publish: %w", err)
	}
	return nil
}
