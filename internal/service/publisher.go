package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/iliyamo/venue-booking/internal/queue"
)

// AMQPPublisher publishes listing events to RabbitMQ. It dials per message,
// which is plenty for the write rate of a booking directory.
type AMQPPublisher struct {
	URL    string
	Logger *log.Logger
}

// NewAMQPPublisher returns a publisher for the broker at url.
func NewAMQPPublisher(url string, logger *log.Logger) *AMQPPublisher {
	return &AMQPPublisher{URL: url, Logger: logger.WithPrefix("rabbitmq")}
}

// Publish sends event to the listing.created queue as a persistent JSON
// message. Errors are logged and returned so the caller can ignore them.
func (p *AMQPPublisher) Publish(ctx context.Context, event queue.ListingEvent) error {
	conn, err := amqp.Dial(p.URL)
	if err != nil {
		p.Logger.Warn("dial failed", "err", err)
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		p.Logger.Warn("channel open failed", "err", err)
		return err
	}
	defer func() { _ = ch.Close() }()

	// Durable so messages survive broker restarts.
	if _, err := ch.QueueDeclare(
		queue.ListingQueueName, // name
		true,                   // durable
		false,                  // autoDelete
		false,                  // exclusive
		false,                  // noWait
		nil,                    // args
	); err != nil {
		p.Logger.Warn("queue declare failed", "err", err)
		return err
	}

	body, err := json.Marshal(event)
	if err != nil {
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}

	if err := ch.PublishWithContext(ctx,
		"",                     // default exchange
		queue.ListingQueueName, // routing key = queue name
		false,                  // mandatory
		false,                  // immediate
		pub,
	); err != nil {
		p.Logger.Warn("publish failed", "err", err)
		return err
	}
	return nil
}
