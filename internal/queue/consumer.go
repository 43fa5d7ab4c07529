package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	amqp "github.com/rabbitmq/amqp091-go"
)

// StartListingConsumer connects to RabbitMQ, declares the listing.created
// queue (durable) and appends each message to logPath as a single line. It
// reconnects with backoff until ctx is cancelled and then returns ctx.Err().
// A message that cannot be handled is rejected without requeue.
func StartListingConsumer(ctx context.Context, url, logPath string, logger *log.Logger) error {
	logger = logger.WithPrefix("listing-consumer")
	backoff := time.Second
	for {
		conn, err := amqp.Dial(url)
		if err != nil {
			logger.Warn("failed to dial broker", "err", err, "retry", backoff)
			if !sleep(ctx, backoff) {
				return ctx.Err()
			}
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second

		err = consumeLoop(ctx, conn, logPath, logger)
		_ = conn.Close()
		if ctx.Err() != nil {
			return ctx.Err()
		}
		logger.Warn("consume loop ended, reconnecting", "err", err)
		if !sleep(ctx, 2*time.Second) {
			return ctx.Err()
		}
	}
}

func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

func consumeLoop(ctx context.Context, conn *amqp.Connection, logPath string, logger *log.Logger) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(50, 0, false); err != nil {
		logger.Warn("set QoS failed", "err", err)
	}

	if _, err := ch.QueueDeclare(ListingQueueName, true, false, false, false, nil); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}

	msgs, err := ch.ConsumeWithContext(ctx, ListingQueueName, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume: %w", err)
	}

	for d := range msgs {
		if err := HandleMessage(d.Body, logPath); err != nil {
			logger.Error("handle message failed", "err", err)
			_ = d.Nack(false, false)
			continue
		}
		_ = d.Ack(false)
	}
	return errors.New("deliveries channel closed")
}

// HandleMessage decodes one ListingEvent and appends its line to logPath,
// creating the parent directory when missing.
func HandleMessage(body []byte, logPath string) error {
	var ev ListingEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return fmt.Errorf("unmarshal: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(logPath), 0o755); err != nil {
		return fmt.Errorf("mkdir logs: %w", err)
	}
	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(FormatLine(ev)); err != nil {
		return fmt.Errorf("write log: %w", err)
	}
	return nil
}

// FormatLine renders ev as one newline-terminated log line.
func FormatLine(ev ListingEvent) string {
	switch ev.Kind {
	case KindShow:
		return fmt.Sprintf("[%s] Show listed | show_id=%d | venue_id=%d | artist_id=%d | start_time=%s\n",
			ev.ListedAt, ev.ID, ev.VenueID, ev.ArtistID, ev.StartTime)
	case KindVenue:
		return fmt.Sprintf("[%s] Venue listed | venue_id=%d | name=%q\n", ev.ListedAt, ev.ID, ev.Name)
	case KindArtist:
		return fmt.Sprintf("[%s] Artist listed | artist_id=%d | name=%q\n", ev.ListedAt, ev.ID, ev.Name)
	}
	return fmt.Sprintf("[%s] Listing | kind=%s | id=%d\n", ev.ListedAt, ev.Kind, ev.ID)
}
