package mq

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const publisherAppID = "cinema-booking"

// publishJSON is the single publish path: every booking event goes
// out persistent, JSON-encoded, through the default exchange straight
// to the named queue.
func publishJSON(ch *amqp.Channel, queue string, message any) error {
	body, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("marshal message for %s: %w", queue, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err = ch.PublishWithContext(ctx, "", queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		AppId:        publisherAppID,
		Timestamp:    time.Now(),
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("publish to %s: %w", queue, err)
	}
	return nil
}

// SendImmediateMessage publishes to a lifecycle queue for immediate
// consumption.
func SendImmediateMessage(ch *amqp.Channel, queueName string, message any) error {
	return publishJSON(ch, queueName, message)
}

// SendDelayedMessage publishes to a delay queue; the broker dead-
// letters the message to its paired immediate queue when the queue
// TTL expires, so no per-message expiration is set.
func SendDelayedMessage(ch *amqp.Channel, delayQueueName string, message any) error {
	return publishJSON(ch, delayQueueName, message)
}
