package workflow

import (
	"encoding/json"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"cinema-booking/internal/cache"
	"cinema-booking/internal/mq"
)

// EventsWorkflow consumes the ticket lifecycle queues: it keeps the
// per-session sales tallies in redis and writes the audit log.
type EventsWorkflow struct {
	cache  *cache.RedisCache
	logger *zap.Logger
}

func NewEventsWorkflow(cache *cache.RedisCache, logger *zap.Logger) *EventsWorkflow {
	return &EventsWorkflow{
		cache:  cache,
		logger: logger,
	}
}

func (w *EventsWorkflow) Start(mqConn *amqp.Connection) error {
	if err := w.consume(mqConn, mq.TicketSoldQueue, w.handleSold); err != nil {
		return err
	}
	if err := w.consume(mqConn, mq.TicketCancelledQueue, w.handleCancelled); err != nil {
		return err
	}
	if err := w.consume(mqConn, mq.TicketCheckedInQueue, w.handleCheckedIn); err != nil {
		return err
	}
	return w.consume(mqConn, mq.ReservationReminderQueue, w.handleReminder)
}

func (w *EventsWorkflow) consume(conn *amqp.Connection, queue string, handle func(amqp.Delivery) error) error {
	ch, err := mq.NewChannel(conn)
	if err != nil {
		return err
	}

	msgs, err := ch.Consume(queue, "", false, false, false, false, nil)
	if err != nil {
		return err
	}

	go func() {
		for msg := range msgs {
			if err := handle(msg); err != nil {
				w.logger.Error("ticket event not handled", zap.String("queue", queue), zap.Error(err))
			}
		}
	}()

	return nil
}

func (w *EventsWorkflow) handleSold(msg amqp.Delivery) error {
	var message mq.TicketSoldMessage
	if err := json.Unmarshal(msg.Body, &message); err != nil {
		msg.Nack(false, false)
		return err
	}

	if err := w.cache.BumpSalesTally(message.SessionID); err != nil {
		msg.Nack(false, true)
		return err
	}

	w.logger.Info("ticket sold",
		zap.Uint("ticket_id", message.TicketID),
		zap.Uint("session_id", message.SessionID),
		zap.Float64("price_paid", message.PricePaid))
	msg.Ack(false)
	return nil
}

func (w *EventsWorkflow) handleCancelled(msg amqp.Delivery) error {
	var message mq.TicketCancelledMessage
	if err := json.Unmarshal(msg.Body, &message); err != nil {
		msg.Nack(false, false)
		return err
	}

	if err := w.cache.DropSalesTally(message.SessionID); err != nil {
		msg.Nack(false, true)
		return err
	}

	w.logger.Info("ticket cancelled",
		zap.Uint("ticket_id", message.TicketID),
		zap.Uint("session_id", message.SessionID))
	msg.Ack(false)
	return nil
}

func (w *EventsWorkflow) handleCheckedIn(msg amqp.Delivery) error {
	var message mq.TicketCheckedInMessage
	if err := json.Unmarshal(msg.Body, &message); err != nil {
		msg.Nack(false, false)
		return err
	}

	w.logger.Info("ticket checked in",
		zap.Uint("ticket_id", message.TicketID),
		zap.Uint("session_id", message.SessionID),
		zap.Int("points_earned", message.PointsEarned))
	msg.Ack(false)
	return nil
}

func (w *EventsWorkflow) handleReminder(msg amqp.Delivery) error {
	var message mq.ReservationReminderMessage
	if err := json.Unmarshal(msg.Body, &message); err != nil {
		msg.Nack(false, false)
		return err
	}

	w.logger.Info("early reservation pickup reminder due",
		zap.Uint("ticket_id", message.TicketID),
		zap.Uint("session_id", message.SessionID))
	msg.Ack(false)
	return nil
}
