package mq

import (
	amqp "github.com/rabbitmq/amqp091-go"
)

func InitQueues(mqConn *amqp.Connection) error {
	ch, err := NewChannel(mqConn)
	if err != nil {
		return err
	}
	defer ch.Close()

	// setup all needed queues (listed in constants)
	if err := SetupImmediateQueue(ch, TicketSoldQueue); err != nil {
		return err
	}
	if err := SetupImmediateQueue(ch, TicketCancelledQueue); err != nil {
		return err
	}
	if err := SetupImmediateQueue(ch, TicketCheckedInQueue); err != nil {
		return err
	}
	if err := SetupDelayQueue(ch, ReservationReminderDelayQueue, ReservationReminderExchange,
		ReservationReminderQueue, ReservationReminderRoutingKey); err != nil {
		return err
	}

	return nil
}

func NewMQConn(url string) (*amqp.Connection, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}
	return conn, nil
}

func NewChannel(conn *amqp.Connection) (*amqp.Channel, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, err
	}
	return ch, nil
}

func SetupImmediateQueue(ch *amqp.Channel, immediateQueueName string) error {
	_, err := ch.QueueDeclare(immediateQueueName, true, false, false, false, nil)
	return err
}

// the delay queue consists of three parts: delay queue, reminder
// exchange, reminder queue. Produce to the delay queue, consume from
// the reminder queue.
func SetupDelayQueue(ch *amqp.Channel, delayQueueName, reminderExchangeName, reminderQueueName, reminderRoutingKey string) error {
	delayArgs := amqp.Table{
		"x-message-ttl":             int32(ReservationReminderDelay.Milliseconds()),
		"x-dead-letter-exchange":    reminderExchangeName,
		"x-dead-letter-routing-key": reminderRoutingKey,
	}

	if _, err := ch.QueueDeclare(
		delayQueueName, true, false, false, false, delayArgs); err != nil {
		return err
	}

	if err := ch.ExchangeDeclare(reminderExchangeName, "direct", true, false, false, false, nil); err != nil {
		return err
	}

	if _, err := ch.QueueDeclare(reminderQueueName, true, false, false, false, nil); err != nil {
		return err
	}

	return ch.QueueBind(reminderQueueName, reminderRoutingKey, reminderExchangeName, false, nil)
}
