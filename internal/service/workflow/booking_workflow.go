package workflow

import (
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"cinema-booking/internal/cache"
	"cinema-booking/internal/model"
	"cinema-booking/internal/mq"
	"cinema-booking/internal/service/domain"
)

// BookingWorkflow wraps the ticket service: after the store has
// committed a lifecycle change it maintains the redis counters and
// publishes the matching event. Post-commit failures are logged and
// never alter the domain result.
type BookingWorkflow struct {
	TicketService domain.TicketService
	Cache         *cache.RedisCache
	MQConn        *amqp.Connection
	Logger        *zap.Logger
}

func NewBookingWorkflow(ticketService domain.TicketService, cache *cache.RedisCache, mqConn *amqp.Connection, logger *zap.Logger) *BookingWorkflow {
	return &BookingWorkflow{
		TicketService: ticketService,
		Cache:         cache,
		MQConn:        mqConn,
		Logger:        logger,
	}
}

func (w *BookingWorkflow) Sell(input *model.SellTicketInput) (*model.Ticket, error) {
	ticket, err := w.TicketService.SellTicket(input)
	if err != nil {
		return nil, err
	}

	if err := w.Cache.SeatSold(ticket.SessionID); err != nil {
		w.Logger.Warn("free-seat counter not updated", zap.Uint("session_id", ticket.SessionID), zap.Error(err))
	}

	ch, err := mq.NewChannel(w.MQConn)
	if err != nil {
		w.Logger.Warn("ticket events not published", zap.Uint("ticket_id", ticket.ID), zap.Error(err))
		return ticket, nil
	}
	defer ch.Close()

	if err := mq.SendImmediateMessage(ch, mq.TicketSoldQueue,
		mq.TicketSoldMessage{
			TicketID:         ticket.ID,
			SessionID:        ticket.SessionID,
			SeatID:           ticket.SeatID,
			CustomerID:       ticket.CustomerID,
			PricePaid:        ticket.PricePaid,
			EarlyReservation: ticket.ReservationFee > 0,
		}); err != nil {
		w.Logger.Warn("sold event not published", zap.Uint("ticket_id", ticket.ID), zap.Error(err))
	}

	if ticket.ReservationFee > 0 {
		if err := mq.SendDelayedMessage(ch, mq.ReservationReminderDelayQueue,
			mq.ReservationReminderMessage{
				TicketID:  ticket.ID,
				SessionID: ticket.SessionID,
			}); err != nil {
			w.Logger.Warn("reminder not scheduled", zap.Uint("ticket_id", ticket.ID), zap.Error(err))
		}
	}

	return ticket, nil
}

func (w *BookingWorkflow) Cancel(ticketID uint) error {
	ticket, err := w.TicketService.GetTicketByID(ticketID)
	if err != nil {
		return err
	}
	if err := w.TicketService.CancelTicket(ticketID); err != nil {
		return err
	}

	if err := w.Cache.SeatFreed(ticket.SessionID); err != nil {
		w.Logger.Warn("free-seat counter not updated", zap.Uint("session_id", ticket.SessionID), zap.Error(err))
	}

	w.publish(mq.TicketCancelledQueue, mq.TicketCancelledMessage{
		TicketID:  ticket.ID,
		SessionID: ticket.SessionID,
		SeatID:    ticket.SeatID,
	})
	return nil
}

func (w *BookingWorkflow) CheckIn(ticketID uint) (*model.Ticket, error) {
	ticket, err := w.TicketService.CheckIn(ticketID)
	if err != nil {
		return nil, err
	}

	w.publish(mq.TicketCheckedInQueue, mq.TicketCheckedInMessage{
		TicketID:     ticket.ID,
		SessionID:    ticket.SessionID,
		PointsEarned: ticket.PointsEarned,
	})
	return ticket, nil
}

func (w *BookingWorkflow) publish(queue string, message any) {
	ch, err := mq.NewChannel(w.MQConn)
	if err != nil {
		w.Logger.Warn("ticket event not published", zap.String("queue", queue), zap.Error(err))
		return
	}
	defer ch.Close()

	if err := mq.SendImmediateMessage(ch, queue, message); err != nil {
		w.Logger.Warn("ticket event not published", zap.String("queue", queue), zap.Error(err))
	}
}
