package mq

import "time"

// Queue names and message definitions

// immediate queue of ticket lifecycle events
// the events consumer keeps sales tallies and writes the audit log
const (
	TicketSoldQueue      = "ticket.sold.immediate"
	TicketCancelledQueue = "ticket.cancelled.immediate"
	TicketCheckedInQueue = "ticket.checkedin.immediate"
)

type TicketSoldMessage struct {
	TicketID         uint    `json:"ticket_id"`
	SessionID        uint    `json:"session_id"`
	SeatID           uint    `json:"seat_id"`
	CustomerID       uint    `json:"customer_id"`
	PricePaid        float64 `json:"price_paid"`
	EarlyReservation bool    `json:"early_reservation"`
}

type TicketCancelledMessage struct {
	TicketID  uint `json:"ticket_id"`
	SessionID uint `json:"session_id"`
	SeatID    uint `json:"seat_id"`
}

type TicketCheckedInMessage struct {
	TicketID     uint `json:"ticket_id"`
	SessionID    uint `json:"session_id"`
	PointsEarned int  `json:"points_earned"`
}

// delay queue for early-reservation pickup reminders
// a sale with earlyReservation publishes here; the message dead-letters
// into the reminder queue when its TTL runs out
const (
	ReservationReminderDelayQueue = "reservation.reminder.delay"
	ReservationReminderQueue      = "reservation.reminder.immediate"
	ReservationReminderExchange   = "reservation.reminder.exchange"
	ReservationReminderRoutingKey = "reservation.reminder"

	ReservationReminderDelay = 15 * time.Minute
)

type ReservationReminderMessage struct {
	TicketID  uint `json:"ticket_id"`
	SessionID uint `json:"session_id"`
}
