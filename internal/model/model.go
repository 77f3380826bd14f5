package model

import (
	"time"
)

type Customer struct {
	ID            uint      `gorm:"primaryKey"`
	Name          string    `gorm:"size:100;not null"`
	Birthdate     time.Time `gorm:"not null"`
	LoyaltyPoints int       `gorm:"not null;default:0"`
}

// AgeAt returns the customer's age in full years at the given instant.
func (c *Customer) AgeAt(at time.Time) int {
	age := at.Year() - c.Birthdate.Year()
	anniversary := time.Date(at.Year(), c.Birthdate.Month(), c.Birthdate.Day(), 0, 0, 0, 0, at.Location())
	if at.Before(anniversary) {
		age--
	}
	return age
}

type Movie struct {
	ID          uint   `gorm:"primaryKey"`
	Title       string `gorm:"size:100;not null;uniqueIndex"`
	DurationMin int    `gorm:"not null"`
	MinimumAge  int    `gorm:"not null;default:0"` // 0 means unrestricted
	ThreeD      bool   `gorm:"not null;default:false"`
}

type RoomType string

const (
	RoomNormal RoomType = "NORMAL"
	RoomVIP    RoomType = "VIP"
	RoomXD     RoomType = "XD"
	Room4D     RoomType = "4D"
)

type Room struct {
	ID          uint     `gorm:"primaryKey"`
	Name        string   `gorm:"size:50;not null;uniqueIndex"`
	Type        RoomType `gorm:"type:varchar(16);not null"`
	Capacity    int      `gorm:"not null"`
	CoupleSeats int      `gorm:"not null;default:0"`
	PCDSeats    int      `gorm:"not null;default:0"`
	Seats       []Seat   `gorm:"foreignKey:RoomID;constraint:OnDelete:CASCADE"`
}

type SeatType string

const (
	SeatNormal     SeatType = "NORMAL"
	SeatCouple     SeatType = "COUPLE"
	SeatAccessible SeatType = "ACCESSIBLE"
)

// Seat is owned by its room and regenerated wholesale when the room
// layout changes. Occupancy is not stored here: a seat is taken for
// a given session exactly when an active ticket for that
// (session, seat) pair exists. The row column is named seat_row
// because row is a reserved word in postgres.
type Seat struct {
	ID     uint     `gorm:"primaryKey"`
	RoomID uint     `gorm:"not null;index;uniqueIndex:idx_room_row_number,priority:1"`
	Row    string   `gorm:"column:seat_row;size:4;not null;uniqueIndex:idx_room_row_number,priority:2"`
	Number int      `gorm:"not null;uniqueIndex:idx_room_row_number,priority:3"`
	Type   SeatType `gorm:"type:varchar(16);not null"`
}

// SessionSeat is a seat annotated with its occupancy for one session.
type SessionSeat struct {
	Seat
	Occupied bool `json:"occupied"`
}

type SessionType string

const (
	SessionRegular     SessionType = "REGULAR"
	SessionMatinee     SessionType = "MATINEE"
	SessionPreRelease  SessionType = "PRE_RELEASE"
	SessionEvent       SessionType = "EVENT"
	SessionSpecialBaby SessionType = "SPECIAL_BABY"
	SessionSpecialPet  SessionType = "SPECIAL_PET"
)

type Session struct {
	ID      uint `gorm:"primaryKey"`
	RoomID  uint `gorm:"not null;index"`
	MovieID uint `gorm:"not null;index"`
	// StartsAt/EndsAt form the room occupancy window; EndsAt is
	// derived from the movie duration whenever the session is
	// created or rescheduled.
	StartsAt   time.Time   `gorm:"not null"`
	EndsAt     time.Time   `gorm:"not null"`
	BasePrice  float64     `gorm:"not null"`
	FinalPrice float64     `gorm:"not null"`
	Type       SessionType `gorm:"type:varchar(16);not null;default:'REGULAR'"`
	Language   string      `gorm:"size:32"`

	// Event metadata is only meaningful for SessionEvent; the
	// scheduler clears it for every other type.
	EventName    string `gorm:"size:100"`
	EventPartner string `gorm:"size:100"`
	EventSlug    string `gorm:"size:120"`
}

// WindowEnd computes the occupancy window end for a movie duration.
func WindowEnd(start time.Time, movie *Movie) time.Time {
	return start.Add(time.Duration(movie.DurationMin) * time.Minute)
}

type TicketVariant string

const (
	VariantFull TicketVariant = "FULL"
	VariantHalf TicketVariant = "HALF"
)

type PaymentMethod string

const (
	PaymentCash PaymentMethod = "CASH"
	PaymentCard PaymentMethod = "CARD"
	PaymentPix  PaymentMethod = "PIX"
)

type TicketStatus string

const (
	TicketSold      TicketStatus = "SOLD"
	TicketCheckedIn TicketStatus = "CHECKED_IN"
)

// Ticket rows exist only while active: cancellation deletes the row,
// so the unique (session, seat) index is exactly the one-active-ticket
// -per-seat-per-session invariant, enforced by the store itself.
type Ticket struct {
	ID         uint   `gorm:"primaryKey"`
	Code       string `gorm:"size:36;not null;uniqueIndex"`
	SessionID  uint   `gorm:"not null;uniqueIndex:idx_ticket_session_seat,priority:1"`
	SeatID     uint   `gorm:"not null;index;uniqueIndex:idx_ticket_session_seat,priority:2"`
	CustomerID uint   `gorm:"not null;index"`

	Variant    TicketVariant `gorm:"type:varchar(8);not null"`
	HalfReason string        `gorm:"size:100"`

	PricePaid      float64       `gorm:"not null"`
	PaymentMethod  PaymentMethod `gorm:"type:varchar(8);not null"`
	AmountTendered float64       `gorm:"not null"`
	Change         float64       `gorm:"not null"`
	ReservationFee float64       `gorm:"not null;default:0"`
	PointsSpent    int           `gorm:"not null;default:0"`
	PointsEarned   int           `gorm:"not null;default:0"`
	CourtesyItem   string        `gorm:"size:50"`

	Status      TicketStatus `gorm:"type:varchar(16);not null;default:'SOLD'"`
	IssuedAt    time.Time    `gorm:"not null"`
	CheckedInAt *time.Time
}
