package model

import "time"

// Input structs carry validator tags; services run them through a
// shared validator before touching the store.

type CreateRoomInput struct {
	Name        string   `json:"name" validate:"required"`
	Type        RoomType `json:"type" validate:"required,oneof=NORMAL VIP XD 4D"`
	Capacity    int      `json:"capacity" validate:"required,gt=0"`
	CoupleSeats int      `json:"coupleSeats" validate:"gte=0"`
	PCDSeats    int      `json:"pcdSeats" validate:"gte=0"`
}

type UpdateRoomLayoutInput struct {
	Capacity    int `json:"capacity" validate:"required,gt=0"`
	CoupleSeats int `json:"coupleSeats" validate:"gte=0"`
	PCDSeats    int `json:"pcdSeats" validate:"gte=0"`
}

type CreateSessionInput struct {
	RoomID    uint        `json:"roomId" validate:"required"`
	MovieID   uint        `json:"movieId" validate:"required"`
	StartsAt  time.Time   `json:"startsAt" validate:"required"`
	BasePrice float64     `json:"basePrice" validate:"gte=0"`
	Type      SessionType `json:"type" validate:"required,oneof=REGULAR MATINEE PRE_RELEASE EVENT SPECIAL_BABY SPECIAL_PET"`
	Language  string      `json:"language" validate:"omitempty,max=32"`

	EventName    string `json:"eventName" validate:"omitempty,max=100"`
	EventPartner string `json:"eventPartner" validate:"omitempty,max=100"`
}

// UpdateSessionInput updates only the fields that are set. Pointer
// fields distinguish "leave alone" from zero values.
type UpdateSessionInput struct {
	RoomID    *uint        `json:"roomId" validate:"omitempty,gt=0"`
	MovieID   *uint        `json:"movieId" validate:"omitempty,gt=0"`
	StartsAt  *time.Time   `json:"startsAt"`
	BasePrice *float64     `json:"basePrice" validate:"omitempty,gte=0"`
	Type      *SessionType `json:"type" validate:"omitempty,oneof=REGULAR MATINEE PRE_RELEASE EVENT SPECIAL_BABY SPECIAL_PET"`
	Language  *string      `json:"language" validate:"omitempty,max=32"`

	EventName    *string `json:"eventName" validate:"omitempty,max=100"`
	EventPartner *string `json:"eventPartner" validate:"omitempty,max=100"`
}

type SellTicketInput struct {
	SessionID  uint   `json:"sessionId" validate:"required"`
	CustomerID uint   `json:"customerId" validate:"required"`
	SeatRow    string `json:"seatRow" validate:"required,max=4"`
	SeatNumber int    `json:"seatNumber" validate:"required,gt=0"`

	Variant    TicketVariant `json:"variant" validate:"required,oneof=FULL HALF"`
	HalfReason string        `json:"halfReason" validate:"required_if=Variant HALF,max=100"`

	PaymentMethod  PaymentMethod `json:"paymentMethod" validate:"required,oneof=CASH CARD PIX"`
	AmountTendered float64       `json:"amountTendered" validate:"gte=0"`

	CouponCode       string `json:"couponCode" validate:"omitempty,max=32"`
	EarlyReservation bool   `json:"earlyReservation"`
	LoyaltyPoints    int    `json:"loyaltyPoints" validate:"gte=0"`
}
