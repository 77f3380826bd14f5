// Package pricing implements the session pricing pipeline and the
// per-ticket amount computation. All amounts are in R$.
package pricing

import (
	"cinema-booking/config"
	"cinema-booking/internal/model"
)

type Calculator struct {
	cfg   config.Pricing
	table map[model.SessionType]Policy
}

func NewCalculator(cfg config.Pricing) *Calculator {
	return &Calculator{cfg: cfg, table: buildTable(cfg)}
}

// SessionPrice runs the pipeline in its fixed order: room-type
// surcharge, then format surcharge, then the session-type adjustment
// from the policy table.
func (c *Calculator) SessionPrice(basePrice float64, roomType model.RoomType, threeD bool, sessionType model.SessionType) float64 {
	price := basePrice

	switch roomType {
	case model.RoomVIP:
		price += c.cfg.VIPSurcharge
	case model.RoomXD:
		price += c.cfg.XDSurcharge
	case model.Room4D:
		price += c.cfg.FourDSurcharge
	}

	if threeD {
		price += c.cfg.ThreeDSurcharge
	}

	policy := c.PolicyFor(sessionType)
	price = price*policy.PriceFactor + policy.Surcharge

	return price
}

// Quote is the per-ticket amount breakdown produced by TicketQuote.
type Quote struct {
	Base            float64 // session final price before ticket adjustments
	LoyaltyDiscount float64
	CouponDiscount  float64
	ReservationFee  float64
	Total           float64
}

// TicketQuote applies the ticket-side steps to a session's final
// price: variant halving, coupon discount, loyalty discount, and the
// early-reservation fee. The total never goes below zero before the
// fee is added.
func (c *Calculator) TicketQuote(sessionPrice float64, variant model.TicketVariant, couponApplied bool, loyaltyPoints int, earlyReservation bool) Quote {
	q := Quote{Base: sessionPrice}

	price := sessionPrice
	if variant == model.VariantHalf {
		price /= 2
	}

	if couponApplied {
		q.CouponDiscount = c.cfg.CouponDiscount
		price -= q.CouponDiscount
	}

	q.LoyaltyDiscount = float64(loyaltyPoints) * c.cfg.PointValue
	price -= q.LoyaltyDiscount

	if price < 0 {
		price = 0
	}

	if earlyReservation {
		q.ReservationFee = c.cfg.ReservationFee
		price += q.ReservationFee
	}

	q.Total = price
	return q
}

// Settle resolves payment for a quoted total. Cash requires the
// tendered amount to cover the total and returns the change; every
// other method settles exactly.
func Settle(method model.PaymentMethod, amountTendered, total float64) (tendered, change float64, ok bool) {
	if method == model.PaymentCash {
		if amountTendered < total {
			return 0, 0, false
		}
		return amountTendered, amountTendered - total, true
	}
	return total, 0, true
}

// EarnedPoints is the loyalty credit granted at check-in: one point
// per whole R$ paid.
func EarnedPoints(pricePaid float64) int {
	return int(pricePaid)
}
