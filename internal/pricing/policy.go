package pricing

import (
	"cinema-booking/config"
	"cinema-booking/internal/model"
)

// Policy captures the per-session-type rules the engine consults
// instead of scattering type switches across callers: how the final
// price is adjusted, whether event metadata is meaningful, whether
// partner coupons are accepted, and which courtesy item (if any) is
// handed out with every sale.
type Policy struct {
	PriceFactor    float64
	Surcharge      float64
	KeepsEventMeta bool
	PartnerCoupons bool
	CourtesyItem   string
}

func buildTable(cfg config.Pricing) map[model.SessionType]Policy {
	return map[model.SessionType]Policy{
		model.SessionRegular:     {PriceFactor: 1},
		model.SessionMatinee:     {PriceFactor: cfg.MatineeFactor},
		model.SessionPreRelease:  {PriceFactor: 1, Surcharge: cfg.PreReleaseSurcharge, CourtesyItem: "collector poster"},
		model.SessionEvent:       {PriceFactor: 1, KeepsEventMeta: true, PartnerCoupons: true},
		model.SessionSpecialBaby: {PriceFactor: 1},
		model.SessionSpecialPet:  {PriceFactor: 1},
	}
}

// PolicyFor returns the policy for a session type; unknown types fall
// back to the regular policy.
func (c *Calculator) PolicyFor(t model.SessionType) Policy {
	if p, ok := c.table[t]; ok {
		return p
	}
	return c.table[model.SessionRegular]
}
