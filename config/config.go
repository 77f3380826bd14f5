package config

import (
	"os"
	"strconv"
	"time"

	"cinema-booking/internal/util"
)

type Config struct {
	DatabaseDSN string
	Addr        string
	CacheURL    string
	MQURL       string

	Pricing Pricing
	Booking Booking
}

// Pricing holds the flat amounts and factors applied by the
// session pricing pipeline and the per-ticket computation.
// Amounts are in R$.
type Pricing struct {
	VIPSurcharge        float64
	XDSurcharge         float64
	FourDSurcharge      float64
	ThreeDSurcharge     float64
	MatineeFactor       float64
	PreReleaseSurcharge float64
	ReservationFee      float64
	CouponDiscount      float64
	PointValue          float64
}

type Booking struct {
	CancellationLead time.Duration
	RowWidth         int
}

func LoadConfig() (*Config, error) {
	if err := util.LoadEnv(); err != nil {
		return nil, err
	}
	return &Config{
		DatabaseDSN: os.Getenv("DATABASE_DSN"),
		Addr:        os.Getenv("ADDR"),
		CacheURL:    os.Getenv("CACHE_URL"),
		MQURL:       os.Getenv("RABBIT_MQ_URL"),
		Pricing:     loadPricing(),
		Booking:     loadBooking(),
	}, nil
}

func loadPricing() Pricing {
	return Pricing{
		VIPSurcharge:        envFloat("PRICE_VIP_SURCHARGE", 15),
		XDSurcharge:         envFloat("PRICE_XD_SURCHARGE", 10),
		FourDSurcharge:      envFloat("PRICE_4D_SURCHARGE", 12),
		ThreeDSurcharge:     envFloat("PRICE_3D_SURCHARGE", 5),
		MatineeFactor:       envFloat("PRICE_MATINEE_FACTOR", 0.75),
		PreReleaseSurcharge: envFloat("PRICE_PRERELEASE_SURCHARGE", 8),
		ReservationFee:      envFloat("PRICE_RESERVATION_FEE", 3),
		CouponDiscount:      envFloat("PRICE_COUPON_DISCOUNT", 5),
		PointValue:          envFloat("LOYALTY_POINT_VALUE", 0.10),
	}
}

func loadBooking() Booking {
	return Booking{
		CancellationLead: time.Duration(envInt("CANCELLATION_LEAD_HOURS", 24)) * time.Hour,
		RowWidth:         envInt("ROOM_ROW_WIDTH", 10),
	}
}

func envFloat(key string, fallback float64) float64 {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fallback
	}
	return v
}

func envInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}
