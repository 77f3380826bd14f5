package domain

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"cinema-booking/config"
	"cinema-booking/internal/layout"
	"cinema-booking/internal/model"
	"cinema-booking/internal/pricing"
)

func testConfig() *config.Config {
	return &config.Config{
		Pricing: config.Pricing{
			VIPSurcharge:        15,
			XDSurcharge:         10,
			FourDSurcharge:      12,
			ThreeDSurcharge:     5,
			MatineeFactor:       0.75,
			PreReleaseSurcharge: 8,
			ReservationFee:      3,
			CouponDiscount:      5,
			PointValue:          0.10,
		},
		Booking: config.Booking{
			CancellationLead: 24 * time.Hour,
			RowWidth:         10,
		},
	}
}

type testEnv struct {
	store *fakeStore
	clock *clockwork.FakeClock

	rooms    *roomService
	sessions *sessionService
	tickets  *ticketService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	cfg := testConfig()
	store := newFakeStore()
	clk := clockwork.NewFakeClockAt(time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC))
	logger := zap.NewNop()
	calc := pricing.NewCalculator(cfg.Pricing)

	txm := fakeTxManager{}
	roomRepo := &fakeRoomRepo{store: store}
	seatRepo := &fakeSeatRepo{store: store}
	sessionRepo := &fakeSessionRepo{store: store}
	ticketRepo := &fakeTicketRepo{store: store}
	customerRepo := &fakeCustomerRepo{store: store}
	movieRepo := &fakeMovieRepo{store: store}

	return &testEnv{
		store:    store,
		clock:    clk,
		rooms:    NewRoomService(txm, roomRepo, seatRepo, ticketRepo, cfg.Booking.RowWidth, logger),
		sessions: NewSessionService(txm, sessionRepo, roomRepo, movieRepo, ticketRepo, calc, logger),
		tickets:  NewTicketService(txm, ticketRepo, seatRepo, sessionRepo, movieRepo, customerRepo, calc, clk, cfg.Booking.CancellationLead, logger),
	}
}

func (e *testEnv) addMovie(t *testing.T, durationMin, minimumAge int, threeD bool) *model.Movie {
	t.Helper()
	movie := &model.Movie{
		Title:       "movie",
		DurationMin: durationMin,
		MinimumAge:  minimumAge,
		ThreeD:      threeD,
	}
	repo := &fakeMovieRepo{store: e.store}
	require.NoError(t, repo.Create(movie))
	return movie
}

func (e *testEnv) addCustomer(t *testing.T, birthdate time.Time, points int) *model.Customer {
	t.Helper()
	customer := &model.Customer{
		Name:          "customer",
		Birthdate:     birthdate,
		LoyaltyPoints: points,
	}
	repo := &fakeCustomerRepo{store: e.store}
	require.NoError(t, repo.Create(customer))
	return customer
}

func (e *testEnv) addRoom(t *testing.T, roomType model.RoomType, capacity, coupleSeats, pcdSeats int) *model.Room {
	t.Helper()
	seats, err := layout.Generate(capacity, coupleSeats, pcdSeats, 10)
	require.NoError(t, err)
	room := &model.Room{
		Name:        "room",
		Type:        roomType,
		Capacity:    capacity,
		CoupleSeats: coupleSeats,
		PCDSeats:    pcdSeats,
		Seats:       seats,
	}
	repo := &fakeRoomRepo{store: e.store}
	require.NoError(t, repo.Create(room))
	return room
}

func (e *testEnv) addSession(t *testing.T, room *model.Room, movie *model.Movie, startsAt time.Time, basePrice float64, sessionType model.SessionType) *model.Session {
	t.Helper()
	session, err := e.sessions.CreateSession(&model.CreateSessionInput{
		RoomID:    room.ID,
		MovieID:   movie.ID,
		StartsAt:  startsAt,
		BasePrice: basePrice,
		Type:      sessionType,
	})
	require.NoError(t, err)
	return session
}

func (e *testEnv) customerBalance(t *testing.T, id uint) int {
	t.Helper()
	repo := &fakeCustomerRepo{store: e.store}
	customer, err := repo.GetByID(id)
	require.NoError(t, err)
	return customer.LoyaltyPoints
}

func (e *testEnv) seat(t *testing.T, id uint) *model.Seat {
	t.Helper()
	repo := &fakeSeatRepo{store: e.store}
	seat, err := repo.GetByID(id)
	require.NoError(t, err)
	return seat
}

// seatTaken reports whether an active ticket holds the seat for the
// session.
func (e *testEnv) seatTaken(sessionID, seatID uint) bool {
	repo := &fakeTicketRepo{store: e.store}
	_, err := repo.GetActiveBySessionSeat(sessionID, seatID)
	return err == nil
}
