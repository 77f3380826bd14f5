package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"cinema-booking/internal/model"
	"cinema-booking/internal/pricing"
	"cinema-booking/internal/repository"
	"cinema-booking/internal/service"
	"cinema-booking/internal/util"
)

// TicketService is the booking engine: it sells, cancels and checks
// in tickets while holding the one-active-ticket-per-seat-per-session
// invariant under concurrent callers. Occupancy is scoped to the
// session, so the same seat sells independently for every session
// using the room.
type TicketService interface {
	SellTicket(input *model.SellTicketInput) (*model.Ticket, error)
	CancelTicket(ticketID uint) error
	CheckIn(ticketID uint) (*model.Ticket, error)
	GetTicketByID(ticketID uint) (*model.Ticket, error)
	// SessionSeats returns the room's seats annotated with their
	// occupancy for the session.
	SessionSeats(sessionID uint) ([]model.SessionSeat, error)
	TicketQR(ticketID uint) ([]byte, error)
}

type ticketService struct {
	txm          repository.TxManager
	ticketRepo   repository.TicketRepo
	seatRepo     repository.SeatRepo
	sessionRepo  repository.SessionRepo
	movieRepo    repository.MovieRepo
	customerRepo repository.CustomerRepo
	calc         *pricing.Calculator
	clock        clockwork.Clock
	cancelLead   time.Duration
	seatLocks    *keyLocks
	logger       *zap.Logger
}

var _ TicketService = (*ticketService)(nil)

func NewTicketService(txm repository.TxManager, ticketRepo repository.TicketRepo, seatRepo repository.SeatRepo, sessionRepo repository.SessionRepo, movieRepo repository.MovieRepo, customerRepo repository.CustomerRepo, calc *pricing.Calculator, clock clockwork.Clock, cancelLead time.Duration, logger *zap.Logger) *ticketService {
	return &ticketService{
		txm:          txm,
		ticketRepo:   ticketRepo,
		seatRepo:     seatRepo,
		sessionRepo:  sessionRepo,
		movieRepo:    movieRepo,
		customerRepo: customerRepo,
		calc:         calc,
		clock:        clock,
		cancelLead:   cancelLead,
		seatLocks:    newKeyLocks(),
		logger:       logger,
	}
}

func (s *ticketService) SellTicket(input *model.SellTicketInput) (*model.Ticket, error) {
	if input == nil {
		return nil, service.Invalidf("ticket input required")
	}
	if err := checkInput(input); err != nil {
		return nil, err
	}
	if input.Variant == model.VariantHalf && input.HalfReason == "" {
		return nil, service.Invalidf("half ticket requires a reason")
	}

	session, err := s.sessionRepo.GetByID(input.SessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: session %d", service.ErrNotFound, input.SessionID)
		}
		return nil, err
	}
	customer, err := s.customerRepo.GetByID(input.CustomerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: customer %d", service.ErrNotFound, input.CustomerID)
		}
		return nil, err
	}
	// the session always references a movie; a miss here means the
	// store is inconsistent
	movie, err := s.movieRepo.GetByID(session.MovieID)
	if err != nil {
		return nil, service.Internalf("load movie %d: %v", session.MovieID, err)
	}

	// the seat is resolved before any money question so an unknown
	// seat reads as not-found, never as a payment failure
	seat, err := s.seatRepo.GetByPosition(session.RoomID, input.SeatRow, input.SeatNumber)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: seat %s%d", service.ErrNotFound, input.SeatRow, input.SeatNumber)
		}
		return nil, err
	}
	if _, err := s.ticketRepo.GetActiveBySessionSeat(session.ID, seat.ID); err == nil {
		return nil, service.Conflictf("seat %s%d already occupied", seat.Row, seat.Number)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	// Age is taken at the session start, not at purchase time.
	if movie.MinimumAge > 0 && customer.AgeAt(session.StartsAt) < movie.MinimumAge {
		return nil, service.NotAllowedf("movie is rated %d+", movie.MinimumAge)
	}

	policy := s.calc.PolicyFor(session.Type)
	couponApplied := false
	if input.CouponCode != "" {
		if !policy.PartnerCoupons || session.EventPartner == "" {
			return nil, service.Invalidf("coupon not accepted for this session")
		}
		couponApplied = true
	}

	if input.LoyaltyPoints > customer.LoyaltyPoints {
		return nil, service.NotAllowedf("insufficient loyalty points")
	}

	quote := s.calc.TicketQuote(session.FinalPrice, input.Variant, couponApplied, input.LoyaltyPoints, input.EarlyReservation)
	tendered, change, ok := pricing.Settle(input.PaymentMethod, input.AmountTendered, quote.Total)
	if !ok {
		return nil, service.Invalidf("insufficient amount")
	}

	// All validation passed; the check-then-create sequence runs as
	// one atomic unit per (session, seat). The unique ticket index on
	// that pair backs the lock up against writers that don't share
	// this process.
	lockKey := seatLockKey(session.ID, seat.ID)
	s.seatLocks.Lock(lockKey)
	defer s.seatLocks.Unlock(lockKey)

	ticket := &model.Ticket{
		Code:           uuid.NewString(),
		SessionID:      session.ID,
		SeatID:         seat.ID,
		CustomerID:     customer.ID,
		Variant:        input.Variant,
		HalfReason:     input.HalfReason,
		PricePaid:      quote.Total,
		PaymentMethod:  input.PaymentMethod,
		AmountTendered: tendered,
		Change:         change,
		ReservationFee: quote.ReservationFee,
		PointsSpent:    input.LoyaltyPoints,
		CourtesyItem:   policy.CourtesyItem,
		Status:         model.TicketSold,
		IssuedAt:       s.clock.Now(),
	}

	err = s.txm.Transaction(func(tx *gorm.DB) error {
		if _, err := s.ticketRepo.WithTx(tx).GetActiveBySessionSeat(session.ID, seat.ID); err == nil {
			return service.Conflictf("seat %s%d already occupied", seat.Row, seat.Number)
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		debited, err := s.customerRepo.WithTx(tx).DebitPoints(customer.ID, input.LoyaltyPoints)
		if err != nil {
			return err
		}
		if !debited {
			return service.NotAllowedf("insufficient loyalty points")
		}
		if err := s.ticketRepo.WithTx(tx).Create(ticket); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return service.Conflictf("seat %s%d already occupied", seat.Row, seat.Number)
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("ticket sold",
		zap.Uint("ticket_id", ticket.ID),
		zap.Uint("session_id", session.ID),
		zap.String("seat", fmt.Sprintf("%s%d", seat.Row, seat.Number)),
		zap.Float64("price_paid", ticket.PricePaid),
		zap.Int("points_spent", ticket.PointsSpent))
	return ticket, nil
}

func (s *ticketService) CancelTicket(ticketID uint) error {
	ticket, err := s.GetTicketByID(ticketID)
	if err != nil {
		return err
	}
	if ticket.Status == model.TicketCheckedIn {
		return service.NotAllowedf("checked-in tickets cannot be cancelled")
	}

	session, err := s.sessionRepo.GetByID(ticket.SessionID)
	if err != nil {
		return service.Internalf("load session %d: %v", ticket.SessionID, err)
	}
	if s.clock.Now().Add(s.cancelLead).After(session.StartsAt) {
		return service.NotAllowedf("cancellation requires at least %s before the session", s.cancelLead)
	}

	// deleting the ticket row is what frees the seat for the session
	err = s.txm.Transaction(func(tx *gorm.DB) error {
		if ticket.PointsSpent > 0 {
			if err := s.customerRepo.WithTx(tx).CreditPoints(ticket.CustomerID, ticket.PointsSpent); err != nil {
				return err
			}
		}
		return s.ticketRepo.WithTx(tx).Delete(ticket.ID)
	})
	if err != nil {
		return err
	}

	s.logger.Info("ticket cancelled",
		zap.Uint("ticket_id", ticket.ID),
		zap.Uint("session_id", ticket.SessionID),
		zap.Uint("seat_id", ticket.SeatID))
	return nil
}

func (s *ticketService) CheckIn(ticketID uint) (*model.Ticket, error) {
	ticket, err := s.GetTicketByID(ticketID)
	if err != nil {
		return nil, err
	}
	if ticket.Status == model.TicketCheckedIn {
		return nil, service.NotAllowedf("ticket already checked in")
	}

	now := s.clock.Now()
	ticket.Status = model.TicketCheckedIn
	ticket.CheckedInAt = &now
	ticket.PointsEarned = pricing.EarnedPoints(ticket.PricePaid)

	err = s.txm.Transaction(func(tx *gorm.DB) error {
		if err := s.ticketRepo.WithTx(tx).Update(ticket); err != nil {
			return err
		}
		return s.customerRepo.WithTx(tx).CreditPoints(ticket.CustomerID, ticket.PointsEarned)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("ticket checked in",
		zap.Uint("ticket_id", ticket.ID),
		zap.Int("points_earned", ticket.PointsEarned))
	return ticket, nil
}

func (s *ticketService) GetTicketByID(ticketID uint) (*model.Ticket, error) {
	ticket, err := s.ticketRepo.GetByID(ticketID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, service.ErrNotFound
		}
		return nil, err
	}
	return ticket, nil
}

func (s *ticketService) SessionSeats(sessionID uint) ([]model.SessionSeat, error) {
	session, err := s.sessionRepo.GetByID(sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: session %d", service.ErrNotFound, sessionID)
		}
		return nil, err
	}

	seats, err := s.seatRepo.ListByRoom(session.RoomID)
	if err != nil {
		return nil, err
	}
	tickets, err := s.ticketRepo.ListBySessionID(sessionID)
	if err != nil {
		return nil, err
	}

	taken := make(map[uint]bool, len(tickets))
	for _, t := range tickets {
		taken[t.SeatID] = true
	}

	out := make([]model.SessionSeat, 0, len(seats))
	for _, seat := range seats {
		out = append(out, model.SessionSeat{Seat: seat, Occupied: taken[seat.ID]})
	}
	return out, nil
}

func (s *ticketService) TicketQR(ticketID uint) ([]byte, error) {
	ticket, err := s.GetTicketByID(ticketID)
	if err != nil {
		return nil, err
	}
	return util.GenerateQRCode(ticket.Code, 256)
}

func seatLockKey(sessionID, seatID uint) string {
	return fmt.Sprintf("session:%d:seat:%d", sessionID, seatID)
}
