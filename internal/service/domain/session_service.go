package domain

import (
	"errors"
	"fmt"

	"github.com/gosimple/slug"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"cinema-booking/internal/model"
	"cinema-booking/internal/pricing"
	"cinema-booking/internal/repository"
	"cinema-booking/internal/service"
)

type SessionService interface {
	CreateSession(input *model.CreateSessionInput) (*model.Session, error)
	UpdateSession(id uint, input *model.UpdateSessionInput) (*model.Session, error)
	// DeleteSession removes a session administratively; it is
	// rejected while active tickets reference it.
	DeleteSession(id uint) error
	GetSessionByID(id uint) (*model.Session, error)
	GetSessionsByMovieID(movieID uint) ([]model.Session, error)
	GetSessionsByRoomID(roomID uint) ([]model.Session, error)
	GetAllSessions() ([]model.Session, error)
}

type sessionService struct {
	txm         repository.TxManager
	sessionRepo repository.SessionRepo
	roomRepo    repository.RoomRepo
	movieRepo   repository.MovieRepo
	ticketRepo  repository.TicketRepo
	calc        *pricing.Calculator
	roomLocks   *keyLocks
	logger      *zap.Logger
}

var _ SessionService = (*sessionService)(nil)

func NewSessionService(txm repository.TxManager, sessionRepo repository.SessionRepo, roomRepo repository.RoomRepo, movieRepo repository.MovieRepo, ticketRepo repository.TicketRepo, calc *pricing.Calculator, logger *zap.Logger) *sessionService {
	return &sessionService{
		txm:         txm,
		sessionRepo: sessionRepo,
		roomRepo:    roomRepo,
		movieRepo:   movieRepo,
		ticketRepo:  ticketRepo,
		calc:        calc,
		roomLocks:   newKeyLocks(),
		logger:      logger,
	}
}

func (s *sessionService) CreateSession(input *model.CreateSessionInput) (*model.Session, error) {
	if input == nil {
		return nil, service.Invalidf("session input required")
	}
	if err := checkInput(input); err != nil {
		return nil, err
	}
	if input.StartsAt.IsZero() {
		return nil, service.Invalidf("datetime required")
	}
	if input.BasePrice < 0 {
		return nil, service.Invalidf("base price must not be negative")
	}

	room, err := s.roomRepo.GetByID(input.RoomID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: room %d", service.ErrNotFound, input.RoomID)
		}
		return nil, err
	}
	movie, err := s.movieRepo.GetByID(input.MovieID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: movie %d", service.ErrNotFound, input.MovieID)
		}
		return nil, err
	}

	session := &model.Session{
		RoomID:    room.ID,
		MovieID:   movie.ID,
		StartsAt:  input.StartsAt,
		EndsAt:    model.WindowEnd(input.StartsAt, movie),
		BasePrice: input.BasePrice,
		Type:      input.Type,
		Language:  input.Language,
	}
	s.applyEventPolicy(session, input.EventName, input.EventPartner)
	session.FinalPrice = s.calc.SessionPrice(session.BasePrice, room.Type, movie.ThreeD, session.Type)

	// The conflict check and the insert must not interleave with a
	// concurrent creation for the same room.
	lockKey := roomLockKey(room.ID)
	s.roomLocks.Lock(lockKey)
	defer s.roomLocks.Unlock(lockKey)

	err = s.txm.Transaction(func(tx *gorm.DB) error {
		overlaps, err := s.sessionRepo.WithTx(tx).FindOverlapping(room.ID, session.StartsAt, session.EndsAt, 0)
		if err != nil {
			return err
		}
		if len(overlaps) > 0 {
			return service.Conflictf("room %d already has a session in that window", room.ID)
		}
		return s.sessionRepo.WithTx(tx).Create(session)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("session created",
		zap.Uint("session_id", session.ID),
		zap.Uint("room_id", room.ID),
		zap.Uint("movie_id", movie.ID),
		zap.Time("starts_at", session.StartsAt),
		zap.Float64("final_price", session.FinalPrice))
	return session, nil
}

func (s *sessionService) UpdateSession(id uint, input *model.UpdateSessionInput) (*model.Session, error) {
	if input == nil {
		return nil, service.Invalidf("session input required")
	}
	if err := checkInput(input); err != nil {
		return nil, err
	}

	session, err := s.GetSessionByID(id)
	if err != nil {
		return nil, err
	}

	reprice := false
	reschedule := false

	if input.RoomID != nil && *input.RoomID != session.RoomID {
		session.RoomID = *input.RoomID
		reprice = true
		reschedule = true
	}
	if input.MovieID != nil && *input.MovieID != session.MovieID {
		session.MovieID = *input.MovieID
		reprice = true
		reschedule = true
	}
	if input.StartsAt != nil {
		if input.StartsAt.IsZero() {
			return nil, service.Invalidf("datetime required")
		}
		session.StartsAt = *input.StartsAt
		reschedule = true
	}
	if input.BasePrice != nil {
		if *input.BasePrice < 0 {
			return nil, service.Invalidf("base price must not be negative")
		}
		session.BasePrice = *input.BasePrice
		reprice = true
	}
	if input.Type != nil && *input.Type != session.Type {
		session.Type = *input.Type
		reprice = true
	}
	if input.Language != nil {
		session.Language = *input.Language
	}

	eventName := session.EventName
	if input.EventName != nil {
		eventName = *input.EventName
	}
	eventPartner := session.EventPartner
	if input.EventPartner != nil {
		eventPartner = *input.EventPartner
	}
	s.applyEventPolicy(session, eventName, eventPartner)

	room, err := s.roomRepo.GetByID(session.RoomID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: room %d", service.ErrNotFound, session.RoomID)
		}
		return nil, err
	}
	movie, err := s.movieRepo.GetByID(session.MovieID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: movie %d", service.ErrNotFound, session.MovieID)
		}
		return nil, err
	}

	session.EndsAt = model.WindowEnd(session.StartsAt, movie)
	if reprice {
		session.FinalPrice = s.calc.SessionPrice(session.BasePrice, room.Type, movie.ThreeD, session.Type)
	}

	lockKey := roomLockKey(session.RoomID)
	s.roomLocks.Lock(lockKey)
	defer s.roomLocks.Unlock(lockKey)

	err = s.txm.Transaction(func(tx *gorm.DB) error {
		if reschedule {
			overlaps, err := s.sessionRepo.WithTx(tx).FindOverlapping(session.RoomID, session.StartsAt, session.EndsAt, session.ID)
			if err != nil {
				return err
			}
			if len(overlaps) > 0 {
				return service.Conflictf("room %d already has a session in that window", session.RoomID)
			}
		}
		return s.sessionRepo.WithTx(tx).Update(session)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("session updated", zap.Uint("session_id", session.ID))
	return session, nil
}

func (s *sessionService) DeleteSession(id uint) error {
	if _, err := s.GetSessionByID(id); err != nil {
		return err
	}
	return s.txm.Transaction(func(tx *gorm.DB) error {
		active, err := s.ticketRepo.WithTx(tx).CountActiveBySession(id)
		if err != nil {
			return err
		}
		if active > 0 {
			return service.Conflictf("%d active tickets reference session %d", active, id)
		}
		if err := s.sessionRepo.WithTx(tx).Delete(id); err != nil {
			return err
		}
		s.logger.Info("session deleted", zap.Uint("session_id", id))
		return nil
	})
}

func (s *sessionService) GetSessionByID(id uint) (*model.Session, error) {
	session, err := s.sessionRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, service.ErrNotFound
		}
		return nil, err
	}
	return session, nil
}

func (s *sessionService) GetSessionsByMovieID(movieID uint) ([]model.Session, error) {
	return s.sessionRepo.ListByMovieID(movieID)
}

func (s *sessionService) GetSessionsByRoomID(roomID uint) ([]model.Session, error) {
	return s.sessionRepo.ListByRoomID(roomID)
}

func (s *sessionService) GetAllSessions() ([]model.Session, error) {
	return s.sessionRepo.ListAll()
}

// applyEventPolicy keeps event metadata only for session types whose
// policy allows it, clearing stale values everywhere else.
func (s *sessionService) applyEventPolicy(session *model.Session, eventName, eventPartner string) {
	if s.calc.PolicyFor(session.Type).KeepsEventMeta {
		session.EventName = eventName
		session.EventPartner = eventPartner
		session.EventSlug = slug.Make(eventName)
		return
	}
	session.EventName = ""
	session.EventPartner = ""
	session.EventSlug = ""
}

func roomLockKey(roomID uint) string {
	return fmt.Sprintf("room:%d", roomID)
}
