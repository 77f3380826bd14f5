package domain

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"cinema-booking/internal/layout"
	"cinema-booking/internal/model"
	"cinema-booking/internal/repository"
	"cinema-booking/internal/service"
)

type RoomService interface {
	CreateRoom(input *model.CreateRoomInput) (*model.Room, error)
	GetRoomByID(id uint) (*model.Room, error)
	// RegenerateLayout replaces the room's seat grid wholesale. It is
	// rejected while any active ticket references one of the room's
	// seats, since regeneration would orphan the ticket.
	RegenerateLayout(roomID uint, input *model.UpdateRoomLayoutInput) (*model.Room, error)
	ListRooms() ([]model.Room, error)
	ListSeats(roomID uint) ([]model.Seat, error)
}

type roomService struct {
	txm        repository.TxManager
	roomRepo   repository.RoomRepo
	seatRepo   repository.SeatRepo
	ticketRepo repository.TicketRepo
	rowWidth   int
	logger     *zap.Logger
}

var _ RoomService = (*roomService)(nil)

func NewRoomService(txm repository.TxManager, roomRepo repository.RoomRepo, seatRepo repository.SeatRepo, ticketRepo repository.TicketRepo, rowWidth int, logger *zap.Logger) *roomService {
	return &roomService{
		txm:        txm,
		roomRepo:   roomRepo,
		seatRepo:   seatRepo,
		ticketRepo: ticketRepo,
		rowWidth:   rowWidth,
		logger:     logger,
	}
}

func (s *roomService) CreateRoom(input *model.CreateRoomInput) (*model.Room, error) {
	if input == nil {
		return nil, service.Invalidf("room input required")
	}
	if err := checkInput(input); err != nil {
		return nil, err
	}

	seats, err := layout.Generate(input.Capacity, input.CoupleSeats, input.PCDSeats, s.rowWidth)
	if err != nil {
		return nil, err
	}

	room := &model.Room{
		Name:        input.Name,
		Type:        input.Type,
		Capacity:    input.Capacity,
		CoupleSeats: input.CoupleSeats,
		PCDSeats:    input.PCDSeats,
		Seats:       seats,
	}
	if err := s.roomRepo.Create(room); err != nil {
		return nil, fmt.Errorf("create room: %w", err)
	}

	s.logger.Info("room created",
		zap.Uint("room_id", room.ID),
		zap.String("type", string(room.Type)),
		zap.Int("capacity", room.Capacity),
		zap.Int("seats", len(room.Seats)))
	return room, nil
}

func (s *roomService) GetRoomByID(id uint) (*model.Room, error) {
	room, err := s.roomRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, service.ErrNotFound
		}
		return nil, err
	}
	return room, nil
}

func (s *roomService) RegenerateLayout(roomID uint, input *model.UpdateRoomLayoutInput) (*model.Room, error) {
	if input == nil {
		return nil, service.Invalidf("layout input required")
	}
	if err := checkInput(input); err != nil {
		return nil, err
	}

	room, err := s.GetRoomByID(roomID)
	if err != nil {
		return nil, err
	}

	seats, err := layout.Generate(input.Capacity, input.CoupleSeats, input.PCDSeats, s.rowWidth)
	if err != nil {
		return nil, err
	}

	err = s.txm.Transaction(func(tx *gorm.DB) error {
		active, err := s.ticketRepo.WithTx(tx).CountActiveByRoom(roomID)
		if err != nil {
			return err
		}
		if active > 0 {
			return service.Conflictf("%d active tickets reference this room's seats", active)
		}

		room.Capacity = input.Capacity
		room.CoupleSeats = input.CoupleSeats
		room.PCDSeats = input.PCDSeats
		return s.roomRepo.WithTx(tx).ReplaceLayout(room, seats)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("room layout regenerated",
		zap.Uint("room_id", roomID),
		zap.Int("capacity", input.Capacity))
	return s.GetRoomByID(roomID)
}

func (s *roomService) ListRooms() ([]model.Room, error) {
	return s.roomRepo.ListAll()
}

func (s *roomService) ListSeats(roomID uint) ([]model.Seat, error) {
	if _, err := s.GetRoomByID(roomID); err != nil {
		return nil, err
	}
	return s.seatRepo.ListByRoom(roomID)
}
