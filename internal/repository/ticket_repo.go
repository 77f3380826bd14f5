package repository

import (
	"context"

	"gorm.io/gorm"

	"cinema-booking/internal/model"
)

type TicketRepo interface {
	WithTx(tx *gorm.DB) TicketRepo
	Create(ticket *model.Ticket) error
	GetByID(id uint) (*model.Ticket, error)
	Update(ticket *model.Ticket) error
	Delete(id uint) error
	ListBySessionID(sessionID uint) ([]model.Ticket, error)
	// GetActiveBySessionSeat returns the active ticket holding the
	// seat for the session, or gorm.ErrRecordNotFound when the seat
	// is free for it. Cancellation deletes ticket rows, so existence
	// alone means occupied.
	GetActiveBySessionSeat(sessionID, seatID uint) (*model.Ticket, error)
	// CountActiveByRoom counts non-cancelled tickets whose seats
	// belong to the room; it gates destructive layout regeneration.
	CountActiveByRoom(roomID uint) (int64, error)
	CountActiveBySession(sessionID uint) (int64, error)
}

type ticketRepoGorm struct {
	db *gorm.DB
}

var _ TicketRepo = (*ticketRepoGorm)(nil)

func NewTicketRepoGorm(db *gorm.DB) *ticketRepoGorm {
	return &ticketRepoGorm{
		db: db,
	}
}

func (r *ticketRepoGorm) WithTx(tx *gorm.DB) TicketRepo {
	return &ticketRepoGorm{
		db: tx,
	}
}

func (r *ticketRepoGorm) Create(ticket *model.Ticket) error {
	ctx := context.Background()
	return gorm.G[model.Ticket](r.db).Create(ctx, ticket)
}

func (r *ticketRepoGorm) GetByID(id uint) (*model.Ticket, error) {
	ctx := context.Background()
	ticket, err := gorm.G[model.Ticket](r.db).Where(&model.Ticket{ID: id}).First(ctx)
	if err != nil {
		return nil, err
	}
	return &ticket, nil
}

func (r *ticketRepoGorm) Update(ticket *model.Ticket) error {
	return r.db.Save(ticket).Error
}

func (r *ticketRepoGorm) Delete(id uint) error {
	return r.db.Delete(&model.Ticket{}, id).Error
}

func (r *ticketRepoGorm) ListBySessionID(sessionID uint) ([]model.Ticket, error) {
	ctx := context.Background()
	return gorm.G[model.Ticket](r.db).Where(&model.Ticket{SessionID: sessionID}).Find(ctx)
}

func (r *ticketRepoGorm) GetActiveBySessionSeat(sessionID, seatID uint) (*model.Ticket, error) {
	ctx := context.Background()
	ticket, err := gorm.G[model.Ticket](r.db).
		Where(&model.Ticket{SessionID: sessionID, SeatID: seatID}).
		First(ctx)
	if err != nil {
		return nil, err
	}
	return &ticket, nil
}

func (r *ticketRepoGorm) CountActiveByRoom(roomID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.Ticket{}).
		Joins("JOIN seats ON seats.id = tickets.seat_id").
		Where("seats.room_id = ?", roomID).
		Count(&count).Error
	return count, err
}

func (r *ticketRepoGorm) CountActiveBySession(sessionID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.Ticket{}).
		Where("session_id = ?", sessionID).
		Count(&count).Error
	return count, err
}
