package repository

import (
	"gorm.io/gorm"

	"cinema-booking/internal/model"
)

type SeatRepo interface {
	WithTx(tx *gorm.DB) SeatRepo
	GetByID(id uint) (*model.Seat, error)
	// GetByPosition locates a seat by (row, number) within a room.
	GetByPosition(roomID uint, row string, number int) (*model.Seat, error)
	ListByRoom(roomID uint) ([]model.Seat, error)
	CountByRoom(roomID uint) (int64, error)
}

type seatRepoGorm struct {
	db *gorm.DB
}

var _ SeatRepo = (*seatRepoGorm)(nil)

func NewSeatRepoGorm(db *gorm.DB) *seatRepoGorm {
	return &seatRepoGorm{
		db: db,
	}
}

func (r *seatRepoGorm) WithTx(tx *gorm.DB) SeatRepo {
	return &seatRepoGorm{
		db: tx,
	}
}

func (r *seatRepoGorm) GetByID(id uint) (*model.Seat, error) {
	var seat model.Seat
	if err := r.db.First(&seat, id).Error; err != nil {
		return nil, err
	}
	return &seat, nil
}

func (r *seatRepoGorm) GetByPosition(roomID uint, row string, number int) (*model.Seat, error) {
	var seat model.Seat
	err := r.db.
		Where("room_id = ? AND seat_row = ? AND number = ?", roomID, row, number).
		First(&seat).Error
	if err != nil {
		return nil, err
	}
	return &seat, nil
}

func (r *seatRepoGorm) ListByRoom(roomID uint) ([]model.Seat, error) {
	var seats []model.Seat
	err := r.db.
		Where("room_id = ?", roomID).
		Order("seat_row ASC, number ASC").
		Find(&seats).Error
	return seats, err
}

func (r *seatRepoGorm) CountByRoom(roomID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.Seat{}).
		Where("room_id = ?", roomID).
		Count(&count).Error
	return count, err
}
