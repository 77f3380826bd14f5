package repository

import (
	"context"

	"gorm.io/gorm"

	"cinema-booking/internal/model"
)

type RoomRepo interface {
	WithTx(tx *gorm.DB) RoomRepo
	Create(room *model.Room) error
	GetByID(id uint) (*model.Room, error)
	// ReplaceLayout discards every seat of the room and inserts the
	// new grid, updating the room's capacity counts in the same call.
	ReplaceLayout(room *model.Room, seats []model.Seat) error
	ListAll() ([]model.Room, error)
}

type roomRepoGorm struct {
	db *gorm.DB
}

var _ RoomRepo = (*roomRepoGorm)(nil)

func NewRoomRepoGorm(db *gorm.DB) *roomRepoGorm {
	return &roomRepoGorm{
		db: db,
	}
}

func (r *roomRepoGorm) WithTx(tx *gorm.DB) RoomRepo {
	return &roomRepoGorm{
		db: tx,
	}
}

func (r *roomRepoGorm) Create(room *model.Room) error {
	// Seats are created through the association in one insert.
	return r.db.Create(room).Error
}

func (r *roomRepoGorm) GetByID(id uint) (*model.Room, error) {
	var room model.Room
	if err := r.db.Preload("Seats").First(&room, id).Error; err != nil {
		return nil, err
	}
	return &room, nil
}

func (r *roomRepoGorm) ReplaceLayout(room *model.Room, seats []model.Seat) error {
	if err := r.db.Where("room_id = ?", room.ID).Delete(&model.Seat{}).Error; err != nil {
		return err
	}
	for i := range seats {
		seats[i].RoomID = room.ID
	}
	if len(seats) > 0 {
		if err := r.db.Create(&seats).Error; err != nil {
			return err
		}
	}
	return r.db.Model(room).Updates(map[string]any{
		"capacity":     room.Capacity,
		"couple_seats": room.CoupleSeats,
		"pcd_seats":    room.PCDSeats,
	}).Error
}

func (r *roomRepoGorm) ListAll() ([]model.Room, error) {
	ctx := context.Background()
	return gorm.G[model.Room](r.db).Find(ctx)
}
