package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"cinema-booking/internal/model"
)

type SessionRepo interface {
	WithTx(tx *gorm.DB) SessionRepo
	Create(session *model.Session) error
	GetByID(id uint) (*model.Session, error)
	Update(session *model.Session) error
	Delete(id uint) error
	ListByMovieID(movieID uint) ([]model.Session, error)
	ListByRoomID(roomID uint) ([]model.Session, error)
	ListAll() ([]model.Session, error)
	// FindOverlapping returns the sessions in the room whose
	// occupancy window overlaps [start, end) half-open, excluding
	// excludeID (0 to exclude nothing).
	FindOverlapping(roomID uint, start, end time.Time, excludeID uint) ([]model.Session, error)
}

type sessionRepoGorm struct {
	db *gorm.DB
}

var _ SessionRepo = (*sessionRepoGorm)(nil)

func NewSessionRepoGorm(db *gorm.DB) *sessionRepoGorm {
	return &sessionRepoGorm{
		db: db,
	}
}

func (r *sessionRepoGorm) WithTx(tx *gorm.DB) SessionRepo {
	return &sessionRepoGorm{
		db: tx,
	}
}

func (r *sessionRepoGorm) Create(session *model.Session) error {
	ctx := context.Background()
	return gorm.G[model.Session](r.db).Create(ctx, session)
}

func (r *sessionRepoGorm) GetByID(id uint) (*model.Session, error) {
	ctx := context.Background()
	session, err := gorm.G[model.Session](r.db).Where(&model.Session{ID: id}).First(ctx)
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *sessionRepoGorm) Update(session *model.Session) error {
	return r.db.Save(session).Error
}

func (r *sessionRepoGorm) Delete(id uint) error {
	return r.db.Delete(&model.Session{}, id).Error
}

func (r *sessionRepoGorm) ListByMovieID(movieID uint) ([]model.Session, error) {
	ctx := context.Background()
	return gorm.G[model.Session](r.db).Where(&model.Session{MovieID: movieID}).Find(ctx)
}

func (r *sessionRepoGorm) ListByRoomID(roomID uint) ([]model.Session, error) {
	ctx := context.Background()
	return gorm.G[model.Session](r.db).Where(&model.Session{RoomID: roomID}).Find(ctx)
}

func (r *sessionRepoGorm) ListAll() ([]model.Session, error) {
	ctx := context.Background()
	return gorm.G[model.Session](r.db).Find(ctx)
}

func (r *sessionRepoGorm) FindOverlapping(roomID uint, start, end time.Time, excludeID uint) ([]model.Session, error) {
	var sessions []model.Session
	q := r.db.
		Where("room_id = ? AND starts_at < ? AND ends_at > ?", roomID, end, start)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	err := q.Find(&sessions).Error
	return sessions, err
}
