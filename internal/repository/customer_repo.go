package repository

import (
	"context"

	"gorm.io/gorm"

	"cinema-booking/internal/model"
)

type CustomerRepo interface {
	WithTx(tx *gorm.DB) CustomerRepo
	Create(customer *model.Customer) error
	GetByID(id uint) (*model.Customer, error)
	// DebitPoints subtracts points only when the balance covers them;
	// it reports whether the debit was applied.
	DebitPoints(id uint, points int) (bool, error)
	CreditPoints(id uint, points int) error
}

type customerRepoGorm struct {
	db *gorm.DB
}

var _ CustomerRepo = (*customerRepoGorm)(nil)

func NewCustomerRepoGorm(db *gorm.DB) *customerRepoGorm {
	return &customerRepoGorm{
		db: db,
	}
}

func (r *customerRepoGorm) WithTx(tx *gorm.DB) CustomerRepo {
	return &customerRepoGorm{
		db: tx,
	}
}

func (r *customerRepoGorm) Create(customer *model.Customer) error {
	ctx := context.Background()
	return gorm.G[model.Customer](r.db).Create(ctx, customer)
}

func (r *customerRepoGorm) GetByID(id uint) (*model.Customer, error) {
	ctx := context.Background()
	customer, err := gorm.G[model.Customer](r.db).Where(&model.Customer{ID: id}).First(ctx)
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *customerRepoGorm) DebitPoints(id uint, points int) (bool, error) {
	if points == 0 {
		return true, nil
	}
	res := r.db.Model(&model.Customer{}).
		Where("id = ? AND loyalty_points >= ?", id, points).
		Update("loyalty_points", gorm.Expr("loyalty_points - ?", points))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *customerRepoGorm) CreditPoints(id uint, points int) error {
	if points == 0 {
		return nil
	}
	return r.db.Model(&model.Customer{}).
		Where("id = ?", id).
		Update("loyalty_points", gorm.Expr("loyalty_points + ?", points)).Error
}
