package repository

import "gorm.io/gorm"

// TxManager runs a function inside a store transaction. Domain
// services depend on this seam instead of *gorm.DB directly so tests
// can run them against in-memory repositories.
type TxManager interface {
	Transaction(fn func(tx *gorm.DB) error) error
}

type gormTxManager struct {
	db *gorm.DB
}

var _ TxManager = (*gormTxManager)(nil)

func NewTxManager(db *gorm.DB) *gormTxManager {
	return &gormTxManager{db: db}
}

func (m *gormTxManager) Transaction(fn func(tx *gorm.DB) error) error {
	return m.db.Transaction(fn)
}
