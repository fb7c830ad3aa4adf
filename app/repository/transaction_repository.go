package repository

import (
	"github.com/brewlogic/BrewLogic/app/models"
	"gorm.io/gorm"
)

type transactionRepository struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) TransactionRepository {
	return &transactionRepository{db: db}
}

func (r *transactionRepository) Create(tx *models.Transaction) error {
	return r.db.Create(tx).Error
}

func (r *transactionRepository) GetByID(id string) (*models.Transaction, error) {
	var tx models.Transaction
	if err := r.db.Where("id = ?", id).First(&tx).Error; err != nil {
		return nil, err
	}
	return &tx, nil
}

// List returns all transactions, newest first
func (r *transactionRepository) List() ([]models.Transaction, error) {
	var txs []models.Transaction
	err := r.db.Order("created_at DESC").Find(&txs).Error
	return txs, err
}

func (r *transactionRepository) UpdateStatus(id, status string) error {
	res := r.db.Model(&models.Transaction{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *transactionRepository) Delete(id string) error {
	res := r.db.Where("id = ?", id).Delete(&models.Transaction{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// SumAmountByStatus totals amount over transactions in any of statuses.
func (r *transactionRepository) SumAmountByStatus(statuses []string) (int64, error) {
	var total int64
	err := r.db.Model(&models.Transaction{}).
		Where("status IN ?", statuses).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	return total, err
}
