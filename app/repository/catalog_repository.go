package repository

import (
	"strings"

	"github.com/brewlogic/BrewLogic/app/models"
	"gorm.io/gorm"
)

type voucherRepository struct {
	db *gorm.DB
}

func NewVoucherRepository(db *gorm.DB) VoucherRepository {
	return &voucherRepository{db: db}
}

func (r *voucherRepository) List() ([]models.Voucher, error) {
	var vouchers []models.Voucher
	err := r.db.Order("created_at DESC").Find(&vouchers).Error
	return vouchers, err
}

// GetActiveByCode looks a code up case-insensitively.
func (r *voucherRepository) GetActiveByCode(code string) (*models.Voucher, error) {
	var v models.Voucher
	err := r.db.Where("code = ? AND is_active = ?", strings.ToUpper(strings.TrimSpace(code)), true).First(&v).Error
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *voucherRepository) Create(voucher *models.Voucher) error {
	voucher.Code = strings.ToUpper(strings.TrimSpace(voucher.Code))
	return r.db.Create(voucher).Error
}

func (r *voucherRepository) Delete(id uint) error {
	return deleteByID(r.db, &models.Voucher{}, id)
}

type grinderRepository struct {
	db *gorm.DB
}

func NewGrinderRepository(db *gorm.DB) GrinderRepository {
	return &grinderRepository{db: db}
}

func (r *grinderRepository) List() ([]models.Grinder, error) {
	var grinders []models.Grinder
	err := r.db.Order("name ASC").Find(&grinders).Error
	return grinders, err
}

func (r *grinderRepository) Create(grinder *models.Grinder) error {
	return r.db.Create(grinder).Error
}

func (r *grinderRepository) Delete(id uint) error {
	return deleteByID(r.db, &models.Grinder{}, id)
}

// ReplaceAll purges the table and inserts grinders in one transaction.
func (r *grinderRepository) ReplaceAll(grinders []models.Grinder) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.Grinder{}).Error; err != nil {
			return err
		}
		if len(grinders) == 0 {
			return nil
		}
		return tx.CreateInBatches(grinders, 100).Error
	})
}

type dripperRepository struct {
	db *gorm.DB
}

func NewDripperRepository(db *gorm.DB) DripperRepository {
	return &dripperRepository{db: db}
}

func (r *dripperRepository) List() ([]models.Dripper, error) {
	var drippers []models.Dripper
	err := r.db.Order("brand ASC").Order("name ASC").Find(&drippers).Error
	return drippers, err
}

func (r *dripperRepository) Create(dripper *models.Dripper) error {
	return r.db.Create(dripper).Error
}

func (r *dripperRepository) Delete(id uint) error {
	return deleteByID(r.db, &models.Dripper{}, id)
}

func (r *dripperRepository) ReplaceAll(drippers []models.Dripper) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.Dripper{}).Error; err != nil {
			return err
		}
		if len(drippers) == 0 {
			return nil
		}
		return tx.CreateInBatches(drippers, 100).Error
	})
}

type bankAccountRepository struct {
	db *gorm.DB
}

func NewBankAccountRepository(db *gorm.DB) BankAccountRepository {
	return &bankAccountRepository{db: db}
}

func (r *bankAccountRepository) List() ([]models.BankAccount, error) {
	var accounts []models.BankAccount
	err := r.db.Order("id ASC").Find(&accounts).Error
	return accounts, err
}

func (r *bankAccountRepository) ListActive() ([]models.BankAccount, error) {
	var accounts []models.BankAccount
	err := r.db.Where("is_active = ?", true).Order("id ASC").Find(&accounts).Error
	return accounts, err
}

func (r *bankAccountRepository) Create(account *models.BankAccount) error {
	return r.db.Create(account).Error
}

func (r *bankAccountRepository) Delete(id uint) error {
	return deleteByID(r.db, &models.BankAccount{}, id)
}

func deleteByID(db *gorm.DB, model any, id uint) error {
	res := db.Delete(model, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
