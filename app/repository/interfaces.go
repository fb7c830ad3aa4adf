package repository

import (
	"time"

	"github.com/brewlogic/BrewLogic/app/models"
	"gorm.io/gorm"
)

// UserRepository defines the interface for user-related database operations
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id uint) (*models.User, error)
	GetByUsername(username string) (*models.User, error)
	GetByUsernameOrEmail(identifier string) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	Save(user *models.User) error
	Delete(id uint) error
	List() ([]models.User, error)
	Count() (int64, error)
	CountActiveMembers(now time.Time) (int64, error)
	CountPendingMembers() (int64, error)
}

// TransactionRepository defines the interface for purchase records
type TransactionRepository interface {
	Create(tx *models.Transaction) error
	GetByID(id string) (*models.Transaction, error)
	List() ([]models.Transaction, error)
	UpdateStatus(id, status string) error
	Delete(id string) error
	SumAmountByStatus(statuses []string) (int64, error)
}

// ProductRepository defines the interface for membership packages
type ProductRepository interface {
	List() ([]models.Product, error)
	GetByID(id string) (*models.Product, error)
	Save(product *models.Product) error
	Delete(id string) error
	Move(id string, direction int) error
	Count() (int64, error)
}

// VoucherRepository defines the interface for discount codes
type VoucherRepository interface {
	List() ([]models.Voucher, error)
	GetActiveByCode(code string) (*models.Voucher, error)
	Create(voucher *models.Voucher) error
	Delete(id uint) error
}

// GrinderRepository defines the interface for the public grinder listing
type GrinderRepository interface {
	List() ([]models.Grinder, error)
	Create(grinder *models.Grinder) error
	Delete(id uint) error
	ReplaceAll(grinders []models.Grinder) error
}

// DripperRepository defines the interface for the public dripper listing
type DripperRepository interface {
	List() ([]models.Dripper, error)
	Create(dripper *models.Dripper) error
	Delete(id uint) error
	ReplaceAll(drippers []models.Dripper) error
}

// BankAccountRepository defines the interface for manual transfer targets
type BankAccountRepository interface {
	List() ([]models.BankAccount, error)
	ListActive() ([]models.BankAccount, error)
	Create(account *models.BankAccount) error
	Delete(id uint) error
}

// SiteConfigRepository reads and writes keyed JSON documents
type SiteConfigRepository interface {
	GetSiteConfig(key string) (*models.SiteConfig, error)
	SaveSiteConfig(cfg *models.SiteConfig) error
}

// Repositories struct holds all repository instances
type Repositories struct {
	User        UserRepository
	Transaction TransactionRepository
	Product     ProductRepository
	Voucher     VoucherRepository
	Grinder     GrinderRepository
	Dripper     DripperRepository
	BankAccount BankAccountRepository
	SiteConfig  SiteConfigRepository
}

// NewRepositories creates a new instance of all repositories
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		User:        NewUserRepository(db),
		Transaction: NewTransactionRepository(db),
		Product:     NewProductRepository(db),
		Voucher:     NewVoucherRepository(db),
		Grinder:     NewGrinderRepository(db),
		Dripper:     NewDripperRepository(db),
		BankAccount: NewBankAccountRepository(db),
		SiteConfig:  NewSiteConfigRepository(db),
	}
}
