package repository

import (
	"github.com/brewlogic/BrewLogic/app/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type siteConfigRepository struct {
	db *gorm.DB
}

func NewSiteConfigRepository(db *gorm.DB) SiteConfigRepository {
	return &siteConfigRepository{db: db}
}

// GetSiteConfig returns gorm.ErrRecordNotFound when key was never saved.
func (r *siteConfigRepository) GetSiteConfig(key string) (*models.SiteConfig, error) {
	var cfg models.SiteConfig
	if err := r.db.Where("key = ?", key).First(&cfg).Error; err != nil {
		return nil, err
	}
	return &cfg, nil
}

// SaveSiteConfig inserts the row or replaces its value.
func (r *siteConfigRepository) SaveSiteConfig(cfg *models.SiteConfig) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(cfg).Error
}
