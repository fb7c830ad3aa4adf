package models

import (
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/datatypes"
)

const (
	SiteConfigPaymentSettings = "payment_settings"
	SiteConfigSiteContent     = "site_content"
	SiteConfigQRISImage       = "qris_image"
)

// SiteConfig is a keyed JSON document edited from the admin panel.
type SiteConfig struct {
	Key       string         `gorm:"primaryKey;type:varchar(100)" json:"key" validate:"required,min=1,max=100"`
	Value     datatypes.JSON `gorm:"type:jsonb;not null" json:"value"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
}

// Decode unmarshals the stored value into out.
func (s *SiteConfig) Decode(out any) error {
	if len(s.Value) == 0 {
		return nil
	}
	if err := json.Unmarshal(s.Value, out); err != nil {
		return fmt.Errorf("site config %s: %w", s.Key, err)
	}
	return nil
}

// NewSiteConfig marshals value into a SiteConfig row.
func NewSiteConfig(key string, value any) (*SiteConfig, error) {
	raw, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("site config %s: %w", key, err)
	}
	return &SiteConfig{Key: key, Value: datatypes.JSON(raw)}, nil
}

func (SiteConfig) TableName() string {
	return "site_config"
}
