package payment

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"

	"github.com/brewlogic/BrewLogic/app/models"
	"github.com/brewlogic/BrewLogic/internal/pkg/env"
)

type MidtransKeys struct {
	ServerKey string `json:"serverKey"`
	ClientKey string `json:"clientKey"`
}

type XenditKeys struct {
	SecretKey     string `json:"secretKey"`
	CallbackToken string `json:"callbackToken,omitempty"`
}

type GatewayKeys struct {
	Xendit   XenditKeys   `json:"xendit"`
	Midtrans MidtransKeys `json:"midtrans"`
}

// Settings is the payment_settings document edited by admins.
type Settings struct {
	IsProduction bool        `json:"isProduction"`
	Sandbox      GatewayKeys `json:"sandbox"`
	Production   GatewayKeys `json:"production"`
}

// Active returns the key set for the current mode.
func (s Settings) Active() GatewayKeys {
	if s.IsProduction {
		return s.Production
	}
	return s.Sandbox
}

// ConfigStore reads and writes site_config rows.
type ConfigStore interface {
	GetSiteConfig(key string) (*models.SiteConfig, error)
	SaveSiteConfig(cfg *models.SiteConfig) error
}

// EnvSettings builds settings from the process environment. Both modes get
// the same keys.
func EnvSettings() Settings {
	keys := GatewayKeys{
		Xendit: XenditKeys{
			SecretKey:     env.GetEnv("XENDIT_SECRET_KEY", ""),
			CallbackToken: env.GetEnv("XENDIT_CALLBACK_TOKEN", ""),
		},
		Midtrans: MidtransKeys{
			ServerKey: env.GetEnv("MIDTRANS_SERVER_KEY", ""),
			ClientKey: env.GetEnv("MIDTRANS_CLIENT_KEY", ""),
		},
	}
	return Settings{
		IsProduction: env.GetEnvBool("XENDIT_IS_PRODUCTION", false) || env.GetEnvBool("MIDTRANS_IS_PRODUCTION", false),
		Sandbox:      keys,
		Production:   keys,
	}
}

// LoadSettings reads payment settings from the store, falling back to the
// environment when the row is missing or unreadable.
func LoadSettings(store ConfigStore) Settings {
	raw, err := loadRaw(store)
	if err != nil || raw == nil {
		return EnvSettings()
	}
	var s Settings
	if err := json.Unmarshal(raw, &s); err != nil {
		log.Warnf("[Payment] payment_settings unreadable, using environment: %v", err)
		return EnvSettings()
	}
	return s
}

// RawSettings returns the stored document as a generic map so that admin
// edits round-trip unknown keys.
func RawSettings(store ConfigStore) (map[string]any, error) {
	raw, err := loadRaw(store)
	if err != nil || raw == nil {
		return toMap(EnvSettings())
	}
	out := map[string]any{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return toMap(EnvSettings())
	}
	return out, nil
}

// UpdateSettings merges patch into the stored document: isProduction is
// replaced when it is a bool, sandbox and production are merged one level
// deep, anything else is ignored.
func UpdateSettings(store ConfigStore, patch map[string]any) (map[string]any, error) {
	current, err := RawSettings(store)
	if err != nil {
		return nil, err
	}
	merged := MergeSettings(current, patch)

	row, err := models.NewSiteConfig(models.SiteConfigPaymentSettings, merged)
	if err != nil {
		return nil, err
	}
	if err := store.SaveSiteConfig(row); err != nil {
		return nil, fmt.Errorf("save payment settings: %w", err)
	}
	return merged, nil
}

// MergeSettings applies patch to current in place and returns it.
func MergeSettings(current, patch map[string]any) map[string]any {
	if current == nil {
		current = map[string]any{}
	}
	if v, ok := patch["isProduction"].(bool); ok {
		current["isProduction"] = v
	}
	for _, mode := range []string{"sandbox", "production"} {
		p, ok := patch[mode].(map[string]any)
		if !ok {
			continue
		}
		base, _ := current[mode].(map[string]any)
		if base == nil {
			base = map[string]any{}
		}
		for k, v := range p {
			base[k] = v
		}
		current[mode] = base
	}
	return current
}

func loadRaw(store ConfigStore) ([]byte, error) {
	if store == nil {
		return nil, nil
	}
	row, err := store.GetSiteConfig(models.SiteConfigPaymentSettings)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Warnf("[Payment] payment_settings fetch failed, using environment: %v", err)
		}
		return nil, err
	}
	if len(row.Value) == 0 {
		return nil, nil
	}
	return row.Value, nil
}

func toMap(s Settings) (map[string]any, error) {
	raw, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	out := map[string]any{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}
