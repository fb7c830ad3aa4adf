// Package sitecontent serves the editable landing page copy stored in
// site_config.
package sitecontent

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2/log"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"

	"github.com/brewlogic/BrewLogic/app/models"
	"github.com/brewlogic/BrewLogic/internal/pkg/apperror"
)

//go:embed defaults.yaml
var embeddedDefaults []byte

// Store reads and writes site_config rows.
type Store interface {
	GetSiteConfig(key string) (*models.SiteConfig, error)
	SaveSiteConfig(cfg *models.SiteConfig) error
}

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// Defaults returns a fresh copy of the built-in content.
func Defaults() map[string]any {
	out := map[string]any{}
	if err := yaml.Unmarshal(embeddedDefaults, &out); err != nil {
		panic(fmt.Sprintf("sitecontent: embedded defaults: %v", err))
	}
	return out
}

// All returns the stored document, or the defaults when nothing was saved
// or the row cannot be read.
func (s *Service) All() map[string]any {
	row, err := s.store.GetSiteConfig(models.SiteConfigSiteContent)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Warnf("[Content] site_content fetch failed, using defaults: %v", err)
		}
		return Defaults()
	}
	out := map[string]any{}
	if err := row.Decode(&out); err != nil || len(out) == 0 {
		return Defaults()
	}
	return out
}

// Section returns one section, or an empty object when it does not exist.
func (s *Service) Section(name string) map[string]any {
	if sec, ok := s.All()[name].(map[string]any); ok {
		return sec
	}
	return map[string]any{}
}

// UpdateSection merges patch into the section one level deep and saves the
// whole document. It returns the merged section.
func (s *Service) UpdateSection(name string, patch map[string]any) (map[string]any, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperror.Invalid("section", "is required")
	}
	content := s.All()
	sec, _ := content[name].(map[string]any)
	if sec == nil {
		sec = map[string]any{}
	}
	for k, v := range patch {
		sec[k] = v
	}
	content[name] = sec

	row, err := models.NewSiteConfig(models.SiteConfigSiteContent, content)
	if err != nil {
		return nil, err
	}
	if err := s.store.SaveSiteConfig(row); err != nil {
		return nil, apperror.External("datastore", fmt.Errorf("save site content: %w", err))
	}
	return sec, nil
}
