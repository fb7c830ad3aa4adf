package sitecontent

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/brewlogic/BrewLogic/app/models"
)

type memStore struct {
	rows    map[string]*models.SiteConfig
	saveErr error
}

func (m *memStore) GetSiteConfig(key string) (*models.SiteConfig, error) {
	if r, ok := m.rows[key]; ok {
		return r, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memStore) SaveSiteConfig(cfg *models.SiteConfig) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.rows[cfg.Key] = cfg
	return nil
}

func TestDefaults(t *testing.T) {
	d := Defaults()
	for _, section := range []string{"hero", "howItWorks", "pricing", "testimonials", "grinder", "faq", "finalCta"} {
		assert.Contains(t, d, section)
	}
	hero := d["hero"].(map[string]any)
	assert.Equal(t, "Start Brewing Now", hero["ctaText"])
	steps := d["howItWorks"].(map[string]any)["steps"].([]any)
	assert.Len(t, steps, 3)
}

func TestSectionFallsBackToDefaults(t *testing.T) {
	s := NewService(&memStore{rows: map[string]*models.SiteConfig{}})
	assert.Equal(t, "FAQ", s.Section("faq")["title"])
	assert.Empty(t, s.Section("nope"))
}

func TestUpdateSectionMerges(t *testing.T) {
	store := &memStore{rows: map[string]*models.SiteConfig{}}
	s := NewService(store)

	sec, err := s.UpdateSection("hero", map[string]any{"title": "Seduh Lebih Baik"})
	require.NoError(t, err)
	assert.Equal(t, "Seduh Lebih Baik", sec["title"])
	assert.Equal(t, "Start Brewing Now", sec["ctaText"], "untouched keys survive")

	require.Contains(t, store.rows, models.SiteConfigSiteContent)
	assert.Equal(t, "Seduh Lebih Baik", s.Section("hero")["title"])
	assert.Equal(t, "FAQ", s.Section("faq")["title"])

	sec, err = s.UpdateSection("promo", map[string]any{"banner": "Diskon"})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"banner": "Diskon"}, sec)
}

func TestUpdateSectionSaveFailure(t *testing.T) {
	s := NewService(&memStore{rows: map[string]*models.SiteConfig{}, saveErr: errors.New("boom")})
	_, err := s.UpdateSection("hero", map[string]any{"title": "x"})
	assert.Error(t, err)
}
