package seed

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/brewlogic/BrewLogic/app/models"
	"github.com/brewlogic/BrewLogic/internal/pkg/billing"
	"github.com/brewlogic/BrewLogic/internal/pkg/brewing"
)

type hardware struct {
	grinders []models.Grinder
	drippers []models.Dripper
	err      error
}

func (h *hardware) grinderStore() grinderFunc { return func(g []models.Grinder) error { h.grinders = g; return h.err } }
func (h *hardware) dripperStore() dripperFunc { return func(d []models.Dripper) error { h.drippers = d; return nil } }

type grinderFunc func([]models.Grinder) error

func (f grinderFunc) ReplaceAll(g []models.Grinder) error { return f(g) }

type dripperFunc func([]models.Dripper) error

func (f dripperFunc) ReplaceAll(d []models.Dripper) error { return f(d) }

func TestHardwareSkipsUncalibratedGrinders(t *testing.T) {
	catalog := brewing.NewCatalog(
		[]brewing.GrinderProfile{
			{ID: "c40", Name: "Comandante C40", Unit: "Klik", Coarse: brewing.Range{Min: 30, Max: 35}, Medium: brewing.Range{Min: 24, Max: 28}, Fine: brewing.Range{Min: 14, Max: 18}},
			{ID: brewing.OtherID, Name: "Lainnya"},
		},
		nil,
		[]brewing.Dripper{{Name: "V60", Brand: "Hario", Type: "Cone"}},
	)
	h := &hardware{}

	g, d, err := Hardware(catalog, h.grinderStore(), h.dripperStore())
	require.NoError(t, err)
	assert.Equal(t, 1, g)
	assert.Equal(t, 1, d)
	require.Len(t, h.grinders, 1)
	assert.Equal(t, "30 - 35 Klik", h.grinders[0].Coarse)
	assert.Equal(t, "Hario", h.drippers[0].Brand)
}

func TestHardwareStopsOnGrinderError(t *testing.T) {
	h := &hardware{err: errors.New("db down")}
	_, _, err := Hardware(brewing.DefaultCatalog(), h.grinderStore(), h.dripperStore())
	assert.Error(t, err)
	assert.Nil(t, h.drippers)
}

type voucherStore struct{ codes map[string]bool }

func (s *voucherStore) Create(v *models.Voucher) error {
	if s.codes[v.Code] {
		return gorm.ErrDuplicatedKey
	}
	s.codes[v.Code] = true
	return nil
}

func TestVouchersIsRepeatable(t *testing.T) {
	s := &voucherStore{codes: map[string]bool{}}

	n, err := Vouchers(s)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.True(t, s.codes["BREW10"])

	n, err = Vouchers(s)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

type productStore struct{ saved []models.Product }

func (s *productStore) Save(p *models.Product) error {
	s.saved = append(s.saved, *p)
	return nil
}

func TestProductsKeepOrderAndKnownDurations(t *testing.T) {
	s := &productStore{}
	n, err := Products(s)
	require.NoError(t, err)
	assert.Equal(t, len(DefaultProducts), n)

	for i, p := range s.saved {
		assert.Equal(t, i+1, p.SortOrder)
		assert.NotEmpty(t, p.Features)
		assert.False(t, billing.IsPending(p.Name))
	}
	assert.Equal(t, "Starter Plan", s.saved[0].Name)
}
