// Package seed loads reference rows into an empty or stale database.
package seed

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/brewlogic/BrewLogic/app/models"
	"github.com/brewlogic/BrewLogic/internal/pkg/brewing"
)

type GrinderReplacer interface {
	ReplaceAll(grinders []models.Grinder) error
}

type DripperReplacer interface {
	ReplaceAll(drippers []models.Dripper) error
}

type VoucherCreator interface {
	Create(voucher *models.Voucher) error
}

type ProductSaver interface {
	Save(product *models.Product) error
}

// DefaultVouchers are created by Vouchers.
var DefaultVouchers = []models.Voucher{
	{Code: "BREW10", DiscountType: models.DiscountPercentage, DiscountValue: 10, IsActive: true},
}

func int64Ptr(v int64) *int64 { return &v }

// DefaultProducts are the membership packages offered out of the box. The
// names carry the keywords that plan durations are derived from.
var DefaultProducts = []models.Product{
	{
		ID: "starter", Name: "Starter Plan", Price: 29000, Duration: "1 Bulan",
		Description: "Coba BrewLogic selama sebulan.",
		Features:    []string{"Resep AI tanpa batas", "Kalibrasi grinder", "Export resep"},
	},
	{
		ID: "home", Name: "Home Brewer Plan", Price: 79000, Duration: "3 Bulan",
		MonthlyPrice: int64Ptr(26333), SavingsText: "Hemat 9%",
		Description: "Untuk penyeduh rumahan yang konsisten.",
		Features:    []string{"Semua fitur Starter", "Profil air mineral", "Prioritas dukungan"},
	},
	{
		ID: "pro", Name: "Pro Plan", Price: 149000, Duration: "6 Bulan",
		MonthlyPrice: int64Ptr(24833), SavingsText: "Hemat 14%", IsBestSeller: true,
		Description: "Paling populer di kalangan home barista.",
		Features:    []string{"Semua fitur Home Brewer", "Kalibrasi manual grinder", "Resep kompetisi"},
	},
	{
		ID: "master", Name: "Master Plan", Price: 249000, Duration: "1 Tahun",
		MonthlyPrice: int64Ptr(20750), SavingsText: "Hemat 28%", PromoText: "Best value",
		Description: "Setahun penuh eksplorasi seduh presisi.",
		Features:    []string{"Semua fitur Pro", "Akses fitur baru lebih awal"},
	},
}

// Hardware replaces the grinder and dripper listings with the built-in
// catalog. Grinders without calibration data are skipped.
func Hardware(catalog *brewing.Catalog, grinders GrinderReplacer, drippers DripperReplacer) (int, int, error) {
	var gs []models.Grinder
	for _, g := range catalog.Grinders() {
		if !g.Calibrated() {
			continue
		}
		gs = append(gs, models.Grinder{
			Name:   g.Name,
			Type:   g.Unit,
			Coarse: brewing.FormatSetting(g.Coarse, g.Unit),
			Medium: brewing.FormatSetting(g.Medium, g.Unit),
			Fine:   brewing.FormatSetting(g.Fine, g.Unit),
		})
	}
	var ds []models.Dripper
	for _, d := range catalog.Drippers() {
		ds = append(ds, models.Dripper{Name: d.Name, Brand: d.Brand, Type: d.Type})
	}

	if err := grinders.ReplaceAll(gs); err != nil {
		return 0, 0, fmt.Errorf("seed grinders: %w", err)
	}
	if err := drippers.ReplaceAll(ds); err != nil {
		return len(gs), 0, fmt.Errorf("seed drippers: %w", err)
	}
	return len(gs), len(ds), nil
}

// Vouchers creates the default vouchers. Codes that already exist are left
// alone.
func Vouchers(repo VoucherCreator) (int, error) {
	created := 0
	for _, v := range DefaultVouchers {
		if err := repo.Create(&v); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				continue
			}
			return created, fmt.Errorf("seed voucher %s: %w", v.Code, err)
		}
		created++
	}
	return created, nil
}

// Products upserts the default packages in display order.
func Products(repo ProductSaver) (int, error) {
	for i, p := range DefaultProducts {
		p.SortOrder = i + 1
		if err := repo.Save(&p); err != nil {
			return i, fmt.Errorf("seed product %s: %w", p.ID, err)
		}
	}
	return len(DefaultProducts), nil
}
