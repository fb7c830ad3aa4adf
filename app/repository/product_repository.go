package repository

import (
	"errors"

	"github.com/brewlogic/BrewLogic/app/models"
	"gorm.io/gorm"
)

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

// List returns packages in display order
func (r *productRepository) List() ([]models.Product, error) {
	var products []models.Product
	err := r.db.Order("sort_order ASC").Order("price ASC").Find(&products).Error
	return products, err
}

func (r *productRepository) GetByID(id string) (*models.Product, error) {
	var p models.Product
	if err := r.db.Where("id = ?", id).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// Save upserts a product. New products are appended at the end of the list.
func (r *productRepository) Save(product *models.Product) error {
	var existing models.Product
	err := r.db.Where("id = ?", product.ID).First(&existing).Error
	switch {
	case err == nil:
		product.CreatedAt = existing.CreatedAt
		return r.db.Save(product).Error
	case errors.Is(err, gorm.ErrRecordNotFound):
		if product.SortOrder == 0 {
			var maxOrder int
			if err := r.db.Model(&models.Product{}).Select("COALESCE(MAX(sort_order), 0)").Scan(&maxOrder).Error; err != nil {
				return err
			}
			product.SortOrder = maxOrder + 1
		}
		return r.db.Create(product).Error
	default:
		return err
	}
}

func (r *productRepository) Delete(id string) error {
	res := r.db.Where("id = ?", id).Delete(&models.Product{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Move swaps the sort order of id with its neighbour. A negative direction
// moves the product up. Moving past either end is a no-op.
func (r *productRepository) Move(id string, direction int) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var products []models.Product
		if err := tx.Order("sort_order ASC").Order("price ASC").Find(&products).Error; err != nil {
			return err
		}
		idx := -1
		for i := range products {
			if products[i].ID == id {
				idx = i
				break
			}
		}
		if idx < 0 {
			return gorm.ErrRecordNotFound
		}
		target := idx + 1
		if direction < 0 {
			target = idx - 1
		}
		if target < 0 || target >= len(products) {
			return nil
		}

		a, b := products[idx], products[target]
		if a.SortOrder == b.SortOrder {
			// Equal orders would swap to the same values; spread them first.
			a.SortOrder, b.SortOrder = idx, target
		}
		if err := tx.Model(&models.Product{}).Where("id = ?", a.ID).Update("sort_order", b.SortOrder).Error; err != nil {
			return err
		}
		return tx.Model(&models.Product{}).Where("id = ?", b.ID).Update("sort_order", a.SortOrder).Error
	})
}

func (r *productRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Product{}).Count(&count).Error
	return count, err
}
