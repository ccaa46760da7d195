package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/stockroom/inventory-api/internal/models"
)

func (r *GormRepo) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	if err := r.DB.WithContext(ctx).First(&product, id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *GormRepo) GetProductBySKU(ctx context.Context, sku string) (*models.Product, error) {
	var product models.Product
	if err := r.DB.WithContext(ctx).Where("sku = ?", sku).First(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *GormRepo) ListProducts(ctx context.Context) ([]models.Product, error) {
	var items []models.Product
	if err := r.DB.WithContext(ctx).Order("id ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) CountProducts(ctx context.Context) (int64, error) {
	var total int64
	if err := r.DB.WithContext(ctx).Model(&models.Product{}).Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

func (r *GormRepo) CreateProduct(ctx context.Context, p *models.Product) error {
	var count int64
	if err := r.DB.WithContext(ctx).Model(&models.Product{}).
		Where("sku = ?", p.SKU).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrSKUAlreadyExist
	}
	return r.DB.WithContext(ctx).Create(p).Error
}

// ReplaceProduct overwrites sku, name and stock of an existing product. The
// new sku must not belong to a different product.
func (r *GormRepo) ReplaceProduct(ctx context.Context, id uint, sku, name string, stock int64) (*models.Product, error) {
	var prod models.Product
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&prod, id).Error; err != nil {
			return err
		}

		var count int64
		if err := tx.Model(&models.Product{}).
			Where("sku = ? AND id <> ?", sku, id).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrSKUAlreadyExist
		}

		prod.SKU = sku
		prod.Name = name
		prod.Stock = stock
		return tx.Save(&prod).Error
	})
	if err != nil {
		return nil, err
	}
	return &prod, nil
}

// SetStock replaces the stock counter unconditionally. No read-modify-write
// is involved, plain update atomicity is enough.
func (r *GormRepo) SetStock(ctx context.Context, id uint, stock int64) (*models.Product, error) {
	res := r.DB.WithContext(ctx).Model(&models.Product{}).
		Where("id = ?", id).
		Update("stock", stock)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetProduct(ctx, id)
}

// AdjustStock applies a signed delta as a single conditional UPDATE: the
// non-negativity predicate and the increment execute in one statement, so
// two concurrent deltas can never both pass the check against a stale value.
func (r *GormRepo) AdjustStock(ctx context.Context, id uint, delta int64) (*models.Product, error) {
	res := r.DB.WithContext(ctx).Model(&models.Product{}).
		Where("id = ? AND stock + ? >= 0", id, delta).
		Update("stock", gorm.Expr("stock + ?", delta))
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		var exists int64
		if err := r.DB.WithContext(ctx).Model(&models.Product{}).
			Where("id = ?", id).Count(&exists).Error; err != nil {
			return nil, err
		}
		if exists == 0 {
			return nil, gorm.ErrRecordNotFound
		}
		return nil, ErrInsufficientStock
	}
	return r.GetProduct(ctx, id)
}

func (r *GormRepo) DeleteProduct(ctx context.Context, id uint) error {
	res := r.DB.WithContext(ctx).Delete(&models.Product{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
