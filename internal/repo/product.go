package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/abu-huda81/shop_backend/internal/models"
)

func (r *GormRepo) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	if err := r.DB.WithContext(ctx).Preload("Images").First(&product, id).Error; err != nil {
		return nil, translate(err)
	}
	return &product, nil
}

func (r *GormRepo) ListProducts(ctx context.Context, offset, limit int) (int64, []models.Product, error) {
	var total int64
	if err := r.DB.WithContext(ctx).Model(&models.Product{}).Count(&total).Error; err != nil {
		return 0, nil, translate(err)
	}

	var items []models.Product
	if err := r.DB.WithContext(ctx).
		Preload("Images").
		Order("id ASC").
		Offset(offset).
		Limit(limit).
		Find(&items).Error; err != nil {
		return 0, nil, translate(err)
	}

	return total, items, nil
}

// CreateProduct writes the product and its image rows in one transaction.
func (r *GormRepo) CreateProduct(ctx context.Context, prod *models.Product, imageURLs []string) (*models.Product, error) {
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(prod).Error; err != nil {
			return err
		}
		for _, url := range imageURLs {
			img := models.ProductImage{ProductID: prod.ID, ImageURL: url}
			if err := tx.Create(&img).Error; err != nil {
				return err
			}
			prod.Images = append(prod.Images, img)
		}
		return nil
	})
	if err != nil {
		return nil, translate(err)
	}
	return prod, nil
}

// UpdateProduct replaces the product's fields and, when imageURLs is
// non-nil, its image set, all inside one transaction.
func (r *GormRepo) UpdateProduct(ctx context.Context, id uint, fields models.Product, imageURLs []string) (*models.Product, error) {
	var prod models.Product
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&prod, id).Error; err != nil {
			return err
		}

		prod.Name = fields.Name
		prod.Description = fields.Description
		prod.Price = fields.Price
		prod.NewPrice = fields.NewPrice

		if err := tx.Save(&prod).Error; err != nil {
			return err
		}

		if imageURLs != nil {
			if err := tx.Where("product_id = ?", prod.ID).Delete(&models.ProductImage{}).Error; err != nil {
				return err
			}
			prod.Images = nil
			for _, url := range imageURLs {
				img := models.ProductImage{ProductID: prod.ID, ImageURL: url}
				if err := tx.Create(&img).Error; err != nil {
					return err
				}
				prod.Images = append(prod.Images, img)
			}
			return nil
		}

		return tx.Where("product_id = ?", prod.ID).Find(&prod.Images).Error
	})
	if err != nil {
		return nil, translate(err)
	}
	return &prod, nil
}

func (r *GormRepo) DeleteProduct(ctx context.Context, id uint) error {
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", id).Delete(&models.ProductImage{}).Error; err != nil {
			return err
		}

		res := tx.Delete(&models.Product{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		return translate(err)
	}
	return nil
}

func (r *GormRepo) CountProducts(ctx context.Context) (int64, error) {
	var total int64
	if err := r.DB.WithContext(ctx).Model(&models.Product{}).Count(&total).Error; err != nil {
		return 0, translate(err)
	}
	return total, nil
}
