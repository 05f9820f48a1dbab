package service

import (
	"context"
	"fmt"
	"mime/multipart"

	"github.com/abu-huda81/shop_backend/internal/apperr"
	"github.com/abu-huda81/shop_backend/internal/imagestore"
	"github.com/abu-huda81/shop_backend/internal/logging"
	"github.com/abu-huda81/shop_backend/internal/models"
	"github.com/abu-huda81/shop_backend/internal/repo"
	"github.com/abu-huda81/shop_backend/internal/transport"
)

type CatalogService struct {
	Repo     *repo.GormRepo
	Images   imagestore.Store
	Producer EventPublisher
}

func (s *CatalogService) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	return s.Repo.GetProduct(ctx, id)
}

func (s *CatalogService) ListProducts(ctx context.Context, offset, limit int) (int64, []models.Product, error) {
	return s.Repo.ListProducts(ctx, offset, limit)
}

// saveImages streams the uploaded blobs through the image store and returns
// the URLs to persist. Blobs never reach the repository layer.
func (s *CatalogService) saveImages(ctx context.Context, files []*multipart.FileHeader) ([]string, error) {
	urls := make([]string, 0, len(files))
	for _, fh := range files {
		src, err := fh.Open()
		if err != nil {
			return nil, fmt.Errorf("%w: open upload %s: %v", apperr.ErrValidation, fh.Filename, err)
		}
		url, err := s.Images.Save(ctx, fh.Filename, src)
		src.Close()
		if err != nil {
			return nil, fmt.Errorf("%w: store upload %s: %v", apperr.ErrIntegrity, fh.Filename, err)
		}
		urls = append(urls, url)
	}
	return urls, nil
}

func (s *CatalogService) CreateProduct(ctx context.Context, req transport.ProductRequest, files []*multipart.FileHeader) (*models.Product, error) {
	l := logging.FromContext(ctx).With("svc", "catalog.create_product")

	if err := req.Validate(); err != nil {
		return nil, err
	}

	urls, err := s.saveImages(ctx, files)
	if err != nil {
		return nil, err
	}

	prod := models.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		NewPrice:    req.NewPrice,
	}

	created, err := s.Repo.CreateProduct(ctx, &prod, urls)
	if err != nil {
		l.Error("create_product_error", "error", err)
		return nil, err
	}

	publish(ctx, s.Producer, "product_events", fmt.Sprint(created.ID), map[string]any{
		"type":       "product_created",
		"product_id": created.ID,
		"name":       created.Name,
	})

	return created, nil
}

// UpdateProduct replaces the product's fields; when the request carries
// files the image set is replaced too, otherwise it is left alone.
func (s *CatalogService) UpdateProduct(ctx context.Context, id uint, req transport.ProductRequest, files []*multipart.FileHeader) (*models.Product, error) {
	l := logging.FromContext(ctx).With("svc", "catalog.update_product", "product_id", id)

	if err := req.Validate(); err != nil {
		return nil, err
	}

	var urls []string
	if len(files) > 0 {
		var err error
		urls, err = s.saveImages(ctx, files)
		if err != nil {
			return nil, err
		}
	}

	fields := models.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		NewPrice:    req.NewPrice,
	}

	updated, err := s.Repo.UpdateProduct(ctx, id, fields, urls)
	if err != nil {
		l.Warn("update_product_failed", "error", err)
		return nil, err
	}

	publish(ctx, s.Producer, "product_events", fmt.Sprint(updated.ID), map[string]any{
		"type":       "product_updated",
		"product_id": updated.ID,
		"name":       updated.Name,
	})

	return updated, nil
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id uint) error {
	if err := s.Repo.DeleteProduct(ctx, id); err != nil {
		return err
	}

	publish(ctx, s.Producer, "product_events", fmt.Sprint(id), map[string]any{
		"type":       "product_deleted",
		"product_id": id,
	})

	return nil
}
