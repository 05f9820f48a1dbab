package service

import (
	"context"
	"fmt"

	"github.com/abu-huda81/shop_backend/internal/logging"
	"github.com/abu-huda81/shop_backend/internal/models"
	"github.com/abu-huda81/shop_backend/internal/repo"
	"github.com/abu-huda81/shop_backend/internal/transport"
)

type OrderService struct {
	Repo     *repo.GormRepo
	Producer EventPublisher
}

// CreateOrder prices each line from the stored product (discount price when
// one is set) and hands the whole order to the repo as one transaction.
func (s *OrderService) CreateOrder(ctx context.Context, userID uint, req transport.CreateOrderRequest) (*models.Order, error) {
	l := logging.FromContext(ctx).With("svc", "order.create_order", "user_id", userID)

	if err := req.Validate(); err != nil {
		return nil, err
	}

	var total float64
	items := make([]models.OrderItem, 0, len(req.Items))
	for _, it := range req.Items {
		prod, err := s.Repo.GetProduct(ctx, it.ProductID)
		if err != nil {
			l.Warn("create_order_failed", "reason", "unknown product", "product_id", it.ProductID)
			return nil, err
		}

		unit := prod.Price
		if prod.NewPrice > 0 {
			unit = prod.NewPrice
		}
		lineTotal := unit * float64(it.Quantity)

		items = append(items, models.OrderItem{
			ProductID: prod.ID,
			Quantity:  it.Quantity,
			UnitPrice: unit,
			LineTotal: lineTotal,
		})
		total += lineTotal
	}

	order := &models.Order{
		UserID: userID,
		Status: models.OrderStatusNew,
		Total:  total,
		Items:  items,
	}

	created, err := s.Repo.CreateOrder(ctx, order)
	if err != nil {
		l.Error("create_order_error", "error", err)
		return nil, err
	}

	publish(ctx, s.Producer, "order_events", fmt.Sprint(created.ID), map[string]any{
		"type":     "order_created",
		"order_id": created.ID,
		"user_id":  userID,
		"total":    created.Total,
	})

	return created, nil
}

func (s *OrderService) ListOrders(ctx context.Context, userID uint, offset, limit int) ([]models.Order, error) {
	return s.Repo.ListOrders(ctx, userID, offset, limit)
}
