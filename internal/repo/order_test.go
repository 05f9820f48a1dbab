package repo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abu-huda81/shop_backend/internal/models"
)

func TestCreateOrder_WithItems(t *testing.T) {
	t.Parallel()
	r := newTestRepo(t)
	ctx := context.Background()

	user := newUser("alice", "alice@example.com")
	require.NoError(t, r.CreateUser(ctx, user))

	prod, err := r.CreateProduct(ctx, &models.Product{Name: "Pen", Price: 1.5}, nil)
	require.NoError(t, err)

	order := &models.Order{
		UserID: user.ID,
		Status: models.OrderStatusNew,
		Total:  3.0,
		Items: []models.OrderItem{
			{ProductID: prod.ID, Quantity: 2, UnitPrice: 1.5, LineTotal: 3.0},
		},
	}

	created, err := r.CreateOrder(ctx, order)
	require.NoError(t, err)
	require.NotZero(t, created.ID)
	require.Len(t, created.Items, 1)
	assert.Equal(t, created.ID, created.Items[0].OrderID)

	var itemCount int64
	require.NoError(t, r.DB.Model(&models.OrderItem{}).Where("order_id = ?", created.ID).Count(&itemCount).Error)
	assert.EqualValues(t, 1, itemCount)
}

func TestListOrders_OnlyOwn(t *testing.T) {
	t.Parallel()
	r := newTestRepo(t)
	ctx := context.Background()

	alice := newUser("alice", "alice@example.com")
	require.NoError(t, r.CreateUser(ctx, alice))
	bob := newUser("bob", "bob@example.com")
	require.NoError(t, r.CreateUser(ctx, bob))

	prod, err := r.CreateProduct(ctx, &models.Product{Name: "Pen", Price: 1.5}, nil)
	require.NoError(t, err)

	for _, uid := range []uint{alice.ID, alice.ID, bob.ID} {
		_, err := r.CreateOrder(ctx, &models.Order{
			UserID: uid,
			Status: models.OrderStatusNew,
			Total:  1.5,
			Items:  []models.OrderItem{{ProductID: prod.ID, Quantity: 1, UnitPrice: 1.5, LineTotal: 1.5}},
		})
		require.NoError(t, err)
	}

	orders, err := r.ListOrders(ctx, alice.ID, 0, 10)
	require.NoError(t, err)
	require.Len(t, orders, 2)
	for _, o := range orders {
		assert.Equal(t, alice.ID, o.UserID)
		assert.Len(t, o.Items, 1)
	}
}
