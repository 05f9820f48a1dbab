package httpserver

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abu-huda81/shop_backend/internal/models"
	"github.com/abu-huda81/shop_backend/internal/transport"
)

func TestCreateOrder(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	admin := env.adminToken(t, "root")
	rec := env.doForm(t, http.MethodPost, "/product/products", admin,
		map[string]string{"name": "Pen", "price": "1.5", "new_price": "1.0"}, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	var pen models.Product
	decodeJSON(t, rec, &pen)

	env.register(t, "alice", "alice@example.com", "secret123")
	aliceToken := env.login(t, "alice", "secret123")

	rec = env.doJSON(t, http.MethodPost, "/order/orders", aliceToken, transport.CreateOrderRequest{
		Items: []transport.CreateOrderItem{{ProductID: pen.ID, Quantity: 3}},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var order models.Order
	decodeJSON(t, rec, &order)
	assert.Equal(t, models.OrderStatusNew, order.Status)
	assert.Equal(t, 3.0, order.Total)
	require.Len(t, order.Items, 1)
	assert.Equal(t, 1.0, order.Items[0].UnitPrice)
}

func TestCreateOrder_RequiresAuth(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	rec := env.doJSON(t, http.MethodPost, "/order/orders", "", transport.CreateOrderRequest{
		Items: []transport.CreateOrderItem{{ProductID: 1, Quantity: 1}},
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCreateOrder_UnknownProduct(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	env.register(t, "alice", "alice@example.com", "secret123")
	aliceToken := env.login(t, "alice", "secret123")

	rec := env.doJSON(t, http.MethodPost, "/order/orders", aliceToken, transport.CreateOrderRequest{
		Items: []transport.CreateOrderItem{{ProductID: 9999, Quantity: 1}},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "unknown product in order")
}

func TestListOrders_OwnOnly(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	admin := env.adminToken(t, "root")
	rec := env.doForm(t, http.MethodPost, "/product/products", admin,
		map[string]string{"name": "Pen", "price": "1.5"}, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	var pen models.Product
	decodeJSON(t, rec, &pen)

	env.register(t, "alice", "alice@example.com", "secret123")
	env.register(t, "bob", "bob@example.com", "secret123")
	aliceToken := env.login(t, "alice", "secret123")
	bobToken := env.login(t, "bob", "secret123")

	order := transport.CreateOrderRequest{
		Items: []transport.CreateOrderItem{{ProductID: pen.ID, Quantity: 1}},
	}
	require.Equal(t, http.StatusCreated,
		env.doJSON(t, http.MethodPost, "/order/orders", aliceToken, order).Code)
	require.Equal(t, http.StatusCreated,
		env.doJSON(t, http.MethodPost, "/order/orders", bobToken, order).Code)

	rec = env.doJSON(t, http.MethodGet, "/order/orders", aliceToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var orders []models.Order
	decodeJSON(t, rec, &orders)
	require.Len(t, orders, 1)

	var alice models.User
	require.NoError(t, env.Repo.DB.Where("username = ?", "alice").First(&alice).Error)
	assert.Equal(t, alice.ID, orders[0].UserID)
	require.Len(t, orders[0].Items, 1)
	assert.Equal(t, pen.ID, orders[0].Items[0].ProductID)
}
