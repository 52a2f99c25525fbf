package handlers_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"microshop/internal/app"
	"microshop/internal/models"
	"microshop/internal/repositories"
	"microshop/internal/services"
)

type stubVerifier struct {
	result services.Existence
}

func (v stubVerifier) VerifyUser(_ context.Context, _ string) services.Existence {
	return v.result
}

type stubProber struct {
	err error
}

func (p stubProber) CheckHealth(_ context.Context) error {
	return p.err
}

func newOrderApp(result services.Existence, probeErr error) *fiber.App {
	return app.NewOrderApp(
		repositories.NewMemoryOrderRepository(),
		stubVerifier{result: result},
		stubProber{err: probeErr},
	)
}

func orderPayload(userID string) fiber.Map {
	return fiber.Map{
		"user_id": userID,
		"items": []fiber.Map{
			{"product_id": "prod-1", "product_name": "Widget", "quantity": 2, "price": 10.99},
		},
		"shipping_address": "123 Test St",
	}
}

func createOrder(t *testing.T, fiberApp *fiber.App, userID string) models.Order {
	t.Helper()
	var order models.Order
	resp := request(t, fiberApp, http.MethodPost, "/api/v1/orders", orderPayload(userID), &order)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return order
}

// Covers the end-to-end scenario: create, confirm, delete, fetch gone.
func TestOrderAPI_Lifecycle(t *testing.T) {
	fiberApp := newOrderApp(services.ExistenceConfirmed, nil)

	order := createOrder(t, fiberApp, "u-1")
	assert.NotEmpty(t, order.ID)
	assert.InDelta(t, 21.98, order.TotalAmount, 1e-9)
	assert.Equal(t, models.StatusPending, order.Status)

	var updated models.Order
	resp := request(t, fiberApp, http.MethodPut, "/api/v1/orders/"+order.ID,
		fiber.Map{"status": "confirmed"}, &updated)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, models.StatusConfirmed, updated.Status)
	assert.Equal(t, order.CreatedAt, updated.CreatedAt)
	assert.False(t, updated.UpdatedAt.Before(order.UpdatedAt))
	assert.Equal(t, order.TotalAmount, updated.TotalAmount)

	resp = request(t, fiberApp, http.MethodDelete, "/api/v1/orders/"+order.ID, nil, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = request(t, fiberApp, http.MethodGet, "/api/v1/orders/"+order.ID, nil, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestOrderAPI_Create_UserAbsent(t *testing.T) {
	fiberApp := newOrderApp(services.ExistenceAbsent, nil)

	var body map[string]any
	resp := request(t, fiberApp, http.MethodPost, "/api/v1/orders", orderPayload("ghost"), &body)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "User not found", body["detail"])

	// Nothing persisted.
	var metrics map[string]any
	request(t, fiberApp, http.MethodGet, "/metrics", nil, &metrics)
	assert.Equal(t, float64(0), metrics["total_orders"])
}

func TestOrderAPI_Create_DependencyUnavailable(t *testing.T) {
	fiberApp := newOrderApp(services.ExistenceUnknown, nil)

	resp := request(t, fiberApp, http.MethodPost, "/api/v1/orders", orderPayload("u-1"), nil)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

	var metrics map[string]any
	request(t, fiberApp, http.MethodGet, "/metrics", nil, &metrics)
	assert.Equal(t, float64(0), metrics["total_orders"])
}

func TestOrderAPI_Create_Validation(t *testing.T) {
	fiberApp := newOrderApp(services.ExistenceConfirmed, nil)

	tests := []struct {
		name string
		body fiber.Map
	}{
		{"missing user_id", fiber.Map{
			"items":            []fiber.Map{{"product_id": "p", "product_name": "W", "quantity": 1, "price": 1}},
			"shipping_address": "123 Test St",
		}},
		{"empty items", fiber.Map{
			"user_id": "u-1", "items": []fiber.Map{}, "shipping_address": "123 Test St",
		}},
		{"zero quantity", fiber.Map{
			"user_id":          "u-1",
			"items":            []fiber.Map{{"product_id": "p", "product_name": "W", "quantity": 0, "price": 1}},
			"shipping_address": "123 Test St",
		}},
		{"missing shipping address", fiber.Map{
			"user_id": "u-1",
			"items":   []fiber.Map{{"product_id": "p", "product_name": "W", "quantity": 1, "price": 1}},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := request(t, fiberApp, http.MethodPost, "/api/v1/orders", tt.body, nil)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		})
	}
}

func TestOrderAPI_Update_InvalidStatus(t *testing.T) {
	fiberApp := newOrderApp(services.ExistenceConfirmed, nil)
	order := createOrder(t, fiberApp, "u-1")

	resp := request(t, fiberApp, http.MethodPut, "/api/v1/orders/"+order.ID,
		fiber.Map{"status": "teleported"}, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var stored models.Order
	request(t, fiberApp, http.MethodGet, "/api/v1/orders/"+order.ID, nil, &stored)
	assert.Equal(t, models.StatusPending, stored.Status)
}

func TestOrderAPI_ListAndFilter(t *testing.T) {
	fiberApp := newOrderApp(services.ExistenceConfirmed, nil)
	first := createOrder(t, fiberApp, "u-1")
	createOrder(t, fiberApp, "u-2")
	third := createOrder(t, fiberApp, "u-1")

	var orders []models.Order
	resp := request(t, fiberApp, http.MethodGet, "/api/v1/orders", nil, &orders)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, orders, 3)

	orders = nil
	request(t, fiberApp, http.MethodGet, "/api/v1/orders?user_id=u-1", nil, &orders)
	require.Len(t, orders, 2)
	assert.Equal(t, first.ID, orders[0].ID)
	assert.Equal(t, third.ID, orders[1].ID)

	// The filter applies before the skip/limit window.
	orders = nil
	request(t, fiberApp, http.MethodGet, "/api/v1/orders?user_id=u-1&skip=1&limit=1", nil, &orders)
	require.Len(t, orders, 1)
	assert.Equal(t, third.ID, orders[0].ID)
}

func TestOrderAPI_GetUserOrders(t *testing.T) {
	fiberApp := newOrderApp(services.ExistenceConfirmed, nil)
	order := createOrder(t, fiberApp, "u-1")

	var orders []models.Order
	resp := request(t, fiberApp, http.MethodGet, "/api/v1/orders/user/u-1", nil, &orders)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, orders, 1)
	assert.Equal(t, order.ID, orders[0].ID)

	// Unknown users yield an empty array, not a 404.
	orders = nil
	resp = request(t, fiberApp, http.MethodGet, "/api/v1/orders/user/nobody", nil, &orders)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, orders)
}

func TestOrderAPI_Metrics(t *testing.T) {
	fiberApp := newOrderApp(services.ExistenceConfirmed, nil)
	order := createOrder(t, fiberApp, "u-1")
	createOrder(t, fiberApp, "u-1")
	request(t, fiberApp, http.MethodPut, "/api/v1/orders/"+order.ID,
		fiber.Map{"status": "shipped"}, nil)

	var metrics map[string]any
	request(t, fiberApp, http.MethodGet, "/metrics", nil, &metrics)
	assert.Equal(t, float64(2), metrics["total_orders"])
	assert.Equal(t, "order-service", metrics["service"])
	byStatus, ok := metrics["orders_by_status"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(1), byStatus["pending"])
	assert.Equal(t, float64(1), byStatus["shipped"])
}

func TestOrderAPI_Readiness(t *testing.T) {
	t.Run("dependency healthy", func(t *testing.T) {
		fiberApp := newOrderApp(services.ExistenceConfirmed, nil)

		var ready map[string]any
		resp := request(t, fiberApp, http.MethodGet, "/health/ready", nil, &ready)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "ready", ready["status"])
		deps := ready["dependencies"].(map[string]any)
		assert.Equal(t, "healthy", deps["user-service"])
	})

	t.Run("dependency unreachable degrades readiness", func(t *testing.T) {
		fiberApp := newOrderApp(services.ExistenceConfirmed, errors.New("connection refused"))

		var ready map[string]any
		resp := request(t, fiberApp, http.MethodGet, "/health/ready", nil, &ready)
		// Degraded, not down: the probe itself still answers 200 and
		// liveness is unaffected.
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "degraded", ready["status"])
		deps := ready["dependencies"].(map[string]any)
		assert.Equal(t, "unhealthy", deps["user-service"])

		var live map[string]any
		request(t, fiberApp, http.MethodGet, "/health/live", nil, &live)
		assert.Equal(t, "alive", live["status"])
	})
}
