package handlers

import (
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func TestRegisteredRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	api := r.Group("/api")
	RegisterCatalogRoutes(api, nil)
	RegisterUserRoutes(api, nil)
	RegisterOrderRoutes(api, nil, nil, nil)
	RegisterPaymentRoutes(api, nil, nil, nil)
	RegisterPaymentCallbackRoutes(api, nil)
	RegisterPaymentWebhookRoutes(api, nil)
	RegisterAdminRoutes(r.Group("/api/v1/admin"), nil)
	RegisterHealthRoutes(r)

	routes := r.Routes()
	contains := func(target string) bool {
		for _, rt := range routes {
			if rt.Method+" "+rt.Path == target {
				return true
			}
		}
		return false
	}

	for _, want := range []string{
		"GET /api/products",
		"GET /api/products/featured",
		"GET /api/products/:slug",
		"GET /api/categories",
		"POST /api/users/guest",
		"POST /api/orders",
		"GET /api/orders/:id",
		"POST /api/payu/initiate",
		"POST /api/payment/success",
		"POST /api/payment/failure",
		"POST /api/payu/webhook",
		"POST /api/v1/admin/list_payment_transactions",
		"GET /healthz",
	} {
		require.True(t, contains(want), "missing route %s", want)
	}
}
