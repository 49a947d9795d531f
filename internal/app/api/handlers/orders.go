package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Divy97/rajawadu/internal/app/service/guestuser"
	"github.com/Divy97/rajawadu/internal/app/service/order"
	"github.com/Divy97/rajawadu/internal/app/service/payu"
	"github.com/Divy97/rajawadu/pkg/logctx"
	"github.com/Divy97/rajawadu/pkg/response"
)

// @Summary      Create order
// @Description  Validates products, stock and prices, then creates the order with its line items in pending/pending state.
// @Tags         Orders
// @Accept       json
// @Produce      json
// @Param        request body order.CreateOrderRequest true "Order creation request"
// @Success      200  {object}  handlers.RespOK
// @Router       /api/orders [post]
func ApiCreateOrder(svc *order.Service, guests *guestuser.Service, log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req order.CreateOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}
		if !payu.ValidEmail(req.CustomerEmail) {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, "valid email is required"))
			return
		}
		if !payu.ValidPhone(req.CustomerPhone) {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, "valid phone number is required"))
			return
		}

		created, err := svc.CreateOrder(c.Request.Context(), &req)
		if err != nil {
			if errors.Is(err, order.ErrValidation) {
				c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
				return
			}
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}

		if err := guests.TouchLastOrder(c.Request.Context(), req.GuestUserID); err != nil {
			logctx.FromGin(c, log).Warnw("guest_last_order_touch_failed", "error", err.Error())
		}

		c.JSON(http.StatusOK, response.OKT(created))
	}
}

// @Summary      Get order
// @Tags         Orders
// @Produce      json
// @Param        id path string true "Order ID"
// @Success      200  {object}  handlers.RespOK
// @Router       /api/orders/{id} [get]
func ApiGetOrder(svc *order.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		o, err := svc.GetOrder(c.Request.Context(), c.Param("id"))
		if err != nil {
			if errors.Is(err, order.ErrOrderNotFound) {
				c.JSON(http.StatusNotFound, response.ErrorT[any](response.APIResponseCodeBadRequest, "order not found"))
				return
			}
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(o))
	}
}

func RegisterOrderRoutes(r gin.IRouter, svc *order.Service, guests *guestuser.Service, log *zap.SugaredLogger) {
	r.POST("/orders", ApiCreateOrder(svc, guests, log))
	r.GET("/orders/:id", ApiGetOrder(svc))
}
