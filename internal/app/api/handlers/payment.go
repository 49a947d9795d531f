package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"

	"github.com/Divy97/rajawadu/internal/app/service/order"
	"github.com/Divy97/rajawadu/internal/app/service/payu"
	"github.com/Divy97/rajawadu/internal/models"
	"github.com/Divy97/rajawadu/pkg/config"
	"github.com/Divy97/rajawadu/pkg/response"
)

type initiatePaymentRequest struct {
	OrderID string `json:"order_id" binding:"required"`
}

type initiatePaymentResponse struct {
	PaymentURL string            `json:"payment_url"`
	FormData   map[string]string `json:"form_data"`
}

// productInfo builds the human-readable gateway description from line items,
// capped at 100 characters per PayU field limits.
func productInfo(items []*models.OrderItem) string {
	names := lo.Map(items, func(it *models.OrderItem, _ int) string {
		name := "Product"
		if it.Product != nil {
			name = it.Product.Name
		}
		return fmt.Sprintf("%s (%d)", name, it.Quantity)
	})
	joined := strings.Join(names, ", ")
	if utf8.RuneCountInString(joined) > 100 {
		joined = payu.TruncateRunes(joined, 97) + "..."
	}
	return joined
}

// @Summary      Initiate payment
// @Description  Builds the signed PayU form for a pending order and moves it to processing with a fresh transaction id.
// @Tags         Payment
// @Accept       json
// @Produce      json
// @Param        request body handlers.initiatePaymentRequest true "Payment initiation request"
// @Success      200  {object}  handlers.RespOK
// @Router       /api/payu/initiate [post]
func ApiInitiatePayment(orders *order.Service, client *payu.Client, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req initiatePaymentRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}

		o, err := orders.GetOrder(c.Request.Context(), req.OrderID)
		if err != nil {
			if errors.Is(err, order.ErrOrderNotFound) {
				c.JSON(http.StatusNotFound, response.ErrorT[any](response.APIResponseCodeBadRequest, "order not found"))
				return
			}
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}

		first, last := splitName(o.CustomerName)
		data := &payu.OrderData{
			OrderID:     o.ID,
			Amount:      o.Total,
			ProductInfo: productInfo(o.Items),
			Customer: payu.CustomerDetails{
				FirstName: first,
				LastName:  last,
				Email:     o.CustomerEmail,
				Phone:     o.CustomerPhone,
				Address:   o.ShippingAddress.Data(),
			},
			Items: lo.Map(o.Items, func(it *models.OrderItem, _ int) payu.OrderItemData {
				return payu.OrderItemData{ProductID: it.ProductID, Quantity: it.Quantity, Price: it.Price}
			}),
		}

		prepared, err := client.PreparePaymentRequest(data, cfg.SiteURL)
		if err != nil {
			if errors.Is(err, payu.ErrValidation) {
				c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
				return
			}
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}

		if err := orders.MarkProcessing(c.Request.Context(), o.ID, prepared.TxnID()); err != nil {
			if errors.Is(err, order.ErrNotPayable) {
				c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, "order payment is not in pending status"))
				return
			}
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}

		c.JSON(http.StatusOK, response.OKT(initiatePaymentResponse{
			PaymentURL: prepared.GatewayURL,
			FormData:   prepared.Fields,
		}))
	}
}

func splitName(full string) (first, last string) {
	parts := strings.Fields(full)
	if len(parts) == 0 {
		return full, ""
	}
	return parts[0], strings.Join(parts[1:], " ")
}

func RegisterPaymentRoutes(r gin.IRouter, orders *order.Service, client *payu.Client, cfg *config.Config) {
	r.POST("/payu/initiate", ApiInitiatePayment(orders, client, cfg))
}
