package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Divy97/rajawadu/internal/app/service/reconcile"
	"github.com/Divy97/rajawadu/pkg/response"
)

// @Summary      List payment transactions (Admin)
// @Description  Paginated, filterable listing of the gateway transaction audit log, for dispute resolution.
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Param        request body reconcile.ScanTransactionsRequest true "List request with filters, pagination and sorting"
// @Success      200  {object}  handlers.RespListPaymentTransactions
// @Router       /api/v1/admin/list_payment_transactions [post]
func ApiListPaymentTransactions(rec reconcile.Reconciler) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req reconcile.ScanTransactionsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}
		res, err := rec.ScanTransactions(c.Request.Context(), &req)
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(res))
	}
}

func RegisterAdminRoutes(r gin.IRouter, rec reconcile.Reconciler) {
	r.POST("/list_payment_transactions", ApiListPaymentTransactions(rec))
}
