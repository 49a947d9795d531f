package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Divy97/rajawadu/internal/app/service/payu"
	"github.com/Divy97/rajawadu/internal/app/service/reconcile"
	"github.com/Divy97/rajawadu/internal/models"
	"github.com/Divy97/rajawadu/pkg/logctx"
	"github.com/Divy97/rajawadu/pkg/response"
)

type webhookAck struct {
	TxnID   string `json:"txnid"`
	Status  string `json:"status"`
	OrderID string `json:"order_id,omitempty"`
	Error   string `json:"error,omitempty"`
}

// @Summary      PayU webhook
// @Description  Server-to-server delivery of the payment outcome. Always acknowledged with 200 once the payload is parseable, including hash-verification failures, so the gateway stops retrying; failures are distinguishable in the ack body and audit log.
// @Tags         Webhook
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Success      200  {object}  handlers.RespOK
// @Router       /api/payu/webhook [post]
func ApiPayuWebhook(h *PaymentCallbacks) gin.HandlerFunc {
	return func(c *gin.Context) {
		log := logctx.FromGin(c, h.Logger)

		var cb payu.CallbackResponse
		if err := c.ShouldBind(&cb); err != nil {
			c.JSON(http.StatusBadRequest, response.ErrorT(response.APIResponseCodeBadRequest, webhookAck{Error: "malformed_payload"}))
			return
		}

		// missing required fields is a request-level error, not a
		// verification failure
		if cb.Status == "" || cb.TxnID == "" || cb.Hash == "" {
			log.Errorw("webhook_missing_fields", "txnid", cb.TxnID, "claimed_status", cb.Status)
			c.JSON(http.StatusBadRequest, response.ErrorT(response.APIResponseCodeBadRequest, webhookAck{TxnID: cb.TxnID, Error: "missing_fields"}))
			return
		}

		log.Infow("webhook_received", "txnid", cb.TxnID, "claimed_status", cb.Status, "amount", cb.Amount)
		h.saveLog(c, "payu_webhook", &cb, models.PaymentCallbackLogStatusReceived, nil)

		verification := h.Client.VerifyCallback(&cb)
		if !verification.Valid {
			// acknowledged so the gateway stops retrying a payload that will
			// never verify; logged distinctly for fraud investigation
			h.saveLog(c, "payu_webhook", &cb, models.PaymentCallbackLogStatusHandleFailed,
				map[string]any{"error": "verification_failed"})
			c.JSON(http.StatusOK, response.ErrorT(response.APIResponseCodeError, webhookAck{TxnID: cb.TxnID, Error: "verification_failed"}))
			return
		}

		outcome, err := h.Reconciler.Reconcile(c.Request.Context(), &cb, verification)
		if err != nil {
			h.saveLog(c, "payu_webhook", &cb, models.PaymentCallbackLogStatusHandleFailed,
				map[string]any{"error": err.Error()})
			switch {
			case errors.Is(err, reconcile.ErrMissingCorrelation):
				c.JSON(http.StatusBadRequest, response.ErrorT(response.APIResponseCodeBadRequest, webhookAck{TxnID: cb.TxnID, Error: "order_correlation_missing"}))
			case errors.Is(err, reconcile.ErrOrderNotFound):
				c.JSON(http.StatusBadRequest, response.ErrorT(response.APIResponseCodeBadRequest, webhookAck{TxnID: cb.TxnID, Error: "order_not_found"}))
			default:
				log.Errorw("webhook_reconcile_error", "txnid", cb.TxnID, "error", err.Error())
				c.JSON(http.StatusOK, response.ErrorT(response.APIResponseCodeError, webhookAck{TxnID: cb.TxnID, Error: "processing_error"}))
			}
			return
		}

		h.saveLog(c, "payu_webhook", &cb, models.PaymentCallbackLogStatusHandled, map[string]any{"outcome": outcome})
		log.Infow("webhook_handled", "txnid", cb.TxnID, "payment_status", outcome.PaymentStatus, "transitioned", outcome.Transitioned)

		ack := webhookAck{TxnID: outcome.TxnID, Status: string(outcome.PaymentStatus), OrderID: outcome.OrderID, Error: outcome.Reason}
		c.JSON(http.StatusOK, response.OKT(ack))
	}
}

func RegisterPaymentWebhookRoutes(r gin.IRouter, h *PaymentCallbacks) {
	r.POST("/payu/webhook", ApiPayuWebhook(h))
}
