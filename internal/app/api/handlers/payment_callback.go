package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/Divy97/rajawadu/internal/app/service/callbacklog"
	"github.com/Divy97/rajawadu/internal/app/service/payu"
	"github.com/Divy97/rajawadu/internal/app/service/reconcile"
	"github.com/Divy97/rajawadu/internal/models"
	"github.com/Divy97/rajawadu/pkg/config"
	"github.com/Divy97/rajawadu/pkg/logctx"
)

// PaymentCallbacks bundles everything the gateway-facing endpoints need.
type PaymentCallbacks struct {
	Client     *payu.Client
	Reconciler reconcile.Reconciler
	Logs       callbacklog.Recorder
	Cfg        *config.Config
	Logger     *zap.SugaredLogger
}

func NewPaymentCallbacks(client *payu.Client, rec reconcile.Reconciler, logs callbacklog.Recorder, cfg *config.Config, log *zap.SugaredLogger) *PaymentCallbacks {
	return &PaymentCallbacks{Client: client, Reconciler: rec, Logs: logs, Cfg: cfg, Logger: log}
}

func (h *PaymentCallbacks) checkoutURL(page string, params map[string]string) string {
	q := url.Values{}
	for k, v := range params {
		if v != "" {
			q.Set(k, v)
		}
	}
	u := h.Cfg.SiteURL + "/checkout/" + page
	if encoded := q.Encode(); encoded != "" {
		u += "?" + encoded
	}
	return u
}

func (h *PaymentCallbacks) failureRedirect(c *gin.Context, txnid, orderID, reason string) {
	c.Redirect(http.StatusSeeOther, h.checkoutURL("failure", map[string]string{
		"orderId": orderID,
		"txnid":   txnid,
		"error":   reason,
	}))
}

// saveLog persists an audit row for the delivery; asynchronous, never blocks
// the response to the gateway.
func (h *PaymentCallbacks) saveLog(c *gin.Context, source string, cb *payu.CallbackResponse, status models.PaymentCallbackLogStatus, result map[string]any) {
	traceID := ""
	if v, ok := c.Get("traceID"); ok {
		if s, ok2 := v.(string); ok2 {
			traceID = s
		}
	}
	entry := &models.PaymentCallbackLog{
		Source:    source,
		TraceID:   traceID,
		PayuTxnID: cb.TxnID,
		Status:    status,
	}
	if cb.UDF1 != "" {
		entry.OrderID = lo.ToPtr(cb.UDF1)
	}
	if data, err := json.Marshal(cb); err == nil {
		entry.Data = datatypes.JSON(data)
	}
	if result != nil {
		if res, err := json.Marshal(result); err == nil {
			entry.Result = lo.ToPtr(datatypes.JSON(res))
		}
	}
	h.Logs.Save(c.Request.Context(), entry)
}

// handleRedirectCallback is the shared path behind the success and failure
// redirect endpoints. Whatever happens inside, the browser always gets a
// redirect to a checkout page carrying only the order id, txnid and a
// generic error code; secrets and raw gateway payloads never ride in URLs.
func (h *PaymentCallbacks) handleRedirectCallback(c *gin.Context, source string) {
	log := logctx.FromGin(c, h.Logger)

	var cb payu.CallbackResponse
	if err := c.ShouldBind(&cb); err != nil {
		log.Errorw("payment_callback_bind_error", "source", source, "error", err.Error())
		h.failureRedirect(c, "", "", "processing_error")
		return
	}

	log.Infow("payment_callback_received", "source", source,
		"txnid", cb.TxnID, "mihpayid", cb.MihpayID, "claimed_status", cb.Status, "amount", cb.Amount)
	h.saveLog(c, source, &cb, models.PaymentCallbackLogStatusReceived, nil)

	verification := h.Client.VerifyCallback(&cb)
	if !verification.Valid {
		h.saveLog(c, source, &cb, models.PaymentCallbackLogStatusHandleFailed,
			map[string]any{"error": "verification_failed"})
		h.failureRedirect(c, cb.TxnID, "", "verification_failed")
		return
	}

	outcome, err := h.Reconciler.Reconcile(c.Request.Context(), &cb, verification)
	if err != nil {
		reason := "processing_error"
		if errors.Is(err, reconcile.ErrMissingCorrelation) || errors.Is(err, reconcile.ErrOrderNotFound) {
			reason = "order_not_found"
		}
		log.Errorw("payment_callback_reconcile_error", "source", source, "txnid", cb.TxnID, "error", err.Error())
		h.saveLog(c, source, &cb, models.PaymentCallbackLogStatusHandleFailed,
			map[string]any{"error": err.Error()})
		h.failureRedirect(c, cb.TxnID, cb.UDF1, reason)
		return
	}

	h.saveLog(c, source, &cb, models.PaymentCallbackLogStatusHandled, map[string]any{"outcome": outcome})

	params := map[string]string{"orderId": outcome.OrderID, "txnid": outcome.TxnID}
	switch {
	case outcome.Completed():
		c.Redirect(http.StatusSeeOther, h.checkoutURL("success", params))
	case outcome.Reason == reconcile.ReasonPaymentPending:
		c.Redirect(http.StatusSeeOther, h.checkoutURL("pending", params))
	default:
		params["error"] = outcome.Reason
		c.Redirect(http.StatusSeeOther, h.checkoutURL("failure", params))
	}
}

// @Summary      PayU success redirect
// @Description  Receives the gateway-posted form after a successful payment attempt, verifies and reconciles it, then redirects the buyer.
// @Tags         Payment
// @Accept       x-www-form-urlencoded
// @Success      303
// @Router       /api/payment/success [post]
func ApiPaymentSuccess(h *PaymentCallbacks) gin.HandlerFunc {
	return func(c *gin.Context) { h.handleRedirectCallback(c, "payu_success") }
}

// @Summary      PayU failure redirect
// @Description  Receives the gateway-posted form after a failed payment attempt; the hash is verified even for failures.
// @Tags         Payment
// @Accept       x-www-form-urlencoded
// @Success      303
// @Router       /api/payment/failure [post]
func ApiPaymentFailure(h *PaymentCallbacks) gin.HandlerFunc {
	return func(c *gin.Context) { h.handleRedirectCallback(c, "payu_failure") }
}

func RegisterPaymentCallbackRoutes(r gin.IRouter, h *PaymentCallbacks) {
	r.POST("/payment/success", ApiPaymentSuccess(h))
	r.POST("/payment/failure", ApiPaymentFailure(h))
}
