package handlers

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/Divy97/rajawadu/internal/app/service/reconcile"
	"github.com/Divy97/rajawadu/pkg/types"
)

func callbackRouter(h *PaymentCallbacks) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterPaymentCallbackRoutes(r.Group("/api"), h)
	return r
}

func TestApiPaymentSuccess_RedirectsToSuccessPage(t *testing.T) {
	rec := &stubReconciler{}
	h := testCallbacks(t, rec, &stubRecorder{})
	r := callbackRouter(h)

	w := postForm(r, "/api/payment/success", signedCallbackForm(t, "success", "RAJA_1_ABCDEF", "ord-123", "499.00"))
	require.Equal(t, http.StatusSeeOther, w.Code)

	loc, err := url.Parse(w.Header().Get("Location"))
	require.NoError(t, err)
	require.Equal(t, "/checkout/success", loc.Path)
	require.Equal(t, "ord-123", loc.Query().Get("orderId"))
	require.Equal(t, "RAJA_1_ABCDEF", loc.Query().Get("txnid"))
	require.Empty(t, loc.Query().Get("error"))
}

func TestApiPaymentSuccess_TamperedHashRedirectsToFailure(t *testing.T) {
	rec := &stubReconciler{}
	h := testCallbacks(t, rec, &stubRecorder{})
	r := callbackRouter(h)

	form := signedCallbackForm(t, "failure", "RAJA_1_ABCDEF", "ord-123", "499.00")
	form.Set("status", "success")

	w := postForm(r, "/api/payment/success", form)
	require.Equal(t, http.StatusSeeOther, w.Code)
	require.Zero(t, rec.calls)

	loc, err := url.Parse(w.Header().Get("Location"))
	require.NoError(t, err)
	require.Equal(t, "/checkout/failure", loc.Path)
	require.Equal(t, "verification_failed", loc.Query().Get("error"))
	// redirects carry only the correlation ids, never payload fields
	require.Empty(t, loc.Query().Get("hash"))
	require.Empty(t, loc.Query().Get("amount"))
}

func TestApiPaymentFailure_VerifiedFailureRedirectsWithReason(t *testing.T) {
	rec := &stubReconciler{outcome: &reconcile.Outcome{
		OrderID:       "ord-123",
		TxnID:         "RAJA_1_ABCDEF",
		PaymentStatus: types.PaymentStatusFailed,
		OrderStatus:   types.OrderStatusPaymentFailed,
		Reason:        reconcile.ReasonPaymentFailed,
		Transitioned:  true,
	}}
	h := testCallbacks(t, rec, &stubRecorder{})
	r := callbackRouter(h)

	w := postForm(r, "/api/payment/failure", signedCallbackForm(t, "failure", "RAJA_1_ABCDEF", "ord-123", "499.00"))
	require.Equal(t, http.StatusSeeOther, w.Code)
	require.Equal(t, 1, rec.calls, "failed payments are verified and reconciled too")

	loc, err := url.Parse(w.Header().Get("Location"))
	require.NoError(t, err)
	require.Equal(t, "/checkout/failure", loc.Path)
	require.Equal(t, reconcile.ReasonPaymentFailed, loc.Query().Get("error"))
}

func TestApiPaymentSuccess_PendingRedirectsToPendingPage(t *testing.T) {
	rec := &stubReconciler{outcome: &reconcile.Outcome{
		OrderID:       "ord-123",
		TxnID:         "RAJA_1_ABCDEF",
		PaymentStatus: types.PaymentStatusPendingExternal,
		OrderStatus:   types.OrderStatusPaymentPending,
		Reason:        reconcile.ReasonPaymentPending,
		Transitioned:  true,
	}}
	h := testCallbacks(t, rec, &stubRecorder{})
	r := callbackRouter(h)

	w := postForm(r, "/api/payment/success", signedCallbackForm(t, "pending", "RAJA_1_ABCDEF", "ord-123", "499.00"))
	require.Equal(t, http.StatusSeeOther, w.Code)

	loc, err := url.Parse(w.Header().Get("Location"))
	require.NoError(t, err)
	require.Equal(t, "/checkout/pending", loc.Path)
}

func TestApiPaymentSuccess_ReconcileErrorRedirectsToFailure(t *testing.T) {
	rec := &stubReconciler{err: reconcile.ErrOrderNotFound}
	h := testCallbacks(t, rec, &stubRecorder{})
	r := callbackRouter(h)

	w := postForm(r, "/api/payment/success", signedCallbackForm(t, "success", "RAJA_1_ABCDEF", "ord-123", "499.00"))
	require.Equal(t, http.StatusSeeOther, w.Code)

	loc, err := url.Parse(w.Header().Get("Location"))
	require.NoError(t, err)
	require.Equal(t, "/checkout/failure", loc.Path)
	require.Equal(t, "order_not_found", loc.Query().Get("error"))
}

func TestCheckoutURL(t *testing.T) {
	h := testCallbacks(t, &stubReconciler{}, &stubRecorder{})

	u := h.checkoutURL("success", map[string]string{"orderId": "ord-1", "txnid": "t1", "error": ""})
	parsed, err := url.Parse(u)
	require.NoError(t, err)
	require.Equal(t, "/checkout/success", parsed.Path)
	require.Equal(t, "ord-1", parsed.Query().Get("orderId"))
	require.False(t, parsed.Query().Has("error"), "empty params are omitted")

	require.Equal(t, "https://rajawadu.com/checkout/pending", h.checkoutURL("pending", nil))
}
