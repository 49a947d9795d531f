package reconcile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/samber/lo"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Divy97/rajawadu/internal/app/service/catalog"
	"github.com/Divy97/rajawadu/internal/app/service/payu"
	"github.com/Divy97/rajawadu/internal/models"
	"github.com/Divy97/rajawadu/pkg/logctx"
	"github.com/Divy97/rajawadu/pkg/tool"
	"github.com/Divy97/rajawadu/pkg/types"
)

var (
	// ErrMissingCorrelation means udf1 carried no order id; a request-level
	// error, distinct from verification failure.
	ErrMissingCorrelation = errors.New("reconcile: order id missing from callback")
	ErrOrderNotFound      = errors.New("reconcile: order not found")
)

// amountTolerance is the strict callback-side slack when comparing the
// gateway-reported amount against the order total.
const amountTolerance = 0.01

// Outcome reasons surfaced in redirects and webhook acks.
const (
	ReasonAmountMismatch = "amount_mismatch"
	ReasonPaymentFailed  = "payment_failed"
	ReasonPaymentPending = "payment_pending"
)

// Outcome reports what a reconciliation did. Transitioned is false for
// duplicate deliveries of an outcome already applied; they are acknowledged
// as no-ops.
type Outcome struct {
	OrderID       string
	TxnID         string
	PaymentStatus types.PaymentStatus
	OrderStatus   types.OrderStatus
	// Reason is empty for accepted success outcomes, otherwise a stable
	// failure code for redirects and logs.
	Reason       string
	Transitioned bool
}

// Completed reports whether the order ended in (or already was in) the
// completed state.
func (o *Outcome) Completed() bool {
	return o != nil && o.PaymentStatus == types.PaymentStatusCompleted && o.Reason == ""
}

// Reconciler applies verified gateway callbacks to orders.
type Reconciler interface {
	// Reconcile an already-verified callback with its order.
	Reconcile(ctx context.Context, cb *payu.CallbackResponse, verification *payu.VerificationResult) (*Outcome, error)
	// Scan payment transactions (used by admin list pages).
	ScanTransactions(ctx context.Context, req *ScanTransactionsRequest) (*ScanTransactionsResponse, error)
}

// Service is the idempotent consumer behind both callback redirect handlers
// and the webhook: same transaction id, same outcome, any number of
// deliveries, at most one applied transition and one inventory decrement.
type Service struct {
	db      *gorm.DB
	catalog *catalog.Service
	log     *zap.SugaredLogger
}

func NewService(db *gorm.DB, cat *catalog.Service, log *zap.SugaredLogger) Reconciler {
	return &Service{db: db, catalog: cat, log: log}
}

// Reconcile applies a verified gateway callback to the order it correlates
// with. The caller must have run hash verification first; unverified
// callbacks must never reach this method.
func (s *Service) Reconcile(ctx context.Context, cb *payu.CallbackResponse, verification *payu.VerificationResult) (*Outcome, error) {
	log := logctx.FromCtx(ctx, s.log)

	orderID := cb.UDF1
	if orderID == "" {
		return nil, ErrMissingCorrelation
	}

	var order models.Order
	err := s.db.WithContext(ctx).Where("id = ?", orderID).First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to load order: %w", err)
	}

	gatewayAmount, err := strconv.ParseFloat(cb.Amount, 64)
	if err != nil {
		gatewayAmount = 0
	}

	// Audit row for every delivery, including mismatches and failures. The
	// upsert keyed by txnid collapses redirect + webhook + retries into one
	// record per gateway transaction.
	txnStatus := paymentStatusFor(verification.Status)
	reason := ""

	if verification.Status == types.GatewayStatusSuccess {
		diff := gatewayAmount - order.Total
		if diff < 0 {
			diff = -diff
		}
		if diff > amountTolerance {
			log.Errorw("reconcile_amount_mismatch",
				"order_id", order.ID, "txnid", cb.TxnID,
				"order_total", order.Total, "gateway_amount", gatewayAmount)
			txnStatus = types.PaymentStatusFailed
			reason = ReasonAmountMismatch
		}
	}

	if err := s.upsertTransaction(ctx, &order, cb, gatewayAmount, txnStatus, reason); err != nil {
		return nil, err
	}

	if reason == ReasonAmountMismatch {
		// mismatch never mutates the order
		return &Outcome{
			OrderID:       order.ID,
			TxnID:         cb.TxnID,
			PaymentStatus: order.PaymentStatus,
			OrderStatus:   order.OrderStatus,
			Reason:        ReasonAmountMismatch,
		}, nil
	}

	next, ok := NextState(order.PaymentStatus, verification.Status)
	if !ok {
		// terminal order: duplicate delivery is an idempotent no-op
		log.Infow("reconcile_noop", "order_id", order.ID, "txnid", cb.TxnID,
			"payment_status", order.PaymentStatus, "event", verification.Status)
		return &Outcome{
			OrderID:       order.ID,
			TxnID:         cb.TxnID,
			PaymentStatus: order.PaymentStatus,
			OrderStatus:   order.OrderStatus,
			Reason:        reasonFor(order.PaymentStatus),
		}, nil
	}

	transitioned, err := s.applyTransition(ctx, &order, cb, next)
	if err != nil {
		return nil, err
	}

	if transitioned && next == types.PaymentStatusCompleted {
		// order status is persisted first; an inventory failure is logged
		// and reconciled later, never rolled back into the payment state
		s.applyInventory(ctx, order.ID)
	}

	outcome := &Outcome{
		OrderID:       order.ID,
		TxnID:         cb.TxnID,
		PaymentStatus: next,
		OrderStatus:   OrderStatusFor(next),
		Reason:        reasonFor(next),
		Transitioned:  transitioned,
	}
	log.Infow("reconcile_applied", "order_id", order.ID, "txnid", cb.TxnID,
		"payment_status", next, "transitioned", transitioned)
	return outcome, nil
}

func paymentStatusFor(event types.GatewayStatus) types.PaymentStatus {
	switch event {
	case types.GatewayStatusSuccess:
		return types.PaymentStatusCompleted
	case types.GatewayStatusPending:
		return types.PaymentStatusPendingExternal
	default:
		return types.PaymentStatusFailed
	}
}

func reasonFor(s types.PaymentStatus) string {
	switch s {
	case types.PaymentStatusFailed:
		return ReasonPaymentFailed
	case types.PaymentStatusPendingExternal:
		return ReasonPaymentPending
	default:
		return ""
	}
}

func (s *Service) upsertTransaction(ctx context.Context, order *models.Order, cb *payu.CallbackResponse, amount float64, status types.PaymentStatus, reason string) error {
	raw, _ := json.Marshal(cb)

	txn := &models.PaymentTransaction{
		ID:          tool.GenerateUUIDV7(),
		OrderID:     order.ID,
		PayuTxnID:   cb.TxnID,
		Amount:      amount,
		Status:      status,
		RawResponse: datatypes.JSON(raw),
	}
	if cb.MihpayID != "" {
		txn.PayuMihpayID = lo.ToPtr(cb.MihpayID)
	}
	if cb.Mode != "" {
		txn.PaymentMethod = lo.ToPtr(cb.Mode)
	}
	if cb.PaymentSource != "" {
		txn.PaymentSource = lo.ToPtr(cb.PaymentSource)
	}
	if cb.BankRefNo != "" {
		txn.BankRefNo = lo.ToPtr(cb.BankRefNo)
	}
	if cb.BankRefNum != "" {
		txn.BankRefNum = lo.ToPtr(cb.BankRefNum)
	}
	if reason != "" {
		txn.ErrorCode = lo.ToPtr(reason)
	} else if cb.Error != "" {
		txn.ErrorCode = lo.ToPtr(cb.Error)
	}
	if cb.ErrorMessage != "" {
		txn.ErrorMessage = lo.ToPtr(cb.ErrorMessage)
	}

	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "payu_txnid"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"payu_mihpayid", "amount", "status", "payment_method",
			"payment_source", "bank_ref_no", "bank_ref_num",
			"error_code", "error_message", "raw_response", "updated_at",
		}),
	}).Create(txn).Error
	if err != nil {
		return fmt.Errorf("failed to upsert payment transaction: %w", err)
	}
	return nil
}

// applyTransition performs the guarded order update. The WHERE clause on the
// active payment states is the concurrency control: of two racing deliveries
// only one row update succeeds, and only that delivery owns the side effects.
func (s *Service) applyTransition(ctx context.Context, order *models.Order, cb *payu.CallbackResponse, next types.PaymentStatus) (bool, error) {
	updates := map[string]any{
		"payment_status": next,
		"order_status":   OrderStatusFor(next),
		"payu_txnid":     cb.TxnID,
		"updated_at":     time.Now(),
	}
	if cb.MihpayID != "" {
		updates["payu_mihpayid"] = cb.MihpayID
	}
	if cb.Mode != "" {
		updates["payment_method"] = cb.Mode
	}

	res := s.db.WithContext(ctx).Model(&models.Order{}).
		Where("id = ? AND payment_status IN ?", order.ID, activeStates).
		Updates(updates)
	if res.Error != nil {
		return false, fmt.Errorf("failed to update order status: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

// applyInventory decrements stock for each line item of a completed order.
// Runs at most once per order because only the delivery that won the
// transition into completed calls it.
func (s *Service) applyInventory(ctx context.Context, orderID string) {
	log := logctx.FromCtx(ctx, s.log)

	var items []*models.OrderItem
	if err := s.db.WithContext(ctx).Where("order_id = ?", orderID).Find(&items).Error; err != nil {
		log.Errorf("failed to load order items for inventory update: %v", err)
		return
	}
	for _, item := range items {
		if err := s.catalog.DecrementInventory(ctx, item.ProductID, item.Quantity); err != nil {
			log.Errorf("inventory update failed for product %s: %v", item.ProductID, err)
		}
	}
}

var Module = fx.Options(
	fx.Provide(NewService),
)
