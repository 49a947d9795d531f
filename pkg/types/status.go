package types

// OrderStatus is the fulfilment-facing status of an order. It is derived
// from PaymentStatus by the reconciler and never set directly by handlers.
type OrderStatus string

const (
	OrderStatusPending        OrderStatus = "pending"
	OrderStatusConfirmed      OrderStatus = "confirmed"
	OrderStatusPaymentFailed  OrderStatus = "payment_failed"
	OrderStatusPaymentPending OrderStatus = "payment_pending"
)

// PaymentStatus tracks the gateway-facing payment lifecycle of an order:
// pending -> processing -> {completed, failed, pending_external}.
type PaymentStatus string

const (
	PaymentStatusPending    PaymentStatus = "pending"
	PaymentStatusProcessing PaymentStatus = "processing"
	PaymentStatusCompleted  PaymentStatus = "completed"
	PaymentStatusFailed     PaymentStatus = "failed"
	// PaymentStatusPendingExternal means the gateway reported the payment as
	// in flight on its side (e.g. bank transfer awaiting clearance).
	PaymentStatusPendingExternal PaymentStatus = "pending_external"
)

// Terminal reports whether the status absorbs further callback deliveries.
func (s PaymentStatus) Terminal() bool {
	return s == PaymentStatusCompleted || s == PaymentStatusFailed
}

// GatewayStatus is the outcome claimed by a PayU callback.
type GatewayStatus string

const (
	GatewayStatusSuccess GatewayStatus = "success"
	GatewayStatusFailure GatewayStatus = "failure"
	GatewayStatusPending GatewayStatus = "pending"
)

// Address is the shipping/billing address shape stored as JSONB on orders.
type Address struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	Zipcode string `json:"zipcode"`
	Country string `json:"country"`
}
