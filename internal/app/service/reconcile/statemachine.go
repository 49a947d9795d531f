package reconcile

import "github.com/Divy97/rajawadu/pkg/types"

// transitions is the explicit state machine for payment_status, keyed by
// current state and gateway-reported outcome. States absent from the table
// (completed, failed) are terminal: repeat deliveries are absorbed as no-ops
// and an illegal move like completed -> pending cannot be expressed.
var transitions = map[types.PaymentStatus]map[types.GatewayStatus]types.PaymentStatus{
	types.PaymentStatusPending: {
		types.GatewayStatusSuccess: types.PaymentStatusCompleted,
		types.GatewayStatusFailure: types.PaymentStatusFailed,
		types.GatewayStatusPending: types.PaymentStatusPendingExternal,
	},
	types.PaymentStatusProcessing: {
		types.GatewayStatusSuccess: types.PaymentStatusCompleted,
		types.GatewayStatusFailure: types.PaymentStatusFailed,
		types.GatewayStatusPending: types.PaymentStatusPendingExternal,
	},
	// a gateway-pending payment may still settle either way
	types.PaymentStatusPendingExternal: {
		types.GatewayStatusSuccess: types.PaymentStatusCompleted,
		types.GatewayStatusFailure: types.PaymentStatusFailed,
	},
}

// activeStates are the payment states a transition may start from; the
// guarded order update conditions on this set so two concurrent deliveries
// cannot both win the same transition.
var activeStates = []types.PaymentStatus{
	types.PaymentStatusPending,
	types.PaymentStatusProcessing,
	types.PaymentStatusPendingExternal,
}

// NextState resolves the transition for a verified gateway outcome. ok is
// false when the current state is terminal or the event is not applicable.
func NextState(current types.PaymentStatus, event types.GatewayStatus) (types.PaymentStatus, bool) {
	byEvent, found := transitions[current]
	if !found {
		return current, false
	}
	if next, found := byEvent[event]; found {
		return next, true
	}
	return current, false
}

// OrderStatusFor derives the fulfilment status from the payment status.
func OrderStatusFor(s types.PaymentStatus) types.OrderStatus {
	switch s {
	case types.PaymentStatusCompleted:
		return types.OrderStatusConfirmed
	case types.PaymentStatusFailed:
		return types.OrderStatusPaymentFailed
	case types.PaymentStatusPendingExternal:
		return types.OrderStatusPaymentPending
	default:
		return types.OrderStatusPending
	}
}
