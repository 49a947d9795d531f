package reconcile

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Divy97/rajawadu/pkg/types"
)

func TestNextState_ActiveStates(t *testing.T) {
	cases := []struct {
		current types.PaymentStatus
		event   types.GatewayStatus
		want    types.PaymentStatus
	}{
		{types.PaymentStatusPending, types.GatewayStatusSuccess, types.PaymentStatusCompleted},
		{types.PaymentStatusPending, types.GatewayStatusFailure, types.PaymentStatusFailed},
		{types.PaymentStatusPending, types.GatewayStatusPending, types.PaymentStatusPendingExternal},
		{types.PaymentStatusProcessing, types.GatewayStatusSuccess, types.PaymentStatusCompleted},
		{types.PaymentStatusProcessing, types.GatewayStatusFailure, types.PaymentStatusFailed},
		{types.PaymentStatusProcessing, types.GatewayStatusPending, types.PaymentStatusPendingExternal},
		{types.PaymentStatusPendingExternal, types.GatewayStatusSuccess, types.PaymentStatusCompleted},
		{types.PaymentStatusPendingExternal, types.GatewayStatusFailure, types.PaymentStatusFailed},
	}
	for _, tc := range cases {
		next, ok := NextState(tc.current, tc.event)
		require.True(t, ok, "%s + %s", tc.current, tc.event)
		require.Equal(t, tc.want, next, "%s + %s", tc.current, tc.event)
	}
}

func TestNextState_TerminalStatesAbsorbEverything(t *testing.T) {
	for _, terminal := range []types.PaymentStatus{types.PaymentStatusCompleted, types.PaymentStatusFailed} {
		for _, ev := range []types.GatewayStatus{types.GatewayStatusSuccess, types.GatewayStatusFailure, types.GatewayStatusPending} {
			next, ok := NextState(terminal, ev)
			require.False(t, ok, "%s must absorb %s", terminal, ev)
			require.Equal(t, terminal, next)
		}
	}
}

func TestNextState_CompletedCannotRegress(t *testing.T) {
	// a late "pending" delivery after settlement must not move the order back
	next, ok := NextState(types.PaymentStatusCompleted, types.GatewayStatusPending)
	require.False(t, ok)
	require.Equal(t, types.PaymentStatusCompleted, next)
}

func TestNextState_PendingExternalIgnoresRepeatPending(t *testing.T) {
	next, ok := NextState(types.PaymentStatusPendingExternal, types.GatewayStatusPending)
	require.False(t, ok)
	require.Equal(t, types.PaymentStatusPendingExternal, next)
}

func TestActiveStates_MatchTransitionTable(t *testing.T) {
	require.ElementsMatch(t, activeStates, []types.PaymentStatus{
		types.PaymentStatusPending,
		types.PaymentStatusProcessing,
		types.PaymentStatusPendingExternal,
	})
	for _, s := range activeStates {
		require.False(t, s.Terminal())
		_, present := transitions[s]
		require.True(t, present)
	}
}

func TestOrderStatusFor(t *testing.T) {
	require.Equal(t, types.OrderStatusConfirmed, OrderStatusFor(types.PaymentStatusCompleted))
	require.Equal(t, types.OrderStatusPaymentFailed, OrderStatusFor(types.PaymentStatusFailed))
	require.Equal(t, types.OrderStatusPaymentPending, OrderStatusFor(types.PaymentStatusPendingExternal))
	require.Equal(t, types.OrderStatusPending, OrderStatusFor(types.PaymentStatusPending))
	require.Equal(t, types.OrderStatusPending, OrderStatusFor(types.PaymentStatusProcessing))
}
