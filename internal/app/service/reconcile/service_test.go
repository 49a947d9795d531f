package reconcile

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Divy97/rajawadu/pkg/types"
)

func TestOutcome_Completed(t *testing.T) {
	require.True(t, (&Outcome{PaymentStatus: types.PaymentStatusCompleted}).Completed())
	require.False(t, (&Outcome{PaymentStatus: types.PaymentStatusFailed}).Completed())
	require.False(t, (&Outcome{PaymentStatus: types.PaymentStatusCompleted, Reason: ReasonAmountMismatch}).Completed(),
		"a mismatch outcome is never treated as completed")

	var nilOutcome *Outcome
	require.False(t, nilOutcome.Completed())
}

func TestPaymentStatusFor(t *testing.T) {
	require.Equal(t, types.PaymentStatusCompleted, paymentStatusFor(types.GatewayStatusSuccess))
	require.Equal(t, types.PaymentStatusPendingExternal, paymentStatusFor(types.GatewayStatusPending))
	require.Equal(t, types.PaymentStatusFailed, paymentStatusFor(types.GatewayStatusFailure))
}

func TestReasonFor(t *testing.T) {
	require.Equal(t, ReasonPaymentFailed, reasonFor(types.PaymentStatusFailed))
	require.Equal(t, ReasonPaymentPending, reasonFor(types.PaymentStatusPendingExternal))
	require.Empty(t, reasonFor(types.PaymentStatusCompleted))
	require.Empty(t, reasonFor(types.PaymentStatusProcessing))
}
