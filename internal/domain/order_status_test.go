package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderStatus_ForwardPath(t *testing.T) {
	s := StatusPending
	for _, next := range []OrderStatus{StatusConfirmed, StatusShipped, StatusDelivered} {
		var err error
		s, err = s.Transition(next)
		require.NoError(t, err)
	}
	assert.True(t, s.IsTerminal())
}

func TestOrderStatus_CancelAndRefundFromNonTerminal(t *testing.T) {
	for _, from := range []OrderStatus{StatusPending, StatusConfirmed, StatusShipped} {
		assert.True(t, from.CanTransitionTo(StatusCancelled), from)
		assert.True(t, from.CanTransitionTo(StatusRefunded), from)
	}
}

func TestOrderStatus_Rejected(t *testing.T) {
	cases := []struct{ from, to OrderStatus }{
		{StatusPending, StatusShipped},
		{StatusConfirmed, StatusPending},
		{StatusDelivered, StatusRefunded},
		{StatusCancelled, StatusConfirmed},
		{StatusRefunded, StatusCancelled},
		{OrderStatus("LOST"), StatusCancelled},
	}
	for _, tc := range cases {
		_, err := tc.from.Transition(tc.to)
		assert.ErrorIs(t, err, ErrInvalidTransition, "%s -> %s", tc.from, tc.to)
	}
}
