package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestBusinessCounters(t *testing.T) {
	beforeExchanges := testutil.ToFloat64(exchangesCreated)
	IncExchangesCreated()
	require.Equal(t, beforeExchanges+1, testutil.ToFloat64(exchangesCreated))

	beforeSucceeded := testutil.ToFloat64(drawsSucceeded)
	ObserveDrawSucceeded(3)
	require.Equal(t, beforeSucceeded+1, testutil.ToFloat64(drawsSucceeded))

	beforeExhausted := testutil.ToFloat64(drawsExhausted)
	ObserveDrawExhausted(1000)
	require.Equal(t, beforeExhausted+1, testutil.ToFloat64(drawsExhausted))

	require.Equal(t, 1, testutil.CollectAndCount(drawAttempts))
}

func TestInfeasibleCounterIsLabelledByReason(t *testing.T) {
	before := testutil.ToFloat64(drawsInfeasible.WithLabelValues("single_group"))
	IncDrawInfeasible("single_group")
	require.Equal(t, before+1, testutil.ToFloat64(drawsInfeasible.WithLabelValues("single_group")))
}

func TestAddParticipantsAddedIgnoresNonPositive(t *testing.T) {
	before := testutil.ToFloat64(participantsAdded)
	AddParticipantsAdded(-1)
	require.Equal(t, before, testutil.ToFloat64(participantsAdded))
	AddParticipantsAdded(2)
	require.Equal(t, before+2, testutil.ToFloat64(participantsAdded))
}
