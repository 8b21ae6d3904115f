package nower

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNowReturnsRecentTime(t *testing.T) {
	n := New()
	now := n.Now()
	require.WithinDuration(t, time.Now(), now, 50*time.Millisecond)
}

func TestNowIsUTCWithMicrosecondPrecision(t *testing.T) {
	now := New().Now()
	require.Equal(t, time.UTC, now.Location())
	require.Zero(t, now.Nanosecond()%int(time.Microsecond))
}
