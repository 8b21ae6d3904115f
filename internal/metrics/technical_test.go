package metrics

import (
	"net/http"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestObserveHTTPRequest(t *testing.T) {
	endpoint := "/exchange/draw"
	method := http.MethodPost

	before := testutil.ToFloat64(httpRequestsTotal.WithLabelValues(method, endpoint, "200"))
	ObserveHTTPRequest(method, endpoint, http.StatusOK, 25*time.Millisecond, 128)
	require.Equal(t, before+1, testutil.ToFloat64(httpRequestsTotal.WithLabelValues(method, endpoint, "200")))
	require.Positive(t, testutil.CollectAndCount(httpRequestSize))
}
