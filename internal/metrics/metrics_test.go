package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestUpstreamOutcome(t *testing.T) {
	assert.Equal(t, "transport_error", upstreamOutcome(0))
	assert.Equal(t, "2xx", upstreamOutcome(200))
	assert.Equal(t, "4xx", upstreamOutcome(401))
	assert.Equal(t, "5xx", upstreamOutcome(503))
}

func TestObserveUpstream(t *testing.T) {
	before := testutil.ToFloat64(upstreamRequests.WithLabelValues(APIVatsim, "5xx"))

	ObserveUpstream(APIVatsim, 502)

	assert.Equal(t, before+1, testutil.ToFloat64(upstreamRequests.WithLabelValues(APIVatsim, "5xx")))
}

func TestObserveRefreshAndRender(t *testing.T) {
	refreshBefore := testutil.ToFloat64(tokenRefreshes.WithLabelValues("failed"))
	renderBefore := testutil.ToFloat64(renders.WithLabelValues("ok"))

	ObserveRefresh("failed")
	ObserveRender("ok")

	assert.Equal(t, refreshBefore+1, testutil.ToFloat64(tokenRefreshes.WithLabelValues("failed")))
	assert.Equal(t, renderBefore+1, testutil.ToFloat64(renders.WithLabelValues("ok")))
}
