package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestRegisterCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	RegisterCollectors(reg)

	AssistRequests.WithLabelValues("summarize", OutcomeOK).Inc()
	StoreErrors.WithLabelValues("list").Inc()

	n, err := testutil.GatherAndCount(reg, "notes_assist_requests_total", "notes_store_errors_total")
	require.NoError(t, err)
	require.GreaterOrEqual(t, n, 2)

	require.Panics(t, func() { RegisterCollectors(reg) })
}
