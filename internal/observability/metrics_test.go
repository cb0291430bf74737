package observability

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMetricsExposition(t *testing.T) {
	m := NewMetrics()
	m.ObserveAPI("POST", "/jobs/:job_id/pay", "200", 20*time.Millisecond)
	m.ObserveAPI("POST", "/jobs/:job_id/pay", "503", time.Second)
	m.ObserveAggregateOperation("Ledger.Balance.PayJob", "success", 5*time.Millisecond)
	m.IncAggregateConflict("Ledger.Balance.PayJob")
	m.AddLedgerMoney("paid", 20000)
	m.AddLedgerMoney("paid", -5)

	require.Equal(t, float64(1), m.apiReqError.Value())
	require.Equal(t, float64(20000), m.ledgerMoney.Value("paid"))
	require.Equal(t, uint64(1), m.aggregateLatency.Count("Ledger.Balance.PayJob", "success"))

	var buf bytes.Buffer
	require.NoError(t, m.WritePrometheus(&buf))
	out := buf.String()
	require.Contains(t, out, `ledger_api_requests_total{method="POST",route="/jobs/:job_id/pay",status="200"} 1.000000`)
	require.Contains(t, out, `ledger_aggregate_operation_duration_seconds_bucket{op="Ledger.Balance.PayJob",status="success",le="+Inf"} 1`)
	require.Contains(t, out, "# TYPE ledger_redis_up gauge")
}

func TestNilMetricsAreSafe(t *testing.T) {
	var m *Metrics
	m.ObserveAPI("GET", "/", "200", time.Millisecond)
	m.ApiInflightInc()
	m.IncLedgerEvent("job.paid", "ok")
	require.NoError(t, m.WritePrometheus(&bytes.Buffer{}))
	require.Nil(t, Init(nil, false))
}

func TestLabelEscaping(t *testing.T) {
	got := labelString([]string{"route"}, []string{`a"b\c`})
	require.Equal(t, `{route="a\"b\\c"}`, got)
	require.True(t, strings.HasPrefix(withLe(got, "0.5"), `{route="a\"b\\c",le="0.5"}`))
	require.Equal(t, `{le="1"}`, withLe("", "1"))
}

func TestParseHeaders(t *testing.T) {
	require.Equal(t, map[string]string{"a": "1", "b": "2"}, ParseHeaders(" a=1, b=2 ,bad,=x"))
	require.Nil(t, ParseHeaders(""))
}
