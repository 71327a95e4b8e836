package normalize

import (
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"glances-hub/internal/model"
)

// decode mirrors how the agent client decodes bodies.
func decode(t *testing.T, body string) model.RawRecord {
	t.Helper()
	dec := json.NewDecoder(strings.NewReader(body))
	dec.UseNumber()
	var rec model.RawRecord
	require.NoError(t, dec.Decode(&rec))
	return rec
}

func TestSummarizeFullRecord(t *testing.T) {
	rec := decode(t, `{
		"cpu": {"total": 12.5},
		"mem": {"percent": 40},
		"diskio": [
			{"disk_name": "sda", "read_bytes_ps": 524288, "write_bytes_ps": 524288},
			{"disk_name": "sdb", "read_bytes_ps": 1048576}
		],
		"network": [
			{"interface_name": "eth0", "bytes_sent_rate_per_sec": 65536, "bytes_recv_rate_per_sec": 65536}
		]
	}`)

	s := Summarize(rec)
	assert.Equal(t, 12.5, s.CPUUsagePercent)
	assert.Equal(t, 40.0, s.MemUsagePercent)
	assert.Equal(t, 2.0, s.DiskIORateMBPerSec)
	assert.Equal(t, 1.0, s.NetIORateMbitPerSec)
}

func TestSummarizeEmptyRecord(t *testing.T) {
	assert.Equal(t, Summary{}, Summarize(model.RawRecord{}))
	assert.Equal(t, Summary{}, Summarize(nil))
}

func TestSummarizeDiskioAbsent(t *testing.T) {
	s := Summarize(decode(t, `{"cpu": {"total": 3}}`))
	assert.Equal(t, 0.0, s.DiskIORateMBPerSec)
	assert.Equal(t, 3.0, s.CPUUsagePercent)
}

func TestSummarizeWrongGroupTypes(t *testing.T) {
	s := Summarize(decode(t, `{
		"cpu": [1, 2, 3],
		"mem": "lots",
		"diskio": {"sda": {"read_bytes_ps": 1}},
		"network": 42
	}`))
	assert.Equal(t, Summary{}, s)
}

func TestSummarizeMissingLeafFields(t *testing.T) {
	s := Summarize(decode(t, `{"cpu": {"user": 5}, "mem": {"total": 1024}}`))
	assert.Equal(t, 0.0, s.CPUUsagePercent)
	assert.Equal(t, 0.0, s.MemUsagePercent)
}

func TestNetworkNewSchema(t *testing.T) {
	s := Summarize(decode(t, `{"network": [{"bytes_sent_rate_per_sec": 1048576, "bytes_recv_rate_per_sec": 0}]}`))
	assert.Equal(t, 8.0, s.NetIORateMbitPerSec)
}

func TestNetworkLegacySchemaMatchesNewSchema(t *testing.T) {
	legacy := Summarize(decode(t, `{"network": [{"tx_bytes_ps": 1048576, "rx_bytes_ps": 1048576}]}`))
	current := Summarize(decode(t, `{"network": [{"bytes_sent_rate_per_sec": 1048576, "bytes_recv_rate_per_sec": 1048576}]}`))

	assert.Equal(t, 16.0, legacy.NetIORateMbitPerSec)
	assert.Equal(t, current, legacy)
}

func TestNetworkMixedSchemasAcrossInterfaces(t *testing.T) {
	s := Summarize(decode(t, `{"network": [
		{"interface_name": "eth0", "tx_bytes_ps": 131072, "rx_bytes_ps": 0},
		{"interface_name": "eth1", "bytes_sent_rate_per_sec": 0, "bytes_recv_rate_per_sec": 131072}
	]}`))
	assert.Equal(t, 2.0, s.NetIORateMbitPerSec)
}

func TestNetworkPresentNullDoesNotFallBack(t *testing.T) {
	s := Summarize(decode(t, `{"network": [{"bytes_sent_rate_per_sec": null, "tx_bytes_ps": 1048576, "rx_bytes_ps": 1048576}]}`))
	assert.Equal(t, 8.0, s.NetIORateMbitPerSec)
}

func TestNetworkSkipsNonObjects(t *testing.T) {
	s := Summarize(decode(t, `{"network": ["eth0", null, 7, {"tx_bytes_ps": 1048576}]}`))
	assert.Equal(t, 8.0, s.NetIORateMbitPerSec)
}

func TestDiskSkipsMalformedEntries(t *testing.T) {
	s := Summarize(decode(t, `{"diskio": [
		"sda",
		null,
		[1, 2],
		{"read_bytes_ps": 1048576, "write_bytes_ps": null},
		{"write_bytes_ps": 1048576},
		{"read_bytes_ps": "fast"}
	]}`))
	assert.Equal(t, 2.0, s.DiskIORateMBPerSec)
}

func TestNumberCoercion(t *testing.T) {
	tests := []struct {
		in   any
		want float64
	}{
		{nil, 0},
		{"12", 0},
		{true, 0},
		{map[string]any{}, 0},
		{json.Number("2.5"), 2.5},
		{json.Number("bogus"), 0},
		{json.Number("1e400"), math.MaxFloat64},
		{json.Number("-1e400"), 0},
		{3, 3},
		{int64(4), 4},
		{uint64(5), 5},
		{float32(1.5), 1.5},
		{-7.0, 0},
		{math.NaN(), 0},
		{math.Inf(1), math.MaxFloat64},
		{math.Inf(-1), 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, number(tt.in), "%#v", tt.in)
	}
}

func TestApplyFillsEveryMetric(t *testing.T) {
	h := model.NewOnlineSummary("a")
	Summary{CPUUsagePercent: 1, MemUsagePercent: 2, DiskIORateMBPerSec: 3, NetIORateMbitPerSec: 4}.Apply(&h)

	require.NotNil(t, h.CPUUsagePercent)
	require.NotNil(t, h.MemUsagePercent)
	require.NotNil(t, h.DiskIORateMBPerSec)
	require.NotNil(t, h.NetIORateMbitPerSec)
	assert.Equal(t, 1.0, *h.CPUUsagePercent)
	assert.Equal(t, 2.0, *h.MemUsagePercent)
	assert.Equal(t, 3.0, *h.DiskIORateMBPerSec)
	assert.Equal(t, 4.0, *h.NetIORateMbitPerSec)
}

func TestSummarizeSaturatesOverflowingRates(t *testing.T) {
	rec := decode(t, `{
		"diskio": [{"read_bytes_ps": 1.7e308, "write_bytes_ps": 1.7e308}],
		"network": [{"bytes_sent_rate_per_sec": 1.7e308, "bytes_recv_rate_per_sec": 1.7e308}]
	}`)

	s := Summarize(rec)
	assert.Equal(t, math.MaxFloat64, s.DiskIORateMBPerSec)
	assert.Equal(t, math.MaxFloat64, s.NetIORateMbitPerSec)
	assert.False(t, math.IsInf(s.DiskIORateMBPerSec, 0))
}
