// Package normalize turns a raw Glances document into the four numbers the
// overview shows. It accepts both the Glances 3 and Glances 4 network field
// names and treats every missing or malformed piece as zero.
package normalize

import (
	"glances-hub/internal/model"
)

const bytesPerMiB = 1024 * 1024

// Network rate keys, newest schema first.
const (
	keyNetSentRate = "bytes_sent_rate_per_sec"
	keyNetRecvRate = "bytes_recv_rate_per_sec"
	keyNetTxLegacy = "tx_bytes_ps"
	keyNetRxLegacy = "rx_bytes_ps"

	keyDiskReadRate  = "read_bytes_ps"
	keyDiskWriteRate = "write_bytes_ps"
)

type Summary struct {
	CPUUsagePercent     float64
	MemUsagePercent     float64
	DiskIORateMBPerSec  float64
	NetIORateMbitPerSec float64
}

func Summarize(raw model.RawRecord) Summary {
	return Summary{
		CPUUsagePercent:     fieldOf(raw, "cpu", "total"),
		MemUsagePercent:     fieldOf(raw, "mem", "percent"),
		DiskIORateMBPerSec:  nonNegative(DiskBytesPerSec(raw["diskio"]) / bytesPerMiB),
		NetIORateMbitPerSec: nonNegative(NetBytesPerSec(raw["network"]) * 8 / bytesPerMiB),
	}
}

// Apply copies the summary into an online HostSummary row.
func (s Summary) Apply(h *model.HostSummary) {
	cpu, mem, disk, net := s.CPUUsagePercent, s.MemUsagePercent, s.DiskIORateMBPerSec, s.NetIORateMbitPerSec
	h.CPUUsagePercent = &cpu
	h.MemUsagePercent = &mem
	h.DiskIORateMBPerSec = &disk
	h.NetIORateMbitPerSec = &net
}

// DiskBytesPerSec sums read+write bytes/sec over every device entry.
// Entries that are not objects are skipped.
func DiskBytesPerSec(v any) float64 {
	var total float64
	for _, dev := range listOf(v) {
		m, ok := dev.(map[string]any)
		if !ok {
			continue
		}
		total += number(m[keyDiskReadRate]) + number(m[keyDiskWriteRate])
	}
	return total
}

// NetBytesPerSec sums tx+rx bytes/sec over every interface entry. The
// Glances 4 key wins whenever it is present, even if null; the Glances 3
// key is only consulted when the newer one is absent.
func NetBytesPerSec(v any) float64 {
	var total float64
	for _, iface := range listOf(v) {
		m, ok := iface.(map[string]any)
		if !ok {
			continue
		}
		total += preferred(m, keyNetSentRate, keyNetTxLegacy) + preferred(m, keyNetRecvRate, keyNetRxLegacy)
	}
	return total
}

func preferred(m map[string]any, key, legacy string) float64 {
	if v, ok := m[key]; ok {
		return number(v)
	}
	return number(m[legacy])
}

func fieldOf(raw model.RawRecord, group, key string) float64 {
	m, ok := raw[group].(map[string]any)
	if !ok {
		return 0
	}
	return number(m[key])
}

func listOf(v any) []any {
	l, _ := v.([]any)
	return l
}
