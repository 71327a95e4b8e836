package hub

import (
	"sync/atomic"
	"time"
)

type HealthStatus struct {
	serving           atomic.Bool
	registrySize      atomic.Int64
	lastOverviewAt    atomic.Int64
	lastOnlineHosts   atomic.Int64
	lastDegradedHosts atomic.Int64
}

func NewHealthStatus(registrySize int) *HealthStatus {
	h := &HealthStatus{}
	h.registrySize.Store(int64(registrySize))
	return h
}

func (h *HealthStatus) SetServing(ok bool) {
	h.serving.Store(ok)
}

// ObserveOverview implements collector.Observer.
func (h *HealthStatus) ObserveOverview(at time.Time, online, degraded int) {
	h.lastOnlineHosts.Store(int64(online))
	h.lastDegradedHosts.Store(int64(degraded))
	h.lastOverviewAt.Store(at.UnixNano())
}

func (h *HealthStatus) Snapshot() map[string]any {
	out := map[string]any{
		"serving":       h.serving.Load(),
		"registry_size": h.registrySize.Load(),
	}
	if v := h.lastOverviewAt.Load(); v > 0 {
		out["last_overview_at"] = time.Unix(0, v).UTC()
		out["last_online_hosts"] = h.lastOnlineHosts.Load()
		out["last_degraded_hosts"] = h.lastDegradedHosts.Load()
	}
	return out
}
