package model

type Status string

const (
	StatusOnline  Status = "online"
	StatusOffline Status = "offline"
	StatusError   Status = "error"
)

// HostSummary is the canonical per-host row of the overview.
// Metric fields are set only for online hosts; Error is set only for
// degraded ones.
type HostSummary struct {
	ID                  string   `json:"id"`
	Name                string   `json:"name"`
	CPUUsagePercent     *float64 `json:"cpu_usage_percent,omitempty"`
	MemUsagePercent     *float64 `json:"mem_usage_percent,omitempty"`
	DiskIORateMBPerSec  *float64 `json:"disk_io_rate_mb_per_sec,omitempty"`
	NetIORateMbitPerSec *float64 `json:"net_io_rate_mbit_per_sec,omitempty"`
	Status              Status   `json:"status"`
	Error               string   `json:"error,omitempty"`
}

func NewOnlineSummary(name string) HostSummary {
	return HostSummary{ID: name, Name: name, Status: StatusOnline}
}

func NewDegradedSummary(name string, status Status, detail string) HostSummary {
	if detail == "" {
		detail = string(status)
	}
	return HostSummary{ID: name, Name: name, Status: status, Error: detail}
}

func (s HostSummary) Online() bool {
	return s.Status == StatusOnline
}
