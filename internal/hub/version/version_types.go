package version

type GetVersionResponse struct {
	HubVersion      string `json:"hub_version"`
	GoVersion       string `json:"go_version"`
	ProbeListenAddr string `json:"probe_listen_addr"`
	Hosts           int    `json:"hosts"`
	CheckedAtUnix   int64  `json:"checked_at_unix"`
}
