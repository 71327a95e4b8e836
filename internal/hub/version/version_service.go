package version

import (
	"runtime"
	"time"

	"glances-hub/internal/config"
)

func Get(cfg config.Config, hosts int) *GetVersionResponse {
	return &GetVersionResponse{
		HubVersion:      cfg.HubVersion,
		GoVersion:       runtime.Version(),
		ProbeListenAddr: cfg.ProbeListenAddr,
		Hosts:           hosts,
		CheckedAtUnix:   time.Now().UTC().Unix(),
	}
}
