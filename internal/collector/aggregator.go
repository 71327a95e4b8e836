package collector

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"glances-hub/internal/glances"
	"glances-hub/internal/metrics"
	"glances-hub/internal/model"
	"glances-hub/internal/normalize"
	"glances-hub/internal/registry"
)

// Fetcher is satisfied by *glances.Client.
type Fetcher interface {
	Fetch(ctx context.Context, baseURL string) (model.RawRecord, error)
}

// Observer is told about every completed overview.
type Observer interface {
	ObserveOverview(at time.Time, online, degraded int)
}

type Aggregator struct {
	logger   *slog.Logger
	registry *registry.Registry
	fetcher  Fetcher
	limit    int
	observer Observer
}

// NewAggregator builds an aggregator over reg. limit caps concurrent
// fetches; 0 means one goroutine per host.
func NewAggregator(logger *slog.Logger, reg *registry.Registry, fetcher Fetcher, limit int) *Aggregator {
	if reg == nil {
		reg = registry.Empty()
	}
	if limit < 0 {
		limit = 0
	}
	return &Aggregator{
		logger:   logger,
		registry: reg,
		fetcher:  fetcher,
		limit:    limit,
	}
}

func (a *Aggregator) SetObserver(o Observer) {
	a.observer = o
}

// Overview fetches every host concurrently and returns one row per host in
// registry order. Per-host failures become degraded rows; Overview itself
// never fails.
func (a *Aggregator) Overview(ctx context.Context) []model.HostSummary {
	start := time.Now()
	endpoints := a.registry.All()
	out := make([]model.HostSummary, len(endpoints))

	// Plain Group, not WithContext: one host failing must not cancel the rest.
	var g errgroup.Group
	if a.limit > 0 {
		g.SetLimit(a.limit)
	}
	for i, ep := range endpoints {
		g.Go(func() error {
			out[i] = a.summarize(ctx, ep)
			return nil
		})
	}
	_ = g.Wait()

	online := 0
	for _, row := range out {
		up := 0.0
		if row.Online() {
			online++
			up = 1
		}
		metrics.HostUp.WithLabelValues(row.Name).Set(up)
		metrics.HostStatusTotal.WithLabelValues(string(row.Status)).Inc()
	}
	elapsed := time.Since(start)
	metrics.OverviewDuration.Observe(elapsed.Seconds())
	a.logger.Debug("overview assembled", "hosts", len(out), "online", online, "elapsed", elapsed)
	if a.observer != nil {
		a.observer.ObserveOverview(time.Now().UTC(), online, len(out)-online)
	}
	return out
}

func (a *Aggregator) summarize(ctx context.Context, ep registry.Endpoint) (row model.HostSummary) {
	defer func() {
		if r := recover(); r != nil {
			a.logger.Error("host summary panicked", "host", ep.Name, "panic", r)
			row = model.NewDegradedSummary(ep.Name, model.StatusError, fmt.Sprintf("Unexpected error: %v", r))
		}
	}()

	raw, err := a.fetcher.Fetch(ctx, ep.BaseURL)
	if err != nil {
		var fe *glances.FetchError
		if errors.As(err, &fe) {
			a.logger.Warn("host offline", "host", ep.Name, "kind", fe.Kind, "error", err)
			return model.NewDegradedSummary(ep.Name, model.StatusOffline, fe.Detail)
		}
		a.logger.Error("host fetch failed unexpectedly", "host", ep.Name, "error", err)
		return model.NewDegradedSummary(ep.Name, model.StatusError, fmt.Sprintf("Unexpected error: %v", err))
	}

	row = model.NewOnlineSummary(ep.Name)
	normalize.Summarize(raw).Apply(&row)
	a.logger.Debug("host online", "host", ep.Name)
	return row
}
