package hub

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"

	"golang.org/x/sync/errgroup"
)

func (h *Hub) run(ctx context.Context) error {
	httpLn, err := listen("http", h.cfg.ListenAddr)
	if err != nil {
		return err
	}
	probeLn, err := listen("probe", h.cfg.ProbeListenAddr)
	if err != nil {
		_ = httpLn.Close()
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return h.serveHTTP(gctx, httpLn)
	})
	g.Go(func() error {
		return h.serveProbe(gctx, probeLn)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func listen(name, addr string) (net.Listener, error) {
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return nil, fmt.Errorf("empty %s listen address", name)
	}
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("listen %s endpoint %s: %w", name, addr, err)
	}
	return ln, nil
}

func (h *Hub) serveHTTP(ctx context.Context, ln net.Listener) error {
	h.logger.Info("http api listening", "addr", ln.Addr().String())

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), h.cfg.ShutdownTimeout)
		defer cancel()
		if err := h.httpServer.Shutdown(shutdownCtx); err != nil {
			h.logger.Warn("http shutdown failed", "error", err)
		}
	}()

	if err := h.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serve http api: %w", err)
	}
	return nil
}

// shutdown force-stops whatever the graceful path left running.
func (h *Hub) shutdown() {
	h.health.SetServing(false)
	h.probe.Shutdown()
	h.grpcServer.Stop()
	if err := h.httpServer.Close(); err != nil {
		h.logger.Warn("http close failed", "error", err)
	}
}
