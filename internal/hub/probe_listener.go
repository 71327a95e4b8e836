package hub

import (
	"context"
	"errors"
	"fmt"
	"net"

	"google.golang.org/grpc"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// ProbeService is the service name reported alongside the overall ("")
// status on the gRPC health endpoint.
const ProbeService = "glances-hub"

func (h *Hub) serveProbe(ctx context.Context, ln net.Listener) error {
	h.probe.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	h.probe.SetServingStatus(ProbeService, healthpb.HealthCheckResponse_SERVING)
	h.health.SetServing(true)

	h.logger.Info("probe endpoint listening", "addr", ln.Addr().String())

	go func() {
		<-ctx.Done()
		h.probe.Shutdown()
		h.grpcServer.GracefulStop()
	}()

	if err := h.grpcServer.Serve(ln); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		return fmt.Errorf("serve probe endpoint: %w", err)
	}
	return nil
}
