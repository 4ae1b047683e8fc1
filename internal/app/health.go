package app

import (
	"context"
	"encoding/json"
	"fmt"

	"google.golang.org/grpc/codes"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/encoding/protojson"

	"herdcl/internal/config"
	"herdcl/internal/remote"
)

// HealthResult is returned by the health action.
type HealthResult struct {
	Address  string          `json:"address"`
	Service  string          `json:"service"`
	Status   string          `json:"status"`
	Response json.RawMessage `json:"response"`
}

// health queries the content service's gRPC health endpoint.
func (a *App) health(ctx context.Context, cfg config.Config) (HealthResult, error) {
	result := HealthResult{Address: cfg.ServiceAddr, Service: cfg.ServiceName}
	if result.Service == "" {
		result.Service = "(server)"
	}

	err := a.withClient(ctx, cfg.ServiceAddr, cfg.Timeout, func(ctx context.Context, client healthpb.HealthClient) error {
		resp, err := remote.Check(ctx, client, cfg.ServiceName)
		if status.Code(err) == codes.NotFound {
			result.Status = healthpb.HealthCheckResponse_SERVICE_UNKNOWN.String()
			return fmt.Errorf("service %q is not registered: %w", cfg.ServiceName, err)
		}
		if err != nil {
			return err
		}
		raw, err := protojson.Marshal(resp)
		if err != nil {
			return fmt.Errorf("encode health response: %w", err)
		}
		result.Status = resp.GetStatus().String()
		result.Response = raw
		return nil
	})
	if err != nil {
		return result, err
	}
	if result.Status != healthpb.HealthCheckResponse_SERVING.String() {
		a.logger.Warn("content service not serving", "address", cfg.ServiceAddr, "status", result.Status)
	}
	return result, nil
}
