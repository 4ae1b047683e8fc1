// Package remote talks to the content service over gRPC.
package remote

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/grpc"
	"google.golang.org/grpc/connectivity"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// Dial opens a gRPC connection to target and waits until it is ready or ctx
// expires. Extra options are appended after the insecure transport default.
func Dial(ctx context.Context, target string, opts ...grpc.DialOption) (healthpb.HealthClient, *grpc.ClientConn, error) {
	target = strings.TrimSpace(target)
	if target == "" {
		return nil, nil, errors.New("service address is empty")
	}
	dialOpts := append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	}, opts...)
	conn, err := grpc.NewClient(target, dialOpts...)
	if err != nil {
		return nil, nil, err
	}
	conn.Connect()
	if err := waitForReady(ctx, conn); err != nil {
		_ = conn.Close()
		return nil, nil, err
	}
	return healthpb.NewHealthClient(conn), conn, nil
}

func waitForReady(ctx context.Context, conn *grpc.ClientConn) error {
	for {
		switch state := conn.GetState(); state {
		case connectivity.Ready:
			return nil
		case connectivity.Shutdown:
			return errors.New("grpc connection is shut down")
		default:
			if !conn.WaitForStateChange(ctx, state) {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				return fmt.Errorf("grpc connection stuck in state %s", state.String())
			}
		}
	}
}

// Check asks the health service about service ("" means the whole server).
func Check(ctx context.Context, client healthpb.HealthClient, service string) (*healthpb.HealthCheckResponse, error) {
	resp, err := client.Check(ctx, &healthpb.HealthCheckRequest{Service: service})
	if err != nil {
		return nil, fmt.Errorf("health check RPC failed: %w", err)
	}
	return resp, nil
}
