package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"herdcl/internal/remote"
)

var dialContentService = defaultDial

func defaultDial(ctx context.Context, addr string) (healthpb.HealthClient, io.Closer, error) {
	client, conn, err := remote.Dial(ctx, addr)
	if err != nil {
		return nil, nil, err
	}
	return client, conn, nil
}

func resetServiceDeps() {
	dialContentService = defaultDial
}

func (a *App) withClient(ctx context.Context, addr string, timeout time.Duration, fn func(context.Context, healthpb.HealthClient) error) error {
	if timeout <= 0 {
		return errors.New("timeout must be greater than 0")
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, conn, err := dialContentService(ctx, addr)
	if err != nil {
		return fmt.Errorf("connect to content service: %w", err)
	}
	if conn != nil {
		defer conn.Close()
	}

	return fn(ctx, client)
}
