package app

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"google.golang.org/grpc"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

type fakeConn struct {
	invoke func(ctx context.Context, method string, args interface{}, reply interface{}, opts ...grpc.CallOption) error
}

func (f *fakeConn) Invoke(ctx context.Context, method string, args interface{}, reply interface{}, opts ...grpc.CallOption) error {
	if f.invoke != nil {
		return f.invoke(ctx, method, args, reply, opts...)
	}
	return nil
}

func (f *fakeConn) NewStream(ctx context.Context, desc *grpc.StreamDesc, method string, opts ...grpc.CallOption) (grpc.ClientStream, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeConn) Close() error { return nil }

func stubService(t *testing.T, dial func(context.Context, string) (healthpb.HealthClient, io.Closer, error)) {
	t.Helper()
	resetServiceDeps()
	if dial == nil {
		dial = func(context.Context, string) (healthpb.HealthClient, io.Closer, error) {
			return nil, nil, errors.New("dial not stubbed")
		}
	}
	dialContentService = dial
	t.Cleanup(resetServiceDeps)
}

const testManifest = `
namespace: SEC_MARKET_DATA
objects:
  - name: TradeData
    display_name: Trade Data
    tags: [pii, equities]
  - name: QuoteData
    tags: [equities]
`

// setupEnv points every HERDCL_* variable at test-controlled values and
// returns the directory holding the content file.
func setupEnv(t *testing.T, action string) string {
	t.Helper()
	dir := t.TempDir()
	contentPath := filepath.Join(dir, "content.yaml")
	if err := os.WriteFile(contentPath, []byte(testManifest), 0o600); err != nil {
		t.Fatalf("write content: %v", err)
	}
	t.Setenv("HERDCL_ACTION", action)
	t.Setenv("HERDCL_ENV", "")
	t.Setenv("HERDCL_CONTENT", contentPath)
	t.Setenv("HERDCL_CATALOG", "")
	t.Setenv("HERDCL_SERVICE_ADDR", "")
	t.Setenv("HERDCL_SERVICE_NAME", "")
	t.Setenv("HERDCL_TIMEOUT", "")
	t.Setenv("HERDCL_LOG_LEVEL", "")
	t.Setenv("HERDCL_LOG_FORMAT", "")
	return dir
}
