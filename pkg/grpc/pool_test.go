package grpc

import (
	"bytes"
	"context"
	"log"
	"strings"
	"testing"

	"google.golang.org/grpc"
)

func TestPoolReusesConnection(t *testing.T) {
	p := NewPool()
	defer p.Close()

	a, err := p.GetConnection("passthrough:///ledger-a")
	if err != nil {
		t.Fatal(err)
	}
	again, err := p.GetConnection("passthrough:///ledger-a")
	if err != nil {
		t.Fatal(err)
	}
	if a != again {
		t.Fatal("want the same connection for the same target")
	}

	b, err := p.GetConnection("passthrough:///ledger-b")
	if err != nil {
		t.Fatal(err)
	}
	if a == b {
		t.Fatal("want different connections for different targets")
	}
	if p.Len() != 2 {
		t.Fatalf("len=%d want=2", p.Len())
	}
}

func TestPoolReplacesClosedConnection(t *testing.T) {
	p := NewPool()
	defer p.Close()

	first, err := p.GetConnection("passthrough:///ledger")
	if err != nil {
		t.Fatal(err)
	}
	first.Close()

	second, err := p.GetConnection("passthrough:///ledger")
	if err != nil {
		t.Fatal(err)
	}
	if first == second {
		t.Fatal("want a fresh connection after close")
	}
}

func TestPoolClose(t *testing.T) {
	p := NewPool()
	if _, err := p.GetConnection("passthrough:///ledger"); err != nil {
		t.Fatal(err)
	}
	if err := p.Close(); err != nil {
		t.Fatal(err)
	}
	if p.Len() != 0 {
		t.Fatalf("len=%d want=0", p.Len())
	}
}

func TestLoggingInterceptor(t *testing.T) {
	var buf bytes.Buffer
	interceptor := LoggingInterceptor(log.New(&buf, "", 0))
	invoker := func(ctx context.Context, method string, req, reply any, cc *grpc.ClientConn, opts ...grpc.CallOption) error {
		return nil
	}
	if err := interceptor(context.Background(), "/ledger.v1.LedgerService/Deposit", nil, nil, nil, invoker); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "/ledger.v1.LedgerService/Deposit") {
		t.Fatalf("log missing method: %q", buf.String())
	}
}
