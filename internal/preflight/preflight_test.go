package preflight_test

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"tickerforge/internal/preflight"
	"tickerforge/internal/testsupport"
)

func TestRunAllAgainstLiveEndpoints(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer listener.Close()
	port := listener.Addr().(*net.TCPAddr).Port

	search := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer search.Close()

	cfg := testsupport.NewConfig(t,
		testsupport.WithGateway("127.0.0.1", port),
		testsupport.WithQuoteSearchURL(search.URL),
	)

	results := preflight.RunAll(context.Background(), cfg)
	if len(results) == 0 {
		t.Fatal("expected checks to run")
	}
	if !preflight.AllPassed(results) {
		t.Fatalf("expected all checks to pass: %+v", results)
	}

	if got := preflight.RunAll(context.Background(), nil); got != nil {
		t.Fatalf("nil config must produce no checks, got %+v", got)
	}
}

func TestCheckDirectoryAccess(t *testing.T) {
	dir := t.TempDir()
	result := preflight.CheckDirectoryAccess("Data directory", dir)
	if !result.Passed {
		t.Fatalf("writable directory should pass: %+v", result)
	}

	missing := preflight.CheckDirectoryAccess("Data directory", filepath.Join(dir, "nope"))
	if missing.Passed {
		t.Fatalf("missing directory should fail: %+v", missing)
	}

	file := filepath.Join(dir, "file")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	notDir := preflight.CheckDirectoryAccess("Data directory", file)
	if notDir.Passed {
		t.Fatalf("regular file should fail: %+v", notDir)
	}
}

func TestCheckPort(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer listener.Close()

	port := listener.Addr().(*net.TCPAddr).Port
	if result := preflight.CheckPort("127.0.0.1", port); !result.Passed {
		t.Fatalf("open port should pass: %+v", result)
	}

	if err := listener.Close(); err != nil {
		t.Fatal(err)
	}
	if result := preflight.CheckPort("127.0.0.1", port); result.Passed {
		t.Fatalf("closed port should fail: %+v", result)
	}
}

func TestCheckGatewayPortsFindsAnyOpenPort(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer listener.Close()
	open := listener.Addr().(*net.TCPAddr).Port

	closedListener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	closed := closedListener.Addr().(*net.TCPAddr).Port
	if err := closedListener.Close(); err != nil {
		t.Fatal(err)
	}

	result := preflight.CheckGatewayPorts("127.0.0.1", []int{closed, open})
	if !result.Passed {
		t.Fatalf("expected pass with one open candidate: %+v", result)
	}

	result = preflight.CheckGatewayPorts("127.0.0.1", []int{closed})
	if result.Passed {
		t.Fatalf("expected failure with no open candidates: %+v", result)
	}

	result = preflight.CheckGatewayPorts("127.0.0.1", nil)
	if result.Passed || result.Detail != "no candidate ports configured" {
		t.Fatalf("expected configuration failure: %+v", result)
	}
}

func TestCheckQuoteSearch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	result := preflight.CheckQuoteSearch(context.Background(), server.URL)
	if !result.Passed {
		t.Fatalf("any HTTP response should pass: %+v", result)
	}

	if result := preflight.CheckQuoteSearch(context.Background(), "  "); result.Passed {
		t.Fatalf("blank url should fail: %+v", result)
	}
}

func TestAllPassed(t *testing.T) {
	passing := []preflight.Result{{Passed: true}, {Passed: true}}
	if !preflight.AllPassed(passing) {
		t.Fatal("expected AllPassed true")
	}
	if preflight.AllPassed(append(passing, preflight.Result{Passed: false})) {
		t.Fatal("expected AllPassed false with a failing check")
	}
}
