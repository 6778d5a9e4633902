package services_test

import (
	"errors"
	"strings"
	"testing"

	"tickerforge/internal/services"
)

func TestWrapPreservesMarker(t *testing.T) {
	base := errors.New("dial tcp: refused")
	err := services.Wrap(services.ErrConnection, "gateway", "connect", "status check", base)
	if !errors.Is(err, services.ErrConnection) {
		t.Fatalf("expected ErrConnection marker, got %v", err)
	}
	if !errors.Is(err, base) {
		t.Fatalf("expected wrapped base error, got %v", err)
	}
	if !strings.Contains(err.Error(), "gateway: connect: status check") {
		t.Fatalf("missing detail: %v", err)
	}
}

func TestWrapDefaultsToTransient(t *testing.T) {
	err := services.Wrap(nil, "quotesearch", "search", "", nil)
	if !errors.Is(err, services.ErrTransient) {
		t.Fatalf("expected transient marker, got %v", err)
	}
}

func TestIsFatal(t *testing.T) {
	if !services.IsFatal(services.Wrap(services.ErrConnection, "gateway", "connect", "", nil)) {
		t.Fatal("connection errors are fatal")
	}
	if services.IsFatal(services.Wrap(services.ErrTransient, "quotesearch", "search", "", nil)) {
		t.Fatal("transient errors are not fatal")
	}
}
