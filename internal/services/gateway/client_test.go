package gateway_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"tickerforge/internal/ident"
	"tickerforge/internal/services"
	"tickerforge/internal/services/gateway"
)

func newBridge(t *testing.T, connected bool, qualify http.HandlerFunc) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/status", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if connected {
			_, _ = w.Write([]byte(`{"connected":true,"account":"DU000001"}`))
			return
		}
		_, _ = w.Write([]byte(`{"connected":false}`))
	})
	if qualify != nil {
		mux.HandleFunc("/v1/contracts/qualify", qualify)
	}
	mux.HandleFunc("/v1/disconnect", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func TestConnectEstablishesSession(t *testing.T) {
	server := newBridge(t, true, nil)

	client, err := gateway.New(server.URL, 17)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if err := client.Connect(context.Background()); err != nil {
		t.Fatalf("Connect returned error: %v", err)
	}
	if !client.Connected() {
		t.Fatal("client should report connected")
	}
}

func TestConnectFailsWithoutBrokerSession(t *testing.T) {
	server := newBridge(t, false, nil)

	client, err := gateway.New(server.URL, 17)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	err = client.Connect(context.Background())
	if err == nil {
		t.Fatal("expected connect failure when bridge has no broker session")
	}
	if !errors.Is(err, services.ErrConnection) {
		t.Fatalf("expected connection error, got %v", err)
	}
	if !services.IsFatal(err) {
		t.Fatal("connection failure must be fatal")
	}
}

func TestQualifyContractsRoundTrip(t *testing.T) {
	server := newBridge(t, true, func(w http.ResponseWriter, r *http.Request) {
		var payload struct {
			ClientID  int `json:"client_id"`
			Contracts []struct {
				Symbol   string `json:"symbol"`
				SecType  string `json:"sec_type"`
				Exchange string `json:"exchange"`
				Currency string `json:"currency"`
			} `json:"contracts"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Errorf("decode qualify request: %v", err)
		}
		if payload.ClientID != 17 {
			t.Errorf("client_id = %d, want 17", payload.ClientID)
		}
		if len(payload.Contracts) != 2 || payload.Contracts[0].Symbol != "AAPL" {
			t.Errorf("unexpected contracts payload: %+v", payload.Contracts)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"contracts":[{"symbol":"AAPL","exchange":"SMART","primary_exchange":"NASDAQ","currency":"USD","sec_type":"STK","contract_id":"265598"}]}`))
	})

	client, err := gateway.New(server.URL, 17)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if err := client.Connect(context.Background()); err != nil {
		t.Fatalf("Connect returned error: %v", err)
	}

	sctx := ident.SecurityContext{SecurityType: "STK", Exchange: "SMART", Currency: "USD"}
	requests := ident.BuildRequests([]string{"AAPL", "MSFT"}, sctx)
	candidates, err := client.QualifyContracts(context.Background(), requests)
	if err != nil {
		t.Fatalf("QualifyContracts returned error: %v", err)
	}
	if len(candidates) != 1 {
		t.Fatalf("expected 1 candidate, got %d", len(candidates))
	}
	got := candidates[0]
	if got.Symbol != "AAPL" || got.ExternalID != "265598" || got.PrimaryExchange != "NASDAQ" {
		t.Fatalf("unexpected candidate: %+v", got)
	}
}

func TestQualifyContractsRequiresSession(t *testing.T) {
	server := newBridge(t, true, nil)

	client, err := gateway.New(server.URL, 17)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	_, err = client.QualifyContracts(context.Background(), ident.BuildRequests([]string{"AAPL"}, ident.SecurityContext{}))
	if !errors.Is(err, services.ErrConnection) {
		t.Fatalf("expected connection error before Connect, got %v", err)
	}
}

func TestDisconnectClearsSession(t *testing.T) {
	server := newBridge(t, true, nil)

	client, err := gateway.New(server.URL, 17)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if err := client.Connect(context.Background()); err != nil {
		t.Fatalf("Connect returned error: %v", err)
	}

	client.Disconnect(context.Background())
	if client.Connected() {
		t.Fatal("client should report disconnected")
	}
}

func TestNewValidatesArguments(t *testing.T) {
	if _, err := gateway.New("", 1); !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration error for empty url, got %v", err)
	}
	if _, err := gateway.New("http://localhost:7497", 0); !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration error for zero client id, got %v", err)
	}
}
