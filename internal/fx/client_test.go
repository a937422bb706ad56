package fx

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestFetchRates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/latest" {
			t.Errorf("path = %q, want /latest", r.URL.Path)
		}
		if got := r.URL.Query().Get("base"); got != "USD" {
			t.Errorf("base = %q, want USD", got)
		}
		_, _ = w.Write([]byte(`{"base":"USD","date":"2026-10-17","rates":{"EUR":0.92,"GBP":0.79,"USD":1}}`))
	}))
	defer srv.Close()

	rates, err := NewClient(srv.URL, time.Second).FetchRates(context.Background(), "usd")
	if err != nil {
		t.Fatalf("FetchRates: %v", err)
	}
	if rates["EUR"] != 0.92 || rates["GBP"] != 0.79 {
		t.Fatalf("rates = %v", rates)
	}
}

func TestFetchRates_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{"missing rates", http.StatusOK, `{"base":"USD"}`, ErrNoRates},
		{"unsuccessful", http.StatusOK, `{"success":false,"rates":{"EUR":1}}`, ErrNoRates},
		{"rate limited", http.StatusTooManyRequests, ``, ErrRateLimited},
		{"server error", http.StatusBadGateway, ``, nil},
		{"bad json", http.StatusOK, `{"rates":`, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := NewClient(srv.URL, time.Second).FetchRates(context.Background(), "USD")
			if err == nil {
				t.Fatal("FetchRates returned nil error")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestNewClient_Defaults(t *testing.T) {
	c := NewClient("  ", 0)
	if c.baseURL != DefaultBaseURL {
		t.Fatalf("baseURL = %q, want %q", c.baseURL, DefaultBaseURL)
	}
	if c.http.Timeout != requestTimeout {
		t.Fatalf("timeout = %s, want %s", c.http.Timeout, requestTimeout)
	}
}
