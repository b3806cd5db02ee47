package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestFetchRawSendsAPIKey(t *testing.T) {
	var gotKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("api-key")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"client":"a"}]`))
	}))
	defer srv.Close()

	c := NewClient(Config{URL: srv.URL, Key: "secret"})
	records, err := c.FetchRaw(context.Background())
	if err != nil {
		t.Fatalf("FetchRaw() error: %v", err)
	}
	if gotKey != "secret" {
		t.Errorf("api-key header = %q, want secret", gotKey)
	}
	if len(records) != 1 {
		t.Errorf("got %d records, want 1", len(records))
	}
}

func TestFetchRawStatusErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
	}{
		{"Unauthorized", http.StatusUnauthorized},
		{"Forbidden", http.StatusForbidden},
		{"TooManyRequests", http.StatusTooManyRequests},
		{"ServerError", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer srv.Close()

			_, err := NewClient(Config{URL: srv.URL}).FetchRaw(context.Background())
			var fetchErr *FetchError
			if !errors.As(err, &fetchErr) {
				t.Fatalf("err = %v, want *FetchError", err)
			}
			if fetchErr.Status != tt.status {
				t.Errorf("Status = %d, want %d", fetchErr.Status, tt.status)
			}
		})
	}
}

func TestFetchRawTransportError(t *testing.T) {
	// Closed server: the request never gets a response.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	_, err := NewClient(Config{URL: srv.URL}).FetchRaw(context.Background())
	var fetchErr *FetchError
	if !errors.As(err, &fetchErr) {
		t.Fatalf("err = %v, want *FetchError", err)
	}
	if fetchErr.Status != 0 {
		t.Errorf("Status = %d, want 0 for a transport failure", fetchErr.Status)
	}
}

func TestFetchRawDecodeErrorPropagates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"results":[]}`))
	}))
	defer srv.Close()

	_, err := NewClient(Config{URL: srv.URL}).FetchRaw(context.Background())
	var decodeErr *DecodeError
	if !errors.As(err, &decodeErr) {
		t.Fatalf("err = %v, want *DecodeError", err)
	}
}

func TestFetchRawCSVResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/csv")
		_, _ = w.Write([]byte("client,carrier\na,dhl\n"))
	}))
	defer srv.Close()

	records, err := NewClient(Config{URL: srv.URL}).FetchRaw(context.Background())
	if err != nil {
		t.Fatalf("FetchRaw() error: %v", err)
	}
	if len(records) != 1 || records[0]["carrier"] != "dhl" {
		t.Errorf("records = %v, want one dhl row", records)
	}
}
