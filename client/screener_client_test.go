package client

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/andybalholm/brotli"
)

func TestRun_KeepsRawQueryOrder(t *testing.T) {
	var gotPath, gotQuery, gotAccept string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		gotAccept = r.Header.Get("Accept")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := NewScreenerClient(srv.URL+"/", time.Second)
	query := "priceLowerThan=15&marketCapLowerThan=5&exchange=NASDAQ"

	resp, err := c.Run(context.Background(), query)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if resp.StatusCode() != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode())
	}
	if gotPath != "/run" {
		t.Errorf("path = %q, want /run", gotPath)
	}
	if gotQuery != query {
		t.Errorf("query = %q, want %q", gotQuery, query)
	}
	if gotAccept != "application/json" {
		t.Errorf("Accept = %q", gotAccept)
	}
}

func TestRun_EmptyQuery(t *testing.T) {
	var gotURI string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotURI = r.RequestURI
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	if _, err := NewScreenerClient(srv.URL, 0).Run(context.Background(), ""); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if gotURI != "/run" {
		t.Errorf("request URI = %q, want /run", gotURI)
	}
}

func TestRun_DecodesBrotli(t *testing.T) {
	payload := []byte(`[{"symbol":"XYZ","score":0.92}]`)
	var buf bytes.Buffer
	bw := brotli.NewWriter(&buf)
	_, _ = bw.Write(payload)
	_ = bw.Close()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Encoding", "br")
		_, _ = w.Write(buf.Bytes())
	}))
	defer srv.Close()

	resp, err := NewScreenerClient(srv.URL, time.Second).Run(context.Background(), "exchange=NYSE")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !bytes.Equal(resp.Body(), payload) {
		t.Errorf("body = %q, want %q", resp.Body(), payload)
	}
	if enc := resp.Header().Get("Content-Encoding"); enc != "" {
		t.Errorf("Content-Encoding still set: %q", enc)
	}
}

func TestRun_ContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := NewScreenerClient(srv.URL, time.Second).Run(ctx, "exchange=NYSE"); err == nil {
		t.Error("expected error for cancelled context")
	}
}
