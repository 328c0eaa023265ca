package coingecko

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestFetchSeries(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/coins/bitcoin/market_chart" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("vs_currency") != "usd" || q.Get("days") != "1" || q.Get("interval") != "minute" {
			t.Errorf("unexpected query %v", q)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"prices":[[1700000000000,100.5],[1700000060000,101.25],[1700000120000,102.0]]}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "usd", 1, "minute", 5*time.Second)
	series, err := c.FetchSeries(context.Background(), "bitcoin")
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(series) != 3 {
		t.Fatalf("expected 3 points, got %d", len(series))
	}
	if series[0].Price != 100.5 || series[2].Price != 102.0 {
		t.Fatalf("unexpected prices: %+v", series)
	}
	latest, ok := series.Latest()
	if !ok || latest.Price != 102.0 {
		t.Fatalf("unexpected latest: %+v ok=%v", latest, ok)
	}
	for _, p := range series {
		if p.Label == "" || p.Time.IsZero() {
			t.Fatalf("point missing display label or time: %+v", p)
		}
	}
}

func TestFetchSeriesRateLimited(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"status":{"error_code":429}}`, http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := New(srv.URL, "usd", 1, "minute", 5*time.Second)
	if _, err := c.FetchSeries(context.Background(), "bitcoin"); err == nil {
		t.Fatal("expected error on 429")
	}
}

func TestFetchSeriesEmptyPrices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"prices":[]}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "usd", 1, "minute", 5*time.Second)
	if _, err := c.FetchSeries(context.Background(), "bitcoin"); err == nil {
		t.Fatal("expected error on empty prices")
	}
}

func TestFetchSeriesMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	c := New(srv.URL, "usd", 1, "minute", 5*time.Second)
	if _, err := c.FetchSeries(context.Background(), "bitcoin"); err == nil {
		t.Fatal("expected decode error")
	}
}
