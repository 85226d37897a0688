package marketdata

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	drepo "EdgeScan/internal/domain/repository"
)

func candleServer(t *testing.T, resp candleResponse) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/stock/candle" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("symbol") == "" || q.Get("resolution") != "D" || q.Get("token") != "test-key" {
			t.Errorf("unexpected query %v", q)
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}))
}

func TestFetch(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	resp := candleResponse{Status: "ok"}
	for i := 0; i < 5; i++ {
		resp.T = append(resp.T, base.AddDate(0, 0, i).Unix())
		resp.O = append(resp.O, 100)
		resp.H = append(resp.H, 101)
		resp.L = append(resp.L, 99)
		resp.C = append(resp.C, 100+float64(i))
		resp.V = append(resp.V, 1000)
	}
	srv := candleServer(t, resp)
	defer srv.Close()

	c := New("test-key", srv.URL, 5*time.Second, 100, 10)
	series, err := c.Fetch(context.Background(), "AAPL", drepo.Period1Y)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if series.Symbol() != "AAPL" || series.Len() != 5 {
		t.Fatalf("unexpected series %s/%d", series.Symbol(), series.Len())
	}
	if series.Close(4) != 104 {
		t.Fatalf("unexpected close %v", series.Close(4))
	}
}

func TestFetchProviderError(t *testing.T) {
	srv := candleServer(t, candleResponse{Status: "no_data"})
	defer srv.Close()

	c := New("test-key", srv.URL, 5*time.Second, 100, 10)
	if _, err := c.Fetch(context.Background(), "AAPL", drepo.Period1Y); err == nil {
		t.Fatalf("expected error for provider status")
	}
}

func TestFetchRaggedArrays(t *testing.T) {
	srv := candleServer(t, candleResponse{
		Status: "ok",
		T:      []int64{1700000000, 1700086400},
		O:      []float64{100, 100},
		H:      []float64{101, 101},
		L:      []float64{99, 99},
		C:      []float64{100}, // one close missing
		V:      []float64{1000, 1000},
	})
	defer srv.Close()

	c := New("test-key", srv.URL, 5*time.Second, 100, 10)
	if _, err := c.Fetch(context.Background(), "AAPL", drepo.Period1Y); err == nil {
		t.Fatalf("expected error for ragged arrays")
	}
}

func TestFetchEmptyTicker(t *testing.T) {
	c := New("test-key", "http://localhost:1", time.Second, 100, 10)
	if _, err := c.Fetch(context.Background(), "", drepo.Period1Y); err == nil {
		t.Fatalf("expected error for empty ticker")
	}
}
