package krx

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"KIndex/internal/service/cache"
	"KIndex/internal/service/fetch"
)

func testFetcher() *fetch.Fetcher {
	return fetch.New(
		fetch.WithProfiles([]fetch.Profile{{Name: "test", Headers: map[string]string{"Accept": "application/json"}}}),
		fetch.WithTimeouts([]time.Duration{time.Second}),
		fetch.WithFallback(fetch.NewCurlFallback("false", time.Second)),
	)
}

func TestResolveContractEndToEnd(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("authKey") != "secret" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		if r.URL.Query().Get("basDd") != "20260305" {
			w.Write([]byte(`{"OutBlock_1":[]}`))
			return
		}
		w.Write([]byte(`{"OutBlock_1":[
			{"ISU_NM":"KOSPI200 F 202603 (REGULAR)","PROD_NM":"KOSPI200","MKT_NM":"REGULAR","TRD_DD":"20260305","SETL_PRC":"347.25","CMP_PRVDD_PRC":"1.35"},
			{"ISU_NM":"KOSPI200 F 202609 (REGULAR)","PROD_NM":"KOSPI200","MKT_NM":"REGULAR","TRD_DD":"20260305","SETL_PRC":"349.00","CMP_PRVDD_PRC":"1.10"}
		]}`))
	}))
	defer srv.Close()

	c := NewClient(testFetcher(), cache.NewTTLCache(), srv.URL, "secret", NewResolver(testConfig()), time.Minute, nil, nil)

	got, err := c.ResolveContract(context.Background(), "20260305")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if got == nil || got.ContractMonth != "202603" {
		t.Fatalf("expected front month, got %+v", got)
	}
	if got.SettlementPrice == nil || *got.SettlementPrice != 347.25 {
		t.Fatalf("unexpected settlement %v", got.SettlementPrice)
	}
	if got.PriceDelta == nil || *got.PriceDelta != 1.35 {
		t.Fatalf("unexpected delta %v", got.PriceDelta)
	}
}

func TestResolveContractEmptyDateIsAbsent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"OutBlock_1":[]}`))
	}))
	defer srv.Close()

	c := NewClient(testFetcher(), cache.NewTTLCache(), srv.URL, "secret", NewResolver(testConfig()), time.Minute, nil, nil)

	got, err := c.ResolveContract(context.Background(), "20260301")
	if err != nil {
		t.Fatalf("empty rows must not error: %v", err)
	}
	if got != nil {
		t.Fatalf("expected absent row, got %+v", got)
	}
}

func TestResolveContractBadBasisDate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"OutBlock_1":[{"ISU_NM":"x"}]}`))
	}))
	defer srv.Close()

	c := NewClient(testFetcher(), cache.NewTTLCache(), srv.URL, "secret", NewResolver(testConfig()), time.Minute, nil, nil)

	if _, err := c.ResolveContract(context.Background(), "2026-03-05"); err == nil {
		t.Fatalf("expected error for malformed basis date")
	}
}
