package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/0xcro3dile/navrank-go/internal/adapters/store"
	"github.com/0xcro3dile/navrank-go/internal/domain/entities"
	"github.com/0xcro3dile/navrank-go/internal/domain/usecases"
)

var snapshotDate = time.Date(2025, 10, 27, 0, 0, 0, 0, time.UTC)

func universe() []entities.FundRecord {
	return []entities.FundRecord{
		{Name: "ABC Equity Fund", NAV: 100, Category: entities.CategoryEquity,
			Signals: &entities.Signals{ThreeYear: 50, OneYear: 20, Volatility: 2}},
		{Name: "ABC Liquid Fund", NAV: 1000, Category: entities.CategoryDebt,
			Signals: &entities.Signals{ThreeYear: 10, OneYear: 5, Volatility: 1}},
		{Name: "XYZ Balanced Advantage", NAV: 50, Category: entities.CategoryHybrid,
			Signals: &entities.Signals{ThreeYear: 20, OneYear: 8, Volatility: 3}},
	}
}

func newTestServer(t *testing.T, loaded bool) (*Server, *store.RecommendationCache) {
	t.Helper()
	funds := store.NewInMemoryStore()
	if loaded {
		funds.Replace(context.Background(), snapshotDate, universe())
	}
	cache := store.NewRecommendationCache(time.Minute)
	return NewServer(usecases.NewRecommendUseCase(0), funds, cache, ":0"), cache
}

func decode(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	return body
}

func TestRecommend(t *testing.T) {
	srv, cache := newTestServer(t, true)

	req := httptest.NewRequest(http.MethodPost, "/api/recommend",
		strings.NewReader(`{"fund_type":"any","risk":"high","goal":"growth"}`))
	rr := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	body := decode(t, rr)

	if body["date"] != "2025-10-27" {
		t.Errorf("unexpected date: %v", body["date"])
	}
	if body["title"] != "Top 2 Recommended Any Funds for High Risk and Growth Goal" {
		t.Errorf("unexpected title: %v", body["title"])
	}
	result := body["result"].(map[string]any)
	if result["outcome"] != "matched" {
		t.Errorf("unexpected outcome: %v", result["outcome"])
	}
	funds := result["funds"].([]any)
	if len(funds) != 2 || funds[0].(map[string]any)["name"] != "ABC Equity Fund" {
		t.Errorf("unexpected funds: %v", funds)
	}
	if cache.Len() != 1 {
		t.Errorf("expected recommendation to be cached, cache has %d", cache.Len())
	}
}

func TestRecommend_CachedResultKeepsCallerProfile(t *testing.T) {
	srv, cache := newTestServer(t, true)

	post := func(body string) map[string]any {
		rr := httptest.NewRecorder()
		srv.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/recommend", strings.NewReader(body)))
		if rr.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
		}
		return decode(t, rr)["result"].(map[string]any)
	}

	first := post(`{"fund_type":"any","risk":"high","goal":"growth","age_income":"<25 Low"}`)
	second := post(`{"fund_type":"any","risk":"high","goal":"growth","age_income":">40 High","horizon":"long"}`)

	if cache.Len() != 1 {
		t.Fatalf("expected one shared cache entry, got %d", cache.Len())
	}
	if got := first["profile"].(map[string]any)["age_income"]; got != "<25 Low" {
		t.Errorf("unexpected first profile: %v", got)
	}
	profile := second["profile"].(map[string]any)
	if profile["age_income"] != ">40 High" || profile["horizon"] != "Long" {
		t.Errorf("second caller got someone else's profile: %v", profile)
	}
	if len(second["funds"].([]any)) != len(first["funds"].([]any)) {
		t.Errorf("cached ranking differs: %v vs %v", first["funds"], second["funds"])
	}
}

func TestRecommend_NoMatch(t *testing.T) {
	srv, _ := newTestServer(t, true)

	req := httptest.NewRequest(http.MethodPost, "/api/recommend",
		strings.NewReader(`{"FundType":"Debt","Risk":"High","Goal":"Growth"}`))
	rr := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rr, req)

	body := decode(t, rr)
	if body["message"] != entities.OutcomeNoMatch.Message() {
		t.Errorf("unexpected message: %v", body["message"])
	}
	result := body["result"].(map[string]any)
	if result["outcome"] != "no_match" || len(result["funds"].([]any)) != 0 {
		t.Errorf("unexpected result: %v", result)
	}
}

func TestRecommend_NoUniverse(t *testing.T) {
	srv, cache := newTestServer(t, false)

	req := httptest.NewRequest(http.MethodPost, "/api/recommend",
		strings.NewReader(`{"risk":"low","goal":"income"}`))
	rr := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rr, req)

	body := decode(t, rr)
	if _, ok := body["date"]; ok {
		t.Error("no date expected without a universe")
	}
	if body["result"].(map[string]any)["outcome"] != "ingest_empty" {
		t.Errorf("unexpected result: %v", body["result"])
	}
	if cache.Len() != 0 {
		t.Error("empty-universe results should not be cached")
	}
}

func TestRecommend_BadRequest(t *testing.T) {
	srv, _ := newTestServer(t, true)

	rr := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/recommend", strings.NewReader("risk=high")))
	if rr.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rr.Code)
	}

	rr = httptest.NewRecorder()
	srv.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/recommend", nil))
	if rr.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected 405, got %d", rr.Code)
	}
}

func TestFunds(t *testing.T) {
	srv, _ := newTestServer(t, true)

	tests := []struct {
		query string
		code  int
		count float64
	}{
		{"", http.StatusOK, 3},
		{"?category=debt", http.StatusOK, 1},
		{"?category=Other", http.StatusOK, 0},
		{"?category=gold", http.StatusBadRequest, 0},
	}

	for _, tt := range tests {
		rr := httptest.NewRecorder()
		srv.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/funds"+tt.query, nil))
		if rr.Code != tt.code {
			t.Errorf("%q: expected %d, got %d", tt.query, tt.code, rr.Code)
			continue
		}
		if tt.code == http.StatusOK {
			if got := decode(t, rr)["count"]; got != tt.count {
				t.Errorf("%q: expected %v funds, got %v", tt.query, tt.count, got)
			}
		}
	}
}

func TestFunds_NoUniverse(t *testing.T) {
	srv, _ := newTestServer(t, false)

	rr := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/funds", nil))
	if rr.Code != http.StatusServiceUnavailable {
		t.Errorf("expected 503, got %d", rr.Code)
	}
}

type failingStore struct{}

func (failingStore) Replace(ctx context.Context, date time.Time, funds []entities.FundRecord) error {
	return nil
}

func (failingStore) Current(ctx context.Context) (time.Time, []entities.FundRecord, error) {
	return time.Time{}, nil, errors.New("disk on fire")
}

func (failingStore) ByCategory(ctx context.Context, c entities.Category) (time.Time, []entities.FundRecord, error) {
	return time.Time{}, nil, errors.New("disk on fire")
}

func TestRecommend_StoreError(t *testing.T) {
	srv := NewServer(usecases.NewRecommendUseCase(0), failingStore{}, nil, ":0")

	rr := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/recommend", strings.NewReader(`{}`)))
	if rr.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", rr.Code)
	}
}

func TestHealth(t *testing.T) {
	srv, _ := newTestServer(t, true)

	rr := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	body := decode(t, rr)
	if body["status"] != "ok" || body["snapshot"] != "2025-10-27" || body["funds"] != float64(3) {
		t.Errorf("unexpected health: %v", body)
	}
}

func TestCORSPreflight(t *testing.T) {
	srv, _ := newTestServer(t, true)

	rr := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodOptions, "/api/recommend", nil))
	if rr.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Error("missing CORS header")
	}
	if rr.Body.Len() != 0 {
		t.Error("preflight should have no body")
	}
}
