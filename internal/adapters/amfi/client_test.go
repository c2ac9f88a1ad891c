package amfi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func navBody() string {
	var sb strings.Builder
	sb.WriteString("Scheme Code;ISIN Div Payout/ ISIN Growth;ISIN Div Reinvestment;Scheme Name;Net Asset Value;Date\n\n")
	for i := 0; i < 30; i++ {
		sb.WriteString("119551;INF209KA12Z1;INF209KA13Z9;Aditya Birla Sun Life Banking & PSU Debt Fund;104.5274;27-Oct-2025\n")
	}
	return sb.String()
}

func TestClient_Fetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/spages/NAVAll.txt" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		w.Write([]byte("\n" + navBody() + "\n\n"))
	}))
	defer server.Close()

	client := NewClient(server.URL+"/spages/NAVAll.txt", time.Second)
	snap, err := client.Fetch(context.Background())
	if err != nil {
		t.Fatalf("fetch failed: %v", err)
	}

	if snap.Date.Format("2006-01-02") != "2025-10-27" {
		t.Errorf("unexpected date: %v", snap.Date)
	}
	if strings.HasPrefix(snap.Raw, "\n") || strings.HasSuffix(snap.Raw, "\n") {
		t.Error("body should be trimmed")
	}
}

func TestClient_FetchTooShort(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("Scheme Name;Net Asset Value\n"))
	}))
	defer server.Close()

	_, err := NewClient(server.URL, time.Second).Fetch(context.Background())
	if !errors.Is(err, ErrSnapshotTooShort) {
		t.Errorf("expected ErrSnapshotTooShort, got %v", err)
	}
}

func TestClient_FetchBadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	_, err := NewClient(server.URL, time.Second).Fetch(context.Background())
	if err == nil || !strings.Contains(err.Error(), "503") {
		t.Errorf("expected status error, got %v", err)
	}
}

func TestClient_FetchNoDateFallsBackToYesterday(t *testing.T) {
	body := strings.ReplaceAll(navBody(), "27-Oct-2025", "")
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(body))
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second)
	client.now = func() time.Time { return time.Date(2025, 11, 3, 18, 0, 0, 0, time.UTC) }

	snap, err := client.Fetch(context.Background())
	if err != nil {
		t.Fatalf("fetch failed: %v", err)
	}
	if snap.Date.Format("2006-01-02") != "2025-11-02" {
		t.Errorf("expected yesterday, got %v", snap.Date)
	}
}

func TestNewClient_Defaults(t *testing.T) {
	c := NewClient("", 0)
	if c.url != DefaultURL {
		t.Errorf("unexpected default url: %s", c.url)
	}
}
