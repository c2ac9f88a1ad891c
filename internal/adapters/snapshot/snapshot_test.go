package snapshot

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/0xcro3dile/navrank-go/internal/domain/entities"
)

const body = "Scheme Code;Scheme Name;Net Asset Value;Date\n1;ABC Equity Fund;100.5;27-Oct-2025\n"

func TestDateFromBody(t *testing.T) {
	now := time.Date(2025, 11, 3, 15, 0, 0, 0, time.UTC)

	got := DateFromBody(body, now)
	if want := time.Date(2025, 10, 27, 0, 0, 0, 0, time.UTC); !got.Equal(want) {
		t.Errorf("expected %v, got %v", want, got)
	}

	fallback := DateFromBody("no date here", now)
	if want := time.Date(2025, 11, 2, 0, 0, 0, 0, time.UTC); !fallback.Equal(want) {
		t.Errorf("expected yesterday %v, got %v", want, fallback)
	}
}

func TestDateFromBody_SkipsInvalidTokens(t *testing.T) {
	got := DateFromBody("99-Foo-2025 then 01-Nov-2025", time.Now())
	if got.Month() != time.November || got.Day() != 1 {
		t.Errorf("expected 01-Nov-2025, got %v", got)
	}
}

func TestFileName_RoundTrip(t *testing.T) {
	date := time.Date(2025, 10, 27, 0, 0, 0, 0, time.UTC)
	name := FileName(date)

	if name != "AMFI_NAV_2025-10-27.csv" {
		t.Errorf("unexpected name: %s", name)
	}
	got, ok := DateFromFileName(filepath.Join("data", name))
	if !ok || !got.Equal(date) {
		t.Errorf("round trip failed: %v %v", got, ok)
	}
	if IsSnapshotFile("recommended_funds.csv") {
		t.Error("recommendation output is not a snapshot")
	}
}

func TestFileStore_SaveAndLoad(t *testing.T) {
	dir, _ := os.MkdirTemp("", "snapshot-test-*")
	defer os.RemoveAll(dir)

	store := NewFileStore(filepath.Join(dir, "data"))
	date := time.Date(2025, 10, 27, 0, 0, 0, 0, time.UTC)

	path, err := store.Save(context.Background(), &entities.Snapshot{Date: date, Raw: body})
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if filepath.Base(path) != "AMFI_NAV_2025-10-27.csv" {
		t.Errorf("unexpected path: %s", path)
	}

	snap, err := store.Load(context.Background(), path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if snap.Raw != body || !snap.Date.Equal(date) || snap.Path != path {
		t.Errorf("unexpected snapshot: %+v", snap)
	}
}

func TestFileStore_SaveReplacesWholeFile(t *testing.T) {
	dir, _ := os.MkdirTemp("", "snapshot-test-*")
	defer os.RemoveAll(dir)

	store := NewFileStore(dir)
	date := time.Date(2025, 10, 27, 0, 0, 0, 0, time.UTC)

	if _, err := store.Save(context.Background(), &entities.Snapshot{Date: date, Raw: body + body}); err != nil {
		t.Fatalf("first save failed: %v", err)
	}
	path, err := store.Save(context.Background(), &entities.Snapshot{Date: date, Raw: body})
	if err != nil {
		t.Fatalf("second save failed: %v", err)
	}

	content, _ := os.ReadFile(path)
	if string(content) != body {
		t.Errorf("unexpected content: %q", content)
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		var names []string
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Errorf("expected only the snapshot file, got %v", names)
	}
	for _, e := range entries {
		if !IsSnapshotFile(e.Name()) {
			t.Errorf("temp file left behind: %s", e.Name())
		}
	}
}

func TestFileStore_LoadArbitraryFile(t *testing.T) {
	dir, _ := os.MkdirTemp("", "snapshot-test-*")
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "NAVAll.txt")
	os.WriteFile(path, []byte(body), 0644)

	snap, err := NewFileStore(dir).Load(context.Background(), path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if snap.Date.Day() != 27 || snap.Date.Month() != time.October {
		t.Errorf("expected date from body, got %v", snap.Date)
	}
}

func TestFileStore_Latest(t *testing.T) {
	dir, _ := os.MkdirTemp("", "snapshot-test-*")
	defer os.RemoveAll(dir)

	os.WriteFile(filepath.Join(dir, "AMFI_NAV_2025-10-27.csv"), []byte("old"), 0644)
	os.WriteFile(filepath.Join(dir, "AMFI_NAV_2025-10-29.csv"), []byte("new"), 0644)
	os.WriteFile(filepath.Join(dir, "AMFI_NAV_2025-10-28.csv"), []byte("mid"), 0644)
	os.WriteFile(filepath.Join(dir, "recommended_funds.csv"), []byte("x"), 0644)

	snap, err := NewFileStore(dir).Latest(context.Background())
	if err != nil {
		t.Fatalf("latest failed: %v", err)
	}
	if snap.Raw != "new" {
		t.Errorf("expected newest snapshot, got %q", snap.Raw)
	}
}

func TestFileStore_LatestEmpty(t *testing.T) {
	dir, _ := os.MkdirTemp("", "snapshot-test-*")
	defer os.RemoveAll(dir)

	if _, err := NewFileStore(dir).Latest(context.Background()); !errors.Is(err, ErrNoSnapshot) {
		t.Errorf("expected ErrNoSnapshot, got %v", err)
	}
	if _, err := NewFileStore(filepath.Join(dir, "missing")).Latest(context.Background()); !errors.Is(err, ErrNoSnapshot) {
		t.Errorf("expected ErrNoSnapshot for missing dir, got %v", err)
	}
}

func TestFileStore_NonexistentFile(t *testing.T) {
	_, err := NewFileStore("").Load(context.Background(), "/nonexistent/AMFI_NAV_2025-01-01.csv")
	if err == nil {
		t.Error("should error on nonexistent file")
	}
}
