// Package snapshot stores raw NAV files on disk.
// FileStore implements ports.SnapshotStore; each snapshot is saved as
// AMFI_NAV_<YYYY-MM-DD>.csv under a data directory.
package snapshot

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/0xcro3dile/navrank-go/internal/domain/entities"
)

const (
	filePrefix = "AMFI_NAV_"
	fileExt    = ".csv"
	fileDate   = "2006-01-02"

	// BodyDateLayout is the date format used inside AMFI NAV files.
	BodyDateLayout = "02-Jan-2006"
)

// ErrNoSnapshot is returned by Latest when the data directory holds no snapshot.
var ErrNoSnapshot = errors.New("no snapshot found")

var bodyDate = regexp.MustCompile(`\d{2}-[A-Za-z]{3}-\d{4}`)

// DateFromBody returns the first DD-Mon-YYYY date in raw, or the day before
// now when none is found.
func DateFromBody(raw string, now time.Time) time.Time {
	for _, tok := range bodyDate.FindAllString(raw, -1) {
		if d, err := time.Parse(BodyDateLayout, tok); err == nil {
			return d
		}
	}
	y, m, d := now.AddDate(0, 0, -1).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// FileName returns the snapshot file name for a date.
func FileName(date time.Time) string {
	return filePrefix + date.Format(fileDate) + fileExt
}

// DateFromFileName parses the date out of a snapshot file name.
func DateFromFileName(path string) (time.Time, bool) {
	base := filepath.Base(path)
	if !strings.HasPrefix(base, filePrefix) || !strings.HasSuffix(base, fileExt) {
		return time.Time{}, false
	}
	d, err := time.Parse(fileDate, strings.TrimSuffix(strings.TrimPrefix(base, filePrefix), fileExt))
	if err != nil {
		return time.Time{}, false
	}
	return d, true
}

// IsSnapshotFile reports whether path looks like a snapshot file.
func IsSnapshotFile(path string) bool {
	_, ok := DateFromFileName(path)
	return ok
}

// FileStore saves snapshots as files in a directory.
type FileStore struct {
	dir string
}

// NewFileStore creates a snapshot store rooted at dir.
func NewFileStore(dir string) *FileStore {
	if dir == "" {
		dir = "data"
	}
	return &FileStore{dir: dir}
}

// Save writes the snapshot body to <dir>/AMFI_NAV_<date>.csv.
func (s *FileStore) Save(ctx context.Context, snap *entities.Snapshot) (string, error) {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return "", fmt.Errorf("creating data directory: %w", err)
	}

	path := filepath.Join(s.dir, FileName(snap.Date))
	if err := writeAtomic(path, []byte(snap.Raw)); err != nil {
		return "", fmt.Errorf("writing snapshot: %w", err)
	}

	log.Info().Str("path", path).Str("date", snap.Date.Format(fileDate)).Msg("saved NAV snapshot")
	return path, nil
}

// writeAtomic writes data to a hidden temp file in the same directory and
// renames it over path, so watchers only ever see a complete file.
func writeAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Chmod(0644); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// Load reads a snapshot file. The date comes from the file name when it
// follows the naming scheme, otherwise from the body.
func (s *FileStore) Load(ctx context.Context, path string) (*entities.Snapshot, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	raw := string(content)
	date, ok := DateFromFileName(path)
	if !ok {
		info, statErr := os.Stat(path)
		now := time.Now()
		if statErr == nil {
			now = info.ModTime()
		}
		date = DateFromBody(raw, now)
	}

	return &entities.Snapshot{
		Date: date,
		Path: path,
		Raw:  raw,
	}, nil
}

// Latest loads the most recent snapshot in the data directory.
func (s *FileStore) Latest(ctx context.Context) (*entities.Snapshot, error) {
	entries, err := os.ReadDir(s.dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNoSnapshot
	}
	if err != nil {
		return nil, fmt.Errorf("listing data directory: %w", err)
	}

	var latest string
	var latestDate time.Time
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		d, ok := DateFromFileName(e.Name())
		if !ok {
			continue
		}
		if latest == "" || d.After(latestDate) {
			latest, latestDate = e.Name(), d
		}
	}

	if latest == "" {
		return nil, ErrNoSnapshot
	}
	return s.Load(ctx, filepath.Join(s.dir, latest))
}
