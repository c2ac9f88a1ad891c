// Package amfi fetches the daily NAV file published by AMFI.
// Client implements ports.NAVSource.
package amfi

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog/log"

	"github.com/0xcro3dile/navrank-go/internal/adapters/snapshot"
	"github.com/0xcro3dile/navrank-go/internal/domain/entities"
)

// DefaultURL is the public NAV file for all schemes.
const DefaultURL = "https://www.amfiindia.com/spages/NAVAll.txt"

// MinBodyLength is the shortest body accepted as a real NAV file.
const MinBodyLength = 1000

// ErrSnapshotTooShort means the endpoint answered but returned no usable data yet.
var ErrSnapshotTooShort = errors.New("amfi: NAV data seems empty, try again later")

// Client downloads the NAV file.
type Client struct {
	client *resty.Client
	url    string
	now    func() time.Time
}

// NewClient creates a client for url with the given request timeout.
func NewClient(url string, timeout time.Duration) *Client {
	if url == "" {
		url = DefaultURL
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	client := resty.New().
		SetTimeout(timeout).
		SetHeaders(map[string]string{
			"Accept":     "text/plain",
			"User-Agent": "navrank/1.0",
		})

	return &Client{
		client: client,
		url:    url,
		now:    time.Now,
	}
}

// Fetch downloads the NAV file and dates it from the first DD-Mon-YYYY token.
func (c *Client) Fetch(ctx context.Context) (*entities.Snapshot, error) {
	log.Info().Str("url", c.url).Msg("fetching latest AMFI NAV data")

	resp, err := c.client.R().SetContext(ctx).Get(c.url)
	if err != nil {
		return nil, fmt.Errorf("fetching NAV file: %w", err)
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("fetching NAV file: unexpected status %d", resp.StatusCode())
	}

	text := strings.TrimSpace(resp.String())
	if len(text) < MinBodyLength {
		return nil, ErrSnapshotTooShort
	}

	return &entities.Snapshot{
		Date: snapshot.DateFromBody(text, c.now()),
		Raw:  text,
	}, nil
}
