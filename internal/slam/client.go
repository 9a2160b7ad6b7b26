// Package slam downloads Grand Slam point-by-point CSV files from the
// public tennis_slam_pointbypoint dataset.
package slam

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

// DefaultBaseURL is the raw-file root of the public dataset.
const DefaultBaseURL = "https://raw.githubusercontent.com/JeffSackmann/tennis_slam_pointbypoint/master"

// Client fetches tournament files over HTTP.
type Client struct {
	BaseURL string
	Retries int
	http    *http.Client
}

// NewClient returns a client with the given request timeout.
func NewClient(timeout time.Duration) *Client {
	return &Client{
		BaseURL: DefaultBaseURL,
		Retries: 1,
		http:    &http.Client{Timeout: timeout},
	}
}

// Files holds the local paths of one tournament's downloaded CSVs.
type Files struct {
	Points  string
	Matches string
}

// DownloadTournament fetches the points and matches CSVs for one
// tournament edition into dir, skipping files already present. The
// tournament key follows the dataset's naming (ausopen, frenchopen,
// wimbledon, usopen).
func (c *Client) DownloadTournament(ctx context.Context, dir, tournament string, year int) (*Files, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}

	f := &Files{
		Points:  filepath.Join(dir, fmt.Sprintf("%d-%s-points.csv", year, tournament)),
		Matches: filepath.Join(dir, fmt.Sprintf("%d-%s-matches.csv", year, tournament)),
	}
	for _, dl := range []struct{ name, dest string }{
		{fmt.Sprintf("%d-%s-points.csv", year, tournament), f.Points},
		{fmt.Sprintf("%d-%s-matches.csv", year, tournament), f.Matches},
	} {
		if _, err := os.Stat(dl.dest); err == nil {
			continue
		}
		if err := c.downloadWithRetry(ctx, c.BaseURL+"/"+dl.name, dl.dest); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// downloadWithRetry retries transient failures up to Retries attempts.
// A 404 means the tournament edition does not exist in the dataset and
// is not retried.
func (c *Client) downloadWithRetry(ctx context.Context, url, dest string) error {
	attempts := c.Retries
	if attempts < 1 {
		attempts = 1
	}
	var err error
	for i := 0; i < attempts; i++ {
		if err = c.download(ctx, url, dest); err == nil {
			return nil
		}
		if errors.Is(err, errNotFound) || ctx.Err() != nil {
			return err
		}
	}
	return err
}

var errNotFound = errors.New("not found")

// download streams url into dest. A partial file is removed on failure
// so a cached-file check never sees a truncated download.
func (c *Client) download(ctx context.Context, url, dest string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("fetch %s: %w", url, errNotFound)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("fetch %s: unexpected status %s", url, resp.Status)
	}

	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, resp.Body); err != nil {
		out.Close()
		os.Remove(dest)
		return fmt.Errorf("write %s: %w", dest, err)
	}
	return out.Close()
}
