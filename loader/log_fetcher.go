// loader/log_fetcher.go
package loader

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	log "github.com/sirupsen/logrus"
)

// FetchLog downloads the telemetry log from url with a single GET request and
// returns its body as text. There is no retry: a failed request, a non-200
// status or an unreadable body is returned as an error.
func FetchLog(ctx context.Context, client *http.Client, url string) (string, error) {
	log.Printf("Loader: fetching telemetry log from %s", url)

	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build request for %s: %w", url, err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to make GET request to %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("failed to fetch telemetry log from %s: received status code %d", url, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read telemetry log body from %s: %w", url, err)
	}

	log.Printf("Loader: fetched %d bytes from %s", len(body), url)
	return string(body), nil
}

// ReadLogFile reads the telemetry log from a local file.
func ReadLogFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read telemetry log file %s: %w", path, err)
	}
	log.Printf("Loader: read %d bytes from %s", len(data), path)
	return string(data), nil
}
