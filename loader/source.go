// loader/source.go
package loader

import (
	"context"
	"fmt"
	"net/http"

	"github.com/mtu-cubesat/swarm/dashboard/models"
)

// Source produces the telemetry log records, in file order.
type Source interface {
	// Name describes the source for logs and the status endpoint.
	Name() string
	Load(ctx context.Context) ([]models.LogRecord, error)
}

// HTTPSource fetches the log text from a URL and parses it.
type HTTPSource struct {
	URL    string
	Client *http.Client
}

// NewHTTPSource returns a source for url. A nil client uses a 30 s timeout.
func NewHTTPSource(url string, client *http.Client) *HTTPSource {
	return &HTTPSource{URL: url, Client: client}
}

func (s *HTTPSource) Name() string {
	return "http " + s.URL
}

func (s *HTTPSource) Load(ctx context.Context) ([]models.LogRecord, error) {
	text, err := FetchLog(ctx, s.Client, s.URL)
	if err != nil {
		return nil, err
	}
	records, err := ParseLog(text)
	if err != nil {
		return nil, fmt.Errorf("failed to parse telemetry log from %s: %w", s.URL, err)
	}
	return records, nil
}

// FileSource reads the log text from a local file and parses it.
type FileSource struct {
	Path string
}

func NewFileSource(path string) *FileSource {
	return &FileSource{Path: path}
}

func (s *FileSource) Name() string {
	return "file " + s.Path
}

func (s *FileSource) Load(ctx context.Context) ([]models.LogRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	text, err := ReadLogFile(s.Path)
	if err != nil {
		return nil, err
	}
	records, err := ParseLog(text)
	if err != nil {
		return nil, fmt.Errorf("failed to parse telemetry log file %s: %w", s.Path, err)
	}
	return records, nil
}
