// loader/log_parser.go
package loader

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/jszwec/csvutil"
	log "github.com/sirupsen/logrus"

	"github.com/mtu-cubesat/swarm/dashboard/models"
)

// rowReader feeds tokenized log lines to csvutil. It implements csvutil.Reader.
// Every row is padded or cut to the header width so csvutil never sees a
// field-count mismatch: missing values become empty fields.
type rowReader struct {
	lines []string
	width int
	next  int
}

func (r *rowReader) Read() ([]string, error) {
	if r.next >= len(r.lines) {
		return nil, io.EOF
	}
	tokens := tokenizeRow(r.lines[r.next])
	r.next++

	row := make([]string, r.width)
	copy(row, tokens)
	return row, nil
}

// ParseLog parses the raw text of the telemetry log into records, in file order.
// Surrounding whitespace, including a leading byte-order mark, is trimmed first.
// The first line holds the header names (split on plain commas); each following
// line becomes one record. Empty text gives an empty slice. Parsing never fails
// on malformed rows: unmatched values are simply left empty.
func ParseLog(text string) ([]models.LogRecord, error) {
	text = strings.TrimFunc(text, isSpace)
	if text == "" {
		return []models.LogRecord{}, nil
	}

	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}

	header := strings.Split(lines[0], ",")
	decoderHeader := dedupeHeader(header)

	reader := &rowReader{lines: lines[1:], width: len(header)}
	records := make([]models.LogRecord, 0, len(reader.lines))
	if len(reader.lines) == 0 {
		return records, nil
	}

	decoder, err := csvutil.NewDecoder(reader, decoderHeader...)
	if err != nil {
		return nil, fmt.Errorf("failed to create decoder for telemetry log: %w", err)
	}

	for {
		var rec models.LogRecord
		if err := decoder.Decode(&rec); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("failed to decode telemetry log line %d: %w", len(records)+2, err)
		}

		if unused := decoder.Unused(); len(unused) > 0 {
			row := decoder.Record()
			for _, idx := range unused {
				if decoderHeader[idx] != header[idx] {
					continue // shadowed duplicate column
				}
				if rec.Extra == nil {
					rec.Extra = make(map[string]string, len(unused))
				}
				rec.Extra[header[idx]] = row[idx]
			}
		}
		records = append(records, rec)
	}

	log.WithFields(log.Fields{"records": len(records), "columns": len(header)}).Debug("Loader: parsed telemetry log")
	return records, nil
}

// dedupeHeader renames every header that appears again further right, so the
// last column with a given name is the one that gets decoded.
func dedupeHeader(header []string) []string {
	out := make([]string, len(header))
	seen := make(map[string]bool, len(header))
	for i := len(header) - 1; i >= 0; i-- {
		name := header[i]
		if seen[name] {
			name = fmt.Sprintf("\x00shadowed-%d", i)
		}
		seen[header[i]] = true
		out[i] = name
	}
	return out
}
