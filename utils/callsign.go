// utils/callsign.go
package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// Callsign builds the log source name of satellite n, e.g. 3 -> "MTU3-11".
func Callsign(n int) string {
	return fmt.Sprintf("MTU%d-11", n)
}

// NormalizeCallsign trims and upper-cases a callsign ("mtu2-11 " -> "MTU2-11").
func NormalizeCallsign(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// ParseSatelliteNumber accepts either a box number ("3") or a callsign ("MTU3-11")
// and returns the box number. Only 1..max are accepted.
func ParseSatelliteNumber(s string, max int) (int, error) {
	s = NormalizeCallsign(s)
	if strings.HasPrefix(s, "MTU") && strings.HasSuffix(s, "-11") {
		s = strings.TrimSuffix(strings.TrimPrefix(s, "MTU"), "-11")
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid satellite %q: %w", s, err)
	}
	if n < 1 || n > max {
		return 0, fmt.Errorf("satellite %d out of range 1..%d", n, max)
	}
	return n, nil
}
