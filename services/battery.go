// services/battery.go
package services

import "regexp"

// BatteryUnavailable is shown when a comment carries no battery reading.
const BatteryUnavailable = "N/A"

var batteryRegex = regexp.MustCompile(`BAT[\s\v\p{Zs}\x{2028}\x{2029}\x{feff}]*([0-9.]+)`)

// ExtractBattery returns the first battery reading found in a log comment,
// e.g. "BAT 3.7V" -> "3.7". The value is not parsed or range checked.
func ExtractBattery(comment string) string {
	if comment == "" {
		return BatteryUnavailable
	}
	matches := batteryRegex.FindStringSubmatch(comment)
	if len(matches) < 2 {
		return BatteryUnavailable
	}
	return matches[1]
}
