package services

import "fmt"

// FormatDuration renders minutes as "45min", "2h 15min" or "2h".
// Fractions of a minute are truncated.
func FormatDuration(minutes float64) string {
	if minutes < 60 {
		return fmt.Sprintf("%dmin", int(minutes))
	}
	h := int(minutes) / 60
	m := int(minutes) % 60
	if m > 0 {
		return fmt.Sprintf("%dh %dmin", h, m)
	}
	return fmt.Sprintf("%dh", h)
}

// FormatDistance renders km as whole meters below one kilometre and with one
// decimal above.
func FormatDistance(km float64) string {
	if km < 1 {
		return fmt.Sprintf("%dm", int(km*1000))
	}
	return fmt.Sprintf("%.1f km", km)
}
