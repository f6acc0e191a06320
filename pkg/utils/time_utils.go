package utils

import "time"

// FormatUnixRFC3339 renders unix seconds in UTC. Returns "" for t<=0.
func FormatUnixRFC3339(t int64) string {
	if t <= 0 {
		return ""
	}
	return time.Unix(t, 0).UTC().Format(time.RFC3339)
}
