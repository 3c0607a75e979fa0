package youtube

import (
	"regexp"
	"strconv"
)

// durationRE matches ISO-8601 durations of the form PT#H#M#S with any subset
// of the three components present. Day-based durations fall outside the
// grammar and decode to 0 like any other mismatch.
var durationRE = regexp.MustCompile(`^PT(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?$`)

// ParseDuration converts an ISO-8601 duration token to whole seconds.
// Input that does not match the grammar yields 0; it never fails.
func ParseDuration(s string) int64 {
	m := durationRE.FindStringSubmatch(s)
	if m == nil {
		return 0
	}

	hours := atoiDefault(m[1])
	minutes := atoiDefault(m[2])
	seconds := atoiDefault(m[3])

	return hours*3600 + minutes*60 + seconds
}

func atoiDefault(s string) int64 {
	if s == "" {
		return 0
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return n
}
