package session

import "strings"

var durations = []struct {
	label   string
	seconds int
}{
	{"5 min", 5 * 60},
	{"15 min", 15 * 60},
	{"25 min", 25 * 60},
	{"30 min", 30 * 60},
	{"45 min", 45 * 60},
	{"1 hour", 60 * 60},
}

// FallbackSeconds is used for labels outside the vocabulary.
//
// TODO: confirm with product whether an unknown label should be rejected
// instead of silently mapping to the longest duration.
const FallbackSeconds = 60 * 60

// DurationFor maps a duration label to a number of seconds. Labels are
// matched case-insensitively. Unknown labels return FallbackSeconds and
// known == false.
func DurationFor(label string) (seconds int, known bool) {
	l := strings.ToLower(strings.TrimSpace(label))

	for _, d := range durations {
		if d.label == l {
			return d.seconds, true
		}
	}

	return FallbackSeconds, false
}

// Labels returns the recognised duration labels in menu order.
func Labels() []string {
	labels := make([]string, len(durations))

	for i, d := range durations {
		labels[i] = d.label
	}

	return labels
}
