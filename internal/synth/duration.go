package synth

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrBadDuration is returned for duration tags that cannot be parsed.
var ErrBadDuration = errors.New("bad duration tag")

// DefaultBPM is the tempo duration tags are measured against.
const DefaultBPM = 120

// ParseDuration converts a tag to wall time at bpm quarter notes per minute.
// Accepted forms: "4n" (note value), "4n." (dotted), "8t" (triplet),
// "1m" (measures of 4/4) and plain seconds such as "0.25".
func ParseDuration(tag string, bpm float64) (time.Duration, error) {
	if bpm <= 0 {
		bpm = DefaultBPM
	}
	tag = strings.TrimSpace(tag)
	if secs, err := strconv.ParseFloat(tag, 64); err == nil {
		if secs < 0 {
			return 0, fmt.Errorf("%w: %q", ErrBadDuration, tag)
		}
		return time.Duration(secs * float64(time.Second)), nil
	}

	beat := 60 / bpm // seconds per quarter note
	factor := 1.0
	body := tag
	switch {
	case strings.HasSuffix(body, "n."):
		factor, body = 1.5, strings.TrimSuffix(body, ".")
	case strings.HasSuffix(body, "t"):
		factor, body = 2.0/3.0, strings.TrimSuffix(body, "t")+"n"
	}

	var whole float64
	switch {
	case strings.HasSuffix(body, "n"):
		n, err := strconv.Atoi(strings.TrimSuffix(body, "n"))
		if err != nil || n <= 0 || n&(n-1) != 0 {
			return 0, fmt.Errorf("%w: %q", ErrBadDuration, tag)
		}
		whole = 4 * beat / float64(n)
	case strings.HasSuffix(body, "m") && factor == 1:
		n, err := strconv.Atoi(strings.TrimSuffix(body, "m"))
		if err != nil || n <= 0 {
			return 0, fmt.Errorf("%w: %q", ErrBadDuration, tag)
		}
		whole = 4 * beat * float64(n)
	default:
		return 0, fmt.Errorf("%w: %q", ErrBadDuration, tag)
	}
	return time.Duration(whole * factor * float64(time.Second)), nil
}
