// Package timefmt holds the timestamp and duration formats shared by the
// ingestion, prompt and output layers.
package timefmt

import (
	"regexp"
	"strconv"
	"time"

	"github.com/rxtech-lab/tickforge/pkg/errors"
)

// Layout is the canonical timestamp layout (YYYY-MM-DD HH:MM:SS.mmm) used in
// input files, prompts and the output CSV.
const Layout = "2006-01-02 15:04:05.000"

var (
	timestampPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}\.\d{3}$`)
	intervalPattern  = regexp.MustCompile(`^(?:(\d+)d)?(?:(\d+)h)?(?:(\d+)m)?(?:(\d+)s)?$`)
	clockPattern     = regexp.MustCompile(`^(\d{1,2}):(\d{2})$`)
)

// ParseTimestamp parses a timestamp in the canonical layout. The regexp gate
// keeps time.Parse from accepting looser spellings of the same instant, so
// the exact string format the rest of the pipeline relies on is enforced.
func ParseTimestamp(s string) (time.Time, error) {
	if !timestampPattern.MatchString(s) {
		return time.Time{}, errors.Newf(errors.ErrCodeInvalidTimestamp, "timestamp %q does not match %q", s, Layout)
	}

	t, err := time.Parse(Layout, s)
	if err != nil {
		return time.Time{}, errors.Wrapf(errors.ErrCodeInvalidTimestamp, err, "failed to parse timestamp %q", s)
	}

	return t, nil
}

// FormatTimestamp renders t in the canonical layout with millisecond
// precision.
func FormatTimestamp(t time.Time) string {
	return t.Format(Layout)
}

// ParseInterval converts a duration string of the form <N>d<N>h<N>m<N>s into
// total seconds. Every component is optional but the order is fixed, and the
// total must be positive.
func ParseInterval(s string) (int64, error) {
	if s == "" {
		return 0, errors.New(errors.ErrCodeInvalidInterval, "interval must not be empty")
	}

	m := intervalPattern.FindStringSubmatch(s)
	if m == nil {
		return 0, errors.Newf(errors.ErrCodeInvalidInterval, "interval %q does not match <N>d<N>h<N>m<N>s", s)
	}

	unitSeconds := []int64{86400, 3600, 60, 1}

	var total int64

	for i, unit := range unitSeconds {
		if m[i+1] == "" {
			continue
		}

		value, err := strconv.ParseInt(m[i+1], 10, 64)
		if err != nil {
			return 0, errors.Wrapf(errors.ErrCodeInvalidInterval, err, "invalid interval component %q", m[i+1])
		}

		total += value * unit
	}

	if total <= 0 {
		return 0, errors.Newf(errors.ErrCodeInvalidInterval, "interval %q must be greater than 0 seconds", s)
	}

	return total, nil
}

// ParseClock parses an HH:MM wall-clock string into an offset from midnight.
func ParseClock(s string) (time.Duration, error) {
	m := clockPattern.FindStringSubmatch(s)
	if m == nil {
		return 0, errors.Newf(errors.ErrCodeInvalidSession, "clock time %q does not match HH:MM", s)
	}

	hours, _ := strconv.Atoi(m[1])
	minutes, _ := strconv.Atoi(m[2])

	if hours > 23 || minutes > 59 {
		return 0, errors.Newf(errors.ErrCodeInvalidSession, "clock time %q is out of range", s)
	}

	return time.Duration(hours)*time.Hour + time.Duration(minutes)*time.Minute, nil
}
