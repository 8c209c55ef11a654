package schema

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/berfenger/sen6xgen/internal/core/domain"
	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"
)

var (
	durationRegexp = regexp.MustCompile(`^([-+]?[0-9]*\.?[0-9]+)\s*([a-z]+)$`)
	clockRegexp    = regexp.MustCompile(`^(-?)([0-9]+):([0-5][0-9]):([0-5][0-9])$`)
)

var durationUnits = map[string]time.Duration{
	"us":           time.Microsecond,
	"microsecond":  time.Microsecond,
	"microseconds": time.Microsecond,
	"ms":           time.Millisecond,
	"millisecond":  time.Millisecond,
	"milliseconds": time.Millisecond,
	"s":            time.Second,
	"sec":          time.Second,
	"secs":         time.Second,
	"second":       time.Second,
	"seconds":      time.Second,
	"min":          time.Minute,
	"mins":         time.Minute,
	"minute":       time.Minute,
	"minutes":      time.Minute,
	"h":            time.Hour,
	"hour":         time.Hour,
	"hours":        time.Hour,
	"d":            24 * time.Hour,
	"day":          24 * time.Hour,
	"days":         24 * time.Hour,
}

// ParseDuration reads a human readable interval such as 10s, 1.5min, 7d or 01:30:00.
// A bare number is rejected because its unit would be ambiguous.
func ParseDuration(path string, n *yaml.Node) (time.Duration, error) {
	s, err := scalar(path, n)
	if err != nil {
		return 0, err
	}
	lower := strings.ToLower(s)

	if m := clockRegexp.FindStringSubmatch(lower); m != nil {
		// base 10, leading zeros are common here
		h, _ := strconv.ParseInt(m[2], 10, 64)
		mins, _ := strconv.ParseInt(m[3], 10, 64)
		sec, _ := strconv.ParseInt(m[4], 10, 64)
		d := time.Duration(h)*time.Hour + time.Duration(mins)*time.Minute + time.Duration(sec)*time.Second
		if m[1] == "-" {
			return 0, domain.NewFieldError(domain.ErrRange, path, "interval %q must not be negative", s)
		}
		return d, nil
	}

	m := durationRegexp.FindStringSubmatch(lower)
	if m == nil {
		if _, numErr := cast.ToFloat64E(lower); numErr == nil {
			return 0, domain.NewFieldError(domain.ErrFormat, path, "interval %q has no unit, use e.g. %ss", s, s)
		}
		return 0, domain.NewFieldError(domain.ErrFormat, path, "invalid interval %q", s)
	}
	unit, ok := durationUnits[m[2]]
	if !ok {
		return 0, domain.NewFieldError(domain.ErrFormat, path, "unknown interval unit %q", m[2])
	}
	value, err := cast.ToFloat64E(m[1])
	if err != nil {
		return 0, domain.NewFieldError(domain.ErrFormat, path, "invalid interval %q", s)
	}
	if value < 0 {
		return 0, domain.NewFieldError(domain.ErrRange, path, "interval %q must not be negative", s)
	}
	total := value * float64(unit)
	if total > math.MaxInt64 {
		return 0, domain.NewFieldError(domain.ErrRange, path, "interval %q is too long", s)
	}
	return time.Duration(math.Round(total)), nil
}

func durationIn(unit time.Duration, unitName string, max int64) Validator {
	return func(path string, n *yaml.Node) (any, error) {
		d, err := ParseDuration(path, n)
		if err != nil {
			return nil, err
		}
		if d%unit != 0 {
			return nil, domain.NewFieldError(domain.ErrFormat, path, "interval %s must be a whole number of %s", d, unitName)
		}
		v := int64(d / unit)
		if v > max {
			return nil, domain.NewFieldError(domain.ErrRange, path, "interval %s exceeds the maximum of %d %s", d, max, unitName)
		}
		return v, nil
	}
}

// DurationSeconds converts an interval to whole seconds, bounded by max seconds.
func DurationSeconds(max int64) Validator {
	return durationIn(time.Second, "seconds", max)
}

// DurationMillis converts an interval to whole milliseconds, bounded by max milliseconds.
func DurationMillis(max int64) Validator {
	return durationIn(time.Millisecond, "milliseconds", max)
}
