// Copyright 2026 Robert Bosch GmbH
//
// SPDX-License-Identifier: Apache-2.0

package schema

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Never disables a periodic operation (update_interval: never).
const Never time.Duration = -1

// NeverMillis is the scheduler value the firmware uses for Never.
const NeverMillis int64 = math.MaxUint32

var timePeriodRe = regexp.MustCompile(`^([-+]?[0-9]*\.?[0-9]+)\s*([a-zµ]*)$`)

var timeUnits = map[string]time.Duration{
	"us":           time.Microsecond,
	"µs":           time.Microsecond,
	"microseconds": time.Microsecond,
	"ms":           time.Millisecond,
	"milliseconds": time.Millisecond,
	"s":            time.Second,
	"sec":          time.Second,
	"seconds":      time.Second,
	"min":          time.Minute,
	"minutes":      time.Minute,
	"h":            time.Hour,
	"hours":        time.Hour,
	"d":            24 * time.Hour,
	"days":         24 * time.Hour,
}

// ParseTimePeriod parses a period such as "0.5s", "500ms" or "1min". A unit
// is mandatory.
func ParseTimePeriod(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	match := timePeriodRe.FindStringSubmatch(s)
	if match == nil {
		return 0, fmt.Errorf("Expected time period with unit, got %s", s)
	}
	if match[2] == "" {
		return 0, fmt.Errorf("Don't know what '%s' means as it has no time *unit*! Did you mean '%ss'?", s, s)
	}
	unit, ok := timeUnits[match[2]]
	if !ok {
		return 0, fmt.Errorf("Expected time period with unit, got %s (unknown unit %q)", s, match[2])
	}
	v, err := strconv.ParseFloat(match[1], 64)
	if err != nil {
		return 0, fmt.Errorf("Expected time period with unit, got %s", s)
	}
	d := math.Round(v * float64(unit))
	if d >= math.MaxInt64 || d <= math.MinInt64 {
		return 0, fmt.Errorf("Time period %s is out of range", s)
	}
	return time.Duration(d), nil
}

func TimePeriod(n *yaml.Node, path Path) (time.Duration, error) {
	v, err := String(n, path)
	if err != nil {
		return 0, err
	}
	d, err := ParseTimePeriod(v)
	if err != nil {
		return 0, invalid(Resolve(n), path, err.Error())
	}
	return d, nil
}

// PositiveTimePeriodMilliseconds accepts non-negative periods with at most
// millisecond precision.
func PositiveTimePeriodMilliseconds(n *yaml.Node, path Path) (time.Duration, error) {
	d, err := TimePeriod(n, path)
	if err != nil {
		return 0, err
	}
	if d < 0 {
		return 0, invalid(Resolve(n), path, "Time period must not be negative.")
	}
	if d%time.Millisecond != 0 {
		return 0, invalid(Resolve(n), path, "Maximum precision is milliseconds")
	}
	return d, nil
}

// UpdateInterval is PositiveTimePeriodMilliseconds which also accepts
// "never".
func UpdateInterval(n *yaml.Node, path Path) (time.Duration, error) {
	if v, err := String(n, path); err == nil && strings.ToLower(strings.TrimSpace(v)) == "never" {
		return Never, nil
	}
	return PositiveTimePeriodMilliseconds(n, path)
}

// Millis converts d for emission, mapping Never to NeverMillis.
func Millis(d time.Duration) int64 {
	if d == Never {
		return NeverMillis
	}
	return d.Milliseconds()
}
