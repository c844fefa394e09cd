package utils

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ParseID parses a path segment as a non-negative integer id.
func ParseID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || id < 0 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}

// ParseBool accepts the boolean spellings form posts and JSON clients send.
func ParseBool(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "on":
		return true, nil
	case "0", "false", "no", "off", "":
		return false, nil
	}
	return false, fmt.Errorf("invalid boolean %q", s)
}

// ToInt64 converts a decoded JSON scalar to an integer. Fractions are truncated,
// numeric strings are accepted and out-of-range values saturate.
func ToInt64(raw any) (int64, error) {
	switch t := raw.(type) {
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return 0, fmt.Errorf("invalid integer %v", t)
		}
		return floatToInt64(t), nil
	case int:
		return int64(t), nil
	case int64:
		return t, nil
	case string:
		s := strings.TrimSpace(t)
		if i, err := strconv.ParseInt(s, 10, 64); err == nil {
			return i, nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil && !errors.Is(err, strconv.ErrRange) || math.IsNaN(f) {
			return 0, fmt.Errorf("invalid integer %q", t)
		}
		return floatToInt64(f), nil
	}
	return 0, fmt.Errorf("invalid integer %v", raw)
}

// floatToInt64 truncates f, clamping to the int64 range. 2^63 itself is not
// representable, so the upper bound is checked with >=.
func floatToInt64(f float64) int64 {
	switch {
	case f >= math.MaxInt64:
		return math.MaxInt64
	case f <= math.MinInt64:
		return math.MinInt64
	}
	return int64(f)
}

// ToBool converts a decoded JSON scalar to a boolean.
func ToBool(raw any) (bool, error) {
	switch t := raw.(type) {
	case bool:
		return t, nil
	case float64:
		if t == 0 || t == 1 {
			return t == 1, nil
		}
	case string:
		return ParseBool(t)
	}
	return false, fmt.Errorf("invalid boolean %v", raw)
}
