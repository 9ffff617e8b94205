// Package codec fixes the textual profile of scalar values: one canonical,
// round-trippable string per scalar type, shared by the Markdown writer and
// the runtime renderer.
package codec

import (
	"fmt"
	"strconv"
	"time"

	structdown "github.com/structdown/structdown"
)

// Bool renders a boolean as yes/no.
func Bool(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// Time renders a zone-less instant normalized to UTC using RFC 3339
// (nanoseconds trimmed by Go's formatter).
func Time(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

// TimeOffset renders an instant preserving its offset using RFC 3339.
func TimeOffset(t time.Time) string {
	return t.Format(time.RFC3339Nano)
}

// ParseTime accepts RFC 3339 with or without fractional seconds.
func ParseTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		if t2, err2 := time.Parse(time.RFC3339, s); err2 == nil {
			return t2, nil
		}
		return time.Time{}, err
	}
	return t, nil
}

// Float renders a float64 with the shortest representation that round-trips.
func Float(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// Int renders a signed integer.
func Int(i int64) string {
	return strconv.FormatInt(i, 10)
}

// Scalar renders an arbitrary decoded value according to its declared scalar
// type. Nil values render as the empty string, never as an error; decoded
// JSON numbers (float64) are accepted for the integer kinds.
func Scalar(st structdown.ScalarType, v any) string {
	if v == nil {
		return ""
	}
	switch st {
	case structdown.ScalarString, structdown.ScalarDecimal:
		if s, ok := v.(string); ok {
			return s
		}
	case structdown.ScalarBool:
		if b, ok := v.(bool); ok {
			return Bool(b)
		}
	case structdown.ScalarInt32, structdown.ScalarInt64:
		switch n := v.(type) {
		case int:
			return Int(int64(n))
		case int32:
			return Int(int64(n))
		case int64:
			return Int(n)
		case float64:
			return Int(int64(n))
		}
	case structdown.ScalarFloat64:
		switch n := v.(type) {
		case float64:
			return Float(n)
		case int:
			return Int(int64(n))
		}
	case structdown.ScalarDateTime:
		switch t := v.(type) {
		case time.Time:
			return Time(t)
		case string:
			if parsed, err := ParseTime(t); err == nil {
				return Time(parsed)
			}
			return t
		}
	case structdown.ScalarDateTimeOffset:
		switch t := v.(type) {
		case time.Time:
			return TimeOffset(t)
		case string:
			if parsed, err := ParseTime(t); err == nil {
				return TimeOffset(parsed)
			}
			return t
		}
	}
	return fmt.Sprintf("%v", v)
}
