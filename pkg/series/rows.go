package series

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"time"
)

// ErrTypeMismatch reports a time key or value of a type the table cannot hold.
var ErrTypeMismatch = errors.New("type mismatch")

// Row is a single loosely typed observation keyed by column name.
// The time key is stored under TimeColumn; every other key is a value column.
type Row map[string]any

// TimeColumn is the key under which a Row carries its timestamp.
const TimeColumn = "ts"

// FromRows builds a Frame from loosely typed rows, such as decoded JSON.
//
// Every row must carry a time key of a recognized type (see ParseTime);
// anything else fails with ErrTypeMismatch. The value columns are the union
// of all non-time keys, sorted by name; a key absent from a row becomes NaN
// in that row, so gaps surface later as missing-value warnings instead of
// silently shifting columns.
func FromRows(rows []Row) (*Frame, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("no rows")
	}

	nameSet := make(map[string]bool)
	for _, row := range rows {
		for k := range row {
			if k != TimeColumn {
				nameSet[k] = true
			}
		}
	}
	names := make([]string, 0, len(nameSet))
	for k := range nameSet {
		names = append(names, k)
	}
	sort.Strings(names)
	if len(names) == 0 {
		return nil, fmt.Errorf("rows have no value columns")
	}

	times := make([]time.Time, len(rows))
	values := make([][]float64, len(rows))
	for i, row := range rows {
		raw, ok := row[TimeColumn]
		if !ok {
			return nil, fmt.Errorf("row %d: missing time key %q", i, TimeColumn)
		}
		ts, err := ParseTime(raw)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		times[i] = ts

		vals := make([]float64, len(names))
		for j, name := range names {
			v, ok := row[name]
			if !ok {
				vals[j] = math.NaN()
				continue
			}
			f, ok := toFloat64(v)
			if !ok {
				return nil, fmt.Errorf("row %d column %q: value type %T: %w", i, name, v, ErrTypeMismatch)
			}
			vals[j] = f
		}
		values[i] = vals
	}

	return New(times, names, values)
}

// ParseTime converts a loosely typed time key to time.Time. It accepts
// RFC3339 strings, Unix seconds as float64/int/int64, and time.Time values.
// Unrecognized types fail with ErrTypeMismatch.
func ParseTime(v any) (time.Time, error) {
	switch val := v.(type) {
	case string:
		t, err := time.Parse(time.RFC3339Nano, val)
		if err != nil {
			return time.Time{}, fmt.Errorf("parse time key: %w", err)
		}
		return t, nil

	case float64:
		return time.Unix(int64(val), 0).UTC(), nil

	case int:
		return time.Unix(int64(val), 0).UTC(), nil

	case int64:
		return time.Unix(val, 0).UTC(), nil

	case time.Time:
		return val, nil

	default:
		return time.Time{}, fmt.Errorf("time key type %T: %w", v, ErrTypeMismatch)
	}
}

func toFloat64(v any) (float64, bool) {
	switch val := v.(type) {
	case float64:
		return val, true
	case float32:
		return float64(val), true
	case int:
		return float64(val), true
	case int64:
		return float64(val), true
	case int32:
		return float64(val), true
	default:
		return 0, false
	}
}
