package service

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"strings"
	"unicode"
)

var errYearNotInteger = errors.New("year is not an integer")

// Year keeps the raw JSON given for "anio" and whether the key was sent at
// all. Clients send it both as a number and as a string.
type Year struct {
	raw     json.RawMessage
	present bool
}

// NewYear builds a Year from a raw JSON literal, as if it had been decoded.
func NewYear(raw string) Year {
	return Year{raw: json.RawMessage(raw), present: true}
}

// UnmarshalJSON is also invoked for an explicit null, which counts as present.
func (y *Year) UnmarshalJSON(data []byte) error {
	y.raw = append(y.raw[:0], data...)
	y.present = true
	return nil
}

// MarshalJSON writes the value back as received.
func (y Year) MarshalJSON() ([]byte, error) {
	if !y.present {
		return []byte("null"), nil
	}
	return y.raw, nil
}

// Present reports whether the key appeared in the request body.
func (y Year) Present() bool {
	return y.present
}

// Int reads the leading base-10 integer of the value: numbers are truncated
// toward zero and strings may carry trailing text ("2024abc" is 2024).
func (y Year) Int() (int, error) {
	raw := bytes.TrimSpace(y.raw)
	if len(raw) == 0 {
		return 0, errYearNotInteger
	}

	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0, errYearNotInteger
		}
		return leadingInt(s)
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		f, err := strconv.ParseFloat(string(raw), 64)
		if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
			return 0, errYearNotInteger
		}
		t := math.Trunc(f)
		if t > math.MaxInt32 || t < math.MinInt32 {
			return 0, errYearNotInteger
		}
		return int(t), nil
	default:
		// null, booleans, objects and arrays
		return 0, errYearNotInteger
	}
}

func leadingInt(s string) (int, error) {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digitsStart := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digitsStart {
		return 0, errYearNotInteger
	}
	n, err := strconv.ParseInt(s[:end], 10, 32)
	if err != nil {
		return 0, errYearNotInteger
	}
	return int(n), nil
}
