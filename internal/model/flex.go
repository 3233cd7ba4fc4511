package model

import (
	"bytes"
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Loose scalar types for request payloads. They never fail on a well-formed JSON value:
// mismatched kinds are converted, and anything unconvertible becomes the zero value.

// FlexString accepts strings, numbers and booleans.
type FlexString string

// FlexInt accepts numbers, numeric strings and booleans; fractions are truncated.
type FlexInt int

// FlexFloat accepts numbers, numeric strings and booleans.
type FlexFloat float64

var numericPrefix = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?`)

func (s *FlexString) UnmarshalJSON(b []byte) error {
	v, err := decodeScalar(b)
	if err != nil {
		return err
	}
	switch t := v.(type) {
	case string:
		*s = FlexString(t)
	case json.Number:
		*s = FlexString(t.String())
	case bool:
		if t {
			*s = "1"
		} else {
			*s = ""
		}
	default:
		*s = ""
	}
	return nil
}

func (i *FlexInt) UnmarshalJSON(b []byte) error {
	f, err := looseFloat(b)
	if err != nil {
		return err
	}
	switch {
	case math.IsNaN(f):
		*i = 0
	case f >= math.MaxInt:
		*i = FlexInt(math.MaxInt)
	case f <= math.MinInt:
		*i = FlexInt(math.MinInt)
	default:
		*i = FlexInt(int(f))
	}
	return nil
}

func (f *FlexFloat) UnmarshalJSON(b []byte) error {
	v, err := looseFloat(b)
	if err != nil {
		return err
	}
	if math.IsInf(v, 0) || math.IsNaN(v) {
		// Non-finite values cannot be indexed as JSON.
		v = 0
	}
	*f = FlexFloat(v)
	return nil
}

func decodeScalar(b []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}

func looseFloat(b []byte) (float64, error) {
	v, err := decodeScalar(b)
	if err != nil {
		return 0, err
	}
	switch t := v.(type) {
	case json.Number:
		return parseNumericPrefix(t.String()), nil
	case string:
		return parseNumericPrefix(t), nil
	case bool:
		if t {
			return 1, nil
		}
		return 0, nil
	default:
		return 0, nil
	}
}

// parseNumericPrefix reads the longest leading number in s, so "2020 model" is 2020.
func parseNumericPrefix(s string) float64 {
	m := numericPrefix.FindString(strings.TrimLeft(s, " \t\n\r"))
	if m == "" {
		return 0
	}
	// On range errors ParseFloat still returns ±Inf, which callers clamp.
	f, _ := strconv.ParseFloat(m, 64)
	return f
}
