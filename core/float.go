package core

import (
	"bytes"
	"strconv"
)

// Float is a float64 that tolerates the numeric styles the aggregation API
// mixes freely: plain numbers, quoted numbers, null and missing fields.
// Anything that does not parse decodes as zero instead of failing the
// surrounding document, so one bad field never aborts a whole pairs list.
type Float float64

func (f *Float) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = 0
		return nil
	}

	if data[0] == '"' {
		unquoted, err := strconv.Unquote(string(data))
		if err != nil {
			*f = 0
			return nil
		}
		data = []byte(unquoted)
	}

	value, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		*f = 0
		return nil
	}

	*f = Float(value)
	return nil
}

func (f Float) Float64() float64 {
	return float64(f)
}
