package city

import (
	"encoding/json"
	"strconv"
)

// Reading is a pollutant or index value that may be missing upstream.
// An unknown reading serializes as the string "n/a" so that clients can
// tell "not reported" apart from a real zero.
type Reading struct {
	Value float64
	Known bool
}

// KnownReading returns a reading carrying the given value.
func KnownReading(v float64) Reading {
	return Reading{Value: v, Known: true}
}

func (r Reading) MarshalJSON() ([]byte, error) {
	if !r.Known {
		return []byte(`"n/a"`), nil
	}
	return []byte(strconv.FormatFloat(r.Value, 'f', -1, 64)), nil
}

func (r *Reading) UnmarshalJSON(data []byte) error {
	var v float64
	if err := json.Unmarshal(data, &v); err == nil {
		*r = Reading{Value: v, Known: true}
		return nil
	}
	// Anything non-numeric ("n/a", null) is an unknown reading.
	*r = Reading{}
	return nil
}
