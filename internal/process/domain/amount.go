package domain

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Amount is a tolerant numeric field used for all cost, hour and savings
// values. Records written by older frontend versions carry absent, null
// or string-typed numbers; any of those decodes to 0 instead of failing
// the whole record. Non-finite values never reach persisted JSON.
type Amount float64

// Float returns the amount as a plain float64, coercing non-finite
// values to 0.
func (a Amount) Float() float64 {
	f := float64(a)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// UnmarshalJSON accepts numbers, numeric strings (including German
// decimal commas), null and garbage; everything non-numeric becomes 0.
func (a *Amount) UnmarshalJSON(b []byte) error {
	trimmed := bytes.TrimSpace(b)
	if len(trimmed) == 0 || string(trimmed) == "null" {
		*a = 0
		return nil
	}

	var f float64
	if err := json.Unmarshal(trimmed, &f); err == nil {
		*a = Amount(f).sanitized()
		return nil
	}

	var s string
	if err := json.Unmarshal(trimmed, &s); err == nil {
		s = strings.TrimSpace(strings.ReplaceAll(s, ",", "."))
		if parsed, err := strconv.ParseFloat(s, 64); err == nil {
			*a = Amount(parsed).sanitized()
			return nil
		}
	}

	*a = 0
	return nil
}

// MarshalJSON guarantees a finite number on the wire.
func (a Amount) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.Float())
}

func (a Amount) sanitized() Amount {
	return Amount(a.Float())
}
