package models

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// UnmarshalJSON decodes a review payload field by field so that a bad value in
// one field does not hide problems in the others. Rating is read leniently:
// integral numbers such as 4.0 and numeric strings such as "4" are accepted.
// Decoding problems are reported later by Validate together with the
// constraint violations.
func (rc *ReviewCreate) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*rc = ReviewCreate{}

	if v, ok := raw["name"]; ok {
		if err := json.Unmarshal(v, &rc.Name); err != nil {
			rc.decodeErrors = append(rc.decodeErrors, bodyError("name", "string_type", "name must be a valid string"))
		}
	}

	if v, ok := raw["rating"]; ok {
		rating, fieldErr := decodeLaxInt("rating", v)
		if fieldErr != nil {
			rc.decodeErrors = append(rc.decodeErrors, *fieldErr)
		}
		rc.Rating = rating
	}

	if v, ok := raw["comment"]; ok {
		if err := json.Unmarshal(v, &rc.Comment); err != nil {
			rc.decodeErrors = append(rc.decodeErrors, bodyError("comment", "string_type", "comment must be a valid string"))
		}
	}

	return nil
}

func bodyError(field, typ, msg string) FieldError {
	return FieldError{Loc: []string{"body", field}, Msg: msg, Type: typ}
}

// decodeLaxInt accepts JSON integers, floats without a fractional part and
// strings holding an integer. null decodes to nil.
func decodeLaxInt(field string, raw json.RawMessage) (*int, *FieldError) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var v interface{}
	if err := dec.Decode(&v); err != nil {
		fe := bodyError(field, "int_type", field+" must be a valid integer")
		return nil, &fe
	}

	switch val := v.(type) {
	case nil:
		return nil, nil
	case json.Number:
		return numberToInt(field, val)
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(val))
		if err != nil {
			fe := bodyError(field, "int_parsing", field+" must be a valid integer, unable to parse string as an integer")
			return nil, &fe
		}
		return &n, nil
	default:
		fe := bodyError(field, "int_type", field+" must be a valid integer")
		return nil, &fe
	}
}

func numberToInt(field string, num json.Number) (*int, *FieldError) {
	if i, err := num.Int64(); err == nil {
		n := clampInt(float64(i))
		return &n, nil
	}

	f, err := num.Float64()
	if err != nil {
		fe := bodyError(field, "int_parsing", field+" must be a valid integer")
		return nil, &fe
	}
	if f != math.Trunc(f) {
		fe := bodyError(field, "int_from_float", field+" must be a valid integer, got a number with a fractional part")
		return nil, &fe
	}

	n := clampInt(f)
	return &n, nil
}

// clampInt keeps out-of-range values on the correct side of the bounds checks.
func clampInt(f float64) int {
	switch {
	case f >= math.MaxInt:
		return math.MaxInt
	case f <= math.MinInt:
		return math.MinInt
	default:
		return int(f)
	}
}
