package catalog

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
)

// Value is a numeric parameter that is either fixed (Min == Max) or a range to
// sample from.
type Value struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
	Set bool    `json:"set"`
}

// Fixed returns a fixed value.
func Fixed(v float64) Value {
	return Value{Min: v, Max: v, Set: true}
}

// Range returns a range value, ordering the bounds.
func Range(a, b float64) Value {
	if a > b {
		a, b = b, a
	}
	return Value{Min: a, Max: b, Set: true}
}

// IsRange reports whether the value must be sampled.
func (v Value) IsRange() bool {
	return v.Set && v.Max > v.Min
}

// numberRe finds decimal numbers, accepting European commas ("2,5").
var numberRe = regexp.MustCompile(`\d+(?:[.,]\d+)?`)

// minutesRe matches a trailing minute unit ("2 min", "1-2 minutes"). Times are
// stored in seconds, so such values are scaled by 60. Compound units such as
// "min/km" do not match.
var minutesRe = regexp.MustCompile(`(?i)\d\s*(?:mn|mins?|minutes?)\.?$`)

// parseValue converts a decoded JSON/YAML value into a Value. Accepted shapes:
// 45, "45", "45s", "45-60", [45, 60], {"min": 45, "max": 60}. Negative numbers are
// clamped to zero; anything else yields an unset Value.
func parseValue(v any) Value {
	switch t := v.(type) {
	case nil:
		return Value{}
	case float64:
		return Fixed(clamp(t))
	case float32:
		return Fixed(clamp(float64(t)))
	case int:
		return Fixed(clamp(float64(t)))
	case int64:
		return Fixed(clamp(float64(t)))
	case uint64:
		return Fixed(float64(t))
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return Value{}
		}
		return Fixed(clamp(f))
	case string:
		return parseValueString(t)
	case []any:
		switch len(t) {
		case 0:
			return Value{}
		case 1:
			return parseValue(t[0])
		default:
			lo, hi := parseValue(t[0]), parseValue(t[1])
			if !lo.Set || !hi.Set {
				return Value{}
			}
			return Range(lo.Min, hi.Max)
		}
	case map[string]any:
		fields := indexFields(t)
		lo, hi := parseValue(fields["min"]), parseValue(fields["max"])
		switch {
		case lo.Set && hi.Set:
			return Range(lo.Min, hi.Max)
		case lo.Set:
			return lo
		case hi.Set:
			return hi
		}
		if val, ok := fields["valeur"]; ok {
			return parseValue(val)
		}
		return parseValue(fields["value"])
	}
	return Value{}
}

func parseValueString(s string) Value {
	s = strings.TrimSpace(s)
	scale := 1.0
	if minutesRe.MatchString(s) {
		scale = 60
	}
	nums := numberRe.FindAllString(s, 2)
	switch len(nums) {
	case 0:
		return Value{}
	case 1:
		return Fixed(parseDecimal(nums[0]) * scale)
	default:
		return Range(parseDecimal(nums[0])*scale, parseDecimal(nums[1])*scale)
	}
}

func parseDecimal(s string) float64 {
	f, _ := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
	return f
}

func clamp(f float64) float64 {
	if f < 0 {
		return 0
	}
	return f
}
