package vatsim_client

import (
	"math"
	"strconv"
	"strings"
)

// hoursExtractor reads one field variant and reports whether it was present.
type hoursExtractor func(map[string]interface{}) (float64, bool)

// Tried in order, the first present key wins. The stats API has used several shapes.
var (
	pilotHoursExtractors = []hoursExtractor{
		keyExtractor("pilot"),
		keyExtractor("pilot_hours"),
		keyExtractor("pilotHours"),
	}

	controllerHoursExtractors = []hoursExtractor{
		keyExtractor("atc"),
		keyExtractor("atc_hours"),
		keyExtractor("controller_hours"),
	}
)

// keyExtractor treats a JSON null like a missing key.
func keyExtractor(key string) hoursExtractor {
	return func(data map[string]interface{}) (float64, bool) {
		value, ok := data[key]
		if !ok || value == nil {
			return 0, false
		}
		return toHours(value), true
	}
}

func extractHours(data map[string]interface{}, extractors []hoursExtractor) float64 {
	for _, extract := range extractors {
		if hours, ok := extract(data); ok {
			return hours
		}
	}
	return 0
}

func toHours(value interface{}) float64 {
	switch v := value.(type) {
	case float64:
		return finite(v)
	case string:
		return parseLeadingFloat(v)
	case bool:
		if v {
			return 1
		}
		return 0
	default:
		return 0
	}
}

func finite(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// Only plain decimal notation reaches strconv, it would also take "NaN", "Inf" and hex floats.
func isDecimal(s string) bool {
	return s != "" && strings.Trim(s, "0123456789.eE+-") == ""
}

// parseLeadingFloat reads the numeric prefix of s, "12.5h" gives 12.5.
func parseLeadingFloat(s string) float64 {
	s = strings.TrimSpace(s)
	if isDecimal(s) {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return finite(f)
		}
	}

	end := 0
	seenDot, seenDigit := false, false
scan:
	for i, r := range s {
		switch {
		case r >= '0' && r <= '9':
			seenDigit = true
			end = i + 1
		case r == '.' && !seenDot:
			seenDot = true
		case (r == '-' || r == '+') && i == 0:
		default:
			break scan
		}
	}

	if !seenDigit {
		return 0
	}

	f, err := strconv.ParseFloat(s[:end], 64)
	if err != nil {
		return 0
	}
	return f
}
