package curseforge

import (
	"regexp"
	"time"
)

// datePrefix decides whether a string is treated as a date. Only the prefix is
// checked; fractions and zone suffixes are left to the parser.
var datePrefix = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}`)

// zoneless is used for timestamps the API sends without an offset. They are read as UTC.
const zoneless = "2006-01-02T15:04:05.999999999"

// upgradeDates walks a decoded JSON value and replaces every date-shaped string
// with a time.Time. Maps and slices are rewritten in place and v itself is
// returned. Every string is inspected, whether or not the target type declares
// it as a date.
func upgradeDates(v any) any {
	switch node := v.(type) {
	case map[string]any:
		for key, value := range node {
			node[key] = upgradeValue(value)
		}
	case []any:
		for i, value := range node {
			node[i] = upgradeValue(value)
		}
	}
	return v
}

func upgradeValue(v any) any {
	if s, ok := v.(string); ok {
		if t, ok := parseDate(s); ok {
			return t
		}
		return s
	}
	return upgradeDates(v)
}

// parseDate reports false for strings that are not date-shaped or that fail to
// parse; those stay strings.
func parseDate(s string) (time.Time, bool) {
	if !datePrefix.MatchString(s) {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, true
	}
	if t, err := time.ParseInLocation(zoneless, s, time.UTC); err == nil {
		return t, true
	}
	return time.Time{}, false
}
