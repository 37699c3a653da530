package domain

import "strings"

// DayRangeKind classifies a schedule key.
type DayRangeKind int

const (
	// DayRangeUnknown is a hyphenated key whose ends are not canonical weekdays. It covers no day.
	DayRangeUnknown DayRangeKind = iota
	// DayRangeSpan is "StartDay-EndDay", possibly wrapping past Saturday.
	DayRangeSpan
	// DayRangeList is a single weekday or a free-form list matched by substring.
	DayRangeList
)

const enDash = "–"

// DayRangeSpec is the parsed form of a day-range key.
type DayRangeSpec struct {
	Raw   string
	Kind  DayRangeKind
	Start int
	End   int
}

// ParseDayRange classifies key. It never fails: unrecognised spans become DayRangeUnknown.
func ParseDayRange(key string) DayRangeSpec {
	spec := DayRangeSpec{Raw: key, Start: -1, End: -1}
	normalized := strings.ReplaceAll(key, enDash, "-")
	if !strings.Contains(normalized, "-") {
		spec.Kind = DayRangeList
		return spec
	}

	parts := strings.Split(normalized, "-")
	start := DayIndex(strings.TrimSpace(parts[0]))
	end := DayIndex(strings.TrimSpace(parts[1]))
	if start < 0 || end < 0 {
		spec.Kind = DayRangeUnknown
		return spec
	}
	spec.Kind = DayRangeSpan
	spec.Start = start
	spec.End = end
	return spec
}

// Covers reports whether the weekday at index day (0 = Sunday) is part of the range.
func (s DayRangeSpec) Covers(day int) bool {
	switch s.Kind {
	case DayRangeSpan:
		if s.Start <= s.End {
			return day >= s.Start && day <= s.End
		}
		return day >= s.Start || day <= s.End
	case DayRangeList:
		name, ok := DayAt(day)
		if !ok {
			return false
		}
		// Substring containment on the raw key, not a tokenised list.
		return strings.Contains(s.Raw, string(name))
	default:
		return false
	}
}

// WrapsWeek reports whether a span crosses the Saturday/Sunday boundary (e.g. Friday-Monday).
func (s DayRangeSpec) WrapsWeek() bool {
	return s.Kind == DayRangeSpan && s.Start > s.End
}

// CoversAny reports whether at least one weekday falls in the range.
func (s DayRangeSpec) CoversAny() bool {
	for day := range Week {
		if s.Covers(day) {
			return true
		}
	}
	return false
}
