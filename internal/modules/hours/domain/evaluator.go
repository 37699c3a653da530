package domain

import (
	"strings"
	"time"
)

const (
	// HoursNotAvailable is shown when a pantry has no schedule on record.
	HoursNotAvailable = "Hours not available"
	// ClosedToday is shown when a schedule exists but no entry covers the current weekday.
	ClosedToday = "Closed today"
)

var closedSentinels = map[string]struct{}{
	"closed":              {},
	"by appointment only": {},
	"appointment only":    {},
}

// IsClosedSentinel reports whether an hours value means "no open window" rather than a time range.
func IsClosedSentinel(hours string) bool {
	_, ok := closedSentinels[strings.ToLower(strings.TrimSpace(hours))]
	return ok
}

// Instant is the local weekday and clock reading an evaluation runs against.
type Instant struct {
	Day     int
	Minutes int
}

// InstantOf reads the weekday and minutes since midnight of t in t's own location.
func InstantOf(t time.Time) Instant {
	return Instant{Day: int(t.Weekday()), Minutes: t.Hour()*60 + t.Minute()}
}

// ParsedEntry is a schedule entry after its key and value have been parsed once.
type ParsedEntry struct {
	Days       DayRangeSpec
	Hours      string
	Closed     bool
	Windows    []TimeWindow
	Unparsable []string
}

// OpenAt reports whether the entry covers the instant's weekday and one of its windows contains it.
func (e ParsedEntry) OpenAt(at Instant) bool {
	if e.Closed || !e.Days.Covers(at.Day) {
		return false
	}
	for _, window := range e.Windows {
		if window.Contains(at.Minutes) {
			return true
		}
	}
	return false
}

// ParsedSchedule is the typed form of a WeeklySchedule. Present is false when no schedule was recorded,
// which lets callers tell "no hours" apart from "hours that never parse" while both evaluate as closed.
type ParsedSchedule struct {
	Entries []ParsedEntry
	Present bool
}

// ParseSchedule parses every entry of schedule. It never fails.
func ParseSchedule(schedule WeeklySchedule) ParsedSchedule {
	if schedule == nil {
		return ParsedSchedule{}
	}
	parsed := ParsedSchedule{Present: true, Entries: make([]ParsedEntry, 0, len(schedule))}
	for _, entry := range schedule {
		parsed.Entries = append(parsed.Entries, parseEntry(entry))
	}
	return parsed
}

func parseEntry(entry ScheduleEntry) ParsedEntry {
	parsed := ParsedEntry{Days: ParseDayRange(entry.Days), Hours: entry.Hours}
	if IsClosedSentinel(entry.Hours) {
		parsed.Closed = true
		return parsed
	}
	for _, candidate := range strings.Split(entry.Hours, ",") {
		candidate = strings.TrimSpace(candidate)
		if candidate == "" {
			continue
		}
		window, ok := ParseTimeRange(candidate)
		if !ok {
			parsed.Unparsable = append(parsed.Unparsable, candidate)
			continue
		}
		parsed.Windows = append(parsed.Windows, window)
	}
	return parsed
}

// OpenAt reports whether any entry is open at the instant.
func (p ParsedSchedule) OpenAt(at Instant) bool {
	for _, entry := range p.Entries {
		if entry.OpenAt(at) {
			return true
		}
	}
	return false
}

// HoursFor returns the raw hours text of the first entry covering the instant's weekday.
func (p ParsedSchedule) HoursFor(at Instant) string {
	if !p.Present {
		return HoursNotAvailable
	}
	for _, entry := range p.Entries {
		if entry.Days.Covers(at.Day) {
			return entry.Hours
		}
	}
	return ClosedToday
}

// IsOpen reports whether the pantry is open at now, read in now's location. An absent or malformed
// schedule is closed.
func IsOpen(schedule WeeklySchedule, now time.Time) bool {
	return ParseSchedule(schedule).OpenAt(InstantOf(now))
}

// TodayHours returns the display text for now's weekday: the first covering entry's raw hours,
// ClosedToday when nothing covers the day, or HoursNotAvailable when there is no schedule.
func TodayHours(schedule WeeklySchedule, now time.Time) string {
	return ParseSchedule(schedule).HoursFor(InstantOf(now))
}

// Describe renders the whole schedule as "Days: Hours" pairs in entry order.
func Describe(schedule WeeklySchedule) string {
	if len(schedule) == 0 {
		return HoursNotAvailable
	}
	parts := make([]string, 0, len(schedule))
	for _, entry := range schedule {
		parts = append(parts, entry.Days+": "+entry.Hours)
	}
	return strings.Join(parts, ", ")
}

// Status is the badge shown next to a pantry.
type Status struct {
	Open       bool   `json:"isOpen"`
	TodayHours string `json:"todayHours"`
	Label      string `json:"label"`
}

// StatusAt evaluates the schedule once and builds the "Open · hours" / "Closed · hours" label.
func StatusAt(schedule WeeklySchedule, now time.Time) Status {
	parsed := ParseSchedule(schedule)
	at := InstantOf(now)
	status := Status{Open: parsed.OpenAt(at), TodayHours: parsed.HoursFor(at)}
	prefix := "Closed"
	if status.Open {
		prefix = "Open"
	}
	status.Label = prefix + " · " + status.TodayHours
	return status
}
