package domain

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// MinutesPerDay is the exclusive upper bound of a clock reading in minutes.
const MinutesPerDay = 24 * 60

// TimeFormat identifies which textual family a time range was written in.
type TimeFormat int

const (
	FormatNone TimeFormat = iota
	Format12HourMinutes
	Format12HourHourOnly
	Format24Hour
)

func (f TimeFormat) String() string {
	switch f {
	case Format12HourMinutes:
		return "12h-minutes"
	case Format12HourHourOnly:
		return "12h-hour-only"
	case Format24Hour:
		return "24h"
	default:
		return "none"
	}
}

// TimeWindow is an open/close pair in minutes since local midnight.
type TimeWindow struct {
	Open   int
	Close  int
	Format TimeFormat
}

// Overnight reports whether the window closes after midnight (close earlier than open).
func (w TimeWindow) Overnight() bool {
	return w.Close < w.Open
}

// Contains reports whether minutes falls inside [Open, Close). A window with Open == Close is never open.
func (w TimeWindow) Contains(minutes int) bool {
	if w.Overnight() {
		return minutes >= w.Open || minutes < w.Close
	}
	return minutes >= w.Open && minutes < w.Close
}

func (w TimeWindow) String() string {
	return fmt.Sprintf("%02d:%02d-%02d:%02d", w.Open/60, w.Open%60, w.Close/60, w.Close%60)
}

var (
	twelveHourWithMinutes    = regexp.MustCompile(`(?i)(\d+):(\d+)\s*([ap]m)\s*[-–]\s*(\d+):(\d+)\s*([ap]m)`)
	twelveHourWithoutMinutes = regexp.MustCompile(`(?i)(\d+|noon)\s*([ap]m)?\s*[-–]\s*(\d+|noon)\s*([ap]m)`)
	twentyFourHour           = regexp.MustCompile(`(\d+):(\d+)\s*[-–]\s*(\d+):(\d+)`)
)

// timeRangeParsers run in this exact order. The hour-only pattern would misread
// "9:00 AM - 5:00 PM" style text if it ran before the with-minutes pattern.
var timeRangeParsers = []func(string) (TimeWindow, bool){
	parse12HourWithMinutes,
	parse12HourWithoutMinutes,
	parse24Hour,
}

// ParseTimeRange reads one "open - close" candidate. The first format that matches wins;
// false means the text is unparsable and should be skipped.
func ParseTimeRange(text string) (TimeWindow, bool) {
	for _, parse := range timeRangeParsers {
		if window, ok := parse(text); ok {
			return window, true
		}
	}
	return TimeWindow{}, false
}

func parse12HourWithMinutes(text string) (TimeWindow, bool) {
	m := twelveHourWithMinutes.FindStringSubmatch(text)
	if m == nil {
		return TimeWindow{}, false
	}
	open, ok := clock12(m[1], m[2], m[3])
	if !ok {
		return TimeWindow{}, false
	}
	close, ok := clock12(m[4], m[5], m[6])
	if !ok {
		return TimeWindow{}, false
	}
	return TimeWindow{Open: open, Close: close, Format: Format12HourMinutes}, true
}

func parse12HourWithoutMinutes(text string) (TimeWindow, bool) {
	m := twelveHourWithoutMinutes.FindStringSubmatch(text)
	if m == nil {
		return TimeWindow{}, false
	}
	open, ok := hour12(m[1], m[2])
	if !ok {
		return TimeWindow{}, false
	}
	close, ok := hour12(m[3], m[4])
	if !ok {
		return TimeWindow{}, false
	}
	return TimeWindow{Open: open, Close: close, Format: Format12HourHourOnly}, true
}

func parse24Hour(text string) (TimeWindow, bool) {
	m := twentyFourHour.FindStringSubmatch(text)
	if m == nil {
		return TimeWindow{}, false
	}
	open, ok := clock24(m[1], m[2], false)
	if !ok {
		return TimeWindow{}, false
	}
	close, ok := clock24(m[3], m[4], true)
	if !ok {
		return TimeWindow{}, false
	}
	return TimeWindow{Open: open, Close: close, Format: Format24Hour}, true
}

// hour12 converts an hour-only token. "Noon" is always 12:00 regardless of meridiem;
// a missing meridiem defaults to AM.
func hour12(hour, meridiem string) (int, bool) {
	if strings.EqualFold(hour, "noon") {
		return 12 * 60, true
	}
	if meridiem == "" {
		meridiem = "AM"
	}
	return clock12(hour, "0", meridiem)
}

func clock12(hourText, minuteText, meridiem string) (int, bool) {
	hour, err := strconv.Atoi(hourText)
	if err != nil || hour < 1 || hour > 12 {
		return 0, false
	}
	minute, err := strconv.Atoi(minuteText)
	if err != nil || minute < 0 || minute > 59 {
		return 0, false
	}
	pm := strings.EqualFold(meridiem, "pm")
	switch {
	case hour == 12 && !pm:
		hour = 0
	case hour != 12 && pm:
		hour += 12
	}
	return hour*60 + minute, true
}

// clock24 converts HH:MM. "24:00" is accepted as a closing time meaning end of day.
func clock24(hourText, minuteText string, closing bool) (int, bool) {
	hour, err := strconv.Atoi(hourText)
	if err != nil {
		return 0, false
	}
	minute, err := strconv.Atoi(minuteText)
	if err != nil {
		return 0, false
	}
	if closing && hour == 24 && minute == 0 {
		return MinutesPerDay, true
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, false
	}
	return hour*60 + minute, true
}
