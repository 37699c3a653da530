package domain

import "strings"

// DayOfWeek is a canonical english weekday name as pantry staff write it in schedules.
type DayOfWeek string

const (
	Sunday    DayOfWeek = "Sunday"
	Monday    DayOfWeek = "Monday"
	Tuesday   DayOfWeek = "Tuesday"
	Wednesday DayOfWeek = "Wednesday"
	Thursday  DayOfWeek = "Thursday"
	Friday    DayOfWeek = "Friday"
	Saturday  DayOfWeek = "Saturday"
)

// Week holds the canonical weekdays indexed like time.Weekday (Sunday = 0).
var Week = [7]DayOfWeek{Sunday, Monday, Tuesday, Wednesday, Thursday, Friday, Saturday}

var lenientDays = map[string]DayOfWeek{
	"sun": Sunday, "sunday": Sunday,
	"mon": Monday, "monday": Monday,
	"tue": Tuesday, "tues": Tuesday, "tuesday": Tuesday,
	"wed": Wednesday, "wednesday": Wednesday,
	"thu": Thursday, "thur": Thursday, "thurs": Thursday, "thursday": Thursday,
	"fri": Friday, "friday": Friday,
	"sat": Saturday, "saturday": Saturday,
}

// DayIndex returns the position of name in Week or -1 when name is not an exact canonical weekday.
func DayIndex(name string) int {
	for i, day := range Week {
		if string(day) == name {
			return i
		}
	}
	return -1
}

// DayAt returns the weekday stored at index.
func DayAt(index int) (DayOfWeek, bool) {
	if index < 0 || index >= len(Week) {
		return "", false
	}
	return Week[index], true
}

// NormalizeDay maps loose spellings ("mon", " TUESDAY ") to a canonical weekday. It is only used to
// suggest corrections; evaluation itself matches canonical names exactly.
func NormalizeDay(raw string) DayOfWeek {
	key := strings.ToLower(strings.Trim(strings.TrimSpace(raw), "."))
	return lenientDays[key]
}
