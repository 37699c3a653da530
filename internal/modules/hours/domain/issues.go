package domain

import (
	"fmt"
	"strings"
)

// IssueKind names a problem found while linting a schedule.
type IssueKind string

const (
	IssueUnknownDays     IssueKind = "unknown_days"
	IssueUnparsableHours IssueKind = "unparsable_hours"
)

// ScheduleIssue describes an entry that will never produce an open window as written.
type ScheduleIssue struct {
	Kind IssueKind `json:"kind"`
	Days string    `json:"days"`
	Text string    `json:"text,omitempty"`
	Hint string    `json:"hint,omitempty"`
}

// Issues lists entries the evaluator silently skips, so staff can fix them when saving.
// Evaluation is unaffected.
func (p ParsedSchedule) Issues() []ScheduleIssue {
	var issues []ScheduleIssue
	for _, entry := range p.Entries {
		if !entry.Days.CoversAny() {
			issues = append(issues, ScheduleIssue{
				Kind: IssueUnknownDays,
				Days: entry.Days.Raw,
				Hint: dayHint(entry.Days.Raw),
			})
		}
		for _, text := range entry.Unparsable {
			issues = append(issues, ScheduleIssue{
				Kind: IssueUnparsableHours,
				Days: entry.Days.Raw,
				Text: text,
				Hint: `use "9:00 AM - 5:00 PM", "9 AM - 5 PM" or "09:00 - 17:00"`,
			})
		}
	}
	return issues
}

func dayHint(raw string) string {
	normalized := strings.ReplaceAll(raw, enDash, "-")
	sep := ","
	if strings.Contains(normalized, "-") {
		sep = "-"
	}
	parts := strings.Split(normalized, sep)
	suggested := make([]string, 0, len(parts))
	for _, part := range parts {
		day := NormalizeDay(part)
		if day == "" {
			return "day names must be full english weekdays such as Monday or Monday-Friday"
		}
		suggested = append(suggested, string(day))
	}
	if sep == "," {
		return fmt.Sprintf("did you mean %q?", strings.Join(suggested, ", "))
	}
	return fmt.Sprintf("did you mean %q?", strings.Join(suggested, "-"))
}
