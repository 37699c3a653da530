package usecase

import (
	"fmt"
	"strings"
	"time"

	hours "pantryHub/internal/modules/hours/domain"
	"pantryHub/internal/modules/pantries/application/port"
	"pantryHub/internal/modules/pantries/domain"
)

// EvaluateHoursInput is an ad-hoc schedule staff want to preview before saving.
type EvaluateHoursInput struct {
	Hours    hours.WeeklySchedule `json:"hours"`
	At       *time.Time           `json:"at"`
	Timezone string               `json:"timezone"`
}

// EntryPreview shows how one schedule entry was understood.
type EntryPreview struct {
	Days       string            `json:"days"`
	Hours      string            `json:"hours"`
	Closed     bool              `json:"closed"`
	Windows    []string          `json:"windows"`
	CoversDays []hours.DayOfWeek `json:"coversDays"`
	Unparsable []string          `json:"unparsable,omitempty"`
}

// EvaluateHoursOutput is the evaluation of an ad-hoc schedule.
type EvaluateHoursOutput struct {
	EvaluatedAt time.Time             `json:"evaluatedAt"`
	Status      hours.Status          `json:"status"`
	Display     string                `json:"display"`
	Entries     []EntryPreview        `json:"entries"`
	Issues      []hours.ScheduleIssue `json:"issues,omitempty"`
}

// EvaluateHoursUseCase runs the hours evaluator on a schedule that is not stored yet.
type EvaluateHoursUseCase struct {
	Clock    port.Clock
	Location *time.Location
}

func NewEvaluateHoursUseCase(clock port.Clock, loc *time.Location) *EvaluateHoursUseCase {
	return &EvaluateHoursUseCase{Clock: clock, Location: loc}
}

func (uc *EvaluateHoursUseCase) Execute(input EvaluateHoursInput) (*EvaluateHoursOutput, error) {
	loc := uc.Location
	if name := strings.TrimSpace(input.Timezone); name != "" {
		resolved, err := time.LoadLocation(name)
		if err != nil {
			return nil, fmt.Errorf("%w: unknown timezone %q", domain.ErrInvalidPantry, name)
		}
		loc = resolved
	}
	if loc == nil {
		loc = time.UTC
	}
	at := uc.Clock()
	if input.At != nil {
		at = *input.At
	}
	at = at.In(loc)

	parsed := hours.ParseSchedule(input.Hours)
	entries := make([]EntryPreview, 0, len(parsed.Entries))
	for _, entry := range parsed.Entries {
		preview := EntryPreview{
			Days:       entry.Days.Raw,
			Hours:      entry.Hours,
			Closed:     entry.Closed,
			Windows:    make([]string, 0, len(entry.Windows)),
			CoversDays: []hours.DayOfWeek{},
			Unparsable: entry.Unparsable,
		}
		for _, window := range entry.Windows {
			preview.Windows = append(preview.Windows, window.String())
		}
		for index, day := range hours.Week {
			if entry.Days.Covers(index) {
				preview.CoversDays = append(preview.CoversDays, day)
			}
		}
		entries = append(entries, preview)
	}

	return &EvaluateHoursOutput{
		EvaluatedAt: at,
		Status:      hours.StatusAt(input.Hours, at),
		Display:     hours.Describe(input.Hours),
		Entries:     entries,
		Issues:      parsed.Issues(),
	}, nil
}
