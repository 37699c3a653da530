package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ScheduleEntry is one day-range key and its free-text hours value.
type ScheduleEntry struct {
	Days  string `json:"days"`
	Hours string `json:"hours"`
}

// WeeklySchedule keeps staff-authored entries in the order they were written. A nil schedule means
// the pantry has no hours on record; an empty non-nil schedule means hours were recorded as "{}".
type WeeklySchedule []ScheduleEntry

// ScheduleFromPairs builds a schedule from alternating day-range and hours arguments. A trailing
// unpaired argument is ignored.
func ScheduleFromPairs(pairs ...string) WeeklySchedule {
	schedule := make(WeeklySchedule, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		schedule = append(schedule, ScheduleEntry{Days: pairs[i], Hours: pairs[i+1]})
	}
	return schedule
}

// Lookup returns the hours text stored under an exact day-range key.
func (s WeeklySchedule) Lookup(days string) (string, bool) {
	for _, entry := range s {
		if entry.Days == days {
			return entry.Hours, true
		}
	}
	return "", false
}

// MarshalJSON writes the schedule as a JSON object preserving entry order.
func (s WeeklySchedule) MarshalJSON() ([]byte, error) {
	if s == nil {
		return []byte("null"), nil
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, entry := range s {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(entry.Days)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(entry.Hours)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON accepts any JSON value. Objects become entries in document order and non-string
// values are dropped; anything other than an object leaves the schedule absent. A repeated key keeps
// its first position and takes its last value, as a JSON object would.
func (s *WeeklySchedule) UnmarshalJSON(data []byte) error {
	decoder := json.NewDecoder(bytes.NewReader(data))
	token, err := decoder.Token()
	if err != nil {
		return fmt.Errorf("decode schedule: %w", err)
	}
	if delim, ok := token.(json.Delim); !ok || delim != '{' {
		*s = nil
		return nil
	}

	var keys []string
	values := make(map[string]json.RawMessage)
	for decoder.More() {
		keyToken, err := decoder.Token()
		if err != nil {
			return fmt.Errorf("decode schedule key: %w", err)
		}
		key, _ := keyToken.(string)

		var raw json.RawMessage
		if err := decoder.Decode(&raw); err != nil {
			return fmt.Errorf("decode schedule value for %q: %w", key, err)
		}
		if _, seen := values[key]; !seen {
			keys = append(keys, key)
		}
		values[key] = raw
	}

	schedule := WeeklySchedule{}
	for _, key := range keys {
		var hours string
		if err := json.Unmarshal(values[key], &hours); err != nil {
			continue
		}
		schedule = append(schedule, ScheduleEntry{Days: key, Hours: hours})
	}
	*s = schedule
	return nil
}
