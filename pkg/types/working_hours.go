package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// DayHours is one weekday entry of a shop's working-hours schedule.
// Times are opaque wall-clock "HH:MM" strings; they are interpreted
// against the shop's stored timezone only when computing open status.
type DayHours struct {
	Day       string `json:"day"`
	OpenTime  string `json:"open_time"`
	CloseTime string `json:"close_time"`
	IsOpen    bool   `json:"is_open"`
}

// WeekSchedule is the ordered 7-entry working-hours list, stored as jsonb.
type WeekSchedule []DayHours

// Value marshals the schedule into its jsonb representation.
func (w WeekSchedule) Value() (driver.Value, error) {
	if w == nil {
		return nil, nil
	}
	return json.Marshal(w)
}

// Scan decodes the jsonb column back into the slice.
func (w *WeekSchedule) Scan(value interface{}) error {
	if value == nil {
		*w = nil
		return nil
	}
	raw, ok := toBytes(value)
	if !ok {
		return fmt.Errorf("working hours: unsupported scan type %T", value)
	}
	return json.Unmarshal(raw, w)
}
