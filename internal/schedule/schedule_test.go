package schedule

import (
	"testing"

	"github.com/shoplane/shoplane-backend/pkg/types"
)

func TestDefaultWeekShape(t *testing.T) {
	week := DefaultWeek()
	if len(week) != 7 {
		t.Fatalf("expected 7 entries, got %d", len(week))
	}
	if week[0].Day != "Sunday" || week[0].IsOpen {
		t.Fatalf("expected closed Sunday first, got %+v", week[0])
	}
	if week[1].OpenTime != "09:00" || week[1].CloseTime != "18:00" || !week[1].IsOpen {
		t.Fatalf("unexpected Monday defaults %+v", week[1])
	}
	if week[6].OpenTime != "10:00" || week[6].CloseTime != "16:00" {
		t.Fatalf("unexpected Saturday defaults %+v", week[6])
	}
}

func TestValidTime(t *testing.T) {
	for _, ok := range []string{"00:00", "09:30", "23:59"} {
		if !ValidTime(ok) {
			t.Fatalf("%q should be valid", ok)
		}
	}
	for _, bad := range []string{"24:00", "9:30", "12:60", "noon", ""} {
		if ValidTime(bad) {
			t.Fatalf("%q should be invalid", bad)
		}
	}
}

func TestSetOpenTimeDoesNotMutateInput(t *testing.T) {
	week := DefaultWeek()
	out, err := SetOpenTime(week, "Monday", "08:00")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out[1].OpenTime != "08:00" {
		t.Fatalf("expected updated Monday, got %+v", out[1])
	}
	if week[1].OpenTime != "09:00" {
		t.Fatal("input schedule was mutated")
	}
}

func TestSetCloseTimeRejectsInvalid(t *testing.T) {
	if _, err := SetCloseTime(DefaultWeek(), "Monday", "25:00"); err == nil {
		t.Fatal("expected invalid time error")
	}
}

func TestSetDayOpenUnknownDay(t *testing.T) {
	if _, err := SetDayOpen(DefaultWeek(), "Funday", true); err == nil {
		t.Fatal("expected unknown day error")
	}
}

func TestCopyToKeepsDayLabels(t *testing.T) {
	week := DefaultWeek()
	out, err := CopyTo(week, "Saturday")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i, entry := range out {
		if entry.Day != DayNames[i] {
			t.Fatalf("day label changed at %d: %q", i, entry.Day)
		}
		if entry.OpenTime != "10:00" || entry.CloseTime != "16:00" || !entry.IsOpen {
			t.Fatalf("hours not copied to %s: %+v", entry.Day, entry)
		}
	}
}

func TestBulkSetReordersToCanonicalWeek(t *testing.T) {
	entries := types.WeekSchedule{}
	for i := 6; i >= 0; i-- {
		entries = append(entries, types.DayHours{
			Day: DayNames[i], OpenTime: "08:00", CloseTime: "20:00", IsOpen: true,
		})
	}

	out, err := BulkSet(entries)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, entry := range out {
		if entry.Day != DayNames[i] {
			t.Fatalf("expected canonical order, got %q at %d", entry.Day, i)
		}
	}
}

func TestBulkSetRejectsBadInput(t *testing.T) {
	if _, err := BulkSet(DefaultWeek()[:6]); err == nil {
		t.Fatal("expected length error")
	}

	dup := DefaultWeek()
	dup[0].Day = "Monday"
	if _, err := BulkSet(dup); err == nil {
		t.Fatal("expected duplicate day error")
	}

	badTime := DefaultWeek()
	badTime[2].OpenTime = "9:00"
	if _, err := BulkSet(badTime); err == nil {
		t.Fatal("expected invalid time error")
	}
}

func TestNormalizeFillsMissingDays(t *testing.T) {
	partial := types.WeekSchedule{
		{Day: "Monday", OpenTime: "07:00", CloseTime: "12:00", IsOpen: true},
	}

	out := Normalize(partial)
	if len(out) != 7 {
		t.Fatalf("expected 7 entries, got %d", len(out))
	}
	if out[1].OpenTime != "07:00" {
		t.Fatalf("kept entry lost: %+v", out[1])
	}
	if out[0].Day != "Sunday" || out[0].IsOpen {
		t.Fatalf("missing Sunday should default closed, got %+v", out[0])
	}
}
