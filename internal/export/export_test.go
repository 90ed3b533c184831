package export

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/abhaypanjeta/TimeDesk/internal/model"
	"github.com/abhaypanjeta/TimeDesk/internal/schedule"
)

func testEvent(t *testing.T, title, date, zone, tod string) model.Event {
	t.Helper()
	d, err := schedule.ParseCalendarDate(date)
	if err != nil {
		t.Fatalf("parse %s: %v", date, err)
	}
	instant, err := schedule.EncodeDate(d, zone)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	return model.Event{
		ID:       title,
		Title:    title,
		Category: "Work",
		Priority: model.PriorityMedium,
		Date:     instant,
		Time:     tod,
	}
}

func TestTruncateTitle(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"short", "short"},
		{"exactly15chars!", "exactly15chars!"},
		{"a very long event title", "a very long eve..."},
	}
	for _, tt := range tests {
		if got := truncateTitle(tt.in); got != tt.want {
			t.Errorf("%q: got %q", tt.in, got)
		}
	}
}

func TestDisplayTime(t *testing.T) {
	if got := displayTime(""); got != "-" {
		t.Errorf("empty: %q", got)
	}
	if got := displayTime("14:30"); got != "2:30 PM" {
		t.Errorf("14:30: %q", got)
	}
}

func TestFilenames(t *testing.T) {
	anchor := schedule.CalendarDate{Year: 2025, Month: time.March, Day: 14}
	if got := MonthFilename(anchor); got != "Schedule_2025_03.pdf" {
		t.Errorf("month: %s", got)
	}
	if got := DayFilename(anchor); got != "Daily_Schedule_2025-03-14.pdf" {
		t.Errorf("day: %s", got)
	}
}

func TestMonthPDF(t *testing.T) {
	const zone = "America/New_York"
	events := []model.Event{
		testEvent(t, "standup with the whole team", "2025-03-03", zone, "09:00"),
		testEvent(t, "dentist", "2025-03-14", zone, ""),
	}
	anchor := schedule.CalendarDate{Year: 2025, Month: time.March, Day: 1}

	out, err := MonthPDF(events, zone, anchor)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF")) {
		t.Error("output is not a PDF")
	}
}

func TestMonthPDFUnknownZone(t *testing.T) {
	anchor := schedule.CalendarDate{Year: 2025, Month: time.March, Day: 1}
	out, err := MonthPDF(nil, "Nope/Nowhere", anchor)
	if !errors.Is(err, schedule.ErrUnknownTimezone) {
		t.Fatalf("expected ErrUnknownTimezone, got %v", err)
	}
	if out != nil {
		t.Error("bytes returned alongside error")
	}
}

func TestDayPDF(t *testing.T) {
	const zone = "UTC"
	day := schedule.CalendarDate{Year: 2025, Month: time.March, Day: 14}
	events := []model.Event{
		testEvent(t, "late", "2025-03-14", zone, "16:00"),
		testEvent(t, "early", "2025-03-14", zone, "08:00"),
		testEvent(t, "other-day", "2025-03-15", zone, "08:00"),
	}

	out, err := DayPDF(events, zone, day)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF")) {
		t.Error("output is not a PDF")
	}
}

func TestICal(t *testing.T) {
	const zone = "America/Los_Angeles"
	events := []model.Event{
		testEvent(t, "timed meeting", "2025-03-14", zone, "10:30"),
		testEvent(t, "all day errand", "2025-03-15", zone, ""),
	}

	feed, err := ICal(events, zone)
	if err != nil {
		t.Fatalf("ical: %v", err)
	}
	for _, want := range []string{
		"BEGIN:VCALENDAR",
		"SUMMARY:timed meeting",
		"SUMMARY:all day errand",
		"END:VCALENDAR",
	} {
		if !strings.Contains(feed, want) {
			t.Errorf("feed missing %q", want)
		}
	}
}

func TestICalUnknownZone(t *testing.T) {
	if _, err := ICal(nil, "Nope/Nowhere"); !errors.Is(err, schedule.ErrUnknownTimezone) {
		t.Fatalf("expected ErrUnknownTimezone, got %v", err)
	}
}
