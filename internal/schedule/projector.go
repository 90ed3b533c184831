package schedule

import (
	"sort"

	"github.com/abhaypanjeta/TimeDesk/internal/model"
)

// SortKey selects the ordering of a daily bucket.
type SortKey string

const (
	SortByTime     SortKey = "time"
	SortByPriority SortKey = "priority"
)

// grid dimensions: 6 weeks of 7 days, always.
const (
	GridRows = 6
	GridCols = 7
)

// Cell is one day of a month grid.
type Cell struct {
	Day     CalendarDate
	InMonth bool
	Events  []model.Event
}

// timeLess orders "HH:MM" strings ascending with empty times last.
// Lexical comparison is chronological for the fixed HH:MM format.
func timeLess(a, b string) bool {
	if a == "" {
		return false
	}
	if b == "" {
		return true
	}
	return a < b
}

// DailyBucket returns the events whose stored instant falls on day when
// viewed in zone, ordered by key. Input is not mutated.
func DailyBucket(events []model.Event, zone string, day CalendarDate, key SortKey) ([]model.Event, error) {
	loc, err := LoadZone(zone)
	if err != nil {
		return nil, err
	}

	bucket := make([]model.Event, 0)
	for _, ev := range events {
		local := ev.Date.In(loc)
		if local.Year() == day.Year && local.Month() == day.Month && local.Day() == day.Day {
			bucket = append(bucket, ev)
		}
	}
	sortBucket(bucket, key)
	return bucket, nil
}

func sortBucket(bucket []model.Event, key SortKey) {
	sort.SliceStable(bucket, func(i, j int) bool {
		a, b := bucket[i], bucket[j]
		if key == SortByPriority && a.Priority.Weight() != b.Priority.Weight() {
			return a.Priority.Weight() > b.Priority.Weight()
		}
		if a.Time != b.Time {
			return timeLess(a.Time, b.Time)
		}
		return false
	})
}

// MonthGrid projects events onto the 6x7 calendar grid for the month of
// anchor: it begins on the Sunday on or before the 1st and always spans 42
// cells, so trailing days of the previous month and leading days of the
// next appear (flagged InMonth=false) with their events intact.
func MonthGrid(events []model.Event, zone string, anchor CalendarDate) ([GridRows][GridCols]Cell, error) {
	var grid [GridRows][GridCols]Cell

	loc, err := LoadZone(zone)
	if err != nil {
		return grid, err
	}

	first := CalendarDate{Year: anchor.Year, Month: anchor.Month, Day: 1}
	start := first.AddDays(-int(first.Weekday()))

	// one decode per event, then constant-time cell lookup
	byDay := make(map[CalendarDate][]model.Event)
	for _, ev := range events {
		local := ev.Date.In(loc)
		d := CalendarDate{Year: local.Year(), Month: local.Month(), Day: local.Day()}
		byDay[d] = append(byDay[d], ev)
	}

	day := start
	for row := 0; row < GridRows; row++ {
		for col := 0; col < GridCols; col++ {
			cell := Cell{
				Day:     day,
				InMonth: day.Year == anchor.Year && day.Month == anchor.Month,
				Events:  byDay[day],
			}
			sortBucket(cell.Events, SortByTime)
			grid[row][col] = cell
			day = day.AddDays(1)
		}
	}
	return grid, nil
}

// DashboardOrder sorts a copy of events for the dashboard list: incomplete
// before completed, then by stored instant ascending, then by time of day
// ascending with untimed events last. The sort is stable.
func DashboardOrder(events []model.Event) []model.Event {
	out := make([]model.Event, len(events))
	copy(out, events)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Completed != b.Completed {
			return !a.Completed
		}
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		if a.Time != b.Time {
			return timeLess(a.Time, b.Time)
		}
		return false
	})
	return out
}
