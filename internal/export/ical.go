package export

import (
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"

	"github.com/abhaypanjeta/TimeDesk/internal/model"
	"github.com/abhaypanjeta/TimeDesk/internal/schedule"
)

// ICalFilename for a user's full schedule feed.
const ICalFilename = "timedesk.ics"

// ICal serializes all events as an iCalendar feed. Timed events start at
// their wall-clock time in the active zone and run an hour; untimed events
// become all-day entries on their decoded calendar day.
func ICal(events []model.Event, zone string) (string, error) {
	loc, err := schedule.LoadZone(zone)
	if err != nil {
		return "", err
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//TimeDesk//Schedule//EN")

	for _, ev := range events {
		day, err := schedule.DecodeDate(ev.Date, zone)
		if err != nil {
			return "", err
		}

		ve := cal.AddEvent(fmt.Sprintf("%s@timedesk", ev.ID))
		ve.SetDtStampTime(time.Now().UTC())
		ve.SetSummary(ev.Title)
		if ev.Description != "" {
			ve.SetDescription(ev.Description)
		}
		if ev.Category != "" {
			ve.SetProperty(ics.ComponentPropertyCategories, ev.Category)
		}
		if ev.Completed {
			ve.SetStatus(ics.ObjectStatusCompleted)
		}

		if ev.Time == "" {
			start, err := schedule.EncodeDate(day, zone)
			if err != nil {
				return "", err
			}
			ve.SetAllDayStartAt(start.In(loc))
			ve.SetAllDayEndAt(start.In(loc).AddDate(0, 0, 1))
			continue
		}

		tod, err := schedule.ParseTimeOfDay(ev.Time)
		if err != nil {
			return "", fmt.Errorf("event %s: %w", ev.ID, err)
		}
		start := time.Date(day.Year, day.Month, day.Day, tod.Hour, tod.Minute, 0, 0, loc)
		ve.SetStartAt(start)
		ve.SetEndAt(start.Add(time.Hour))
	}

	return cal.Serialize(), nil
}
