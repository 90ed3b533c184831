// Package export renders projector output into downloadable documents.
// Rendering is fully in-memory against already-loaded events: a failed
// render returns an error and no bytes, never a partial document.
package export

import (
	"bytes"
	"fmt"
	"sort"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/abhaypanjeta/TimeDesk/internal/model"
	"github.com/abhaypanjeta/TimeDesk/internal/schedule"
)

const (
	maxCellEvents = 4
	maxTitleRunes = 15
)

// priority indicator colors, matching the web UI
func priorityColor(p model.Priority) (r, g, b int) {
	switch p {
	case model.PriorityHigh:
		return 239, 68, 68 // red
	case model.PriorityMedium:
		return 249, 115, 22 // orange
	default:
		return 59, 130, 246 // blue
	}
}

func truncateTitle(s string) string {
	runes := []rune(s)
	if len(runes) <= maxTitleRunes {
		return s
	}
	return string(runes[:maxTitleRunes]) + "..."
}

// displayTime renders an "HH:MM" value as 12-hour, "-" when absent.
func displayTime(s string) string {
	if s == "" {
		return "-"
	}
	tod, err := schedule.ParseTimeOfDay(s)
	if err != nil {
		return "-"
	}
	return tod.Clock12()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// MonthFilename is e.g. "Schedule_2025_03.pdf".
func MonthFilename(anchor schedule.CalendarDate) string {
	return fmt.Sprintf("Schedule_%04d_%02d.pdf", anchor.Year, int(anchor.Month))
}

// DayFilename is e.g. "Daily_Schedule_2025-03-14.pdf".
func DayFilename(day schedule.CalendarDate) string {
	return fmt.Sprintf("Daily_Schedule_%s.pdf", day)
}

// MonthPDF renders the month of anchor as a landscape A4 document: page
// one is the 6x7 calendar grid, page two a detail table of the month's
// events sorted by stored instant.
func MonthPDF(events []model.Event, zone string, anchor schedule.CalendarDate) ([]byte, error) {
	grid, err := schedule.MonthGrid(events, zone, anchor)
	if err != nil {
		return nil, err
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.AddPage()
	pageW, pageH := pdf.GetPageSize()

	// header band
	pdf.SetFillColor(243, 244, 246)
	pdf.Rect(0, 0, pageW, 25, "F")
	pdf.SetFont("Helvetica", "B", 22)
	pdf.SetTextColor(17, 24, 39)
	pdf.Text(14, 16, fmt.Sprintf("%s %d", anchor.Month, anchor.Year))
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(107, 114, 128)
	generated := fmt.Sprintf("Generated on %s", time.Now().Format("January 2, 2006"))
	pdf.Text(pageW-14-pdf.GetStringWidth(generated), 16, generated)

	const margin = 14.0
	const gridTop = 35.0
	gridH := pageH - margin - gridTop
	gridW := pageW - 2*margin
	cellW := gridW / schedule.GridCols
	cellH := gridH / schedule.GridRows

	// weekday header
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetTextColor(100, 100, 100)
	for i, day := range []string{"SUNDAY", "MONDAY", "TUESDAY", "WEDNESDAY", "THURSDAY", "FRIDAY", "SATURDAY"} {
		x := margin + float64(i)*cellW
		pdf.Text(x+cellW/2-pdf.GetStringWidth(day)/2, gridTop-3, day)
	}

	pdf.SetDrawColor(229, 231, 235)
	pdf.SetLineWidth(0.1)
	pdf.SetFont("Helvetica", "", 10)

	for row := 0; row < schedule.GridRows; row++ {
		for col := 0; col < schedule.GridCols; col++ {
			cell := grid[row][col]
			x := margin + float64(col)*cellW
			y := gridTop + float64(row)*cellH
			pdf.Rect(x, y, cellW, cellH, "D")

			if cell.InMonth {
				pdf.SetTextColor(0, 0, 0)
			} else {
				pdf.SetTextColor(180, 180, 180)
			}
			pdf.SetFont("Helvetica", "", 10)
			pdf.Text(x+2, y+5, fmt.Sprintf("%d", cell.Day.Day))

			eventY := y + 10
			shown := cell.Events
			if len(shown) > maxCellEvents {
				shown = shown[:maxCellEvents]
			}
			for _, ev := range shown {
				r, g, b := priorityColor(ev.Priority)
				pdf.SetFillColor(r, g, b)
				pdf.Rect(x+1, eventY-2.5, 2, 2, "F")

				pdf.SetFont("Helvetica", "", 7)
				pdf.SetTextColor(50, 50, 50)
				pdf.Text(x+4, eventY, truncateTitle(ev.Title))
				eventY += 4
			}
			if extra := len(cell.Events) - maxCellEvents; extra > 0 {
				pdf.SetFont("Helvetica", "", 6)
				pdf.SetTextColor(100, 100, 100)
				pdf.Text(x+4, eventY, fmt.Sprintf("+ %d more", extra))
			}
		}
	}

	monthDetailPage(pdf, grid)
	return output(pdf)
}

// monthDetailPage lists every in-month event, instant ascending.
func monthDetailPage(pdf *fpdf.Fpdf, grid [schedule.GridRows][schedule.GridCols]schedule.Cell) {
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetTextColor(0, 0, 0)
	pdf.Text(14, 20, "Event Details")

	type entry struct {
		day schedule.CalendarDate
		ev  model.Event
	}
	var entries []entry
	for row := range grid {
		for col := range grid[row] {
			cell := grid[row][col]
			if !cell.InMonth {
				continue
			}
			for _, ev := range cell.Events {
				entries = append(entries, entry{day: cell.Day, ev: ev})
			}
		}
	}
	// stored instant ascending, wall-clock time as tiebreak
	sort.SliceStable(entries, func(i, j int) bool {
		if !entries[i].ev.Date.Equal(entries[j].ev.Date) {
			return entries[i].ev.Date.Before(entries[j].ev.Date)
		}
		return entries[i].ev.Time < entries[j].ev.Time
	})

	var rows [][]string
	for _, e := range entries {
		rows = append(rows, []string{
			fmt.Sprintf("%s %02d", e.day.Month.String()[:3], e.day.Day),
			orDash(e.ev.Time),
			e.ev.Title,
			orDash(e.ev.Category),
			string(e.ev.Priority),
			orDash(e.ev.Description),
		})
	}

	widths := []float64{25, 20, 50, 30, 25, 115}
	header := []string{"Date", "Time", "Title", "Category", "Priority", "Description"}

	pdf.SetXY(14, 30)
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(37, 99, 235)
	pdf.SetTextColor(255, 255, 255)
	for i, h := range header {
		pdf.CellFormat(widths[i], 8, h, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(30, 30, 30)
	for _, r := range rows {
		pdf.SetX(14)
		for i, v := range r {
			if i == 2 {
				pdf.SetFont("Helvetica", "B", 9)
			} else {
				pdf.SetFont("Helvetica", "", 9)
			}
			pdf.CellFormat(widths[i], 7, v, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}
}

// DayPDF renders one day's time-sorted bucket as a portrait table.
func DayPDF(events []model.Event, zone string, day schedule.CalendarDate) ([]byte, error) {
	bucket, err := schedule.DailyBucket(events, zone, day, schedule.SortByTime)
	if err != nil {
		return nil, err
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.SetTextColor(0, 0, 0)
	title := fmt.Sprintf("Daily Schedule - %s %d, %d", day.Month, day.Day, day.Year)
	pdf.Text(14, 22, title)

	widths := []float64{25, 72, 30, 25, 30}
	header := []string{"Time", "Task", "Category", "Priority", "Status"}

	pdf.SetXY(14, 30)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(66, 133, 244)
	pdf.SetTextColor(255, 255, 255)
	for i, h := range header {
		pdf.CellFormat(widths[i], 8, h, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(30, 30, 30)
	for _, ev := range bucket {
		status := "Pending"
		if ev.Completed {
			status = "Completed"
		}
		row := []string{displayTime(ev.Time), ev.Title, orDash(ev.Category), string(ev.Priority), status}
		pdf.SetX(14)
		for i, v := range row {
			pdf.CellFormat(widths[i], 7, v, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	return output(pdf)
}

func output(pdf *fpdf.Fpdf) ([]byte, error) {
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
