package booking

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"washbook/models"
)

const (
	// SlotMinutes is the spacing between bookable start times.
	SlotMinutes = 30

	DateLayout  = "2006-01-02"
	TimeLayout  = "15:04"
	MonthLayout = "2006-01"
)

// defaultHours applies when a vendor has no row for the weekday.
var defaultHours = models.DayHours{Open: "09:00", Close: "17:00"}

// DayAvailability is one calendar cell.
type DayAvailability struct {
	Date      string `json:"date"`
	Available bool   `json:"available"`
}

// HoursFor looks up the vendor's hours for the weekday of date.
func HoursFor(date time.Time, hours models.OperatingHours) models.DayHours {
	day := strings.ToLower(date.Weekday().String())
	if h, ok := hours[day]; ok {
		return h
	}
	return defaultHours
}

// IsAvailable reports whether date can be picked in the calendar. It only
// checks the closed sentinel and does not enumerate slots.
func IsAvailable(date time.Time, hours models.OperatingHours) bool {
	return !HoursFor(date, hours).IsClosed()
}

// Slots derives the bookable start times for date. The close time is
// exclusive. Unparseable hours yield no slots.
func Slots(date time.Time, hours models.OperatingHours) []string {
	h := HoursFor(date, hours)
	if h.IsClosed() {
		return []string{}
	}

	var openMin, closeMin int
	if h.IsAllDay() {
		openMin, closeMin = 0, 24*60
	} else {
		var ok bool
		if openMin, ok = parseClock(h.Open); !ok {
			return []string{}
		}
		if closeMin, ok = parseClock(h.Close); !ok {
			return []string{}
		}
	}

	slots := make([]string, 0, max(0, (closeMin-openMin)/SlotMinutes+1))
	for t := firstBoundary(openMin); t < closeMin; t += SlotMinutes {
		slots = append(slots, formatClock(t))
	}
	return slots
}

// HasSlot reports whether clock is one of the derived slots for date.
func HasSlot(date time.Time, hours models.OperatingHours, clock string) bool {
	for _, s := range Slots(date, hours) {
		if s == clock {
			return true
		}
	}
	return false
}

// MonthAvailability marks every day of the month containing month.
func MonthAvailability(month time.Time, hours models.OperatingHours) []DayAvailability {
	first := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, time.UTC)
	days := make([]DayAvailability, 0, 31)
	for d := first; d.Month() == first.Month(); d = d.AddDate(0, 0, 1) {
		days = append(days, DayAvailability{
			Date:      d.Format(DateLayout),
			Available: IsAvailable(d, hours),
		})
	}
	return days
}

// ParseDate parses a YYYY-MM-DD calendar date as a wall-clock date.
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return d, nil
}

// CombineDateTime joins a calendar date and an HH:MM slot. The result is the
// vendor's wall-clock time carried in a UTC value; no zone conversion happens.
func CombineDateTime(date, clock string) (time.Time, error) {
	d, err := ParseDate(date)
	if err != nil {
		return time.Time{}, err
	}
	minutes, ok := parseClock(clock)
	if !ok {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTime, clock)
	}
	return d.Add(time.Duration(minutes) * time.Minute), nil
}

// parseClock converts "HH:MM" (or "HH") to minutes since midnight. Valid
// values run from 00:00 to 23:59, plus 24:00 as an end-of-day close.
func parseClock(s string) (int, bool) {
	hourPart, minutePart, hasMinutes := strings.Cut(strings.TrimSpace(s), ":")
	hour, err := strconv.Atoi(hourPart)
	if err != nil || hour < 0 || hour > 24 {
		return 0, false
	}
	minute := 0
	if hasMinutes && minutePart != "" {
		minute, err = strconv.Atoi(minutePart)
		if err != nil || minute < 0 || minute > 59 {
			return 0, false
		}
	}
	if hour == 24 && minute != 0 {
		return 0, false
	}
	return hour*60 + minute, true
}

// firstBoundary rounds up to the next slot boundary.
func firstBoundary(minutes int) int {
	if rem := minutes % SlotMinutes; rem != 0 {
		return minutes + SlotMinutes - rem
	}
	return minutes
}

func formatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}
