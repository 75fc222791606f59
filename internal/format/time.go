package format

import (
	"fmt"
	"strings"
	"time"

	"github.com/manubot/manubot/internal/config"
)

// Layout holds the Go time layouts used when listing runs.
type Layout struct {
	Date      string
	DateShort string
	Clock     string
	ClockFull string
}

// LayoutFor resolves display_date / display_time style values to Go layouts.
// Presets are dd/mm/yyyy, mm/dd/yyyy, yyyy-mm-dd and 12h/24h; any other date
// value is taken as a Go layout.
func LayoutFor(displayDate, displayTime string) Layout {
	var l Layout

	switch displayDate {
	case "mm/dd/yyyy":
		l.Date, l.DateShort = "01/02/2006", "01/02"
	case "yyyy-mm-dd":
		l.Date, l.DateShort = "2006-01-02", "01-02"
	case "dd/mm/yyyy":
		l.Date, l.DateShort = "02/01/2006", "02/01"
	case "":
		l.Date, l.DateShort = "Jan 02", "Jan 02"
	default:
		l.Date, l.DateShort = displayDate, stripYear(displayDate)
	}

	if displayTime == "12h" {
		l.Clock, l.ClockFull = "3:04 PM", "3:04:05 PM"
	} else {
		l.Clock, l.ClockFull = "15:04", "15:04:05"
	}

	return l
}

// Configured returns the layout selected by the user's rc file.
func Configured() Layout {
	displayDate, _ := config.Get("display_date")
	displayTime, _ := config.Get("display_time")
	return LayoutFor(displayDate, displayTime)
}

func stripYear(layout string) string {
	short := layout
	for _, year := range []string{"2006", "/06", "-06", " 06"} {
		short = strings.ReplaceAll(short, year, "")
	}
	short = strings.Trim(strings.TrimSpace(short), "/-,")
	if short == "" {
		return "Jan 02"
	}
	return short
}

// DateTime formats t as date and clock time.
func (l Layout) DateTime(t time.Time) string {
	return t.Format(l.Date) + " " + t.Format(l.Clock)
}

// DateTimeShort formats t without the year.
func (l Layout) DateTimeShort(t time.Time) string {
	return t.Format(l.DateShort) + " " + t.Format(l.Clock)
}

// Full formats t with seconds.
func (l Layout) Full(t time.Time) string {
	return t.Format(l.Date) + " " + t.Format(l.ClockFull)
}

// DateTime formats t with the configured layout.
func DateTime(t time.Time) string {
	return Configured().DateTime(t)
}

// Full formats t with the configured layout, including seconds.
func Full(t time.Time) string {
	return Configured().Full(t)
}

// Duration renders a run duration compactly: 850ms, 4.2s, 3m05s.
func Duration(d time.Duration) string {
	switch {
	case d < 0:
		return "0ms"
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	case d < time.Minute:
		return fmt.Sprintf("%.1fs", d.Seconds())
	default:
		d = d.Round(time.Second)
		return fmt.Sprintf("%dm%02ds", int(d.Minutes()), int(d.Seconds())%60)
	}
}

// Ago renders how long before now t happened, e.g. "5m ago".
func Ago(t, now time.Time) string {
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
}
