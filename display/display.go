// Package display renders memos for the terminal.
package display

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/kjk/memo/memo"
)

const (
	ColorTitle = "#10B981" // green - day headers, success
	ColorError = "#EF4444" // red - errors
	ColorMuted = "#6B7280" // gray - ids, times, hints
)

type Styles struct {
	Title lipgloss.Style
	Muted lipgloss.Style
	Error lipgloss.Style
}

// NewStyles creates styles for output rendered by r.
// Colors are dropped when r's output is not a terminal.
func NewStyles(r *lipgloss.Renderer) *Styles {
	return &Styles{
		Title: r.NewStyle().Foreground(lipgloss.Color(ColorTitle)).Bold(true),
		Muted: r.NewStyle().Foreground(lipgloss.Color(ColorMuted)).Faint(true),
		Error: r.NewStyle().Foreground(lipgloss.Color(ColorError)),
	}
}

// StylesFor returns styles for output written to w
func StylesFor(w io.Writer) *Styles {
	return NewStyles(lipgloss.NewRenderer(w))
}

// Plain writes memos in the data file format
func Plain(w io.Writer, entries []*memo.Entry) error {
	for _, e := range entries {
		if _, err := io.WriteString(w, e.Line()); err != nil {
			return err
		}
	}
	return nil
}

// YYYYMMDD
func dayKey(t time.Time) int {
	return t.Year()*10000 + int(t.Month())*100 + t.Day()
}

// Grouped writes memos grouped by the day they were created:
//
//	2001-01-01 Monday
//	  1 01:01:01 one
//	  2 01:02:00 two
func Grouped(w io.Writer, st *Styles, entries []*memo.Entry) error {
	if len(entries) == 0 {
		_, err := fmt.Fprintln(w, st.Muted.Render("No memos."))
		return err
	}
	idWidth := 1
	for _, e := range entries {
		idWidth = max(idWidth, len(strconv.FormatUint(uint64(e.ID), 10)))
	}

	prevDay := -1
	for _, e := range entries {
		t := e.CreatedAt
		if day := dayKey(t); day != prevDay {
			hdr := st.Title.Render(t.Format("2006-01-02 Monday"))
			if _, err := fmt.Fprintln(w, hdr); err != nil {
				return err
			}
			prevDay = day
		}
		id := st.Muted.Render(fmt.Sprintf("%*d", idWidth, e.ID))
		tm := st.Muted.Render(t.Format("15:04:05"))
		if _, err := fmt.Fprintf(w, "  %s %s %s\n", id, tm, e.Text); err != nil {
			return err
		}
	}
	return nil
}

// ErrorLine formats "<what>: <err>" with what highlighted as error
func ErrorLine(st *Styles, what string, err error) string {
	return st.Error.Render(what+":") + " " + err.Error()
}
