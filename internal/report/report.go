// Package report renders an allocated day for people and programs.
package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/roach88/workday/internal/workday"
)

// JSON writes day as indented JSON followed by a newline.
func JSON(w io.Writer, day workday.DayAtWork) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(day)
}

// Text writes day as an aligned table: a header with the date and total,
// then one line per activity with effort, account and description.
//
// Styling follows the capabilities of w; plain writers get plain text.
func Text(w io.Writer, day workday.DayAtWork) error {
	r := lipgloss.NewRenderer(w)
	header := r.NewStyle().Bold(true)
	effort := r.NewStyle().Width(7).Align(lipgloss.Right)
	account := r.NewStyle().Bold(true).Width(accountWidth(day))
	description := r.NewStyle().Faint(true)

	if _, err := fmt.Fprintln(w, header.Render(fmt.Sprintf("%s  total %.2f", day.Date, day.TotalEffort))); err != nil {
		return err
	}
	if len(day.Activities) == 0 {
		_, err := fmt.Fprintln(w, "  no responsibilities apply")
		return err
	}

	for _, a := range day.Activities {
		if _, err := fmt.Fprintf(w, "%s  %s  %s\n",
			effort.Render(fmt.Sprintf("%.2f", a.AbsoluteEffort)),
			account.Render(a.Account),
			description.Render(a.Description),
		); err != nil {
			return err
		}
	}
	return nil
}

func accountWidth(day workday.DayAtWork) int {
	width := 0
	for _, a := range day.Activities {
		width = max(width, lipgloss.Width(a.Account))
	}
	return width
}
