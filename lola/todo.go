package lola

import (
	"fmt"
	"io"
	"strings"
	"time"
)

// dayNames maps weekdays onto the bilingual tag used on date lines.
var dayNames = map[time.Weekday]string{
	time.Monday:    "Monday; Segunda",
	time.Tuesday:   "Tuesday; Terça",
	time.Wednesday: "Wednesday; Quarta",
	time.Thursday:  "Thursday; Quinta",
	time.Friday:    "Friday; Sexta",
	time.Saturday:  "Saturday; Sábado",
	time.Sunday:    "Sunday; Domingo",
}

// placeholderTasks close every day block.
var placeholderTasks = []string{
	"> [ ] <Project : Task> Placeholder.",
	"> [ ] <Project : Task> Placeholder.",
	"> [ ] <Project : Task> Placeholder.",
	"> [ ] <Project : Task> Placeholder.",
	"> [ ] <Project : Task> Placeholder.",
	"> [ ] <Project : Task> Placeholder.",
	"> [ ] <Project : Task> Placeholder.",
	"> [ ] <Project : Task> Placeholder.",
	"> [ ] <Organization : Email> Delete & Archive at least 100 emails.",
}

// weekSeparatorWidth is the dashed line written after each Sunday.
const weekSeparatorWidth = 147

// Inputs are the recurring entries merged into each day block.
type Inputs struct {
	// Meetings and Appointments key on the weekday.
	Meetings     map[time.Weekday][]string
	Appointments map[time.Weekday][]string
	// Birthdays key on "DD.MM".
	Birthdays map[string][]string
	// Bills key on the day of month "DD".
	Bills map[string][]string
}

// ParseDate accepts "DD.MM.YYYY" or "YYYY-MM-DD".
func ParseDate(s string) (time.Time, error) {
	for _, layout := range []string{"02.01.2006", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("lola: unrecognized date %q, use DD.MM.YYYY or YYYY-MM-DD", s)
}

// Generate writes one todo block per day in [start, end] to w.
func Generate(w io.Writer, startStr, endStr string, rules []Rule, in Inputs) error {
	start, err := ParseDate(startStr)
	if err != nil {
		return err
	}
	end, err := ParseDate(endStr)
	if err != nil {
		return err
	}
	if end.Before(start) {
		return fmt.Errorf("lola: end date must be the same as or after the start date")
	}

	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		if err := writeDay(w, day, rules, in); err != nil {
			return err
		}
	}
	return nil
}

func writeDay(w io.Writer, day time.Time, rules []Rule, in Inputs) error {
	dateLine := fmt.Sprintf("%s - %s (%s)",
		day.Format("02.01.2006"), day.Format("02/01/2006"), dayNames[day.Weekday()])
	if tags := TagsFor(day, rules); len(tags) > 0 {
		dateLine += " " + strings.Join(tags, " ")
	}

	var b strings.Builder
	b.WriteString("```C\n")
	b.WriteString(dateLine + "\n")
	b.WriteString(strings.Repeat("=", len(dateLine)) + "\n")

	sections := [][]string{
		in.Meetings[day.Weekday()],
		in.Appointments[day.Weekday()],
		in.Birthdays[day.Format("02.01")],
		in.Bills[day.Format("02")],
	}
	for i, lines := range sections {
		for _, line := range lines {
			b.WriteString(line + "\n")
		}
		if i < len(sections)-1 {
			b.WriteString("---\n")
		}
	}

	b.WriteString("```\n")
	for _, task := range placeholderTasks {
		b.WriteString(task + "\n")
	}
	b.WriteString("\n")
	if day.Weekday() == time.Sunday {
		b.WriteString(strings.Repeat("-", weekSeparatorWidth) + "\n\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// Mondays writes every Monday in [start, end] as "MM/YYYY: DD" lines,
// with a blank line between months and a "---" separator between years.
func Mondays(w io.Writer, startStr, endStr string) error {
	start, err := ParseDate(startStr)
	if err != nil {
		return err
	}
	end, err := ParseDate(endStr)
	if err != nil {
		return err
	}

	for start.Weekday() != time.Monday {
		start = start.AddDate(0, 0, 1)
	}
	if start.After(end) {
		return nil
	}

	curYear, curMonth := start.Year(), start.Month()
	for day := start; !day.After(end); day = day.AddDate(0, 0, 7) {
		if day.Year() != curYear {
			if _, err := io.WriteString(w, "\n---\n\n"); err != nil {
				return err
			}
			curYear, curMonth = day.Year(), day.Month()
		} else if day.Month() != curMonth {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
			curMonth = day.Month()
		}
		if _, err := fmt.Fprintf(w, "%02d/%d: %02d\n", int(day.Month()), day.Year(), day.Day()); err != nil {
			return err
		}
	}
	return nil
}
