package lola

import (
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

var (
	dayMonthKeyRe = regexp.MustCompile(`^\d{2}\.\d{2}$`)
	dayKeyRe      = regexp.MustCompile(`^\d{2}$`)
)

var weekdayNames = map[string]time.Weekday{
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
	"sunday":    time.Sunday,
}

// inputsFile is the TOML layout: weekday-keyed tables for recurring
// entries, "DD.MM" keys for birthdays, "DD" keys for bills.
type inputsFile struct {
	Meetings     map[string][]string `toml:"meetings"`
	Appointments map[string][]string `toml:"appointments"`
	Birthdays    map[string][]string `toml:"birthdays"`
	Bills        map[string][]string `toml:"bills"`
}

// LoadInputs reads the recurring-entry tables from a TOML file.
func LoadInputs(path string) (Inputs, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Inputs{}, fmt.Errorf("read inputs %s: %w", path, err)
	}

	var parsed inputsFile
	if err := toml.Unmarshal(data, &parsed); err != nil {
		return Inputs{}, fmt.Errorf("parse inputs %s: %w", path, err)
	}

	in := Inputs{
		Meetings:     map[time.Weekday][]string{},
		Appointments: map[time.Weekday][]string{},
		Birthdays:    map[string][]string{},
		Bills:        map[string][]string{},
	}

	for name, entries := range parsed.Meetings {
		wd, err := parseWeekday(name)
		if err != nil {
			return Inputs{}, fmt.Errorf("inputs %s: meetings: %w", path, err)
		}
		in.Meetings[wd] = entries
	}
	for name, entries := range parsed.Appointments {
		wd, err := parseWeekday(name)
		if err != nil {
			return Inputs{}, fmt.Errorf("inputs %s: appointments: %w", path, err)
		}
		in.Appointments[wd] = entries
	}
	for key, entries := range parsed.Birthdays {
		if !dayMonthKeyRe.MatchString(key) {
			return Inputs{}, fmt.Errorf("inputs %s: birthday key %q is not DD.MM", path, key)
		}
		in.Birthdays[key] = entries
	}
	for key, entries := range parsed.Bills {
		if !dayKeyRe.MatchString(key) {
			return Inputs{}, fmt.Errorf("inputs %s: bill key %q is not DD", path, key)
		}
		in.Bills[key] = entries
	}
	return in, nil
}

func parseWeekday(name string) (time.Weekday, error) {
	wd, ok := weekdayNames[strings.ToLower(name)]
	if !ok {
		return 0, fmt.Errorf("unknown weekday %q", name)
	}
	return wd, nil
}
