// Package lola generates dated todo lists. Each day in a range gets a
// fenced header block (meetings, appointments, birthdays, bills) and a
// fixed set of task placeholders; holiday rules annotate the date line.
package lola

import (
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// HolidayType classifies what kind of day a rule marks.
type HolidayType string

const (
	PublicHoliday    HolidayType = "public_holiday"
	PublicObservance HolidayType = "public_observance"
	Holiday          HolidayType = "holiday"
	Institute        HolidayType = "institute"
	Conference       HolidayType = "conference"
	Other            HolidayType = "other"
)

// RuleKind selects how a rule is matched against a date.
type RuleKind string

const (
	// SingleAnnual matches the same month/day every year.
	SingleAnnual RuleKind = "single_annual"
	// SingleAbsolute matches one exact date.
	SingleAbsolute RuleKind = "single_absolute"
	// RangeAnnual matches a month/day window every year; the window may
	// cross the year boundary (e.g. Dec 21 through Jan 5).
	RangeAnnual RuleKind = "range_annual"
	// RangeAbsolute matches an inclusive window of exact dates.
	RangeAbsolute RuleKind = "range_absolute"
)

// Rule labels a date or date period.
type Rule struct {
	Kind  RuleKind
	Label string
	Type  HolidayType

	// SingleAnnual.
	Month, Day int
	// SingleAbsolute.
	Date time.Time
	// RangeAnnual.
	StartMonth, StartDay int
	EndMonth, EndDay     int
	// RangeAbsolute.
	Start, End time.Time
}

// Matches reports whether the rule applies to d (date precision).
func (r Rule) Matches(d time.Time) bool {
	switch r.Kind {
	case SingleAnnual:
		return int(d.Month()) == r.Month && d.Day() == r.Day

	case SingleAbsolute:
		return sameDate(d, r.Date)

	case RangeAnnual:
		start := time.Date(d.Year(), time.Month(r.StartMonth), r.StartDay, 0, 0, 0, 0, d.Location())
		var end time.Time
		if r.EndMonth > r.StartMonth || (r.EndMonth == r.StartMonth && r.EndDay >= r.StartDay) {
			end = time.Date(d.Year(), time.Month(r.EndMonth), r.EndDay, 0, 0, 0, 0, d.Location())
		} else {
			// Window crosses the year boundary.
			end = time.Date(d.Year()+1, time.Month(r.EndMonth), r.EndDay, 0, 0, 0, 0, d.Location())
			if d.Before(start) {
				start = time.Date(d.Year()-1, time.Month(r.StartMonth), r.StartDay, 0, 0, 0, 0, d.Location())
				end = time.Date(d.Year(), time.Month(r.EndMonth), r.EndDay, 0, 0, 0, 0, d.Location())
			}
		}
		day := truncateDate(d)
		return !day.Before(start) && !day.After(end)

	case RangeAbsolute:
		day := truncateDate(d)
		return !day.Before(truncateDate(r.Start)) && !day.After(truncateDate(r.End))
	}
	return false
}

// Tag renders the annotation appended to a date line.
func (r Rule) Tag() string {
	switch r.Type {
	case PublicHoliday:
		return "[PublicHoliday()]"
	case PublicObservance:
		return "[Observance()]"
	case Holiday:
		return "[Holiday()]"
	case Institute:
		return "[Institute()]"
	case Conference:
		return "[Conference()]"
	}
	return "[Other()]"
}

// TagsFor collects the tags of every rule matching d.
func TagsFor(d time.Time, rules []Rule) []string {
	var tags []string
	for _, r := range rules {
		if r.Matches(d) {
			tags = append(tags, r.Tag())
		}
	}
	return tags
}

// LabelsFor collects the labels of every rule matching d.
func LabelsFor(d time.Time, rules []Rule) []string {
	var labels []string
	for _, r := range rules {
		if r.Matches(d) {
			labels = append(labels, r.Label)
		}
	}
	return labels
}

// ruleSpec is the TOML shape of one rule. Dates accept the same formats
// as ParseDate.
type ruleSpec struct {
	Kind       string `toml:"kind"`
	Label      string `toml:"label"`
	Type       string `toml:"type"`
	Month      int    `toml:"month"`
	Day        int    `toml:"day"`
	Date       string `toml:"date"`
	StartMonth int    `toml:"start_month"`
	StartDay   int    `toml:"start_day"`
	EndMonth   int    `toml:"end_month"`
	EndDay     int    `toml:"end_day"`
	Start      string `toml:"start"`
	End        string `toml:"end"`
}

type rulesFile struct {
	Rules []ruleSpec `toml:"rules"`
}

// LoadRules reads holiday rules from a TOML file.
func LoadRules(path string) ([]Rule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("lola: read rules: %w", err)
	}
	var rf rulesFile
	if err := toml.Unmarshal(data, &rf); err != nil {
		return nil, fmt.Errorf("lola: parse rules %s: %w", path, err)
	}

	rules := make([]Rule, 0, len(rf.Rules))
	for i, spec := range rf.Rules {
		r, err := compileRule(spec)
		if err != nil {
			return nil, fmt.Errorf("lola: rule %d (%q): %w", i+1, spec.Label, err)
		}
		rules = append(rules, r)
	}
	return rules, nil
}

func compileRule(spec ruleSpec) (Rule, error) {
	r := Rule{Kind: RuleKind(spec.Kind), Label: spec.Label, Type: HolidayType(spec.Type)}
	if spec.Type == "" {
		r.Type = Other
	}
	switch r.Type {
	case PublicHoliday, PublicObservance, Holiday, Institute, Conference, Other:
	default:
		return Rule{}, fmt.Errorf("unknown holiday type %q", spec.Type)
	}

	var err error
	switch r.Kind {
	case SingleAnnual:
		if spec.Month < 1 || spec.Month > 12 || spec.Day < 1 || spec.Day > 31 {
			return Rule{}, fmt.Errorf("single_annual needs month and day")
		}
		r.Month, r.Day = spec.Month, spec.Day
	case SingleAbsolute:
		if r.Date, err = ParseDate(spec.Date); err != nil {
			return Rule{}, err
		}
	case RangeAnnual:
		if spec.StartMonth < 1 || spec.EndMonth < 1 || spec.StartDay < 1 || spec.EndDay < 1 {
			return Rule{}, fmt.Errorf("range_annual needs start_month/start_day/end_month/end_day")
		}
		r.StartMonth, r.StartDay = spec.StartMonth, spec.StartDay
		r.EndMonth, r.EndDay = spec.EndMonth, spec.EndDay
	case RangeAbsolute:
		if r.Start, err = ParseDate(spec.Start); err != nil {
			return Rule{}, err
		}
		if r.End, err = ParseDate(spec.End); err != nil {
			return Rule{}, err
		}
		if r.End.Before(r.Start) {
			return Rule{}, fmt.Errorf("range end before start")
		}
	default:
		return Rule{}, fmt.Errorf("unknown rule kind %q", spec.Kind)
	}
	return r, nil
}

func sameDate(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

func truncateDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
