package lola

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestParseDate(t *testing.T) {
	cases := []struct {
		in   string
		want time.Time
	}{
		{"25.12.2025", date(2025, time.December, 25)},
		{"2025-12-25", date(2025, time.December, 25)},
	}
	for _, tc := range cases {
		got, err := ParseDate(tc.in)
		if err != nil {
			t.Fatalf("ParseDate(%q): %v", tc.in, err)
		}
		if !got.Equal(tc.want) {
			t.Fatalf("ParseDate(%q) = %v; want %v", tc.in, got, tc.want)
		}
	}
	if _, err := ParseDate("12/25/2025"); err == nil {
		t.Fatalf("slash format must be rejected")
	}
}

func TestRuleMatches(t *testing.T) {
	annual := Rule{Kind: SingleAnnual, Label: "Christmas", Type: PublicHoliday, Month: 12, Day: 25}
	absolute := Rule{Kind: SingleAbsolute, Label: "Good Friday", Type: PublicHoliday, Date: date(2026, time.April, 3)}
	recess := Rule{Kind: RangeAnnual, Label: "Recess", Type: Institute,
		StartMonth: 12, StartDay: 21, EndMonth: 1, EndDay: 5}
	conf := Rule{Kind: RangeAbsolute, Label: "Conference", Type: Conference,
		Start: date(2026, time.March, 10), End: date(2026, time.March, 12)}

	cases := []struct {
		name string
		rule Rule
		d    time.Time
		want bool
	}{
		{"annual this year", annual, date(2025, time.December, 25), true},
		{"annual next year", annual, date(2026, time.December, 25), true},
		{"annual wrong day", annual, date(2026, time.December, 24), false},
		{"absolute hit", absolute, date(2026, time.April, 3), true},
		{"absolute other year", absolute, date(2027, time.April, 3), false},
		{"crossing range before new year", recess, date(2026, time.December, 25), true},
		{"crossing range after new year", recess, date(2026, time.January, 3), true},
		{"crossing range outside", recess, date(2026, time.February, 1), false},
		{"absolute range start", conf, date(2026, time.March, 10), true},
		{"absolute range end", conf, date(2026, time.March, 12), true},
		{"absolute range after", conf, date(2026, time.March, 13), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.rule.Matches(tc.d); got != tc.want {
				t.Fatalf("Matches(%v) = %v; want %v", tc.d, got, tc.want)
			}
		})
	}
}

func TestLoadRules(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.toml")
	content := `
[[rules]]
kind = "single_annual"
label = "Christmas Day"
type = "public_holiday"
month = 12
day = 25

[[rules]]
kind = "range_absolute"
label = "Recess"
type = "holiday"
start = "2026-01-01"
end = "11.01.2026"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	rules, err := LoadRules(path)
	if err != nil {
		t.Fatalf("LoadRules: %v", err)
	}
	if len(rules) != 2 {
		t.Fatalf("rules = %d; want 2", len(rules))
	}
	if !rules[0].Matches(date(2030, time.December, 25)) {
		t.Fatalf("annual rule must match every year")
	}
	if !rules[1].Matches(date(2026, time.January, 11)) {
		t.Fatalf("absolute range must include its end date")
	}
	if got := rules[1].Tag(); got != "[Holiday()]" {
		t.Fatalf("Tag = %q", got)
	}
}

func TestLoadRulesRejectsUnknownKind(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.toml")
	content := `
[[rules]]
kind = "lunar"
label = "Eclipse"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadRules(path); err == nil || !strings.Contains(err.Error(), "unknown rule kind") {
		t.Fatalf("unknown kind must error, got %v", err)
	}
}

func TestGenerate(t *testing.T) {
	rules := []Rule{
		{Kind: SingleAnnual, Label: "New Year's Eve", Type: PublicObservance, Month: 12, Day: 31},
	}
	in := Inputs{
		Meetings: map[time.Weekday][]string{
			time.Wednesday: {`> [ ] "Weekly sync" (13:30 - 15:00)`},
		},
		Birthdays: map[string][]string{
			"31.12": {`> [ ] Birthday("Ada") - Send happy birthday!`},
		},
		Bills: map[string][]string{
			"31": {`> [ ] Payment("Rent") - Due Bill!`},
		},
	}

	// 28.12.2025 is a Sunday, 31.12.2025 a Wednesday.
	var buf bytes.Buffer
	if err := Generate(&buf, "28.12.2025", "31.12.2025", rules, in); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	out := buf.String()

	if !strings.Contains(out, "31.12.2025 - 31/12/2025 (Wednesday; Quarta) [Observance()]") {
		t.Fatalf("missing annotated date line:\n%s", out)
	}
	if !strings.Contains(out, `> [ ] "Weekly sync" (13:30 - 15:00)`) {
		t.Fatalf("missing meeting line:\n%s", out)
	}
	if !strings.Contains(out, `> [ ] Birthday("Ada")`) || !strings.Contains(out, `> [ ] Payment("Rent")`) {
		t.Fatalf("missing birthday or bill line:\n%s", out)
	}
	if !strings.Contains(out, strings.Repeat("-", weekSeparatorWidth)) {
		t.Fatalf("missing Sunday week separator:\n%s", out)
	}
	if got := strings.Count(out, "```C"); got != 4 {
		t.Fatalf("day blocks = %d; want 4", got)
	}
	if got := strings.Count(out, "Delete & Archive at least 100 emails."); got != 4 {
		t.Fatalf("placeholder tail must appear once per day, got %d", got)
	}
}

func TestGenerateRejectsInvertedRange(t *testing.T) {
	var buf bytes.Buffer
	if err := Generate(&buf, "02.01.2026", "01.01.2026", nil, Inputs{}); err == nil {
		t.Fatalf("inverted range must error")
	}
}

func TestMondays(t *testing.T) {
	var buf bytes.Buffer
	// First Monday on or after 01.09.2023 is the 4th.
	if err := Mondays(&buf, "01.09.2023", "18.09.2023"); err != nil {
		t.Fatalf("Mondays: %v", err)
	}
	want := "09/2023: 04\n09/2023: 11\n09/2023: 18\n"
	if buf.String() != want {
		t.Fatalf("Mondays = %q; want %q", buf.String(), want)
	}
}

func TestMondaysYearSeparator(t *testing.T) {
	var buf bytes.Buffer
	// 25.12.2023 and 01.01.2024 are both Mondays.
	if err := Mondays(&buf, "25.12.2023", "08.01.2024"); err != nil {
		t.Fatalf("Mondays: %v", err)
	}
	want := "12/2023: 25\n\n---\n\n01/2024: 01\n01/2024: 08\n"
	if buf.String() != want {
		t.Fatalf("Mondays = %q; want %q", buf.String(), want)
	}
}
