package history

import (
	"fmt"
	"sort"
	"time"

	"github.com/learnquest/learnquest/internal/progress"
)

// Period selects the window of a history summary.
type Period string

const (
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
	PeriodYear  Period = "year"
)

// yearLimit caps the "year" view to the most recent records.
const yearLimit = 50

// ParsePeriod validates a period name. The empty string means week.
func ParsePeriod(s string) (Period, error) {
	switch Period(s) {
	case "", PeriodWeek:
		return PeriodWeek, nil
	case PeriodMonth:
		return PeriodMonth, nil
	case PeriodYear:
		return PeriodYear, nil
	}
	return "", fmt.Errorf("unknown period %q (want week, month or year)", s)
}

// Label returns the French display label of p.
func (p Period) Label() string {
	switch p {
	case PeriodMonth:
		return "30 Jours"
	case PeriodYear:
		return "Année"
	default:
		return "7 Jours"
	}
}

// Totals sums a set of daily records.
type Totals struct {
	XP     int `json:"xp"`
	Quests int `json:"quests"`
	Steps  int `json:"steps"`
}

// Summary is the history view for one period.
type Summary struct {
	Period  Period                 `json:"period"`
	Records []progress.DailyRecord `json:"records"` // oldest first
	Totals  Totals                 `json:"totals"`
	Streak  int                    `json:"streak"`
	Longest int                    `json:"longest"`
}

// Summarize filters records to the period ending today and totals them.
// Week and month keep the last 7 and 30 calendar days including today;
// year keeps the last 50 records.
func Summarize(records []progress.DailyRecord, p Period, today time.Time) Summary {
	sorted := make([]progress.DailyRecord, 0, len(records))
	for _, r := range records {
		if _, ok := parseDay(r.Date); ok {
			sorted = append(sorted, r)
		}
	}
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Date < sorted[j].Date })

	var filtered []progress.DailyRecord
	switch p {
	case PeriodYear:
		filtered = sorted[max(len(sorted)-yearLimit, 0):]
	default:
		window := int64(7)
		if p == PeriodMonth {
			window = 30
		}
		end := dayOf(today)
		start := end - window + 1
		for _, r := range sorted {
			d, _ := parseDay(r.Date)
			if d >= start && d <= end {
				filtered = append(filtered, r)
			}
		}
	}
	if filtered == nil {
		filtered = []progress.DailyRecord{}
	}

	var t Totals
	for _, r := range filtered {
		t.XP += r.XP
		t.Quests += r.QuestsCompleted
		t.Steps += r.StepsAdded
	}
	return Summary{
		Period:  p,
		Records: filtered,
		Totals:  t,
		Streak:  CurrentStreak(records, today),
		Longest: LongestStreak(records),
	}
}
