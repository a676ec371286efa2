// Package history derives streaks and period summaries from the daily
// activity log kept in progress.State.
package history

import (
	"sort"
	"time"

	"github.com/learnquest/learnquest/internal/progress"
)

const secondsPerDay = 24 * 60 * 60

// dayNumber maps a calendar date to a day count since the Unix epoch.
// Working on whole days keeps differences exact across DST changes.
func dayNumber(year int, month time.Month, day int) int64 {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC).Unix() / secondsPerDay
}

func dayOf(t time.Time) int64 {
	y, m, d := t.Date()
	return dayNumber(y, m, d)
}

func parseDay(date string) (int64, bool) {
	t, err := time.Parse(progress.DateLayout, date)
	if err != nil {
		return 0, false
	}
	return dayOf(t), true
}

// activeDays returns the distinct parseable record dates, newest first.
func activeDays(records []progress.DailyRecord) []int64 {
	seen := make(map[int64]bool, len(records))
	days := make([]int64, 0, len(records))
	for _, r := range records {
		d, ok := parseDay(r.Date)
		if !ok || seen[d] {
			continue
		}
		seen[d] = true
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i] > days[j] })
	return days
}

// CurrentStreak returns the number of consecutive active days ending
// today or yesterday. today is interpreted in its own location.
func CurrentStreak(records []progress.DailyRecord, today time.Time) int {
	days := activeDays(records)
	if len(days) == 0 {
		return 0
	}
	if gap := dayOf(today) - days[0]; gap < 0 || gap > 1 {
		return 0
	}

	streak := 1
	cursor := days[0]
	for _, d := range days[1:] {
		if cursor-d > 1 {
			break
		}
		streak++
		cursor = d
	}
	return streak
}

// LongestStreak returns the longest run of consecutive active days
// anywhere in the log.
func LongestStreak(records []progress.DailyRecord) int {
	days := activeDays(records)
	if len(days) == 0 {
		return 0
	}
	best, run := 1, 1
	for i := 1; i < len(days); i++ {
		if days[i-1]-days[i] == 1 {
			run++
		} else {
			run = 1
		}
		best = max(best, run)
	}
	return best
}
