package main

import "time"

// sumEntryTotals reduces a day's log entries into macro totals. No rounding —
// entries are already rounded at creation time.
func sumEntryTotals(entries []dailyLogEntry) macroTotals {
	var t macroTotals
	for _, e := range entries {
		t.Kcal += e.Kcal
		t.ProteinG += e.ProteinG
		t.CarbG += e.CarbG
		t.FatG += e.FatG
	}
	return t
}

// goalMet reports whether a day's total falls within the ±10% band around
// the calorie target. Both bounds are inclusive.
func goalMet(dayKcal, targetKcal int) bool {
	return float64(dayKcal) >= float64(targetKcal)*0.9 &&
		float64(dayKcal) <= float64(targetKcal)*1.1
}

// computeGoalStreak counts consecutive days, starting from the most recent,
// whose total landed in the goal band. dates must be ordered most-recent
// first; a date missing from totalsByDate counts as 0 kcal and breaks the
// streak (the lower bound is positive since targets require kcal > 0).
func computeGoalStreak(dates []string, totalsByDate map[string]int, targetKcal int) int {
	streak := 0
	for _, date := range dates {
		if !goalMet(totalsByDate[date], targetKcal) {
			break
		}
		streak++
	}
	return streak
}

// lastNDates returns the n calendar dates ending at (and including) end,
// oldest first, as ISO date strings.
func lastNDates(end time.Time, n int) []string {
	dates := make([]string, 0, n)
	for i := n - 1; i >= 0; i-- {
		dates = append(dates, end.AddDate(0, 0, -i).Format("2006-01-02"))
	}
	return dates
}

// reverseDates returns a most-recent-first copy of an oldest-first date slice.
func reverseDates(dates []string) []string {
	out := make([]string, len(dates))
	for i, d := range dates {
		out[len(dates)-1-i] = d
	}
	return out
}
