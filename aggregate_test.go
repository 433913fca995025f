package main

import (
	"testing"
	"time"
)

func TestSumEntryTotals(t *testing.T) {
	entries := []dailyLogEntry{
		{Kcal: 450, ProteinG: 31.0, CarbG: 0.0, FatG: 36.0},
		{Kcal: 312, ProteinG: 6.4, CarbG: 62.0, FatG: 2.4},
		{Kcal: 89, ProteinG: 1.1, CarbG: 22.8, FatG: 0.3},
	}
	got := sumEntryTotals(entries)
	want := macroTotals{Kcal: 851, ProteinG: 38.5, CarbG: 84.8, FatG: 38.7}
	if got != want {
		t.Errorf("sumEntryTotals = %+v, want %+v", got, want)
	}

	if got := sumEntryTotals(nil); got != (macroTotals{}) {
		t.Errorf("sumEntryTotals(nil) = %+v, want zero totals", got)
	}
}

func TestGoalMet_Boundaries(t *testing.T) {
	// Target 2200: the band is [1980, 2420], both ends inclusive.
	tests := []struct {
		kcal int
		want bool
	}{
		{1979, false},
		{1980, true},
		{2200, true},
		{2420, true},
		{2421, false},
		{0, false},
	}
	for _, tt := range tests {
		if got := goalMet(tt.kcal, 2200); got != tt.want {
			t.Errorf("goalMet(%d, 2200) = %v, want %v", tt.kcal, got, tt.want)
		}
	}
}

func TestComputeGoalStreak(t *testing.T) {
	end := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	day := func(offset int) string {
		return end.AddDate(0, 0, -offset).Format("2006-01-02")
	}

	// Most recent two days in band, third day way under: streak stops at 2
	// even though older days were back in band.
	totals := map[string]int{
		day(0): 2100,
		day(1): 2150,
		day(2): 1000,
		day(3): 2200,
		day(4): 2180,
	}
	dates := reverseDates(lastNDates(end, 7))
	if got := computeGoalStreak(dates, totals, 2200); got != 2 {
		t.Errorf("streak = %d, want 2", got)
	}

	// A missing day counts as 0 kcal and breaks the streak immediately.
	delete(totals, day(0))
	if got := computeGoalStreak(dates, totals, 2200); got != 0 {
		t.Errorf("streak with missing most-recent day = %d, want 0", got)
	}

	// Every day in band: streak spans the whole window.
	for i := 0; i < 7; i++ {
		totals[day(i)] = 2200
	}
	if got := computeGoalStreak(dates, totals, 2200); got != 7 {
		t.Errorf("streak with full week in band = %d, want 7", got)
	}
}

func TestLastNDates(t *testing.T) {
	end := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	got := lastNDates(end, 3)
	want := []string{"2026-02-28", "2026-03-01", "2026-03-02"}
	if len(got) != len(want) {
		t.Fatalf("lastNDates returned %d dates, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("lastNDates[%d] = %s, want %s", i, got[i], want[i])
		}
	}

	rev := reverseDates(got)
	for i := range want {
		if rev[i] != want[len(want)-1-i] {
			t.Errorf("reverseDates[%d] = %s, want %s", i, rev[i], want[len(want)-1-i])
		}
	}
}

func TestEntryNutrition(t *testing.T) {
	// 150 g of a 165 kcal / 31 P / 0 C / 3.6 F per-100g item.
	item := catalogItem{Kcal100: 165, Protein100: 31, Carb100: 0, Fat100: 3.6}
	kcal, p, c, f := entryNutrition(item, 150)
	if kcal != 248 {
		t.Errorf("kcal = %d, want 248", kcal)
	}
	if p != 46.5 || c != 0 || f != 5.4 {
		t.Errorf("macros = (%v, %v, %v), want (46.5, 0, 5.4)", p, c, f)
	}
}

func TestScaleEntryNutrition(t *testing.T) {
	// Doubling the grams doubles everything, independent of the catalog.
	entry := dailyLogEntry{Grams: 100, Kcal: 165, ProteinG: 31, CarbG: 0, FatG: 3.6}
	kcal, p, c, f := scaleEntryNutrition(entry, 200)
	if kcal != 330 || p != 62 || c != 0 || f != 7.2 {
		t.Errorf("scaled = (%d, %v, %v, %v), want (330, 62, 0, 7.2)", kcal, p, c, f)
	}
}
