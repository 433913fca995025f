package main

import (
	"math"
	"testing"
	"time"
)

// testBase is an arbitrary fixed anchor date; the estimator only cares about
// relative ordering, so any anchor works.
var testBase = time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

// weighIns builds n daily consecutive weight entries starting at testBase,
// with the weight for day i given by weightAt.
func weighIns(n int, weightAt func(i int) float64) []weightEntry {
	entries := make([]weightEntry, 0, n)
	for i := 0; i < n; i++ {
		entries = append(entries, weightEntry{
			Date:     DateOnly{testBase.AddDate(0, 0, i)},
			WeightKG: weightAt(i),
		})
	}
	return entries
}

// flatIntake builds n daily intake sums of kcal each, aligned with weighIns.
func flatIntake(n, kcal int) []intakeDay {
	days := make([]intakeDay, 0, n)
	for i := 0; i < n; i++ {
		days = append(days, intakeDay{
			Date: testBase.AddDate(0, 0, i).Format("2006-01-02"),
			Kcal: kcal,
		})
	}
	return days
}

func TestAdaptive_TooFewWeighIns(t *testing.T) {
	// 9 entries is one short of the minimum — no estimate regardless of how
	// rich the intake history is.
	weights := weighIns(9, func(int) float64 { return 80 })
	if _, ok := computeAdaptiveTDEE(weights, flatIntake(9, 2000), nil); ok {
		t.Error("expected insufficient data with 9 weight entries")
	}
}

func TestAdaptive_FlatWeightMatchesIntake(t *testing.T) {
	// Stable weight means intake equals expenditure: the estimate is simply
	// the average logged intake.
	weights := weighIns(14, func(int) float64 { return 80 })
	est, ok := computeAdaptiveTDEE(weights, flatIntake(14, 2000), nil)
	if !ok {
		t.Fatal("expected an estimate, got insufficient data")
	}
	if est.AdaptiveTDEE != 2000 {
		t.Errorf("AdaptiveTDEE = %d, want 2000", est.AdaptiveTDEE)
	}
	if est.AvgIntakeKcal != 2000 {
		t.Errorf("AvgIntakeKcal = %d, want 2000", est.AvgIntakeKcal)
	}
	if math.Abs(est.WeeklyChangeKG) > 1e-9 {
		t.Errorf("WeeklyChangeKG = %f, want 0", est.WeeklyChangeKG)
	}
}

func TestAdaptive_UnsortedInputHandled(t *testing.T) {
	// The estimator sorts internally; feeding entries newest-first must give
	// the same answer as ascending order.
	weights := weighIns(14, func(int) float64 { return 80 })
	for i, j := 0, len(weights)-1; i < j; i, j = i+1, j-1 {
		weights[i], weights[j] = weights[j], weights[i]
	}
	est, ok := computeAdaptiveTDEE(weights, flatIntake(14, 2000), nil)
	if !ok || est.AdaptiveTDEE != 2000 {
		t.Errorf("got (%+v, %v), want AdaptiveTDEE=2000", est, ok)
	}
}

func TestAdaptive_SparseIntake(t *testing.T) {
	// Only 6 covered days in the window — below the trust threshold of 7.
	weights := weighIns(14, func(int) float64 { return 80 })
	if _, ok := computeAdaptiveTDEE(weights, flatIntake(6, 2000), nil); ok {
		t.Error("expected insufficient data with 6 covered days")
	}
}

func TestAdaptive_ZeroKcalDaysNotCovered(t *testing.T) {
	// Days whose summed intake is zero don't count as covered even though a
	// row exists for them.
	weights := weighIns(14, func(int) float64 { return 80 })
	intake := flatIntake(6, 2000)
	for i := 6; i < 14; i++ {
		intake = append(intake, intakeDay{Date: testBase.AddDate(0, 0, i).Format("2006-01-02"), Kcal: 0})
	}
	if _, ok := computeAdaptiveTDEE(weights, intake, nil); ok {
		t.Error("expected insufficient data: zero-kcal days must not count as covered")
	}
}

func TestAdaptive_WeightLoss(t *testing.T) {
	// Losing 0.1 kg/day over 14 days: first-7 mean 89.7, last-7 mean 89.0,
	// delta -0.7 kg over a 14-entry span = -0.35 kg/week, i.e. a daily
	// deficit of 0.35*7700/7 = 385 kcal below intake.
	weights := weighIns(14, func(i int) float64 { return 90 - 0.1*float64(i) })
	est, ok := computeAdaptiveTDEE(weights, flatIntake(14, 2000), nil)
	if !ok {
		t.Fatal("expected an estimate, got insufficient data")
	}
	if est.AdaptiveTDEE != 1615 {
		t.Errorf("AdaptiveTDEE = %d, want 1615", est.AdaptiveTDEE)
	}
	if math.Abs(est.WeeklyChangeKG-(-0.35)) > 1e-9 {
		t.Errorf("WeeklyChangeKG = %f, want -0.35", est.WeeklyChangeKG)
	}
}

func TestAdaptive_WindowIgnoresOlderHistory(t *testing.T) {
	// 20 entries: the oldest 6 carry absurd weights and pre-window intake is
	// enormous. Only the trailing 14 entries and their date range may matter.
	weights := weighIns(20, func(i int) float64 {
		if i < 6 {
			return 200
		}
		return 80
	})
	intake := flatIntake(6, 9000) // falls entirely before the window
	for i := 6; i < 20; i++ {
		intake = append(intake, intakeDay{Date: testBase.AddDate(0, 0, i).Format("2006-01-02"), Kcal: 2000})
	}
	est, ok := computeAdaptiveTDEE(weights, intake, nil)
	if !ok {
		t.Fatal("expected an estimate, got insufficient data")
	}
	if est.AdaptiveTDEE != 2000 {
		t.Errorf("AdaptiveTDEE = %d, want 2000 (older history must be ignored)", est.AdaptiveTDEE)
	}
}

func TestAdaptive_ClampUpper(t *testing.T) {
	// BMR for male 80kg/180cm/30y is 1780; the ceiling is 2.5*1780 = 4450.
	// A flat 6000 kcal/day average would otherwise pass straight through.
	profile := makeProfile("male", 30, 180, 80, 1.2, 0, goalMaintain)
	weights := weighIns(14, func(int) float64 { return 80 })
	est, ok := computeAdaptiveTDEE(weights, flatIntake(14, 6000), profile)
	if !ok {
		t.Fatal("expected an estimate, got insufficient data")
	}
	if est.AdaptiveTDEE != 4450 {
		t.Errorf("AdaptiveTDEE = %d, want 4450 (clamped to 2.5*BMR)", est.AdaptiveTDEE)
	}
}

func TestAdaptive_ClampLower(t *testing.T) {
	// Rapid loss plus low intake computes a negative raw TDEE; with a full
	// profile it must clamp up to BMR (1780).
	profile := makeProfile("male", 30, 180, 80, 1.2, 0, goalMaintain)
	weights := weighIns(14, func(i int) float64 { return 100 - float64(i) })
	est, ok := computeAdaptiveTDEE(weights, flatIntake(14, 800), profile)
	if !ok {
		t.Fatal("expected an estimate, got insufficient data")
	}
	if est.AdaptiveTDEE != 1780 {
		t.Errorf("AdaptiveTDEE = %d, want 1780 (clamped to BMR)", est.AdaptiveTDEE)
	}
}

func TestAdaptive_NoProfileNoClamp(t *testing.T) {
	weights := weighIns(14, func(int) float64 { return 80 })
	est, ok := computeAdaptiveTDEE(weights, flatIntake(14, 6000), nil)
	if !ok {
		t.Fatal("expected an estimate, got insufficient data")
	}
	if est.AdaptiveTDEE != 6000 {
		t.Errorf("AdaptiveTDEE = %d, want 6000 (no profile, no clamp)", est.AdaptiveTDEE)
	}
}

func TestAdaptiveWindow(t *testing.T) {
	if _, _, ok := adaptiveWindow(weighIns(9, func(int) float64 { return 80 })); ok {
		t.Error("expected ok=false with 9 entries")
	}

	// 20 entries: the window is the trailing 14, days 6..19.
	start, end, ok := adaptiveWindow(weighIns(20, func(int) float64 { return 80 }))
	if !ok {
		t.Fatal("expected ok=true with 20 entries")
	}
	wantStart := testBase.AddDate(0, 0, 6).Format("2006-01-02")
	wantEnd := testBase.AddDate(0, 0, 19).Format("2006-01-02")
	if start != wantStart || end != wantEnd {
		t.Errorf("window = [%s, %s], want [%s, %s]", start, end, wantStart, wantEnd)
	}
}
