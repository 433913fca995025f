package main

import (
	"math"
	"sort"
)

const (
	// kcalPerKG is the energy content of one kilogram of body-mass change.
	kcalPerKG = 7700.0

	// minWeightEntries weigh-ins are required before any estimate is produced.
	minWeightEntries = 10
	// estimatorWindow caps the estimate to the most recent N weigh-ins.
	estimatorWindow = 14
	// minCoveredDays with positive logged intake are required inside the
	// window; fewer means the intake average can't be trusted.
	minCoveredDays = 7
)

// adaptiveWindow returns the inclusive [start, end] date bounds of the
// estimator's weigh-in window, so callers can fetch intake logs for exactly
// the range computeAdaptiveTDEE will consider. ok is false when there are too
// few entries for any estimate.
func adaptiveWindow(entries []weightEntry) (start, end string, ok bool) {
	w := windowedEntries(entries)
	if w == nil {
		return "", "", false
	}
	return w[0].Date.Format("2006-01-02"), w[len(w)-1].Date.Format("2006-01-02"), true
}

// windowedEntries sorts ascending by date and returns the trailing window,
// or nil when fewer than minWeightEntries remain.
func windowedEntries(entries []weightEntry) []weightEntry {
	if len(entries) < minWeightEntries {
		return nil
	}
	sorted := make([]weightEntry, len(entries))
	copy(sorted, entries)
	// Lexicographic ISO-date ordering is valid chronological ordering.
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Date.Format("2006-01-02") < sorted[j].Date.Format("2006-01-02")
	})
	if len(sorted) > estimatorWindow {
		sorted = sorted[len(sorted)-estimatorWindow:]
	}
	if len(sorted) < minWeightEntries {
		return nil
	}
	return sorted
}

// computeAdaptiveTDEE infers the user's true energy expenditure from the
// observed weight trend versus logged intake, replacing the self-reported
// activity multiplier. Pure over its inputs: weights is the full weigh-in
// history, intake the per-date kcal sums covering at least the weigh-in
// window, profile an optional body profile used only to clamp the result to
// a plausible [BMR, 2.5*BMR] band.
//
// ok=false means insufficient data — an expected outcome, not an error.
func computeAdaptiveTDEE(weights []weightEntry, intake []intakeDay, profile *bodyProfile) (adaptiveEstimate, bool) {
	window := windowedEntries(weights)
	if window == nil {
		return adaptiveEstimate{}, false
	}

	// Weight trend: mean of the first 7 vs the last 7 entries in the window.
	// The halves overlap when the window holds fewer than 14 entries.
	avgFirst := meanWeight(window[:7])
	avgLast := meanWeight(window[len(window)-7:])
	deltaKG := avgLast - avgFirst

	// Normalize an arbitrary-length observation span to a per-week rate.
	daySpan := len(window)
	weeklyChangeKG := deltaKG / float64(daySpan) * 7

	dailyEnergyDiff := weeklyChangeKG * kcalPerKG / 7

	// Intake average over the same date window. Only dates with strictly
	// positive summed intake count as covered.
	startDate := window[0].Date.Format("2006-01-02")
	endDate := window[len(window)-1].Date.Format("2006-01-02")
	kcalByDate := make(map[string]int)
	for _, day := range intake {
		if day.Date < startDate || day.Date > endDate {
			continue
		}
		kcalByDate[day.Date] += day.Kcal
	}
	totalIntake, coveredDays := 0, 0
	for _, kcal := range kcalByDate {
		if kcal > 0 {
			totalIntake += kcal
			coveredDays++
		}
	}
	if coveredDays < minCoveredDays {
		return adaptiveEstimate{}, false
	}
	avgIntake := float64(totalIntake) / float64(coveredDays)

	adaptive := math.Round(avgIntake + dailyEnergyDiff)

	// Clamp to a plausible band when a full profile is available — prevents
	// implausible results from noisy data.
	if hasFullProfile(profile) {
		bmr := computeBMR(*profile.Gender, *profile.WeightKG, *profile.HeightCM, *profile.Age)
		if adaptive < bmr {
			adaptive = math.Round(bmr)
		}
		if adaptive > bmr*2.5 {
			adaptive = math.Round(bmr * 2.5)
		}
	}

	return adaptiveEstimate{
		AdaptiveTDEE:   int(adaptive),
		WeeklyChangeKG: weeklyChangeKG,
		AvgIntakeKcal:  int(math.Round(avgIntake)),
	}, true
}

func meanWeight(entries []weightEntry) float64 {
	sum := 0.0
	for _, e := range entries {
		sum += e.WeightKG
	}
	return sum / float64(len(entries))
}
