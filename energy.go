package main

import (
	"fmt"
	"math"
)

// goalModeMultipliers maps goal modes to their calorie adjustment factor.
// This is the single source of truth for valid goal modes — also used for
// input validation in patchProfile. Unknown modes fall back to 1.00.
var goalModeMultipliers = map[string]float64{
	goalCutModerate:   0.85,
	goalCutAggressive: 0.75,
	goalMaintain:      1.00,
	goalBulk:          1.10,
}

// proteinRangePerKG maps goal modes to [low, high] grams of protein per kg of
// body weight. The suggestion uses the midpoint of the range.
var proteinRangePerKG = map[string][2]float64{
	goalCutModerate:   {1.8, 2.2},
	goalCutAggressive: {1.8, 2.2},
	goalMaintain:      {1.6, 2.0},
	goalBulk:          {1.6, 2.0},
}

// computeBMR computes basal metabolic rate via Mifflin-St Jeor:
// 10*weight + 6.25*height - 5*age, then +5 for male or -161 for female.
// Only the two branches exist; computeGoalTargets rejects other gender values
// before this is reached.
func computeBMR(gender string, weightKG, heightCM float64, age int) float64 {
	bmr := 10*weightKG + 6.25*heightCM - 5*float64(age)
	if gender == "male" {
		return bmr + 5
	}
	return bmr - 161
}

// computeTDEE computes total daily energy expenditure from BMR, the activity
// multiplier, and a per-day training bonus (150 kcal per session, spread
// over the week). Use math.Round to avoid systematic under-reporting from
// truncation.
func computeTDEE(bmr, activityMultiplier float64, trainingDaysPerWeek int) int {
	tdee := bmr * activityMultiplier
	if trainingDaysPerWeek > 0 {
		tdee += float64(trainingDaysPerWeek) * 150 / 7
	}
	return int(math.Round(tdee))
}

// applyGoalMode adjusts a TDEE by the goal mode's multiplier.
// Unknown modes leave the value unchanged.
func applyGoalMode(tdee int, mode string) int {
	mult, ok := goalModeMultipliers[mode]
	if !ok {
		mult = 1.00
	}
	return int(math.Round(float64(tdee) * mult))
}

// suggestProtein returns a daily protein target in grams: the midpoint of the
// goal mode's per-kg range times body weight. Unknown modes use the
// maintain/bulk range.
func suggestProtein(weightKG float64, mode string) int {
	r, ok := proteinRangePerKG[mode]
	if !ok {
		r = [2]float64{1.6, 2.0}
	}
	mid := (r[0] + r[1]) / 2
	return int(math.Round(mid * weightKG))
}

// suggestFat returns a daily fat target of 0.8 g per kg of body weight.
func suggestFat(weightKG float64) int {
	return int(math.Round(weightKG * 0.8))
}

// suggestCarb fills the calories left after protein (4 kcal/g) and fat
// (9 kcal/g) with carbohydrate (4 kcal/g). Carbs absorb all rounding slack
// and are never negative.
func suggestCarb(targetKcal, proteinG, fatG int) int {
	remaining := targetKcal - proteinG*4 - fatG*9
	if remaining < 0 {
		return 0
	}
	return int(math.Round(float64(remaining) / 4))
}

// computeGoalTargets derives a complete calorie and macro goal from a body
// profile. Returns an error when any core field (gender, age, height, weight)
// is missing or non-positive — partial profiles never compute garbage.
// ActivityMultiplier, TrainingDaysPerWeek, and GoalMode are optional and
// default to 1.0 / 0 / maintain.
func computeGoalTargets(p *bodyProfile) (goalTargets, error) {
	if p.Gender == nil || (*p.Gender != "male" && *p.Gender != "female") {
		return goalTargets{}, fmt.Errorf("gender must be male or female")
	}
	if p.Age == nil || *p.Age <= 0 {
		return goalTargets{}, fmt.Errorf("age must be a positive number")
	}
	if p.HeightCM == nil || *p.HeightCM <= 0 {
		return goalTargets{}, fmt.Errorf("height_cm must be a positive number")
	}
	if p.WeightKG == nil || *p.WeightKG <= 0 {
		return goalTargets{}, fmt.Errorf("weight_kg must be a positive number")
	}

	activity := 1.0
	if p.ActivityMultiplier != nil && *p.ActivityMultiplier > 0 {
		activity = *p.ActivityMultiplier
	}
	trainingDays := 0
	if p.TrainingDaysPerWeek != nil {
		trainingDays = *p.TrainingDaysPerWeek
	}
	mode := goalMaintain
	if p.GoalMode != nil {
		mode = *p.GoalMode
	}

	bmr := computeBMR(*p.Gender, *p.WeightKG, *p.HeightCM, *p.Age)
	tdee := computeTDEE(bmr, activity, trainingDays)
	target := applyGoalMode(tdee, mode)

	protein := suggestProtein(*p.WeightKG, mode)
	fat := suggestFat(*p.WeightKG)
	carb := suggestCarb(target, protein, fat)

	return goalTargets{
		BMR:        int(math.Round(bmr)),
		TDEE:       tdee,
		TargetKcal: target,
		ProteinG:   protein,
		CarbG:      carb,
		FatG:       fat,
	}, nil
}

// hasFullProfile reports whether the core fields needed for BMR are all
// present and positive. Used by the adaptive estimator's clamp.
func hasFullProfile(p *bodyProfile) bool {
	return p != nil &&
		p.Gender != nil && (*p.Gender == "male" || *p.Gender == "female") &&
		p.Age != nil && *p.Age > 0 &&
		p.HeightCM != nil && *p.HeightCM > 0 &&
		p.WeightKG != nil && *p.WeightKG > 0
}
