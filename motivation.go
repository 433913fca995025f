package main

import (
	"fmt"
	"math"
	"strings"
)

// Time-of-day message pools for days with nothing logged yet. The variant is
// chosen by the injected picker so tests stay deterministic.
var (
	morningPool = []string{
		"🌅 Fresh day, clean slate — log your first meal when you're ready.",
		"🌟 Great time to start the day! Add your first entry.",
		"☕ Nothing logged yet. Breakfast is a good place to start.",
	}
	afternoonPool = []string{
		"🌞 Nothing logged yet today. It's not too late to catch up.",
		"📝 Afternoon already with no entries — add what you've eaten so far.",
	}
	eveningPool = []string{
		"🌙 No entries today. Log your meals to keep the history honest.",
		"✨ The day's almost over. Add today's meals so the week stays accurate.",
	}
)

// zeroKcalPool returns the message pool for the given hour of day.
func zeroKcalPool(hour int) []string {
	switch {
	case hour < 12:
		return morningPool
	case hour < 18:
		return afternoonPool
	default:
		return eveningPool
	}
}

// motivationInput bundles everything buildMotivationMessage needs. All fields
// are snapshots — the function itself does no I/O.
type motivationInput struct {
	Today        macroTotals
	TodayEntries int
	Targets      nutritionTargets
	WeekAvgKcal  int
	LoggedDays   int // days with positive intake in the trailing 7-day window
	Streak       int
	Hour         int // local hour 0-23, selects the zero-intake pool
}

// buildMotivationMessage assembles the feedback message from six fixed-order
// stages. Each stage contributes at most one fragment; the stages run
// independently and the non-empty fragments are space-joined. pick selects a
// pool variant (production passes rand.Intn).
func buildMotivationMessage(in motivationInput, pick func(n int) int) string {
	var fragments []string
	add := func(f string) {
		if f != "" {
			fragments = append(fragments, f)
		}
	}

	add(calorieStatusFragment(in, pick))
	add(proteinFragment(in))
	add(macroBalanceFragment(in))
	add(weeklyTrendFragment(in))
	add(streakFragment(in.Streak))
	add(newUserFragment(in))

	return strings.Join(fragments, " ")
}

// calorieStatusFragment is the primary fragment, chosen from the remaining
// calories for the day.
func calorieStatusFragment(in motivationInput, pick func(n int) int) string {
	if in.Today.Kcal == 0 {
		pool := zeroKcalPool(in.Hour)
		return pool[pick(len(pool))]
	}

	remaining := in.Targets.Kcal - in.Today.Kcal
	switch {
	case remaining > 800:
		return fmt.Sprintf("💪 You have %d kcal left today — plenty of room, keep going!", remaining)
	case remaining > 300:
		return fmt.Sprintf("🎯 Getting closer: %d kcal to go.", remaining)
	case remaining > 0:
		return fmt.Sprintf("🔥 Almost there! Just %d kcal left.", remaining)
	case remaining == 0:
		return "🎉 Perfect! You hit your target exactly."
	case remaining > -200:
		return fmt.Sprintf("😌 Slightly over by %d kcal — no big deal.", -remaining)
	default:
		return fmt.Sprintf("⚠️ You're %d kcal over target. Ease off a bit tomorrow.", -remaining)
	}
}

// proteinFragment comments on protein progress. Silent on zero-intake days
// and in the 40-70% band without a calorie context.
func proteinFragment(in motivationInput) string {
	if in.Today.Kcal == 0 || in.Targets.ProteinG <= 0 {
		return ""
	}
	pct := in.Today.ProteinG / float64(in.Targets.ProteinG) * 100
	switch {
	case pct >= 100:
		return "💪 Protein target reached — nice work."
	case pct >= 70:
		return fmt.Sprintf("👍 Protein is on track (%d%%).", int(math.Round(pct)))
	case pct < 40 && float64(in.Today.Kcal) > float64(in.Targets.Kcal)*0.5:
		return "🥩 Protein is lagging — consider a protein-rich meal."
	default:
		return ""
	}
}

// macroBalanceFragment reports the calorie share of each macro.
func macroBalanceFragment(in motivationInput) string {
	if in.Today.Kcal == 0 {
		return ""
	}
	proteinKcal := in.Today.ProteinG * 4
	carbKcal := in.Today.CarbG * 4
	fatKcal := in.Today.FatG * 9
	total := proteinKcal + carbKcal + fatKcal
	if total <= 0 {
		return ""
	}
	proteinPct := proteinKcal / total * 100
	carbPct := carbKcal / total * 100
	fatPct := fatKcal / total * 100

	switch {
	case fatPct > 45:
		return fmt.Sprintf("🧈 Fat is carrying %d%% of today's calories — a bit heavy.", int(math.Round(fatPct)))
	case proteinPct < 20 && float64(in.Today.Kcal) > float64(in.Targets.Kcal)*0.5:
		return fmt.Sprintf("📉 Protein share is low (%d%% of calories).", int(math.Round(proteinPct)))
	default:
		return fmt.Sprintf("⚖️ Macro balance looks good: %d%% protein / %d%% carb / %d%% fat.",
			int(math.Round(proteinPct)), int(math.Round(carbPct)), int(math.Round(fatPct)))
	}
}

// weeklyTrendFragment compares the weekly average to the target once three or
// more days are logged. The 100-200 kcal deviation band is intentionally
// silent. With fewer than three logged days only the plain average is shown.
func weeklyTrendFragment(in motivationInput) string {
	if in.LoggedDays < 3 {
		return fmt.Sprintf("📊 Weekly average so far: %d kcal.", in.WeekAvgKcal)
	}
	diff := in.WeekAvgKcal - in.Targets.Kcal
	switch {
	case diff >= -100 && diff <= 100:
		return "📊 Your weekly average is right on target."
	case diff > 200:
		return fmt.Sprintf("📈 Weekly average is running %d kcal above target.", diff)
	case diff < -200:
		return fmt.Sprintf("📉 Weekly average is running %d kcal below target.", -diff)
	default:
		return ""
	}
}

// streakFragment celebrates a goal streak of three or more days.
func streakFragment(streak int) string {
	switch {
	case streak >= 7:
		return fmt.Sprintf("🏆 %d-day goal streak — a full week!", streak)
	case streak >= 3:
		return fmt.Sprintf("🔥 %d-day streak, keep it alive!", streak)
	default:
		return ""
	}
}

// newUserFragment encourages a brand-new logger: at most one logged day in
// the window, something logged today, and no more than two entries.
func newUserFragment(in motivationInput) string {
	if in.LoggedDays <= 1 && in.Today.Kcal > 0 && in.TodayEntries <= 2 {
		return "🌱 Nice start! Logging consistently is the hardest part."
	}
	return ""
}
