package main

import (
	"strings"
	"testing"
)

// pickFirst always selects variant 0, keeping pool choices deterministic.
func pickFirst(int) int { return 0 }

func baseTargets() nutritionTargets {
	return nutritionTargets{Kcal: 2200, ProteinG: 150, CarbG: 250, FatG: 70}
}

func TestZeroKcalPool_ByHour(t *testing.T) {
	tests := []struct {
		hour int
		want []string
	}{
		{0, morningPool},
		{11, morningPool},
		{12, afternoonPool},
		{17, afternoonPool},
		{18, eveningPool},
		{23, eveningPool},
	}
	for _, tt := range tests {
		got := zeroKcalPool(tt.hour)
		if &got[0] != &tt.want[0] {
			t.Errorf("zeroKcalPool(%d) returned the wrong pool", tt.hour)
		}
	}
}

func TestCalorieStatus_ZeroIntakeUsesPool(t *testing.T) {
	in := motivationInput{Targets: baseTargets(), Hour: 9}
	for i := range morningPool {
		i := i
		got := calorieStatusFragment(in, func(n int) int {
			if n != len(morningPool) {
				t.Errorf("pick called with n=%d, want %d", n, len(morningPool))
			}
			return i
		})
		if got != morningPool[i] {
			t.Errorf("variant %d: got %q, want %q", i, got, morningPool[i])
		}
	}
}

func TestCalorieStatus_Bands(t *testing.T) {
	tests := []struct {
		kcal int
		want string
	}{
		{1000, "💪 You have 1200 kcal left today — plenty of room, keep going!"},
		{1800, "🎯 Getting closer: 400 kcal to go."},
		{2100, "🔥 Almost there! Just 100 kcal left."},
		{2200, "🎉 Perfect! You hit your target exactly."},
		{2300, "😌 Slightly over by 100 kcal — no big deal."},
		{2600, "⚠️ You're 400 kcal over target. Ease off a bit tomorrow."},
	}
	for _, tt := range tests {
		in := motivationInput{Today: macroTotals{Kcal: tt.kcal}, Targets: baseTargets()}
		if got := calorieStatusFragment(in, pickFirst); got != tt.want {
			t.Errorf("kcal=%d: got %q, want %q", tt.kcal, got, tt.want)
		}
	}
}

func TestProteinFragment(t *testing.T) {
	tests := []struct {
		name     string
		kcal     int
		proteinG float64
		want     string
	}{
		{"zero intake is silent", 0, 0, ""},
		{"target reached", 1500, 150, "💪 Protein target reached — nice work."},
		{"on track", 1500, 120, "👍 Protein is on track (80%)."},
		{"lagging with real intake", 1500, 30, "🥩 Protein is lagging — consider a protein-rich meal."},
		{"lagging early in the day is silent", 800, 30, ""},
		{"middle band is silent", 1500, 75, ""},
	}
	for _, tt := range tests {
		in := motivationInput{
			Today:   macroTotals{Kcal: tt.kcal, ProteinG: tt.proteinG},
			Targets: baseTargets(),
		}
		if got := proteinFragment(in); got != tt.want {
			t.Errorf("%s: got %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestMacroBalanceFragment(t *testing.T) {
	// 100P/100C/40F g → 400/400/360 kcal → 34%/34%/31%: the balanced branch.
	in := motivationInput{
		Today:   macroTotals{Kcal: 1160, ProteinG: 100, CarbG: 100, FatG: 40},
		Targets: baseTargets(),
	}
	got := macroBalanceFragment(in)
	want := "⚖️ Macro balance looks good: 34% protein / 34% carb / 31% fat."
	if got != want {
		t.Errorf("balanced: got %q, want %q", got, want)
	}

	// 20P/20C/60F g → 80/80/540 kcal → fat is 77% of calories.
	in.Today = macroTotals{Kcal: 700, ProteinG: 20, CarbG: 20, FatG: 60}
	got = macroBalanceFragment(in)
	if !strings.HasPrefix(got, "🧈 Fat is carrying 77%") {
		t.Errorf("fat-heavy: got %q", got)
	}

	// 20P/200C/20F g with substantial intake → protein share 8%.
	in.Today = macroTotals{Kcal: 1400, ProteinG: 20, CarbG: 200, FatG: 20}
	got = macroBalanceFragment(in)
	if !strings.HasPrefix(got, "📉 Protein share is low (8%") {
		t.Errorf("low-protein: got %q", got)
	}

	if got := macroBalanceFragment(motivationInput{}); got != "" {
		t.Errorf("zero intake: got %q, want empty", got)
	}
}

func TestWeeklyTrendFragment(t *testing.T) {
	tests := []struct {
		name       string
		loggedDays int
		weekAvg    int
		want       string
	}{
		{"few days shows plain average", 2, 1800, "📊 Weekly average so far: 1800 kcal."},
		{"on target", 5, 2250, "📊 Your weekly average is right on target."},
		{"lower edge of on-target band", 5, 2100, "📊 Your weekly average is right on target."},
		{"above target", 5, 2450, "📈 Weekly average is running 250 kcal above target."},
		{"below target", 5, 1950, "📉 Weekly average is running 250 kcal below target."},
		{"dead zone stays silent", 5, 2350, ""},
		{"dead zone below stays silent", 5, 2050, ""},
	}
	for _, tt := range tests {
		in := motivationInput{
			Targets:     baseTargets(),
			WeekAvgKcal: tt.weekAvg,
			LoggedDays:  tt.loggedDays,
		}
		if got := weeklyTrendFragment(in); got != tt.want {
			t.Errorf("%s: got %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestStreakFragment(t *testing.T) {
	tests := []struct {
		streak int
		want   string
	}{
		{0, ""},
		{2, ""},
		{3, "🔥 3-day streak, keep it alive!"},
		{6, "🔥 6-day streak, keep it alive!"},
		{7, "🏆 7-day goal streak — a full week!"},
		{12, "🏆 12-day goal streak — a full week!"},
	}
	for _, tt := range tests {
		if got := streakFragment(tt.streak); got != tt.want {
			t.Errorf("streak=%d: got %q, want %q", tt.streak, got, tt.want)
		}
	}
}

func TestNewUserFragment(t *testing.T) {
	tests := []struct {
		name    string
		in      motivationInput
		wantMsg bool
	}{
		{"first day with one entry", motivationInput{LoggedDays: 1, Today: macroTotals{Kcal: 500}, TodayEntries: 1}, true},
		{"first day with two entries", motivationInput{LoggedDays: 1, Today: macroTotals{Kcal: 900}, TodayEntries: 2}, true},
		{"nothing logged today", motivationInput{LoggedDays: 0}, false},
		{"too many entries", motivationInput{LoggedDays: 1, Today: macroTotals{Kcal: 900}, TodayEntries: 3}, false},
		{"established user", motivationInput{LoggedDays: 5, Today: macroTotals{Kcal: 500}, TodayEntries: 1}, false},
	}
	for _, tt := range tests {
		got := newUserFragment(tt.in)
		if (got != "") != tt.wantMsg {
			t.Errorf("%s: got %q, wantMsg=%v", tt.name, got, tt.wantMsg)
		}
	}
}

func TestBuildMotivationMessage_StageOrder(t *testing.T) {
	// An input that fires every stage except the new-user one, so the joined
	// message must contain the fragments in their fixed order.
	in := motivationInput{
		Today:        macroTotals{Kcal: 1800, ProteinG: 120, CarbG: 180, FatG: 40},
		TodayEntries: 4,
		Targets:      baseTargets(),
		WeekAvgKcal:  2500,
		LoggedDays:   5,
		Streak:       4,
		Hour:         14,
	}
	msg := buildMotivationMessage(in, pickFirst)

	markers := []string{
		"🎯 Getting closer: 400 kcal to go.",
		"👍 Protein is on track (80%).",
		"⚖️ Macro balance looks good:",
		"📈 Weekly average is running 300 kcal above target.",
		"🔥 4-day streak, keep it alive!",
	}
	last := -1
	for _, m := range markers {
		idx := strings.Index(msg, m)
		if idx < 0 {
			t.Fatalf("message %q missing fragment %q", msg, m)
		}
		if idx <= last {
			t.Errorf("fragment %q out of order in %q", m, msg)
		}
		last = idx
	}
	if strings.Contains(msg, "🌱") {
		t.Errorf("new-user fragment must not fire for an established user: %q", msg)
	}
}

func TestBuildMotivationMessage_ZeroIntake(t *testing.T) {
	// With nothing logged, only the time-of-day pool message appears.
	in := motivationInput{Targets: baseTargets(), WeekAvgKcal: 1200, LoggedDays: 4, Hour: 20}
	msg := buildMotivationMessage(in, pickFirst)
	if !strings.HasPrefix(msg, eveningPool[0]) {
		t.Errorf("message %q should start with the evening pool variant", msg)
	}
	// The weekly trend still runs as its own stage.
	if !strings.Contains(msg, "📉 Weekly average is running 1000 kcal below target.") {
		t.Errorf("message %q missing weekly trend fragment", msg)
	}
}
