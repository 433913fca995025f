package main

import (
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

// DateOnly wraps time.Time to serialize as "YYYY-MM-DD" in JSON.
type DateOnly struct{ time.Time }

func (d DateOnly) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Time.Format("2006-01-02") + `"`), nil
}

func (d *DateOnly) UnmarshalJSON(b []byte) error {
	t, err := time.Parse(`"2006-01-02"`, string(b))
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

// ScanDate implements pgtype.DateScanner so pgx can scan PostgreSQL date
// columns (OID 1082) into DateOnly. NULL values zero the time and return nil
// so that *DateOnly pointer fields can be set to nil by pgx's NULL handling.
func (d *DateOnly) ScanDate(v pgtype.Date) error {
	if !v.Valid {
		d.Time = time.Time{}
		return nil
	}
	d.Time = v.Time
	return nil
}

/* ─── Domain structs ─────────────────────────────────────────────────── */

// user maps to the users table. AuthToken and Password are hidden from JSON responses.
type user struct {
	ID        int        `json:"id" db:"id"`
	Username  string     `json:"username" db:"username"`
	Email     string     `json:"email" db:"email"`
	AuthToken string     `json:"-" db:"auth_token"`
	Password  string     `json:"-" db:"password"`
	CreatedAt *time.Time `json:"created_at" db:"created_at"`
}

// nutritionTargets maps to the nutrition_targets table: the user's daily
// calorie and macro goals. Always saved whole — there is no partial patch.
type nutritionTargets struct {
	UserID   int `json:"-"         db:"user_id"`
	Kcal     int `json:"kcal"      db:"kcal"`
	ProteinG int `json:"protein_g" db:"protein_g"`
	CarbG    int `json:"carb_g"    db:"carb_g"`
	FatG     int `json:"fat_g"     db:"fat_g"`
}

// defaultTargets is returned whenever no targets row exists for the user.
func defaultTargets(userID int) nutritionTargets {
	return nutritionTargets{UserID: userID, Kcal: 2200, ProteinG: 150, CarbG: 250, FatG: 70}
}

// Goal modes understood by applyGoalMode and suggestProtein.
const (
	goalCutModerate   = "cut_moderate"
	goalCutAggressive = "cut_aggressive"
	goalMaintain      = "maintain"
	goalBulk          = "bulk"
)

// bodyProfile maps to the body_profile table. All measurement fields are
// nullable pointers — partial profiles are tolerated; computations that need
// the core fields (gender, age, height, weight) refuse when any is missing.
type bodyProfile struct {
	UserID              int      `json:"user_id"                db:"user_id"`
	Gender              *string  `json:"gender"                 db:"gender"`
	Age                 *int     `json:"age"                    db:"age"`
	HeightCM            *float64 `json:"height_cm"              db:"height_cm"`
	WeightKG            *float64 `json:"weight_kg"              db:"weight_kg"`
	ActivityMultiplier  *float64 `json:"activity_multiplier"    db:"activity_multiplier"`
	TrainingDaysPerWeek *int     `json:"training_days_per_week" db:"training_days_per_week"`
	StepsTarget         *int     `json:"steps_target"           db:"steps_target"`
	GoalMode            *string  `json:"goal_mode"              db:"goal_mode"`
}

// weightEntry maps to weight_log. UNIQUE(user_id, date) means at most one
// entry per calendar day; writes for an existing date overwrite in place.
type weightEntry struct {
	ID       int      `json:"id" db:"id"`
	UserID   int      `json:"user_id" db:"user_id"`
	Date     DateOnly `json:"date" db:"date"`
	WeightKG float64  `json:"weight_kg" db:"weight_kg"`
}

// dailyLogEntry maps to daily_logs. Nutrition values are computed once at
// creation time from the catalog item's per-100g densities and the logged
// grams; Kcal is an integer, the macros are rounded to one decimal.
type dailyLogEntry struct {
	ID        int        `json:"id" db:"id"`
	UserID    int        `json:"user_id" db:"user_id"`
	Date      DateOnly   `json:"date" db:"date"`
	ItemID    string     `json:"item_id" db:"item_id"`
	ItemName  string     `json:"item_name" db:"item_name"`
	Grams     float64    `json:"grams" db:"grams"`
	Kcal      int        `json:"kcal" db:"kcal"`
	ProteinG  float64    `json:"protein_g" db:"protein_g"`
	CarbG     float64    `json:"carb_g" db:"carb_g"`
	FatG      float64    `json:"fat_g" db:"fat_g"`
	CreatedAt *time.Time `json:"created_at" db:"created_at"`
}

// catalogItem maps to catalog_items: nutrition densities per 100 grams (food)
// or 100 ml (drink). Seeded rows are read-only; rows with Custom=true were
// created by the user and may be deleted.
type catalogItem struct {
	ID         string     `json:"id" db:"id"`
	Name       string     `json:"name" db:"name"`
	Type       string     `json:"type" db:"type"`
	Kcal100    float64    `json:"kcal_100" db:"kcal_100"`
	Protein100 float64    `json:"protein_100" db:"protein_100"`
	Carb100    float64    `json:"carb_100" db:"carb_100"`
	Fat100     float64    `json:"fat_100" db:"fat_100"`
	Custom     bool       `json:"custom" db:"custom"`
	CreatedAt  *time.Time `json:"created_at" db:"created_at"`
}

/* ─── Computation types ──────────────────────────────────────────────── */

// macroTotals is an additive reduction over a day's log entries.
// No rounding here — entries are already rounded at creation time.
type macroTotals struct {
	Kcal     int     `json:"kcal"`
	ProteinG float64 `json:"protein_g"`
	CarbG    float64 `json:"carb_g"`
	FatG     float64 `json:"fat_g"`
}

// goalTargets is the output of computeGoalTargets: the full computed goal
// from a body profile.
type goalTargets struct {
	BMR        int `json:"bmr"`
	TDEE       int `json:"tdee"`
	TargetKcal int `json:"target_kcal"`
	ProteinG   int `json:"protein_g"`
	CarbG      int `json:"carb_g"`
	FatG       int `json:"fat_g"`
}

// intakeDay is one date's summed logged calories, as consumed by the
// adaptive estimator. Dates are ISO "YYYY-MM-DD" strings.
type intakeDay struct {
	Date string `json:"date" db:"date"`
	Kcal int    `json:"kcal" db:"kcal"`
}

// adaptiveEstimate is the successful output of computeAdaptiveTDEE.
type adaptiveEstimate struct {
	AdaptiveTDEE   int     `json:"adaptive_tdee"`
	WeeklyChangeKG float64 `json:"weekly_change_kg"`
	AvgIntakeKcal  int     `json:"avg_intake_kcal"`
}

/* ─── Request types ──────────────────────────────────────────────────── */

// putTargetsRequest is the body for PUT /api/targets. The whole record is
// required — targets are persisted entirely each time.
type putTargetsRequest struct {
	Kcal     int `json:"kcal"`
	ProteinG int `json:"protein_g"`
	CarbG    int `json:"carb_g"`
	FatG     int `json:"fat_g"`
}

// patchProfileRequest is the body for PATCH /api/profile. All fields are
// pointers — only non-nil fields get written to the database.
type patchProfileRequest struct {
	Gender              *string  `json:"gender"`
	Age                 *int     `json:"age"`
	HeightCM            *float64 `json:"height_cm"`
	WeightKG            *float64 `json:"weight_kg"`
	ActivityMultiplier  *float64 `json:"activity_multiplier"`
	TrainingDaysPerWeek *int     `json:"training_days_per_week"`
	StepsTarget         *int     `json:"steps_target"`
	GoalMode            *string  `json:"goal_mode"`
}

// createDailyLogRequest is the body for POST /api/daily-log. The entry's
// nutrition values are computed server-side from the catalog item.
type createDailyLogRequest struct {
	Date   string  `json:"date"`
	ItemID string  `json:"item_id"`
	Grams  float64 `json:"grams"`
}

// createCatalogItemRequest is the body for POST /api/catalog.
// Densities are per 100 grams (food) or 100 ml (drink).
type createCatalogItemRequest struct {
	Name       string  `json:"name"`
	Type       string  `json:"type"`
	Kcal100    float64 `json:"kcal_100"`
	Protein100 float64 `json:"protein_100"`
	Carb100    float64 `json:"carb_100"`
	Fat100     float64 `json:"fat_100"`
}

/* ─── Response types ─────────────────────────────────────────────────── */

// dailySummary is the response shape for GET /api/daily-log.
type dailySummary struct {
	Date          string           `json:"date"`
	Totals        macroTotals      `json:"totals"`
	RemainingKcal int              `json:"remaining_kcal"`
	Targets       nutritionTargets `json:"targets"`
	Items         []dailyLogEntry  `json:"items"`
}

// weekDaySummary is one day's entry in the GET /api/daily-log/week response.
// Days with no logged items have HasData=false and zero totals.
type weekDaySummary struct {
	Date     string  `json:"date"`
	Kcal     int     `json:"kcal"`
	ProteinG float64 `json:"protein_g"`
	CarbG    float64 `json:"carb_g"`
	FatG     float64 `json:"fat_g"`
	HasData  bool    `json:"has_data"`
	MetGoal  bool    `json:"met_goal"`
}

// weekSummary is the response shape for GET /api/daily-log/week: the trailing
// seven days (oldest first), the current goal streak, and the week average.
type weekSummary struct {
	Days       []weekDaySummary `json:"days"`
	Streak     int              `json:"streak"`
	AvgKcal    int              `json:"avg_kcal"`
	LoggedDays int              `json:"logged_days"`
}

// weekDayDBRow is the shape of each row returned by the trailing-week
// GROUP BY query. Used only for scanning.
type weekDayDBRow struct {
	Date     DateOnly `db:"date"`
	Kcal     int      `db:"kcal"`
	ProteinG float64  `db:"protein_g"`
	CarbG    float64  `db:"carb_g"`
	FatG     float64  `db:"fat_g"`
}
