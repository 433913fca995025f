package main

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
)

// loadProfileOrNil reads the user's body profile, returning nil when no row
// exists. Callers treat nil as "no profile yet" — the same as an all-null row.
func (h *Handler) loadProfileOrNil(c *gin.Context, userID int) *bodyProfile {
	p, err := queryOne[bodyProfile](h.db, c,
		"SELECT * FROM body_profile WHERE user_id = @userID",
		pgx.NamedArgs{"userID": userID})
	if err != nil {
		return nil
	}
	return &p
}

// getProfile returns the user's body profile. Missing fields come back null —
// partial profiles are fine until a computation needs them.
// GET /api/profile.
func (h *Handler) getProfile(c *gin.Context) {
	userID := c.GetInt("user_id")

	p, err := queryOne[bodyProfile](h.db, c,
		"SELECT * FROM body_profile WHERE user_id = @userID",
		pgx.NamedArgs{"userID": userID})
	if err != nil {
		apiError(c, http.StatusNotFound, "profile not found")
		return
	}

	c.JSON(http.StatusOK, p)
}

// patchProfile updates only the provided body-profile fields.
// PATCH /api/profile. Uses pointer fields in the request body to distinguish
// "not provided" from zero — only non-nil fields get updated. Each provided
// field is validated before anything is written.
func (h *Handler) patchProfile(c *gin.Context) {
	userID := c.GetInt("user_id")

	var body patchProfileRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	if body.Gender != nil && *body.Gender != "male" && *body.Gender != "female" {
		apiError(c, http.StatusBadRequest, "gender must be one of: male, female")
		return
	}
	if body.Age != nil && *body.Age <= 0 {
		apiError(c, http.StatusBadRequest, "age must be a positive number")
		return
	}
	if body.HeightCM != nil && *body.HeightCM <= 0 {
		apiError(c, http.StatusBadRequest, "height_cm must be a positive number")
		return
	}
	if body.WeightKG != nil && *body.WeightKG <= 0 {
		apiError(c, http.StatusBadRequest, "weight_kg must be a positive number")
		return
	}
	if body.ActivityMultiplier != nil && (*body.ActivityMultiplier < 1.0 || *body.ActivityMultiplier > 2.5) {
		apiError(c, http.StatusBadRequest, "activity_multiplier must be between 1.0 and 2.5")
		return
	}
	if body.TrainingDaysPerWeek != nil && (*body.TrainingDaysPerWeek < 0 || *body.TrainingDaysPerWeek > 7) {
		apiError(c, http.StatusBadRequest, "training_days_per_week must be between 0 and 7")
		return
	}
	if body.StepsTarget != nil && *body.StepsTarget < 0 {
		apiError(c, http.StatusBadRequest, "steps_target must not be negative")
		return
	}
	// Validate goal_mode before saving — an unknown mode silently falls back
	// to maintain in every later computation with no visible error.
	if body.GoalMode != nil {
		if _, ok := goalModeMultipliers[*body.GoalMode]; !ok {
			apiError(c, http.StatusBadRequest, "goal_mode must be one of: cut_moderate, cut_aggressive, maintain, bulk")
			return
		}
	}

	// Build SET clause dynamically — only update fields the client actually sent
	setClauses := []string{}
	args := pgx.NamedArgs{"userID": userID}

	if body.Gender != nil {
		setClauses = append(setClauses, "gender = @gender")
		args["gender"] = *body.Gender
	}
	if body.Age != nil {
		setClauses = append(setClauses, "age = @age")
		args["age"] = *body.Age
	}
	if body.HeightCM != nil {
		setClauses = append(setClauses, "height_cm = @heightCM")
		args["heightCM"] = *body.HeightCM
	}
	if body.WeightKG != nil {
		setClauses = append(setClauses, "weight_kg = @weightKG")
		args["weightKG"] = *body.WeightKG
	}
	if body.ActivityMultiplier != nil {
		setClauses = append(setClauses, "activity_multiplier = @activityMultiplier")
		args["activityMultiplier"] = *body.ActivityMultiplier
	}
	if body.TrainingDaysPerWeek != nil {
		setClauses = append(setClauses, "training_days_per_week = @trainingDaysPerWeek")
		args["trainingDaysPerWeek"] = *body.TrainingDaysPerWeek
	}
	if body.StepsTarget != nil {
		setClauses = append(setClauses, "steps_target = @stepsTarget")
		args["stepsTarget"] = *body.StepsTarget
	}
	if body.GoalMode != nil {
		setClauses = append(setClauses, "goal_mode = @goalMode")
		args["goalMode"] = *body.GoalMode
	}

	if len(setClauses) == 0 {
		apiError(c, http.StatusBadRequest, "no fields to update")
		return
	}

	query := "UPDATE body_profile SET " +
		strings.Join(setClauses, ", ") +
		" WHERE user_id = @userID RETURNING *"

	p, err := queryOne[bodyProfile](h.db, c, query, args)
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to update profile")
		return
	}

	c.JSON(http.StatusOK, p)
}

// suggestGoals computes BMR, TDEE, the goal-adjusted calorie target, and
// macro suggestions from the body profile. Returns 422 when the core profile
// fields are missing or non-positive — it never computes from a partial
// profile. GET /api/goals/suggest.
func (h *Handler) suggestGoals(c *gin.Context) {
	userID := c.GetInt("user_id")

	p := h.loadProfileOrNil(c, userID)
	if p == nil {
		apiError(c, http.StatusUnprocessableEntity, "profile is incomplete: set gender, age, height_cm and weight_kg first")
		return
	}

	goals, err := computeGoalTargets(p)
	if err != nil {
		apiError(c, http.StatusUnprocessableEntity, "profile is incomplete: "+err.Error())
		return
	}

	c.JSON(http.StatusOK, goals)
}
