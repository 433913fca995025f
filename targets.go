package main

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
)

// loadTargets reads the user's targets row, falling back to the hardcoded
// defaults when none exists. Targets are always defined for callers.
func (h *Handler) loadTargets(c *gin.Context, userID int) (nutritionTargets, error) {
	t, err := queryOne[nutritionTargets](h.db, c,
		"SELECT * FROM nutrition_targets WHERE user_id = @userID",
		pgx.NamedArgs{"userID": userID})
	if errors.Is(err, pgx.ErrNoRows) {
		return defaultTargets(userID), nil
	}
	return t, err
}

// getTargets returns the user's daily targets, or the defaults if none were
// ever saved. GET /api/targets.
func (h *Handler) getTargets(c *gin.Context) {
	userID := c.GetInt("user_id")

	t, err := h.loadTargets(c, userID)
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to fetch targets")
		return
	}

	c.JSON(http.StatusOK, t)
}

// putTargets overwrites the user's daily targets with the full record —
// there is no partial patch for targets. PUT /api/targets.
func (h *Handler) putTargets(c *gin.Context) {
	userID := c.GetInt("user_id")

	var body putTargetsRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if body.Kcal <= 0 {
		apiError(c, http.StatusBadRequest, "kcal must be a positive number")
		return
	}
	if body.ProteinG < 0 || body.CarbG < 0 || body.FatG < 0 {
		apiError(c, http.StatusBadRequest, "macro targets must not be negative")
		return
	}

	t, err := queryOne[nutritionTargets](h.db, c,
		`INSERT INTO nutrition_targets (user_id, kcal, protein_g, carb_g, fat_g)
		 VALUES (@userID, @kcal, @proteinG, @carbG, @fatG)
		 ON CONFLICT (user_id) DO UPDATE SET
			kcal      = EXCLUDED.kcal,
			protein_g = EXCLUDED.protein_g,
			carb_g    = EXCLUDED.carb_g,
			fat_g     = EXCLUDED.fat_g
		 RETURNING *`,
		pgx.NamedArgs{
			"userID": userID, "kcal": body.Kcal,
			"proteinG": body.ProteinG, "carbG": body.CarbG, "fatG": body.FatG,
		})
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to save targets")
		return
	}

	c.JSON(http.StatusOK, t)
}

/* ─── Adaptive TDEE endpoints ────────────────────────────────────────── */

// runAdaptiveEstimate loads the weigh-in history, the matching intake window,
// and the profile, then runs the pure estimator. reason is set when ok=false.
func (h *Handler) runAdaptiveEstimate(c *gin.Context, userID int) (adaptiveEstimate, bool, string, error) {
	weights, err := queryMany[weightEntry](h.db, c,
		"SELECT * FROM weight_log WHERE user_id = @userID ORDER BY date ASC",
		pgx.NamedArgs{"userID": userID})
	if err != nil {
		return adaptiveEstimate{}, false, "", err
	}

	start, end, ok := adaptiveWindow(weights)
	if !ok {
		return adaptiveEstimate{}, false, "need at least 10 weight entries", nil
	}

	intake, err := queryMany[intakeDay](h.db, c,
		`SELECT TO_CHAR(date, 'YYYY-MM-DD') AS date, COALESCE(SUM(kcal), 0)::int AS kcal
		 FROM daily_logs
		 WHERE user_id = @userID AND date >= @start AND date <= @end
		 GROUP BY date`,
		pgx.NamedArgs{"userID": userID, "start": start, "end": end})
	if err != nil {
		return adaptiveEstimate{}, false, "", err
	}

	profile := h.loadProfileOrNil(c, userID)

	est, ok := computeAdaptiveTDEE(weights, intake, profile)
	if !ok {
		return adaptiveEstimate{}, false, "need at least 7 days with logged intake in the weigh-in window", nil
	}
	return est, true, "", nil
}

// getAdaptiveTDEE returns a corrected TDEE inferred from the weight trend and
// logged intake, or an insufficient-data response (200 — this is an expected
// outcome, not an error). GET /api/adaptive-tdee.
func (h *Handler) getAdaptiveTDEE(c *gin.Context) {
	userID := c.GetInt("user_id")

	est, ok, reason, err := h.runAdaptiveEstimate(c, userID)
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to compute adaptive TDEE")
		return
	}
	if !ok {
		c.JSON(http.StatusOK, gin.H{"insufficient_data": true, "reason": reason})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"insufficient_data": false,
		"estimate":          est,
	})
}

// acceptAdaptiveTDEE recomputes the estimate and writes the accepted calorie
// target into the user's targets. Protein and fat targets are kept; the carb
// target is rebalanced with the remaining-calorie method so carbs absorb the
// slack. POST /api/adaptive-tdee/accept.
func (h *Handler) acceptAdaptiveTDEE(c *gin.Context) {
	userID := c.GetInt("user_id")

	est, ok, reason, err := h.runAdaptiveEstimate(c, userID)
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to compute adaptive TDEE")
		return
	}
	if !ok {
		apiError(c, http.StatusConflict, reason)
		return
	}

	current, err := h.loadTargets(c, userID)
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to fetch targets")
		return
	}

	t, err := queryOne[nutritionTargets](h.db, c,
		`INSERT INTO nutrition_targets (user_id, kcal, protein_g, carb_g, fat_g)
		 VALUES (@userID, @kcal, @proteinG, @carbG, @fatG)
		 ON CONFLICT (user_id) DO UPDATE SET
			kcal      = EXCLUDED.kcal,
			protein_g = EXCLUDED.protein_g,
			carb_g    = EXCLUDED.carb_g,
			fat_g     = EXCLUDED.fat_g
		 RETURNING *`,
		pgx.NamedArgs{
			"userID":   userID,
			"kcal":     est.AdaptiveTDEE,
			"proteinG": current.ProteinG,
			"carbG":    suggestCarb(est.AdaptiveTDEE, current.ProteinG, current.FatG),
			"fatG":     current.FatG,
		})
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to save targets")
		return
	}

	c.JSON(http.StatusOK, gin.H{"targets": t, "estimate": est})
}
