package main

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
)

// getWeightLog returns weight entries for the authenticated user within [start, end].
// GET /api/weight-log?start=YYYY-MM-DD&end=YYYY-MM-DD. Both params required.
// Returns an empty array (not null) if no entries exist in the range.
func (h *Handler) getWeightLog(c *gin.Context) {
	userID := c.GetInt("user_id")
	start := c.Query("start")
	end := c.Query("end")

	if start == "" || end == "" {
		apiError(c, http.StatusBadRequest, "start and end query params are required")
		return
	}
	if _, err := time.Parse("2006-01-02", start); err != nil {
		apiError(c, http.StatusBadRequest, "invalid start, expected YYYY-MM-DD")
		return
	}
	if _, err := time.Parse("2006-01-02", end); err != nil {
		apiError(c, http.StatusBadRequest, "invalid end, expected YYYY-MM-DD")
		return
	}
	if start > end {
		apiError(c, http.StatusBadRequest, "start must not be after end")
		return
	}

	entries, err := queryMany[weightEntry](h.db, c,
		`SELECT * FROM weight_log
		 WHERE user_id = @userID AND date >= @start AND date <= @end
		 ORDER BY date ASC`,
		pgx.NamedArgs{"userID": userID, "start": start, "end": end})
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to fetch weight log")
		return
	}
	// Ensure empty array (not null) in JSON
	if entries == nil {
		entries = []weightEntry{}
	}

	c.JSON(http.StatusOK, entries)
}

// upsertWeightEntry creates or updates the weight entry for the given date.
// POST /api/weight-log. Body: { "date": "YYYY-MM-DD", "weight_kg": 82.4 }.
// The UNIQUE(user_id, date) constraint keeps at most one entry per date:
// posting the same date updates in place, never duplicates.
func (h *Handler) upsertWeightEntry(c *gin.Context) {
	userID := c.GetInt("user_id")

	var body struct {
		Date     string  `json:"date"`
		WeightKG float64 `json:"weight_kg"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if body.Date == "" {
		apiError(c, http.StatusBadRequest, "date is required")
		return
	}
	if _, err := time.Parse("2006-01-02", body.Date); err != nil {
		apiError(c, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
		return
	}
	if body.WeightKG <= 0 || body.WeightKG > 500 {
		apiError(c, http.StatusBadRequest, "weight_kg must be between 0 and 500")
		return
	}

	entry, err := queryOne[weightEntry](h.db, c,
		`INSERT INTO weight_log (user_id, date, weight_kg)
		 VALUES (@userID, @date, @weightKG)
		 ON CONFLICT (user_id, date) DO UPDATE SET weight_kg = EXCLUDED.weight_kg
		 RETURNING *`,
		pgx.NamedArgs{"userID": userID, "date": body.Date, "weightKG": body.WeightKG})
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to upsert weight entry")
		return
	}

	c.JSON(http.StatusCreated, entry)
}

// deleteWeightEntry removes the weight entry for a date — the ledger is keyed
// by date, so deletion is too.
// DELETE /api/weight-log/:date. Returns 204 on success, 404 if no entry exists.
func (h *Handler) deleteWeightEntry(c *gin.Context) {
	userID := c.GetInt("user_id")
	date := c.Param("date")

	if _, err := time.Parse("2006-01-02", date); err != nil {
		apiError(c, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
		return
	}

	result, err := h.db.Exec(c,
		"DELETE FROM weight_log WHERE user_id = @userID AND date = @date",
		pgx.NamedArgs{"userID": userID, "date": date})
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to delete weight entry")
		return
	}
	if result.RowsAffected() == 0 {
		apiError(c, http.StatusNotFound, "weight entry not found")
		return
	}

	c.Status(http.StatusNoContent)
}
