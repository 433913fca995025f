package main

import (
	"errors"
	"math"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
)

// round1 rounds to one decimal place — the documented precision for logged
// macro grams. Calories stay integers; don't unify the two.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// entryNutrition computes a log entry's values from a catalog item's per-100
// densities and the logged amount.
func entryNutrition(item catalogItem, grams float64) (kcal int, proteinG, carbG, fatG float64) {
	mult := grams / 100
	kcal = int(math.Round(item.Kcal100 * mult))
	proteinG = round1(item.Protein100 * mult)
	carbG = round1(item.Carb100 * mult)
	fatG = round1(item.Fat100 * mult)
	return
}

// scaleEntryNutrition rescales an existing entry's stored values to a new
// amount. Used on edit when the source catalog item no longer resolves.
func scaleEntryNutrition(e dailyLogEntry, grams float64) (kcal int, proteinG, carbG, fatG float64) {
	ratio := grams / e.Grams
	kcal = int(math.Round(float64(e.Kcal) * ratio))
	proteinG = round1(e.ProteinG * ratio)
	carbG = round1(e.CarbG * ratio)
	fatG = round1(e.FatG * ratio)
	return
}

// getDailySummary returns the day's log entries, macro totals, and remaining
// calories against the targets.
// GET /api/daily-log?date=YYYY-MM-DD (defaults to today).
func (h *Handler) getDailySummary(c *gin.Context) {
	userID := c.GetInt("user_id")
	date := c.DefaultQuery("date", h.now().Format("2006-01-02"))

	// Validate date format before querying — an invalid value silently returns no rows.
	if _, err := time.Parse("2006-01-02", date); err != nil {
		apiError(c, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
		return
	}

	items, err := queryMany[dailyLogEntry](h.db, c,
		`SELECT * FROM daily_logs
		 WHERE user_id = @userID AND date = @date
		 ORDER BY created_at`,
		pgx.NamedArgs{"userID": userID, "date": date})
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to fetch entries")
		return
	}
	// Ensure items is an empty array (not null) in JSON
	if items == nil {
		items = []dailyLogEntry{}
	}

	targets, err := h.loadTargets(c, userID)
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to fetch targets")
		return
	}

	totals := sumEntryTotals(items)

	c.JSON(http.StatusOK, dailySummary{
		Date:          date,
		Totals:        totals,
		RemainingKcal: targets.Kcal - totals.Kcal,
		Targets:       targets,
		Items:         items,
	})
}

// loadWeekRows returns the per-day GROUP BY totals for the trailing 7-day
// window ending at (and including) end, keyed by date string.
func (h *Handler) loadWeekRows(c *gin.Context, userID int, dates []string) (map[string]weekDayDBRow, error) {
	rows, err := queryMany[weekDayDBRow](h.db, c,
		`SELECT
			date,
			COALESCE(SUM(kcal), 0)::int  AS kcal,
			COALESCE(SUM(protein_g), 0) AS protein_g,
			COALESCE(SUM(carb_g), 0)    AS carb_g,
			COALESCE(SUM(fat_g), 0)     AS fat_g
		 FROM daily_logs
		 WHERE user_id = @userID AND date >= @start AND date <= @end
		 GROUP BY date`,
		pgx.NamedArgs{"userID": userID, "start": dates[0], "end": dates[len(dates)-1]})
	if err != nil {
		return nil, err
	}

	rowByDate := make(map[string]weekDayDBRow, len(rows))
	for _, r := range rows {
		rowByDate[r.Date.Time.Format("2006-01-02")] = r
	}
	return rowByDate, nil
}

// getWeekSummary returns per-day totals for the trailing 7 days (today
// included), the current goal streak, and the week's average intake. Days
// with no logged items are included with has_data=false.
// GET /api/daily-log/week.
func (h *Handler) getWeekSummary(c *gin.Context) {
	userID := c.GetInt("user_id")

	dates := lastNDates(h.now(), 7)
	rowByDate, err := h.loadWeekRows(c, userID, dates)
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to fetch week data")
		return
	}

	targets, err := h.loadTargets(c, userID)
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to fetch targets")
		return
	}

	days := make([]weekDaySummary, 0, len(dates))
	totalsByDate := make(map[string]int, len(dates))
	totalKcal, loggedDays := 0, 0
	for _, date := range dates {
		day := weekDaySummary{Date: date}
		if row, ok := rowByDate[date]; ok {
			day.HasData = true
			day.Kcal = row.Kcal
			day.ProteinG = row.ProteinG
			day.CarbG = row.CarbG
			day.FatG = row.FatG
		}
		day.MetGoal = goalMet(day.Kcal, targets.Kcal)
		totalsByDate[date] = day.Kcal
		totalKcal += day.Kcal
		if day.Kcal > 0 {
			loggedDays++
		}
		days = append(days, day)
	}

	// Streak walks most-recent-first; the week average spans the whole window
	// (zero days included), matching the chart the frontend draws from this.
	streak := computeGoalStreak(reverseDates(dates), totalsByDate, targets.Kcal)

	c.JSON(http.StatusOK, weekSummary{
		Days:       days,
		Streak:     streak,
		AvgKcal:    int(math.Round(float64(totalKcal) / 7)),
		LoggedDays: loggedDays,
	})
}

// createDailyLogEntry logs a catalog item. The entry's nutrition values are
// computed here, once, from the item's per-100 densities — the stored entry
// is immutable except through the edit flow.
// POST /api/daily-log. Defaults date to today if omitted.
func (h *Handler) createDailyLogEntry(c *gin.Context) {
	userID := c.GetInt("user_id")

	var body createDailyLogRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if body.ItemID == "" {
		apiError(c, http.StatusBadRequest, "item_id is required")
		return
	}
	if body.Grams <= 0 {
		apiError(c, http.StatusBadRequest, "grams must be a positive number")
		return
	}
	if body.Date == "" {
		body.Date = h.now().Format("2006-01-02")
	}
	if _, err := time.Parse("2006-01-02", body.Date); err != nil {
		apiError(c, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
		return
	}

	item, err := h.resolveCatalogItem(c, body.ItemID)
	if err != nil {
		apiError(c, http.StatusNotFound, "catalog item not found")
		return
	}

	kcal, proteinG, carbG, fatG := entryNutrition(item, body.Grams)

	entry, err := queryOne[dailyLogEntry](h.db, c,
		`INSERT INTO daily_logs (user_id, date, item_id, item_name, grams, kcal, protein_g, carb_g, fat_g)
		 VALUES (@userID, @date, @itemID, @itemName, @grams, @kcal, @proteinG, @carbG, @fatG)
		 RETURNING *`,
		pgx.NamedArgs{
			"userID": userID, "date": body.Date, "itemID": item.ID,
			"itemName": item.Name, "grams": body.Grams, "kcal": kcal,
			"proteinG": proteinG, "carbG": carbG, "fatG": fatG,
		})
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to create entry")
		return
	}

	c.JSON(http.StatusCreated, entry)
}

// updateDailyLogEntry edits an entry's amount. When the source catalog item
// still resolves, the values are recomputed from its densities; when it was
// deleted in the meantime, the stored values are ratio-scaled instead.
// PUT /api/daily-log/:id. Body: { "grams": 150 }.
func (h *Handler) updateDailyLogEntry(c *gin.Context) {
	userID := c.GetInt("user_id")
	id := c.Param("id")

	var body struct {
		Grams float64 `json:"grams"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if body.Grams <= 0 {
		apiError(c, http.StatusBadRequest, "grams must be a positive number")
		return
	}

	existing, err := queryOne[dailyLogEntry](h.db, c,
		"SELECT * FROM daily_logs WHERE id = @id AND user_id = @userID",
		pgx.NamedArgs{"id": id, "userID": userID})
	if err != nil {
		apiError(c, http.StatusNotFound, "entry not found")
		return
	}

	var kcal int
	var proteinG, carbG, fatG float64
	if item, err := h.resolveCatalogItem(c, existing.ItemID); err == nil {
		kcal, proteinG, carbG, fatG = entryNutrition(item, body.Grams)
	} else {
		kcal, proteinG, carbG, fatG = scaleEntryNutrition(existing, body.Grams)
	}

	entry, err := queryOne[dailyLogEntry](h.db, c,
		`UPDATE daily_logs SET
			grams     = @grams,
			kcal      = @kcal,
			protein_g = @proteinG,
			carb_g    = @carbG,
			fat_g     = @fatG
		 WHERE id = @id AND user_id = @userID
		 RETURNING *`,
		pgx.NamedArgs{
			"id": id, "userID": userID, "grams": body.Grams,
			"kcal": kcal, "proteinG": proteinG, "carbG": carbG, "fatG": fatG,
		})
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to update entry")
		return
	}

	c.JSON(http.StatusOK, entry)
}

// deleteDailyLogEntry removes a log entry. Returns 204 on success.
// DELETE /api/daily-log/:id.
func (h *Handler) deleteDailyLogEntry(c *gin.Context) {
	userID := c.GetInt("user_id")
	id := c.Param("id")

	result, err := h.db.Exec(c,
		"DELETE FROM daily_logs WHERE id = @id AND user_id = @userID",
		pgx.NamedArgs{"id": id, "userID": userID})
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to delete entry")
		return
	}
	if result.RowsAffected() == 0 {
		apiError(c, http.StatusNotFound, "entry not found")
		return
	}

	c.Status(http.StatusNoContent)
}

// getMotivation assembles the feedback message from today's totals, the
// trailing-week aggregates, and the goal streak. The message content itself
// is produced by the pure buildMotivationMessage.
// GET /api/motivation.
func (h *Handler) getMotivation(c *gin.Context) {
	userID := c.GetInt("user_id")
	now := h.now()
	today := now.Format("2006-01-02")

	items, err := queryMany[dailyLogEntry](h.db, c,
		"SELECT * FROM daily_logs WHERE user_id = @userID AND date = @date",
		pgx.NamedArgs{"userID": userID, "date": today})
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to fetch entries")
		return
	}

	dates := lastNDates(now, 7)
	rowByDate, err := h.loadWeekRows(c, userID, dates)
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to fetch week data")
		return
	}

	targets, err := h.loadTargets(c, userID)
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to fetch targets")
		return
	}

	totalsByDate := make(map[string]int, len(dates))
	totalKcal, loggedDays := 0, 0
	for _, date := range dates {
		kcal := rowByDate[date].Kcal
		totalsByDate[date] = kcal
		totalKcal += kcal
		if kcal > 0 {
			loggedDays++
		}
	}
	streak := computeGoalStreak(reverseDates(dates), totalsByDate, targets.Kcal)
	weekAvg := int(math.Round(float64(totalKcal) / 7))

	message := buildMotivationMessage(motivationInput{
		Today:        sumEntryTotals(items),
		TodayEntries: len(items),
		Targets:      targets,
		WeekAvgKcal:  weekAvg,
		LoggedDays:   loggedDays,
		Streak:       streak,
		Hour:         now.Hour(),
	}, h.pickVariant)

	c.JSON(http.StatusOK, gin.H{
		"message":     message,
		"streak":      streak,
		"week_avg":    weekAvg,
		"logged_days": loggedDays,
	})
}

// errCatalogMiss distinguishes "item gone" from DB failures in resolve paths.
var errCatalogMiss = errors.New("catalog item not found")

// resolveCatalogItem fetches a catalog item by ID. Used by the log create and
// edit/recompute flows.
func (h *Handler) resolveCatalogItem(c *gin.Context, itemID string) (catalogItem, error) {
	item, err := queryOne[catalogItem](h.db, c,
		"SELECT * FROM catalog_items WHERE id = @id",
		pgx.NamedArgs{"id": itemID})
	if errors.Is(err, pgx.ErrNoRows) {
		return catalogItem{}, errCatalogMiss
	}
	return item, err
}
