package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Handler holds shared dependencies (db pool, config) for all route handlers.
// now and pickVariant are injectable so tests can pin the clock and the
// motivation pool selection.
type Handler struct {
	db            *pgxpool.Pool
	openAIBaseURL string           // Base URL for OpenAI API (overridable for tests)
	now           func() time.Time // defaults to time.Now
	pickVariant   func(n int) int  // defaults to rand.Intn
}

// newHandler wires the default clock and variant picker.
func newHandler(db *pgxpool.Pool, openAIBaseURL string) *Handler {
	return &Handler{
		db:            db,
		openAIBaseURL: openAIBaseURL,
		now:           time.Now,
		pickVariant:   rand.Intn,
	}
}

/* ─── Database helpers ────────────────────────────────────────────────── */

// queryOne runs a query and scans the first row into T using RowToStructByName.
// Logs query and scan errors for debugging (e.g. struct/column mismatches).
func queryOne[T any](pool *pgxpool.Pool, c *gin.Context, sql string, args pgx.NamedArgs) (T, error) {
	rows, err := pool.Query(c, sql, args)
	if err != nil {
		log.Printf("[queryOne] Query error: %v", err)
		var zero T
		return zero, err
	}
	result, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[T])
	// ErrNoRows is an expected outcome for load-or-default reads; don't log it.
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		log.Printf("[queryOne] Scan error: %v", err)
	}
	return result, err
}

// queryMany runs a query and scans all rows into []T using RowToStructByName.
func queryMany[T any](pool *pgxpool.Pool, c *gin.Context, sql string, args pgx.NamedArgs) ([]T, error) {
	rows, err := pool.Query(c, sql, args)
	if err != nil {
		log.Printf("[queryMany] Query error: %v", err)
		return nil, err
	}
	results, err := pgx.CollectRows(rows, pgx.RowToStructByName[T])
	if err != nil {
		log.Printf("[queryMany] Scan error: %v", err)
	}
	return results, err
}

// apiError returns a consistent JSON error response: {"error": "message"}.
func apiError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

/* ─── Server setup ────────────────────────────────────────────────────── */

// getDBPool creates a connection pool. We use a pool (not a single conn) because
// Neon closes idle connections after ~5 minutes.
func getDBPool() *pgxpool.Pool {
	config, err := pgxpool.ParseConfig(os.Getenv("DB_URL"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unable to parse DB URL: %v\n", err)
		os.Exit(1)
	}
	// Use simple query protocol to avoid "cached plan must not change result type"
	// errors from Neon's server-side prepared statement cache after schema changes.
	config.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeSimpleProtocol
	pool, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unable to connect to database: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("DB pool ready!")
	return pool
}

// registerRoutes registers all API routes on the router.
func (h *Handler) registerRoutes(router *gin.Engine) {
	// Public routes
	router.POST("/api/login", h.login)

	// Authenticated routes
	api := router.Group("/api", h.authMiddleware())
	api.GET("/targets", h.getTargets)
	api.PUT("/targets", h.putTargets)
	api.GET("/profile", h.getProfile)
	api.PATCH("/profile", h.patchProfile)
	api.GET("/goals/suggest", h.suggestGoals)
	api.GET("/adaptive-tdee", h.getAdaptiveTDEE)
	api.POST("/adaptive-tdee/accept", h.acceptAdaptiveTDEE)
	api.GET("/daily-log", h.getDailySummary)
	api.GET("/daily-log/week", h.getWeekSummary)
	api.POST("/daily-log", h.createDailyLogEntry)
	api.PUT("/daily-log/:id", h.updateDailyLogEntry)
	api.DELETE("/daily-log/:id", h.deleteDailyLogEntry)
	api.GET("/motivation", h.getMotivation)
	api.GET("/weight-log", h.getWeightLog)
	api.POST("/weight-log", h.upsertWeightEntry)
	api.DELETE("/weight-log/:date", h.deleteWeightEntry)
	api.GET("/catalog", h.searchCatalog)
	api.POST("/catalog", h.createCatalogItem)
	api.DELETE("/catalog/:id", h.deleteCatalogItem)
	api.POST("/catalog/suggest", h.suggestCatalogItem)
}
