package main

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// maxCatalogResults caps search responses; the frontend renders a dropdown,
// not a full listing.
const maxCatalogResults = 30

// validCatalogTypes is the set of allowed values for the catalog item type.
// Reject unknown values with 400 rather than letting the DB return a cryptic 500.
var validCatalogTypes = map[string]bool{
	"food":  true,
	"drink": true,
}

// searchCatalog returns catalog items, optionally filtered by type and a
// case-insensitive name substring.
// GET /api/catalog?type=food|drink&q=chicken.
func (h *Handler) searchCatalog(c *gin.Context) {
	itemType := c.Query("type")
	q := strings.TrimSpace(c.Query("q"))

	if itemType != "" && !validCatalogTypes[itemType] {
		apiError(c, http.StatusBadRequest, "type must be one of: food, drink")
		return
	}

	items, err := queryMany[catalogItem](h.db, c,
		`SELECT * FROM catalog_items
		 WHERE (@itemType = '' OR type = @itemType)
		   AND (@q = '' OR name ILIKE '%' || @q || '%')
		 ORDER BY name ASC
		 LIMIT @limit`,
		pgx.NamedArgs{"itemType": itemType, "q": q, "limit": maxCatalogResults})
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to search catalog")
		return
	}
	if items == nil {
		items = []catalogItem{}
	}

	c.JSON(http.StatusOK, items)
}

// createCatalogItem adds a user-defined item with per-100 nutrition
// densities. Custom items get a "custom_" prefixed ID so the frontend can
// tell them apart from seeded ones.
// POST /api/catalog.
func (h *Handler) createCatalogItem(c *gin.Context) {
	var body createCatalogItemRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(body.Name) == "" {
		apiError(c, http.StatusBadRequest, "name is required")
		return
	}
	if !validCatalogTypes[body.Type] {
		apiError(c, http.StatusBadRequest, "type must be one of: food, drink")
		return
	}
	if body.Kcal100 < 0 || body.Protein100 < 0 || body.Carb100 < 0 || body.Fat100 < 0 {
		apiError(c, http.StatusBadRequest, "nutrition values must not be negative")
		return
	}

	id := "custom_" + uuid.New().String()

	item, err := queryOne[catalogItem](h.db, c,
		`INSERT INTO catalog_items (id, name, type, kcal_100, protein_100, carb_100, fat_100, custom)
		 VALUES (@id, @name, @type, @kcal100, @protein100, @carb100, @fat100, TRUE)
		 RETURNING *`,
		pgx.NamedArgs{
			"id": id, "name": strings.TrimSpace(body.Name), "type": body.Type,
			"kcal100": body.Kcal100, "protein100": body.Protein100,
			"carb100": body.Carb100, "fat100": body.Fat100,
		})
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to create catalog item")
		return
	}

	c.JSON(http.StatusCreated, item)
}

// deleteCatalogItem removes a custom item. Seeded items are read-only, so the
// custom flag is part of the WHERE clause — deleting a seeded ID is a 404.
// Log entries that referenced the item keep their stored values; future edits
// fall back to ratio scaling.
// DELETE /api/catalog/:id.
func (h *Handler) deleteCatalogItem(c *gin.Context) {
	id := c.Param("id")

	result, err := h.db.Exec(c,
		"DELETE FROM catalog_items WHERE id = @id AND custom = TRUE",
		pgx.NamedArgs{"id": id})
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to delete catalog item")
		return
	}
	if result.RowsAffected() == 0 {
		apiError(c, http.StatusNotFound, "custom catalog item not found")
		return
	}

	c.Status(http.StatusNoContent)
}
