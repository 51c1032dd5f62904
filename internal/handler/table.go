package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/wedding-planner/internal/model"
	"github.com/iliyamo/wedding-planner/internal/repository"
)

// TableHandler serves the seating table read endpoints.  All occupancy
// numbers come from the repository's derived counts; nothing here mutates
// state, which is why these routes sit behind the response cache.
type TableHandler struct {
	Tables *repository.TableRepo
}

// NewTableHandler constructs a TableHandler and panics if the repository is nil.
func NewTableHandler(tables *repository.TableRepo) *TableHandler {
	if tables == nil {
		panic("nil repository passed to NewTableHandler")
	}
	return &TableHandler{Tables: tables}
}

// Summary handles GET /v1/tables/summary.  Every table is returned, full or
// not, with its derived occupancy fields.
func (h *TableHandler) Summary(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	tables, err := h.Tables.ListWithOccupancy(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	out := make([]model.TableSummary, 0, len(tables))
	for i := range tables {
		out = append(out, tables[i].Summary())
	}
	return c.JSON(http.StatusOK, out)
}

// Available handles GET /v1/tables/available.  Only tables with at least one
// free seat are listed; the assignment dropdown merges its guest's current
// table back in on the client side.
func (h *TableHandler) Available(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	tables, err := h.Tables.ListWithOccupancy(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	out := make([]model.AvailableTable, 0, len(tables))
	for i := range tables {
		t := &tables[i]
		if t.IsFull() {
			continue
		}
		out = append(out, model.AvailableTable{
			ID:             t.ID,
			TableName:      t.TableName,
			AvailableSeats: t.AvailableSeats(),
			Display:        fmt.Sprintf("%s (%d seats left)", t.TableName, t.AvailableSeats()),
		})
	}
	return c.JSON(http.StatusOK, out)
}

// Stats handles GET /v1/tables/stats.
func (h *TableHandler) Stats(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	stats, err := h.Tables.Stats(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, stats)
}

// Guests handles GET /v1/tables/:id/guests, the per-table roster.
func (h *TableHandler) Guests(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid table id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	roster, err := h.Tables.Roster(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrTableNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "table not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, roster)
}
