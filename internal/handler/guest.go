package handler

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/wedding-planner/internal/model"
	"github.com/iliyamo/wedding-planner/internal/repository"
)

// GuestHandler covers guest administration.  Assignment is deliberately
// not here; moving a guest between tables goes through AssignmentHandler
// so the capacity check cannot be bypassed.
type GuestHandler struct {
	Guests   *repository.GuestRepo
	Families *repository.FamilyRepo
}

// NewGuestHandler constructs a GuestHandler and panics on nil deps.
func NewGuestHandler(g *repository.GuestRepo, f *repository.FamilyRepo) *GuestHandler {
	if g == nil || f == nil {
		panic("nil repository passed to NewGuestHandler")
	}
	return &GuestHandler{Guests: g, Families: f}
}

type createGuestReq struct {
	FamilyID uint64 `json:"familyId"`
	Name     string `json:"name"`
	IsChild  bool   `json:"isChild"`
	Country  string `json:"country"`
	Notes    string `json:"notes"`
}

type updateGuestReq struct {
	Name    string `json:"name"`
	IsChild bool   `json:"isChild"`
	Country string `json:"country"`
	Notes   string `json:"notes"`
}

// Create handles POST /v1/guests.  The family's maxGuests bound is
// enforced here: an invitation for four cannot grow a fifth guest.
func (h *GuestHandler) Create(c echo.Context) error {
	var req createGuestReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.FamilyID == 0 || req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "familyId/name required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	fam, err := h.Families.GetByID(ctx, req.FamilyID)
	if err != nil {
		if errors.Is(err, repository.ErrFamilyNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "family not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	n, err := h.Guests.CountByFamily(ctx, req.FamilyID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if n >= int(fam.MaxGuests) {
		return c.JSON(http.StatusConflict, echo.Map{"error": "family guest limit reached"})
	}

	g := &model.Guest{
		FamilyID: req.FamilyID,
		Name:     req.Name,
		IsChild:  req.IsChild,
		Country:  strings.TrimSpace(req.Country),
		Notes:    strings.TrimSpace(req.Notes),
	}
	if err := h.Guests.Create(ctx, g); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create guest failed"})
	}
	return c.JSON(http.StatusCreated, g.Info())
}

// Update handles PUT /v1/guests/:id.
func (h *GuestHandler) Update(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid guest id"})
	}
	var req updateGuestReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	err := h.Guests.Update(ctx, id, req.Name, req.IsChild, strings.TrimSpace(req.Country), strings.TrimSpace(req.Notes))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "guest not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	g, err := h.Guests.GetByID(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, g.Info())
}
