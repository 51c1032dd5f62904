package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/wedding-planner/internal/model"
	"github.com/iliyamo/wedding-planner/internal/repository"
	"github.com/iliyamo/wedding-planner/internal/utils"
)

const invitationCodeLen = 8

// FamilyHandler covers family administration: listing, creation, marking
// invitations as sent and reading a family's guests.
type FamilyHandler struct {
	Families *repository.FamilyRepo
	Guests   *repository.GuestRepo
}

// NewFamilyHandler constructs a FamilyHandler and panics on nil deps.
func NewFamilyHandler(f *repository.FamilyRepo, g *repository.GuestRepo) *FamilyHandler {
	if f == nil || g == nil {
		panic("nil repository passed to NewFamilyHandler")
	}
	return &FamilyHandler{Families: f, Guests: g}
}

type createFamilyReq struct {
	FamilyName    string  `json:"familyName"`
	ContactPerson string  `json:"contactPerson"`
	Email         *string `json:"email"`
	Phone         string  `json:"phone"`
	MaxGuests     int     `json:"maxGuests"`
}

// List handles GET /v1/families.
func (h *FamilyHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	families, err := h.Families.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	out := make([]model.FamilyInfo, 0, len(families))
	for i := range families {
		out = append(out, families[i].Info())
	}
	return c.JSON(http.StatusOK, out)
}

// Create handles POST /v1/families.  An invitation code is generated
// server-side; on the unlikely collision the insert is retried with a
// fresh code.
func (h *FamilyHandler) Create(c echo.Context) error {
	var req createFamilyReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.FamilyName = strings.TrimSpace(req.FamilyName)
	req.ContactPerson = strings.TrimSpace(req.ContactPerson)
	if req.FamilyName == "" || req.ContactPerson == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "familyName/contactPerson required"})
	}
	if req.MaxGuests < 1 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "maxGuests must be positive"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	fam := &model.Family{
		FamilyName:    req.FamilyName,
		ContactPerson: req.ContactPerson,
		Email:         req.Email,
		Phone:         strings.TrimSpace(req.Phone),
		MaxGuests:     uint32(req.MaxGuests),
	}
	for attempt := 0; attempt < 3; attempt++ {
		code, err := utils.NewInvitationCode(invitationCodeLen)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "generate code failed"})
		}
		fam.InvitationCode = code
		err = h.Families.Create(ctx, fam)
		if err == nil {
			return c.JSON(http.StatusCreated, fam.Info())
		}
		if !errors.Is(err, repository.ErrInvitationCodeExists) {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create family failed"})
		}
	}
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create family failed"})
}

// MarkSent handles PUT /v1/families/:id/mark-sent.
func (h *FamilyHandler) MarkSent(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid family id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Families.MarkSent(ctx, id); err != nil {
		if errors.Is(err, repository.ErrFamilyNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "family not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// FamilyGuests handles GET /v1/families/:id/guests.
func (h *FamilyHandler) FamilyGuests(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid family id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.Families.GetByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrFamilyNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "family not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	guests, err := h.Guests.ListByFamily(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	out := make([]model.GuestInfo, 0, len(guests))
	for i := range guests {
		out = append(out, guests[i].Info())
	}
	return c.JSON(http.StatusOK, out)
}
