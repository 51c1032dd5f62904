package handler

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/wedding-planner/internal/model"
	"github.com/iliyamo/wedding-planner/internal/queue"
	"github.com/iliyamo/wedding-planner/internal/repository"
	queue_publisher "github.com/iliyamo/wedding-planner/internal/service"
	"github.com/iliyamo/wedding-planner/internal/utils"
)

// InvitationHandler serves the public invitation pages: no auth, rate
// limited, keyed by the family's invitation code.
type InvitationHandler struct {
	Families *repository.FamilyRepo
	Guests   *repository.GuestRepo
	Events   *repository.EventRepo
}

// NewInvitationHandler constructs an InvitationHandler and panics on nil deps.
func NewInvitationHandler(f *repository.FamilyRepo, g *repository.GuestRepo, e *repository.EventRepo) *InvitationHandler {
	if f == nil || g == nil || e == nil {
		panic("nil repository passed to NewInvitationHandler")
	}
	return &InvitationHandler{Families: f, Guests: g, Events: e}
}

type invitationResp struct {
	Family model.FamilyInfo  `json:"family"`
	Guests []model.GuestInfo `json:"guests"`
	Events []model.EventInfo `json:"events"`
	Status string            `json:"status"`
}

type respondReq struct {
	Attending *bool `json:"attending"`
}

// Show handles GET /api/invitation/:code.  Unknown codes return 404 with
// no hint whether the code ever existed.
func (h *InvitationHandler) Show(c echo.Context) error {
	code := utils.NormalizeInvitationCode(c.Param("code"))
	if code == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid code"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	fam, err := h.Families.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, repository.ErrFamilyNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "invitation not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	guests, err := h.Guests.ListByFamily(ctx, fam.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	events, err := h.Events.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	resp := invitationResp{
		Family: fam.Info(),
		Guests: make([]model.GuestInfo, 0, len(guests)),
		Events: make([]model.EventInfo, 0, len(events)),
		Status: fam.Status(),
	}
	for i := range guests {
		resp.Guests = append(resp.Guests, guests[i].Info())
	}
	for i := range events {
		resp.Events = append(resp.Events, events[i].Info())
	}
	return c.JSON(http.StatusOK, resp)
}

// Respond handles POST /api/invitation/:code/respond.  Families may change
// their answer; the latest response wins.
func (h *InvitationHandler) Respond(c echo.Context) error {
	code := utils.NormalizeInvitationCode(c.Param("code"))
	if code == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid code"})
	}
	var req respondReq
	if err := c.Bind(&req); err != nil || req.Attending == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "attending required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	fam, err := h.Families.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, repository.ErrFamilyNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "invitation not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if err := h.Families.Respond(ctx, fam.ID, *req.Attending); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}

	guestCount, _ := h.Guests.CountByFamily(ctx, fam.ID)
	ev := queue.RSVPRespondedEvent{
		FamilyID:    fam.ID,
		FamilyName:  fam.FamilyName,
		Attending:   *req.Attending,
		GuestCount:  guestCount,
		RespondedAt: time.Now().UTC().Format(time.RFC3339),
	}
	go func() {
		pubCtx, pubCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer pubCancel()
		if err := queue_publisher.PublishRSVPResponded(pubCtx, ev); err != nil {
			log.Printf("invitation: publish event failed: %v", err)
		}
	}()

	return c.JSON(http.StatusOK, echo.Map{
		"familyId":  fam.ID,
		"attending": *req.Attending,
	})
}
