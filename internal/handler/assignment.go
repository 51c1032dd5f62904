package handler

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/wedding-planner/internal/model"
	"github.com/iliyamo/wedding-planner/internal/queue"
	"github.com/iliyamo/wedding-planner/internal/repository"
	queue_publisher "github.com/iliyamo/wedding-planner/internal/service"
)

// AssignmentHandler owns the seat assignment flow: the paginated guest
// listing the planner works from and the single mutation that moves a
// guest between tables.
type AssignmentHandler struct {
	Guests   *repository.GuestRepo
	Tables   *repository.TableRepo
	Families *repository.FamilyRepo
}

// NewAssignmentHandler constructs an AssignmentHandler and panics on nil deps.
func NewAssignmentHandler(g *repository.GuestRepo, t *repository.TableRepo, f *repository.FamilyRepo) *AssignmentHandler {
	if g == nil || t == nil || f == nil {
		panic("nil repository passed to NewAssignmentHandler")
	}
	return &AssignmentHandler{Guests: g, Tables: t, Families: f}
}

type assignReq struct {
	TableID *uint64 `json:"tableId"` // null unassigns the guest
}

// GuestsForAssignment handles GET /v1/families/guests-for-assignment.
// Query params: page (default 1), pageSize (default 25, max 100) and an
// optional filter matched against guest and family names.
func (h *AssignmentHandler) GuestsForAssignment(c echo.Context) error {
	page := 1
	if v := c.QueryParam("page"); v != "" {
		if n, err := parsePositive(v); err == nil {
			page = n
		}
	}
	pageSize := 25
	if v := c.QueryParam("pageSize"); v != "" {
		if n, err := parsePositive(v); err == nil {
			pageSize = n
		}
	}
	if pageSize > 100 {
		pageSize = 100
	}
	filter := strings.TrimSpace(c.QueryParam("filter"))

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	rows, total, err := h.Guests.SearchAssignments(ctx, repository.AssignmentQuery{
		Filter:   filter,
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	totalPages := int(total) / pageSize
	if int(total)%pageSize != 0 {
		totalPages++
	}
	if rows == nil {
		rows = []model.GuestAssignment{}
	}
	return c.JSON(http.StatusOK, model.GuestAssignmentPage{
		Data: rows,
		Pagination: model.Pagination{
			CurrentPage: page,
			PageSize:    pageSize,
			TotalItems:  int(total),
			TotalPages:  totalPages,
		},
	})
}

// AssignTable handles PUT /v1/guests/:id/assign-table.  The capacity check
// and the guest update run in one transaction with the target table row
// locked, so two planners racing for the last seat serialize and the loser
// gets a 409.  Assigning a guest to the table they already sit at is a
// no-op that still returns 200.
func (h *AssignmentHandler) AssignTable(c echo.Context) error {
	guestID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid guest id"})
	}
	var req assignReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.TableID != nil && *req.TableID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid table id"})
	}

	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	tx, err := h.Guests.DB().BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "begin tx failed"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	guest, err := h.Guests.GetForUpdateTx(ctx, tx, guestID)
	if err != nil {
		if errors.Is(err, repository.ErrGuestNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "guest not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load guest failed"})
	}

	oldTableID := guest.TableID
	var oldTableName, newTableName *string

	// Both table rows are locked in ascending id order; without a fixed
	// order two planners swapping guests between the same pair of tables
	// would lock A,B and B,A and deadlock.
	locked := make(map[uint64]*model.Table, 2)
	for _, id := range tableLockOrder(oldTableID, req.TableID) {
		table, err := h.Tables.GetForUpdateTx(ctx, tx, id)
		if err != nil {
			if req.TableID != nil && id == *req.TableID {
				if errors.Is(err, repository.ErrTableNotFound) {
					return c.JSON(http.StatusNotFound, echo.Map{"error": "table not found"})
				}
				return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load table failed"})
			}
			// A vanished old table only loses its name in the audit event.
			continue
		}
		locked[id] = table
	}

	if oldTableID != nil {
		if old, ok := locked[*oldTableID]; ok {
			name := old.TableName
			oldTableName = &name
		}
	}

	if req.TableID != nil {
		table := locked[*req.TableID]
		name := table.TableName
		newTableName = &name
		// The guest's own seat does not count against them when staying put.
		sameTable := oldTableID != nil && *oldTableID == *req.TableID
		if !sameTable && table.IsFull() {
			return c.JSON(http.StatusConflict, echo.Map{"error": repository.ErrTableFull.Error()})
		}
	}

	if err := h.Guests.SetTableTx(ctx, tx, guestID, req.TableID); err != nil {
		if errors.Is(err, repository.ErrGuestNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "guest not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}

	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "commit failed"})
	}
	committed = true

	// Fire-and-forget: a lost event only costs a line in the audit log.
	familyName := ""
	if fam, err := h.Families.GetByID(ctx, guest.FamilyID); err == nil {
		familyName = fam.FamilyName
	}
	ev := queue.AssignmentChangedEvent{
		GuestID:      guest.ID,
		GuestName:    guest.Name,
		FamilyName:   familyName,
		OldTableID:   oldTableID,
		OldTableName: oldTableName,
		NewTableID:   req.TableID,
		NewTableName: newTableName,
		ChangedBy:    userID,
		ChangedAt:    time.Now().UTC().Format(time.RFC3339),
	}
	go func() {
		pubCtx, pubCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer pubCancel()
		if err := queue_publisher.PublishAssignmentChanged(pubCtx, ev); err != nil {
			log.Printf("assignment: publish event failed: %v", err)
		}
	}()

	msg := "guest unassigned"
	if newTableName != nil {
		msg = "guest assigned to " + *newTableName
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": msg,
	})
}

// tableLockOrder returns the distinct table ids involved in a move,
// ascending, so every transaction acquires row locks in the same order.
func tableLockOrder(oldID, newID *uint64) []uint64 {
	ids := make([]uint64, 0, 2)
	if oldID != nil {
		ids = append(ids, *oldID)
	}
	if newID != nil && (oldID == nil || *newID != *oldID) {
		ids = append(ids, *newID)
	}
	if len(ids) == 2 && ids[0] > ids[1] {
		ids[0], ids[1] = ids[1], ids[0]
	}
	return ids
}

func parsePositive(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if n < 1 {
		return 0, errors.New("must be positive")
	}
	return n, nil
}
