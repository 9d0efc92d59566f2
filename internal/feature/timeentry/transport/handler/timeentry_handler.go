// Package handler provides the HTTP handlers for the timeentry feature.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"timetrack_backend/internal/api"
	"timetrack_backend/internal/feature/timeentry/domain/entity"
	"timetrack_backend/internal/feature/timeentry/transport/http/dto"
	"timetrack_backend/internal/feature/timeentry/usecase"
	jwtmw "timetrack_backend/internal/platform/jwt"
	"timetrack_backend/internal/validation"
)

// TimeEntryUsecase defines the usecase interface for time entry operations.
// Following Go convention, the interface is defined by the consumer (handler).
type TimeEntryUsecase interface {
	Create(ctx context.Context, actorID uint, in usecase.TimeEntryInput) (*entity.TimeEntry, error)
	Update(ctx context.Context, actorID, id uint, in usecase.TimeEntryInput) (*entity.TimeEntry, error)
	Delete(ctx context.Context, actorID, id uint) error
	List(ctx context.Context, actorID uint, f usecase.ListFilter) ([]entity.TimeEntry, error)
}

// TimeEntryHandler handles HTTP requests for time entries.
type TimeEntryHandler struct {
	uc TimeEntryUsecase
}

// NewTimeEntryHandler creates a new instance of TimeEntryHandler.
func NewTimeEntryHandler(uc TimeEntryUsecase) *TimeEntryHandler {
	return &TimeEntryHandler{uc: uc}
}

// timeEntryResponse is the JSON shape for a single time entry.
type timeEntryResponse struct {
	ID          uint      `json:"id"`
	StartTime   time.Time `json:"startTime"`
	EndTime     time.Time `json:"endTime"`
	Description string    `json:"description"`
	CategoryID  uint      `json:"categoryId"`
	UserID      uint      `json:"userId"`
}

func toTimeEntryResponse(e *entity.TimeEntry) timeEntryResponse {
	return timeEntryResponse{
		ID:          e.ID,
		StartTime:   e.StartTime,
		EndTime:     e.EndTime,
		Description: e.Description,
		CategoryID:  e.CategoryID,
		UserID:      e.UserID,
	}
}

// pathID parses the :id path parameter.
func pathID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		var r validation.Result
		r.Fail("id", "Id must be a positive number")
		api.WriteError(c, r.Err())
		return 0, false
	}
	return uint(id), true
}

// queryTime parses an RFC 3339 query parameter. An absent parameter stays a
// zero time so the usecase's required-field rule reports it.
func queryTime(c *gin.Context, name string) (time.Time, bool) {
	raw := c.Query(name)
	if raw == "" {
		return time.Time{}, true
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		var r validation.Result
		r.Fail(name, "Date must be in RFC 3339 format")
		api.WriteError(c, r.Err())
		return time.Time{}, false
	}
	return t, true
}

// List handles GET /time-entries?from=&to=&userId=.
func (h *TimeEntryHandler) List(c *gin.Context) {
	from, ok := queryTime(c, "from")
	if !ok {
		return
	}
	to, ok := queryTime(c, "to")
	if !ok {
		return
	}

	filter := usecase.ListFilter{From: from, To: to}
	if raw := c.Query("userId"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			var r validation.Result
			r.Fail("userId", "User id must be a positive number")
			api.WriteError(c, r.Err())
			return
		}
		target := uint(parsed)
		filter.UserID = &target
	}

	actorID := c.GetUint(jwtmw.ContextUserID)
	entries, err := h.uc.List(c.Request.Context(), actorID, filter)
	if err != nil {
		api.WriteError(c, err)
		return
	}

	out := make([]timeEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, toTimeEntryResponse(&e))
	}
	c.JSON(http.StatusOK, out)
}

// Create handles POST /time-entries.
func (h *TimeEntryHandler) Create(c *gin.Context) {
	var req dto.TimeEntryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		var r validation.Result
		r.Fail("body", "Request body is not valid JSON")
		api.WriteError(c, r.Err())
		return
	}

	actorID := c.GetUint(jwtmw.ContextUserID)
	e, err := h.uc.Create(c.Request.Context(), actorID, usecase.TimeEntryInput{
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Description: req.Description,
		CategoryID:  req.CategoryID,
	})
	if err != nil {
		api.WriteError(c, err)
		return
	}

	slog.Info("time entry created", "time_entry_id", e.ID, "actor_id", actorID)
	c.JSON(http.StatusCreated, api.CreatedResponse{ID: e.ID})
}

// Update handles PUT /time-entries/:id.
func (h *TimeEntryHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req dto.TimeEntryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		var r validation.Result
		r.Fail("body", "Request body is not valid JSON")
		api.WriteError(c, r.Err())
		return
	}

	actorID := c.GetUint(jwtmw.ContextUserID)
	e, err := h.uc.Update(c.Request.Context(), actorID, id, usecase.TimeEntryInput{
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Description: req.Description,
		CategoryID:  req.CategoryID,
	})
	if err != nil {
		api.WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, toTimeEntryResponse(e))
}

// Delete handles DELETE /time-entries/:id.
func (h *TimeEntryHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	actorID := c.GetUint(jwtmw.ContextUserID)
	if err := h.uc.Delete(c.Request.Context(), actorID, id); err != nil {
		api.WriteError(c, err)
		return
	}

	slog.Info("time entry deleted", "time_entry_id", id, "actor_id", actorID)
	c.Status(http.StatusNoContent)
}
