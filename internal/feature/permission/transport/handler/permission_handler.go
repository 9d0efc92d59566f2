// Package handler provides the HTTP handlers for the permission feature.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"timetrack_backend/internal/api"
	"timetrack_backend/internal/feature/permission/domain/entity"
	"timetrack_backend/internal/feature/permission/transport/http/dto"
	jwtmw "timetrack_backend/internal/platform/jwt"
	"timetrack_backend/internal/validation"
)

// PermissionUsecase defines the usecase interface for permission administration.
// Following Go convention, the interface is defined by the consumer (handler).
type PermissionUsecase interface {
	ListForUser(ctx context.Context, actorID, userID uint) ([]entity.Permission, error)
	Grant(ctx context.Context, actorID, userID uint, key entity.Key) error
	Revoke(ctx context.Context, actorID, userID uint, key entity.Key) error
}

// PermissionHandler handles HTTP requests for permission administration.
type PermissionHandler struct {
	uc PermissionUsecase
}

// NewPermissionHandler creates a new instance of PermissionHandler.
func NewPermissionHandler(uc PermissionUsecase) *PermissionHandler {
	return &PermissionHandler{uc: uc}
}

// permissionResponse is the JSON shape for a granted permission.
type permissionResponse struct {
	ID  uint   `json:"id"`
	Key string `json:"key"`
}

// targetUserID parses the :id path parameter.
func targetUserID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		var r validation.Result
		r.Fail("id", "Id must be a positive number")
		api.WriteError(c, r.Err())
		return 0, false
	}
	return uint(id), true
}

// List handles GET /users/:id/permissions.
func (h *PermissionHandler) List(c *gin.Context) {
	userID, ok := targetUserID(c)
	if !ok {
		return
	}

	perms, err := h.uc.ListForUser(c.Request.Context(), c.GetUint(jwtmw.ContextUserID), userID)
	if err != nil {
		api.WriteError(c, err)
		return
	}

	out := make([]permissionResponse, 0, len(perms))
	for _, p := range perms {
		out = append(out, permissionResponse{ID: p.ID, Key: string(p.Key)})
	}
	c.JSON(http.StatusOK, out)
}

// Grant handles POST /users/:id/permissions.
func (h *PermissionHandler) Grant(c *gin.Context) {
	userID, ok := targetUserID(c)
	if !ok {
		return
	}

	var req dto.GrantPermissionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("grant permission validation failed", "error", err, "remote_addr", c.ClientIP())
		var r validation.Result
		r.Fail("key", "Permission key is required")
		api.WriteError(c, r.Err())
		return
	}

	actorID := c.GetUint(jwtmw.ContextUserID)
	if err := h.uc.Grant(c.Request.Context(), actorID, userID, entity.Key(req.Key)); err != nil {
		api.WriteError(c, err)
		return
	}

	slog.Info("permission granted", "user_id", userID, "key", req.Key, "actor_id", actorID)
	c.JSON(http.StatusCreated, api.MessageResponse{Message: "ok"})
}

// Revoke handles DELETE /users/:id/permissions/:key.
func (h *PermissionHandler) Revoke(c *gin.Context) {
	userID, ok := targetUserID(c)
	if !ok {
		return
	}

	actorID := c.GetUint(jwtmw.ContextUserID)
	key := entity.Key(c.Param("key"))
	if err := h.uc.Revoke(c.Request.Context(), actorID, userID, key); err != nil {
		api.WriteError(c, err)
		return
	}

	slog.Info("permission revoked", "user_id", userID, "key", key, "actor_id", actorID)
	c.Status(http.StatusNoContent)
}
