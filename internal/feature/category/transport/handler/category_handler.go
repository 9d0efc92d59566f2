// Package handler provides the HTTP handlers for the category feature.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"timetrack_backend/internal/api"
	"timetrack_backend/internal/feature/category/domain/entity"
	"timetrack_backend/internal/feature/category/transport/http/dto"
	"timetrack_backend/internal/feature/category/usecase"
	jwtmw "timetrack_backend/internal/platform/jwt"
	"timetrack_backend/internal/validation"
)

// CategoryUsecase defines the usecase interface for category operations.
// Following Go convention, the interface is defined by the consumer (handler).
type CategoryUsecase interface {
	List(ctx context.Context, organizationID uint) ([]entity.Category, error)
	GetByID(ctx context.Context, id uint) (*entity.Category, error)
	Create(ctx context.Context, actorID uint, in usecase.CreateCategoryInput) (*entity.Category, error)
	Update(ctx context.Context, actorID, id uint, in usecase.CreateCategoryInput) (*entity.Category, error)
	Delete(ctx context.Context, actorID, id uint) error
}

// CategoryHandler handles HTTP requests for categories.
type CategoryHandler struct {
	uc CategoryUsecase
}

// NewCategoryHandler creates a new instance of CategoryHandler.
func NewCategoryHandler(uc CategoryUsecase) *CategoryHandler {
	return &CategoryHandler{uc: uc}
}

// categoryResponse is the JSON shape for a single category.
type categoryResponse struct {
	ID             uint   `json:"id"`
	Name           string `json:"name"`
	Description    string `json:"description,omitempty"`
	OrganizationID *uint  `json:"organizationId,omitempty"`
}

func toCategoryResponse(c *entity.Category) categoryResponse {
	return categoryResponse{
		ID:             c.ID,
		Name:           c.Name,
		Description:    c.Description,
		OrganizationID: c.OrganizationID,
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

// List handles GET /categories?organizationId=.
// When the query parameter is absent, the caller's own organization is used.
func (h *CategoryHandler) List(c *gin.Context) {
	orgID := c.GetUint(jwtmw.ContextOrgID)
	if raw := c.Query("organizationId"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			var r validation.Result
			r.Fail("organizationId", "Organization id must be a positive number")
			api.WriteError(c, r.Err())
			return
		}
		orgID = uint(parsed)
	}

	categories, err := h.uc.List(c.Request.Context(), orgID)
	if err != nil {
		api.WriteError(c, err)
		return
	}

	out := make([]categoryResponse, 0, len(categories))
	for _, cat := range categories {
		out = append(out, toCategoryResponse(&cat))
	}
	c.JSON(http.StatusOK, out)
}

// Get handles GET /categories/:id.
func (h *CategoryHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	cat, err := h.uc.GetByID(c.Request.Context(), id)
	if err != nil {
		api.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCategoryResponse(cat))
}

// Create handles POST /categories.
func (h *CategoryHandler) Create(c *gin.Context) {
	var req dto.CategoryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		var r validation.Result
		r.Fail("body", "Request body is not valid JSON")
		api.WriteError(c, r.Err())
		return
	}

	actorID := c.GetUint(jwtmw.ContextUserID)
	cat, err := h.uc.Create(c.Request.Context(), actorID, usecase.CreateCategoryInput{
		Name:           req.Name,
		Description:    req.Description,
		OrganizationID: req.OrganizationID,
	})
	if err != nil {
		api.WriteError(c, err)
		return
	}

	slog.Info("category created", "category_id", cat.ID, "actor_id", actorID)
	c.JSON(http.StatusCreated, api.CreatedResponse{ID: cat.ID})
}

// Update handles PUT /categories/:id.
func (h *CategoryHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req dto.CategoryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		var r validation.Result
		r.Fail("body", "Request body is not valid JSON")
		api.WriteError(c, r.Err())
		return
	}

	actorID := c.GetUint(jwtmw.ContextUserID)
	cat, err := h.uc.Update(c.Request.Context(), actorID, id, usecase.CreateCategoryInput{
		Name:           req.Name,
		Description:    req.Description,
		OrganizationID: req.OrganizationID,
	})
	if err != nil {
		api.WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, toCategoryResponse(cat))
}

// Delete handles DELETE /categories/:id.
func (h *CategoryHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	actorID := c.GetUint(jwtmw.ContextUserID)
	if err := h.uc.Delete(c.Request.Context(), actorID, id); err != nil {
		api.WriteError(c, err)
		return
	}

	slog.Info("category deleted", "category_id", id, "actor_id", actorID)
	c.Status(http.StatusNoContent)
}
