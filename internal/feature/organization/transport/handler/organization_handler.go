// Package handler provides the HTTP handlers for the organization feature.
package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"timetrack_backend/internal/api"
	"timetrack_backend/internal/feature/organization/domain/entity"
	"timetrack_backend/internal/validation"
)

// OrganizationUsecase defines the usecase interface for organization reads.
// Following Go convention, the interface is defined by the consumer (handler).
type OrganizationUsecase interface {
	List(ctx context.Context) ([]entity.Organization, error)
	GetByID(ctx context.Context, id uint) (*entity.Organization, error)
}

// OrganizationHandler handles HTTP requests for organizations.
type OrganizationHandler struct {
	uc OrganizationUsecase
}

// NewOrganizationHandler creates a new instance of OrganizationHandler.
func NewOrganizationHandler(uc OrganizationUsecase) *OrganizationHandler {
	return &OrganizationHandler{uc: uc}
}

// organizationResponse is the JSON shape for a single organization.
type organizationResponse struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// List handles GET /organizations.
func (h *OrganizationHandler) List(c *gin.Context) {
	orgs, err := h.uc.List(c.Request.Context())
	if err != nil {
		api.WriteError(c, err)
		return
	}

	out := make([]organizationResponse, 0, len(orgs))
	for _, o := range orgs {
		out = append(out, organizationResponse{ID: o.ID, Name: o.Name, Description: o.Description})
	}
	c.JSON(http.StatusOK, out)
}

// Get handles GET /organizations/:id.
func (h *OrganizationHandler) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		var r validation.Result
		r.Fail("id", "Id must be a positive number")
		api.WriteError(c, r.Err())
		return
	}

	org, err := h.uc.GetByID(c.Request.Context(), uint(id))
	if err != nil {
		api.WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, organizationResponse{ID: org.ID, Name: org.Name, Description: org.Description})
}
