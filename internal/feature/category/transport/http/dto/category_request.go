// Package dto defines data transfer objects for the category feature's HTTP transport layer.
package dto

// CategoryReq represents the request body for creating or updating a category.
// Content rules (length, existence, uniqueness) run in the usecase's rule set.
type CategoryReq struct {
	Name           string `json:"name"`
	Description    string `json:"description"`
	OrganizationID *uint  `json:"organizationId"`
}
