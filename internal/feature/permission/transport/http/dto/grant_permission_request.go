// Package dto defines data transfer objects for the permission feature's HTTP transport layer.
package dto

// GrantPermissionReq represents the request body for POST /users/:id/permissions.
type GrantPermissionReq struct {
	Key string `json:"key" binding:"required"`
}
