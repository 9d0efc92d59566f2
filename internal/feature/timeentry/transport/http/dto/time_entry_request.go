// Package dto defines the request payloads for the timeentry feature.
package dto

import "time"

// TimeEntryReq is the request body for creating or updating a time entry.
// Field rules run in the usecase so that failures accumulate per property.
type TimeEntryReq struct {
	// StartTime is when the logged span begins (RFC 3339).
	StartTime time.Time `json:"startTime"`
	// EndTime is when the logged span ends (RFC 3339).
	EndTime time.Time `json:"endTime"`
	// Description says what the time was spent on.
	Description string `json:"description"`
	// CategoryID is the category the entry is logged under.
	CategoryID uint `json:"categoryId"`
}
