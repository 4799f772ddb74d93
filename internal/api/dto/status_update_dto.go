package dto

import "time"

// CreateStatusUpdateRequest is the authoring payload.
type CreateStatusUpdateRequest struct {
	Title   string    `json:"title"`
	Type    string    `json:"type"`
	Date    time.Time `json:"date"`
	Content string    `json:"content"`
}

// StatusUpdateSummary is the wire view of a status update.
type StatusUpdateSummary struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Date       time.Time `json:"date"`
	Type       string    `json:"type"`
	Content    string    `json:"content"`
	AuthorID   string    `json:"author_id"`
	AuthorName string    `json:"author_name"`
	CreatedAt  time.Time `json:"created_at"`
}
