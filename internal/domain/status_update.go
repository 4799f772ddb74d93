package domain

import "time"

// UpdateType enumerates status update cadences.
type UpdateType string

const (
	UpdateTypeDaily   UpdateType = "Daily"
	UpdateTypeWeekly  UpdateType = "Weekly"
	UpdateTypeMonthly UpdateType = "Monthly"
	UpdateTypeAdHoc   UpdateType = "Ad-hoc"
)

// Valid reports whether the update type belongs to the closed set.
func (u UpdateType) Valid() bool {
	switch u {
	case UpdateTypeDaily, UpdateTypeWeekly, UpdateTypeMonthly, UpdateTypeAdHoc:
		return true
	}
	return false
}

// StatusUpdate is an authored progress report. AuthorName is snapshotted at
// creation so a later rename does not rewrite history.
type StatusUpdate struct {
	ID         string
	Title      string
	Date       time.Time
	Type       UpdateType
	Content    string
	AuthorID   string
	AuthorName string
	CreatedAt  time.Time
}
