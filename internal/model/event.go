package model

import "time"

// EventType distinguishes the two kinds of attendance events.
type EventType string

const (
	EventSignIn  EventType = "sign_in"
	EventSignOut EventType = "sign_out"
)

// AttendanceEvent is one accepted scan. Rows are append-only: the engine
// creates exactly one per accepted sign-in/sign-out decision and never
// updates or deletes them.
type AttendanceEvent struct {
	ID         int64     `gorm:"autoIncrement;primaryKey"`
	StudentID  int64     `gorm:"not null;index:idx_events_student_recorded"`
	Type       EventType `gorm:"size:16;not null"`
	RecordedAt time.Time `gorm:"not null;index:idx_events_student_recorded"`
	CreatedAt  time.Time
}
