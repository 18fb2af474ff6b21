package model

import "time"

// Schedule holds one class's lesson schedule. Days is the free-text weekday
// specification as entered ("Mon, Wed, Fri"); it is parsed on read, never
// canonicalized in place, so the operator sees exactly what they typed.
type Schedule struct {
	ID        int64  `gorm:"primaryKey"`
	ClassID   int64  `gorm:"index;not null"`
	Days      string `gorm:"size:256;not null"`
	StartTime string `gorm:"size:8;not null"` // "HH:MM"
	EndTime   string `gorm:"size:8;not null"` // "HH:MM"
	CreatedAt time.Time
	UpdatedAt time.Time

	// Associations
	Class Class `gorm:"constraint:OnDelete:CASCADE"`
}
