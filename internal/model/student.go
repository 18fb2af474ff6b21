package model

import "time"

// Class represents a school class (a cohort of students).
type Class struct {
	ID        int64     `gorm:"primaryKey"`
	Name      string    `gorm:"uniqueIndex;size:128;not null"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`

	// Associations
	Students []Student `gorm:"foreignKey:ClassID"`
}

// Student represents an enrolled student and the identity card assigned to them.
// CardCode is what the reader produces; it is unique per student but the same
// code recurs in the event stream every day.
type Student struct {
	ID        int64  `gorm:"primaryKey"`
	ClassID   int64  `gorm:"index;not null"`
	CardCode  string `gorm:"uniqueIndex;size:64;not null"`
	FirstName string `gorm:"size:128;not null"`
	Surname   string `gorm:"size:128;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time

	// Associations
	Class Class `gorm:"constraint:OnDelete:CASCADE"`
}
