package model

import "time"

// PushSubscription holds the information for a browser push subscription.
// Staff subscribe to the students they want warning notifications for.
type PushSubscription struct {
	Endpoint  string    `gorm:"primaryKey"`
	P256DH    string    `gorm:"column:p256dh;not null"`
	Auth      string    `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null"`

	// Associations
	Students []*Student `gorm:"many2many:subscription_student_mapping;"`
}
