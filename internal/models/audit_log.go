package models

import "time"

type AuditLog struct {
	ID        uint `gorm:"primaryKey"`
	CreatedAt time.Time

	UserEmail string `gorm:"size:255;index"`

	Entity   string `gorm:"size:50;not null"` // "asset", "request", "employee", "payment"
	EntityID uint
	Action   string `gorm:"size:50;not null"` // "create", "approve", "reject", ...
	Details  string `gorm:"type:text"`
}
