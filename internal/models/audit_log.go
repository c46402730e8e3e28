package models

import "time"

type AuditAction string

const (
	AuditActionCreate         AuditAction = "create"
	AuditActionUpdate         AuditAction = "update"
	AuditActionDelete         AuditAction = "delete"
	AuditActionPasswordChange AuditAction = "password_change"
)

// AuditLog - admin işlemlerinin kaydı (kullanıcı ve mağaza değişiklikleri)
type AuditLog struct {
	ID          uint        `gorm:"primaryKey"`
	ActorName   string      `gorm:"size:100;not null"` // İşlemi yapan kullanıcı adı
	EntityType  string      `gorm:"size:50;not null;index"`
	EntityID    uint        `gorm:"index"`
	Action      AuditAction `gorm:"size:20;not null"`
	Description string      `gorm:"size:255"`
	BeforeData  string      `gorm:"type:text"` // JSON
	AfterData   string      `gorm:"type:text"` // JSON
	CreatedAt   time.Time
}
