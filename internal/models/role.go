package models

type RoleName string

const (
	RoleAdmin RoleName = "ADMIN"
	RoleStaff RoleName = "STAFF"
)

// Role referans veridir: ADMIN ve STAFF kayıtları migration sırasında seed edilir,
// admin akışı üzerinden yeni rol oluşturulmaz.
type Role struct {
	ID   uint     `gorm:"primaryKey"`
	Name RoleName `gorm:"size:20;uniqueIndex;not null"`
}
