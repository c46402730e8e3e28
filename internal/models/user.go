package models

import "time"

type User struct {
	ID           uint    `gorm:"primaryKey"`
	Username     string  `gorm:"size:100;uniqueIndex;not null"`
	Email        string  `gorm:"size:100;uniqueIndex;not null"`
	PasswordHash string  `gorm:"size:255;not null"`
	Roles        []Role  `gorm:"many2many:user_roles"`
	StoreID      *uint
	Store        *Store
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// RoleNames - DTO'lar için rol isimlerini döndürür
func (u *User) RoleNames() []string {
	names := make([]string, 0, len(u.Roles))
	for _, r := range u.Roles {
		names = append(names, string(r.Name))
	}
	return names
}
