package models

import "time"

type Store struct {
	ID        uint    `gorm:"primaryKey"`
	Name      string  `gorm:"size:100;not null"`
	Latitude  float64 `gorm:"not null"`
	Longitude float64 `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time

	// Mağaza silinince atanmış kullanıcılar da silinir (cascade)
	Users []User `gorm:"constraint:OnDelete:CASCADE"`
}
