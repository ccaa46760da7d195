package models

import "time"

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

type User struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Login        string    `gorm:"uniqueIndex;not null"     json:"login"`
	Email        string    `gorm:"default:null"             json:"email,omitempty"`
	Name         string    `gorm:"not null"                 json:"name"`
	PasswordHash string    `gorm:"not null"                 json:"-"`
	Role         string    `gorm:"not null;default:user"    json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"-"`
}

type Product struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"        json:"id"`
	SKU       string    `gorm:"column:sku;uniqueIndex;not null" json:"sku"`
	Name      string    `gorm:"not null"                        json:"name"`
	Stock     int64     `gorm:"not null;default:0"              json:"stock"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}
