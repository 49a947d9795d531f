package models

import "time"

// GuestUser backs guest checkout: identified by email, reused across orders.
type GuestUser struct {
	ID          string     `gorm:"column:id;primary_key;type:uuid" json:"id"`
	Email       string     `gorm:"column:email;type:varchar(255);not null;uniqueIndex" json:"email"`
	Name        *string    `gorm:"column:name;type:varchar(255)" json:"name"`
	Phone       *string    `gorm:"column:phone;type:varchar(32)" json:"phone"`
	LastOrderAt *time.Time `gorm:"column:last_order_at;default:null" json:"last_order_at"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (GuestUser) TableName() string { return "guest_users" }
