package model

import "time"

// UserAddress is a saved delivery address. At most one address per user
// carries IsDefault; the first saved address is defaulted automatically.
type UserAddress struct {
	ID        int64
	Street    string
	City      string
	State     string
	Zip       string
	Country   string
	IsDefault bool
}

// User represents a registered customer or administrator.
type User struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	Phone        string
	Avatar       string
	IsAdmin      bool
	Addresses    []UserAddress
	CreatedAt    time.Time
}
