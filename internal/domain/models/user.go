package models

import "time"

type UserStatus string

const (
	UserActive    UserStatus = "Active"
	UserInactive  UserStatus = "Inactive"
	UserSuspended UserStatus = "Suspended"
)

type UserRole string

const (
	RoleCustomer UserRole = "Customer"
	RoleManager  UserRole = "Manager"
	RoleAdmin    UserRole = "Admin"
)

type Name struct {
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
}

type Geolocation struct {
	Lat  string `json:"lat"`
	Long string `json:"long"`
}

type Address struct {
	City        string      `json:"city"`
	Street      string      `json:"street"`
	Number      int         `json:"number"`
	Zipcode     string      `json:"zipcode"`
	Geolocation Geolocation `json:"geolocation"`
}

type User struct {
	ID           int64      `json:"id"`
	Email        string     `json:"email"`
	Username     string     `json:"username"`
	PasswordHash string     `json:"-"` // never serialized
	Name         Name       `json:"name"`
	Address      Address    `json:"address"`
	Phone        string     `json:"phone"`
	Status       UserStatus `json:"status"`
	Role         UserRole   `json:"role"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}
