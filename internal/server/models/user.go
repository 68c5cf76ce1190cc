package models

import "time"

// User is an account allowed into the admin area. Username is unique and
// case-sensitive; Password holds the bcrypt hash.
type User struct {
	ID        int64
	Name      string
	UserName  string
	Password  string
	CreatedAt time.Time
}

// Identity is what a verified session resolves to.
type Identity struct {
	UserName    string
	DisplayName string
}
