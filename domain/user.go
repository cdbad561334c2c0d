package domain

import (
	"slices"
	"time"
)

// AdminRole lets a user moderate any room, private conversations included.
const AdminRole = "admin"

type User struct {
	ID           string
	Email        string
	PasswordHash string
	Username     string
	IconURL      string
	Roles        []string
	CreatedAt    time.Time
}

func (u User) Summary() Author {
	return Author{UserID: u.ID, Username: u.Username, IconURL: u.IconURL}
}

func (u User) IsAdmin() bool {
	return slices.Contains(u.Roles, AdminRole)
}
