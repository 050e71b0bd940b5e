package models

import (
	"slices"
	"strings"
	"time"
)

// User is an account able to sign in
type User struct {
	ID           string     `json:"id"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	CreatedAt    *time.Time `json:"created_at,omitempty"`
}

type Role int

const (
	Anonymous Role = iota
	Member
	Admin
)

func (r Role) String() string {
	switch r {
	case Member:
		return "member"
	case Admin:
		return "admin"
	default:
		return "anonymous"
	}
}

// Viewer is the identity behind the current request.
// It's derived per request and never persisted.
type Viewer struct {
	UserID string
	Email  string
	Role   Role
}

// AdminList is the allow-list of admin emails.
// Membership is checked case-insensitively.
type AdminList []string

// Contains checks if the email is on the allow-list
func (al AdminList) Contains(email string) bool {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return false
	}
	return slices.ContainsFunc(al, func(admin string) bool {
		return strings.EqualFold(admin, email)
	})
}

// NewViewer creates a viewer out of the user's identity.
// Empty user ID means anonymous viewer.
func NewViewer(userID, email string, admins AdminList) *Viewer {
	if userID == "" {
		return &Viewer{Role: Anonymous}
	}

	role := Member
	if admins.Contains(email) {
		role = Admin
	}

	return &Viewer{UserID: userID, Email: email, Role: role}
}

// Check if the viewer is authenticated
func (v *Viewer) IsAuthenticated() bool {
	return v != nil && v.UserID != "" && v.Role != Anonymous
}

// Check if the viewer is admin
func (v *Viewer) IsAdmin() bool {
	return v.IsAuthenticated() && v.Role == Admin
}
