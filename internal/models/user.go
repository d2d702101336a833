package models

import (
	"time"
)

type UserRole string

const (
	RoleAdmin          UserRole = "admin"
	RoleStudentFull    UserRole = "student-full"
	RoleStudentLimited UserRole = "student-limited"
)

// DefaultRole is assigned on first sign-in. Promotion happens out-of-band
// through the identity console, never through this service's write paths.
const DefaultRole = RoleStudentLimited

// User is a profile document in the "users" collection, keyed by the identity
// provider's subject id. Profiles are created on first sign-in and never
// deleted by the application.
type User struct {
	ID          string    `json:"id" bson:"_id"`
	Email       string    `json:"email" bson:"email"`
	DisplayName string    `json:"display_name" bson:"displayName"`
	Role        UserRole  `json:"role" bson:"role"`
	AvatarURL   *string   `json:"avatar_url,omitempty" bson:"avatarUrl,omitempty"`
	CreatedAt   time.Time `json:"created_at" bson:"createdAt"`
}

// Valid reports whether r is one of the known roles.
func (r UserRole) Valid() bool {
	switch r {
	case RoleAdmin, RoleStudentFull, RoleStudentLimited:
		return true
	}
	return false
}
