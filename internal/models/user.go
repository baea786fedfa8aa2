package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role represents user roles in the system
type Role string

const (
	RoleDeveloper Role = "developer"
	RoleAdmin     Role = "admin"
	RoleIncharge  Role = "incharge"
)

// Permission levels per role. Higher levels include everything below them.
const (
	LevelIncharge  = 60
	LevelAdmin     = 80
	LevelDeveloper = 100
)

// User represents a user in the system
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Username     string             `bson:"username" json:"username"`
	FullName     string             `bson:"full_name" json:"full_name"`
	PasswordHash string             `bson:"password_hash" json:"-"`
	Role         Role               `bson:"role" json:"role"`
	Shift        string             `bson:"shift,omitempty" json:"shift,omitempty"`
	IsActive     bool               `bson:"is_active" json:"is_active"`
	LastLogin    *time.Time         `bson:"last_login,omitempty" json:"last_login,omitempty"`
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at" json:"updated_at"`
}

// LoginRequest represents a login request
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse represents a successful login response
type LoginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// CreateUserRequest represents an admin user-creation request
type CreateUserRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	FullName string `json:"full_name" validate:"required"`
	Password string `json:"password" validate:"required,min=8"`
	Role     Role   `json:"role" validate:"required"`
	Shift    string `json:"shift" validate:"omitempty,oneof=AM PM"`
}

// UpdateUserRequest represents an admin user-update request
type UpdateUserRequest struct {
	FullName string `json:"full_name"`
	Password string `json:"password" validate:"omitempty,min=8"`
	Role     Role   `json:"role"`
	Shift    string `json:"shift" validate:"omitempty,oneof=AM PM"`
	IsActive *bool  `json:"is_active"`
}

// Claims represents the authenticated session claims
type Claims struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	FullName string `json:"full_name"`
	Role     Role   `json:"role"`
	Shift    string `json:"shift"`
	Exp      int64  `json:"exp"`
}

// IsValidRole checks if a role is valid
func IsValidRole(role Role) bool {
	switch role {
	case RoleDeveloper, RoleAdmin, RoleIncharge:
		return true
	default:
		return false
	}
}

// PermissionLevel returns the numeric permission level for a role.
func PermissionLevel(role Role) int {
	switch role {
	case RoleDeveloper:
		return LevelDeveloper
	case RoleAdmin:
		return LevelAdmin
	case RoleIncharge:
		return LevelIncharge
	default:
		return 0
	}
}

// HasPermission checks if the user's role meets the required level.
func (u *User) HasPermission(level int) bool {
	return PermissionLevel(u.Role) >= level
}
