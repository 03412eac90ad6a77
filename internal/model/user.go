package model

import (
	"time"

	"github.com/google/uuid"
)

type AppRole string

const (
	RoleStaff   AppRole = "STAFF"
	RoleManager AppRole = "MANAGER"
	RoleBoard   AppRole = "BOARD"
	RoleAdmin   AppRole = "ADMIN"
)

var roleLevel = map[AppRole]int{
	RoleStaff:   1,
	RoleManager: 2,
	RoleBoard:   3,
	RoleAdmin:   4,
}

// HasAtLeastRole reports whether role meets or exceeds required in the
// STAFF < MANAGER < BOARD < ADMIN hierarchy.
func HasAtLeastRole(role, required AppRole) bool {
	return roleLevel[role] >= roleLevel[required]
}

type User struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Role         AppRole   `db:"role" json:"role"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

type TokenClaims struct {
	UserID uuid.UUID `json:"user_id"`
	Email  string    `json:"email"`
	Role   AppRole   `json:"role"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type UpdateUserRoleRequest struct {
	Role AppRole `json:"role" binding:"required,oneof=ADMIN BOARD MANAGER STAFF"`
}
