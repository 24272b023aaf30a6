package models

import (
	"time"
)

// User role constants. Roles are flat grants, not a hierarchy: editor and admin
// overlap on most capabilities but neither implies the other.
const (
	RoleAuthor   = "author"
	RoleReviewer = "reviewer"
	RoleEditor   = "editor"
	RoleAdmin    = "admin"
)

// Capability names a single gated action. Workflow operations check capabilities
// through User.Can instead of comparing role strings at each call site.
type Capability string

const (
	CapSubmit          Capability = "submit"
	CapReview          Capability = "review"
	CapAssignReviewers Capability = "assign_reviewers"
	CapDecide          Capability = "decide"
	CapManageIssues    Capability = "manage_issues"
	CapManageUsers     Capability = "manage_users"
	CapWithdrawAny     Capability = "withdraw_any"
)

var roleCapabilities = map[string]map[Capability]bool{
	RoleAuthor: {
		CapSubmit: true,
	},
	RoleReviewer: {
		CapReview: true,
	},
	RoleEditor: {
		CapReview:          true,
		CapAssignReviewers: true,
		CapDecide:          true,
		CapManageIssues:    true,
	},
	RoleAdmin: {
		CapReview:          true,
		CapAssignReviewers: true,
		CapDecide:          true,
		CapManageIssues:    true,
		CapManageUsers:     true,
		CapWithdrawAny:     true,
	},
}

type User struct {
	UserID       int        `gorm:"primaryKey;column:user_id" json:"user_id"`
	Name         string     `gorm:"column:name" json:"name"`
	Email        string     `gorm:"column:email;unique" json:"email"`
	PasswordHash string     `gorm:"column:password_hash" json:"-"`
	Role         string     `gorm:"column:role" json:"role"`
	Institution  *string    `gorm:"column:institution" json:"institution,omitempty"`
	Bio          *string    `gorm:"column:bio" json:"bio,omitempty"`
	ConsentGiven bool       `gorm:"column:consent_given" json:"consent_given"`
	ConsentAt    *time.Time `gorm:"column:consent_timestamp" json:"consent_timestamp,omitempty"`
	LastLogin    *time.Time `gorm:"column:last_login" json:"last_login,omitempty"`
	CreatedAt    time.Time  `gorm:"column:created_at" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"column:updated_at" json:"updated_at"`
}

// TableName overrides
func (User) TableName() string {
	return "users"
}

// Can reports whether the user's role grants the capability.
func (u *User) Can(cap Capability) bool {
	return roleCapabilities[u.Role][cap]
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

func (u *User) IsEditor() bool {
	return u.Role == RoleEditor
}

// ValidRole reports whether role is one of the four known role names.
func ValidRole(role string) bool {
	_, ok := roleCapabilities[role]
	return ok
}
