package model

import "time"

// Membership tiers. Every user starts as Basic.
const (
	MembershipBasic  = "Basic"
	MembershipMember = "Member"
	MembershipAdmin  = "Admin"
)

// User represents a registered clubhouse user
type User struct {
	ID               int64     `json:"id"`
	FirstName        string    `json:"first_name"`
	LastName         string    `json:"last_name"`
	Username         string    `json:"username"`
	PasswordHash     string    `json:"-"` // Do not expose password hash in JSON responses
	MembershipStatus string    `json:"membership_status"`
	CreatedAt        time.Time `json:"created_at"`
}

// ValidMembership reports whether status is one of the three known tiers.
func ValidMembership(status string) bool {
	switch status {
	case MembershipBasic, MembershipMember, MembershipAdmin:
		return true
	}
	return false
}

// SignUpInput is the raw sign-up form submission
type SignUpInput struct {
	FirstName       string `form:"firstName"`
	LastName        string `form:"lastName"`
	Username        string `form:"username"`
	Password        string `form:"password"`
	ConfirmPassword string `form:"confirmPassword"`
}

// LogInInput is what the login form echoes back after a failed attempt.
// The password is never echoed.
type LogInInput struct {
	Username string `form:"username"`
}
