package models

import "time"

// User is an account held by the reference backend
type User struct {
	ID           string
	Name         string
	Email        string
	GovernmentID string
	Phone        string
	Address      string
	Role         Role
	PasswordHash string
	CreatedAt    time.Time
}

// LoginKey is the identifier a user logs in with: government ID for
// officials, email for citizens.
func (u *User) LoginKey() string {
	if u.Role == RoleGovernment && u.GovernmentID != "" {
		return u.GovernmentID
	}
	return u.Email
}

// Profile returns the public profile of the user.
func (u *User) Profile() Profile {
	created := u.CreatedAt
	return Profile{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Phone:     u.Phone,
		Address:   u.Address,
		Role:      u.Role,
		CreatedAt: &created,
	}
}

// Summary returns the name/email pair shown on government complaint views.
func (u *User) Summary() *UserSummary {
	return &UserSummary{Name: u.Name, Email: u.Email}
}
