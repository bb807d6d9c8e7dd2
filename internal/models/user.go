package models

// User represents a user account in the system. Password holds the bcrypt
// hash once the user has passed through registration; it is never serialized.
// IsAdmin stays a pointer so that an absent flag can be told apart from an
// explicit false during validation.
type User struct {
	ID       int64  `json:"id,omitempty"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"-"`
	IsAdmin  *bool  `json:"isAdmin"`
}

// Admin reports the admin flag, treating an unset flag as false.
func (u *User) Admin() bool {
	return u.IsAdmin != nil && *u.IsAdmin
}
