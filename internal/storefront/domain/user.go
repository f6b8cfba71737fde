package domain

import "time"

type User struct {
	ID           string
	FirstName    string
	LastName     string
	Email        string
	Age          int
	PasswordHash string // argon2id PHC string, or bcrypt for migrated records
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Identity is the authenticated principal attached to a request. It is
// derived from a verified token plus a fresh user lookup and never stored.
type Identity struct {
	UserID    string
	Email     string
	Role      Role
	FirstName string
	LastName  string
}

// Identity projects the user onto the fields handlers are allowed to see.
func (u User) Identity() Identity {
	return Identity{
		UserID:    u.ID,
		Email:     u.Email,
		Role:      u.Role,
		FirstName: u.FirstName,
		LastName:  u.LastName,
	}
}
