// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is the core identity record of the system. Credentials live in
// separate Authentication records so an account can carry a local password,
// a linked Google identity, or both.
type User struct {
	ID        uuid.UUID // The Global Unique Identifier (GUID) for the user.
	Email     string    // The user's primary contact email, normalized to lower case.
	Name      string    // The user's display name.
	Role      Role      // The user's role in the system ("user" or "admin").
	AvatarURL string    // Optional URL to the user's profile picture.
	CreatedAt time.Time // Timestamp of when this account was created.
	UpdatedAt time.Time // Timestamp of the last modification to this user's data.
}

// PublicView strips the user down to the fields safe to return to any caller.
func (u *User) PublicView() *PublicUser {
	if u == nil {
		return nil
	}

	return &PublicUser{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		AvatarURL: u.AvatarURL,
	}
}

// PublicUser is the externally visible projection of a User. It never carries
// credential material.
type PublicUser struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      Role      `json:"role"`
	AvatarURL string    `json:"avatarUrl,omitempty"`
}
