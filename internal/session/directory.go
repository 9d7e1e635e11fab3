package session

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/tarsalgabko/logitrack/internal/model"
)

// Directory is the fixed set of identities allowed to sign in. All of them
// share one credential, kept only as a bcrypt hash.
type Directory struct {
	users      []model.User
	credential []byte
}

// NewDirectory hashes sharedPassword and indexes users by email.
func NewDirectory(users []model.User, sharedPassword string) (*Directory, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(sharedPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing shared credential: %w", err)
	}

	seen := make(map[string]bool, len(users))
	for _, u := range users {
		if seen[u.Email] {
			return nil, fmt.Errorf("duplicate identity email %q", u.Email)
		}
		seen[u.Email] = true
	}

	return &Directory{
		users:      append([]model.User(nil), users...),
		credential: hash,
	}, nil
}

// Authenticate returns the identity registered under email when password
// matches the shared credential.
func (d *Directory) Authenticate(email, password string) (model.User, bool) {
	user, found := d.Lookup(email)
	// Compare even for unknown emails so both failures cost the same.
	if err := bcrypt.CompareHashAndPassword(d.credential, []byte(password)); err != nil {
		return model.User{}, false
	}
	return user, found
}

// Lookup returns the identity with the given email.
func (d *Directory) Lookup(email string) (model.User, bool) {
	for _, u := range d.users {
		if u.Email == email {
			return u, true
		}
	}
	return model.User{}, false
}

// HasUser reports whether id belongs to a known identity. It lets the
// directory act as the assignee resolver for tasks.
func (d *Directory) HasUser(id string) bool {
	for _, u := range d.users {
		if u.ID == id {
			return true
		}
	}
	return false
}

// Users returns a copy of all identities.
func (d *Directory) Users() []model.User {
	return append([]model.User(nil), d.users...)
}
