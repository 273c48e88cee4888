package user

import (
	"errors"
	"sync"

	log "github.com/Ptt-Alertor/logrus"

	"github.com/Ptt-Alertor/bank-api/models/optional"
)

var ErrUserNotFound = errors.New("user not found")

// User represents a user profile. Users relate to bank accounts by email only.
type User struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Address string `json:"address"`
}

// Input is a user profile as received from a client, with field presence
type Input struct {
	Name    optional.Optional[string] `json:"name"`
	Email   optional.Optional[string] `json:"email"`
	Address optional.Optional[string] `json:"address"`
}

// Missing returns the json names of the fields in leaves unset
func (in Input) Missing() []string {
	var missing []string
	if !in.Name.Set {
		missing = append(missing, "name")
	}
	if !in.Email.Set {
		missing = append(missing, "email")
	}
	if !in.Address.Set {
		missing = append(missing, "address")
	}
	return missing
}

// User returns the profile held by in
func (in Input) User() User {
	return User{Name: in.Name.Value, Email: in.Email.Value, Address: in.Address.Value}
}

// Store keeps user profiles in insertion order. Emails are not unique.
type Store struct {
	mu    sync.RWMutex
	users []User
}

// NewStore creates a store holding a copy of seed
func NewStore(seed []User) *Store {
	users := make([]User, len(seed))
	copy(users, seed)
	return &Store{users: users}
}

// All returns every user in insertion order
func (s *Store) All() []*User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	us := make([]*User, 0, len(s.users))
	for i := range s.users {
		u := s.users[i]
		us = append(us, &u)
	}
	return us
}

// Len returns the number of stored users
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.users)
}

// Find returns the first user with the given email
func (s *Store) Find(email string) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.users {
		if s.users[i].Email == email {
			u := s.users[i]
			return &u, nil
		}
	}
	return nil, ErrUserNotFound
}

// Save appends u and echoes it back
func (s *Store) Save(u User) *User {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.users = append(s.users, u)
	log.WithField("email", u.Email).Debug("User created")
	return &u
}
