package database

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"medialib/internal/entities"
)

// Users returns the mirrored users. Read-only by convention.
func (s *Store) Users() []*entities.User {
	return s.mirror.users
}

func (s *Store) GetUser(id string) *entities.User {
	return s.mirror.user(id)
}

// HasRootUser reports whether any loaded user has the root role.
// Root-user uniqueness is a convention checked by callers before
// CreateRootUser, not an invariant enforced here.
func (s *Store) HasRootUser() bool {
	for _, u := range s.mirror.users {
		if u.IsRoot() {
			return true
		}
	}
	return false
}

// CreateRootUser bootstraps the root account with a bcrypt password
// hash and a generated API token.
func (s *Store) CreateRootUser(username, password string) (*entities.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash root password: %w", err)
	}
	token, err := generateToken()
	if err != nil {
		return nil, fmt.Errorf("generate root token: %w", err)
	}
	user := &entities.User{
		Username:     username,
		Type:         entities.UserTypeRoot,
		PasswordHash: string(hash),
		Token:        token,
		IsActive:     true,
	}
	if err := s.CreateUser(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *Store) CreateUser(user *entities.User) error {
	if user.Type == "" {
		user.Type = entities.UserTypeUser
	}
	if err := s.db.Create(user).Error; err != nil {
		return err
	}
	s.mirror.users = append(s.mirror.users, user)
	return nil
}

// UpdateUser writes the user through to the store and reports whether
// any column actually changed. The mirror object is typically the same
// pointer the caller already mutated.
func (s *Store) UpdateUser(user *entities.User) (bool, error) {
	return updateIfChanged(s.db, user.ID, user)
}

// UpdateBulkUsers updates users sequentially, stopping at the first
// failure. It returns the number of users whose rows actually changed;
// on failure the error is a BulkError carrying the applied count.
func (s *Store) UpdateBulkUsers(users []*entities.User) (int, error) {
	updated := 0
	for i, user := range users {
		changed, err := s.UpdateUser(user)
		if err != nil {
			return updated, &BulkError{Applied: i, Err: err}
		}
		if changed {
			updated++
		}
	}
	return updated, nil
}

// RemoveUser deletes the row and filters the mirror. Removing a missing
// id is a no-op.
func (s *Store) RemoveUser(id string) error {
	if err := s.db.Delete(&entities.User{}, "id = ?", id).Error; err != nil {
		return err
	}
	s.mirror.removeUser(id)
	return nil
}

func generateToken() (string, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}
