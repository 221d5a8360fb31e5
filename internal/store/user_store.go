package store

import (
	"sync"

	"github.com/intervalrain/chatbot-api/internal/models"
)

// UserStore is the in-memory credential store. Reads may run concurrently;
// mutations are serialized behind the lock. Duplicate user ids are a caller
// precondition violation: lookup and removal both take the first match.
type UserStore struct {
	mu    sync.RWMutex
	users []*models.User
}

// NewUserStore creates a store seeded with the fixed demo users.
func NewUserStore() *UserStore {
	return &UserStore{
		users: []*models.User{
			{
				UserID:      "00012345",
				EngName:     "John Doe",
				ChiName:     "逗約翰",
				Email:       "john_doe@umc.com",
				Roles:       []string{"Admin"},
				Permissions: []string{"READ", "WRITE"},
				Metadata:    map[string][]string{"Department": {"HR"}},
			},
			{
				UserID:      "00023412",
				EngName:     "Jane Smith",
				ChiName:     "史密珍",
				Email:       "jane_smith@umc.com",
				Roles:       []string{"User"},
				Permissions: []string{"READ"},
				Metadata:    map[string][]string{"Department": {"Finance"}},
			},
			{
				UserID:      "00053997",
				EngName:     "Rain Hu",
				ChiName:     "胡鎮宇",
				Email:       "rain_hu@umc.com",
				Roles:       []string{"Admin"},
				Permissions: []string{"READ", "WRITE"},
				Metadata:    map[string][]string{"Department": {"SMG"}},
			},
		},
	}
}

// GetUserByID returns the first user with the given id.
func (s *UserStore) GetUserByID(userID string) (*models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.UserID == userID {
			return u, true
		}
	}
	return nil, false
}

// GetAllUsers returns a snapshot of all users in insertion order.
func (s *UserStore) GetAllUsers() []*models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.User, len(s.users))
	copy(out, s.users)
	return out
}

// AddUser appends a user to the store.
func (s *UserStore) AddUser(user *models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.users = append(s.users, user)
}

// RemoveUser deletes the first user with the given id, if any.
func (s *UserStore) RemoveUser(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, u := range s.users {
		if u.UserID == userID {
			s.users = append(s.users[:i], s.users[i+1:]...)
			return
		}
	}
}
