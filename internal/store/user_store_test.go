package store

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/intervalrain/chatbot-api/internal/models"
)

func TestNewUserStore_Seed(t *testing.T) {
	s := NewUserStore()

	users := s.GetAllUsers()
	require.Len(t, users, 3)
	assert.Equal(t, "00012345", users[0].UserID)
	assert.Equal(t, "00023412", users[1].UserID)
	assert.Equal(t, "00053997", users[2].UserID)
}

func TestGetUserByID(t *testing.T) {
	s := NewUserStore()

	user, ok := s.GetUserByID("00053997")
	require.True(t, ok)
	assert.Equal(t, "Rain Hu", user.EngName)
	assert.Equal(t, "胡鎮宇", user.ChiName)
	assert.Equal(t, []string{"Admin"}, user.Roles)
	assert.Equal(t, []string{"READ", "WRITE"}, user.Permissions)
	assert.Equal(t, []string{"SMG"}, user.Metadata["Department"])

	_, ok = s.GetUserByID("99999999")
	assert.False(t, ok)
}

func TestAddAndRemoveUser(t *testing.T) {
	s := NewUserStore()

	s.AddUser(&models.User{UserID: "00099999", EngName: "New User"})
	user, ok := s.GetUserByID("00099999")
	require.True(t, ok)
	assert.Equal(t, "New User", user.EngName)
	assert.Len(t, s.GetAllUsers(), 4)

	s.RemoveUser("00099999")
	_, ok = s.GetUserByID("00099999")
	assert.False(t, ok)
	assert.Len(t, s.GetAllUsers(), 3)

	// removing an unknown id is a no-op
	s.RemoveUser("does-not-exist")
	assert.Len(t, s.GetAllUsers(), 3)
}

func TestUserStore_ConcurrentAccess(t *testing.T) {
	s := NewUserStore()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			id := fmt.Sprintf("tmp-%d", i)
			s.AddUser(&models.User{UserID: id})
			s.RemoveUser(id)
		}(i)
		go func() {
			defer wg.Done()
			_, _ = s.GetUserByID("00012345")
			_ = s.GetAllUsers()
		}()
	}
	wg.Wait()

	assert.Len(t, s.GetAllUsers(), 3)
}
