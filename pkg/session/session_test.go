package session

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStoreLifecycle(t *testing.T) {
	store := NewStore()

	assert.False(t, store.IsAuthenticated())
	assert.Empty(t, store.Token())
	assert.False(t, store.HasRole("ADMIN"))

	store.Set(Session{
		Token:    "tok-123",
		Username: "admin",
		Roles:    []string{"ADMIN", "EMPLOYEE"},
	})

	assert.True(t, store.IsAuthenticated())
	assert.Equal(t, "tok-123", store.Token())
	assert.Equal(t, "admin", store.Username())
	assert.True(t, store.HasRole("ADMIN"))
	assert.True(t, store.HasRole("EMPLOYEE"))
	assert.False(t, store.HasRole("CLIENT"))

	store.Clear()

	assert.False(t, store.IsAuthenticated())
	assert.Empty(t, store.Token())
	assert.Empty(t, store.Username())
	assert.False(t, store.HasRole("ADMIN"))
}

func TestCurrentReturnsCopy(t *testing.T) {
	store := NewStore()
	store.Set(Session{Token: "t", Username: "u", Roles: []string{"ADMIN"}})

	snap := store.Current()
	snap.Roles[0] = "mutated"

	assert.True(t, store.HasRole("ADMIN"), "mutating a snapshot must not affect the store")
}

func TestConcurrentReaders(t *testing.T) {
	store := NewStore()
	store.Set(Session{Token: "tok", Username: "admin", Roles: []string{"ADMIN"}})

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = store.Token()
			_ = store.HasRole("ADMIN")
			_ = store.Current()
		}()
	}
	wg.Wait()

	assert.Equal(t, "tok", store.Token())
}
