package session

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crmdeck/crmdeck/internal/common/dto"
)

func sample() *Session {
	return FromLogin(&dto.LoginResponse{
		User:   dto.User{ID: 7, Role: "manager", Email: "dana@homedepot.com"},
		Tenant: dto.Tenant{ID: 2, Name: "Home Depot", Code: "home_depot", PrimaryColor: "#F96302"},
		Token:  "tok",
	})
}

func TestFromLogin(t *testing.T) {
	s := sample()
	assert.Equal(t, uint(7), s.UserID)
	assert.Equal(t, "manager", s.Role)
	assert.Equal(t, "dana@homedepot.com", s.UserEmail)
	assert.Equal(t, "home_depot", s.TenantCode)
	assert.Equal(t, "Home Depot", s.TenantName)
	assert.Equal(t, "home_depot", s.Tenant.Code)
}

func TestFileStoreRoundTrip(t *testing.T) {
	store, err := NewFileStore(filepath.Join(t.TempDir(), "session.json"))
	require.NoError(t, err)

	_, err = store.Load()
	assert.ErrorIs(t, err, ErrNoSession)

	require.NoError(t, store.Save(sample()))

	got, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, sample(), got)

	require.NoError(t, store.Clear())
	_, err = store.Load()
	assert.ErrorIs(t, err, ErrNoSession)

	// Clearing again is a no-op
	assert.NoError(t, store.Clear())
}

func TestFileStoreSaveOverwrites(t *testing.T) {
	store, err := NewFileStore(filepath.Join(t.TempDir(), "session.json"))
	require.NoError(t, err)

	require.NoError(t, store.Save(sample()))

	next := sample()
	next.UserEmail = "omar@homedepot.com"
	next.UserID = 8
	require.NoError(t, store.Save(next))

	got, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "omar@homedepot.com", got.UserEmail)
	assert.Equal(t, uint(8), got.UserID)
}

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore()

	_, err := store.Load()
	assert.ErrorIs(t, err, ErrNoSession)

	require.NoError(t, store.Save(sample()))
	got, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, sample(), got)

	// Mutating the loaded copy must not touch the stored session
	got.Role = "rep"
	again, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "manager", again.Role)

	require.NoError(t, store.Clear())
	_, err = store.Load()
	assert.ErrorIs(t, err, ErrNoSession)
}
