package store

import (
	"context"
	"testing"

	"github.com/eshaffer321/hospitalnav-go/pkg/hospital"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// expiredBackend rejects profile lookups the way a backend does for a stale token
type expiredBackend struct {
	*hospital.FixtureBackend
}

func (b *expiredBackend) Profile(ctx context.Context) (*hospital.User, error) {
	return nil, hospital.NewRequestError(hospital.KindUnauthorized, 401, "Unauthorized access", nil)
}

func TestAuthStore_LoginAndLogout(t *testing.T) {
	client := newFixtureClient(t)
	s := NewAuthStore(client)
	ctx := context.Background()

	assert.False(t, s.IsAuthenticated())

	resp, err := s.Login(ctx, &hospital.LoginParams{Code: "wx-code"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.True(t, s.IsAuthenticated())
	assert.Equal(t, "测试用户", s.CurrentUser().Nickname)
	assert.False(t, s.State().Loading)

	require.NoError(t, s.Logout())
	assert.False(t, s.IsAuthenticated())
	assert.Nil(t, s.CurrentUser())
}

func TestAuthStore_LoginFailureRecordsError(t *testing.T) {
	s := NewAuthStore(newFixtureClient(t))

	_, err := s.Login(context.Background(), &hospital.LoginParams{})
	require.Error(t, err)
	assert.Contains(t, s.State().Error, "code")
	assert.False(t, s.IsAuthenticated())
}

func TestAuthStore_LoadUser(t *testing.T) {
	t.Run("no token is a no-op", func(t *testing.T) {
		s := NewAuthStore(newFixtureClient(t))
		require.NoError(t, s.LoadUser(context.Background()))
		assert.Nil(t, s.CurrentUser())
	})

	t.Run("stored token loads the profile", func(t *testing.T) {
		storage := hospital.NewMemoryStorage()
		require.NoError(t, storage.Set(hospital.DefaultTokenKey, "saved"))
		client, err := hospital.NewClient(&hospital.ClientOptions{Storage: storage, MockMode: hospital.Bool(true)})
		require.NoError(t, err)

		s := NewAuthStore(client)
		require.NoError(t, s.LoadUser(context.Background()))
		assert.Equal(t, "1", s.CurrentUser().ID)
		assert.True(t, s.IsAuthenticated())
	})

	t.Run("failure signs out", func(t *testing.T) {
		storage := hospital.NewMemoryStorage()
		require.NoError(t, storage.Set(hospital.DefaultTokenKey, "stale"))
		client, err := hospital.NewClient(&hospital.ClientOptions{
			Storage: storage,
			Backend: &expiredBackend{FixtureBackend: hospital.NewFixtureBackend(nil)},
		})
		require.NoError(t, err)

		s := NewAuthStore(client)
		err = s.LoadUser(context.Background())
		require.Error(t, err)
		assert.ErrorIs(t, err, hospital.ErrUnauthorized)
		assert.False(t, s.IsAuthenticated())
		assert.Nil(t, s.CurrentUser())

		token, err := storage.Get(hospital.DefaultTokenKey)
		require.NoError(t, err)
		assert.Empty(t, token)
	})
}
