package hospital

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type recordingLogger struct {
	warnings []string
}

func (l *recordingLogger) Debug(msg string, keysAndValues ...interface{}) {}
func (l *recordingLogger) Info(msg string, keysAndValues ...interface{})  {}
func (l *recordingLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.warnings = append(l.warnings, msg)
}
func (l *recordingLogger) Error(msg string, keysAndValues ...interface{}) {}

func TestFavoriteService_Toggle(t *testing.T) {
	client := newFixtureClient(t)
	ctx := context.Background()

	assert.False(t, client.Favorites.IsFavorite(ctx, "5"))

	state, err := client.Favorites.Toggle(ctx, "5")
	require.NoError(t, err)
	assert.True(t, state)
	assert.True(t, client.Favorites.IsFavorite(ctx, "5"))

	state, err = client.Favorites.Toggle(ctx, "5")
	require.NoError(t, err)
	assert.False(t, state)
	assert.False(t, client.Favorites.IsFavorite(ctx, "5"))
}

func TestFavoriteService_ListAddRemove(t *testing.T) {
	client := newFixtureClient(t)
	ctx := context.Background()

	favorites, err := client.Favorites.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "3"}, hospitalIDs(favorites))

	require.NoError(t, client.Favorites.Add(ctx, "6"))
	require.NoError(t, client.Favorites.Add(ctx, "6"))
	favorites, err = client.Favorites.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "3", "6"}, hospitalIDs(favorites))

	require.NoError(t, client.Favorites.Remove(ctx, "1"))
	require.NoError(t, client.Favorites.Remove(ctx, "1"))
	favorites, err = client.Favorites.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"3", "6"}, hospitalIDs(favorites))

	err = client.Favorites.Add(ctx, "999")
	assert.True(t, errors.Is(err, ErrNotFound))

	err = client.Favorites.Add(ctx, "")
	var validationErr *ValidationError
	assert.ErrorAs(t, err, &validationErr)
}

func TestFavoriteService_IsFavoriteDegradesToFalse(t *testing.T) {
	logger := &recordingLogger{}
	client, backend := newMockClient(t, &ClientOptions{Logger: logger})

	backend.On("IsFavorite", mock.Anything, "2").
		Return(false, NewRequestError(KindTransport, 500, "connection refused", nil))

	assert.False(t, client.Favorites.IsFavorite(context.Background(), "2"))
	assert.Contains(t, logger.warnings, "Failed to check favorite")
	backend.AssertExpectations(t)
}

func TestFavoriteService_ToggleWithBackend(t *testing.T) {
	tests := []struct {
		name       string
		isFavorite bool
		writeCall  string
		writeErr   error
		wantState  bool
		wantErr    bool
	}{
		{name: "adds when absent", isFavorite: false, writeCall: "AddFavorite", wantState: true},
		{name: "removes when present", isFavorite: true, writeCall: "RemoveFavorite", wantState: false},
		{
			name:       "failed remove keeps state",
			isFavorite: true,
			writeCall:  "RemoveFavorite",
			writeErr:   NewRequestError(KindServerError, 500, "Server error", nil),
			wantState:  true,
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, backend := newMockClient(t, nil)
			backend.On("IsFavorite", mock.Anything, "2").Return(tt.isFavorite, nil)
			backend.On(tt.writeCall, mock.Anything, "2").Return(tt.writeErr)

			state, err := client.Favorites.Toggle(context.Background(), "2")
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.wantState, state)
			backend.AssertExpectations(t)
		})
	}
}
