package hospital

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockBackend is a mock implementation of the Backend interface
type MockBackend struct {
	mock.Mock
}

func (m *MockBackend) SearchHospitals(ctx context.Context, params *SearchParams) ([]*Hospital, error) {
	args := m.Called(ctx, params)
	hospitals, _ := args.Get(0).([]*Hospital)
	return hospitals, args.Error(1)
}

func (m *MockBackend) GetHospital(ctx context.Context, hospitalID string) (*Hospital, error) {
	args := m.Called(ctx, hospitalID)
	h, _ := args.Get(0).(*Hospital)
	return h, args.Error(1)
}

func (m *MockBackend) NearbyHospitals(ctx context.Context, params *NearbyParams) ([]*Hospital, error) {
	args := m.Called(ctx, params)
	hospitals, _ := args.Get(0).([]*Hospital)
	return hospitals, args.Error(1)
}

func (m *MockBackend) Categories(ctx context.Context) ([]*HospitalCategory, error) {
	args := m.Called(ctx)
	categories, _ := args.Get(0).([]*HospitalCategory)
	return categories, args.Error(1)
}

func (m *MockBackend) Departments(ctx context.Context, hospitalID string) ([]*Department, error) {
	args := m.Called(ctx, hospitalID)
	departments, _ := args.Get(0).([]*Department)
	return departments, args.Error(1)
}

func (m *MockBackend) Favorites(ctx context.Context) ([]*Hospital, error) {
	args := m.Called(ctx)
	hospitals, _ := args.Get(0).([]*Hospital)
	return hospitals, args.Error(1)
}

func (m *MockBackend) AddFavorite(ctx context.Context, hospitalID string) error {
	return m.Called(ctx, hospitalID).Error(0)
}

func (m *MockBackend) RemoveFavorite(ctx context.Context, hospitalID string) error {
	return m.Called(ctx, hospitalID).Error(0)
}

func (m *MockBackend) IsFavorite(ctx context.Context, hospitalID string) (bool, error) {
	args := m.Called(ctx, hospitalID)
	return args.Bool(0), args.Error(1)
}

func (m *MockBackend) RatingDimensions(ctx context.Context) ([]*RatingDimension, error) {
	args := m.Called(ctx)
	dimensions, _ := args.Get(0).([]*RatingDimension)
	return dimensions, args.Error(1)
}

func (m *MockBackend) HospitalRatings(ctx context.Context, hospitalID string) (*HospitalRatings, error) {
	args := m.Called(ctx, hospitalID)
	ratings, _ := args.Get(0).(*HospitalRatings)
	return ratings, args.Error(1)
}

func (m *MockBackend) SubmitRating(ctx context.Context, hospitalID string, params *RatingSubmitParams) (*Rating, error) {
	args := m.Called(ctx, hospitalID, params)
	rating, _ := args.Get(0).(*Rating)
	return rating, args.Error(1)
}

func (m *MockBackend) MyRatings(ctx context.Context) ([]*Rating, error) {
	args := m.Called(ctx)
	ratings, _ := args.Get(0).([]*Rating)
	return ratings, args.Error(1)
}

func (m *MockBackend) Login(ctx context.Context, params *LoginParams) (*LoginResponse, error) {
	args := m.Called(ctx, params)
	resp, _ := args.Get(0).(*LoginResponse)
	return resp, args.Error(1)
}

func (m *MockBackend) Profile(ctx context.Context) (*User, error) {
	args := m.Called(ctx)
	user, _ := args.Get(0).(*User)
	return user, args.Error(1)
}

func (m *MockBackend) ChatHistory(ctx context.Context, sessionID string) ([]*Message, error) {
	args := m.Called(ctx, sessionID)
	messages, _ := args.Get(0).([]*Message)
	return messages, args.Error(1)
}

func (m *MockBackend) SendMessage(ctx context.Context, params *SendMessageParams) (*Message, error) {
	args := m.Called(ctx, params)
	msg, _ := args.Get(0).(*Message)
	return msg, args.Error(1)
}

func (m *MockBackend) StreamMessage(ctx context.Context, params *SendMessageParams) (*Message, error) {
	args := m.Called(ctx, params)
	msg, _ := args.Get(0).(*Message)
	return msg, args.Error(1)
}

// newMockClient returns a client whose services delegate to a MockBackend
func newMockClient(t *testing.T, opts *ClientOptions) (*Client, *MockBackend) {
	t.Helper()

	backend := new(MockBackend)
	if opts == nil {
		opts = &ClientOptions{}
	}
	opts.Backend = backend
	if opts.Replayer == nil {
		opts.Replayer = &Replayer{}
	}

	client, err := NewClient(opts)
	require.NoError(t, err)
	return client, backend
}

// newFixtureClient returns a mock-mode client that answers immediately
func newFixtureClient(t *testing.T) *Client {
	t.Helper()

	client, err := NewClient(&ClientOptions{
		MockMode: Bool(true),
		Replayer: &Replayer{},
	})
	require.NoError(t, err)
	require.True(t, client.MockMode())
	return client
}
