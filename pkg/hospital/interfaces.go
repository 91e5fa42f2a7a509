package hospital

import (
	"context"
)

// HospitalService handles hospital browsing
type HospitalService interface {
	// Search lists hospitals matching params
	Search(ctx context.Context, params *SearchParams) ([]*Hospital, error)

	// Query returns a hospital query builder
	Query() HospitalQueryBuilder

	// Get retrieves a single hospital
	Get(ctx context.Context, hospitalID string) (*Hospital, error)

	// Nearby lists hospitals around a location, closest first
	Nearby(ctx context.Context, params *NearbyParams) ([]*Hospital, error)

	// Categories lists hospital categories
	Categories(ctx context.Context) ([]*HospitalCategory, error)

	// Departments lists the departments of a hospital
	Departments(ctx context.Context, hospitalID string) ([]*Department, error)
}

// HospitalQueryBuilder provides a fluent interface for hospital searches
type HospitalQueryBuilder interface {
	Keyword(keyword string) HospitalQueryBuilder
	Near(latitude, longitude float64) HospitalQueryBuilder
	Radius(km float64) HospitalQueryBuilder
	Page(page int) HospitalQueryBuilder
	Size(size int) HospitalQueryBuilder
	Execute(ctx context.Context) ([]*Hospital, error)
	Stream(ctx context.Context) (<-chan *Hospital, <-chan error)
}

// FavoriteService manages the user's favorite hospitals
type FavoriteService interface {
	// List retrieves favorite hospitals
	List(ctx context.Context) ([]*Hospital, error)

	// Add marks a hospital as favorite
	Add(ctx context.Context, hospitalID string) error

	// Remove unmarks a hospital
	Remove(ctx context.Context, hospitalID string) error

	// IsFavorite reports whether a hospital is a favorite; errors read as false
	IsFavorite(ctx context.Context, hospitalID string) bool

	// Toggle flips the favorite state and returns the new state
	Toggle(ctx context.Context, hospitalID string) (bool, error)
}

// RatingService handles hospital reviews
type RatingService interface {
	// Dimensions lists the scored dimensions
	Dimensions(ctx context.Context) ([]*RatingDimension, error)

	// ForHospital retrieves statistics and recent ratings of a hospital
	ForHospital(ctx context.Context, hospitalID string) (*HospitalRatings, error)

	// Submit posts a rating for a hospital
	Submit(ctx context.Context, hospitalID string, params *RatingSubmitParams) (*Rating, error)

	// Mine lists ratings written by the signed-in user
	Mine(ctx context.Context) ([]*Rating, error)
}

// AuthService handles the session
type AuthService interface {
	// Login exchanges a login code for a token and stores it
	Login(ctx context.Context, params *LoginParams) (*LoginResponse, error)

	// Profile retrieves the signed-in user
	Profile(ctx context.Context) (*User, error)

	// Logout removes the stored token
	Logout() error

	// IsAuthenticated reports whether a token is stored
	IsAuthenticated() bool

	// Token returns the stored token, or ""
	Token() string
}

// AssistantService handles the recommendation chat
type AssistantService interface {
	// History retrieves the messages of a chat session
	History(ctx context.Context, sessionID string) ([]*Message, error)

	// SendMessage sends a user message and returns the assistant reply
	SendMessage(ctx context.Context, content string) (*Message, error)

	// SendMessageStreaming fetches the reply and replays it through handlers
	SendMessageStreaming(ctx context.Context, content string, handlers *StreamHandlers) (*Message, error)

	// SessionID returns the chat session messages are sent under
	SessionID() string
}

// Backend is the data source behind the services. The fixture backend serves
// mock mode and the network backend talks to the REST API.
type Backend interface {
	SearchHospitals(ctx context.Context, params *SearchParams) ([]*Hospital, error)
	GetHospital(ctx context.Context, hospitalID string) (*Hospital, error)
	NearbyHospitals(ctx context.Context, params *NearbyParams) ([]*Hospital, error)
	Categories(ctx context.Context) ([]*HospitalCategory, error)
	Departments(ctx context.Context, hospitalID string) ([]*Department, error)

	Favorites(ctx context.Context) ([]*Hospital, error)
	AddFavorite(ctx context.Context, hospitalID string) error
	RemoveFavorite(ctx context.Context, hospitalID string) error
	IsFavorite(ctx context.Context, hospitalID string) (bool, error)

	RatingDimensions(ctx context.Context) ([]*RatingDimension, error)
	HospitalRatings(ctx context.Context, hospitalID string) (*HospitalRatings, error)
	SubmitRating(ctx context.Context, hospitalID string, params *RatingSubmitParams) (*Rating, error)
	MyRatings(ctx context.Context) ([]*Rating, error)

	Login(ctx context.Context, params *LoginParams) (*LoginResponse, error)
	Profile(ctx context.Context) (*User, error)

	ChatHistory(ctx context.Context, sessionID string) ([]*Message, error)
	SendMessage(ctx context.Context, params *SendMessageParams) (*Message, error)
	StreamMessage(ctx context.Context, params *SendMessageParams) (*Message, error)
}
