package hospital

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/eshaffer321/hospitalnav-go/internal/transport"
	internalTypes "github.com/eshaffer321/hospitalnav-go/internal/types"
	"github.com/pkg/errors"
)

// errorObserver is told about every failed call
type errorObserver func(ctx context.Context, method, path string, duration time.Duration, err error)

// networkBackend serves the services from the REST API
type networkBackend struct {
	transport *transport.RESTTransport
	observe   errorObserver
}

func newNetworkBackend(t *transport.RESTTransport, observe errorObserver) *networkBackend {
	return &networkBackend{
		transport: t,
		observe:   observe,
	}
}

// call performs one request against an /api/v1 path
func call[T any](ctx context.Context, b *networkBackend, method, path string, query map[string]string, body interface{}) (T, error) {
	opts := &internalTypes.RequestOptions{
		Path:   internalTypes.APIPrefix + path,
		Method: method,
		Body:   body,
		Query:  query,
	}

	start := time.Now()
	out, err := transport.Request[T](ctx, b.transport, opts)
	if err != nil && b.observe != nil {
		b.observe(ctx, method, opts.Path, time.Since(start), err)
	}
	return out, err
}

func escape(id string) string {
	return url.PathEscape(id)
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// SearchHospitals calls GET /hospitals
func (b *networkBackend) SearchHospitals(ctx context.Context, params *SearchParams) ([]*Hospital, error) {
	query := map[string]string{}
	if params != nil {
		if params.Keyword != "" {
			query["keyword"] = params.Keyword
		}
		if params.Location != nil {
			query["lat"] = formatFloat(params.Location.Latitude)
			query["lng"] = formatFloat(params.Location.Longitude)
		}
		if params.Radius > 0 {
			query["radius"] = formatFloat(params.Radius)
		}
		if params.Page > 0 {
			query["page"] = strconv.Itoa(params.Page)
		}
		if params.Size > 0 {
			query["size"] = strconv.Itoa(params.Size)
		}
	}
	return call[[]*Hospital](ctx, b, http.MethodGet, "/hospitals", query, nil)
}

// GetHospital calls GET /hospitals/{id}
func (b *networkBackend) GetHospital(ctx context.Context, hospitalID string) (*Hospital, error) {
	return call[*Hospital](ctx, b, http.MethodGet, "/hospitals/"+escape(hospitalID), nil, nil)
}

// NearbyHospitals calls GET /hospitals/nearby
func (b *networkBackend) NearbyHospitals(ctx context.Context, params *NearbyParams) ([]*Hospital, error) {
	query := map[string]string{}
	if params != nil {
		if params.Location != nil {
			query["lat"] = formatFloat(params.Location.Latitude)
			query["lng"] = formatFloat(params.Location.Longitude)
		}
		if params.Radius > 0 {
			query["radius"] = formatFloat(params.Radius)
		}
		if params.Limit > 0 {
			query["limit"] = strconv.Itoa(params.Limit)
		}
	}
	return call[[]*Hospital](ctx, b, http.MethodGet, "/hospitals/nearby", query, nil)
}

// Categories calls GET /hospital-categories
func (b *networkBackend) Categories(ctx context.Context) ([]*HospitalCategory, error) {
	return call[[]*HospitalCategory](ctx, b, http.MethodGet, "/hospital-categories", nil, nil)
}

// Departments calls GET /hospitals/{id}/departments
func (b *networkBackend) Departments(ctx context.Context, hospitalID string) ([]*Department, error) {
	return call[[]*Department](ctx, b, http.MethodGet, "/hospitals/"+escape(hospitalID)+"/departments", nil, nil)
}

// Favorites calls GET /favorites
func (b *networkBackend) Favorites(ctx context.Context) ([]*Hospital, error) {
	return call[[]*Hospital](ctx, b, http.MethodGet, "/favorites", nil, nil)
}

// AddFavorite calls POST /favorites/{id}
func (b *networkBackend) AddFavorite(ctx context.Context, hospitalID string) error {
	result, err := call[favoriteResult](ctx, b, http.MethodPost, "/favorites/"+escape(hospitalID), nil, nil)
	if err != nil {
		return err
	}
	if !result.Success {
		return errors.Errorf("favorite %s was not added", hospitalID)
	}
	return nil
}

// RemoveFavorite calls DELETE /favorites/{id}
func (b *networkBackend) RemoveFavorite(ctx context.Context, hospitalID string) error {
	result, err := call[favoriteResult](ctx, b, http.MethodDelete, "/favorites/"+escape(hospitalID), nil, nil)
	if err != nil {
		return err
	}
	if !result.Success {
		return errors.Errorf("favorite %s was not removed", hospitalID)
	}
	return nil
}

// IsFavorite lists favorites and looks for hospitalID
func (b *networkBackend) IsFavorite(ctx context.Context, hospitalID string) (bool, error) {
	favorites, err := b.Favorites(ctx)
	if err != nil {
		return false, err
	}
	for _, h := range favorites {
		if h != nil && h.ID == hospitalID {
			return true, nil
		}
	}
	return false, nil
}

// RatingDimensions calls GET /rating-dimensions
func (b *networkBackend) RatingDimensions(ctx context.Context) ([]*RatingDimension, error) {
	return call[[]*RatingDimension](ctx, b, http.MethodGet, "/rating-dimensions", nil, nil)
}

// HospitalRatings calls GET /hospitals/{id}/ratings
func (b *networkBackend) HospitalRatings(ctx context.Context, hospitalID string) (*HospitalRatings, error) {
	return call[*HospitalRatings](ctx, b, http.MethodGet, "/hospitals/"+escape(hospitalID)+"/ratings", nil, nil)
}

// SubmitRating calls POST /hospitals/{id}/ratings
func (b *networkBackend) SubmitRating(ctx context.Context, hospitalID string, params *RatingSubmitParams) (*Rating, error) {
	return call[*Rating](ctx, b, http.MethodPost, "/hospitals/"+escape(hospitalID)+"/ratings", nil, params)
}

// MyRatings calls GET /ratings
func (b *networkBackend) MyRatings(ctx context.Context) ([]*Rating, error) {
	return call[[]*Rating](ctx, b, http.MethodGet, "/ratings", nil, nil)
}

// Login calls POST /auth/login
func (b *networkBackend) Login(ctx context.Context, params *LoginParams) (*LoginResponse, error) {
	return call[*LoginResponse](ctx, b, http.MethodPost, "/auth/login", nil, params)
}

// Profile calls GET /auth/profile
func (b *networkBackend) Profile(ctx context.Context) (*User, error) {
	return call[*User](ctx, b, http.MethodGet, "/auth/profile", nil, nil)
}

// ChatHistory calls GET /assistant/history
func (b *networkBackend) ChatHistory(ctx context.Context, sessionID string) ([]*Message, error) {
	var query map[string]string
	if sessionID != "" {
		query = map[string]string{"session_id": sessionID}
	}
	return call[[]*Message](ctx, b, http.MethodGet, "/assistant/history", query, nil)
}

// SendMessage calls POST /assistant/message
func (b *networkBackend) SendMessage(ctx context.Context, params *SendMessageParams) (*Message, error) {
	return call[*Message](ctx, b, http.MethodPost, "/assistant/message", nil, params)
}

// StreamMessage calls POST /assistant/stream; the reply arrives complete
func (b *networkBackend) StreamMessage(ctx context.Context, params *SendMessageParams) (*Message, error) {
	return call[*Message](ctx, b, http.MethodPost, "/assistant/stream", nil, params)
}
