package hospital

import (
	"context"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/eshaffer321/hospitalnav-go/internal/fixtures"
	"github.com/google/uuid"
)

// FixtureOptions configures a FixtureBackend
type FixtureOptions struct {
	// Latency delays every call; zero answers immediately
	Latency time.Duration

	// Rules drives assistant recommendations; defaults to DefaultRules()
	Rules *RuleTable

	Logger Logger

	// Now is the clock used for new ratings and messages
	Now func() time.Time
}

// FixtureBackend serves every Backend call from the embedded fixtures and
// keeps mutations in memory. It is safe for concurrent use; read-modify-write
// sections run under one lock.
type FixtureBackend struct {
	latency time.Duration
	rules   *RuleTable
	logger  Logger
	now     func() time.Time

	mu          sync.Mutex
	hospitals   []*Hospital
	categories  []categoryFixture
	departments []*Department
	ratings     []*Rating
	dimensions  []*RatingDimension
	favorites   []string
	user        *User
	welcome     []*Message
	history     map[string][]*Message
}

type categoryFixture struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	HospitalIDs []string `json:"hospitalIds"`
}

// NewFixtureBackend loads the embedded fixtures into a fresh backend
func NewFixtureBackend(opts *FixtureOptions) *FixtureBackend {
	if opts == nil {
		opts = &FixtureOptions{}
	}

	b := &FixtureBackend{
		latency: opts.Latency,
		rules:   opts.Rules,
		logger:  opts.Logger,
		now:     opts.Now,
		history: make(map[string][]*Message),
	}
	if b.rules == nil {
		b.rules = DefaultRules()
	}
	if b.now == nil {
		b.now = time.Now
	}

	loader := fixtures.NewLoader()
	loader.MustDecode(fixtures.Hospitals, &b.hospitals)
	loader.MustDecode(fixtures.Categories, &b.categories)
	loader.MustDecode(fixtures.Departments, &b.departments)
	loader.MustDecode(fixtures.Ratings, &b.ratings)
	loader.MustDecode(fixtures.Dimensions, &b.dimensions)
	loader.MustDecode(fixtures.Favorites, &b.favorites)
	loader.MustDecode(fixtures.User, &b.user)
	loader.MustDecode(fixtures.Messages, &b.welcome)

	return b
}

func notFound(message string) error {
	return NewRequestError(KindNotFound, http.StatusNotFound, message, nil)
}

// delay simulates network latency
func (b *FixtureBackend) delay(ctx context.Context) error {
	if b.latency <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(b.latency)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (b *FixtureBackend) findHospital(hospitalID string) *Hospital {
	for _, h := range b.hospitals {
		if h.ID == hospitalID {
			return h
		}
	}
	return nil
}

func cloneHospitals(in []*Hospital) []*Hospital {
	out := make([]*Hospital, 0, len(in))
	for _, h := range in {
		out = append(out, h.Clone())
	}
	return out
}

func cloneRatings(in []*Rating) []*Rating {
	out := make([]*Rating, 0, len(in))
	for _, r := range in {
		cp := *r
		out = append(out, &cp)
	}
	return out
}

func matchesKeyword(h *Hospital, keyword string) bool {
	if keyword == "" {
		return true
	}
	return containsFold(h.Name, keyword) || h.HasTag(keyword)
}

// SearchHospitals filters by keyword on name or tags, then by radius, then pages
func (b *FixtureBackend) SearchHospitals(ctx context.Context, params *SearchParams) ([]*Hospital, error) {
	if err := b.delay(ctx); err != nil {
		return nil, err
	}
	if params == nil {
		params = &SearchParams{}
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	var matched []*Hospital
	for _, h := range b.hospitals {
		if !matchesKeyword(h, params.Keyword) {
			continue
		}
		cp := h.Clone()
		if params.Location != nil {
			cp.Distance = DistanceKm(*params.Location, Location{Latitude: h.Latitude, Longitude: h.Longitude})
		}
		if params.Radius > 0 && cp.Distance > params.Radius {
			continue
		}
		matched = append(matched, cp)
	}

	if params.Size > 0 {
		page := params.Page
		if page < 1 {
			page = 1
		}
		start := (page - 1) * params.Size
		if start >= len(matched) {
			return []*Hospital{}, nil
		}
		end := start + params.Size
		if end > len(matched) {
			end = len(matched)
		}
		matched = matched[start:end]
	}

	if matched == nil {
		matched = []*Hospital{}
	}
	return matched, nil
}

// GetHospital returns the hospital or a 404 RequestError
func (b *FixtureBackend) GetHospital(ctx context.Context, hospitalID string) (*Hospital, error) {
	if err := b.delay(ctx); err != nil {
		return nil, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	h := b.findHospital(hospitalID)
	if h == nil {
		return nil, notFound("Hospital not found")
	}
	return h.Clone(), nil
}

// NearbyHospitals sorts hospitals by distance from the location
func (b *FixtureBackend) NearbyHospitals(ctx context.Context, params *NearbyParams) ([]*Hospital, error) {
	if err := b.delay(ctx); err != nil {
		return nil, err
	}
	if params == nil {
		params = &NearbyParams{}
	}

	b.mu.Lock()
	out := cloneHospitals(b.hospitals)
	b.mu.Unlock()

	if params.Location != nil {
		for _, h := range out {
			h.Distance = DistanceKm(*params.Location, Location{Latitude: h.Latitude, Longitude: h.Longitude})
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Distance < out[j].Distance
	})

	if params.Radius > 0 {
		filtered := out[:0]
		for _, h := range out {
			if h.Distance <= params.Radius {
				filtered = append(filtered, h)
			}
		}
		out = filtered
	}

	if params.Limit > 0 && len(out) > params.Limit {
		out = out[:params.Limit]
	}
	return out, nil
}

// Categories resolves category members to hospitals
func (b *FixtureBackend) Categories(ctx context.Context) ([]*HospitalCategory, error) {
	if err := b.delay(ctx); err != nil {
		return nil, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]*HospitalCategory, 0, len(b.categories))
	for _, c := range b.categories {
		category := &HospitalCategory{ID: c.ID, Name: c.Name, Hospitals: []*Hospital{}}
		for _, id := range c.HospitalIDs {
			if h := b.findHospital(id); h != nil {
				category.Hospitals = append(category.Hospitals, h.Clone())
			}
		}
		out = append(out, category)
	}
	return out, nil
}

// Departments lists the departments of an existing hospital
func (b *FixtureBackend) Departments(ctx context.Context, hospitalID string) ([]*Department, error) {
	if err := b.delay(ctx); err != nil {
		return nil, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.findHospital(hospitalID) == nil {
		return nil, notFound("Hospital not found")
	}

	out := []*Department{}
	for _, d := range b.departments {
		if d.HospitalID == hospitalID {
			cp := *d
			out = append(out, &cp)
		}
	}
	return out, nil
}

// Favorites lists favorite hospitals in the order they were added
func (b *FixtureBackend) Favorites(ctx context.Context) ([]*Hospital, error) {
	if err := b.delay(ctx); err != nil {
		return nil, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	out := []*Hospital{}
	for _, id := range b.favorites {
		if h := b.findHospital(id); h != nil {
			out = append(out, h.Clone())
		}
	}
	return out, nil
}

func (b *FixtureBackend) favoriteIndex(hospitalID string) int {
	for i, id := range b.favorites {
		if id == hospitalID {
			return i
		}
	}
	return -1
}

// AddFavorite adds an existing hospital; adding twice is a no-op
func (b *FixtureBackend) AddFavorite(ctx context.Context, hospitalID string) error {
	if err := b.delay(ctx); err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.findHospital(hospitalID) == nil {
		return notFound("Hospital not found")
	}
	if b.favoriteIndex(hospitalID) < 0 {
		b.favorites = append(b.favorites, hospitalID)
	}
	return nil
}

// RemoveFavorite removes a hospital; removing a non-favorite is a no-op
func (b *FixtureBackend) RemoveFavorite(ctx context.Context, hospitalID string) error {
	if err := b.delay(ctx); err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if i := b.favoriteIndex(hospitalID); i >= 0 {
		b.favorites = append(b.favorites[:i], b.favorites[i+1:]...)
	}
	return nil
}

// IsFavorite reports membership in the favorite set
func (b *FixtureBackend) IsFavorite(ctx context.Context, hospitalID string) (bool, error) {
	if err := b.delay(ctx); err != nil {
		return false, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	return b.favoriteIndex(hospitalID) >= 0, nil
}

// RatingDimensions lists the five dimensions
func (b *FixtureBackend) RatingDimensions(ctx context.Context) ([]*RatingDimension, error) {
	if err := b.delay(ctx); err != nil {
		return nil, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]*RatingDimension, 0, len(b.dimensions))
	for _, d := range b.dimensions {
		cp := *d
		out = append(out, &cp)
	}
	return out, nil
}

// ratingsFor returns the ratings of one hospital, newest first; callers hold b.mu
func (b *FixtureBackend) ratingsFor(hospitalID string) []*Rating {
	var out []*Rating
	for _, r := range b.ratings {
		if r.HospitalID == hospitalID {
			out = append(out, r)
		}
	}
	return out
}

// Statistics averages each dimension over ratings; overall is the mean of the five averages
func Statistics(ratings []*Rating) *RatingStatistics {
	stats := &RatingStatistics{Count: len(ratings)}
	if len(ratings) == 0 {
		return stats
	}

	for _, r := range ratings {
		stats.MedicalQuality += r.MedicalQuality
		stats.Service += r.Service
		stats.Environment += r.Environment
		stats.Efficiency += r.Efficiency
		stats.Equipment += r.Equipment
	}

	n := float64(len(ratings))
	stats.MedicalQuality /= n
	stats.Service /= n
	stats.Environment /= n
	stats.Efficiency /= n
	stats.Equipment /= n
	stats.Overall = (stats.MedicalQuality + stats.Service + stats.Environment +
		stats.Efficiency + stats.Equipment) / 5
	return stats
}

// HospitalRatings computes statistics for the hospital from its own ratings
func (b *FixtureBackend) HospitalRatings(ctx context.Context, hospitalID string) (*HospitalRatings, error) {
	if err := b.delay(ctx); err != nil {
		return nil, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.findHospital(hospitalID) == nil {
		return nil, notFound("Hospital not found")
	}

	ratings := b.ratingsFor(hospitalID)
	return &HospitalRatings{
		Statistics:    Statistics(ratings),
		RecentRatings: cloneRatings(ratings),
	}, nil
}

// SubmitRating records a rating by the fixture user, newest first
func (b *FixtureBackend) SubmitRating(ctx context.Context, hospitalID string, params *RatingSubmitParams) (*Rating, error) {
	if err := b.delay(ctx); err != nil {
		return nil, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.findHospital(hospitalID) == nil {
		return nil, notFound("Hospital not found")
	}

	rating := &Rating{
		ID:             uuid.NewString(),
		HospitalID:     hospitalID,
		UserID:         b.user.ID,
		MedicalQuality: params.MedicalQuality,
		Service:        params.Service,
		Environment:    params.Environment,
		Efficiency:     params.Efficiency,
		Equipment:      params.Equipment,
		Comment:        params.Comment,
		CreatedAt:      NewTimestamp(b.now().UTC()),
	}
	b.ratings = append([]*Rating{rating}, b.ratings...)

	if b.logger != nil {
		b.logger.Debug("Fixture rating stored", "hospitalID", hospitalID, "count", len(b.ratingsFor(hospitalID)))
	}

	cp := *rating
	return &cp, nil
}

// MyRatings lists ratings by the fixture user
func (b *FixtureBackend) MyRatings(ctx context.Context) ([]*Rating, error) {
	if err := b.delay(ctx); err != nil {
		return nil, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	out := []*Rating{}
	for _, r := range b.ratings {
		if r.UserID == b.user.ID {
			cp := *r
			out = append(out, &cp)
		}
	}
	return out, nil
}

// Login accepts any code and issues a mock token for the fixture user
func (b *FixtureBackend) Login(ctx context.Context, params *LoginParams) (*LoginResponse, error) {
	if err := b.delay(ctx); err != nil {
		return nil, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	user := *b.user
	user.LastLoginAt = NewTimestamp(b.now().UTC())

	return &LoginResponse{
		Token: "mock_token_" + uuid.NewString(),
		User:  &user,
	}, nil
}

// Profile returns the fixture user
func (b *FixtureBackend) Profile(ctx context.Context) (*User, error) {
	if err := b.delay(ctx); err != nil {
		return nil, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	user := *b.user
	return &user, nil
}

// ChatHistory returns the welcome message followed by the session's turns
func (b *FixtureBackend) ChatHistory(ctx context.Context, sessionID string) ([]*Message, error) {
	if err := b.delay(ctx); err != nil {
		return nil, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]*Message, 0, len(b.welcome)+len(b.history[sessionID]))
	for _, m := range b.welcome {
		out = append(out, cloneMessage(m))
	}
	for _, m := range b.history[sessionID] {
		out = append(out, cloneMessage(m))
	}
	return out, nil
}

func cloneMessage(m *Message) *Message {
	cp := *m
	if m.Recommendations != nil {
		cp.Recommendations = cloneHospitals(m.Recommendations)
	}
	return &cp
}

// SendMessage answers with the hospitals the rule table selects
func (b *FixtureBackend) SendMessage(ctx context.Context, params *SendMessageParams) (*Message, error) {
	if err := b.delay(ctx); err != nil {
		return nil, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	now := b.now()
	question := &Message{
		ID:        uuid.NewString(),
		Type:      MessageTypeUser,
		Content:   params.Content,
		Timestamp: now.UnixMilli(),
	}
	reply := &Message{
		ID:              uuid.NewString(),
		Type:            MessageTypeAssistant,
		Content:         AssistantReply,
		Timestamp:       now.UnixMilli(),
		Recommendations: Recommend(b.hospitals, b.rules.Match(params.Content), MaxRecommendations),
	}
	b.history[params.SessionID] = append(b.history[params.SessionID], question, reply)

	return cloneMessage(reply), nil
}

// StreamMessage returns the same complete reply as SendMessage
func (b *FixtureBackend) StreamMessage(ctx context.Context, params *SendMessageParams) (*Message, error) {
	return b.SendMessage(ctx, params)
}
