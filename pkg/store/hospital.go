// Package store holds client-side state built from the hospital services:
// fetched collections plus loading, pagination, error and filter flags.
package store

import (
	"context"
	"sync"

	"github.com/eshaffer321/hospitalnav-go/pkg/hospital"
)

// PageSize is the number of hospitals fetched per page
const PageSize = hospital.DefaultPageSize

// Filters narrow FilteredHospitals; zero fields are ignored
type Filters struct {
	Level       string  `json:"level,omitempty"`
	MinRating   float64 `json:"rating,omitempty"`
	MaxDistance float64 `json:"distance,omitempty"`
}

// HospitalState is a snapshot of a HospitalStore. Slices are copies; the
// hospitals they point to are shared and must be treated as read-only.
type HospitalState struct {
	Hospitals      []*hospital.Hospital
	Current        *hospital.Hospital
	Departments    []*hospital.Department
	Favorites      []*hospital.Hospital
	CurrentRatings *hospital.HospitalRatings
	Loading        bool
	Page           int
	HasMore        bool
	SearchQuery    string
	Error          string
	Filters        Filters
}

// HospitalStore tracks hospital listings, the open hospital and favorites
type HospitalStore struct {
	hospitals hospital.HospitalService
	favorites hospital.FavoriteService
	ratings   hospital.RatingService

	mu    sync.RWMutex
	state HospitalState
}

// NewHospitalStore creates a store over the client's services
func NewHospitalStore(client *hospital.Client) *HospitalStore {
	return &HospitalStore{
		hospitals: client.Hospitals,
		favorites: client.Favorites,
		ratings:   client.Ratings,
		state: HospitalState{
			Page:    1,
			HasMore: true,
		},
	}
}

// State returns a snapshot
func (s *HospitalStore) State() HospitalState {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := s.state
	out.Hospitals = append([]*hospital.Hospital(nil), s.state.Hospitals...)
	out.Departments = append([]*hospital.Department(nil), s.state.Departments...)
	out.Favorites = append([]*hospital.Hospital(nil), s.state.Favorites...)
	return out
}

func (s *HospitalStore) update(fn func(st *HospitalState)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.state)
}

func (s *HospitalStore) setLoading(loading bool) {
	s.update(func(st *HospitalState) { st.Loading = loading })
}

func (s *HospitalStore) fail(err error) error {
	s.update(func(st *HospitalState) { st.Error = err.Error() })
	return err
}

// Search fetches the current page for keyword. Page 1 replaces the listing,
// later pages append; HasMore is true when a full page came back. Call
// ResetSearch first to start a new query from page 1.
func (s *HospitalStore) Search(ctx context.Context, keyword string) error {
	s.mu.Lock()
	page := s.state.Page
	s.state.SearchQuery = keyword
	s.state.Loading = true
	s.mu.Unlock()
	defer s.setLoading(false)

	return s.fetchPage(ctx, keyword, page)
}

// LoadMore fetches the page after the current one, when there is one
func (s *HospitalStore) LoadMore(ctx context.Context) error {
	s.mu.Lock()
	if s.state.Loading || !s.state.HasMore {
		s.mu.Unlock()
		return nil
	}
	page := s.state.Page + 1
	keyword := s.state.SearchQuery
	s.state.Loading = true
	s.mu.Unlock()
	defer s.setLoading(false)

	return s.fetchPage(ctx, keyword, page)
}

func (s *HospitalStore) fetchPage(ctx context.Context, keyword string, page int) error {
	hospitals, err := s.hospitals.Search(ctx, &hospital.SearchParams{
		Keyword: keyword,
		Page:    page,
		Size:    PageSize,
	})
	if err != nil {
		return s.fail(err)
	}

	s.update(func(st *HospitalState) {
		if page == 1 {
			st.Hospitals = hospitals
		} else {
			st.Hospitals = append(st.Hospitals, hospitals...)
		}
		st.Page = page
		st.HasMore = len(hospitals) == PageSize
	})
	return nil
}

// Nearby replaces the listing with hospitals around params.Location
func (s *HospitalStore) Nearby(ctx context.Context, params *hospital.NearbyParams) error {
	s.setLoading(true)
	defer s.setLoading(false)

	hospitals, err := s.hospitals.Nearby(ctx, params)
	if err != nil {
		return s.fail(err)
	}

	s.update(func(st *HospitalState) { st.Hospitals = hospitals })
	return nil
}

// LoadDetail makes hospitalID the current hospital
func (s *HospitalStore) LoadDetail(ctx context.Context, hospitalID string) error {
	s.setLoading(true)
	defer s.setLoading(false)

	h, err := s.hospitals.Get(ctx, hospitalID)
	if err != nil {
		return s.fail(err)
	}

	s.update(func(st *HospitalState) { st.Current = h })
	return nil
}

// LoadDepartments loads the departments of hospitalID
func (s *HospitalStore) LoadDepartments(ctx context.Context, hospitalID string) error {
	departments, err := s.hospitals.Departments(ctx, hospitalID)
	if err != nil {
		return s.fail(err)
	}

	s.update(func(st *HospitalState) { st.Departments = departments })
	return nil
}

// LoadFavorites replaces the favorite list
func (s *HospitalStore) LoadFavorites(ctx context.Context) ([]*hospital.Hospital, error) {
	s.setLoading(true)
	defer s.setLoading(false)

	favorites, err := s.favorites.List(ctx)
	if err != nil {
		return nil, s.fail(err)
	}

	s.update(func(st *HospitalState) { st.Favorites = favorites })
	return favorites, nil
}

// AddFavorite marks hospitalID and adds it to the favorite list when the
// store already holds the hospital, as the current one or in the listing
func (s *HospitalStore) AddFavorite(ctx context.Context, hospitalID string) error {
	if err := s.favorites.Add(ctx, hospitalID); err != nil {
		return s.fail(err)
	}

	s.update(func(st *HospitalState) {
		for _, h := range st.Favorites {
			if h.ID == hospitalID {
				return
			}
		}

		var found *hospital.Hospital
		if st.Current != nil && st.Current.ID == hospitalID {
			found = st.Current
		} else {
			for _, h := range st.Hospitals {
				if h.ID == hospitalID {
					found = h
					break
				}
			}
		}
		if found != nil {
			st.Favorites = append(st.Favorites, found)
		}
	})
	return nil
}

// RemoveFavorite unmarks hospitalID and drops it from the favorite list
func (s *HospitalStore) RemoveFavorite(ctx context.Context, hospitalID string) error {
	if err := s.favorites.Remove(ctx, hospitalID); err != nil {
		return s.fail(err)
	}

	s.update(func(st *HospitalState) {
		kept := make([]*hospital.Hospital, 0, len(st.Favorites))
		for _, h := range st.Favorites {
			if h.ID != hospitalID {
				kept = append(kept, h)
			}
		}
		st.Favorites = kept
	})
	return nil
}

// LoadRatings loads statistics and recent ratings of hospitalID
func (s *HospitalStore) LoadRatings(ctx context.Context, hospitalID string) (*hospital.HospitalRatings, error) {
	s.setLoading(true)
	defer s.setLoading(false)

	ratings, err := s.ratings.ForHospital(ctx, hospitalID)
	if err != nil {
		return nil, s.fail(err)
	}

	s.update(func(st *HospitalState) { st.CurrentRatings = ratings })
	return ratings, nil
}

// SubmitRating posts a rating, then reloads the ratings and the detail of
// the hospital so its aggregate score is current
func (s *HospitalStore) SubmitRating(ctx context.Context, hospitalID string, params *hospital.RatingSubmitParams) (*hospital.Rating, error) {
	rating, err := s.ratings.Submit(ctx, hospitalID, params)
	if err != nil {
		return nil, s.fail(err)
	}

	if _, err := s.LoadRatings(ctx, hospitalID); err != nil {
		return rating, err
	}
	if err := s.LoadDetail(ctx, hospitalID); err != nil {
		return rating, err
	}
	return rating, nil
}

// ResetSearch clears the listing and starts again from page 1
func (s *HospitalStore) ResetSearch() {
	s.update(func(st *HospitalState) {
		st.Page = 1
		st.HasMore = true
		st.Hospitals = nil
		st.SearchQuery = ""
		st.Error = ""
	})
}

// SetFilters merges the non-zero fields of f into the active filters
func (s *HospitalStore) SetFilters(f Filters) {
	s.update(func(st *HospitalState) {
		if f.Level != "" {
			st.Filters.Level = f.Level
		}
		if f.MinRating != 0 {
			st.Filters.MinRating = f.MinRating
		}
		if f.MaxDistance != 0 {
			st.Filters.MaxDistance = f.MaxDistance
		}
	})
}

// ClearFilters removes every filter
func (s *HospitalStore) ClearFilters() {
	s.update(func(st *HospitalState) { st.Filters = Filters{} })
}

// FilteredHospitals applies the active filters to the listing
func (s *HospitalStore) FilteredHospitals() []*hospital.Hospital {
	s.mu.RLock()
	defer s.mu.RUnlock()

	f := s.state.Filters
	out := make([]*hospital.Hospital, 0, len(s.state.Hospitals))
	for _, h := range s.state.Hospitals {
		if f.Level != "" && h.Level != f.Level {
			continue
		}
		if f.MinRating != 0 && h.Rating < f.MinRating {
			continue
		}
		if f.MaxDistance != 0 && h.Distance > f.MaxDistance {
			continue
		}
		out = append(out, h)
	}
	return out
}
