package hospital

import (
	"context"
	"strings"

	"github.com/pkg/errors"
)

// DefaultPageSize is the page size of hospital listings
const DefaultPageSize = 10

// hospitalService implements HospitalService
type hospitalService struct {
	client *Client
}

// Search lists hospitals matching params
func (s *hospitalService) Search(ctx context.Context, params *SearchParams) ([]*Hospital, error) {
	if params == nil {
		params = &SearchParams{}
	}
	if params.Page < 0 {
		return nil, &ValidationError{Field: "page", Message: "must not be negative", Value: params.Page}
	}
	if params.Size < 0 {
		return nil, &ValidationError{Field: "size", Message: "must not be negative", Value: params.Size}
	}

	hospitals, err := s.client.backend.SearchHospitals(ctx, params)
	if err != nil {
		return nil, errors.Wrap(err, "failed to search hospitals")
	}
	return hospitals, nil
}

// Query returns a hospital query builder
func (s *hospitalService) Query() HospitalQueryBuilder {
	return &hospitalQueryBuilder{
		service: s,
		page:    1,
		size:    DefaultPageSize,
	}
}

// Get retrieves a single hospital
func (s *hospitalService) Get(ctx context.Context, hospitalID string) (*Hospital, error) {
	if strings.TrimSpace(hospitalID) == "" {
		return nil, &ValidationError{Field: "hospitalID", Message: "is required"}
	}

	h, err := s.client.backend.GetHospital(ctx, hospitalID)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get hospital %s", hospitalID)
	}
	return h, nil
}

// Nearby lists hospitals around a location, closest first
func (s *hospitalService) Nearby(ctx context.Context, params *NearbyParams) ([]*Hospital, error) {
	if params == nil {
		params = &NearbyParams{}
	}
	if params.Location != nil {
		if params.Location.Latitude < -90 || params.Location.Latitude > 90 {
			return nil, &ValidationError{Field: "latitude", Message: "must be within [-90, 90]", Value: params.Location.Latitude}
		}
		if params.Location.Longitude < -180 || params.Location.Longitude > 180 {
			return nil, &ValidationError{Field: "longitude", Message: "must be within [-180, 180]", Value: params.Location.Longitude}
		}
	}

	hospitals, err := s.client.backend.NearbyHospitals(ctx, params)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get nearby hospitals")
	}
	return hospitals, nil
}

// Categories lists hospital categories
func (s *hospitalService) Categories(ctx context.Context) ([]*HospitalCategory, error) {
	categories, err := s.client.backend.Categories(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get hospital categories")
	}
	return categories, nil
}

// Departments lists the departments of a hospital
func (s *hospitalService) Departments(ctx context.Context, hospitalID string) ([]*Department, error) {
	if strings.TrimSpace(hospitalID) == "" {
		return nil, &ValidationError{Field: "hospitalID", Message: "is required"}
	}

	departments, err := s.client.backend.Departments(ctx, hospitalID)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get departments of hospital %s", hospitalID)
	}
	return departments, nil
}

// hospitalQueryBuilder implements HospitalQueryBuilder
type hospitalQueryBuilder struct {
	service  *hospitalService
	keyword  string
	location *Location
	radius   float64
	page     int
	size     int
}

// Keyword matches hospital names and tags
func (b *hospitalQueryBuilder) Keyword(keyword string) HospitalQueryBuilder {
	b.keyword = keyword
	return b
}

// Near measures distances from a point
func (b *hospitalQueryBuilder) Near(latitude, longitude float64) HospitalQueryBuilder {
	b.location = &Location{Latitude: latitude, Longitude: longitude}
	return b
}

// Radius limits results to km around the Near point
func (b *hospitalQueryBuilder) Radius(km float64) HospitalQueryBuilder {
	b.radius = km
	return b
}

// Page sets the 1-based page
func (b *hospitalQueryBuilder) Page(page int) HospitalQueryBuilder {
	b.page = page
	return b
}

// Size sets the page size
func (b *hospitalQueryBuilder) Size(size int) HospitalQueryBuilder {
	b.size = size
	return b
}

func (b *hospitalQueryBuilder) params() *SearchParams {
	return &SearchParams{
		Keyword:  b.keyword,
		Location: b.location,
		Radius:   b.radius,
		Page:     b.page,
		Size:     b.size,
	}
}

// Execute runs the query for the configured page
func (b *hospitalQueryBuilder) Execute(ctx context.Context) ([]*Hospital, error) {
	return b.service.Search(ctx, b.params())
}

// Stream pages through every result from the configured page on
func (b *hospitalQueryBuilder) Stream(ctx context.Context) (<-chan *Hospital, <-chan error) {
	hospitalChan := make(chan *Hospital)
	errChan := make(chan error, 1)

	go func() {
		defer close(hospitalChan)
		defer close(errChan)

		params := b.params()
		if params.Page < 1 {
			params.Page = 1
		}
		if params.Size <= 0 {
			params.Size = DefaultPageSize
		}

		seen := make(map[string]struct{})
		for {
			page := *params
			hospitals, err := b.service.Search(ctx, &page)
			if err != nil {
				errChan <- err
				return
			}

			fresh := 0
			for _, h := range hospitals {
				if _, dup := seen[h.ID]; dup {
					continue
				}
				seen[h.ID] = struct{}{}
				fresh++

				select {
				case <-ctx.Done():
					errChan <- ctx.Err()
					return
				case hospitalChan <- h:
				}
			}

			// A short page is the last one; so is a page that repeats earlier results
			if len(hospitals) < params.Size || fresh == 0 {
				return
			}
			params.Page++
		}
	}()

	return hospitalChan, errChan
}
