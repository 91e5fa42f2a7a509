package hospital

import (
	"context"

	"github.com/pkg/errors"
)

// MaxScore is the highest score of a rating dimension
const MaxScore = 5.0

// ratingService implements RatingService
type ratingService struct {
	client *Client
}

// Validate checks that every score is in (0, MaxScore]
func (p *RatingSubmitParams) Validate() error {
	if p == nil {
		return &ValidationError{Field: "rating", Message: "is required"}
	}

	scores := []struct {
		field string
		value float64
	}{
		{"medical_quality", p.MedicalQuality},
		{"service", p.Service},
		{"environment", p.Environment},
		{"efficiency", p.Efficiency},
		{"equipment", p.Equipment},
	}

	var errs ValidationErrors
	for _, s := range scores {
		if !(s.value > 0 && s.value <= MaxScore) {
			errs = append(errs, &ValidationError{
				Field:   s.field,
				Message: "must be greater than 0 and at most 5",
				Value:   s.value,
			})
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Dimensions lists the scored dimensions
func (s *ratingService) Dimensions(ctx context.Context) ([]*RatingDimension, error) {
	dimensions, err := s.client.backend.RatingDimensions(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get rating dimensions")
	}
	return dimensions, nil
}

// ForHospital retrieves statistics and recent ratings of a hospital
func (s *ratingService) ForHospital(ctx context.Context, hospitalID string) (*HospitalRatings, error) {
	if err := requireHospitalID(hospitalID); err != nil {
		return nil, err
	}

	ratings, err := s.client.backend.HospitalRatings(ctx, hospitalID)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get ratings of hospital %s", hospitalID)
	}
	return ratings, nil
}

// Submit posts a rating for a hospital
func (s *ratingService) Submit(ctx context.Context, hospitalID string, params *RatingSubmitParams) (*Rating, error) {
	if err := requireHospitalID(hospitalID); err != nil {
		return nil, err
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}

	rating, err := s.client.backend.SubmitRating(ctx, hospitalID, params)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to submit rating for hospital %s", hospitalID)
	}
	return rating, nil
}

// Mine lists ratings written by the signed-in user
func (s *ratingService) Mine(ctx context.Context) ([]*Rating, error) {
	ratings, err := s.client.backend.MyRatings(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get user ratings")
	}
	return ratings, nil
}
