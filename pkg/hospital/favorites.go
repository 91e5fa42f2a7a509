package hospital

import (
	"context"
	"strings"

	"github.com/pkg/errors"
)

// favoriteService implements FavoriteService
type favoriteService struct {
	client *Client
}

func requireHospitalID(hospitalID string) error {
	if strings.TrimSpace(hospitalID) == "" {
		return &ValidationError{Field: "hospitalID", Message: "is required"}
	}
	return nil
}

// List retrieves favorite hospitals
func (s *favoriteService) List(ctx context.Context) ([]*Hospital, error) {
	favorites, err := s.client.backend.Favorites(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get favorites")
	}
	return favorites, nil
}

// Add marks a hospital as favorite
func (s *favoriteService) Add(ctx context.Context, hospitalID string) error {
	if err := requireHospitalID(hospitalID); err != nil {
		return err
	}
	if err := s.client.backend.AddFavorite(ctx, hospitalID); err != nil {
		return errors.Wrapf(err, "failed to add favorite %s", hospitalID)
	}
	return nil
}

// Remove unmarks a hospital
func (s *favoriteService) Remove(ctx context.Context, hospitalID string) error {
	if err := requireHospitalID(hospitalID); err != nil {
		return err
	}
	if err := s.client.backend.RemoveFavorite(ctx, hospitalID); err != nil {
		return errors.Wrapf(err, "failed to remove favorite %s", hospitalID)
	}
	return nil
}

// IsFavorite reports whether a hospital is a favorite. A failed lookup is
// logged and reads as false.
func (s *favoriteService) IsFavorite(ctx context.Context, hospitalID string) bool {
	if requireHospitalID(hospitalID) != nil {
		return false
	}

	ok, err := s.client.backend.IsFavorite(ctx, hospitalID)
	if err != nil {
		if s.client.logger != nil {
			s.client.logger.Warn("Failed to check favorite", "hospitalID", hospitalID, "error", err)
		}
		return false
	}
	return ok
}

// Toggle reads the current state and writes the opposite. The read and the
// write are separate calls; concurrent toggles of one hospital can interleave.
func (s *favoriteService) Toggle(ctx context.Context, hospitalID string) (bool, error) {
	if err := requireHospitalID(hospitalID); err != nil {
		return false, err
	}

	if s.IsFavorite(ctx, hospitalID) {
		if err := s.Remove(ctx, hospitalID); err != nil {
			return true, err
		}
		return false, nil
	}

	if err := s.Add(ctx, hospitalID); err != nil {
		return false, err
	}
	return true, nil
}
