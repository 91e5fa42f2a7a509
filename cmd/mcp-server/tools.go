package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/eshaffer321/hospitalnav-go/pkg/hospital"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// hospitalTools holds the hospital client and implements all tool handlers
type hospitalTools struct {
	client *hospital.Client
}

type HospitalEntry struct {
	ID           string   `json:"id" jsonschema:"Hospital ID"`
	Name         string   `json:"name" jsonschema:"Hospital name"`
	Level        string   `json:"level" jsonschema:"Hospital grade (e.g. 三级甲等)"`
	Rating       float64  `json:"rating" jsonschema:"Average rating out of 5"`
	Distance     string   `json:"distance" jsonschema:"Distance from the given location (e.g. 850m or 2.1km)"`
	Address      string   `json:"address" jsonschema:"Street address"`
	ContactPhone string   `json:"contactPhone,omitempty" jsonschema:"Contact phone number"`
	Tags         []string `json:"tags,omitempty" jsonschema:"Specialty tags"`
}

func toEntry(h *hospital.Hospital) HospitalEntry {
	return HospitalEntry{
		ID:           h.ID,
		Name:         h.Name,
		Level:        h.Level,
		Rating:       h.Rating,
		Distance:     hospital.FormatDistance(h.Distance),
		Address:      h.Address,
		ContactPhone: h.ContactPhone,
		Tags:         h.Tags,
	}
}

func toEntries(hospitals []*hospital.Hospital) []HospitalEntry {
	entries := make([]HospitalEntry, 0, len(hospitals))
	for _, h := range hospitals {
		entries = append(entries, toEntry(h))
	}
	return entries
}

// SearchHospitals tool - keyword search with optional distance filter
type SearchHospitalsInput struct {
	Keyword   string  `json:"keyword,omitempty" jsonschema:"Keyword matched against names and tags (optional)"`
	Latitude  float64 `json:"latitude,omitempty" jsonschema:"Latitude to measure distance from (optional)"`
	Longitude float64 `json:"longitude,omitempty" jsonschema:"Longitude to measure distance from (optional)"`
	Radius    float64 `json:"radius,omitempty" jsonschema:"Only hospitals within this many kilometers (optional)"`
	Limit     int     `json:"limit,omitempty" jsonschema:"Maximum number of hospitals to return (default: 10)"`
}

type HospitalListOutput struct {
	Hospitals []HospitalEntry `json:"hospitals" jsonschema:"Matching hospitals"`
	Count     int             `json:"count" jsonschema:"Number of hospitals returned"`
}

func (t *hospitalTools) SearchHospitals(ctx context.Context, req *mcp.CallToolRequest, input SearchHospitalsInput) (*mcp.CallToolResult, HospitalListOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = hospital.DefaultPageSize
	}

	query := t.client.Hospitals.Query().Keyword(input.Keyword).Size(limit)
	if input.Latitude != 0 || input.Longitude != 0 {
		query = query.Near(input.Latitude, input.Longitude)
	}
	if input.Radius > 0 {
		query = query.Radius(input.Radius)
	}

	hospitals, err := query.Execute(ctx)
	if err != nil {
		return nil, HospitalListOutput{}, fmt.Errorf("failed to search hospitals: %w", err)
	}

	entries := toEntries(hospitals)
	return nil, HospitalListOutput{
		Hospitals: entries,
		Count:     len(entries),
	}, nil
}

// GetHospital tool - details plus departments
type GetHospitalInput struct {
	ID string `json:"id" jsonschema:"Hospital ID"`
}

type GetHospitalOutput struct {
	Hospital     HospitalEntry `json:"hospital" jsonschema:"Hospital summary"`
	Description  string        `json:"description,omitempty" jsonschema:"Hospital description"`
	WorkingHours string        `json:"workingHours,omitempty" jsonschema:"Opening hours"`
	Departments  []string      `json:"departments" jsonschema:"Clinical department names"`
}

func (t *hospitalTools) GetHospital(ctx context.Context, req *mcp.CallToolRequest, input GetHospitalInput) (*mcp.CallToolResult, GetHospitalOutput, error) {
	h, err := t.client.Hospitals.Get(ctx, input.ID)
	if err != nil {
		return nil, GetHospitalOutput{}, fmt.Errorf("failed to fetch hospital: %w", err)
	}

	departments, err := t.client.Hospitals.Departments(ctx, input.ID)
	if err != nil {
		return nil, GetHospitalOutput{}, fmt.Errorf("failed to fetch departments: %w", err)
	}

	names := make([]string, 0, len(departments))
	for _, d := range departments {
		names = append(names, d.Name)
	}

	return nil, GetHospitalOutput{
		Hospital:     toEntry(h),
		Description:  h.Description,
		WorkingHours: h.WorkingHours,
		Departments:  names,
	}, nil
}

// NearbyHospitals tool - closest hospitals to a point
type NearbyHospitalsInput struct {
	Latitude  float64 `json:"latitude" jsonschema:"Latitude in decimal degrees"`
	Longitude float64 `json:"longitude" jsonschema:"Longitude in decimal degrees"`
	Radius    float64 `json:"radius,omitempty" jsonschema:"Search radius in kilometers (default: 5)"`
	Limit     int     `json:"limit,omitempty" jsonschema:"Maximum number of hospitals to return (optional)"`
}

func (t *hospitalTools) NearbyHospitals(ctx context.Context, req *mcp.CallToolRequest, input NearbyHospitalsInput) (*mcp.CallToolResult, HospitalListOutput, error) {
	radius := input.Radius
	if radius <= 0 {
		radius = 5
	}

	hospitals, err := t.client.Hospitals.Nearby(ctx, &hospital.NearbyParams{
		Location: &hospital.Location{Latitude: input.Latitude, Longitude: input.Longitude},
		Radius:   radius,
		Limit:    input.Limit,
	})
	if err != nil {
		return nil, HospitalListOutput{}, fmt.Errorf("failed to fetch nearby hospitals: %w", err)
	}

	entries := toEntries(hospitals)
	return nil, HospitalListOutput{
		Hospitals: entries,
		Count:     len(entries),
	}, nil
}

// RecommendHospitals tool - symptom description to recommendations
type RecommendHospitalsInput struct {
	Symptoms string `json:"symptoms" jsonschema:"Symptoms or the medical need, in plain language"`
}

type RecommendHospitalsOutput struct {
	Reply           string          `json:"reply" jsonschema:"Assistant reply"`
	Recommendations []HospitalEntry `json:"recommendations" jsonschema:"Recommended hospitals, best match first"`
}

func (t *hospitalTools) RecommendHospitals(ctx context.Context, req *mcp.CallToolRequest, input RecommendHospitalsInput) (*mcp.CallToolResult, RecommendHospitalsOutput, error) {
	if strings.TrimSpace(input.Symptoms) == "" {
		return nil, RecommendHospitalsOutput{}, fmt.Errorf("symptoms are required")
	}

	reply, err := t.client.Assistant.SendMessage(ctx, input.Symptoms)
	if err != nil {
		return nil, RecommendHospitalsOutput{}, fmt.Errorf("failed to get recommendations: %w", err)
	}

	return nil, RecommendHospitalsOutput{
		Reply:           reply.Content,
		Recommendations: toEntries(reply.Recommendations),
	}, nil
}

// GetHospitalRatings tool - statistics and recent reviews
type GetHospitalRatingsInput struct {
	ID string `json:"id" jsonschema:"Hospital ID"`
}

type ReviewEntry struct {
	Date    string  `json:"date" jsonschema:"Review date (YYYY-MM-DD)"`
	Average float64 `json:"average" jsonschema:"Average of the five scores"`
	Comment string  `json:"comment,omitempty" jsonschema:"Review text"`
}

type GetHospitalRatingsOutput struct {
	Statistics *hospital.RatingStatistics `json:"statistics" jsonschema:"Average score per dimension, overall score and rating count"`
	Reviews    []ReviewEntry              `json:"reviews" jsonschema:"Most recent reviews"`
}

func (t *hospitalTools) GetHospitalRatings(ctx context.Context, req *mcp.CallToolRequest, input GetHospitalRatingsInput) (*mcp.CallToolResult, GetHospitalRatingsOutput, error) {
	ratings, err := t.client.Ratings.ForHospital(ctx, input.ID)
	if err != nil {
		return nil, GetHospitalRatingsOutput{}, fmt.Errorf("failed to fetch ratings: %w", err)
	}

	reviews := make([]ReviewEntry, 0, len(ratings.RecentRatings))
	for _, r := range ratings.RecentRatings {
		reviews = append(reviews, ReviewEntry{
			Date:    r.CreatedAt.Format("2006-01-02"),
			Average: (r.MedicalQuality + r.Service + r.Environment + r.Efficiency + r.Equipment) / 5,
			Comment: r.Comment,
		})
	}

	return nil, GetHospitalRatingsOutput{
		Statistics: ratings.Statistics,
		Reviews:    reviews,
	}, nil
}

// ListFavorites tool - the user's saved hospitals
type ListFavoritesInput struct {
	// No input parameters needed
}

func (t *hospitalTools) ListFavorites(ctx context.Context, req *mcp.CallToolRequest, input ListFavoritesInput) (*mcp.CallToolResult, HospitalListOutput, error) {
	favorites, err := t.client.Favorites.List(ctx)
	if err != nil {
		return nil, HospitalListOutput{}, fmt.Errorf("failed to fetch favorites: %w", err)
	}

	entries := toEntries(favorites)
	return nil, HospitalListOutput{
		Hospitals: entries,
		Count:     len(entries),
	}, nil
}
