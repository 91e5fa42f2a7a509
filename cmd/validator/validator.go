package main

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"
	"time"

	"github.com/eshaffer321/hospitalnav-go/pkg/hospital"
)

// DefaultMethods are the read-only calls compared when -methods is empty
var DefaultMethods = []string{
	"search_hospitals",
	"search_keyword",
	"get_hospital",
	"nearby_hospitals",
	"hospital_categories",
	"hospital_departments",
	"rating_dimensions",
	"hospital_ratings",
	"assistant_reply",
}

// ValidatorConfig holds configuration for the validator
type ValidatorConfig struct {
	BaseURL       string
	OutputDir     string
	Verbose       bool
	MethodsToTest []string
}

// ValidationResult represents the result of a validation test
type ValidationResult struct {
	Method     string        `json:"method"`
	Passed     bool          `json:"passed"`
	LiveResult interface{}   `json:"live_result,omitempty"`
	MockResult interface{}   `json:"mock_result,omitempty"`
	Error      string        `json:"error,omitempty"`
	Duration   time.Duration `json:"duration"`
}

// ValidationReport represents the full validation report
type ValidationReport struct {
	Timestamp   time.Time          `json:"timestamp"`
	BaseURL     string             `json:"base_url"`
	TotalTests  int                `json:"total_tests"`
	Passed      int                `json:"passed"`
	Failed      int                `json:"failed"`
	SuccessRate float64            `json:"success_rate"`
	Results     []ValidationResult `json:"results"`
}

// Validator runs the same calls against a live backend and the fixtures and
// compares the normalized results
type Validator struct {
	config *ValidatorConfig
	live   *hospital.Client
	mock   *hospital.Client
}

// NewValidator creates a validator with one live and one fixture client
func NewValidator(config *ValidatorConfig) (*Validator, error) {
	if config.BaseURL == "" {
		return nil, fmt.Errorf("a base URL is required")
	}

	live, err := hospital.NewClient(&hospital.ClientOptions{
		Config:   &hospital.ConfigPatch{BaseURL: hospital.String(config.BaseURL)},
		MockMode: hospital.Bool(false),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create live client: %w", err)
	}

	mock, err := hospital.NewClient(&hospital.ClientOptions{MockMode: hospital.Bool(true)})
	if err != nil {
		return nil, fmt.Errorf("failed to create mock client: %w", err)
	}

	return &Validator{
		config: config,
		live:   live,
		mock:   mock,
	}, nil
}

// Run executes the validation tests
func (v *Validator) Run() (*ValidationReport, error) {
	report := &ValidationReport{
		Timestamp: time.Now(),
		BaseURL:   v.config.BaseURL,
		Results:   make([]ValidationResult, 0),
	}

	ctx := context.Background()

	for _, method := range v.config.MethodsToTest {
		if v.config.Verbose {
			fmt.Printf("Testing %s...\n", method)
		}

		result := v.testMethod(ctx, method)
		report.Results = append(report.Results, result)

		if result.Passed {
			report.Passed++
		} else {
			report.Failed++
		}
	}

	report.TotalTests = len(report.Results)
	if report.TotalTests > 0 {
		report.SuccessRate = float64(report.Passed) / float64(report.TotalTests) * 100
	}

	return report, nil
}

// testMethod tests a single method
func (v *Validator) testMethod(ctx context.Context, method string) ValidationResult {
	start := time.Now()
	result := ValidationResult{
		Method: method,
	}

	liveResult, err := executeMethod(ctx, v.live, method)
	if err != nil {
		result.Error = fmt.Sprintf("live error: %v", err)
		result.Duration = time.Since(start)
		return result
	}

	mockResult, err := executeMethod(ctx, v.mock, method)
	if err != nil {
		result.Error = fmt.Sprintf("mock error: %v", err)
		result.Duration = time.Since(start)
		return result
	}

	result.LiveResult = liveResult
	result.MockResult = mockResult
	result.Passed = compareResults(liveResult, mockResult)
	result.Duration = time.Since(start)

	if !result.Passed && v.config.Verbose {
		fmt.Printf("  Mismatch in %s:\n", method)
		fmt.Printf("    Live: %v\n", liveResult)
		fmt.Printf("    Mock: %v\n", mockResult)
	}

	return result
}

// executeMethod runs one named call through client
func executeMethod(ctx context.Context, client *hospital.Client, method string) (interface{}, error) {
	switch method {
	case "search_hospitals":
		hospitals, err := client.Hospitals.Search(ctx, &hospital.SearchParams{})
		if err != nil {
			return nil, err
		}
		return normalizeHospitals(hospitals), nil

	case "search_keyword":
		hospitals, err := client.Hospitals.Search(ctx, &hospital.SearchParams{Keyword: "骨"})
		if err != nil {
			return nil, err
		}
		return normalizeHospitals(hospitals), nil

	case "get_hospital":
		h, err := client.Hospitals.Get(ctx, "1")
		if err != nil {
			return nil, err
		}
		return normalizeHospitals([]*hospital.Hospital{h}), nil

	case "nearby_hospitals":
		hospitals, err := client.Hospitals.Nearby(ctx, &hospital.NearbyParams{
			Location: &hospital.Location{Latitude: 39.9087, Longitude: 116.3975},
			Radius:   5,
		})
		if err != nil {
			return nil, err
		}
		return normalizeHospitals(hospitals), nil

	case "hospital_categories":
		categories, err := client.Hospitals.Categories(ctx)
		if err != nil {
			return nil, err
		}
		return normalizeCategories(categories), nil

	case "hospital_departments":
		departments, err := client.Hospitals.Departments(ctx, "1")
		if err != nil {
			return nil, err
		}
		return normalizeDepartments(departments), nil

	case "rating_dimensions":
		dimensions, err := client.Ratings.Dimensions(ctx)
		if err != nil {
			return nil, err
		}
		ids := make([]string, len(dimensions))
		for i, d := range dimensions {
			ids[i] = d.ID
		}
		return ids, nil

	case "hospital_ratings":
		ratings, err := client.Ratings.ForHospital(ctx, "1")
		if err != nil {
			return nil, err
		}
		return ratings.Statistics, nil

	case "assistant_reply":
		reply, err := client.Assistant.SendMessage(ctx, "最近胃不舒服")
		if err != nil {
			return nil, err
		}
		return normalizeMessage(reply), nil

	default:
		return nil, fmt.Errorf("unknown method: %s", method)
	}
}

// compareResults compares live and mock results through their JSON form
func compareResults(liveResult, mockResult interface{}) bool {
	liveJSON, err := json.Marshal(liveResult)
	if err != nil {
		return false
	}

	mockJSON, err := json.Marshal(mockResult)
	if err != nil {
		return false
	}

	var liveValue, mockValue interface{}
	_ = json.Unmarshal(liveJSON, &liveValue)
	_ = json.Unmarshal(mockJSON, &mockValue)

	return reflect.DeepEqual(liveValue, mockValue)
}

// Normalization functions keep the fields both backends must agree on

func normalizeHospitals(hospitals []*hospital.Hospital) []map[string]interface{} {
	result := make([]map[string]interface{}, len(hospitals))
	for i, h := range hospitals {
		result[i] = map[string]interface{}{
			"id":       h.ID,
			"name":     h.Name,
			"level":    h.Level,
			"rating":   h.Rating,
			"distance": hospital.FormatDistance(h.Distance),
		}
	}
	return result
}

func normalizeCategories(categories []*hospital.HospitalCategory) []map[string]interface{} {
	result := make([]map[string]interface{}, len(categories))
	for i, c := range categories {
		ids := make([]string, len(c.Hospitals))
		for j, h := range c.Hospitals {
			ids[j] = h.ID
		}
		result[i] = map[string]interface{}{
			"id":        c.ID,
			"name":      c.Name,
			"hospitals": ids,
		}
	}
	return result
}

func normalizeDepartments(departments []*hospital.Department) []map[string]interface{} {
	result := make([]map[string]interface{}, len(departments))
	for i, d := range departments {
		result[i] = map[string]interface{}{
			"id":   d.ID,
			"name": d.Name,
		}
	}
	return result
}

// normalizeMessage drops the generated id and timestamp
func normalizeMessage(m *hospital.Message) map[string]interface{} {
	ids := make([]string, len(m.Recommendations))
	for i, h := range m.Recommendations {
		ids[i] = h.ID
	}
	return map[string]interface{}{
		"type":            m.Type,
		"content":         m.Content,
		"recommendations": ids,
	}
}
