package main

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/eshaffer321/hospitalnav-go/internal/devserver"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidator_DevServerMatchesFixtures(t *testing.T) {
	ts := httptest.NewServer(devserver.New(nil))
	defer ts.Close()

	validator, err := NewValidator(&ValidatorConfig{
		BaseURL:       ts.URL,
		MethodsToTest: DefaultMethods,
	})
	require.NoError(t, err)

	report, err := validator.Run()
	require.NoError(t, err)

	for _, r := range report.Results {
		assert.True(t, r.Passed, "%s: %s", r.Method, r.Error)
	}
	assert.Equal(t, len(DefaultMethods), report.TotalTests)
	assert.Equal(t, 0, report.Failed)
	assert.Equal(t, 100.0, report.SuccessRate)
}

func TestValidator_ReportsMismatchAndErrors(t *testing.T) {
	// A backend that knows no hospitals
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Path == "/api/v1/hospitals" {
			_, _ = w.Write([]byte(`{"code":200,"message":"success","data":[]}`))
			return
		}
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"code":404,"message":"not found"}`))
	}))
	defer ts.Close()

	validator, err := NewValidator(&ValidatorConfig{
		BaseURL:       ts.URL,
		MethodsToTest: []string{"search_hospitals", "get_hospital", "no_such_method"},
	})
	require.NoError(t, err)

	report, err := validator.Run()
	require.NoError(t, err)
	require.Len(t, report.Results, 3)

	assert.False(t, report.Results[0].Passed)
	assert.Empty(t, report.Results[0].Error)

	assert.False(t, report.Results[1].Passed)
	assert.Contains(t, report.Results[1].Error, "live error")

	assert.Contains(t, report.Results[2].Error, "unknown method")
	assert.Equal(t, 3, report.Failed)
}

func TestNewValidator_RequiresBaseURL(t *testing.T) {
	_, err := NewValidator(&ValidatorConfig{})
	assert.Error(t, err)
}

func TestCompareResults(t *testing.T) {
	assert.True(t, compareResults([]string{"a"}, []interface{}{"a"}))
	assert.False(t, compareResults(map[string]int{"a": 1}, map[string]int{"a": 2}))
}
