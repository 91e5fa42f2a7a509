package main

import (
	"testing"

	"github.com/eshaffer321/hospitalnav-go/pkg/hospital"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// TestServerInitialization verifies that the server can initialize without panicking
// This catches jsonschema validation errors and other startup issues
func TestServerInitialization(t *testing.T) {
	client, err := hospital.NewClient(&hospital.ClientOptions{MockMode: hospital.Bool(true)})
	if err != nil {
		t.Fatalf("Failed to create client: %v", err)
	}

	impl := &mcp.Implementation{
		Name:    "hospital-navigator",
		Version: "1.0.0",
	}

	server := mcp.NewServer(impl, nil)

	// This should not panic - if it does, the test fails
	defer func() {
		if r := recover(); r != nil {
			t.Fatalf("Server initialization panicked: %v", r)
		}
	}()

	registerTools(server, client)
}

func TestNewClientFromEnvironment(t *testing.T) {
	t.Setenv("HOSPITAL_BASE_URL", "")
	t.Setenv("HOSPITAL_MOCK", "")
	t.Setenv("HOSPITAL_SENTRY_DSN", "")
	t.Setenv("HOSPITAL_TOKEN", "tok-1")

	client, err := newClient()
	if err != nil {
		t.Fatalf("newClient failed: %v", err)
	}
	if !client.MockMode() {
		t.Error("Expected mock mode without a base URL")
	}
	if got := client.Auth.Token(); got != "tok-1" {
		t.Errorf("Token = %q, want tok-1", got)
	}

	t.Setenv("HOSPITAL_BASE_URL", "http://127.0.0.1:8000")
	client, err = newClient()
	if err != nil {
		t.Fatalf("newClient failed: %v", err)
	}
	if client.MockMode() {
		t.Error("Expected live mode with a base URL")
	}
	if got := client.Config().BaseURL; got != "http://127.0.0.1:8000" {
		t.Errorf("BaseURL = %q", got)
	}

	t.Setenv("HOSPITAL_MOCK", "maybe")
	if _, err := newClient(); err == nil {
		t.Error("Expected an error for an invalid HOSPITAL_MOCK")
	}
}
