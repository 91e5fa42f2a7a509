package main

import (
	"context"
	"log"
	"os"
	"strconv"

	"github.com/eshaffer321/hospitalnav-go/pkg/hospital"
	"github.com/joho/godotenv"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func main() {
	_ = godotenv.Load()

	client, err := newClient()
	if err != nil {
		log.Fatalf("failed to initialize hospital client: %v", err)
	}
	defer client.Close()

	// Create MCP server with v1.0.0 API
	impl := &mcp.Implementation{
		Name:    "hospital-navigator",
		Version: "1.0.0",
	}

	server := mcp.NewServer(impl, nil)

	// Register all tools
	registerTools(server, client)

	// Run server over stdio transport (for Claude Desktop)
	if err := server.Run(context.Background(), &mcp.StdioTransport{}); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

// newClient reads HOSPITAL_BASE_URL, HOSPITAL_MOCK and HOSPITAL_TOKEN. Without
// a base URL the fixture backend answers.
func newClient() (*hospital.Client, error) {
	baseURL := os.Getenv("HOSPITAL_BASE_URL")

	mock := baseURL == ""
	if raw := os.Getenv("HOSPITAL_MOCK"); raw != "" {
		enabled, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, err
		}
		mock = enabled
	}

	opts := &hospital.ClientOptions{
		MockMode:  hospital.Bool(mock),
		SentryDSN: os.Getenv("HOSPITAL_SENTRY_DSN"),
	}
	if baseURL != "" {
		opts.Config = &hospital.ConfigPatch{BaseURL: hospital.String(baseURL)}
	}

	client, err := hospital.NewClient(opts)
	if err != nil {
		return nil, err
	}

	if token := os.Getenv("HOSPITAL_TOKEN"); token != "" {
		if err := client.Storage().Set(client.Config().TokenKey, token); err != nil {
			return nil, err
		}
	}
	return client, nil
}

func registerTools(server *mcp.Server, client *hospital.Client) {
	tools := &hospitalTools{client: client}

	mcp.AddTool(server, &mcp.Tool{
		Name:        "search_hospitals",
		Description: "Search hospitals by keyword, matched against hospital names and specialty tags. Optionally measure distance from a location and limit to a radius. Returns name, level, rating, distance, address and tags.",
	}, tools.SearchHospitals)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_hospital",
		Description: "Get full details of one hospital, including address, phone, working hours, description and its clinical departments.",
	}, tools.GetHospital)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "nearby_hospitals",
		Description: "List hospitals closest to a latitude/longitude within a radius in kilometers, closest first.",
	}, tools.NearbyHospitals)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "recommend_hospitals",
		Description: "Describe symptoms in plain language and get up to three recommended specialist hospitals together with the assistant's reply.",
	}, tools.RecommendHospitals)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_hospital_ratings",
		Description: "Get the rating statistics of a hospital across medical quality, service, environment, efficiency and equipment, plus its recent reviews.",
	}, tools.GetHospitalRatings)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_favorites",
		Description: "List the signed-in user's favorite hospitals. Requires HOSPITAL_TOKEN against a live backend.",
	}, tools.ListFavorites)
}
