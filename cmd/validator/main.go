package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	config := parseFlags()

	// Create output directory
	if err := os.MkdirAll(config.OutputDir, 0755); err != nil {
		log.Fatalf("Failed to create output directory: %v", err)
	}

	validator, err := NewValidator(config)
	if err != nil {
		log.Fatalf("Failed to create validator: %v", err)
	}

	report, err := validator.Run()
	if err != nil {
		log.Fatalf("Validation failed: %v", err)
	}

	reportPath := filepath.Join(config.OutputDir, fmt.Sprintf("validation_report_%d.json", time.Now().Unix()))
	if err := saveReport(report, reportPath); err != nil {
		log.Fatalf("Failed to save report: %v", err)
	}

	printSummary(report)

	// Exit with non-zero if any tests failed
	if report.Failed > 0 {
		os.Exit(1)
	}
}

func parseFlags() *ValidatorConfig {
	config := &ValidatorConfig{}

	flag.StringVar(&config.BaseURL, "base-url", os.Getenv("HOSPITAL_BASE_URL"), "Backend to validate against the fixtures")
	flag.StringVar(&config.OutputDir, "output", "./validation_results", "Output directory for results")
	flag.BoolVar(&config.Verbose, "verbose", false, "Verbose output")

	methodList := flag.String("methods", "", "Comma-separated list of methods to test (empty for all)")

	flag.Parse()

	if *methodList != "" {
		config.MethodsToTest = strings.Split(*methodList, ",")
	} else {
		config.MethodsToTest = DefaultMethods
	}

	return config
}

func saveReport(report *ValidationReport, path string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func printSummary(report *ValidationReport) {
	fmt.Println("\n=== Validation Summary ===")
	fmt.Printf("Total:   %d\n", report.TotalTests)
	fmt.Printf("Passed:  %d\n", report.Passed)
	fmt.Printf("Failed:  %d\n", report.Failed)
	fmt.Printf("Success: %.1f%%\n", report.SuccessRate)

	for _, r := range report.Results {
		status := "PASS"
		if !r.Passed {
			status = "FAIL"
		}
		fmt.Printf("  [%s] %-22s %v", status, r.Method, r.Duration.Round(time.Millisecond))
		if r.Error != "" {
			fmt.Printf("  %s", r.Error)
		}
		fmt.Println()
	}
}
