package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/eshaffer321/hospitalnav-go/pkg/hospital"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// Environment variables read as flag defaults
const (
	envBaseURL     = "HOSPITAL_BASE_URL"
	envStateFile   = "HOSPITAL_STATE_FILE"
	envMock        = "HOSPITAL_MOCK"
	envMockLatency = "HOSPITAL_MOCK_LATENCY"
	envSentryDSN   = "HOSPITAL_SENTRY_DSN"
)

// defaultMockLatency matches the delay the mini-program shows in mock mode
const defaultMockLatency = 500 * time.Millisecond

// cli holds the global flags and the lazily built client
type cli struct {
	baseURL     string
	stateFile   string
	mock        bool
	mockLatency time.Duration
	charDelay   time.Duration
	sentryDSN   string
	jsonOutput  bool
	verbose     bool

	storage hospital.Storage
	client  *hospital.Client
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	rootCmd := &cobra.Command{
		Use:           "hospitalctl",
		Short:         "Find hospitals, manage favorites and ratings, and ask the assistant",
		Long:          "Command line client for the hospital navigation backend, with a built-in mock backend",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if c.client != nil {
				c.client.Close()
			}
		},
		Run: func(cmd *cobra.Command, args []string) {
			_ = cmd.Help()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&c.baseURL, "base-url", os.Getenv(envBaseURL), "Backend base URL (default "+hospital.DefaultBaseURL+")")
	flags.StringVar(&c.stateFile, "state", envOr(envStateFile, defaultStateFile()), "State file holding the session token and mock flag")
	flags.BoolVar(&c.mock, "mock", false, "Use the built-in mock backend for this invocation")
	flags.DurationVar(&c.mockLatency, "mock-latency", envDuration(envMockLatency, defaultMockLatency), "Simulated latency of the mock backend")
	flags.DurationVar(&c.charDelay, "char-delay", hospital.DefaultCharDelay, "Delay between streamed characters of assistant replies")
	flags.StringVar(&c.sentryDSN, "sentry-dsn", os.Getenv(envSentryDSN), "Report failed calls to Sentry")
	flags.BoolVar(&c.jsonOutput, "json", false, "Machine-readable JSON output")
	flags.BoolVarP(&c.verbose, "verbose", "v", false, "Log requests to stderr")

	rootCmd.AddCommand(
		newSearchCmd(c),
		newShowCmd(c),
		newNearbyCmd(c),
		newCategoriesCmd(c),
		newDepartmentsCmd(c),
		newFavoritesCmd(c),
		newRatingsCmd(c),
		newRateCmd(c),
		newDimensionsCmd(c),
		newMyRatingsCmd(c),
		newLoginCmd(c),
		newLogoutCmd(c),
		newWhoamiCmd(c),
		newChatCmd(c),
		newHistoryCmd(c),
		newModeCmd(c),
	)

	return rootCmd
}

func defaultStateFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".hospitalctl.json"
	}
	return filepath.Join(home, ".hospitalctl.json")
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return d
}

// getStorage opens the state file once
func (c *cli) getStorage() hospital.Storage {
	if c.storage == nil {
		c.storage = hospital.NewFileStorage(c.stateFile)
	}
	return c.storage
}

// getClient builds the client on first use. Mock mode comes from --mock,
// then HOSPITAL_MOCK, then the persisted flag.
func (c *cli) getClient(cmd *cobra.Command) (*hospital.Client, error) {
	if c.client != nil {
		return c.client, nil
	}

	opts := &hospital.ClientOptions{
		Storage:     c.getStorage(),
		MockLatency: c.mockLatency,
		Replayer:    &hospital.Replayer{CharDelay: c.charDelay, ItemDelay: hospital.DefaultItemDelay},
		SentryDSN:   c.sentryDSN,
	}
	if c.charDelay == 0 {
		opts.Replayer.ItemDelay = 0
	}

	if c.baseURL != "" {
		opts.Config = &hospital.ConfigPatch{BaseURL: hospital.String(c.baseURL)}
	}

	if cmd.Flags().Changed("mock") {
		opts.MockMode = hospital.Bool(c.mock)
	} else if raw := os.Getenv(envMock); raw != "" {
		enabled, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid %s", envMock)
		}
		opts.MockMode = hospital.Bool(enabled)
	}

	if c.verbose {
		opts.Logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	client, err := hospital.NewClient(opts)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create client")
	}
	c.client = client
	return client, nil
}

// printJSON writes v indented when --json is set and reports whether it did
func (c *cli) printJSON(w io.Writer, v interface{}) (bool, error) {
	if !c.jsonOutput {
		return false, nil
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return true, errors.Wrap(err, "failed to encode output")
	}
	_, err = fmt.Fprintln(w, string(data))
	return true, err
}

func newTable(w io.Writer, headers ...interface{}) *tabwriter.Writer {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for i, h := range headers {
		if i > 0 {
			fmt.Fprint(tw, "\t")
		}
		fmt.Fprint(tw, h)
	}
	fmt.Fprintln(tw)
	return tw
}

func row(tw *tabwriter.Writer, cols ...interface{}) {
	for i, col := range cols {
		if i > 0 {
			fmt.Fprint(tw, "\t")
		}
		fmt.Fprint(tw, col)
	}
	fmt.Fprintln(tw)
}
