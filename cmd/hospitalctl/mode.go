package main

import (
	"fmt"

	"github.com/eshaffer321/hospitalnav-go/pkg/hospital"
	"github.com/spf13/cobra"
)

func newModeCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mode",
		Short: "Show or persist the backend mode",
		Run: func(cmd *cobra.Command, args []string) {
			_ = cmd.Help()
		},
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "get",
			Short: "Print the persisted mode",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				enabled, err := hospital.MockModeEnabled(c.getStorage())
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), modeName(enabled))
				return nil
			},
		},
		&cobra.Command{
			Use:       "set <mock|live>",
			Short:     "Persist the mode used when --mock is not given",
			Args:      cobra.ExactArgs(1),
			ValidArgs: []string{"mock", "live"},
			RunE: func(cmd *cobra.Command, args []string) error {
				var enabled bool
				switch args[0] {
				case "mock":
					enabled = true
				case "live":
					enabled = false
				default:
					return fmt.Errorf("unknown mode %q, want mock or live", args[0])
				}

				if err := hospital.SetMockMode(c.getStorage(), enabled); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Mode set to %s\n", modeName(enabled))
				return nil
			},
		},
	)

	return cmd
}

func modeName(mock bool) string {
	if mock {
		return "mock"
	}
	return "live"
}
