package main

import (
	"fmt"

	"github.com/eshaffer321/hospitalnav-go/pkg/hospital"
	"github.com/spf13/cobra"
)

func newLoginCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "login <code>",
		Short: "Exchange a platform login code for a session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := c.getClient(cmd)
			if err != nil {
				return err
			}

			resp, err := client.Auth.Login(cmd.Context(), &hospital.LoginParams{Code: args[0]})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if done, err := c.printJSON(w, resp.User); done {
				return err
			}
			if resp.User != nil {
				fmt.Fprintf(w, "Logged in as %s\n", resp.User.Nickname)
			} else {
				fmt.Fprintln(w, "Logged in")
			}
			return nil
		},
	}
}

func newLogoutCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := c.getClient(cmd)
			if err != nil {
				return err
			}
			if err := client.Auth.Logout(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
			return nil
		},
	}
}

func newWhoamiCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := c.getClient(cmd)
			if err != nil {
				return err
			}

			user, err := client.Auth.Profile(cmd.Context())
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if done, err := c.printJSON(w, user); done {
				return err
			}
			fmt.Fprintf(w, "%s (id %s)\n", user.Nickname, user.ID)
			return nil
		},
	}
}
