package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newFavoritesCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "favorites",
		Aliases: []string{"fav"},
		Short:   "Manage favorite hospitals",
		RunE: func(cmd *cobra.Command, args []string) error {
			return listFavorites(c, cmd)
		},
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List favorite hospitals",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return listFavorites(c, cmd)
			},
		},
		&cobra.Command{
			Use:   "add <hospital-id>",
			Short: "Add a hospital to favorites",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				client, err := c.getClient(cmd)
				if err != nil {
					return err
				}
				if err := client.Favorites.Add(cmd.Context(), args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added %s to favorites\n", args[0])
				return nil
			},
		},
		&cobra.Command{
			Use:   "remove <hospital-id>",
			Short: "Remove a hospital from favorites",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				client, err := c.getClient(cmd)
				if err != nil {
					return err
				}
				if err := client.Favorites.Remove(cmd.Context(), args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %s from favorites\n", args[0])
				return nil
			},
		},
		&cobra.Command{
			Use:   "toggle <hospital-id>",
			Short: "Flip the favorite state of a hospital",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				client, err := c.getClient(cmd)
				if err != nil {
					return err
				}
				favorite, err := client.Favorites.Toggle(cmd.Context(), args[0])
				if err != nil {
					return err
				}

				w := cmd.OutOrStdout()
				if done, err := c.printJSON(w, map[string]interface{}{"id": args[0], "favorite": favorite}); done {
					return err
				}
				if favorite {
					fmt.Fprintf(w, "Added %s to favorites\n", args[0])
				} else {
					fmt.Fprintf(w, "Removed %s from favorites\n", args[0])
				}
				return nil
			},
		},
	)

	return cmd
}

func listFavorites(c *cli, cmd *cobra.Command) error {
	client, err := c.getClient(cmd)
	if err != nil {
		return err
	}

	favorites, err := client.Favorites.List(cmd.Context())
	if err != nil {
		return err
	}
	return printHospitals(c, cmd.OutOrStdout(), favorites)
}
