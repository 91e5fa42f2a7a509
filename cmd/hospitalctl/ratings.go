package main

import (
	"fmt"
	"io"

	"github.com/eshaffer321/hospitalnav-go/pkg/hospital"
	"github.com/spf13/cobra"
)

func printRatings(c *cli, w io.Writer, ratings []*hospital.Rating) error {
	if done, err := c.printJSON(w, ratings); done {
		return err
	}
	if len(ratings) == 0 {
		fmt.Fprintln(w, "No ratings")
		return nil
	}

	tw := newTable(w, "ID", "HOSPITAL", "QUALITY", "SERVICE", "ENV", "EFFICIENCY", "EQUIPMENT", "DATE", "COMMENT")
	for _, r := range ratings {
		row(tw, r.ID, r.HospitalID, r.MedicalQuality, r.Service, r.Environment, r.Efficiency, r.Equipment, r.CreatedAt.Format("2006-01-02"), r.Comment)
	}
	return tw.Flush()
}

func newRatingsCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "ratings <hospital-id>",
		Short: "Show rating statistics and recent ratings of a hospital",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := c.getClient(cmd)
			if err != nil {
				return err
			}

			ratings, err := client.Ratings.ForHospital(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if done, err := c.printJSON(w, ratings); done {
				return err
			}

			if s := ratings.Statistics; s != nil {
				fmt.Fprintf(w, "Overall %.2f from %d ratings\n", s.Overall, s.Count)
				fmt.Fprintf(w, "  Medical quality %.2f  Service %.2f  Environment %.2f  Efficiency %.2f  Equipment %.2f\n\n",
					s.MedicalQuality, s.Service, s.Environment, s.Efficiency, s.Equipment)
			}
			return printRatings(c, w, ratings.RecentRatings)
		},
	}
}

func newRateCmd(c *cli) *cobra.Command {
	params := &hospital.RatingSubmitParams{}

	cmd := &cobra.Command{
		Use:   "rate <hospital-id>",
		Short: "Rate a hospital on every dimension",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := params.Validate(); err != nil {
				return err
			}

			client, err := c.getClient(cmd)
			if err != nil {
				return err
			}

			rating, err := client.Ratings.Submit(cmd.Context(), args[0], params)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if done, err := c.printJSON(w, rating); done {
				return err
			}
			fmt.Fprintf(w, "Submitted rating %s for hospital %s\n", rating.ID, rating.HospitalID)
			return nil
		},
	}

	cmd.Flags().Float64Var(&params.MedicalQuality, "quality", 0, "Medical quality score (1-5)")
	cmd.Flags().Float64Var(&params.Service, "service", 0, "Service score (1-5)")
	cmd.Flags().Float64Var(&params.Environment, "environment", 0, "Environment score (1-5)")
	cmd.Flags().Float64Var(&params.Efficiency, "efficiency", 0, "Efficiency score (1-5)")
	cmd.Flags().Float64Var(&params.Equipment, "equipment", 0, "Equipment score (1-5)")
	cmd.Flags().StringVar(&params.Comment, "comment", "", "Free-text comment")
	return cmd
}

func newDimensionsCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "dimensions",
		Short: "List the rating dimensions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := c.getClient(cmd)
			if err != nil {
				return err
			}

			dimensions, err := client.Ratings.Dimensions(cmd.Context())
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if done, err := c.printJSON(w, dimensions); done {
				return err
			}

			tw := newTable(w, "ID", "NAME", "DESCRIPTION")
			for _, d := range dimensions {
				row(tw, d.ID, d.Name, d.Description)
			}
			return tw.Flush()
		},
	}
}

func newMyRatingsCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "my-ratings",
		Short: "List ratings you have written",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := c.getClient(cmd)
			if err != nil {
				return err
			}

			ratings, err := client.Ratings.Mine(cmd.Context())
			if err != nil {
				return err
			}
			return printRatings(c, cmd.OutOrStdout(), ratings)
		},
	}
}
