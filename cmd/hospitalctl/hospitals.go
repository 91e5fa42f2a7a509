package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/eshaffer321/hospitalnav-go/pkg/hospital"
	"github.com/spf13/cobra"
)

func printHospitals(c *cli, w io.Writer, hospitals []*hospital.Hospital) error {
	if done, err := c.printJSON(w, hospitals); done {
		return err
	}
	if len(hospitals) == 0 {
		fmt.Fprintln(w, "No hospitals found")
		return nil
	}

	tw := newTable(w, "ID", "NAME", "LEVEL", "RATING", "DISTANCE", "TAGS")
	for _, h := range hospitals {
		row(tw, h.ID, h.Name, h.Level, fmt.Sprintf("%.1f", h.Rating), hospital.FormatDistance(h.Distance), strings.Join(h.Tags, ","))
	}
	return tw.Flush()
}

func newSearchCmd(c *cli) *cobra.Command {
	var (
		page, size int
		lat, lng   float64
		radius     float64
		all        bool
	)

	cmd := &cobra.Command{
		Use:   "search [keyword]",
		Short: "Search hospitals by name or tag",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := c.getClient(cmd)
			if err != nil {
				return err
			}

			query := client.Hospitals.Query().Page(page).Size(size)
			if len(args) == 1 {
				query = query.Keyword(args[0])
			}
			if cmd.Flags().Changed("lat") || cmd.Flags().Changed("lng") {
				query = query.Near(lat, lng)
			}
			if radius > 0 {
				query = query.Radius(radius)
			}

			if !all {
				hospitals, err := query.Execute(cmd.Context())
				if err != nil {
					return err
				}
				return printHospitals(c, cmd.OutOrStdout(), hospitals)
			}

			var hospitals []*hospital.Hospital
			results, errs := query.Stream(cmd.Context())
			for h := range results {
				hospitals = append(hospitals, h)
			}
			if err := <-errs; err != nil {
				return err
			}
			return printHospitals(c, cmd.OutOrStdout(), hospitals)
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "Page number")
	cmd.Flags().IntVar(&size, "size", hospital.DefaultPageSize, "Page size")
	cmd.Flags().Float64Var(&lat, "lat", 0, "Latitude to measure distance from")
	cmd.Flags().Float64Var(&lng, "lng", 0, "Longitude to measure distance from")
	cmd.Flags().Float64Var(&radius, "radius", 0, "Only hospitals within this many km")
	cmd.Flags().BoolVar(&all, "all", false, "Fetch every page")
	return cmd
}

func newShowCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "show <hospital-id>",
		Short: "Show hospital details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := c.getClient(cmd)
			if err != nil {
				return err
			}

			h, err := client.Hospitals.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if done, err := c.printJSON(w, h); done {
				return err
			}

			fmt.Fprintf(w, "%s (%s)\n", h.Name, h.Level)
			fmt.Fprintf(w, "  Rating:   %.1f\n", h.Rating)
			fmt.Fprintf(w, "  Distance: %s\n", hospital.FormatDistance(h.Distance))
			fmt.Fprintf(w, "  Address:  %s\n", h.Address)
			fmt.Fprintf(w, "  Phone:    %s\n", h.ContactPhone)
			fmt.Fprintf(w, "  Hours:    %s\n", h.WorkingHours)
			fmt.Fprintf(w, "  Tags:     %s\n", strings.Join(h.Tags, ", "))
			if h.Description != "" {
				fmt.Fprintf(w, "\n%s\n", h.Description)
			}
			return nil
		},
	}
}

func newNearbyCmd(c *cli) *cobra.Command {
	var (
		lat, lng float64
		radius   float64
		limit    int
	)

	cmd := &cobra.Command{
		Use:   "nearby",
		Short: "List hospitals closest to a point",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := c.getClient(cmd)
			if err != nil {
				return err
			}

			hospitals, err := client.Hospitals.Nearby(cmd.Context(), &hospital.NearbyParams{
				Location: &hospital.Location{Latitude: lat, Longitude: lng},
				Radius:   radius,
				Limit:    limit,
			})
			if err != nil {
				return err
			}
			return printHospitals(c, cmd.OutOrStdout(), hospitals)
		},
	}

	cmd.Flags().Float64Var(&lat, "lat", 0, "Latitude")
	cmd.Flags().Float64Var(&lng, "lng", 0, "Longitude")
	cmd.Flags().Float64Var(&radius, "radius", 5, "Search radius in km")
	cmd.Flags().IntVar(&limit, "limit", 0, "Max hospitals returned")
	_ = cmd.MarkFlagRequired("lat")
	_ = cmd.MarkFlagRequired("lng")
	return cmd
}

func newCategoriesCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List hospital categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := c.getClient(cmd)
			if err != nil {
				return err
			}

			categories, err := client.Hospitals.Categories(cmd.Context())
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if done, err := c.printJSON(w, categories); done {
				return err
			}

			tw := newTable(w, "ID", "CATEGORY", "HOSPITALS")
			for _, cat := range categories {
				names := make([]string, 0, len(cat.Hospitals))
				for _, h := range cat.Hospitals {
					names = append(names, h.Name)
				}
				row(tw, cat.ID, cat.Name, strings.Join(names, ", "))
			}
			return tw.Flush()
		},
	}
}

func newDepartmentsCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "departments <hospital-id>",
		Short: "List the departments of a hospital",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := c.getClient(cmd)
			if err != nil {
				return err
			}

			departments, err := client.Hospitals.Departments(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if done, err := c.printJSON(w, departments); done {
				return err
			}

			tw := newTable(w, "ID", "DEPARTMENT", "DESCRIPTION")
			for _, d := range departments {
				row(tw, d.ID, d.Name, d.Description)
			}
			return tw.Flush()
		},
	}
}
