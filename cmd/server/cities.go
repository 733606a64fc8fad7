package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cuenta-regresiva/backend/internal/cities"
)

func addCitiesCmd(rootCmd *cobra.Command) {
	citiesCmd := &cobra.Command{
		Use:   "cities",
		Short: "List the city table",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp()
			if err != nil {
				return err
			}
			table := a.doc.Cities()
			home := a.page.Profile().DefaultCity

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tLATITUDE\tLONGITUDE\tCOUNTRY\tPHOTOS\tDISTANCE")
			for _, r := range table.Records() {
				distance := "-"
				if home != "" && home != r.Name {
					if target, err := table.Resolve(home); err == nil {
						distance = fmt.Sprintf("%.0f km", cities.Distance(r, target)/1000)
					}
				}
				fmt.Fprintf(w, "%s\t%.4f\t%.4f\t%s\t%s\t%s\n",
					r.Name, r.Latitude, r.Longitude, r.Country,
					cities.PhotoFolder(a.cfg.Assets.ImageRoot, r), distance)
			}
			return w.Flush()
		},
	}
	rootCmd.AddCommand(citiesCmd)
}
