package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/goldpath/spectra/internal/cli"
	"github.com/goldpath/spectra/internal/model"
	"github.com/goldpath/spectra/internal/service"
)

func listCmd() *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List signatures in the library",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			sigs, err := store.ListSignatures(ctx, service.SignatureFilter{
				Category: model.Category(category),
			})
			if err != nil {
				return err
			}

			if len(sigs) == 0 {
				fmt.Println(cli.InfoStyle.Render("No signatures found. Use 'spectra import' to add some."))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tCategory\tSensor\tScene")
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				strings.Repeat("-", 24), strings.Repeat("-", 16),
				strings.Repeat("-", 8), strings.Repeat("-", 20))
			for _, sig := range sigs {
				sensor, scene := "", ""
				if sig.Source != nil {
					sensor, scene = sig.Source.Sensor, sig.Source.SceneID
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", sig.ID, sig.Category, sensor, scene)
			}
			if err := w.Flush(); err != nil {
				return err
			}

			counts, err := store.CountByCategory(ctx)
			if err != nil {
				return err
			}
			var parts []string
			for _, c := range model.Categories() {
				if counts[c] > 0 {
					parts = append(parts, fmt.Sprintf("%s: %d", c, counts[c]))
				}
			}
			fmt.Println(cli.SubtleStyle.Render(strings.Join(parts, ", ")))
			return nil
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "list only one category")
	return cmd
}
