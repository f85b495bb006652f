package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/goldpath/spectra/internal/cli"
	"github.com/goldpath/spectra/internal/compare"
	"github.com/goldpath/spectra/internal/model"
	"github.com/goldpath/spectra/internal/service"
)

func matrixCmd() *cobra.Command {
	var (
		dir      string
		category string
		kind     string
	)

	cmd := &cobra.Command{
		Use:   "matrix",
		Short: "Cross-compare a signature set",
		Long: `Compute pairwise similarity (Pearson correlation) and separability
(Jeffries-Matusita approximation) over every signature in the library or
a directory. High mean separability means the set discriminates well.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			valueKind, err := parseValueKind(kind)
			if err != nil {
				return err
			}

			var sigs []*model.Signature
			if dir != "" {
				paths, err := signatureFiles(dir)
				if err != nil {
					return err
				}
				for _, path := range paths {
					sig, err := loadSignatureFile(path)
					if err != nil {
						return err
					}
					sigs = append(sigs, sig)
				}
			} else {
				store, err := initStorage(ctx)
				if err != nil {
					return err
				}
				defer func() { _ = store.Close() }()

				sigs, err = store.ListSignatures(ctx, service.SignatureFilter{
					Category: model.Category(category),
				})
				if err != nil {
					return err
				}
			}

			cross, err := compare.Matrix(sigs, valueKind)
			if err != nil {
				return err
			}
			printMatrix(cross)
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "cross-compare signature files from a directory instead of the library")
	cmd.Flags().StringVar(&category, "category", "", "restrict library signatures to one category")
	cmd.Flags().StringVar(&kind, "kind", "reflectance", "value kind to compare (reflectance, continuum, index)")
	return cmd
}

func parseValueKind(kind string) (model.ValueKind, error) {
	switch kind {
	case "reflectance":
		return model.KindReflectance, nil
	case "continuum":
		return model.KindContinuum, nil
	case "index":
		return model.KindIndex, nil
	default:
		return 0, fmt.Errorf("unknown value kind %q (want reflectance, continuum, or index)", kind)
	}
}

func printMatrix(cross *compare.CrossComparison) {
	fmt.Println(cli.TitleStyle.Render(fmt.Sprintf("Cross-comparison over %d signatures", len(cross.IDs))))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprint(w, "Similarity")
	for _, id := range cross.IDs {
		fmt.Fprintf(w, "\t%s", id)
	}
	fmt.Fprintln(w)
	for i, id := range cross.IDs {
		fmt.Fprint(w, id)
		for j := range cross.IDs {
			fmt.Fprintf(w, "\t%.3f", cross.Similarity[i][j])
		}
		fmt.Fprintln(w)
	}
	_ = w.Flush()

	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprint(w, "Separability")
	for _, id := range cross.IDs {
		fmt.Fprintf(w, "\t%s", id)
	}
	fmt.Fprintln(w)
	for i, id := range cross.IDs {
		fmt.Fprint(w, id)
		for j := range cross.IDs {
			fmt.Fprintf(w, "\t%.3f", cross.Separability[i][j])
		}
		fmt.Fprintln(w)
	}
	_ = w.Flush()

	fmt.Println(cli.BoldStyle.Render(fmt.Sprintf("Mean similarity %.4f, mean separability %.4f",
		cross.MeanSimilarity, cross.MeanSeparability)))
}
