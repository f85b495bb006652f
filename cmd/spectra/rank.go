package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/goldpath/spectra/internal/cli"
	"github.com/goldpath/spectra/internal/compare"
	"github.com/goldpath/spectra/internal/model"
	"github.com/goldpath/spectra/internal/service"
)

func rankCmd() *cobra.Command {
	var (
		dir      string
		category string
		focus    []int
		limit    int
	)

	cmd := &cobra.Command{
		Use:   "rank <reference-file>",
		Short: "Rank candidates by similarity to a reference signature",
		Long: `Compare a reference signature against candidates from the library (or a
directory with --dir) and list them most similar first. Candidates that
are the same logical signature as the reference are skipped.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			ref, err := loadSignatureFile(args[0])
			if err != nil {
				return err
			}

			var candidates []*model.Signature
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
					candidates = append(candidates, sig)
				}
			} else {
				store, err := initStorage(ctx)
				if err != nil {
					return err
				}
				defer func() { _ = store.Close() }()

				candidates, err = store.ListSignatures(ctx, service.SignatureFilter{
					Category: model.Category(category),
				})
				if err != nil {
					return err
				}
			}

			candidates = compare.Dedupe(ref, candidates)
			ranked, err := compare.RankBySimilarity(ref, candidates, parseFocusBands(focus))
			if err != nil {
				return err
			}
			if limit > 0 && limit < len(ranked) {
				ranked = ranked[:limit]
			}

			fmt.Println(cli.TitleStyle.Render(fmt.Sprintf("Candidates ranked against %s", ref.ID)))
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "Rank\tSignature\tCategory\tSeparability")
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				strings.Repeat("-", 4), strings.Repeat("-", 24),
				strings.Repeat("-", 16), strings.Repeat("-", 12))
			for i, rc := range ranked {
				fmt.Fprintf(w, "%d\t%s\t%s\t%.4f\n",
					i+1, rc.Signature.ID, rc.Signature.Category, rc.Separability)
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "rank signature files from a directory instead of the library")
	cmd.Flags().StringVar(&category, "category", "", "restrict library candidates to one category")
	cmd.Flags().IntSliceVar(&focus, "focus", nil, "focus band numbers (default 13,16)")
	cmd.Flags().IntVar(&limit, "limit", 0, "show only the top N candidates")
	return cmd
}
