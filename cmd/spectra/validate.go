package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goldpath/spectra/internal/cli"
	"github.com/goldpath/spectra/internal/validate"
)

func validateCmd() *cobra.Command {
	var quiet bool

	cmd := &cobra.Command{
		Use:   "validate <file>",
		Short: "Validate a signature file",
		Long: `Decode a signature file, run the structural checks, and report every
violation along with the advisory quality findings. Exits non-zero when
the signature is structurally invalid.`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			sig, err := loadSignatureFile(args[0])
			if err != nil {
				return err
			}

			result := validate.Check(sig)
			quality := validate.Quality(sig)

			if result.Valid {
				fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("%s: VALID", sig.ID)))
			} else {
				fmt.Println(cli.ErrorStyle.Render(fmt.Sprintf("%s: INVALID (%d errors)", sig.ID, len(result.Errors))))
				for _, issue := range result.Errors {
					fmt.Println(cli.ErrorStyle.Render("  error: " + issue.String()))
				}
			}

			if !quiet {
				for _, w := range quality.Warnings {
					fmt.Println(cli.WarningStyle.Render("  warning: " + w.Message))
				}
				fmt.Println(cli.InfoStyle.Render(fmt.Sprintf("  completeness: %.0f%%", quality.Completeness*100)))
			}

			if !result.Valid {
				return fmt.Errorf("signature %q failed validation", sig.ID)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&quiet, "quiet", false, "suppress quality warnings")
	return cmd
}
