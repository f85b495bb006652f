package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/goldpath/spectra/internal/cli"
	"github.com/goldpath/spectra/internal/codec"
	"github.com/goldpath/spectra/internal/common"
)

func exportCmd() *cobra.Command {
	var (
		format string
		out    string
	)

	cmd := &cobra.Command{
		Use:   "export <signature-id>",
		Short: "Export a library signature to a file or stdout",
		Long: `Export one library record in either encoding. The tabular form drops
record-level metadata; use structured when fidelity matters.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			sig, err := store.GetSignature(ctx, args[0])
			if err != nil {
				return err
			}

			var encode func(w *os.File) error
			switch format {
			case "tabular":
				encode = func(w *os.File) error { return codec.EncodeTabular(w, sig) }
			case "structured":
				encode = func(w *os.File) error { return codec.EncodeStructured(w, sig) }
			default:
				return fmt.Errorf("%w: format %q", common.ErrInvalidConfig, format)
			}

			if out == "" {
				return encode(os.Stdout)
			}

			f, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", out, err)
			}
			if err := encode(f); err != nil {
				_ = f.Close()
				return fmt.Errorf("failed to write %s: %w", out, err)
			}
			if err := f.Close(); err != nil {
				return err
			}
			fmt.Println(cli.SuccessStyle.Render("Wrote " + out))
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "structured", "output encoding (tabular, structured)")
	cmd.Flags().StringVar(&out, "out", "", "output file (default stdout)")
	return cmd
}
