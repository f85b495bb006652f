package main

import (
	"context"
	"fmt"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/goldpath/spectra/internal/cli"
	"github.com/goldpath/spectra/internal/common"
	"github.com/goldpath/spectra/internal/model"
	"github.com/goldpath/spectra/internal/validate"
)

func importCmd() *cobra.Command {
	var (
		dir      string
		category string
	)

	cmd := &cobra.Command{
		Use:   "import [file]",
		Short: "Import signature files into the library",
		Long: `Import one signature file, or a whole directory with --dir. Files are
decoded by extension (.csv tabular, .json structured), validated, and
refused with the full error list when structurally invalid.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if dir == "" && len(args) == 0 {
				return fmt.Errorf("%w: a file argument or --dir is required", common.ErrMissingConfig)
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if dir != "" {
				return importDirectory(ctx, store, dir, category)
			}
			return importFile(ctx, store, args[0], category)
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "import every signature file in a directory")
	cmd.Flags().StringVar(&category, "category", "", "category to assign to imported signatures")
	return cmd
}

type signatureSaver interface {
	SaveSignature(ctx context.Context, sig *model.Signature) error
}

func importFile(ctx context.Context, store signatureSaver, path, category string) error {
	sig, err := loadSignatureFile(path)
	if err != nil {
		return err
	}
	if category != "" {
		sig = sig.WithCategory(model.Category(category))
	}

	if err := store.SaveSignature(ctx, sig); err != nil {
		return common.NewUserError(fmt.Sprintf("refusing to import %s", path), err)
	}

	quality := validate.Quality(sig)
	common.LogDebug("imported signature", common.Fields{
		"id":           sig.ID,
		"category":     sig.Category,
		"completeness": quality.Completeness,
	})
	fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("Imported %s (completeness %.0f%%)", sig.ID, quality.Completeness*100)))
	for _, w := range quality.Warnings {
		fmt.Println(cli.WarningStyle.Render("  warning: " + w.Message))
	}
	return nil
}

func importDirectory(ctx context.Context, store signatureSaver, dir, category string) error {
	paths, err := signatureFiles(dir)
	if err != nil {
		return err
	}

	bar := progressbar.NewOptions(len(paths),
		progressbar.OptionSetDescription("importing"),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)

	imported := 0
	var failures []string
	for _, path := range paths {
		_ = bar.Add(1)

		sig, err := loadSignatureFile(path)
		if err != nil {
			common.LogError(err, "failed to load signature file", common.Fields{"path": path})
			failures = append(failures, err.Error())
			continue
		}
		if category != "" {
			sig = sig.WithCategory(model.Category(category))
		}
		if err := store.SaveSignature(ctx, sig); err != nil {
			failures = append(failures, fmt.Sprintf("%s: %v", path, err))
			continue
		}
		imported++
	}
	_ = bar.Finish()

	common.LogInfo("directory import finished", common.Fields{
		"dir":      dir,
		"imported": imported,
		"failed":   len(failures),
	})
	fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("Imported %d of %d signatures", imported, len(paths))))
	for _, f := range failures {
		fmt.Println(cli.ErrorStyle.Render("  " + f))
	}
	if len(failures) > 0 {
		return fmt.Errorf("%d of %d files failed to import", len(failures), len(paths))
	}
	return nil
}
