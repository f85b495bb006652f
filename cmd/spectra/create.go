package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/goldpath/spectra/internal/cli"
	"github.com/goldpath/spectra/internal/codec"
	"github.com/goldpath/spectra/internal/model"
)

func createCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create signature files",
	}
	cmd.AddCommand(createTemplateCmd())
	cmd.AddCommand(createPixelCmd())
	return cmd
}

func createTemplateCmd() *cobra.Command {
	var (
		category string
		outDir   string
	)

	cmd := &cobra.Command{
		Use:   "template <signature-id>",
		Short: "Write an empty signature template for manual filling",
		Long: `Write a zero-valued 18-band signature in both encodings so field values
can be filled in by hand or by a spreadsheet tool.`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			sig, err := model.Template(args[0], model.Category(category))
			if err != nil {
				return err
			}

			if err := os.MkdirAll(outDir, 0750); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}

			csvPath := filepath.Join(outDir, sig.ID+".csv")
			if err := writeEncoded(csvPath, sig, codec.EncodeTabular); err != nil {
				return err
			}
			jsonPath := filepath.Join(outDir, sig.ID+".json")
			if err := writeEncoded(jsonPath, sig, codec.EncodeStructured); err != nil {
				return err
			}

			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("Wrote %s and %s", csvPath, jsonPath)))
			return nil
		},
	}

	cmd.Flags().StringVar(&category, "category", string(model.CategoryOther), "signature category")
	cmd.Flags().StringVar(&outDir, "out", ".", "output directory")
	return cmd
}

func createPixelCmd() *cobra.Command {
	var (
		category string
		outDir   string
		values   []float64
		lat      float64
		lon      float64
		pixelX   float64
		pixelY   float64
		sensor   string
		sceneID  string
	)

	cmd := &cobra.Command{
		Use:   "pixel <signature-id>",
		Short: "Build a signature from raw pixel values",
		Long: `Build a signature from the 18 band values a GIS identify tool reports for
one pixel. Coordinates may be geographic, pixel offsets, or both.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			loc := model.Location{}
			if cmd.Flags().Changed("lat") && cmd.Flags().Changed("lon") {
				loc.Latitude, loc.Longitude = &lat, &lon
			}
			if cmd.Flags().Changed("pixel-x") && cmd.Flags().Changed("pixel-y") {
				loc.PixelX, loc.PixelY = &pixelX, &pixelY
			}

			var src *model.Source
			if sensor != "" || sceneID != "" {
				src = &model.Source{Sensor: sensor, SceneID: sceneID, ExtractionMethod: "pixel"}
			}

			sig, err := model.FromPixel(args[0], model.Category(category), values, loc, src)
			if err != nil {
				return err
			}

			if err := os.MkdirAll(outDir, 0750); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
			jsonPath := filepath.Join(outDir, sig.ID+".json")
			if err := writeEncoded(jsonPath, sig, codec.EncodeStructured); err != nil {
				return err
			}
			fmt.Println(cli.SuccessStyle.Render("Wrote " + jsonPath))
			return nil
		},
	}

	cmd.Flags().StringVar(&category, "category", string(model.CategoryGoldExploration), "signature category")
	cmd.Flags().StringVar(&outDir, "out", ".", "output directory")
	cmd.Flags().Float64SliceVar(&values, "values", nil, "18 band values in band order")
	cmd.Flags().Float64Var(&lat, "lat", 0, "latitude of the sampled pixel")
	cmd.Flags().Float64Var(&lon, "lon", 0, "longitude of the sampled pixel")
	cmd.Flags().Float64Var(&pixelX, "pixel-x", 0, "pixel column in the source scene")
	cmd.Flags().Float64Var(&pixelY, "pixel-y", 0, "pixel row in the source scene")
	cmd.Flags().StringVar(&sensor, "sensor", "", "sensor name")
	cmd.Flags().StringVar(&sceneID, "scene", "", "source scene identifier")
	_ = cmd.MarkFlagRequired("values")
	return cmd
}

func writeEncoded(path string, sig *model.Signature, encode func(w io.Writer, sig *model.Signature) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := encode(f, sig); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return f.Close()
}
