package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/flywave/go-iontrap/render"
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render the scene's cross-sections as PNG and the field as HTML",
	Long: `Render every configured cross-section (by default the mid sections
along x, y and z) as a heat map with contour lines, and a 3D field as an
HTML scatter plot. 2D fields are written as a single plane.png.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		scene, err := loadScene()
		if err != nil {
			return err
		}
		f, err := evaluateScene(scene)
		if err != nil {
			return err
		}
		sections, err := scene.CrossSections(f)
		if err != nil {
			return err
		}

		out := scene.Output
		if err := os.MkdirAll(out.Dir, 0755); err != nil {
			return fmt.Errorf("failed to create output dir: %w", err)
		}

		opts := render.Options{Levels: out.Levels, Palette: out.Palette, Logger: logger}
		if out.SharedRange {
			if min, max, ok := f.Range(); ok {
				opts.Min, opts.Max = min, max
			}
		}

		for _, cs := range sections {
			name := "plane.png"
			if f.Dims() == 3 {
				name = fmt.Sprintf("section_%s_%03d.png", cs.Fixed, cs.Index)
			}
			path := filepath.Join(out.Dir, name)
			if err := render.SavePNG(path, cs, opts, out.WidthIn, out.HeightIn); err != nil {
				return err
			}
			logger.Info("wrote section", "section", cs.Label(), "path", path)
		}

		if f.Dims() != 3 {
			return nil
		}
		path := filepath.Join(out.Dir, "field.html")
		w, err := os.Create(path)
		if err != nil {
			return err
		}
		defer w.Close()
		title := fmt.Sprintf("%s %v", scene.Variant, scene.Params)
		if err := render.WriteScatter3D(w, f, render.ScatterOptions{Title: title, MaxPoints: out.MaxPoints}); err != nil {
			return fmt.Errorf("render %s: %w", path, err)
		}
		logger.Info("wrote field", "path", path)
		return w.Close()
	},
}

func init() {
	rootCmd.AddCommand(renderCmd)
}
