package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	iontrap "github.com/flywave/go-iontrap"
)

var (
	sectionAxis  string
	sectionIndex int
)

var sectionCmd = &cobra.Command{
	Use:   "section",
	Short: "Print one cross-section of the scene's field as JSON",
	Long: `Print a cross-section as a JSON rectangle: the flattened values
with row/column counts, axis limits, value limits and resolutions.

--index defaults to the middle of the axis. Sections that cross a
singularity cannot be encoded and fail.`,
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

		var cs *iontrap.CrossSection
		if f.Dims() == 2 {
			cs, err = f.Plane()
		} else {
			axis, perr := iontrap.ParseAxisID(sectionAxis)
			if perr != nil {
				return perr
			}
			index := sectionIndex
			if !cmd.Flags().Changed("index") {
				index = f.Grid().Axis(axis).Mid()
			}
			cs, err = f.CrossSection(axis, index)
		}
		if err != nil {
			return err
		}
		if n := cs.NonFinite(); n > 0 {
			return fmt.Errorf("section %s has %d non-finite cells", cs.Label(), n)
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(cs.Rectangle())
	},
}

func init() {
	sectionCmd.Flags().StringVar(&sectionAxis, "axis", "z", "axis held fixed: x, y or z")
	sectionCmd.Flags().IntVar(&sectionIndex, "index", 0, "index along the fixed axis (default middle)")
	rootCmd.AddCommand(sectionCmd)
}
