package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	iontrap "github.com/flywave/go-iontrap"
	"github.com/flywave/go-iontrap/internal/config"
)

var vtkPath string

var evalCmd = &cobra.Command{
	Use:   "eval",
	Short: "Evaluate the scene's potential and report its range",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		scene, err := loadScene()
		if err != nil {
			return err
		}
		f, err := evaluateScene(scene)
		if err != nil {
			return err
		}

		min, max, _ := f.Range()
		fmt.Fprintf(cmd.OutOrStdout(), "%s %v shape=%v min=%g max=%g non_finite=%d\n",
			scene.Variant, scene.Params, f.Shape(), min, max, f.NonFinite())

		if vtkPath == "" {
			return nil
		}
		out, err := os.Create(vtkPath)
		if err != nil {
			return err
		}
		defer out.Close()
		if err := iontrap.WriteVTK(out, f, fmt.Sprintf("%s %v", scene.Variant, scene.Params)); err != nil {
			return fmt.Errorf("write %s: %w", vtkPath, err)
		}
		logger.Info("wrote vtk", "path", vtkPath, "points", f.Len())
		return out.Close()
	},
}

func init() {
	evalCmd.Flags().StringVar(&vtkPath, "vtk", "", "also write the field as a legacy VTK file")
	rootCmd.AddCommand(evalCmd)
}

// evaluateScene evaluates the scene and logs what a plot reader should
// know: the Laplace residual of quadratic traps and any singular cells.
func evaluateScene(scene *config.Scene) (*iontrap.ScalarField, error) {
	v := scene.PotentialVariant()
	if v == iontrap.LinearTrap {
		if r := scene.Parameters().LaplaceResidual(); r != 0 {
			logger.Warn("coefficients do not satisfy the Laplace equation", "params", scene.Params, "sum", r)
		}
	}

	f, err := scene.Evaluate()
	if err != nil {
		return nil, err
	}
	logger.Debug("evaluated", "variant", v, "params", scene.Params, "shape", f.Shape())
	if n := f.NonFinite(); n > 0 {
		logger.Warn("field has singular cells", "variant", v, "non_finite", n)
	}
	return f, nil
}
