package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	iontrap "github.com/flywave/go-iontrap"
)

var variantsCmd = &cobra.Command{
	Use:   "variants",
	Short: "List potential variants and presets",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "VARIANT\tDIMS\tPARAMS")
		for _, v := range iontrap.Variants() {
			fmt.Fprintf(w, "%s\t%d\t%s\n", v, v.Dims(), strings.Join(v.ParamNames(), ","))
		}
		fmt.Fprintln(w)
		fmt.Fprintln(w, "PRESET\tVARIANT\tVALUES")
		for _, p := range iontrap.Presets() {
			fmt.Fprintf(w, "%s\t%s\t%v\n", p.Name, p.Variant, []float64(p.Params))
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(variantsCmd)
}
