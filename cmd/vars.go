package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"gridstat/internal/ncfile"
)

var varsCmd = &cobra.Command{
	Use:   "vars <file.nc>",
	Short: "List a NetCDF file's variables and global attributes",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ds, err := ncfile.Open(args[0])
		if err != nil {
			return err
		}
		defer ds.Close()

		if attrs := ds.GlobalAttrs(); len(attrs) > 0 {
			fmt.Println("Global attributes:")
			for _, a := range attrs {
				fmt.Printf("  %s: %s\n", a.Name, a.Value.Render())
			}
		}
		fmt.Println("Variables:")
		for _, v := range ds.Variables() {
			kind := "data"
			if v.Rank() < 2 {
				kind = "coordinate"
			}
			fmt.Printf("  %s %s %s [%s]\n", v.Name, v.ShapeString(), v.TypeName(), kind)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(varsCmd)
}
