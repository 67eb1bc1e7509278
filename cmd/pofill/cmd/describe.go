package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/javajack/pofill"
)

func newDescribeCmd(stdout io.Writer) *cobra.Command {
	var sheet string
	c := &cobra.Command{
		Use:   "describe <sheet.csv|sheet.xlsx>",
		Short: "Show the header rows and row count of an item sheet",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(c *cobra.Command, args []string) error {
			out, err := pofill.Describe(args[0], pofill.WithSheet(sheet))
			if err != nil {
				return err
			}
			fmt.Fprint(stdout, out)
			return nil
		},
	}
	c.Flags().StringVar(&sheet, "sheet", "", "worksheet of an .xlsx file (default: first sheet)")
	return c
}
