package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import FILE.csv",
	Short: "Import trades from a CSV file",
	Long: `Import trades from a CSV file with a header row. Every row goes through the
same derivation as the API; rows that fail are reported and skipped.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	a, err := setup(cmd.Context())
	if err != nil {
		return err
	}
	defer teardown(a)

	res, err := a.Importer().Import(cmd.Context(), f)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "imported %d trades, %d rows failed\n", len(res.Imported), len(res.Failed))
	for _, rowErr := range res.Failed {
		fmt.Fprintf(out, "  %v\n", rowErr)
	}
	return nil
}
