package cli

import (
	"github.com/spf13/cobra"

	"github.com/danieljhkim/modunpack/internal/engine"
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "List the archives a run would extract",
	Long:  `List the recognized archives of the input folder in extraction order.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := newEngine(cmd)
		if err != nil {
			return err
		}

		result, err := eng.Scan(&engine.ScanRequest{})
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if jsonOutput {
			return outputJSON(out, result)
		}

		PrintSection(out, "Archives in "+result.Input)
		if len(result.Archives) == 0 {
			PrintEmptyState(out, "No archives found")
			return nil
		}

		rows := make([][]string, 0, len(result.Archives))
		for _, a := range result.Archives {
			rows = append(rows, []string{a.Name, string(a.Format)})
		}
		PrintTable(out, []string{"Archive", "Format"}, rows)
		return nil
	},
}

func init() {
	scanCmd.Flags().String("input", "", "Folder holding the downloaded archives")
}
