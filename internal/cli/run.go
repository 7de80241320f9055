package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/modunpack/internal/engine"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Extract archives and reconcile the output folder",
	Long: `Extract every .zip and .rar archive of the input folder into the output
folder, then reshape the output into res_mods/<version> and mods/<version>.

A corrupt archive is reported and skipped; the remaining archives are still
extracted. Running again on the same output changes nothing.`,
	Args: cobra.NoArgs,
	RunE: runRun,
}

func init() {
	runCmd.Flags().String("input", "", "Folder holding the downloaded archives")
	runCmd.Flags().String("output", "", "Folder receiving the unpacked mods")
}

func runRun(cmd *cobra.Command, args []string) error {
	eng, err := newEngine(cmd)
	if err != nil {
		return err
	}

	result, err := eng.Run(cmd.Context(), &engine.RunRequest{})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		return outputJSON(out, result)
	}

	PrintSection(out, "Unpacking")
	PrintLabelValue(out, "Input", result.Input)
	PrintLabelValue(out, "Output", result.Output)
	PrintLabelValue(out, "Archives", PrintCount(len(result.Archives), "archive", "archives"))
	PrintLabelValue(out, "Extracted", fmt.Sprintf("%d of %d", result.Extracted, len(result.Archives)))
	for _, f := range result.Failures {
		PrintWarning(out, fmt.Sprintf("%s (%s): %s", f.Archive, f.Kind, f.Error))
	}

	PrintSection(out, "Reconciliation")
	if len(result.Actions) == 0 {
		PrintEmptyState(out, "Output folder already reconciled")
	} else {
		rows := make([][]string, 0, len(result.Actions))
		for _, a := range result.Actions {
			rows = append(rows, []string{a.Op, a.Path, a.Target})
		}
		PrintTable(out, []string{"Op", "Path", "Target"}, rows)
	}
	if result.Overwrites > 0 {
		PrintWarning(out, fmt.Sprintf("%s replaced with different content",
			PrintCount(result.Overwrites, "file was", "files were")))
	}

	fmt.Fprintln(out)
	if len(result.Failures) > 0 {
		PrintWarning(out, fmt.Sprintf("Done with %s", PrintCount(len(result.Failures), "failed archive", "failed archives")))
		return nil
	}
	PrintSuccess(out, fmt.Sprintf("Done in %s", result.Elapsed().Round(time.Millisecond)))
	return nil
}
