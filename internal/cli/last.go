package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/modunpack/internal/engine"
)

var lastCmd = &cobra.Command{
	Use:   "last",
	Short: "Show the summary of the most recent run",
	Long:  `Show what the most recent completed run extracted, which archives failed and how many merge conflicts it overwrote.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := newEngine(cmd)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		rec, err := eng.LastRun()
		if errors.Is(err, engine.ErrNoRunRecorded) {
			if jsonOutput {
				return outputJSON(out, nil)
			}
			PrintEmptyState(out, "No run recorded yet")
			return nil
		}
		if err != nil {
			return err
		}

		if jsonOutput {
			return outputJSON(out, rec)
		}

		PrintSection(out, "Last run")
		PrintLabelValue(out, "Started", rec.StartedAt.Local().Format(time.DateTime))
		PrintLabelValue(out, "Took", rec.FinishedAt.Sub(rec.StartedAt).Round(time.Millisecond).String())
		PrintLabelValue(out, "Input", rec.Input)
		PrintLabelValue(out, "Output", rec.Output)
		PrintLabelValue(out, "Extracted", fmt.Sprintf("%d of %d", rec.Extracted, rec.Archives))
		PrintLabelValue(out, "Actions", fmt.Sprintf("%d", rec.Actions))
		PrintLabelValue(out, "Overwrites", fmt.Sprintf("%d", rec.Overwrites))

		if len(rec.Failures) > 0 {
			items := make([]string, 0, len(rec.Failures))
			for _, f := range rec.Failures {
				items = append(items, fmt.Sprintf("%s (%s)", f.Archive, f.Kind))
			}
			fmt.Fprintln(out)
			PrintInfo(out, "Failed archives:")
			PrintList(out, items, 1)
		}
		return nil
	},
}
