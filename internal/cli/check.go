package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/modunpack/internal/archive"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify the external unpacking tools",
	Long: `Check that the tools needed for archive formats without native support
(currently .rar) can be found on PATH.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := newEngine(cmd)
		if err != nil {
			return err
		}

		statuses := eng.CheckTools()
		missing := 0
		for _, s := range statuses {
			if !s.OK() {
				missing++
			}
		}

		out := cmd.OutOrStdout()
		if jsonOutput {
			if err := outputJSON(out, statuses); err != nil {
				return err
			}
		} else {
			PrintSection(out, "Tools")
			for _, s := range statuses {
				if s.OK() {
					PrintSuccess(out, fmt.Sprintf("%s: %s", s.Name, s.Path))
					continue
				}
				PrintWarning(out, fmt.Sprintf("%s: %s", s.Name, s.Error))
			}
		}

		if missing > 0 {
			return fmt.Errorf("%w: %s", archive.ErrToolNotFound, PrintCount(missing, "tool missing", "tools missing"))
		}
		return nil
	},
}
