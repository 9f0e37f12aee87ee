package cmd

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/rokuro32/staticamaster/internal/report"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show competency progress for a learner",
	RunE: func(cmd *cobra.Command, args []string) error {
		user, _ := cmd.Flags().GetString("user")
		asJSON, _ := cmd.Flags().GetBool("json")

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		progress, err := st.Progress(cmd.Context(), user)
		if err != nil {
			return err
		}
		if asJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(progress)
		}
		return report.Progress(cmd.OutOrStdout(), user, progress)
	},
}

func init() {
	statsCmd.Flags().String("user", "local", "Learner id")
	statsCmd.Flags().Bool("json", false, "Print progress as JSON")
}
