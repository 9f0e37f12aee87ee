package cmd

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/rokuro32/staticamaster/internal/question"
	"github.com/rokuro32/staticamaster/internal/report"
)

var instantiateCmd = &cobra.Command{
	Use:   "instantiate",
	Short: "Instantiate one question template with a seed",
	Long: `Resolve a template's parameters and answer for a seed.

Without --seed the daily seed is used: everyone gets the same variant on a
given day.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		id, _ := cmd.Flags().GetString("id")
		asText, _ := cmd.Flags().GetBool("text")

		b, err := loadBank()
		if err != nil {
			return err
		}
		t, err := b.Get(id)
		if err != nil {
			return err
		}

		inst := instantiate(cmd, t)
		if asText {
			return report.Question(cmd.OutOrStdout(), inst)
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(inst)
	},
}

// instantiate resolves t with --seed, or the daily seed when it is unset.
func instantiate(cmd *cobra.Command, t *question.Template) *question.Instance {
	in := question.NewInstantiator(question.WithLogger(logger))
	if seed, ok := seedFlag(cmd); ok {
		return in.Instantiate(t, seed)
	}
	return in.Daily(t)
}

func init() {
	instantiateCmd.Flags().String("id", "", "Question id (required)")
	instantiateCmd.Flags().Int64("seed", 0, "Instantiation seed (default: daily seed)")
	instantiateCmd.Flags().Bool("text", false, "Render for the terminal instead of JSON")
	_ = instantiateCmd.MarkFlagRequired("id")
}
