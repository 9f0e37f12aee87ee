package cmd

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/rokuro32/staticamaster/internal/quiz"
	"github.com/rokuro32/staticamaster/internal/report"
)

var quizCmd = &cobra.Command{
	Use:   "quiz",
	Short: "Generate a quiz for a module",
	RunE: func(cmd *cobra.Command, args []string) error {
		module, _ := cmd.Flags().GetString("module")
		course, _ := cmd.Flags().GetString("course")
		count, _ := cmd.Flags().GetInt("count")
		asJSON, _ := cmd.Flags().GetBool("json")

		b, err := loadBank()
		if err != nil {
			return err
		}

		req := quiz.Request{ModuleID: module, CourseID: course, Count: count}
		if seed, ok := seedFlag(cmd); ok {
			req.Seed = &seed
		}
		q, err := quiz.Generate(b, req, quiz.WithLogger(logger))
		if err != nil {
			return err
		}

		if asJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(q)
		}
		return report.Quiz(cmd.OutOrStdout(), q)
	},
}

func init() {
	quizCmd.Flags().String("module", "", "Module id (required)")
	quizCmd.Flags().String("course", "", "Restrict to a course")
	quizCmd.Flags().Int("count", quiz.DefaultCount, "Number of questions")
	quizCmd.Flags().Int64("seed", 0, "Quiz seed (default: daily seed of the module)")
	quizCmd.Flags().Bool("json", false, "Print JSON instead of the terminal rendering")
	_ = quizCmd.MarkFlagRequired("module")
}
