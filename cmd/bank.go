package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rokuro32/staticamaster/internal/question"
)

var bankCmd = &cobra.Command{
	Use:   "bank",
	Short: "Browse the question bank",
}

var bankListCmd = &cobra.Command{
	Use:   "list",
	Short: "List question templates (optionally filtered by module or course)",
	RunE: func(cmd *cobra.Command, args []string) error {
		module, _ := cmd.Flags().GetString("module")
		course, _ := cmd.Flags().GetString("course")

		b, err := loadBank()
		if err != nil {
			return err
		}

		var templates []*question.Template
		switch {
		case module != "":
			templates = b.Select(module, course)
		case course != "":
			templates = b.ByCourse(course)
		default:
			templates = b.All()
		}
		if len(templates) == 0 {
			return fmt.Errorf("no questions found for module %q course %q", module, course)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%-16s  %-12s  %-12s  %-18s  %-12s  %s\n",
			"ID", "Module", "Course", "Type", "Difficulty", "Competencies")
		fmt.Fprintln(out, strings.Repeat("─", 100))
		for _, t := range templates {
			fmt.Fprintf(out, "%-16s  %-12s  %-12s  %-18s  %-12s  %s\n",
				t.ID, t.ModuleID, t.CourseID, t.Type, t.Difficulty,
				strings.Join(t.Competencies, ", "))
		}
		fmt.Fprintf(out, "\n%d questions\n", len(templates))
		return nil
	},
}

func init() {
	bankListCmd.Flags().String("module", "", "Filter by module (e.g. statics)")
	bankListCmd.Flags().String("course", "", "Filter by course")

	bankCmd.AddCommand(bankListCmd)
}
