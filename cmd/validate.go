package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/rokuro32/staticamaster/internal/question"
	"github.com/rokuro32/staticamaster/internal/report"
	"github.com/rokuro32/staticamaster/internal/validation"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Score an answer against an instantiated question",
	Long: `Score a JSON answer against the question instantiated with the same
id and seed the learner saw.

The answer file holds a user answer object, for example:
  {"numericValue": 250, "unit": "N·m"}
  {"selectedOption": "b"}
  {"selectedEquations": ["sum-fx", "sum-fy", "sum-m"]}`,
	RunE: func(cmd *cobra.Command, args []string) error {
		id, _ := cmd.Flags().GetString("id")
		answerPath, _ := cmd.Flags().GetString("answer")
		user, _ := cmd.Flags().GetString("user")
		record, _ := cmd.Flags().GetBool("record")
		asJSON, _ := cmd.Flags().GetBool("json")

		b, err := loadBank()
		if err != nil {
			return err
		}
		t, err := b.Get(id)
		if err != nil {
			return err
		}
		inst := instantiate(cmd, t)

		answer, err := readAnswer(cmd, answerPath)
		if err != nil {
			return err
		}
		if answer.QuestionID == "" {
			answer.QuestionID = inst.ID
		}

		engine := validation.New(appConfig.Tolerance, validation.WithLogger(logger))
		result := engine.Validate(inst, answer)

		if record {
			if err := recordResult(cmd, user, inst, answer, result); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", err)
			}
		}

		if asJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(result)
		}
		return report.Result(cmd.OutOrStdout(), result)
	},
}

// readAnswer decodes the user answer from path, or stdin when path is "-".
func readAnswer(cmd *cobra.Command, path string) (*validation.UserAnswer, error) {
	var r io.Reader
	if path == "-" {
		r = cmd.InOrStdin()
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open answer: %w", err)
		}
		defer f.Close()
		r = f
	}
	var answer validation.UserAnswer
	if err := json.NewDecoder(r).Decode(&answer); err != nil {
		return nil, fmt.Errorf("decode answer: %w", err)
	}
	return &answer, nil
}

// recordResult persists a validated attempt.
func recordResult(cmd *cobra.Command, user string, inst *question.Instance, answer *validation.UserAnswer, result *validation.Result) error {
	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	if _, err := st.RecordValidation(cmd.Context(), user, inst, answer, result); err != nil {
		return fmt.Errorf("record attempt: %w", err)
	}
	return nil
}

func init() {
	validateCmd.Flags().String("id", "", "Question id (required)")
	validateCmd.Flags().Int64("seed", 0, "Seed the question was instantiated with (default: daily seed)")
	validateCmd.Flags().String("answer", "-", "Answer JSON file, or - for stdin")
	validateCmd.Flags().String("user", "local", "Learner id used when recording")
	validateCmd.Flags().Bool("record", false, "Record the attempt and update competency progress")
	validateCmd.Flags().Bool("json", false, "Print the result as JSON")
	_ = validateCmd.MarkFlagRequired("id")
}
