package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ppiankov/stemsolver/internal/export"
	"github.com/ppiankov/stemsolver/internal/llm"
	"github.com/ppiankov/stemsolver/internal/result"
	"github.com/ppiankov/stemsolver/internal/solver"
	"github.com/ppiankov/stemsolver/internal/util"
)

// solveOptions holds solve-only flags.
type solveOptions struct {
	Plain  bool
	Output string
}

var solveOpts solveOptions

var solveCmd = &cobra.Command{
	Use:   "solve [question]",
	Short: "Answer one question from the terminal",
	Long: `Send one question through the solver prompt and print the answer.

The question is taken from the arguments, or from stdin when none are given.

Examples:
  stemsolver solve "Find the pH of 0.01 M HCl"
  echo "Integrate x^2 from 0 to 3" | stemsolver solve --plain

  # Save the solution (format from extension: .json, .md, .txt)
  stemsolver solve "Molar mass of CaCO3?" --output solution.md`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s := loadSettings(viper.GetViper())
		if err := s.Validate(); err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		return runSolve(ctx, s, s.client(), solveOpts, args, cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr())
	},
}

func init() {
	rootCmd.AddCommand(solveCmd)
	solveCmd.Flags().BoolVar(&solveOpts.Plain, "plain", false, "Print the answer without styling")
	solveCmd.Flags().StringVar(&solveOpts.Output, "output", "", "Save the solution to a file (format auto-detected: .json, .md, .txt)")
}

func runSolve(ctx context.Context, s Settings, runner llm.Runner, opts solveOptions, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	question, err := readQuestionInput(args, stdin)
	if err != nil {
		return err
	}

	if verbose {
		fmt.Fprintf(stderr, "[stemsolver] Calling LLM endpoint: %s\n", s.LLMEndpoint)
	}

	slv := solver.New(runner, s.solverConfig())
	answer, err := slv.Solve(ctx, question)
	if err != nil {
		return fmt.Errorf("solver error: %w", err)
	}

	if opts.Output != "" {
		if err := exportToFile(question, answer, slv.Config().Model, opts.Output); err != nil {
			return err
		}
		fmt.Fprintf(stderr, "[stemsolver] Solution saved to: %s\n", opts.Output)
	}

	if !answer.Recognized() {
		fmt.Fprintln(stderr, "[stemsolver] Unrecognized response format, showing raw response")
		fmt.Fprintln(stdout, answer.Text)
		return nil
	}

	result.RenderAnswerHuman(stdout, answer.Text, opts.Plain)
	return nil
}

func readQuestionInput(args []string, stdin io.Reader) (string, error) {
	if len(args) > 0 {
		q := strings.Join(args, " ")
		if strings.TrimSpace(q) == "" {
			return "", util.InvalidInput(errors.New("question is empty"))
		}
		return q, nil
	}

	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	q := strings.TrimSpace(string(data))
	if q == "" {
		return "", util.InvalidInput(errors.New("a question is required (argument or stdin)"))
	}
	return q, nil
}

// exportToFile writes the solution to path in the format its extension implies.
func exportToFile(question string, answer solver.Answer, model, path string) error {
	exporter := export.Exporter{
		Format: export.DetectFormat(path),
		Metadata: export.ExportMetadata{
			GeneratedAt:       time.Now().UTC(),
			StemsolverVersion: version, // from root.go
			Model:             model,
			Shape:             answer.Shape.String(),
		},
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	if err := exporter.Export(export.Solution{Question: question, Answer: answer.Text}, file); err != nil {
		return fmt.Errorf("failed to export: %w", err)
	}
	return nil
}
