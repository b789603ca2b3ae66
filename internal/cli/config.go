package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/ppiankov/stemsolver/internal/result"
	"github.com/ppiankov/stemsolver/internal/util"
)

var configFormat string

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	Long: `Print the configuration stemsolver would run with, after merging flags,
STEMSOLVER_* environment variables and the config file. The API key is masked.

Examples:
  stemsolver config
  stemsolver config --format yaml > ~/.stemsolver.yaml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s := loadSettings(viper.GetViper()).Redacted()
		return renderSettings(cmd.OutOrStdout(), s, configFormat)
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.Flags().StringVar(&configFormat, "format", "table", "Output format: table|yaml|json")
}

func renderSettings(w io.Writer, s Settings, format string) error {
	switch format {
	case "table":
		table := tablewriter.NewWriter(w)
		table.Header([]string{"Key", "Value"})
		for _, row := range [][]string{
			{"listen", s.Listen},
			{"metrics_listen", s.MetricsListen},
			{"llm_endpoint", s.LLMEndpoint},
			{"api_key", s.APIKey},
			{"model", s.Model},
			{"max_tokens", strconv.Itoa(s.MaxTokens)},
			{"temperature", strconv.FormatFloat(s.Temperature, 'g', -1, 64)},
			{"timeout_seconds", strconv.Itoa(s.TimeoutSeconds)},
			{"log_level", s.LogLevel},
			{"log_format", s.LogFormat},
		} {
			table.Append(row)
		}
		table.Render()
		return nil
	case "yaml":
		out, err := yaml.Marshal(s)
		if err != nil {
			return fmt.Errorf("yaml marshal: %w", err)
		}
		_, err = w.Write(out)
		return err
	case "json":
		out, err := result.PrettyJSON(s)
		if err != nil {
			return fmt.Errorf("json marshal: %w", err)
		}
		_, err = fmt.Fprintln(w, out)
		return err
	default:
		return util.InvalidInput(fmt.Errorf("--format must be 'table', 'yaml' or 'json', got %q", format))
	}
}
