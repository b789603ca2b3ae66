package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ppiankov/stemsolver/internal/llm"
	"github.com/ppiankov/stemsolver/internal/solver"
)

const version = "0.1.0"

var (
	// Global flags
	cfgFile string
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "stemsolver",
	Short: "HTTP front end that solves STEM questions with a hosted LLM",
	Long: `stemsolver accepts a question, wraps it in a strict STEM solver prompt
and returns the model's structured answer as plain text.

Commands:
  - serve:  run the HTTP endpoint (POST {"question": "..."})
  - solve:  answer one question from the terminal
  - config: show the effective configuration

Configuration comes from flags, STEMSOLVER_* environment variables and
an optional YAML file ($HOME/.stemsolver.yaml).`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	// Disable default completion command
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
}

// Execute adds all child commands to the root command and sets flags appropriately
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()

	// Global flags
	pf.StringVar(&cfgFile, "config", "", "config file (default is $HOME/.stemsolver.yaml)")
	pf.BoolVarP(&verbose, "verbose", "v", false, "enable verbose output (debug logging)")

	// Inference
	pf.String("llm-endpoint", "", "Workers AI style endpoint (e.g., https://api.cloudflare.com/client/v4/accounts/<id>/ai)")
	pf.String("api-key", "", "Inference API token (falls back to CLOUDFLARE_API_TOKEN)")
	pf.String("model", solver.DefaultModel, "Text-generation model name")
	pf.Int("max-tokens", solver.DefaultMaxTokens, "Maximum output tokens")
	pf.Float64("temperature", solver.DefaultTemperature, "Sampling temperature")
	pf.Int("timeout-seconds", int(llm.DefaultTimeout.Seconds()), "Inference call timeout in seconds")

	// Logging
	pf.String("log-level", "info", "Log level: debug|info|warn|error")
	pf.String("log-format", "text", "Log format: text|json")

	// Bind flags to viper
	for key, flag := range map[string]string{
		"verbose":         "verbose",
		"llm_endpoint":    "llm-endpoint",
		"api_key":         "api-key",
		"model":           "model",
		"max_tokens":      "max-tokens",
		"temperature":     "temperature",
		"timeout_seconds": "timeout-seconds",
		"log_level":       "log-level",
		"log_format":      "log-format",
	} {
		_ = viper.BindPFlag(key, pf.Lookup(flag))
	}
}

// initConfig reads in config file and ENV variables if set
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			os.Exit(1)
		}

		// Search config in home directory with name ".stemsolver" (without extension)
		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".stemsolver")
	}

	viper.SetEnvPrefix("STEMSOLVER")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in
	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}
