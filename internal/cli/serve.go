package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ppiankov/stemsolver/internal/metrics"
	"github.com/ppiankov/stemsolver/internal/server"
	"github.com/ppiankov/stemsolver/internal/solver"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the question endpoint",
	Long: `Serve the solver over HTTP.

Any path accepts:
  OPTIONS  CORS preflight (204)
  POST     {"question": "..."}; answers with the model's text

Examples:
  # Serve on the default address
  stemsolver serve --llm-endpoint https://api.cloudflare.com/client/v4/accounts/$ACCOUNT_ID/ai

  # Expose Prometheus metrics on a separate port
  stemsolver serve --listen :8080 --metrics-listen :9090

  # Ask it something
  curl -s -X POST localhost:8080 -H 'Content-Type: application/json' \
    -d '{"question": "A 2 kg mass accelerates at 3 m/s^2. Find the net force."}'`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(loadSettings(viper.GetViper()))
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("listen", "0.0.0.0:8080", "Address for the solver endpoint")
	serveCmd.Flags().String("metrics-listen", "", "Address for the Prometheus /metrics listener (disabled when empty)")
	_ = viper.BindPFlag("listen", serveCmd.Flags().Lookup("listen"))
	_ = viper.BindPFlag("metrics_listen", serveCmd.Flags().Lookup("metrics-listen"))
}

func runServe(s Settings) error {
	if err := s.Validate(); err != nil {
		return err
	}

	log, err := s.logger(os.Stderr)
	if err != nil {
		return err
	}

	m := metrics.New()
	slv := solver.New(s.client(), s.solverConfig())
	handler := server.NewHandler(slv, log, m)

	cfg := slv.Config()
	log.WithField("model", cfg.Model).
		WithField("max_tokens", cfg.MaxTokens).
		WithField("temperature", cfg.Temperature).
		Debug("solver configured")

	srv := server.New(server.Config{
		Listen:        s.Listen,
		MetricsListen: s.MetricsListen,
	}, handler, m, log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return srv.Run(ctx)
}
