package cli

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/ppiankov/stemsolver/internal/llm"
	"github.com/ppiankov/stemsolver/internal/logging"
	"github.com/ppiankov/stemsolver/internal/solver"
	"github.com/ppiankov/stemsolver/internal/util"
)

// Settings is the effective configuration after flags, env and file are merged.
type Settings struct {
	Listen         string  `json:"listen" yaml:"listen"`
	MetricsListen  string  `json:"metrics_listen" yaml:"metrics_listen"`
	LLMEndpoint    string  `json:"llm_endpoint" yaml:"llm_endpoint"`
	APIKey         string  `json:"api_key" yaml:"api_key"`
	Model          string  `json:"model" yaml:"model"`
	MaxTokens      int     `json:"max_tokens" yaml:"max_tokens"`
	Temperature    float64 `json:"temperature" yaml:"temperature"`
	TimeoutSeconds int     `json:"timeout_seconds" yaml:"timeout_seconds"`
	LogLevel       string  `json:"log_level" yaml:"log_level"`
	LogFormat      string  `json:"log_format" yaml:"log_format"`
}

func loadSettings(v *viper.Viper) Settings {
	s := Settings{
		Listen:         v.GetString("listen"),
		MetricsListen:  v.GetString("metrics_listen"),
		LLMEndpoint:    v.GetString("llm_endpoint"),
		APIKey:         v.GetString("api_key"),
		Model:          v.GetString("model"),
		MaxTokens:      v.GetInt("max_tokens"),
		Temperature:    v.GetFloat64("temperature"),
		TimeoutSeconds: v.GetInt("timeout_seconds"),
		LogLevel:       v.GetString("log_level"),
		LogFormat:      v.GetString("log_format"),
	}
	if v.GetBool("verbose") {
		s.LogLevel = "debug"
	}
	return s
}

// Validate checks the settings needed to reach the inference service.
func (s Settings) Validate() error {
	if s.LLMEndpoint == "" {
		return util.InvalidInput(errors.New("--llm-endpoint is required (or STEMSOLVER_LLM_ENDPOINT)"))
	}
	if s.MaxTokens <= 0 {
		return util.InvalidInput(fmt.Errorf("--max-tokens must be positive, got %d", s.MaxTokens))
	}
	if s.Temperature < 0 || s.Temperature > 5 {
		return util.InvalidInput(fmt.Errorf("--temperature must be between 0 and 5, got %g", s.Temperature))
	}
	if s.TimeoutSeconds <= 0 {
		return util.InvalidInput(fmt.Errorf("--timeout-seconds must be positive, got %d", s.TimeoutSeconds))
	}
	return nil
}

// Timeout is the per-call inference timeout.
func (s Settings) Timeout() time.Duration {
	return time.Duration(s.TimeoutSeconds) * time.Second
}

// Redacted returns a copy safe to print.
func (s Settings) Redacted() Settings {
	s.APIKey = util.Redact(s.APIKey)
	return s
}

func (s Settings) client() llm.Client {
	return llm.Client{
		Endpoint: s.LLMEndpoint,
		APIKey:   s.APIKey,
		Timeout:  s.Timeout(),
	}
}

func (s Settings) solverConfig() solver.Config {
	return solver.Config{
		Model:       s.Model,
		MaxTokens:   s.MaxTokens,
		Temperature: s.Temperature,
	}
}

func (s Settings) logger(out io.Writer) (*logrus.Logger, error) {
	log, err := logging.New(out, s.LogLevel, s.LogFormat)
	if err != nil {
		return nil, util.InvalidInput(err)
	}
	return log, nil
}
