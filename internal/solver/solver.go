// Package solver turns a question into a STEM solver prompt, runs it against
// the inference service and interprets the result.
package solver

import (
	"context"
	"errors"

	"github.com/ppiankov/stemsolver/internal/llm"
	"github.com/ppiankov/stemsolver/internal/prompt"
)

// Generation defaults.
const (
	DefaultModel       = "@cf/meta/llama-3.1-70b-instruct"
	DefaultMaxTokens   = 1500
	DefaultTemperature = 0.1
)

// Config selects the model and its sampling parameters.
type Config struct {
	Model       string
	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns the generation settings the solver prompt is tuned for.
func DefaultConfig() Config {
	return Config{
		Model:       DefaultModel,
		MaxTokens:   DefaultMaxTokens,
		Temperature: DefaultTemperature,
	}
}

// SolverError reports a failed inference call. Its message is the
// underlying error message, unchanged.
type SolverError struct {
	Err error
}

func (e *SolverError) Error() string { return e.Err.Error() }

func (e *SolverError) Unwrap() error { return e.Err }

// Solver is stateless apart from its configuration and is safe for concurrent use.
type Solver struct {
	runner llm.Runner
	cfg    Config
}

// New returns a Solver. An empty Model or non-positive MaxTokens take their
// defaults; Temperature is used as given.
func New(runner llm.Runner, cfg Config) *Solver {
	def := DefaultConfig()
	if cfg.Model == "" {
		cfg.Model = def.Model
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = def.MaxTokens
	}
	return &Solver{runner: runner, cfg: cfg}
}

// Config returns the effective configuration.
func (s *Solver) Config() Config { return s.cfg }

// Solve runs one inference round trip for question. An unrecognized result
// shape is not an error: the returned Answer carries the raw result instead.
func (s *Solver) Solve(ctx context.Context, question string) (Answer, error) {
	if s.runner == nil {
		return Answer{}, &SolverError{Err: errors.New("no inference client configured")}
	}

	in := llm.UserPrompt(prompt.LoadSolverPrompt(question), s.cfg.MaxTokens, s.cfg.Temperature)

	raw, err := s.runner.Run(ctx, s.cfg.Model, in)
	if err != nil {
		return Answer{}, &SolverError{Err: err}
	}

	return Interpret(raw), nil
}
