package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ppiankov/stemsolver/internal/logging"
	"github.com/ppiankov/stemsolver/internal/metrics"
	"github.com/ppiankov/stemsolver/internal/solver"
)

// Plain-text bodies for rejected requests.
const (
	msgBadMethod       = "Send POST with JSON containing 'question'."
	msgInvalidJSON     = "Invalid JSON body."
	msgMissingQuestion = "Missing 'question' field."
	msgSolverError     = "Solver error: "
)

// maxBodyBytes caps how much of a request body is read.
const maxBodyBytes = 1 << 20

// Solver answers a single question.
type Solver interface {
	Solve(ctx context.Context, question string) (solver.Answer, error)
}

// Handler serves the question endpoint on any path.
type Handler struct {
	solver  Solver
	log     logrus.FieldLogger
	metrics *metrics.Metrics
}

// NewHandler returns a Handler. log and m may be nil.
func NewHandler(s Solver, log logrus.FieldLogger, m *metrics.Metrics) *Handler {
	if log == nil {
		log = logging.Discard()
	}
	return &Handler{solver: s, log: log, metrics: m}
}

// inputError is a client mistake answered with 400 and a fixed message.
type inputError struct {
	outcome string
	message string
}

func (e *inputError) Error() string { return e.message }

var (
	errInvalidJSON     = &inputError{outcome: metrics.OutcomeBadJSON, message: msgInvalidJSON}
	errMissingQuestion = &inputError{outcome: metrics.OutcomeMissingQuestion, message: msgMissingQuestion}
)

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	setCORSHeaders(w.Header())

	switch r.Method {
	case http.MethodOptions:
		h.metrics.ObserveRequest(metrics.OutcomePreflight)
		w.WriteHeader(http.StatusNoContent)
		return
	case http.MethodPost:
	default:
		h.reject(w, r, &inputError{outcome: metrics.OutcomeBadMethod, message: msgBadMethod})
		return
	}

	question, err := readQuestion(r)
	if err != nil {
		var ie *inputError
		if !errors.As(err, &ie) {
			ie = errInvalidJSON
		}
		h.reject(w, r, ie)
		return
	}

	start := time.Now()
	answer, err := h.solver.Solve(r.Context(), question)
	h.metrics.ObserveSolve(time.Since(start))
	if err != nil {
		h.metrics.ObserveRequest(metrics.OutcomeSolverError)
		h.log.WithError(err).WithField("remote", r.RemoteAddr).Error("solver failed")
		writeText(w, http.StatusInternalServerError, msgSolverError+err.Error())
		return
	}

	h.metrics.ObserveAnswer(answer.Shape.String())
	h.metrics.ObserveRequest(metrics.OutcomeSolved)
	if !answer.Recognized() {
		h.log.WithField("remote", r.RemoteAddr).Warn("unexpected inference result format, echoing raw result")
	}
	writeText(w, http.StatusOK, answer.Text)
}

func (h *Handler) reject(w http.ResponseWriter, r *http.Request, e *inputError) {
	h.metrics.ObserveRequest(e.outcome)
	h.log.WithFields(logrus.Fields{
		"remote": r.RemoteAddr,
		"method": r.Method,
	}).Debugf("rejected request: %s", e.message)
	writeText(w, http.StatusBadRequest, e.message)
}

// readQuestion parses the body and returns a non-empty question string.
// Bodies that are valid JSON but not objects count as missing the question.
func readQuestion(r *http.Request) (string, error) {
	data, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes+1))
	if err != nil || len(data) > maxBodyBytes {
		return "", errInvalidJSON
	}

	var body any
	if err := json.Unmarshal(data, &body); err != nil {
		return "", errInvalidJSON
	}

	obj, ok := body.(map[string]any)
	if !ok {
		return "", errMissingQuestion
	}
	question, ok := obj["question"].(string)
	if !ok || question == "" {
		return "", errMissingQuestion
	}
	return question, nil
}

func setCORSHeaders(h http.Header) {
	h.Set("Access-Control-Allow-Origin", "*")
	h.Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	h.Set("Access-Control-Allow-Headers", "Content-Type")
}

func writeText(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}
