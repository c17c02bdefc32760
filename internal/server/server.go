// Package server exposes the calculation engine as a JSON HTTP API.
package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/iwvelando/calc-engine/internal/config"
	"github.com/iwvelando/calc-engine/internal/engine"
	"github.com/iwvelando/calc-engine/pkg/calcerr"
	"github.com/iwvelando/calc-engine/pkg/constants"
	"github.com/iwvelando/calc-engine/pkg/output"
	"github.com/iwvelando/calc-engine/pkg/validation"
	"go.uber.org/zap"
)

// RequestIDHeader carries the request ID in both directions.
const RequestIDHeader = "X-Request-ID"

const calculatePrefix = "/api/calculate/"

// unknownTypeLabel is the metric label for calculation types the engine does not support.
const unknownTypeLabel = "unknown"

type handler struct {
	logger         *zap.Logger
	engine         *engine.Engine
	metrics        *metrics
	maxRequestSize int64
	version        string
}

// NewHandler constructs the HTTP handler that serves the calculation API.
func NewHandler(logger *zap.Logger, eng *engine.Engine, maxRequestSize int64, version string) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if eng == nil {
		eng = engine.New(logger, engine.DefaultOptions())
	}

	if maxRequestSize <= 0 {
		maxRequestSize = constants.DefaultMaxRequestSizeBytes
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{
		logger:         logger,
		engine:         eng,
		metrics:        newMetrics(),
		maxRequestSize: maxRequestSize,
		version:        trimmedVersion,
	}

	mux := http.NewServeMux()

	// Single calculation, type taken from the path
	mux.Handle(calculatePrefix, h.instrument("calculate", h.handleCalculate))

	// Batch of calculations in the configuration file format
	mux.Handle("/api/batch", h.instrument("batch", h.handleBatch))

	// Calculation catalogue
	mux.Handle("/api/calculators", h.instrument("calculators", h.handleCalculators))

	// Version endpoint
	mux.Handle("/api/version", h.instrument("version", h.handleVersion))

	mux.Handle("/metrics", h.metrics.handler())

	return mux
}

// statusRecorder captures the response status for logging and metrics.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

type handlerFunc func(w http.ResponseWriter, r *http.Request, requestID string)

// instrument assigns a request ID, then logs and measures the request.
func (h *handler) instrument(route string, next handlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := strings.TrimSpace(r.Header.Get(RequestIDHeader))
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, requestID)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next(rec, r, requestID)

		elapsed := time.Since(start)
		h.metrics.observeRequest(route, rec.status, elapsed)
		h.logger.Info("request handled",
			zap.String("op", "server."+route),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.String("request_id", requestID),
			zap.Duration("duration", elapsed),
		)
	})
}

type errorResponse struct {
	Error     string   `json:"error"`
	Kind      string   `json:"kind,omitempty"`
	Fields    []string `json:"fields,omitempty"`
	RequestID string   `json:"requestId"`
}

type calculateResponse struct {
	engine.Result
	RequestID string `json:"requestId"`
	Duration  string `json:"duration"`
}

func (h *handler) handleCalculate(w http.ResponseWriter, r *http.Request, requestID string) {
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	start := time.Now()
	calcType := strings.Trim(strings.TrimPrefix(r.URL.Path, calculatePrefix), "/")
	if !h.engine.Supports(calcType) {
		h.respondError(w, http.StatusNotFound, fmt.Sprintf("unknown calculation type %q", calcType), requestID, "server.handleCalculate")
		return
	}

	format := strings.TrimSpace(r.URL.Query().Get("format"))
	if format == "" {
		format = constants.OutputFormatJSON
	}
	if err := validation.ValidateOutputFormat(format); err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error(), requestID, "server.handleCalculate")
		return
	}

	body, ok := h.readBody(w, r, requestID, "server.handleCalculate")
	if !ok {
		return
	}

	inputs := make(map[string]interface{})
	if len(bytes.TrimSpace(body)) > 0 {
		if err := json.Unmarshal(body, &inputs); err != nil {
			h.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to decode inputs: %v", err), requestID, "server.handleCalculate")
			return
		}
	}

	name := r.URL.Query().Get("name")
	result, err := h.engine.Calculate(name, calcType, inputs)
	h.metrics.observeCalculation(h.typeLabel(calcType), string(calcerr.KindOf(err)))
	if err != nil {
		h.respondCalcError(w, err, requestID, "server.handleCalculate")
		return
	}

	if format != constants.OutputFormatJSON {
		h.writeText(w, format, []engine.Result{result})
		return
	}

	h.writeJSON(w, http.StatusOK, calculateResponse{
		Result:    result,
		RequestID: requestID,
		Duration:  time.Since(start).String(),
	})
}

type batchFailure struct {
	Name   string   `json:"name"`
	Type   string   `json:"type"`
	Error  string   `json:"error"`
	Kind   string   `json:"kind,omitempty"`
	Fields []string `json:"fields,omitempty"`
}

type batchResponse struct {
	Results   []engine.Result `json:"results"`
	Failures  []batchFailure  `json:"failures,omitempty"`
	Warnings  []string        `json:"warnings,omitempty"`
	CSV       string          `json:"csv"`
	RequestID string          `json:"requestId"`
	Duration  string          `json:"duration"`
}

func (h *handler) handleBatch(w http.ResponseWriter, r *http.Request, requestID string) {
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	start := time.Now()
	body, ok := h.readBody(w, r, requestID, "server.handleBatch")
	if !ok {
		return
	}

	cfg, err := config.LoadConfigurationFromReader(bytes.NewReader(body))
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error(), requestID, "server.handleBatch")
		return
	}
	warnings := cfg.ValidateConfiguration(h.engine.Supports)

	requests := make([]engine.Request, 0, len(cfg.Calculations))
	for _, calc := range cfg.Calculations {
		requests = append(requests, engine.Request{Name: calc.Name, Type: calc.Type, Inputs: calc.Inputs})
	}
	results, failures := h.engine.RunAll(requests)

	response := batchResponse{
		Results:   results,
		Warnings:  warnings,
		CSV:       output.CsvString(results, output.Options{ShowSchedule: cfg.Output.ShowSchedule}),
		RequestID: requestID,
	}
	for _, result := range results {
		h.metrics.observeCalculation(h.typeLabel(result.Type), "")
	}
	for _, failure := range failures {
		kind := string(calcerr.KindOf(failure.Err))
		h.metrics.observeCalculation(h.typeLabel(failure.Type), kind)
		response.Failures = append(response.Failures, batchFailure{
			Name:   failure.Name,
			Type:   failure.Type,
			Error:  failure.Err.Error(),
			Kind:   kind,
			Fields: calcerr.FieldsOf(failure.Err),
		})
	}
	response.Duration = time.Since(start).String()

	h.logger.Info("batch computed",
		zap.String("op", "server.handleBatch"),
		zap.Int("results", len(results)),
		zap.Int("failures", len(failures)),
		zap.String("request_id", requestID),
	)
	h.writeJSON(w, http.StatusOK, response)
}

func (h *handler) handleCalculators(w http.ResponseWriter, r *http.Request, _ string) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}
	h.writeJSON(w, http.StatusOK, h.engine.Types())
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request, _ string) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

// readBody reads the capped request body, answering 413 or 400 itself on failure.
func (h *handler) readBody(w http.ResponseWriter, r *http.Request, requestID, op string) ([]byte, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxRequestSize)
	body, err := io.ReadAll(r.Body)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondError(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("request exceeds limit of %d bytes", h.maxRequestSize), requestID, op)
			return nil, false
		}
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to read request: %v", err), requestID, op)
		return nil, false
	}
	return body, true
}

// statusForKind maps a calculation failure to an HTTP status. Bad inputs are
// the client's fault; well-formed inputs without a defined answer are
// unprocessable.
func statusForKind(kind calcerr.Kind) int {
	switch kind {
	case calcerr.InvalidInput:
		return http.StatusBadRequest
	case calcerr.DivisionByZero, calcerr.UndefinedResult:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func (h *handler) respondCalcError(w http.ResponseWriter, err error, requestID, op string) {
	var calcErr *calcerr.Error
	if !errors.As(err, &calcErr) {
		h.respondError(w, http.StatusInternalServerError, err.Error(), requestID, op)
		return
	}

	status := statusForKind(calcErr.Kind)
	h.logger.Warn("calculation rejected",
		zap.String("op", op),
		zap.Int("status", status),
		zap.String("kind", string(calcErr.Kind)),
		zap.Strings("fields", calcErr.Fields),
		zap.String("request_id", requestID),
	)
	h.writeJSON(w, status, errorResponse{
		Error:     calcErr.Error(),
		Kind:      string(calcErr.Kind),
		Fields:    calcErr.Fields,
		RequestID: requestID,
	})
}

func (h *handler) respondError(w http.ResponseWriter, status int, msg, requestID, op string) {
	h.logger.Error("request failed",
		zap.String("op", op),
		zap.Int("status", status),
		zap.String("error", msg),
		zap.String("request_id", requestID),
	)

	h.writeJSON(w, status, errorResponse{Error: msg, RequestID: requestID})
}

func (h *handler) writeText(w http.ResponseWriter, format string, results []engine.Result) {
	var buf bytes.Buffer
	if err := output.Write(&buf, format, results, output.Options{ShowSchedule: true}); err != nil {
		h.logger.Error("failed to render results", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	contentType := "text/plain; charset=utf-8"
	if format == constants.OutputFormatCSV {
		contentType = "text/csv; charset=utf-8"
	}
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

// typeLabel bounds the calculation type metric label to registered types.
func (h *handler) typeLabel(calcType string) string {
	if !h.engine.Supports(calcType) {
		return unknownTypeLabel
	}
	return strings.ToLower(strings.TrimSpace(calcType))
}

// writeJSON encodes payload before writing the status so an encoding failure
// can still be reported as a 500.
func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	body, err := json.Marshal(payload)
	if err != nil {
		h.respondError(w, http.StatusInternalServerError,
			fmt.Sprintf("failed to encode response: %v", err), w.Header().Get(RequestIDHeader), "server.writeJSON")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(append(body, '\n')); err != nil {
		h.logger.Error("failed to write JSON response",
			zap.String("op", "server.writeJSON"),
			zap.Error(err),
		)
	}
}
