// Package server exposes the mortgage calculation engine over HTTP as JSON.
package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/iwvelando/mortgage-calculator/internal/calculation"
	"github.com/iwvelando/mortgage-calculator/internal/config"
	"github.com/iwvelando/mortgage-calculator/pkg/constants"
	"github.com/iwvelando/mortgage-calculator/pkg/mortgage"
	"github.com/iwvelando/mortgage-calculator/pkg/output"
	"github.com/rs/cors"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// RequestIDHeader carries the per-request id in both directions.
const RequestIDHeader = "X-Request-ID"

type requestIDKey struct{}

type handler struct {
	logger         *zap.Logger
	maxRequestSize int64
	maxTermYears   int
	version        string
}

// Options tunes the handler returned by NewHandler. Zero values select the
// defaults from the constants package.
type Options struct {
	MaxRequestSize int64
	MaxTermYears   int
	AllowedOrigins []string
	Version        string
}

// NewHandler constructs the HTTP handler that serves the calculation API.
func NewHandler(logger *zap.Logger, opts Options) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	if opts.MaxRequestSize <= 0 {
		opts.MaxRequestSize = constants.DefaultMaxRequestSizeBytes
	}
	if opts.MaxTermYears <= 0 {
		opts.MaxTermYears = constants.DefaultMaxTermYears
	}
	if len(opts.AllowedOrigins) == 0 {
		opts.AllowedOrigins = []string{"*"}
	}

	trimmedVersion := strings.TrimSpace(opts.Version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{
		logger:         logger,
		maxRequestSize: opts.MaxRequestSize,
		maxTermYears:   opts.MaxTermYears,
		version:        trimmedVersion,
	}

	mux := http.NewServeMux()

	// Term sweep with optional comparison and breakdown
	mux.HandleFunc("/api/calculate", h.handleCalculate)

	// Same calculation driven by an uploaded YAML configuration
	mux.HandleFunc("/api/calculate/config", h.handleCalculateConfig)

	// Interest/principal split of one term
	mux.HandleFunc("/api/annuity_payments", h.handleAnnuityPayments)

	// Alternate scenario over a baseline's terms
	mux.HandleFunc("/api/compare", h.handleCompare)

	// Term sweep rendered as CSV
	mux.HandleFunc("/api/export", h.handleExport)

	// Calculation request serialized as a YAML configuration file
	mux.HandleFunc("/api/config/export", h.handleConfigExport)

	// Version endpoint for UI metadata
	mux.HandleFunc("/api/version", h.handleVersion)

	c := cors.New(cors.Options{
		AllowedOrigins: opts.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", RequestIDHeader},
		ExposedHeaders: []string{RequestIDHeader},
	})

	return c.Handler(h.withRequestID(mux))
}

// withRequestID reuses the caller's request id or assigns a new one.
func (h *handler) withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(r.Header.Get(RequestIDHeader))
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey{}, id)))
	})
}

func requestID(r *http.Request) string {
	id, _ := r.Context().Value(requestIDKey{}).(string)
	return id
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

func (h *handler) handleCalculate(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleCalculate"
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	start := time.Now()

	var payload calculateRequest
	if !h.decodeJSON(w, r, &payload, op) {
		return
	}

	req, err := payload.toRequest(h.maxTermYears)
	if err != nil {
		h.respondEngineError(w, r, err, op)
		return
	}

	h.runCalculation(w, r, req, start, op)
}

func (h *handler) handleCalculateConfig(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleCalculateConfig"
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	start := time.Now()
	r.Body = http.MaxBytesReader(w, r.Body, h.maxRequestSize)
	if err := r.ParseMultipartForm(h.maxRequestSize); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondErrorWithOp(w, r, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("upload exceeds limit of %d bytes", h.maxRequestSize), op)
			return
		}
		h.respondErrorWithOp(w, r, http.StatusBadRequest, fmt.Sprintf("failed to parse upload: %v", err), op)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		h.respondErrorWithOp(w, r, http.StatusBadRequest, "missing configuration file", op)
		return
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			h.logger.Warn("failed to close uploaded file",
				zap.String("op", op),
				zap.Error(closeErr),
			)
		}
	}()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, file); err != nil {
		h.respondErrorWithOp(w, r, http.StatusInternalServerError, fmt.Sprintf("failed to read configuration: %v", err), op)
		return
	}

	conf, err := config.LoadConfigurationFromReader(&buf)
	if err != nil {
		h.respondErrorWithOp(w, r, http.StatusBadRequest, err.Error(), op)
		return
	}

	req, err := conf.ToRequest()
	if err != nil {
		h.respondEngineError(w, r, err, op)
		return
	}
	if err := checkTermCap(req, h.maxTermYears); err != nil {
		h.respondEngineError(w, r, err, op)
		return
	}

	h.runCalculation(w, r, req, start, op)
}

func (h *handler) runCalculation(w http.ResponseWriter, r *http.Request, req calculation.Request, start time.Time, op string) {
	report, err := calculation.Run(h.requestLogger(r), req)
	if err != nil {
		h.respondEngineError(w, r, err, op)
		return
	}

	elapsed := time.Since(start)
	resp := newCalculateResponse(report)
	resp.RequestID = requestID(r)
	resp.Duration = elapsed.String()

	h.logger.Info("calculation served",
		zap.String("op", op),
		zap.String("request_id", resp.RequestID),
		zap.Int("records", len(resp.Records)),
		zap.Duration("duration", elapsed),
	)

	h.writeJSON(w, http.StatusOK, resp)
}

func (h *handler) handleAnnuityPayments(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleAnnuityPayments"
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	var payload annuityRequest
	if !h.decodeJSON(w, r, &payload, op) {
		return
	}

	granularity := mortgage.PerMonth
	if payload.Granularity != "" {
		parsed, err := mortgage.ParseGranularity(payload.Granularity)
		if err != nil {
			h.respondEngineError(w, r, err, op)
			return
		}
		granularity = parsed
	}

	var loan mortgage.ResolvedLoan
	years := payload.Years
	switch {
	case payload.Loan != nil && payload.Mode != "":
		h.respondErrorWithOp(w, r, http.StatusBadRequest, "provide either loan or scenario parameters, not both", op)
		return
	case payload.Loan != nil:
		loan = *payload.Loan
		if maxPeriods := h.maxTermYears * constants.MonthsPerYear; loan.Periods > maxPeriods {
			h.respondEngineError(w, r, termCapError("periods", loan.Periods, maxPeriods), op)
			return
		}
		years = loan.Periods / constants.MonthsPerYear
	default:
		params, err := payload.scenarioPayload.toParams()
		if err != nil {
			h.respondEngineError(w, r, err, op)
			return
		}
		if years > h.maxTermYears {
			h.respondEngineError(w, r, termCapError("years", years, h.maxTermYears), op)
			return
		}
		record, err := mortgage.Solve(params, years)
		if err != nil {
			h.respondEngineError(w, r, err, op)
			return
		}
		loan = mortgage.ResolveLoan(record)
	}

	periods, err := mortgage.Decompose(loan, granularity)
	if err != nil {
		h.respondEngineError(w, r, err, op)
		return
	}

	h.logger.Info("annuity payments served",
		zap.String("op", op),
		zap.String("request_id", requestID(r)),
		zap.String("granularity", string(granularity)),
		zap.Int("periods", len(periods)),
	)

	h.writeJSON(w, http.StatusOK, newBreakdownView(years, granularity, loan, periods))
}

func (h *handler) handleCompare(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleCompare"
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	var payload compareRequest
	if !h.decodeJSON(w, r, &payload, op) {
		return
	}
	if payload.Alternate == nil {
		h.respondErrorWithOp(w, r, http.StatusBadRequest, "missing alternate parameters", op)
		return
	}
	if payload.Baseline != nil && payload.Terms != nil {
		h.respondErrorWithOp(w, r, http.StatusBadRequest, "provide either baseline or terms, not both", op)
		return
	}
	if payload.Baseline == nil && payload.Terms == nil {
		h.respondErrorWithOp(w, r, http.StatusBadRequest, "missing baseline or terms", op)
		return
	}

	alt, err := payload.Alternate.toParams()
	if err != nil {
		h.respondEngineError(w, r, err, op)
		return
	}

	terms := payload.Terms
	if payload.Baseline != nil {
		terms = mortgage.TermsOf(payload.Baseline)
	}
	for _, years := range terms {
		if years > h.maxTermYears {
			h.respondEngineError(w, r, termCapError("years", years, h.maxTermYears), op)
			return
		}
	}

	records, err := mortgage.CompareTerms(terms, alt)
	if err != nil {
		h.respondEngineError(w, r, err, op)
		return
	}

	resp := compareResponse{
		RequestID: requestID(r),
		Params:    encodeParams(alt),
		Records:   recordViews(records),
	}
	if payload.Baseline != nil {
		resp.Comparison = comparisonViews(mortgage.Pair(payload.Baseline, records))
	}

	h.logger.Info("comparison served",
		zap.String("op", op),
		zap.String("request_id", resp.RequestID),
		zap.Int("records", len(records)),
	)

	h.writeJSON(w, http.StatusOK, resp)
}

func (h *handler) handleExport(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleExport"
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	var payload calculateRequest
	if !h.decodeJSON(w, r, &payload, op) {
		return
	}

	req, err := payload.toRequest(h.maxTermYears)
	if err != nil {
		h.respondEngineError(w, r, err, op)
		return
	}

	records, err := mortgage.Sweep(req.Params, req.Range)
	if err != nil {
		h.respondEngineError(w, r, err, op)
		return
	}

	csv, err := output.CsvString(records)
	if err != nil {
		h.respondErrorWithOp(w, r, http.StatusInternalServerError, fmt.Sprintf("failed to render CSV: %v", err), op)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="mortgage_calculation.csv"`)
	w.WriteHeader(http.StatusOK)
	if _, err := io.WriteString(w, csv); err != nil {
		h.logger.Error("failed to write CSV response",
			zap.String("op", op),
			zap.Error(err),
		)
	}
}

func (h *handler) handleConfigExport(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleConfigExport"
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	var payload calculateRequest
	if !h.decodeJSON(w, r, &payload, op) {
		return
	}

	// Reject payloads that would not load back.
	if _, err := payload.toRequest(h.maxTermYears); err != nil {
		h.respondEngineError(w, r, err, op)
		return
	}

	yamlBytes, err := yaml.Marshal(payload.toConfiguration())
	if err != nil {
		h.respondErrorWithOp(w, r, http.StatusInternalServerError, fmt.Sprintf("failed to encode configuration: %v", err), op)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{
		"configYaml": string(yamlBytes),
	})
}

// decodeJSON reads a size-limited JSON body into dst. It writes the error
// response itself and reports whether decoding succeeded.
func (h *handler) decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}, op string) bool {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxRequestSize)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondErrorWithOp(w, r, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("request exceeds limit of %d bytes", h.maxRequestSize), op)
			return false
		}
		h.respondErrorWithOp(w, r, http.StatusBadRequest, fmt.Sprintf("failed to decode request: %v", err), op)
		return false
	}
	return true
}

// statusFor maps engine error kinds to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, mortgage.ErrInvalidParameter), errors.Is(err, mortgage.ErrRange):
		return http.StatusBadRequest
	case errors.Is(err, mortgage.ErrNumericDomain):
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

type errorResponse struct {
	Error     string `json:"error"`
	Kind      string `json:"kind,omitempty"`
	Field     string `json:"field,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

func (h *handler) respondEngineError(w http.ResponseWriter, r *http.Request, err error, op string) {
	h.respond(w, r, statusFor(err), errorResponse{
		Error: err.Error(),
		Kind:  mortgage.KindName(err),
		Field: mortgage.FieldOf(err),
	}, op)
}

func (h *handler) respondErrorWithOp(w http.ResponseWriter, r *http.Request, status int, msg string, op string) {
	h.respond(w, r, status, errorResponse{Error: msg}, op)
}

func (h *handler) respond(w http.ResponseWriter, r *http.Request, status int, body errorResponse, op string) {
	body.RequestID = requestID(r)
	h.logger.Error("calculation request failed",
		zap.String("op", op),
		zap.String("request_id", body.RequestID),
		zap.Int("status", status),
		zap.String("kind", body.Kind),
		zap.String("field", body.Field),
		zap.String("error", body.Error),
	)

	h.writeJSON(w, status, body)
}

func (h *handler) requestLogger(r *http.Request) *zap.Logger {
	return h.logger.With(zap.String("request_id", requestID(r)))
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}
