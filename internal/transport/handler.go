// Package transport exposes the operator HTTP API of the settlement engine.
package transport

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/goodnatureofminers/emission-settlement-backend/internal/compliance/model"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"go.uber.org/zap"
)

const maxBodyBytes = 1 << 16

// Config holds the API knobs. An empty JWTSecret leaves /v1 routes unauthenticated.
type Config struct {
	JWTSecret      string
	AllowedOrigins []string
}

// Handler serves settlement operations and read-only views.
type Handler struct {
	settler   Settler
	directory Directory
	history   AuditHistory
	views     ChainViews
	cfg       Config
	logger    *zap.Logger
}

func NewHandler(settler Settler, directory Directory, history AuditHistory, views ChainViews, cfg Config, logger *zap.Logger) (*Handler, error) {
	switch {
	case settler == nil:
		return nil, errors.New("api settler is required")
	case directory == nil:
		return nil, errors.New("api directory is required")
	case history == nil:
		return nil, errors.New("api audit history is required")
	case views == nil:
		return nil, errors.New("api chain views are required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		settler:   settler,
		directory: directory,
		history:   history,
		views:     views,
		cfg:       cfg,
		logger:    logger.Named("api"),
	}, nil
}

// Router builds the routed, CORS-wrapped handler.
func (h *Handler) Router() http.Handler {
	r := mux.NewRouter()
	r.Use(h.logRequests)
	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) }).Methods(http.MethodGet)

	v1 := r.PathPrefix("/v1").Subrouter()
	if h.cfg.JWTSecret != "" {
		v1.Use(requireJWT([]byte(h.cfg.JWTSecret), h.logger))
	}
	v1.HandleFunc("/settlements", h.settle).Methods(http.MethodPost)
	v1.HandleFunc("/settlements/retry", h.retry).Methods(http.MethodPost)
	v1.HandleFunc("/attempts/{attemptId}", h.attemptHistory).Methods(http.MethodGet)
	v1.HandleFunc("/companies/{companyId}/chain", h.companyChain).Methods(http.MethodGet)

	origins := h.cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}).Handler(r)
}

func (h *Handler) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		started := time.Now()
		next.ServeHTTP(w, r)
		h.logger.Debug("request served",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Duration("duration", time.Since(started)),
		)
	})
}

func (h *Handler) settle(w http.ResponseWriter, r *http.Request) {
	h.runWindow(w, r, h.settler.Settle)
}

func (h *Handler) retry(w http.ResponseWriter, r *http.Request) {
	h.runWindow(w, r, h.settler.Retry)
}

func (h *Handler) runWindow(
	w http.ResponseWriter,
	r *http.Request,
	run func(ctx context.Context, window model.Window) (model.Attempt, error),
) {
	var req windowRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeError(w, h.logger, fmt.Errorf("%w: decode request: %v", model.ErrInvalidWindow, err))
		return
	}
	if strings.TrimSpace(req.CompanyID) == "" {
		writeError(w, h.logger, fmt.Errorf("%w: companyId is required", model.ErrInvalidWindow))
		return
	}

	company, err := h.directory.Company(r.Context(), req.CompanyID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	attempt, err := run(r.Context(), model.Window{
		CompanyID:   company.ID,
		PeriodStart: req.PeriodStart,
		PeriodEnd:   req.PeriodEnd,
		EmissionCap: company.EmissionCap,
	})

	resp := settlementResponse{}
	if attempt.ID != "" {
		resp.Attempt = toAttempt(attempt)
	}
	if err != nil {
		resp.Error = err.Error()
		if statusOf(err) >= http.StatusInternalServerError {
			h.logger.Warn("settlement request failed", zap.String("company_id", company.ID), zap.Error(err))
		}
	}
	writeJSON(w, h.logger, statusOf(err), resp)
}

func (h *Handler) attemptHistory(w http.ResponseWriter, r *http.Request) {
	attemptID := mux.Vars(r)["attemptId"]

	records, err := h.history.History(r.Context(), attemptID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	if len(records) == 0 {
		writeJSON(w, h.logger, http.StatusNotFound, errorResponse{Error: fmt.Sprintf("attempt %s not found", attemptID)})
		return
	}

	resp := historyResponse{AttemptID: attemptID, Records: make([]attemptResponse, 0, len(records))}
	for _, record := range records {
		resp.Records = append(resp.Records, *toAttempt(record.Attempt()))
	}
	writeJSON(w, h.logger, http.StatusOK, resp)
}

func (h *Handler) companyChain(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	company, err := h.directory.Company(ctx, mux.Vars(r)["companyId"])
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	address := company.Address
	if address == (common.Address{}) {
		writeJSON(w, h.logger, http.StatusUnprocessableEntity, errorResponse{Error: "company has no wallet address"})
		return
	}

	registered, err := h.views.IsRegisteredCompany(ctx, address)
	if err != nil {
		writeError(w, h.logger, fmt.Errorf("is registered company: %w", err))
		return
	}
	balance, err := h.views.BalanceOf(ctx, address)
	if err != nil {
		writeError(w, h.logger, fmt.Errorf("balance of: %w", err))
		return
	}
	minted, err := h.views.MintedPerCompany(ctx, address)
	if err != nil {
		writeError(w, h.logger, fmt.Errorf("minted per company: %w", err))
		return
	}
	remaining, err := h.views.GetRemainingCap(ctx, address)
	if err != nil {
		writeError(w, h.logger, fmt.Errorf("get remaining cap: %w", err))
		return
	}
	window, err := h.views.CanMintNow(ctx, address)
	if err != nil {
		writeError(w, h.logger, fmt.Errorf("can mint now: %w", err))
		return
	}

	writeJSON(w, h.logger, http.StatusOK,
		toChainView(company, registered, balance.String(), minted.String(), remaining.String(), window))
}
