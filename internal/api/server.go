// Package api exposes the registry's entry points over HTTP.
//
// The HTTP surface is a thin host-boundary adapter: caller identity
// arrives in the X-Souk-Account header (standing in for the host's
// identity-resolution capability) and the attached deposit arrives in
// the request body as integer base units (standing in for value
// custody). All validation and state transitions live in the engine.
package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/Sakal05/souk/internal/engine"
	"github.com/Sakal05/souk/internal/ledger"
)

// identityHeader carries the caller's account identity.
const identityHeader = "X-Souk-Account"

// Server routes registry requests to the engine.
type Server struct {
	engine *engine.Engine
	router *mux.Router
}

// NewServer builds the HTTP surface over an engine.
func NewServer(e *engine.Engine) *Server {
	s := &Server{
		engine: e,
		router: mux.NewRouter(),
	}

	s.router.HandleFunc("/v1/listings", s.handleCreate).Methods(http.MethodPost)
	s.router.HandleFunc("/v1/listings", s.handleList).Methods(http.MethodGet)
	s.router.HandleFunc("/v1/listings/{id}", s.handleGet).Methods(http.MethodGet)
	s.router.HandleFunc("/v1/listings/{id}/settle", s.handleSettle).Methods(http.MethodPost)
	s.router.HandleFunc("/v1/transfers", s.handleTransfers).Methods(http.MethodGet)

	return s
}

// Handler returns the router for mounting in an http.Server.
func (s *Server) Handler() http.Handler {
	return s.router
}

// writeJSON serialises v as JSON and writes it to w with the given
// status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

// errorBody is the JSON error envelope.
type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// writeError maps a failure to its HTTP status and error envelope.
func writeError(w http.ResponseWriter, err error) {
	var le *ledger.Error
	if errors.As(err, &le) {
		status := http.StatusInternalServerError
		switch le.Code {
		case ledger.ErrCodeDuplicateListing, ledger.ErrCodeReinitAttempted:
			status = http.StatusConflict
		case ledger.ErrCodeListingNotFound:
			status = http.StatusNotFound
		case ledger.ErrCodeAmountMismatch:
			status = http.StatusPaymentRequired
		}
		writeJSON(w, status, errorBody{Code: string(le.Code), Message: le.Message})
		return
	}
	writeJSON(w, http.StatusInternalServerError, errorBody{Code: "INTERNAL", Message: err.Error()})
}

// writeBadRequest reports a malformed request.
func writeBadRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, errorBody{Code: "BAD_REQUEST", Message: msg})
}

// createRequest is the createListing body: the creation payload plus
// the attached deposit (per-donation unit for project listings).
type createRequest struct {
	ledger.Payload
	AttachedDeposit ledger.Amount `json:"attached_deposit"`
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	caller := r.Header.Get(identityHeader)
	if caller == "" {
		writeBadRequest(w, "missing "+identityHeader+" header")
		return
	}

	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid JSON body: "+err.Error())
		return
	}

	l, err := s.engine.CreateListing(r.Context(), req.Payload, caller, req.AttachedDeposit)
	if err != nil {
		if ledger.IsValidationError(err) {
			writeBadRequest(w, err.Error())
			return
		}
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, l)
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	l, err := s.engine.GetListing(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	if l == nil {
		writeError(w, ledger.NewListingNotFoundError(id))
		return
	}
	writeJSON(w, http.StatusOK, l)
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	listings, err := s.engine.ListListings(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, listings)
}

// settleRequest carries the attached deposit for a settlement call.
type settleRequest struct {
	AttachedDeposit ledger.Amount `json:"attached_deposit"`
}

func (s *Server) handleSettle(w http.ResponseWriter, r *http.Request) {
	caller := r.Header.Get(identityHeader)
	if caller == "" {
		writeBadRequest(w, "missing "+identityHeader+" header")
		return
	}

	var req settleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid JSON body: "+err.Error())
		return
	}

	id := mux.Vars(r)["id"]
	receipt, err := s.engine.Settle(r.Context(), id, caller, req.AttachedDeposit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, receipt)
}

func (s *Server) handleTransfers(w http.ResponseWriter, r *http.Request) {
	transfers, err := s.engine.ListTransfers(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, transfers)
}
