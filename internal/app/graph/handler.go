// internal/app/graph/handler.go
package graph

import (
	"encoding/json"
	"net/http"

	graphql "github.com/graph-gophers/graphql-go"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Handler serves the /graphql endpoint.
type Handler struct {
	schema *graphql.Schema
	log    *zap.Logger
}

// NewHandler parses the SDL against the root resolver. A schema/resolver
// mismatch is a programming error and fails startup.
func NewHandler(r *Resolver, logger *zap.Logger) (*Handler, error) {
	schema, err := graphql.ParseSchema(SchemaString, r)
	if err != nil {
		return nil, err
	}
	return &Handler{schema: schema, log: logger}, nil
}

// Schema exposes the parsed schema for tests that exec operations directly.
func (h *Handler) Schema() *graphql.Schema {
	return h.schema
}

type gqlRequest struct {
	Query         string         `json:"query"`
	OperationName string         `json:"operationName"`
	Variables     map[string]any `json:"variables"`
}

// Serve handles POST /graphql. Identity has already been decoded into the
// request context by the identity middleware.
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	var req gqlRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	resp := h.schema.Exec(r.Context(), req.Query, req.OperationName, req.Variables)

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		h.log.Warn("graphql: write response", zap.Error(err))
	}
}

// Routes returns the subrouter mounted under /graphql.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.Serve)
	return r
}
