package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/curtisos/curtisos/internal/domain"
	"go.uber.org/zap"
)

type errorBody struct {
	Error   string              `json:"error"`
	Details []domain.FieldError `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorBody{Error: msg})
}

// writeServiceError maps service errors onto status codes. Anything
// unrecognised is logged and reported as a bare 500.
func (s *Server) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *domain.ValidationError
	var maxErr *http.MaxBytesError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "Validation failed", Details: verr.Fields})
	case errors.As(err, &maxErr):
		writeError(w, http.StatusRequestEntityTooLarge, "Request body too large")
	case errors.Is(err, domain.ErrInvalidReference):
		writeError(w, http.StatusBadRequest, "Referenced record does not exist")
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "Not found")
	case errors.Is(err, domain.ErrConflict):
		writeError(w, http.StatusConflict, "Already exists")
	case errors.Is(err, domain.ErrNotConfigured):
		writeError(w, http.StatusServiceUnavailable, err.Error())
	case errors.Is(err, context.Canceled):
		// Client went away; nobody is reading the response.
		s.log.Debug("request cancelled", zap.String("request_id", RequestID(r.Context())))
	default:
		s.log.Error("request failed",
			zap.String("request_id", RequestID(r.Context())),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}

// decodeJSON reads the request body into dst. An empty body leaves dst
// untouched.
func decodeJSON(r *http.Request, dst any) error {
	err := json.NewDecoder(r.Body).Decode(dst)
	switch {
	case err == nil, errors.Is(err, io.EOF):
		return nil
	default:
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return err
		}
		return domain.Invalid("body", "must be a valid JSON object: %v", err)
	}
}

func pathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.Invalid(name, "must be a positive integer")
	}
	return id, nil
}

func queryInt64(r *http.Request, name string) (*int64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, domain.Invalid(name, "must be an integer")
	}
	return &n, nil
}

func queryBool(r *http.Request, name string) (*bool, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, domain.Invalid(name, "must be true or false")
	}
	return &b, nil
}

func queryContext(r *http.Request) domain.Context {
	return domain.Context(r.URL.Query().Get("context"))
}

// Generic CRUD handlers. Each adapts one service method.

func create[T any](s *Server, fn func(context.Context, *T) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		v := new(T)
		if err := decodeJSON(r, v); err != nil {
			s.writeServiceError(w, r, err)
			return
		}
		if err := fn(r.Context(), v); err != nil {
			s.writeServiceError(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, v)
	}
}

func get[T any](s *Server, fn func(context.Context, int64) (T, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "id")
		if err != nil {
			s.writeServiceError(w, r, err)
			return
		}
		v, err := fn(r.Context(), id)
		if err != nil {
			s.writeServiceError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, v)
	}
}

func update[P, T any](s *Server, fn func(context.Context, int64, P) (T, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "id")
		if err != nil {
			s.writeServiceError(w, r, err)
			return
		}
		var body P
		if err := decodeJSON(r, &body); err != nil {
			s.writeServiceError(w, r, err)
			return
		}
		v, err := fn(r.Context(), id, body)
		if err != nil {
			s.writeServiceError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, v)
	}
}

func remove(s *Server, fn func(context.Context, int64) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "id")
		if err != nil {
			s.writeServiceError(w, r, err)
			return
		}
		if err := fn(r.Context(), id); err != nil {
			s.writeServiceError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// list writes a listing, substituting an empty array for nil.
func list[T any](s *Server, w http.ResponseWriter, r *http.Request, items []T, err error) {
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	if items == nil {
		items = []T{}
	}
	writeJSON(w, http.StatusOK, items)
}
