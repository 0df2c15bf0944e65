package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"

	"emi-planner/amortization"
	"emi-planner/catalog"
)

type errorResponse struct {
	Error string `json:"error"`
}

// decodeJSON validates the Content-Type and decodes the body into v. It
// writes the error response itself and reports whether decoding succeeded.
func decodeJSON(w http.ResponseWriter, r *http.Request, log *logrus.Logger, v any) bool {
	// Validar Content-Type
	contentType := r.Header.Get("Content-Type")
	if !strings.Contains(contentType, "application/json") {
		writeJSON(w, log, http.StatusUnsupportedMediaType, errorResponse{Error: "Content-Type must be application/json"})
		return false
	}

	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		log.WithError(err).Debug("error decoding request body")
		writeJSON(w, log, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return false
	}
	return true
}

// writeError maps service errors to status codes.
func writeError(w http.ResponseWriter, log *logrus.Logger, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, amortization.ErrInvalidInput), errors.Is(err, catalog.ErrInvalidQuery):
		status = http.StatusBadRequest
	case errors.Is(err, catalog.ErrSchemeNotFound):
		status = http.StatusNotFound
	}

	msg := err.Error()
	if status == http.StatusInternalServerError {
		log.WithError(err).Error("request failed")
		msg = "internal server error"
	}
	writeJSON(w, log, status, errorResponse{Error: msg})
}

func writeJSON(w http.ResponseWriter, log *logrus.Logger, status int, v any) {
	// Codificar JSON en buffer primero para evitar escribir header si falla
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		log.WithError(err).Error("error encoding response")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		log.WithError(err).Warn("error writing response")
	}
}
