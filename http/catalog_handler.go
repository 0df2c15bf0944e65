package http

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"emi-planner/catalog"
	"emi-planner/service"
)

type CatalogHandler struct {
	service *service.CatalogService
	log     *logrus.Logger
}

func NewCatalogHandler(service *service.CatalogService, log *logrus.Logger) *CatalogHandler {
	return &CatalogHandler{service: service, log: log}
}

func (h *CatalogHandler) Schemes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.log, http.StatusOK, h.service.Schemes())
}

func (h *CatalogHandler) Degrees(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.log, http.StatusOK, h.service.Degrees())
}

// Universities handles GET /universities?q=.
func (h *CatalogHandler) Universities(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.log, http.StatusOK, h.service.Universities(r.URL.Query().Get("q")))
}

// Prefill handles GET /schemes/{id}/prefill.
func (h *CatalogHandler) Prefill(w http.ResponseWriter, r *http.Request) {
	params, err := h.service.Prefill(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, h.log, http.StatusOK, params)
}

// Match handles POST /schemes/match.
func (h *CatalogHandler) Match(w http.ResponseWriter, r *http.Request) {
	var input catalog.MatchInput
	if !decodeJSON(w, r, h.log, &input) {
		return
	}

	result, err := h.service.Match(input)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, h.log, http.StatusOK, result)
}
