package http

import (
	"net/http"
	"strconv"

	"github.com/sirupsen/logrus"

	"emi-planner/amortization"
	"emi-planner/domain"
	"emi-planner/service"
)

type LoanHandler struct {
	service *service.LoanService
	advice  *service.AdviceService
	log     *logrus.Logger
}

func NewLoanHandler(service *service.LoanService, advice *service.AdviceService, log *logrus.Logger) *LoanHandler {
	return &LoanHandler{service: service, advice: advice, log: log}
}

// CalculateEMI handles POST /emi/calculate.
func (h *LoanHandler) CalculateEMI(w http.ResponseWriter, r *http.Request) {
	var input amortization.LoanParameters
	if !decodeJSON(w, r, h.log, &input) {
		return
	}

	result, err := h.service.CalculateEMI(input)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, h.log, http.StatusOK, result)
}

// Project handles POST /emi/projection.
func (h *LoanHandler) Project(w http.ResponseWriter, r *http.Request) {
	var input amortization.LoanParameters
	if !decodeJSON(w, r, h.log, &input) {
		return
	}

	result, err := h.service.Project(input)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, h.log, http.StatusOK, result)
}

// Compare handles POST /emi/compare.
func (h *LoanHandler) Compare(w http.ResponseWriter, r *http.Request) {
	var input domain.CompareInput
	if !decodeJSON(w, r, h.log, &input) {
		return
	}

	result, err := h.service.Compare(input)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, h.log, http.StatusOK, result)
}

// Advise handles POST /emi/advice.
func (h *LoanHandler) Advise(w http.ResponseWriter, r *http.Request) {
	var input amortization.LoanParameters
	if !decodeJSON(w, r, h.log, &input) {
		return
	}

	advice, err := h.advice.Advise(input)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, h.log, http.StatusOK, advice)
}

// History handles GET /history?limit=n.
func (h *LoanHandler) History(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeJSON(w, h.log, http.StatusBadRequest, errorResponse{Error: "limit must be a non-negative integer"})
			return
		}
		limit = n
	}

	records, err := h.service.History(limit)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, h.log, http.StatusOK, records)
}
