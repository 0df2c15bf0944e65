package http

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

// NewRouter wires the handlers behind request logging and rate limiting.
func NewRouter(loans *LoanHandler, catalog *CatalogHandler, limiter *RateLimiter, log *logrus.Logger) *mux.Router {
	r := mux.NewRouter()
	r.Use(LoggingMiddleware(log))
	r.Use(RateLimitMiddleware(limiter))

	r.HandleFunc("/emi/calculate", loans.CalculateEMI).Methods(http.MethodPost)
	r.HandleFunc("/emi/projection", loans.Project).Methods(http.MethodPost)
	r.HandleFunc("/emi/compare", loans.Compare).Methods(http.MethodPost)
	r.HandleFunc("/emi/advice", loans.Advise).Methods(http.MethodPost)
	r.HandleFunc("/history", loans.History).Methods(http.MethodGet)

	r.HandleFunc("/schemes", catalog.Schemes).Methods(http.MethodGet)
	r.HandleFunc("/schemes/match", catalog.Match).Methods(http.MethodPost)
	r.HandleFunc("/schemes/{id}/prefill", catalog.Prefill).Methods(http.MethodGet)
	r.HandleFunc("/universities", catalog.Universities).Methods(http.MethodGet)
	r.HandleFunc("/degrees", catalog.Degrees).Methods(http.MethodGet)

	return r
}
