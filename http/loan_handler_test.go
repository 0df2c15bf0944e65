package http

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"emi-planner/catalog"
	"emi-planner/config"
	"emi-planner/domain"
	"emi-planner/repository"
	"emi-planner/service"
)

func newTestRouter(t *testing.T) *mux.Router {
	t.Helper()
	log := logrus.New()
	log.SetOutput(io.Discard)

	c, err := catalog.Default()
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}

	repo := repository.NewLoanRepositoryMemory()
	loans := service.NewLoanService(repo, repository.NewMemoryCache(), config.DefaultLimits(), log)
	limiter := NewRateLimiter(1000, time.Minute)
	t.Cleanup(limiter.Stop)

	return NewRouter(
		NewLoanHandler(loans, service.NewAdviceService(c, config.DefaultLimits()), log),
		NewCatalogHandler(service.NewCatalogService(c, log), log),
		limiter,
		log,
	)
}

func do(t *testing.T, router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

const sandboxBody = `{
	"principal": 800000,
	"annual_rate_percent": 8.5,
	"tenure_years": 10,
	"moratorium_years": 4
}`

func TestCalculateEMIHandler_OK(t *testing.T) {
	router := newTestRouter(t)

	w := do(t, router, http.MethodPost, "/emi/calculate", sandboxBody)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var result domain.LoanResult
	if err := json.NewDecoder(w.Body).Decode(&result); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if result.StandardEMI != 13746.13 {
		t.Errorf("expected EMI 13746.13, got %.2f", result.StandardEMI)
	}
}

func TestCalculateEMIHandler_MethodNotAllowed(t *testing.T) {
	router := newTestRouter(t)

	w := do(t, router, http.MethodGet, "/emi/calculate", "")
	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected 405, got %d", w.Code)
	}
}

func TestCalculateEMIHandler_BadRequest(t *testing.T) {
	router := newTestRouter(t)

	w := do(t, router, http.MethodPost, "/emi/calculate", `{invalid-json}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestCalculateEMIHandler_InvalidInput(t *testing.T) {
	router := newTestRouter(t)

	w := do(t, router, http.MethodPost, "/emi/calculate", `{"principal": -5, "annual_rate_percent": 8, "tenure_years": 10}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "invalid loan input") {
		t.Errorf("expected error message in body, got %s", w.Body.String())
	}
}

func TestCalculateEMIHandler_UnsupportedMediaType(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/emi/calculate", bytes.NewBufferString(sandboxBody))
	req.Header.Set("Content-Type", "text/plain")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnsupportedMediaType {
		t.Errorf("expected 415, got %d", w.Code)
	}
}

func TestProjectionHandler_Warning(t *testing.T) {
	router := newTestRouter(t)

	body := `{"principal": 800000, "annual_rate_percent": 8.5, "tenure_years": 10,
		"moratorium_years": 4, "custom_monthly_payment": 10000}`
	w := do(t, router, http.MethodPost, "/emi/projection", body)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var res domain.ProjectionResponse
	if err := json.NewDecoder(w.Body).Decode(&res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if res.Status != "outstanding" || res.Warning == "" {
		t.Errorf("expected outstanding with warning, got %s %q", res.Status, res.Warning)
	}
	if len(res.Points) != 1+4+40 {
		t.Errorf("expected 45 points, got %d", len(res.Points))
	}
}

func TestCompareHandler(t *testing.T) {
	router := newTestRouter(t)

	body := `{
		"a": {"name": "Bank A", "principal": 800000, "annual_rate_percent": 8.5, "tenure_years": 10, "moratorium_years": 4},
		"b": {"name": "Bank B", "principal": 800000, "annual_rate_percent": 9.5, "tenure_years": 10, "moratorium_years": 5}
	}`
	w := do(t, router, http.MethodPost, "/emi/compare", body)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var res domain.ComparisonResponse
	if err := json.NewDecoder(w.Body).Decode(&res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if res.Winner != "A" || res.SavingsDifference != 306009.62 {
		t.Errorf("unexpected comparison: winner %s savings %.2f", res.Winner, res.SavingsDifference)
	}
	if !strings.HasPrefix(res.Verdict, "Bank A saves") {
		t.Errorf("unexpected verdict %q", res.Verdict)
	}
}

func TestAdviceHandler(t *testing.T) {
	router := newTestRouter(t)

	body := `{"principal": 800000, "annual_rate_percent": 10, "tenure_years": 10, "custom_monthly_payment": 8000}`
	w := do(t, router, http.MethodPost, "/emi/advice", body)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var advice []domain.Advice
	if err := json.NewDecoder(w.Body).Decode(&advice); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(advice) != 2 || advice[0].Kind != domain.AdviceUnderpayment || advice[1].Kind != domain.AdviceRefinance {
		t.Errorf("unexpected advice %+v", advice)
	}
}

func TestAdviceHandler_OutOfLimits(t *testing.T) {
	router := newTestRouter(t)

	body := `{"principal": 50, "annual_rate_percent": 0, "tenure_years": 400, "moratorium_years": 3000000}`
	w := do(t, router, http.MethodPost, "/emi/advice", body)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "principal must be between") {
		t.Errorf("unexpected body %s", w.Body.String())
	}
}

func TestHistoryHandler(t *testing.T) {
	router := newTestRouter(t)

	do(t, router, http.MethodPost, "/emi/calculate", sandboxBody)
	do(t, router, http.MethodPost, "/emi/projection", sandboxBody)

	w := do(t, router, http.MethodGet, "/history?limit=1", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var records []domain.CalculationRecord
	if err := json.NewDecoder(w.Body).Decode(&records); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(records) != 1 || records[0].Kind != domain.KindProjection {
		t.Errorf("expected latest projection record, got %+v", records)
	}

	if w := do(t, router, http.MethodGet, "/history?limit=abc", ""); w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for bad limit, got %d", w.Code)
	}
}
