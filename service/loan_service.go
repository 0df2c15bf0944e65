package service

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"emi-planner/amortization"
	"emi-planner/config"
	"emi-planner/domain"
	"emi-planner/repository"
)

// roundTo2Decimals redondea un float64 a 2 decimales
func roundTo2Decimals(value float64) float64 {
	return decimal.NewFromFloat(value).Round(2).InexactFloat64()
}

type LoanService struct {
	repo   repository.LoanRepository
	cache  repository.CacheRepository
	limits config.LimitsConfig
	log    *logrus.Logger
	now    func() time.Time
}

// NewLoanService creates a new LoanService with the given repository and cache.
func NewLoanService(repo repository.LoanRepository,
	cache repository.CacheRepository,
	limits config.LimitsConfig,
	log *logrus.Logger,
) *LoanService {
	return &LoanService{
		repo:   repo,
		cache:  cache,
		limits: limits,
		log:    log,
		now:    time.Now,
	}
}

// CalculateEMI returns the standard EMI and its totals. A custom payment in
// the parameters is ignored.
func (s *LoanService) CalculateEMI(
	input amortization.LoanParameters,
) (domain.LoanResult, error) {
	input.CustomMonthlyPayment = nil
	if err := checkLimits(s.limits, input); err != nil {
		return domain.LoanResult{}, err
	}

	return cachedCompute(s, domain.KindEMI, input, func() (domain.LoanResult, error) {
		res, err := amortization.ProjectBalanceCurve(input)
		if err != nil {
			return domain.LoanResult{}, err
		}
		return domain.LoanResult{
			CapitalizedPrincipal: res.CapitalizedPrincipal,
			StandardEMI:          roundTo2Decimals(res.StandardEMI),
			TotalRepayment:       res.TotalRepayment,
			TotalInterest:        res.TotalInterest,
		}, nil
	})
}

// Project returns the balance curve. A custom payment that does not clear the
// loan within tenure is reported as a warning, not an error.
func (s *LoanService) Project(
	input amortization.LoanParameters,
) (domain.ProjectionResponse, error) {
	if err := checkLimits(s.limits, input); err != nil {
		return domain.ProjectionResponse{}, err
	}

	return cachedCompute(s, domain.KindProjection, input, func() (domain.ProjectionResponse, error) {
		res, err := amortization.ProjectBalanceCurve(input)
		if err != nil {
			return domain.ProjectionResponse{}, err
		}
		out := domain.ProjectionResponse{AmortizationResult: res}
		if perr := res.PaymentError(); perr != nil {
			out.Warning = perr.Error()
		}
		return out, nil
	})
}

// Compare projects both schemes and renders the verdict.
func (s *LoanService) Compare(
	input domain.CompareInput,
) (domain.ComparisonResponse, error) {
	if err := checkLimits(s.limits, input.A); err != nil {
		return domain.ComparisonResponse{}, fmt.Errorf("scheme A: %w", err)
	}
	if err := checkLimits(s.limits, input.B); err != nil {
		return domain.ComparisonResponse{}, fmt.Errorf("scheme B: %w", err)
	}

	return cachedCompute(s, domain.KindCompare, input, func() (domain.ComparisonResponse, error) {
		res, err := amortization.CompareTwoSchemes(input.A, input.B)
		if err != nil {
			return domain.ComparisonResponse{}, err
		}
		return domain.ComparisonResponse{
			ComparisonResult: res,
			Verdict:          Verdict(res),
		}, nil
	})
}

// History returns the latest calculations, newest first.
func (s *LoanService) History(limit int) ([]domain.CalculationRecord, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	if limit > MaxHistoryLimit {
		limit = MaxHistoryLimit
	}
	records, err := s.repo.List(limit)
	if err != nil {
		return nil, fmt.Errorf("listing history: %w", err)
	}
	if records == nil {
		records = []domain.CalculationRecord{}
	}
	return records, nil
}

// cachedCompute serves a result from the cache when present, otherwise
// computes and stores it. Either way the calculation is recorded in history.
func cachedCompute[T any](s *LoanService, kind string, req any, compute func() (T, error)) (T, error) {
	var zero T

	reqJSON, err := json.Marshal(req)
	if err != nil {
		return zero, fmt.Errorf("encoding request: %w", err)
	}
	key := cacheKeyPrefix + kind + ":" + strconv.FormatUint(xxhash.Sum64(reqJSON), 16)

	var result T
	hit := false
	if cached, ok := s.cache.Get(key); ok {
		if err := json.Unmarshal([]byte(cached), &result); err != nil {
			s.log.WithError(err).WithField("key", key).Warn("discarding unreadable cache entry")
		} else {
			hit = true
		}
	}

	if !hit {
		if result, err = compute(); err != nil {
			return zero, err
		}
	}

	resJSON, err := json.Marshal(result)
	if err != nil {
		return zero, fmt.Errorf("encoding result: %w", err)
	}
	if !hit {
		if err := s.cache.Set(key, string(resJSON)); err != nil {
			s.log.WithError(err).WithField("key", key).Warn("failed to cache calculation")
		}
	}

	s.log.WithFields(logrus.Fields{"kind": kind, "cached": hit}).Debug("calculation served")

	// Guardar el resultado (no crítico si falla)
	record := domain.CalculationRecord{
		ID:        uuid.NewString(),
		Kind:      kind,
		Request:   reqJSON,
		Result:    resJSON,
		CreatedAt: s.now().UTC(),
	}
	if err := s.repo.Save(record); err != nil {
		s.log.WithError(err).WithField("kind", kind).Warn("failed to save calculation")
	}

	return result, nil
}
