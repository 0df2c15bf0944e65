package cmd

import (
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"emi-planner/catalog"
	"emi-planner/config"
	"emi-planner/repository"
	"emi-planner/service"
)

// app is the wired set of stores and services shared by every command.
type app struct {
	cfg     config.Config
	log     *logrus.Logger
	repo    repository.LoanRepository
	catalog *catalog.Catalog
	loans   *service.LoanService
	advice  *service.AdviceService
	schemes *service.CatalogService
	closers []io.Closer
}

func newApp() (*app, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, err
	}
	a := &app{cfg: cfg, log: newLogger(cfg.Log)}

	if a.catalog, err = catalog.Load(cfg.Catalog.Path); err != nil {
		return nil, err
	}

	switch cfg.Storage.Driver {
	case "sqlite", "postgres":
		sqlRepo, err := repository.OpenSQLRepository(cfg.Storage.Driver, cfg.Storage.DSN)
		if err != nil {
			return nil, err
		}
		a.repo = sqlRepo
		a.closers = append(a.closers, sqlRepo)
	default:
		a.repo = repository.NewLoanRepositoryMemory()
	}

	var cache repository.CacheRepository
	switch cfg.Cache.Driver {
	case "redis":
		redisCache, err := repository.NewRedisCache(cfg.Cache.RedisAddr, time.Duration(cfg.Cache.TTLSeconds)*time.Second)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("connecting cache: %w", err)
		}
		cache = redisCache
		a.closers = append(a.closers, redisCache)
	default:
		cache = repository.NewMemoryCache()
	}

	a.loans = service.NewLoanService(a.repo, cache, cfg.Limits, a.log)
	a.advice = service.NewAdviceService(a.catalog, cfg.Limits)
	a.schemes = service.NewCatalogService(a.catalog, a.log)

	a.log.WithFields(logrus.Fields{
		"storage": cfg.Storage.Driver,
		"cache":   cfg.Cache.Driver,
	}).Debug("application wired")
	return a, nil
}

func (a *app) Close() {
	for _, c := range a.closers {
		if err := c.Close(); err != nil {
			a.log.WithError(err).Warn("error closing resource")
		}
	}
}
