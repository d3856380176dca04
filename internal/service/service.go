package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/maltedev/marketplace-product-extractor/internal/cache"
	"github.com/maltedev/marketplace-product-extractor/internal/database"
	"github.com/maltedev/marketplace-product-extractor/internal/document"
	"github.com/maltedev/marketplace-product-extractor/internal/extractor"
	"github.com/maltedev/marketplace-product-extractor/internal/fetcher"
	"github.com/maltedev/marketplace-product-extractor/internal/models"
)

// Service wires the fetch, parse and extraction steps together and, when
// configured, keeps results in the cache and the store. The extraction
// core itself stays pure; every side effect lives here.
type Service struct {
	fetcher   *fetcher.Fetcher
	extractor *extractor.Extractor
	cache     *cache.RecordCache
	db        *database.DB
	logger    *slog.Logger
}

// New builds a Service. cache and db may be nil; the corresponding steps
// are skipped.
func New(f *fetcher.Fetcher, e *extractor.Extractor, c *cache.RecordCache, db *database.DB, logger *slog.Logger) *Service {
	return &Service{
		fetcher:   f,
		extractor: e,
		cache:     c,
		db:        db,
		logger:    logger.With("component", "service"),
	}
}

// ExtractFromURL fetches the page and extracts one ProductRecord,
// cache-aside when a cache is configured.
func (s *Service) ExtractFromURL(ctx context.Context, url string, opts extractor.Options) (*models.ProductRecord, error) {
	if s.cache != nil {
		if record, err := s.cache.Get(ctx, url); err != nil {
			s.logger.Warn("cache read failed", "error", err, "url", url)
		} else if record != nil {
			s.logger.Debug("cache hit", "url", url)
			return record, nil
		}
	}

	doc, err := s.fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", url, err)
	}

	record := s.extractor.Extract(doc, url, opts)
	s.persist(ctx, record)

	return record, nil
}

// ExtractFromHTML extracts from markup the caller already holds; url is
// the page's resolved address and only labels the record.
func (s *Service) ExtractFromHTML(ctx context.Context, html, url string, opts extractor.Options) (*models.ProductRecord, error) {
	doc, err := document.ParseString(html)
	if err != nil {
		return nil, fmt.Errorf("failed to parse markup: %w", err)
	}

	record := s.extractor.Extract(doc, url, opts)
	s.persist(ctx, record)

	return record, nil
}

// persist is best effort: a cache or store failure never fails the
// extraction the caller asked for.
func (s *Service) persist(ctx context.Context, record *models.ProductRecord) {
	if s.cache != nil {
		if err := s.cache.Set(ctx, record.URL, record); err != nil {
			s.logger.Warn("cache write failed", "error", err, "url", record.URL)
		}
	}

	if s.db != nil {
		if _, err := s.db.SaveRecord(ctx, record); err != nil {
			s.logger.Warn("store write failed", "error", err, "url", record.URL)
		}
	}
}
