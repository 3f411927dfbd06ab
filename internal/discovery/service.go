// internal/discovery/service.go

// Package discovery implements the public discovery operations: nearby
// search, text search and featured businesses. Each operation reads one
// catalog snapshot, filters it in memory and returns plain data; no shared
// mutable state exists between queries.
package discovery

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"discovery-service/internal/catalog"
	"discovery-service/internal/common/config"
	cerrors "discovery-service/internal/common/errors"
	"discovery-service/internal/common/logger"
	"discovery-service/internal/common/metrics"
	"discovery-service/internal/common/observability"
	"discovery-service/internal/discovery/filter"
	"discovery-service/internal/discovery/paginate"
	"discovery-service/internal/models"
	"discovery-service/pkg/registry"
)

const (
	opNearby   = "nearby_search"
	opText     = "text_search"
	opFeatured = "featured"
)

// Service is the discovery facade. It never retries catalog failures; the
// caller owns retry and fallback policy.
type Service struct {
	catalog  catalog.Source
	registry *registry.CategoryRegistry
	cfg      config.DiscoveryConfig
	logger   logger.Logger
	obs      *observability.Observability

	now func() time.Time // injectable clock
}

func New(src catalog.Source, reg *registry.CategoryRegistry, cfg config.DiscoveryConfig, log logger.Logger, obs *observability.Observability) *Service {
	return &Service{
		catalog:  src,
		registry: reg,
		cfg:      cfg,
		logger:   log.WithFields(map[string]interface{}{"component": "discovery"}),
		obs:      obs,
		now:      time.Now,
	}
}

// NearbySearch returns the businesses around center matching opts, paginated.
// Zero-valued radius, limit and offset take the configured defaults
// (radius 5 km, page size 20, offset 0).
func (s *Service) NearbySearch(ctx context.Context, center models.LocationReading, opts filter.Options) (paginate.Result[models.BusinessRecord], error) {
	start := s.now()
	var zero paginate.Result[models.BusinessRecord]

	if opts.RadiusKm <= 0 {
		opts.RadiusKm = s.cfg.DefaultRadiusKm
	}
	if opts.Limit <= 0 {
		opts.Limit = s.cfg.DefaultLimit
	}

	if err := s.validateCenter(center); err != nil {
		s.recordFailure(ctx, opNearby, err)
		return zero, err
	}
	if err := s.validateOptions(opts); err != nil {
		s.recordFailure(ctx, opNearby, err)
		return zero, err
	}

	candidates, err := s.catalog.Near(ctx, center, opts.RadiusKm)
	if err != nil {
		werr := cerrors.NewCatalogUnavailableError(err)
		s.recordFailure(ctx, opNearby, werr)
		return zero, werr
	}

	matched := filter.Apply(candidates, center, opts, s.now(), s.logger)

	page, err := paginate.Paginate(matched, opts.Limit, opts.Offset)
	if err != nil {
		s.recordFailure(ctx, opNearby, err)
		return zero, err
	}

	s.recordSuccess(ctx, opNearby, start, len(candidates), len(page.Data))
	return page, nil
}

// TextSearch matches query case-insensitively against business names,
// descriptions and specialized-category keywords. The radius filter only
// applies when a center is supplied. Results are truncated to opts.Limit
// (default 10) in input order; there is no relevance ranking.
func (s *Service) TextSearch(ctx context.Context, query string, center *models.LocationReading, opts filter.Options) ([]models.BusinessRecord, error) {
	start := s.now()

	query = strings.TrimSpace(query)
	if query == "" {
		err := cerrors.NewInvalidArgumentError("query must not be empty")
		s.recordFailure(ctx, opText, err)
		return nil, err
	}

	if opts.Limit <= 0 {
		opts.Limit = s.cfg.TextSearchLimit
	}
	if err := s.validateOptions(opts); err != nil {
		s.recordFailure(ctx, opText, err)
		return nil, err
	}

	var (
		candidates []models.BusinessRecord
		err        error
		pivot      models.LocationReading
	)
	if center != nil {
		if opts.RadiusKm <= 0 {
			opts.RadiusKm = s.cfg.DefaultRadiusKm
		}
		if verr := s.validateCenter(*center); verr != nil {
			s.recordFailure(ctx, opText, verr)
			return nil, verr
		}
		pivot = *center
		candidates, err = s.catalog.Near(ctx, pivot, opts.RadiusKm)
	} else {
		opts.RadiusKm = 0 // no radius constraint without a center
		candidates, err = s.catalog.Active(ctx)
	}
	if err != nil {
		werr := cerrors.NewCatalogUnavailableError(err)
		s.recordFailure(ctx, opText, werr)
		return nil, werr
	}

	structural := filter.Options{
		RadiusKm:        opts.RadiusKm,
		InteractionType: opts.InteractionType,
		Category:        opts.Category,
	}
	matched := filter.Apply(candidates, pivot, structural, s.now(), s.logger)

	needle := strings.ToLower(query)
	out := make([]models.BusinessRecord, 0, opts.Limit)
	for _, rec := range matched {
		if matchesQuery(&rec, needle) {
			out = append(out, rec)
			if len(out) == opts.Limit {
				break
			}
		}
	}

	s.recordSuccess(ctx, opText, start, len(candidates), len(out))
	return out, nil
}

// FeaturedBusinesses returns featured active businesses sorted by rating
// descending, ties kept in input order. With a center the candidate set is
// restricted to the default radius around it; without one the whole featured
// set is considered.
func (s *Service) FeaturedBusinesses(ctx context.Context, center *models.LocationReading, limit int) ([]models.BusinessRecord, error) {
	start := s.now()

	if limit <= 0 {
		limit = s.cfg.FeaturedLimit
	}
	if limit > s.cfg.MaxLimit {
		err := cerrors.NewInvalidArgumentError(fmt.Sprintf("limit %d exceeds maximum %d", limit, s.cfg.MaxLimit))
		s.recordFailure(ctx, opFeatured, err)
		return nil, err
	}

	var pivot models.LocationReading
	radius := 0.0
	if center != nil {
		if verr := s.validateCenter(*center); verr != nil {
			s.recordFailure(ctx, opFeatured, verr)
			return nil, verr
		}
		pivot = *center
		radius = s.cfg.DefaultRadiusKm
	}

	candidates, err := s.catalog.Featured(ctx)
	if err != nil {
		werr := cerrors.NewCatalogUnavailableError(err)
		s.recordFailure(ctx, opFeatured, werr)
		return nil, werr
	}

	matched := filter.Apply(candidates, pivot, filter.Options{RadiusKm: radius}, s.now(), s.logger)

	featured := make([]models.BusinessRecord, 0, len(matched))
	for _, rec := range matched {
		if rec.IsFeatured && rec.Status == models.StatusActive {
			featured = append(featured, rec)
		}
	}

	sort.SliceStable(featured, func(i, j int) bool {
		return featured[i].AvgRating > featured[j].AvgRating
	})

	if len(featured) > limit {
		featured = featured[:limit]
	}

	s.recordSuccess(ctx, opFeatured, start, len(candidates), len(featured))
	return featured, nil
}

func (s *Service) validateCenter(center models.LocationReading) error {
	if math.IsNaN(center.Latitude) || center.Latitude < -90 || center.Latitude > 90 {
		return cerrors.NewInvalidArgumentError(fmt.Sprintf("latitude %v out of range [-90, 90]", center.Latitude))
	}
	if math.IsNaN(center.Longitude) || center.Longitude < -180 || center.Longitude > 180 {
		return cerrors.NewInvalidArgumentError(fmt.Sprintf("longitude %v out of range [-180, 180]", center.Longitude))
	}
	return nil
}

func (s *Service) validateOptions(opts filter.Options) error {
	if opts.RadiusKm > s.cfg.MaxRadiusKm {
		return cerrors.NewInvalidArgumentError(fmt.Sprintf("radius %v exceeds maximum %v km", opts.RadiusKm, s.cfg.MaxRadiusKm))
	}
	if opts.Limit > s.cfg.MaxLimit {
		return cerrors.NewInvalidArgumentError(fmt.Sprintf("limit %d exceeds maximum %d", opts.Limit, s.cfg.MaxLimit))
	}
	if opts.MinRating < 0 || opts.MinRating > 5 {
		return cerrors.NewInvalidArgumentError(fmt.Sprintf("minRating %v out of range [0, 5]", opts.MinRating))
	}
	if opts.InteractionType != "" && !models.ValidInteractionType(opts.InteractionType) {
		return cerrors.NewInvalidArgumentError(fmt.Sprintf("unknown interaction type %q", opts.InteractionType))
	}
	if opts.Category != "" && !s.registry.Known(opts.Category) {
		return cerrors.NewInvalidArgumentError(fmt.Sprintf("unknown category %q", opts.Category))
	}
	return nil
}

func matchesQuery(rec *models.BusinessRecord, needle string) bool {
	if strings.Contains(strings.ToLower(rec.Name), needle) {
		return true
	}
	if strings.Contains(strings.ToLower(rec.Description), needle) {
		return true
	}
	for _, kw := range rec.SpecializedCategories {
		if strings.Contains(strings.ToLower(kw), needle) {
			return true
		}
	}
	return false
}

func (s *Service) recordSuccess(ctx context.Context, op string, start time.Time, fetched, returned int) {
	duration := s.now().Sub(start)
	metrics.DiscoveryQueries.WithLabelValues(op).Inc()
	metrics.DiscoveryQueryDuration.WithLabelValues(op).Observe(duration.Seconds())
	if s.obs != nil {
		s.obs.RecordQuery(ctx, op, "ok")
		s.obs.RecordQueryDuration(ctx, op, duration)
	}
	s.logger.Info("query completed", map[string]interface{}{
		"operation":  op,
		"fetched":    fetched,
		"returned":   returned,
		"durationMs": duration.Milliseconds(),
	})
}

func (s *Service) recordFailure(ctx context.Context, op string, err error) {
	code := string(cerrors.CodeOf(err))
	if code == "" {
		code = "UNKNOWN"
	}
	metrics.DiscoveryQueries.WithLabelValues(op).Inc()
	metrics.DiscoveryQueryErrors.WithLabelValues(op, code).Inc()
	if s.obs != nil {
		s.obs.RecordQuery(ctx, op, "error")
	}
	s.logger.Error("query failed", map[string]interface{}{
		"operation": op,
		"errorCode": code,
		"error":     err.Error(),
	})
}
