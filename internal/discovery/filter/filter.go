// internal/discovery/filter/filter.go

// Package filter composes the predicate pipeline applied to catalog
// candidates during a discovery query.
package filter

import (
	"time"

	"discovery-service/internal/common/logger"
	"discovery-service/internal/common/metrics"
	"discovery-service/internal/discovery/geo"
	"discovery-service/internal/discovery/hours"
	"discovery-service/internal/models"
)

// Options is the transient per-request filter set. Zero values mean "no
// constraint" except MinRating, where 0 naturally admits every record.
type Options struct {
	RadiusKm         float64
	InteractionType  models.InteractionType // empty = any
	Category         string                 // empty = any
	OpenNow          bool
	MinRating        float64
	SupportsDelivery *bool // nil = any; only consulted for ORDER records
	Limit            int
	Offset           int
}

// Apply filters candidates down to those satisfying every active predicate.
// All predicates are commutative conjunctions; the ordering below simply puts
// the cheapest and most selective checks first.
//
// A record that fails shape validation is excluded and logged, never fatal:
// one bad catalog entry must not fail the whole query.
func Apply(candidates []models.BusinessRecord, center models.LocationReading, opts Options, now time.Time, log logger.Logger) []models.BusinessRecord {
	out := make([]models.BusinessRecord, 0, len(candidates))

	for i := range candidates {
		rec := &candidates[i]

		if reason := ValidateRecord(rec); reason != "" {
			metrics.MalformedRecords.WithLabelValues("filter").Inc()
			log.Warn("excluding malformed catalog record", map[string]interface{}{
				"recordId": rec.ID,
				"reason":   reason,
			})
			continue
		}

		if opts.RadiusKm > 0 {
			d := geo.DistanceKm(center.Latitude, center.Longitude, rec.Location.Latitude, rec.Location.Longitude)
			if d > opts.RadiusKm {
				continue
			}
		}

		if opts.InteractionType != "" && rec.InteractionType != opts.InteractionType {
			continue
		}

		if opts.Category != "" && !matchesCategory(rec, opts.Category) {
			continue
		}

		if rec.AvgRating < opts.MinRating {
			continue
		}

		if opts.OpenNow && !hours.IsOpenAt(rec.OperatingHours, hours.InBusinessZone(rec.Location, now)) {
			continue
		}

		if opts.SupportsDelivery != nil && rec.InteractionType == models.InteractionOrder &&
			rec.SupportsDelivery != *opts.SupportsDelivery {
			continue
		}

		out = append(out, *rec)
	}

	return out
}

// matchesCategory accepts either the record's primary category id or any
// entry of its specialized-category set.
func matchesCategory(rec *models.BusinessRecord, category string) bool {
	if rec.Category.ID == category {
		return true
	}
	return rec.HasSpecializedCategory(category)
}
