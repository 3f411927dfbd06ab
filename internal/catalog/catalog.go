// internal/catalog/catalog.go

// Package catalog provides read access to the business catalog. The catalog
// is owned by the backend; this service only fetches snapshots of it.
package catalog

import (
	"context"

	"discovery-service/internal/models"
)

// Source returns candidate business records for the discovery facade. A
// snapshot is fetched per query; implementations must not retain or mutate
// returned slices.
//
// "Near" performs a coarse area prefilter only (bounding box or similar);
// exact radius filtering is the filter pipeline's job.
type Source interface {
	Near(ctx context.Context, center models.LocationReading, radiusKm float64) ([]models.BusinessRecord, error)
	Active(ctx context.Context) ([]models.BusinessRecord, error)
	Featured(ctx context.Context) ([]models.BusinessRecord, error)
}
