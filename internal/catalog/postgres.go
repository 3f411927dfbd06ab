// internal/catalog/postgres.go
package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"discovery-service/internal/common/logger"
	"discovery-service/internal/common/metrics"
	"discovery-service/internal/models"
	"discovery-service/pkg/registry"
)

const kmPerDegreeLat = 111.19

const selectColumns = `
	id, owner_id, name, description,
	latitude, longitude, timezone, address,
	phone, email, website,
	operating_hours, category_id, interaction_type,
	specialized_categories, supports_delivery,
	is_approved, status, is_featured,
	avg_rating, total_reviews, created_at, updated_at`

// PostgresSource reads business records from the catalog database. Category
// ids resolve against the static registry; the database does not own
// category reference data.
type PostgresSource struct {
	db       *sql.DB
	registry *registry.CategoryRegistry
	logger   logger.Logger
}

func NewPostgresSource(db *sql.DB, reg *registry.CategoryRegistry, log logger.Logger) *PostgresSource {
	return &PostgresSource{
		db:       db,
		registry: reg,
		logger:   log.WithFields(map[string]interface{}{"component": "catalog.postgres"}),
	}
}

// Near fetches approved active businesses inside a bounding box around
// center. The box over-fetches by design; the filter pipeline applies the
// exact great-circle radius. A real deployment would back this query with a
// geospatial index; the box keeps the query planner on plain btree indexes.
func (s *PostgresSource) Near(ctx context.Context, center models.LocationReading, radiusKm float64) ([]models.BusinessRecord, error) {
	latDelta := radiusKm / kmPerDegreeLat
	lonScale := math.Cos(center.Latitude * math.Pi / 180.0)
	if lonScale < 0.01 {
		// Near the poles a degree of longitude shrinks to nothing; fall
		// back to scanning the full longitude range.
		lonScale = 0.01
	}
	lonDelta := radiusKm / (kmPerDegreeLat * lonScale)

	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(`
		SELECT %s
		FROM businesses
		WHERE status = 'active' AND is_approved = TRUE
		  AND latitude BETWEEN $1 AND $2
		  AND longitude BETWEEN $3 AND $4`, selectColumns),
		center.Latitude-latDelta, center.Latitude+latDelta,
		center.Longitude-lonDelta, center.Longitude+lonDelta,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return s.scanRecords(rows)
}

// Active fetches every approved active business.
func (s *PostgresSource) Active(ctx context.Context) ([]models.BusinessRecord, error) {
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(`
		SELECT %s
		FROM businesses
		WHERE status = 'active' AND is_approved = TRUE`, selectColumns))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return s.scanRecords(rows)
}

// Featured fetches approved active businesses flagged as featured.
func (s *PostgresSource) Featured(ctx context.Context) ([]models.BusinessRecord, error) {
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(`
		SELECT %s
		FROM businesses
		WHERE status = 'active' AND is_approved = TRUE AND is_featured = TRUE`, selectColumns))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return s.scanRecords(rows)
}

// scanRecords converts rows into business records. A row that fails to scan
// or decode is logged and skipped so one corrupt entry cannot fail the whole
// query.
func (s *PostgresSource) scanRecords(rows *sql.Rows) ([]models.BusinessRecord, error) {
	var out []models.BusinessRecord

	for rows.Next() {
		rec, err := scanRecord(rows, s.registry)
		if err != nil {
			metrics.MalformedRecords.WithLabelValues("postgres").Inc()
			s.logger.Warn("skipping malformed catalog row", map[string]interface{}{
				"error": err.Error(),
			})
			continue
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return out, nil
}

func scanRecord(rows *sql.Rows, reg *registry.CategoryRegistry) (models.BusinessRecord, error) {
	var (
		rec                   models.BusinessRecord
		timezone, phone       sql.NullString
		email, website        sql.NullString
		hoursRaw, specialized []byte
		categoryID            string
		interaction           string
		status                string
		createdAt, updatedAt  time.Time
	)

	err := rows.Scan(
		&rec.ID, &rec.OwnerID, &rec.Name, &rec.Description,
		&rec.Location.Latitude, &rec.Location.Longitude, &timezone, &rec.Address,
		&phone, &email, &website,
		&hoursRaw, &categoryID, &interaction,
		&specialized, &rec.SupportsDelivery,
		&rec.IsApproved, &status, &rec.IsFeatured,
		&rec.AvgRating, &rec.TotalReviews, &createdAt, &updatedAt,
	)
	if err != nil {
		return models.BusinessRecord{}, err
	}

	rec.Location.Timezone = timezone.String
	rec.Contact = models.ContactInfo{Phone: phone.String, Email: email.String, Website: website.String}
	rec.InteractionType = models.InteractionType(interaction)
	rec.Status = models.BusinessStatus(status)
	rec.CreatedAt = createdAt
	rec.UpdatedAt = updatedAt

	if reason := validateHoursDocument(hoursRaw); reason != "" {
		return models.BusinessRecord{}, fmt.Errorf("record %s: %s", rec.ID, reason)
	}
	if len(hoursRaw) > 0 {
		if err := json.Unmarshal(hoursRaw, &rec.OperatingHours); err != nil {
			return models.BusinessRecord{}, fmt.Errorf("record %s: decode operating hours: %w", rec.ID, err)
		}
	}

	if len(specialized) > 0 {
		if err := json.Unmarshal(specialized, &rec.SpecializedCategories); err != nil {
			return models.BusinessRecord{}, fmt.Errorf("record %s: decode specialized categories: %w", rec.ID, err)
		}
	}

	if cat, ok := reg.Lookup(categoryID); ok {
		rec.Category = cat
	} else {
		return models.BusinessRecord{}, fmt.Errorf("record %s: unknown category %q", rec.ID, categoryID)
	}

	return rec, nil
}
