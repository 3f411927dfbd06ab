// internal/discovery/service_test.go
package discovery

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"discovery-service/internal/common/config"
	cerrors "discovery-service/internal/common/errors"
	"discovery-service/internal/common/logger"
	"discovery-service/internal/discovery/filter"
	"discovery-service/internal/models"
	"discovery-service/pkg/registry"
)

var testCenter = models.LocationReading{Latitude: 12.9716, Longitude: 77.5946}

// fakeSource is an in-memory catalog source recording how it was called.
type fakeSource struct {
	records []models.BusinessRecord
	err     error

	nearCalls   int
	activeCalls int
	lastRadius  float64
}

func (f *fakeSource) Near(_ context.Context, _ models.LocationReading, radiusKm float64) ([]models.BusinessRecord, error) {
	f.nearCalls++
	f.lastRadius = radiusKm
	return f.records, f.err
}

func (f *fakeSource) Active(_ context.Context) ([]models.BusinessRecord, error) {
	f.activeCalls++
	return f.records, f.err
}

func (f *fakeSource) Featured(_ context.Context) ([]models.BusinessRecord, error) {
	return f.records, f.err
}

func testRegistry(t *testing.T) *registry.CategoryRegistry {
	t.Helper()
	path := filepath.Join(t.TempDir(), "categories.json")
	payload := `{
		"version": "1.0",
		"categories": [
			{"id": "restaurants", "name": "Restaurants", "interactionType": "ORDER", "isActive": true, "displayOrder": 1},
			{"id": "salons", "name": "Salons", "interactionType": "BOOK", "isActive": true, "displayOrder": 2},
			{"id": "clinics", "name": "Clinics", "interactionType": "CONSULT", "isActive": true, "displayOrder": 3}
		]
	}`
	require.NoError(t, os.WriteFile(path, []byte(payload), 0o644))
	reg, err := registry.Load(path)
	require.NoError(t, err)
	return reg
}

func testDiscoveryConfig() config.DiscoveryConfig {
	return config.DiscoveryConfig{
		DefaultRadiusKm: 5,
		MaxRadiusKm:     100,
		DefaultLimit:    20,
		MaxLimit:        100,
		TextSearchLimit: 10,
		FeaturedLimit:   10,
	}
}

func newTestService(t *testing.T, src *fakeSource) *Service {
	t.Helper()
	svc := New(src, testRegistry(t), testDiscoveryConfig(), logger.NewTestLogger(t), nil)
	svc.now = func() time.Time {
		return time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC) // a Monday
	}
	return svc
}

// business returns a valid active record latOffset degrees north of the test
// center. 0.01 degrees of latitude is roughly 1.11 km.
func business(id string, latOffset, rating float64) models.BusinessRecord {
	return models.BusinessRecord{
		ID:          id,
		OwnerID:     "owner-" + id,
		Name:        "Business " + id,
		Description: "a neighborhood business",
		Location: models.LocationReading{
			Latitude:  testCenter.Latitude + latOffset,
			Longitude: testCenter.Longitude,
		},
		Category: models.BusinessCategory{
			ID:              "restaurants",
			Name:            "Restaurants",
			InteractionType: models.InteractionOrder,
			IsActive:        true,
		},
		InteractionType: models.InteractionOrder,
		IsApproved:      true,
		Status:          models.StatusActive,
		AvgRating:       rating,
	}
}

func TestNearbySearch_AppliesDefaults(t *testing.T) {
	src := &fakeSource{records: []models.BusinessRecord{
		business("b1", 0.01, 4.2),
		business("b2", 0.02, 3.8),
	}}
	svc := newTestService(t, src)

	page, err := svc.NearbySearch(context.Background(), testCenter, filter.Options{})
	require.NoError(t, err)

	assert.Equal(t, 5.0, src.lastRadius, "zero radius should take the 5 km default")
	assert.Equal(t, 20, page.Limit, "zero limit should take the default page size")
	assert.Equal(t, 1, page.Page)
	assert.Len(t, page.Data, 2)
}

func TestNearbySearch_FiltersAndPaginates(t *testing.T) {
	src := &fakeSource{records: []models.BusinessRecord{
		business("near-high", 0.01, 4.5),
		business("near-low", 0.02, 2.0),
		business("far", 0.20, 5.0), // ~22 km out
	}}
	svc := newTestService(t, src)

	page, err := svc.NearbySearch(context.Background(), testCenter, filter.Options{
		RadiusKm:  5,
		MinRating: 4.0,
		Limit:     10,
	})
	require.NoError(t, err)

	require.Len(t, page.Data, 1)
	assert.Equal(t, "near-high", page.Data[0].ID)
	assert.Equal(t, 1, page.Total)
	assert.False(t, page.HasNext)
}

func TestNearbySearch_NoCandidatesInRadius(t *testing.T) {
	var records []models.BusinessRecord
	for i := 0; i < 10; i++ {
		records = append(records, business(fmt.Sprintf("b%d", i), 0.09, 4.0)) // ~10 km out
	}
	src := &fakeSource{records: records}
	svc := newTestService(t, src)

	page, err := svc.NearbySearch(context.Background(), testCenter, filter.Options{RadiusKm: 5})
	require.NoError(t, err)

	assert.Empty(t, page.Data)
	assert.Equal(t, 0, page.Total)
	assert.False(t, page.HasNext)
}

func TestNearbySearch_Pagination(t *testing.T) {
	var records []models.BusinessRecord
	for i := 0; i < 5; i++ {
		records = append(records, business(fmt.Sprintf("b%d", i), 0.001*float64(i), 4.0))
	}
	src := &fakeSource{records: records}
	svc := newTestService(t, src)

	page, err := svc.NearbySearch(context.Background(), testCenter, filter.Options{Limit: 2, Offset: 2})
	require.NoError(t, err)

	assert.Len(t, page.Data, 2)
	assert.Equal(t, 2, page.Page)
	assert.Equal(t, 5, page.Total)
	assert.Equal(t, 3, page.TotalPages)
	assert.True(t, page.HasNext)
	assert.True(t, page.HasPrev)
}

func TestNearbySearch_InvalidArguments(t *testing.T) {
	svc := newTestService(t, &fakeSource{})

	cases := []struct {
		name   string
		center models.LocationReading
		opts   filter.Options
	}{
		{"latitude out of range", models.LocationReading{Latitude: 91}, filter.Options{}},
		{"longitude out of range", models.LocationReading{Longitude: -181}, filter.Options{}},
		{"radius above maximum", testCenter, filter.Options{RadiusKm: 250}},
		{"limit above maximum", testCenter, filter.Options{Limit: 1000}},
		{"negative min rating", testCenter, filter.Options{MinRating: -1}},
		{"min rating above five", testCenter, filter.Options{MinRating: 5.5}},
		{"unknown interaction type", testCenter, filter.Options{InteractionType: "RENT"}},
		{"unknown category", testCenter, filter.Options{Category: "spaceports"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.NearbySearch(context.Background(), tc.center, tc.opts)
			require.Error(t, err)
			assert.Equal(t, cerrors.ErrCodeInvalidArgument, cerrors.CodeOf(err))
			assert.False(t, cerrors.IsRetryable(err))
		})
	}
}

func TestNearbySearch_CatalogUnavailable(t *testing.T) {
	src := &fakeSource{err: errors.New("connection refused")}
	svc := newTestService(t, src)

	_, err := svc.NearbySearch(context.Background(), testCenter, filter.Options{})
	require.Error(t, err)
	assert.Equal(t, cerrors.ErrCodeCatalogUnavailable, cerrors.CodeOf(err))
	assert.True(t, cerrors.IsRetryable(err))
	assert.Equal(t, 1, src.nearCalls, "catalog failures must not be retried internally")
}

func TestTextSearch_MatchesNameDescriptionAndKeywords(t *testing.T) {
	byName := business("by-name", 0.01, 4.0)
	byName.Name = "Ravi's Plumbing Works"

	byDescription := business("by-description", 0.01, 4.0)
	byDescription.Description = "emergency plumbing and pipe repair"

	byKeyword := business("by-keyword", 0.01, 4.0)
	byKeyword.SpecializedCategories = []string{"plumbing", "electrical"}

	unrelated := business("unrelated", 0.01, 4.0)

	src := &fakeSource{records: []models.BusinessRecord{byName, byDescription, byKeyword, unrelated}}
	svc := newTestService(t, src)

	out, err := svc.TextSearch(context.Background(), "PLUMB", nil, filter.Options{})
	require.NoError(t, err)

	require.Len(t, out, 3)
	assert.Equal(t, "by-name", out[0].ID)
	assert.Equal(t, "by-description", out[1].ID)
	assert.Equal(t, "by-keyword", out[2].ID)
	assert.Equal(t, 1, src.activeCalls, "without a center the full active set is searched")
	assert.Equal(t, 0, src.nearCalls)
}

func TestTextSearch_RadiusOnlyWithCenter(t *testing.T) {
	near := business("near", 0.01, 4.0)
	far := business("far", 0.20, 4.0)
	src := &fakeSource{records: []models.BusinessRecord{near, far}}
	svc := newTestService(t, src)

	out, err := svc.TextSearch(context.Background(), "business", &testCenter, filter.Options{})
	require.NoError(t, err)

	require.Len(t, out, 1)
	assert.Equal(t, "near", out[0].ID)
	assert.Equal(t, 5.0, src.lastRadius)
	assert.Equal(t, 0, src.activeCalls)
}

func TestTextSearch_TruncatesToDefaultLimit(t *testing.T) {
	var records []models.BusinessRecord
	for i := 0; i < 15; i++ {
		records = append(records, business(fmt.Sprintf("b%02d", i), 0.001, 4.0))
	}
	src := &fakeSource{records: records}
	svc := newTestService(t, src)

	out, err := svc.TextSearch(context.Background(), "business", nil, filter.Options{})
	require.NoError(t, err)

	require.Len(t, out, 10)
	assert.Equal(t, "b00", out[0].ID, "truncation keeps input order")
	assert.Equal(t, "b09", out[9].ID)
}

func TestTextSearch_EmptyQuery(t *testing.T) {
	svc := newTestService(t, &fakeSource{})

	for _, q := range []string{"", "   "} {
		_, err := svc.TextSearch(context.Background(), q, nil, filter.Options{})
		require.Error(t, err)
		assert.Equal(t, cerrors.ErrCodeInvalidArgument, cerrors.CodeOf(err))
	}
}

func TestTextSearch_CatalogUnavailable(t *testing.T) {
	src := &fakeSource{err: errors.New("timeout")}
	svc := newTestService(t, src)

	_, err := svc.TextSearch(context.Background(), "plumber", nil, filter.Options{})
	require.Error(t, err)
	assert.Equal(t, cerrors.ErrCodeCatalogUnavailable, cerrors.CodeOf(err))
}

func TestFeaturedBusinesses_SortedByRatingDescending(t *testing.T) {
	mk := func(id string, rating float64, featured bool, status models.BusinessStatus) models.BusinessRecord {
		rec := business(id, 0.01, rating)
		rec.IsFeatured = featured
		rec.Status = status
		return rec
	}

	src := &fakeSource{records: []models.BusinessRecord{
		mk("mid", 4.5, true, models.StatusActive),
		mk("top", 4.9, true, models.StatusActive),
		mk("tie-first", 4.1, true, models.StatusActive),
		mk("tie-second", 4.1, true, models.StatusActive),
		mk("not-featured", 5.0, false, models.StatusActive),
		mk("suspended", 5.0, true, models.StatusSuspended),
	}}
	svc := newTestService(t, src)

	out, err := svc.FeaturedBusinesses(context.Background(), nil, 0)
	require.NoError(t, err)

	ids := make([]string, len(out))
	for i, rec := range out {
		ids[i] = rec.ID
	}
	assert.Equal(t, []string{"top", "mid", "tie-first", "tie-second"}, ids,
		"descending rating with ties in input order")
}

func TestFeaturedBusinesses_TruncatesToLimit(t *testing.T) {
	var records []models.BusinessRecord
	for i := 0; i < 6; i++ {
		rec := business(fmt.Sprintf("b%d", i), 0.001, float64(i)/2+2)
		rec.IsFeatured = true
		records = append(records, rec)
	}
	src := &fakeSource{records: records}
	svc := newTestService(t, src)

	out, err := svc.FeaturedBusinesses(context.Background(), nil, 3)
	require.NoError(t, err)
	require.Len(t, out, 3)
	assert.Equal(t, "b5", out[0].ID, "highest rated first")
}

func TestFeaturedBusinesses_CenterRestrictsRadius(t *testing.T) {
	near := business("near", 0.01, 4.0)
	near.IsFeatured = true
	far := business("far", 0.20, 5.0)
	far.IsFeatured = true

	src := &fakeSource{records: []models.BusinessRecord{near, far}}
	svc := newTestService(t, src)

	out, err := svc.FeaturedBusinesses(context.Background(), &testCenter, 0)
	require.NoError(t, err)

	require.Len(t, out, 1)
	assert.Equal(t, "near", out[0].ID)
}

func TestFeaturedBusinesses_ValidatesCenterBeforeFetching(t *testing.T) {
	src := &fakeSource{err: errors.New("connection refused")}
	svc := newTestService(t, src)

	badCenter := models.LocationReading{Latitude: 91}
	_, err := svc.FeaturedBusinesses(context.Background(), &badCenter, 0)
	require.Error(t, err)
	assert.Equal(t, cerrors.ErrCodeInvalidArgument, cerrors.CodeOf(err),
		"argument validation comes before the catalog fetch")
}

func TestFeaturedBusinesses_CatalogUnavailable(t *testing.T) {
	src := &fakeSource{err: errors.New("connection reset")}
	svc := newTestService(t, src)

	_, err := svc.FeaturedBusinesses(context.Background(), nil, 0)
	require.Error(t, err)
	assert.Equal(t, cerrors.ErrCodeCatalogUnavailable, cerrors.CodeOf(err))
}
