// internal/geocode/client.go

// Package geocode resolves free-text location labels to coordinates through a
// Nominatim-compatible search endpoint.
package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	cerrors "discovery-service/internal/common/errors"
	chttp "discovery-service/internal/common/http"
	"discovery-service/internal/common/logger"
	"discovery-service/internal/models"
)

// Client talks to a Nominatim-style geocoder. Responses are best-effort; a
// failed resolution is a GEOCODE_FAILED error the caller can fall back from,
// typically to device coordinates.
type Client struct {
	baseURL string
	http    *chttp.Client
	logger  logger.Logger
}

func NewClient(baseURL string, timeout time.Duration, log logger.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		http:    chttp.NewClient(timeout),
		logger:  log.WithFields(map[string]interface{}{"component": "geocode"}),
	}
}

// nominatimResult is the subset of the search response we consume.
type nominatimResult struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// Resolve turns a textual label ("Indiranagar, Bengaluru") into a location
// reading. The first result wins; Nominatim orders by relevance.
func (c *Client) Resolve(ctx context.Context, label string) (models.LocationReading, error) {
	var zero models.LocationReading

	if label == "" {
		return zero, cerrors.NewInvalidArgumentError("location label must not be empty")
	}

	endpoint := fmt.Sprintf("%s/search?format=json&limit=1&q=%s", c.baseURL, url.QueryEscape(label))
	req, err := http.NewRequest(http.MethodGet, endpoint, nil)
	if err != nil {
		return zero, cerrors.NewGeocodeFailedError(label, err)
	}

	resp, err := c.http.DoWithContext(ctx, req)
	if err != nil {
		return zero, cerrors.NewGeocodeFailedError(label, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return zero, cerrors.NewGeocodeFailedError(label, fmt.Errorf("geocoder returned status %d", resp.StatusCode))
	}

	var results []nominatimResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return zero, cerrors.NewGeocodeFailedError(label, err)
	}
	if len(results) == 0 {
		return zero, cerrors.NewGeocodeFailedError(label, fmt.Errorf("no match for %q", label))
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return zero, cerrors.NewGeocodeFailedError(label, fmt.Errorf("bad latitude %q", results[0].Lat))
	}
	lon, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return zero, cerrors.NewGeocodeFailedError(label, fmt.Errorf("bad longitude %q", results[0].Lon))
	}

	c.logger.Debug("resolved location label", map[string]interface{}{
		"label":     label,
		"latitude":  lat,
		"longitude": lon,
	})

	return models.LocationReading{
		Latitude:  lat,
		Longitude: lon,
		Label:     results[0].DisplayName,
	}, nil
}
