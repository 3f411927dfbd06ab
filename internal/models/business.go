// internal/models/business.go
package models

import "time"

// InteractionType classifies how a customer engages a business.
type InteractionType string

const (
	InteractionOrder   InteractionType = "ORDER"   // buy now
	InteractionBook    InteractionType = "BOOK"    // schedule a service
	InteractionConsult InteractionType = "CONSULT" // inquiry-only
)

// ValidInteractionType reports whether t is one of the known interaction types.
func ValidInteractionType(t InteractionType) bool {
	switch t {
	case InteractionOrder, InteractionBook, InteractionConsult:
		return true
	}
	return false
}

// BusinessStatus is the lifecycle state of a catalog entry. Records are never
// deleted; they transition between statuses.
type BusinessStatus string

const (
	StatusActive    BusinessStatus = "active"
	StatusSuspended BusinessStatus = "suspended"
	StatusPending   BusinessStatus = "pending"
)

// LocationReading is a point on Earth, optionally with a human-readable label
// and the IANA time zone the point lives in. Immutable once captured.
type LocationReading struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Label     string  `json:"label,omitempty"`
	Timezone  string  `json:"timezone,omitempty"`
}

// DaySchedule describes a single weekday in a business's weekly schedule.
// When IsOpen is false, OpenTime and CloseTime are empty. When Is24Hours is
// true, OpenTime and CloseTime are ignored.
type DaySchedule struct {
	IsOpen    bool   `json:"isOpen"`
	OpenTime  string `json:"openTime,omitempty"`  // "HH:MM", zero-padded
	CloseTime string `json:"closeTime,omitempty"` // "HH:MM", zero-padded
	Is24Hours bool   `json:"is24Hours"`
}

// OperatingHours maps lowercase weekday names ("monday".."sunday") to that
// day's schedule. All seven keys are expected to be present.
type OperatingHours map[string]DaySchedule

// ContactInfo holds the public contact details of a business.
type ContactInfo struct {
	Phone   string `json:"phone,omitempty"`
	Email   string `json:"email,omitempty"`
	Website string `json:"website,omitempty"`
}

// BusinessRecord is a single catalog entry. The discovery service only reads
// these; creation and profile edits belong to the backend catalog.
type BusinessRecord struct {
	ID                    string           `json:"id"`
	OwnerID               string           `json:"ownerId"`
	Name                  string           `json:"name"`
	Description           string           `json:"description"`
	Location              LocationReading  `json:"location"`
	Address               string           `json:"address"`
	Contact               ContactInfo      `json:"contact"`
	OperatingHours        OperatingHours   `json:"operatingHours"`
	Category              BusinessCategory `json:"category"`
	InteractionType       InteractionType  `json:"interactionType"`
	SpecializedCategories []string         `json:"specializedCategories"`
	SupportsDelivery      bool             `json:"supportsDelivery"`
	IsApproved            bool             `json:"isApproved"`
	Status                BusinessStatus   `json:"status"`
	IsFeatured            bool             `json:"isFeatured"`
	AvgRating             float64          `json:"avgRating"` // [0,5]
	TotalReviews          int              `json:"totalReviews"`
	CreatedAt             time.Time        `json:"createdAt"`
	UpdatedAt             time.Time        `json:"updatedAt"`
}

// HasSpecializedCategory reports whether id appears in the record's
// specialized-category set.
func (b *BusinessRecord) HasSpecializedCategory(id string) bool {
	for _, c := range b.SpecializedCategories {
		if c == id {
			return true
		}
	}
	return false
}
