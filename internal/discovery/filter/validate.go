// internal/discovery/filter/validate.go
package filter

import (
	"math"

	"discovery-service/internal/models"
)

// ValidateRecord checks the shape invariants a catalog entry must satisfy
// before it may enter the filter pipeline. Returns an empty string for a
// well-formed record, otherwise a short reason.
func ValidateRecord(rec *models.BusinessRecord) string {
	switch {
	case rec.ID == "":
		return "missing id"
	case rec.Name == "":
		return "missing name"
	case !finiteCoordinate(rec.Location.Latitude, 90):
		return "latitude out of range"
	case !finiteCoordinate(rec.Location.Longitude, 180):
		return "longitude out of range"
	case rec.AvgRating < 0 || rec.AvgRating > 5 || math.IsNaN(rec.AvgRating):
		return "rating out of range"
	case rec.InteractionType != "" && !models.ValidInteractionType(rec.InteractionType):
		return "unknown interaction type"
	}

	for day, sched := range rec.OperatingHours {
		if !sched.IsOpen && (sched.OpenTime != "" || sched.CloseTime != "") {
			return "closed day " + day + " carries open/close times"
		}
	}

	return ""
}

func finiteCoordinate(v, bound float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= -bound && v <= bound
}
