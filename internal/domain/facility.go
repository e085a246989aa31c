package domain

import "time"

// FacilityStatus represents the operational status of a facility
type FacilityStatus string

const (
	FacilityActive      FacilityStatus = "active"
	FacilityMaintenance FacilityStatus = "maintenance"
	FacilityDisabled    FacilityStatus = "disabled"
)

// Facility represents a physical sports facility (turf arena, court, ground)
type Facility struct {
	ID         int64
	Name       string
	Category   string
	HourlyRate float64 // Аренда одного слота (один слот = один час)
	SportIDs   []int64 // Виды спорта, доступные на площадке
	Status     FacilityStatus

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsBookable returns true if the facility accepts new rentals.
// Maintenance and disabled facilities report every slot as unavailable.
func (f *Facility) IsBookable() bool {
	return f.Status == FacilityActive
}

// SupportsSport returns true if the facility supports the given sport
func (f *Facility) SupportsSport(sportID int64) bool {
	for _, id := range f.SportIDs {
		if id == sportID {
			return true
		}
	}
	return false
}

// ValidFacilityStatus returns true for a known facility status value
func ValidFacilityStatus(s FacilityStatus) bool {
	switch s {
	case FacilityActive, FacilityMaintenance, FacilityDisabled:
		return true
	}
	return false
}
