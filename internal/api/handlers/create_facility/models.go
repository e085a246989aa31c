package create_facility

import (
	"time"

	"github.com/m04kA/SMC-ArenaService/internal/domain"
)

// CreateFacilityRequest HTTP request model
type CreateFacilityRequest struct {
	Name       string  `json:"name"`
	Category   string  `json:"category"`
	HourlyRate float64 `json:"hourlyRate"`
	SportIDs   []int64 `json:"sportIds"`
	Status     string  `json:"status,omitempty"`
}

// FacilityResponse HTTP response model
type FacilityResponse struct {
	ID         int64   `json:"id"`
	Name       string  `json:"name"`
	Category   string  `json:"category"`
	HourlyRate float64 `json:"hourlyRate"`
	SportIDs   []int64 `json:"sportIds"`
	Status     string  `json:"status"`
	CreatedAt  string  `json:"createdAt"`
	UpdatedAt  string  `json:"updatedAt"`
}

// ToDomain конвертирует HTTP запрос в доменную модель
func (r *CreateFacilityRequest) ToDomain() *domain.Facility {
	return &domain.Facility{
		Name:       r.Name,
		Category:   r.Category,
		HourlyRate: r.HourlyRate,
		SportIDs:   r.SportIDs,
		Status:     domain.FacilityStatus(r.Status),
	}
}

// FromDomain конвертирует доменную модель в HTTP response
func FromDomain(f *domain.Facility) *FacilityResponse {
	return &FacilityResponse{
		ID:         f.ID,
		Name:       f.Name,
		Category:   f.Category,
		HourlyRate: f.HourlyRate,
		SportIDs:   f.SportIDs,
		Status:     string(f.Status),
		CreatedAt:  f.CreatedAt.Format(time.RFC3339),
		UpdatedAt:  f.UpdatedAt.Format(time.RFC3339),
	}
}
