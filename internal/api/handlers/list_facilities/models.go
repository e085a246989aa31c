package list_facilities

import (
	"time"

	"github.com/m04kA/SMC-ArenaService/internal/domain"
)

// FacilityResponse HTTP модель площадки
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

// FacilityListResponse HTTP модель списка площадок
type FacilityListResponse struct {
	Facilities []*FacilityResponse `json:"facilities"`
	Total      int                 `json:"total"`
}

// FromDomainList конвертирует список площадок в HTTP response
func FromDomainList(facilities []*domain.Facility) *FacilityListResponse {
	out := make([]*FacilityResponse, 0, len(facilities))
	for _, f := range facilities {
		out = append(out, &FacilityResponse{
			ID:         f.ID,
			Name:       f.Name,
			Category:   f.Category,
			HourlyRate: f.HourlyRate,
			SportIDs:   f.SportIDs,
			Status:     string(f.Status),
			CreatedAt:  f.CreatedAt.Format(time.RFC3339),
			UpdatedAt:  f.UpdatedAt.Format(time.RFC3339),
		})
	}
	return &FacilityListResponse{Facilities: out, Total: len(out)}
}
