package create_batch

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-ArenaService/internal/domain"
)

// CreateBatchRequest HTTP request model
type CreateBatchRequest struct {
	FacilityID int64  `json:"facilityId"`
	Name       string `json:"name"`
	Schedule   string `json:"schedule"`
	Capacity   int    `json:"capacity"`
	Level      string `json:"level"`
	StartDate  string `json:"startDate"` // YYYY-MM-DD
	EndDate    string `json:"endDate"`   // YYYY-MM-DD
}

// BatchResponse HTTP response model
type BatchResponse struct {
	ID            int64  `json:"id"`
	FacilityID    int64  `json:"facilityId"`
	SlotID        *int64 `json:"slotId,omitempty"`
	Name          string `json:"name"`
	Schedule      string `json:"schedule"`
	Capacity      int    `json:"capacity"`
	EnrolledCount int    `json:"enrolledCount"`
	Level         string `json:"level"`
	StartDate     string `json:"startDate"`
	EndDate       string `json:"endDate"`
	Status        string `json:"status"`
	CreatedAt     string `json:"createdAt"`
}

// ToDomain конвертирует HTTP запрос в доменную модель
func (r *CreateBatchRequest) ToDomain() (*domain.Batch, error) {
	startDate, err := time.Parse(domain.DateFormat, r.StartDate)
	if err != nil {
		return nil, fmt.Errorf("invalid startDate %q: %v", r.StartDate, err)
	}
	endDate, err := time.Parse(domain.DateFormat, r.EndDate)
	if err != nil {
		return nil, fmt.Errorf("invalid endDate %q: %v", r.EndDate, err)
	}

	return &domain.Batch{
		FacilityID: r.FacilityID,
		Name:       r.Name,
		Schedule:   r.Schedule,
		Capacity:   r.Capacity,
		Level:      r.Level,
		StartDate:  startDate,
		EndDate:    endDate,
	}, nil
}

// FromDomain конвертирует доменную модель в HTTP response
func FromDomain(b *domain.Batch, now time.Time) *BatchResponse {
	return &BatchResponse{
		ID:            b.ID,
		FacilityID:    b.FacilityID,
		SlotID:        b.SlotID,
		Name:          b.Name,
		Schedule:      b.Schedule,
		Capacity:      b.Capacity,
		EnrolledCount: b.EnrolledCount,
		Level:         b.Level,
		StartDate:     b.StartDate.Format(domain.DateFormat),
		EndDate:       b.EndDate.Format(domain.DateFormat),
		Status:        string(b.Status(now)),
		CreatedAt:     b.CreatedAt.Format(time.RFC3339),
	}
}
