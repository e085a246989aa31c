package get_facility_slots

import (
	"github.com/m04kA/SMC-ArenaService/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-ArenaService/internal/usecase/get_available_slots"
)

// SlotResponse статус одного слота на дату
type SlotResponse struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Label     string `json:"label"`
	Status    string `json:"status"`
	Reason    string `json:"reason,omitempty"`
}

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	FacilityID int64          `json:"facilityId"`
	Date       string         `json:"date"`
	Slots      []SlotResponse `json:"slots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailabilityResponse {
	slots := make([]SlotResponse, 0, len(resp.Slots))
	for _, s := range resp.Slots {
		slots = append(slots, SlotResponse{
			StartTime: s.StartTime.String(),
			EndTime:   s.EndTime.String(),
			Label:     s.Label,
			Status:    string(s.Status),
			Reason:    s.Reason,
		})
	}
	return &AvailabilityResponse{
		FacilityID: resp.FacilityID,
		Date:       resp.Date.Format(domain.DateFormat),
		Slots:      slots,
	}
}
