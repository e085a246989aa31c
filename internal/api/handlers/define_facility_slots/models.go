package define_facility_slots

import (
	"github.com/m04kA/SMC-ArenaService/internal/domain"
	"github.com/m04kA/SMC-ArenaService/internal/service/slottemplate"
	"github.com/m04kA/SMC-ArenaService/pkg/types"
)

// SlotIntervalRequest один интервал нового слота
type SlotIntervalRequest struct {
	StartTime string `json:"startTime"` // "07:00"
	EndTime   string `json:"endTime"`   // "08:00"
}

// DefineSlotsRequest HTTP request model
type DefineSlotsRequest struct {
	FacilityID int64                 `json:"facilityId"`
	Slots      []SlotIntervalRequest `json:"slots"`
}

// SlotResponse HTTP модель слота шаблона
type SlotResponse struct {
	ID         int64  `json:"id"`
	FacilityID int64  `json:"facilityId"`
	StartTime  string `json:"startTime"`
	EndTime    string `json:"endTime"`
	Label      string `json:"label"`
	IsActive   bool   `json:"isActive"`
}

// ToIntervals конвертирует HTTP запрос в интервалы сервиса
func (r *DefineSlotsRequest) ToIntervals() ([]slottemplate.SlotInterval, error) {
	intervals := make([]slottemplate.SlotInterval, 0, len(r.Slots))
	for _, s := range r.Slots {
		start, err := types.NewTimeStringFromString(s.StartTime)
		if err != nil {
			return nil, err
		}
		end, err := types.NewTimeStringFromString(s.EndTime)
		if err != nil {
			return nil, err
		}
		intervals = append(intervals, slottemplate.SlotInterval{StartTime: start, EndTime: end})
	}
	return intervals, nil
}

// FromDomainSlots конвертирует слоты в HTTP ответ
func FromDomainSlots(slots []*domain.TemplateSlot) []SlotResponse {
	result := make([]SlotResponse, 0, len(slots))
	for _, s := range slots {
		result = append(result, SlotResponse{
			ID:         s.ID,
			FacilityID: s.FacilityID,
			StartTime:  s.StartTime.String(),
			EndTime:    s.EndTime.String(),
			Label:      s.Label,
			IsActive:   s.IsActive,
		})
	}
	return result
}
