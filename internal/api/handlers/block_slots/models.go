package block_slots

import (
	"time"

	"github.com/m04kA/SMC-ArenaService/internal/domain"
	"github.com/m04kA/SMC-ArenaService/pkg/types"
)

// BlockSlotsRequest модель запроса на блокировку слотов
type BlockSlotsRequest struct {
	FacilityID int64              `json:"facilityId"`
	Date       string             `json:"date"`
	Slots      []BlockSlotRequest `json:"slots"`
}

// BlockSlotRequest один блокируемый слот
type BlockSlotRequest struct {
	StartTime string `json:"startTime"`
	Reason    string `json:"reason,omitempty"`
}

// ToDomain преобразует слоты запроса в доменную модель
func (r *BlockSlotsRequest) ToDomain() []domain.BlockedSlot {
	slots := make([]domain.BlockedSlot, 0, len(r.Slots))
	for _, s := range r.Slots {
		slots = append(slots, domain.BlockedSlot{
			StartTime: types.TimeString(s.StartTime),
			Reason:    s.Reason,
		})
	}
	return slots
}

// BlockedEntryResponse модель ответа с созданной блокировкой
type BlockedEntryResponse struct {
	ID         int64                 `json:"id"`
	FacilityID int64                 `json:"facilityId"`
	Date       string                `json:"date"`
	Slots      []BlockedSlotResponse `json:"slots"`
}

// BlockedSlotResponse один заблокированный слот в ответе
type BlockedSlotResponse struct {
	StartTime string `json:"startTime"`
	Reason    string `json:"reason,omitempty"`
}

// FromDomain преобразует доменную запись блокировки в модель ответа
func FromDomain(entry *domain.BlockedDateEntry) BlockedEntryResponse {
	slots := make([]BlockedSlotResponse, 0, len(entry.Slots))
	for _, s := range entry.Slots {
		slots = append(slots, BlockedSlotResponse{
			StartTime: string(s.StartTime),
			Reason:    s.Reason,
		})
	}
	return BlockedEntryResponse{
		ID:         entry.ID,
		FacilityID: entry.FacilityID,
		Date:       entry.Date.Format(time.DateOnly),
		Slots:      slots,
	}
}
