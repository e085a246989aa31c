package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-ArenaService/internal/domain"
)

// Request запрос доступности слотов площадки на дату
type Request struct {
	FacilityID int64
	Date       time.Time
}

// Response доступность всех слотов шаблона на дату
type Response struct {
	FacilityID int64
	Date       time.Time
	Slots      []domain.SlotAvailability
}
