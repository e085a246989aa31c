package block_slots

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/SMC-ArenaService/internal/api/handlers"
	"github.com/m04kA/SMC-ArenaService/internal/service/blockeddates"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgFacilityNotFound   = "площадка не найдена"
	msgInvalidSlots       = "часть слотов не входит в шаблон расписания"
)

type Handler struct {
	service BlockedDatesService
	logger  Logger
}

func NewHandler(service BlockedDatesService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// invalidSlotsResponse тело ошибки со списком слотов вне шаблона
type invalidSlotsResponse struct {
	Error string   `json:"error"`
	Slots []string `json:"invalidSlots"`
}

// Handle POST /api/v1/turf-rentals/blocked-slots
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req BlockSlotsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /turf-rentals/blocked-slots - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	date, err := time.Parse(time.DateOnly, req.Date)
	if err != nil {
		h.logger.Warn("POST /turf-rentals/blocked-slots - Invalid date %q: %v", req.Date, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	entry, err := h.service.BlockSlots(r.Context(), req.FacilityID, date, req.ToDomain())
	if err != nil {
		var invalidErr *blockeddates.InvalidSlotsError
		switch {
		case errors.As(err, &invalidErr):
			h.logger.Warn("POST /turf-rentals/blocked-slots - Slots not in template: facility_id=%d, slots=%v", req.FacilityID, invalidErr.StartTimes)
			slots := make([]string, 0, len(invalidErr.StartTimes))
			for _, t := range invalidErr.StartTimes {
				slots = append(slots, string(t))
			}
			handlers.RespondJSON(w, http.StatusConflict, invalidSlotsResponse{
				Error: msgInvalidSlots,
				Slots: slots,
			})

		case errors.Is(err, blockeddates.ErrFacilityNotFound):
			h.logger.Warn("POST /turf-rentals/blocked-slots - Facility not found: facility_id=%d", req.FacilityID)
			handlers.RespondNotFound(w, msgFacilityNotFound)

		case errors.Is(err, blockeddates.ErrInvalidInput):
			h.logger.Warn("POST /turf-rentals/blocked-slots - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /turf-rentals/blocked-slots - Failed to block slots: facility_id=%d, error=%v", req.FacilityID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /turf-rentals/blocked-slots - Blocked %d slots: facility_id=%d, date=%s", len(entry.Slots), req.FacilityID, req.Date)
	handlers.RespondJSON(w, http.StatusCreated, FromDomain(entry))
}
