package define_facility_slots

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ArenaService/internal/api/handlers"
	"github.com/m04kA/SMC-ArenaService/internal/service/slottemplate"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidTime        = "некорректный формат времени, ожидается HH:MM"
	msgFacilityNotFound   = "площадка не найдена"
	msgSlotOverlap        = "интервалы слотов пересекаются"
)

type Handler struct {
	service SlotTemplateService
	logger  Logger
}

func NewHandler(service SlotTemplateService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/facility-slots
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req DefineSlotsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /facility-slots - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	intervals, err := req.ToIntervals()
	if err != nil {
		h.logger.Warn("POST /facility-slots - Failed to parse intervals: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	created, err := h.service.DefineSlots(r.Context(), req.FacilityID, intervals)
	if err != nil {
		switch {
		case errors.Is(err, slottemplate.ErrFacilityNotFound):
			h.logger.Warn("POST /facility-slots - Facility not found: facility_id=%d", req.FacilityID)
			handlers.RespondNotFound(w, msgFacilityNotFound)

		case errors.Is(err, slottemplate.ErrSlotOverlap):
			h.logger.Warn("POST /facility-slots - Slot overlap: facility_id=%d, error=%v", req.FacilityID, err)
			handlers.RespondConflict(w, msgSlotOverlap)

		case errors.Is(err, slottemplate.ErrInvalidInput):
			h.logger.Warn("POST /facility-slots - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /facility-slots - Failed to define slots: facility_id=%d, error=%v", req.FacilityID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /facility-slots - Defined %d slots: facility_id=%d", len(created), req.FacilityID)
	handlers.RespondJSON(w, http.StatusCreated, FromDomainSlots(created))
}
