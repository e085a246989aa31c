package delete_facility_slot

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ArenaService/internal/api/handlers"
	"github.com/m04kA/SMC-ArenaService/internal/service/slottemplate"
)

const (
	msgInvalidSlotID     = "некорректный ID слота"
	msgInvalidFacilityID = "некорректный ID площадки"
	msgSlotNotFound      = "слот не найден"
	msgSlotInUse         = "слот используется бронированиями или группой"
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

// Handle DELETE /api/v1/facility-slots/{slotId}
// Query params: facilityId (required)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	slotID, err := strconv.ParseInt(vars["slotId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /facility-slots/{id} - Invalid slot ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSlotID)
		return
	}

	facilityID, err := strconv.ParseInt(r.URL.Query().Get("facilityId"), 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /facility-slots/{id} - Invalid facility ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidFacilityID)
		return
	}

	if err := h.service.DeleteSlot(r.Context(), facilityID, slotID); err != nil {
		switch {
		case errors.Is(err, slottemplate.ErrSlotNotFound):
			h.logger.Warn("DELETE /facility-slots/{id} - Slot not found: slot_id=%d", slotID)
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, slottemplate.ErrSlotInUse):
			h.logger.Warn("DELETE /facility-slots/{id} - Slot in use: slot_id=%d", slotID)
			handlers.RespondConflict(w, msgSlotInUse)

		default:
			h.logger.Error("DELETE /facility-slots/{id} - Failed to delete slot: slot_id=%d, error=%v", slotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /facility-slots/{id} - Slot deleted: slot_id=%d, facility_id=%d", slotID, facilityID)
	w.WriteHeader(http.StatusNoContent)
}
