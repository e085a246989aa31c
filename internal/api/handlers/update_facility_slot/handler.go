package update_facility_slot

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ArenaService/internal/api/handlers"
	"github.com/m04kA/SMC-ArenaService/internal/service/slottemplate"
	"github.com/m04kA/SMC-ArenaService/pkg/types"
)

const (
	msgInvalidSlotID      = "некорректный ID слота"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidTime        = "некорректный формат времени, ожидается HH:MM"
	msgSlotNotFound       = "слот не найден"
	msgSlotOverlap        = "интервалы слотов пересекаются"
)

// UpdateSlotRequest HTTP request model
type UpdateSlotRequest struct {
	FacilityID int64  `json:"facilityId"`
	StartTime  string `json:"startTime"`
	EndTime    string `json:"endTime"`
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

// Handle PUT /api/v1/facility-slots/{slotId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	slotID, err := strconv.ParseInt(vars["slotId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /facility-slots/{id} - Invalid slot ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSlotID)
		return
	}

	var req UpdateSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /facility-slots/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	start, err := types.NewTimeStringFromString(req.StartTime)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}
	end, err := types.NewTimeStringFromString(req.EndTime)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	updated, err := h.service.UpdateSlot(r.Context(), req.FacilityID, slotID, slottemplate.SlotInterval{
		StartTime: start,
		EndTime:   end,
	})
	if err != nil {
		switch {
		case errors.Is(err, slottemplate.ErrSlotNotFound):
			h.logger.Warn("PUT /facility-slots/{id} - Slot not found: slot_id=%d", slotID)
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, slottemplate.ErrSlotOverlap):
			h.logger.Warn("PUT /facility-slots/{id} - Slot overlap: slot_id=%d, error=%v", slotID, err)
			handlers.RespondConflict(w, msgSlotOverlap)

		case errors.Is(err, slottemplate.ErrInvalidInput):
			h.logger.Warn("PUT /facility-slots/{id} - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("PUT /facility-slots/{id} - Failed to update slot: slot_id=%d, error=%v", slotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /facility-slots/{id} - Slot updated: slot_id=%d, label=%s", slotID, updated.Label)
	handlers.RespondJSON(w, http.StatusOK, SlotResponse{
		ID:         updated.ID,
		FacilityID: updated.FacilityID,
		StartTime:  updated.StartTime.String(),
		EndTime:    updated.EndTime.String(),
		Label:      updated.Label,
		IsActive:   updated.IsActive,
	})
}
