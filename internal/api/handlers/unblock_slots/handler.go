package unblock_slots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ArenaService/internal/api/handlers"
	"github.com/m04kA/SMC-ArenaService/internal/service/blockeddates"
	"github.com/m04kA/SMC-ArenaService/pkg/types"
)

const (
	msgInvalidEntryID = "некорректный ID записи блокировки"
	msgInvalidTime    = "некорректный формат времени, ожидается HH:MM"
	msgEntryNotFound  = "запись блокировки не найдена"
	msgSlotNotBlocked = "слот не заблокирован этой записью"
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

// Handle DELETE /api/v1/turf-rentals/blocked-slots/{entryId}
// Без параметра time снимается вся запись блокировки, с параметром - один слот.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	entryID, err := strconv.ParseInt(vars["entryId"], 10, 64)
	if err != nil || entryID <= 0 {
		h.logger.Warn("DELETE /turf-rentals/blocked-slots/{entryId} - Invalid entry ID: %s", vars["entryId"])
		handlers.RespondBadRequest(w, msgInvalidEntryID)
		return
	}

	rawTime := r.URL.Query().Get("time")
	if rawTime != "" {
		startTime := types.TimeString(rawTime)
		if err := startTime.Validate(); err != nil {
			h.logger.Warn("DELETE /turf-rentals/blocked-slots/{entryId} - Invalid time %q: %v", rawTime, err)
			handlers.RespondBadRequest(w, msgInvalidTime)
			return
		}
		err = h.service.UnblockSlot(r.Context(), entryID, startTime)
	} else {
		err = h.service.UnblockAll(r.Context(), entryID)
	}

	if err != nil {
		switch {
		case errors.Is(err, blockeddates.ErrEntryNotFound):
			h.logger.Warn("DELETE /turf-rentals/blocked-slots/{entryId} - Entry not found: entry_id=%d", entryID)
			handlers.RespondNotFound(w, msgEntryNotFound)

		case errors.Is(err, blockeddates.ErrSlotNotBlocked):
			h.logger.Warn("DELETE /turf-rentals/blocked-slots/{entryId} - Slot not blocked: entry_id=%d, time=%s", entryID, rawTime)
			handlers.RespondNotFound(w, msgSlotNotBlocked)

		case errors.Is(err, blockeddates.ErrInvalidInput):
			h.logger.Warn("DELETE /turf-rentals/blocked-slots/{entryId} - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("DELETE /turf-rentals/blocked-slots/{entryId} - Failed to unblock: entry_id=%d, error=%v", entryID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /turf-rentals/blocked-slots/{entryId} - Unblocked: entry_id=%d, time=%q", entryID, rawTime)
	w.WriteHeader(http.StatusNoContent)
}
