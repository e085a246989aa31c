package update_batch_slot

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ArenaService/internal/api/handlers"
	"github.com/m04kA/SMC-ArenaService/internal/service/batchlock"
)

const (
	slotActionActivate   = "activate"
	slotActionDeactivate = "deactivate"
	slotActionTransfer   = "transfer"
)

const (
	msgInvalidBatchID     = "некорректный ID группы"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidAction      = "некорректное действие, ожидается activate, deactivate или transfer"
	msgSlotIDRequired     = "не указан ID слота"
	msgBatchNotFound      = "группа не найдена"
	msgSlotNotFound       = "слот не найден"
	msgSlotLocked         = "слот уже занят другой группой"
	msgSlotMismatch       = "слот принадлежит другой площадке"
	msgNoSlotHeld         = "группа не держит слот"
	msgSlotHeld           = "группа уже держит другой слот, используйте transfer или deactivate"
)

type Handler struct {
	service BatchLockService
	logger  Logger
}

func NewHandler(service BatchLockService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// UpdateSlotRequest модель запроса на смену привязки слота группы
type UpdateSlotRequest struct {
	SlotAction string `json:"slotAction"`
	SlotID     *int64 `json:"slotId,omitempty"`
}

// Handle PUT /api/v1/batches/{batchId}/slot
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	batchID, err := strconv.ParseInt(vars["batchId"], 10, 64)
	if err != nil || batchID <= 0 {
		h.logger.Warn("PUT /batches/{batchId}/slot - Invalid batch ID: %s", vars["batchId"])
		handlers.RespondBadRequest(w, msgInvalidBatchID)
		return
	}

	var req UpdateSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /batches/{batchId}/slot - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	switch req.SlotAction {
	case slotActionActivate, slotActionTransfer:
		if req.SlotID == nil || *req.SlotID <= 0 {
			h.logger.Warn("PUT /batches/{batchId}/slot - Missing slot ID: batch_id=%d, action=%s", batchID, req.SlotAction)
			handlers.RespondBadRequest(w, msgSlotIDRequired)
			return
		}
		if req.SlotAction == slotActionActivate {
			err = h.service.Acquire(r.Context(), batchID, *req.SlotID)
		} else {
			err = h.service.Transfer(r.Context(), batchID, *req.SlotID)
		}

	case slotActionDeactivate:
		err = h.service.Release(r.Context(), batchID)

	default:
		h.logger.Warn("PUT /batches/{batchId}/slot - Invalid action: %q", req.SlotAction)
		handlers.RespondBadRequest(w, msgInvalidAction)
		return
	}

	if err != nil {
		switch {
		case errors.Is(err, batchlock.ErrBatchNotFound):
			h.logger.Warn("PUT /batches/{batchId}/slot - Batch not found: batch_id=%d", batchID)
			handlers.RespondNotFound(w, msgBatchNotFound)

		case errors.Is(err, batchlock.ErrSlotNotFound):
			h.logger.Warn("PUT /batches/{batchId}/slot - Slot not found: batch_id=%d", batchID)
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, batchlock.ErrSlotLocked):
			h.logger.Warn("PUT /batches/{batchId}/slot - Slot locked: batch_id=%d, action=%s", batchID, req.SlotAction)
			handlers.RespondConflict(w, msgSlotLocked)

		case errors.Is(err, batchlock.ErrSlotMismatch):
			h.logger.Warn("PUT /batches/{batchId}/slot - Slot mismatch: batch_id=%d", batchID)
			handlers.RespondBadRequest(w, msgSlotMismatch)

		case errors.Is(err, batchlock.ErrSlotHeld):
			h.logger.Warn("PUT /batches/{batchId}/slot - Batch already holds a slot: batch_id=%d", batchID)
			handlers.RespondConflict(w, msgSlotHeld)

		case errors.Is(err, batchlock.ErrNoSlotHeld):
			h.logger.Warn("PUT /batches/{batchId}/slot - No slot held: batch_id=%d", batchID)
			handlers.RespondConflict(w, msgNoSlotHeld)

		default:
			h.logger.Error("PUT /batches/{batchId}/slot - Failed to update slot: batch_id=%d, action=%s, error=%v", batchID, req.SlotAction, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /batches/{batchId}/slot - Done: batch_id=%d, action=%s", batchID, req.SlotAction)
	w.WriteHeader(http.StatusNoContent)
}
