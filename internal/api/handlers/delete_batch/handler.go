package delete_batch

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ArenaService/internal/api/handlers"
	"github.com/m04kA/SMC-ArenaService/internal/service/batchlock"
)

const (
	msgInvalidBatchID = "некорректный ID группы"
	msgBatchNotFound  = "группа не найдена"
)

type Handler struct {
	service BatchService
	logger  Logger
}

func NewHandler(service BatchService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/batches/{batchId}
// Захваченный группой слот возвращается в общий пул.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	batchID, err := strconv.ParseInt(vars["batchId"], 10, 64)
	if err != nil || batchID <= 0 {
		h.logger.Warn("DELETE /batches/{batchId} - Invalid batch ID: %s", vars["batchId"])
		handlers.RespondBadRequest(w, msgInvalidBatchID)
		return
	}

	if err := h.service.DeleteBatch(r.Context(), batchID); err != nil {
		switch {
		case errors.Is(err, batchlock.ErrBatchNotFound):
			h.logger.Warn("DELETE /batches/{batchId} - Batch not found: batch_id=%d", batchID)
			handlers.RespondNotFound(w, msgBatchNotFound)

		default:
			h.logger.Error("DELETE /batches/{batchId} - Failed to delete batch: batch_id=%d, error=%v", batchID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /batches/{batchId} - Batch deleted: batch_id=%d", batchID)
	w.WriteHeader(http.StatusNoContent)
}
