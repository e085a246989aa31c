package create_batch

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/SMC-ArenaService/internal/api/handlers"
	"github.com/m04kA/SMC-ArenaService/internal/service/batchlock"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
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

// Handle POST /api/v1/batches
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBatchRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /batches - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	batch, err := req.ToDomain()
	if err != nil {
		h.logger.Warn("POST /batches - Invalid dates: %v", err)
		handlers.RespondBadRequest(w, err.Error())
		return
	}

	created, err := h.service.CreateBatch(r.Context(), batch)
	if err != nil {
		switch {
		case errors.Is(err, batchlock.ErrInvalidInput):
			h.logger.Warn("POST /batches - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /batches - Failed to create batch: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /batches - Batch created: batch_id=%d, facility_id=%d", created.ID, created.FacilityID)
	handlers.RespondJSON(w, http.StatusCreated, FromDomain(created, time.Now()))
}
